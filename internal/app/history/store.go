package history

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"voicescribe/internal/app/model"
)

// historyKey is the single storage key the serialized history lives under.
const historyKey = "voicescribe_history"

// Store keeps the ordered transcript history: an in-memory most-recent-first
// list mirrored into durable key-value storage. Entries are immutable once
// appended; the only removal is Clear. The store is single-writer by design
// but guards its list so read paths (HTTP handlers) stay safe.
type Store struct {
	mu         sync.Mutex
	kv         KV
	maxEntries int
	logger     *zap.Logger
	entries    []model.Entry
}

// NewStore creates a history store bounded to maxEntries. The bound is
// enforced FIFO: appending beyond it evicts the oldest entries.
func NewStore(kv KV, maxEntries int, logger *zap.Logger) *Store {
	return &Store{
		kv:         kv,
		maxEntries: maxEntries,
		logger:     logger,
		entries:    make([]model.Entry, 0),
	}
}

// Load rehydrates the history from storage. A missing key means an empty
// history. A corrupt payload is logged and the history silently starts
// empty; it never fails startup. Loaded entries defensively lose any audio
// handle older versions may have persisted.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(historyKey)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if !ok {
		s.entries = make([]model.Entry, 0)
		return nil
	}

	var entries []model.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn("failed to parse stored history, starting empty", zap.Error(err))
		s.entries = make([]model.Entry, 0)
		return nil
	}

	s.entries = lo.Map(entries, func(e model.Entry, _ int) model.Entry {
		return e.Sanitized()
	})
	return nil
}

// Append prepends the entry and persists a sanitized copy of the whole list.
// When the bound is exceeded the oldest entries are evicted first. A
// persistence failure is returned to the caller; the in-memory list keeps
// the entry so the session can continue.
func (s *Store) Append(entry model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]model.Entry{entry}, s.entries...)
	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		evicted := len(s.entries) - s.maxEntries
		s.entries = s.entries[:s.maxEntries]
		s.logger.Info("history bound reached, evicted oldest entries", zap.Int("evicted", evicted))
	}

	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	sanitized := lo.Map(s.entries, func(e model.Entry, _ int) model.Entry {
		return e.Sanitized()
	})

	raw, err := json.Marshal(sanitized)
	if err != nil {
		return fmt.Errorf("failed to serialize history: %w", err)
	}
	if err := s.kv.Set(historyKey, raw); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// Entries returns a copy of the history, most recent first.
func (s *Store) Entries() []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get looks up an entry by id.
func (s *Store) Get(id string) (model.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Find(s.entries, func(e model.Entry) bool { return e.ID == id })
}

// Len returns the number of entries held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear empties both the in-memory list and the persisted key.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]model.Entry, 0)
	if err := s.kv.Delete(historyKey); err != nil {
		return fmt.Errorf("failed to clear persisted history: %w", err)
	}
	return nil
}

// Close releases the underlying storage.
func (s *Store) Close() error {
	return s.kv.Close()
}
