package history

// KV is the durable key-value storage the history store persists into. A
// single fixed key holds the serialized history; the interface stays generic
// so the backends remain interchangeable.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}
