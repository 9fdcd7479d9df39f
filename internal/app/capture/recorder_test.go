package capture

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecorder_InputArgsDeviceOverride(t *testing.T) {
	r := NewRecorder("hw:1,0", zap.NewNop())
	args := r.inputArgs()

	require.Len(t, args, 4)
	assert.Equal(t, "-i", args[2])
	assert.Equal(t, "hw:1,0", args[3])
}

func TestRecorder_InputArgsDefaultDevice(t *testing.T) {
	r := NewRecorder("", zap.NewNop())
	args := r.inputArgs()

	require.Len(t, args, 4)
	switch runtime.GOOS {
	case "darwin":
		assert.Equal(t, []string{"-f", "avfoundation", "-i", ":0"}, args)
	case "windows":
		assert.Equal(t, []string{"-f", "dshow", "-i", "audio=default"}, args)
	default:
		assert.Equal(t, []string{"-f", "alsa", "-i", "default"}, args)
	}
}

func TestRecorder_StopWithoutStart(t *testing.T) {
	r := NewRecorder("", zap.NewNop())

	_, _, _, err := r.Stop()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recording in progress")
}
