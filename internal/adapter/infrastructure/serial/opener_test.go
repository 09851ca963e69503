//go:build unit

package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOpenerAdapter(t *testing.T) {
	adapter := NewOpenerAdapter()
	assert.NotNil(t, adapter)
}

func TestOpenerAdapter_Open(t *testing.T) {
	adapter := NewOpenerAdapter()

	t.Run("NonExistentDevice", func(t *testing.T) {
		p, err := adapter.Open("/dev/arduino-config-nonexistent", 115200)
		assert.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "failed to open serial port /dev/arduino-config-nonexistent")
	})
}

// Note: opening a real device needs hardware attached, so the success path
// is left to manual testing against a board.
