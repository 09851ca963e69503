package arduino

import (
	"errors"
	"fmt"

	"arduino-config/internal/types"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("connection closed")

// ConnectionError reports that the serial link to the device could not be
// established. Callers at the top level treat it as fatal.
type ConnectionError struct {
	Port     string
	BaudRate int
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to the device on %s at %d baud: %v", e.Port, e.BaudRate, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// WriteError reports a frame that did not reach the device in full.
type WriteError struct {
	Field types.Field
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s frame: %v", e.Field, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
