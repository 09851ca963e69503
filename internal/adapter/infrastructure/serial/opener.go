// Package serial provides the serial device adapter implementation.
package serial

import (
	"fmt"

	"arduino-config/internal/port"

	"github.com/tarm/serial"
)

// OpenerAdapter is an adapter that implements the SerialOpener port using tarm/serial library.
type OpenerAdapter struct{}

// Ensure OpenerAdapter implements the SerialOpener port
var _ port.SerialOpener = (*OpenerAdapter)(nil)

// NewOpenerAdapter creates a new serial opener adapter.
func NewOpenerAdapter() *OpenerAdapter {
	return &OpenerAdapter{}
}

// Open opens the named device at baudRate, 8N1, without flow control.
func (o *OpenerAdapter) Open(name string, baudRate int) (port.SerialPort, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:     name,
		Baud:     baudRate,
		Size:     8,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", name, err)
	}
	return p, nil
}
