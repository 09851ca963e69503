// Package arduino sends configuration frames to a microcontroller over a
// serial link.
package arduino

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"arduino-config/internal/pkg/logging"
	"arduino-config/internal/port"
)

// Options selects the serial device and how it is brought up.
type Options struct {
	Port     string
	BaudRate int
	// SettleDelay is waited after opening, before the first write. Boards that
	// reset when the port opens drop anything sent while they boot.
	SettleDelay time.Duration
}

// Connection is an open serial link to the device. It is the only long-lived
// resource; callers pass it explicitly to the send operations.
type Connection struct {
	name string

	mu     sync.Mutex
	port   port.SerialPort
	closed bool
}

// Connect opens the serial device described by opts.
// Every failure is returned as *ConnectionError.
func Connect(ctx context.Context, opener port.SerialOpener, opts Options) (*Connection, error) {
	logger := logging.WithComponentAndDevice("connection", opts.Port).WithField("baud", opts.BaudRate)

	if opts.Port == "" {
		return nil, &ConnectionError{Port: opts.Port, BaudRate: opts.BaudRate, Err: errors.New("no serial port given")}
	}
	if opts.BaudRate <= 0 {
		return nil, &ConnectionError{Port: opts.Port, BaudRate: opts.BaudRate, Err: fmt.Errorf("invalid baud rate %d", opts.BaudRate)}
	}

	p, err := opener.Open(opts.Port, opts.BaudRate)
	if err != nil {
		return nil, &ConnectionError{Port: opts.Port, BaudRate: opts.BaudRate, Err: err}
	}
	logger.Info("Opened serial port")

	conn := &Connection{name: opts.Port, port: p}

	if opts.SettleDelay > 0 {
		logger.WithField("settle_delay", opts.SettleDelay.String()).Debug("Waiting for device to settle")
		timer := time.NewTimer(opts.SettleDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			if cerr := conn.Close(); cerr != nil {
				logger.WithError(cerr).Warn("Failed to close serial port")
			}
			return nil, &ConnectionError{Port: opts.Port, BaudRate: opts.BaudRate, Err: ctx.Err()}
		case <-timer.C:
		}
	}

	return conn, nil
}

// WithConnection opens the device, runs fn and closes the device on every
// return path. A close failure is joined to fn's error.
func WithConnection(ctx context.Context, opener port.SerialOpener, opts Options, fn func(conn *Connection) error) (err error) {
	conn, err := Connect(ctx, opener, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close %s: %w", conn.Name(), cerr))
		}
	}()

	return fn(conn)
}

// Name returns the serial device path.
func (c *Connection) Name() string {
	return c.name
}

// Write writes p to the device in a single call. Concurrent writers are
// serialised so two frames never interleave on the wire.
func (c *Connection) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, ErrClosed
	}
	return c.port.Write(p)
}

// Close releases the serial handle. Closing twice is a no-op.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.port.Close(); err != nil {
		return err
	}
	logging.WithComponentAndDevice("connection", c.name).Debug("Closed serial port")
	return nil
}
