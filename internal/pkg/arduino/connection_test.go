//go:build unit

package arduino

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"arduino-config/internal/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := mock.NewMockSerialOpener(ctrl)
		serialPort := mock.NewMockSerialPort(ctrl)

		opener.EXPECT().Open("/dev/ttyACM0", 115200).Return(serialPort, nil)

		conn, err := Connect(ctx, opener, Options{Port: "/dev/ttyACM0", BaudRate: 115200})
		require.NoError(t, err)
		assert.Equal(t, "/dev/ttyACM0", conn.Name())
	})

	t.Run("OpenFails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := mock.NewMockSerialOpener(ctrl)

		cause := errors.New("open /dev/ttyACM9: no such file or directory")
		opener.EXPECT().Open("/dev/ttyACM9", 115200).Return(nil, cause)

		_, err := Connect(ctx, opener, Options{Port: "/dev/ttyACM9", BaudRate: 115200})
		require.Error(t, err)

		var connErr *ConnectionError
		require.True(t, errors.As(err, &connErr))
		assert.Equal(t, "/dev/ttyACM9", connErr.Port)
		assert.Equal(t, 115200, connErr.BaudRate)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "could not connect to the device")
		assert.Contains(t, err.Error(), "no such file or directory")
	})

	t.Run("MissingPort", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := mock.NewMockSerialOpener(ctrl)

		_, err := Connect(ctx, opener, Options{BaudRate: 115200})
		var connErr *ConnectionError
		require.True(t, errors.As(err, &connErr))
		assert.Contains(t, err.Error(), "no serial port given")
	})

	t.Run("InvalidBaudRate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := mock.NewMockSerialOpener(ctrl)

		_, err := Connect(ctx, opener, Options{Port: "COM19", BaudRate: 0})
		var connErr *ConnectionError
		require.True(t, errors.As(err, &connErr))
		assert.Contains(t, err.Error(), "invalid baud rate 0")
	})

	t.Run("SettleDelayElapses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := mock.NewMockSerialOpener(ctrl)
		serialPort := mock.NewMockSerialPort(ctrl)

		opener.EXPECT().Open("COM19", 115200).Return(serialPort, nil)

		start := time.Now()
		_, err := Connect(ctx, opener, Options{Port: "COM19", BaudRate: 115200, SettleDelay: 20 * time.Millisecond})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("SettleDelayCancelledClosesPort", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := mock.NewMockSerialOpener(ctrl)
		serialPort := mock.NewMockSerialPort(ctrl)

		opener.EXPECT().Open("COM19", 115200).Return(serialPort, nil)
		serialPort.EXPECT().Close().Return(nil)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Connect(cancelled, opener, Options{Port: "COM19", BaudRate: 115200, SettleDelay: time.Hour})
		var connErr *ConnectionError
		require.True(t, errors.As(err, &connErr))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWithConnection(t *testing.T) {
	ctx := context.Background()
	opts := Options{Port: "/dev/ttyUSB0", BaudRate: 115200}

	t.Run("ClosesOnSuccess", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := mock.NewMockSerialOpener(ctrl)
		serialPort := mock.NewMockSerialPort(ctrl)

		opener.EXPECT().Open("/dev/ttyUSB0", 115200).Return(serialPort, nil)
		serialPort.EXPECT().Write([]byte("abc")).Return(3, nil)
		serialPort.EXPECT().Close().Return(nil)

		err := WithConnection(ctx, opener, opts, func(conn *Connection) error {
			_, err := conn.Write([]byte("abc"))
			return err
		})
		assert.NoError(t, err)
	})

	t.Run("ClosesOnCallbackError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := mock.NewMockSerialOpener(ctrl)
		serialPort := mock.NewMockSerialPort(ctrl)

		opener.EXPECT().Open("/dev/ttyUSB0", 115200).Return(serialPort, nil)
		serialPort.EXPECT().Close().Return(nil)

		boom := errors.New("boom")
		err := WithConnection(ctx, opener, opts, func(conn *Connection) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("JoinsCloseError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := mock.NewMockSerialOpener(ctrl)
		serialPort := mock.NewMockSerialPort(ctrl)

		opener.EXPECT().Open("/dev/ttyUSB0", 115200).Return(serialPort, nil)
		closeErr := errors.New("bad file descriptor")
		serialPort.EXPECT().Close().Return(closeErr)

		boom := errors.New("boom")
		err := WithConnection(ctx, opener, opts, func(conn *Connection) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, closeErr)
		assert.Contains(t, err.Error(), "failed to close /dev/ttyUSB0")
	})

	t.Run("ConnectFailureSkipsCallback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		opener := mock.NewMockSerialOpener(ctrl)

		opener.EXPECT().Open("/dev/ttyUSB0", 115200).Return(nil, errors.New("permission denied"))

		called := false
		err := WithConnection(ctx, opener, opts, func(conn *Connection) error {
			called = true
			return nil
		})
		var connErr *ConnectionError
		assert.True(t, errors.As(err, &connErr))
		assert.False(t, called)
	})
}

func TestConnection_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	serialPort := mock.NewMockSerialPort(ctrl)
	serialPort.EXPECT().Close().Return(nil).Times(1)

	conn := &Connection{name: "COM19", port: serialPort}
	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())

	_, err := conn.Write([]byte("<>"))
	assert.ErrorIs(t, err, ErrClosed)
}

// overlapPort records whether two writes were ever in flight at once.
type overlapPort struct {
	inFlight int32
	overlap  atomic.Bool
	writes   atomic.Int32
}

func (p *overlapPort) Write(b []byte) (int, error) {
	if atomic.AddInt32(&p.inFlight, 1) > 1 {
		p.overlap.Store(true)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&p.inFlight, -1)
	p.writes.Add(1)
	return len(b), nil
}

func (p *overlapPort) Close() error { return nil }

func TestConnection_WriteSerialised(t *testing.T) {
	p := &overlapPort{}
	conn := &Connection{name: "COM19", port: p}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = conn.Write([]byte(`<{"port": "8080"}>`))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(8), p.writes.Load())
	assert.False(t, p.overlap.Load())
}
