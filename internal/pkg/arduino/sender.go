package arduino

import (
	"context"
	"io"
	"time"

	"arduino-config/internal/pkg/frame"
	"arduino-config/internal/pkg/logging"
	"arduino-config/internal/types"

	"golang.org/x/time/rate"
)

// DatetimeLayout is the firmware's datetime format: YYYYMMDD-HH:MM:SS.ffffff.
const DatetimeLayout = "20060102-15:04:05.000000"

// Sender writes configuration frames. It holds no connection; the
// destination is passed to every call.
type Sender struct {
	now     func() time.Time
	limiter *rate.Limiter
}

// SenderOption configures a Sender.
type SenderOption func(*Sender)

// WithClock replaces the time source used for datetime updates.
func WithClock(now func() time.Time) SenderOption {
	return func(s *Sender) {
		s.now = now
	}
}

// WithFrameInterval spaces consecutive frames by at least d.
// Zero or negative disables pacing.
func WithFrameInterval(d time.Duration) SenderOption {
	return func(s *Sender) {
		if d <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewSender creates a sender. Without options frames are not paced and the
// local wall clock is used.
func NewSender(opts ...SenderOption) *Sender {
	s := &Sender{
		now:     time.Now,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send frames {field: value} and writes it to w in one call.
// Nothing is read back from the device.
func (s *Sender) Send(ctx context.Context, w io.Writer, field types.Field, value string) error {
	logger := logging.WithComponent("sender").WithField("field", field.String())
	if conn, ok := w.(*Connection); ok {
		logger = logger.WithField("device", conn.Name())
	}

	b, err := frame.Encode(types.ConfigMessage{Field: field, Value: value})
	if err != nil {
		return err
	}
	if frame.ContainsMarker(value) {
		logger.WithField("value", value).Warn("Value contains a frame marker and will be misread by the device")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	n, err := w.Write(b)
	if err != nil {
		return &WriteError{Field: field, Err: err}
	}
	if n != len(b) {
		return &WriteError{Field: field, Err: io.ErrShortWrite}
	}

	logger.WithField("frame", string(b)).Debug("Sent frame")
	return nil
}

// UpdateDatetime sends the current local time.
func (s *Sender) UpdateDatetime(ctx context.Context, w io.Writer) error {
	return s.Send(ctx, w, types.FieldDatetime, s.now().Format(DatetimeLayout))
}

// UpdateServerIP sends the address of the server the device reports to.
func (s *Sender) UpdateServerIP(ctx context.Context, w io.Writer, serverIP string) error {
	return s.Send(ctx, w, types.FieldServerIP, serverIP)
}

// UpdateServerPort sends the server's TCP port.
func (s *Sender) UpdateServerPort(ctx context.Context, w io.Writer, port string) error {
	return s.Send(ctx, w, types.FieldServerPort, port)
}

// UpdateClientIP sends the device's own address.
func (s *Sender) UpdateClientIP(ctx context.Context, w io.Writer, clientIP string) error {
	return s.Send(ctx, w, types.FieldClientIP, clientIP)
}

// UpdateGatewayIP sends the gateway address, which the device also uses for DNS.
func (s *Sender) UpdateGatewayIP(ctx context.Context, w io.Writer, gatewayIP string) error {
	return s.Send(ctx, w, types.FieldGatewayIP, gatewayIP)
}

// Update dispatches msg to the matching update operation. A datetime
// message ignores its value and sends the current time.
func (s *Sender) Update(ctx context.Context, w io.Writer, msg types.ConfigMessage) error {
	switch msg.Field {
	case types.FieldDatetime:
		return s.UpdateDatetime(ctx, w)
	case types.FieldServerIP:
		return s.UpdateServerIP(ctx, w, msg.Value)
	case types.FieldServerPort:
		return s.UpdateServerPort(ctx, w, msg.Value)
	case types.FieldClientIP:
		return s.UpdateClientIP(ctx, w, msg.Value)
	case types.FieldGatewayIP:
		return s.UpdateGatewayIP(ctx, w, msg.Value)
	default:
		return s.Send(ctx, w, msg.Field, msg.Value)
	}
}
