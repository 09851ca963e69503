// Package configurator pushes a complete device configuration over one serial
// connection.
package configurator

import (
	"context"
	"errors"
	"fmt"

	"arduino-config/internal/pkg/arduino"
	"arduino-config/internal/pkg/config"
	"arduino-config/internal/pkg/logging"
	"arduino-config/internal/port"
	"arduino-config/internal/types"
)

// ErrNothingToSend is returned when the configuration selects no field.
var ErrNothingToSend = errors.New("no device settings to send")

// Manager is a device configuration adapter that implements the DeviceConfigurator port.
// It resolves the configured values, opens the serial link and sends one frame per field.
type Manager struct {
	serialOpts arduino.Options
	device     config.DeviceConfig
	opener     port.SerialOpener
	networkMgr port.NetworkManager
	sender     *arduino.Sender
	keepGoing  bool
}

// Ensure Manager implements the DeviceConfigurator port
var _ port.DeviceConfigurator = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithKeepGoing makes Run continue past a failed field and report every
// failure at the end instead of stopping at the first one.
func WithKeepGoing(keepGoing bool) Option {
	return func(m *Manager) {
		m.keepGoing = keepGoing
	}
}

// NewManager creates a configurator for cfg. The configuration is validated here
// so a bad value is reported before the port is opened.
func NewManager(cfg *config.Config, opener port.SerialOpener, networkMgr port.NetworkManager, sender *arduino.Sender, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	m := &Manager{
		serialOpts: arduino.Options{
			Port:        cfg.Serial.Port,
			BaudRate:    cfg.Serial.BaudRate,
			SettleDelay: cfg.Serial.SettleDelay,
		},
		device:     cfg.Device,
		opener:     opener,
		networkMgr: networkMgr,
		sender:     sender,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// GetDeviceName returns the serial device path this manager writes to.
func (m *Manager) GetDeviceName() string {
	return m.serialOpts.Port
}

// Run sends every configured field in the fixed order datetime, server_ip,
// port, client_ip, gateway_ip. The serial port is closed before Run returns.
func (m *Manager) Run(ctx context.Context) error {
	logger := logging.WithComponentAndDevice("configurator", m.serialOpts.Port)

	plan, err := m.Plan()
	if err != nil {
		return err
	}
	logger.WithField("fields", len(plan)).Info("Applying device configuration")

	return arduino.WithConnection(ctx, m.opener, m.serialOpts, func(conn *arduino.Connection) error {
		var errs []error
		for _, msg := range plan {
			if err := m.sender.Update(ctx, conn, msg); err != nil {
				logger.WithError(err).WithField("field", msg.Field.String()).Error("Failed to send field")
				if !m.keepGoing || ctx.Err() != nil {
					return err
				}
				errs = append(errs, err)
				continue
			}
			logger.WithField("field", msg.Field.String()).Info("Sent field")
		}
		return errors.Join(errs...)
	})
}

// Plan resolves the configured fields into the messages Run will send.
// The datetime value is left empty; the current time is taken at send time.
func (m *Manager) Plan() ([]types.ConfigMessage, error) {
	var plan []types.ConfigMessage

	if m.device.Datetime {
		plan = append(plan, types.ConfigMessage{Field: types.FieldDatetime})
	}

	serverIP := m.device.ServerIP
	if serverIP == "" && m.device.ServerInterface != "" {
		ip, err := m.resolveInterfaceIP(m.device.ServerInterface)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve server_ip: %w", err)
		}
		serverIP = ip
	}
	if serverIP != "" {
		plan = append(plan, types.ConfigMessage{Field: types.FieldServerIP, Value: serverIP})
	}

	if m.device.ServerPort != "" {
		plan = append(plan, types.ConfigMessage{Field: types.FieldServerPort, Value: m.device.ServerPort})
	}

	if m.device.ClientIP != "" {
		plan = append(plan, types.ConfigMessage{Field: types.FieldClientIP, Value: m.device.ClientIP})
	}

	gatewayIP := m.device.GatewayIP
	if gatewayIP == config.GatewayAuto {
		ip, err := m.resolveDefaultGateway()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve gateway_ip: %w", err)
		}
		gatewayIP = ip
	}
	if gatewayIP != "" {
		plan = append(plan, types.ConfigMessage{Field: types.FieldGatewayIP, Value: gatewayIP})
	}

	if len(plan) == 0 {
		return nil, ErrNothingToSend
	}
	return plan, nil
}

// resolveInterfaceIP returns the first IPv4 address of a host interface.
func (m *Manager) resolveInterfaceIP(ifaceName string) (string, error) {
	logger := logging.WithComponentAndDevice("configurator", m.serialOpts.Port).WithField("interface", ifaceName)

	link, err := m.networkMgr.GetLinkByName(ifaceName)
	if err != nil {
		return "", err
	}

	addrs, err := m.networkMgr.ListAddresses(link)
	if err != nil {
		return "", err
	}

	for _, addr := range addrs {
		if addr.IPNet == nil || addr.IP.To4() == nil {
			continue
		}
		logger.WithField("ip", addr.IP.String()).Debug("Resolved interface address")
		return addr.IP.String(), nil
	}
	return "", fmt.Errorf("interface %s has no IPv4 address", ifaceName)
}

// resolveDefaultGateway returns the gateway of the host's IPv4 default route.
func (m *Manager) resolveDefaultGateway() (string, error) {
	logger := logging.WithComponentAndDevice("configurator", m.serialOpts.Port)

	routes, err := m.networkMgr.ListRoutes()
	if err != nil {
		return "", err
	}

	for _, route := range routes {
		// Default route (0.0.0.0/0)
		if (route.Dst == nil || route.Dst.String() == "0.0.0.0/0") && route.Gw != nil && route.Gw.To4() != nil {
			logger.WithField("gateway", route.Gw.String()).Debug("Resolved default gateway")
			return route.Gw.String(), nil
		}
	}
	return "", fmt.Errorf("no IPv4 default route found")
}
