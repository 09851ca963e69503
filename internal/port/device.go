// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"
)

// DeviceConfigurator is the primary port for pushing configuration to a device.
// Implementations open the serial link, send every configured field and
// release the link before returning.
type DeviceConfigurator interface {
	// Run applies the configuration once and returns when every frame is written
	// or the first failure occurs.
	Run(ctx context.Context) error

	// GetDeviceName returns the serial device path the configurator writes to.
	GetDeviceName() string
}
