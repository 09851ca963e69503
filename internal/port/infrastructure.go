// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

//go:generate mockgen -destination=../mock/mock_infrastructure.go -package=mock arduino-config/internal/port SerialPort,SerialOpener,NetworkManager

import (
	"github.com/vishvananda/netlink"
)

// SerialPort is an open serial device handle.
// Only the write side is used: device replies are never read.
type SerialPort interface {
	// Write sends raw bytes to the device
	Write(p []byte) (int, error)

	// Close releases the OS handle
	Close() error
}

// SerialOpener is a port for opening serial devices.
type SerialOpener interface {
	// Open opens the named serial device at the given baud rate
	Open(name string, baudRate int) (SerialPort, error)
}

// NetworkManager is a port for read-only host network lookups.
// It is used to derive device settings from the host's own configuration.
type NetworkManager interface {
	// GetLinkByName returns a network link by interface name
	GetLinkByName(interfaceName string) (netlink.Link, error)

	// ListAddresses returns IPv4 addresses configured on the link
	ListAddresses(link netlink.Link) ([]netlink.Addr, error)

	// ListRoutes returns IPv4 routes
	ListRoutes() ([]netlink.Route, error)
}
