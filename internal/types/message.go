// Package types defines common types used across the application.
package types

// Field names a configuration value understood by the device firmware.
type Field string

const (
	FieldDatetime   Field = "datetime"
	FieldServerIP   Field = "server_ip"
	FieldServerPort Field = "port"
	FieldClientIP   Field = "client_ip"
	FieldGatewayIP  Field = "gateway_ip"
)

// Fields lists every known field in the order a full configuration is applied.
var Fields = []Field{
	FieldDatetime,
	FieldServerIP,
	FieldServerPort,
	FieldClientIP,
	FieldGatewayIP,
}

// Valid reports whether f is one of the fields the firmware accepts.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

func (f Field) String() string {
	return string(f)
}

// ConfigMessage is a single-key configuration update.
// It is built right before sending and never kept afterwards.
type ConfigMessage struct {
	Field Field
	Value string
}
