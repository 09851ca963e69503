package cmd

import (
	"fmt"
	"strings"

	"arduino-config/internal/adapter/infrastructure/serial"
	"arduino-config/internal/pkg/arduino"
	"arduino-config/internal/pkg/logging"
	"arduino-config/internal/types"

	"github.com/spf13/cobra"
)

// parseMessage turns FIELD [VALUE] arguments into a message.
// datetime takes no value; every other field needs exactly one.
func parseMessage(args []string) (types.ConfigMessage, error) {
	if len(args) == 0 {
		return types.ConfigMessage{}, fmt.Errorf("field is required")
	}

	field := types.Field(args[0])
	if !field.Valid() {
		return types.ConfigMessage{}, fmt.Errorf("unknown field %q (expected one of %s)", args[0], fieldList())
	}

	if field == types.FieldDatetime {
		if len(args) > 1 {
			return types.ConfigMessage{}, fmt.Errorf("datetime takes no value, the current time is sent")
		}
		return types.ConfigMessage{Field: field}, nil
	}

	if len(args) != 2 {
		return types.ConfigMessage{}, fmt.Errorf("%s requires exactly one value", field)
	}
	return types.ConfigMessage{Field: field, Value: args[1]}, nil
}

func fieldList() string {
	names := make([]string, len(types.Fields))
	for i, f := range types.Fields {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

var sendCmd = &cobra.Command{
	Use:   "send FIELD [VALUE]",
	Short: "Send a single setting to the device",
	Example: `  arduino-config send -p /dev/ttyACM0 server_ip 192.168.1.50
  arduino-config send -p COM19 datetime`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := parseMessage(args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.ValidateSerial(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		opts := arduino.Options{
			Port:        cfg.Serial.Port,
			BaudRate:    cfg.Serial.BaudRate,
			SettleDelay: cfg.Serial.SettleDelay,
		}
		sender := arduino.NewSender(arduino.WithFrameInterval(cfg.Serial.FrameInterval))

		err = arduino.WithConnection(ctx, serial.NewOpenerAdapter(), opts, func(conn *arduino.Connection) error {
			return sender.Update(ctx, conn, msg)
		})
		if err != nil {
			return err
		}

		logging.WithDevice(cfg.Serial.Port).WithField("field", msg.Field.String()).Info("Sent field")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
