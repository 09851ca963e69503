package cmd

import (
	"bytes"
	"context"
	"fmt"

	"arduino-config/internal/adapter/infrastructure/serial"
	"arduino-config/internal/pkg/arduino"
	"arduino-config/internal/pkg/logging"
	"arduino-config/internal/types"

	"github.com/abiosoft/ishell"
	"github.com/spf13/cobra"
)

var fieldHelp = map[types.Field]string{
	types.FieldDatetime:   "send the current local time",
	types.FieldServerIP:   "IP - server address the device reports to",
	types.FieldServerPort: "PORT - server TCP port",
	types.FieldClientIP:   "IP - address of the device",
	types.FieldGatewayIP:  "IP - gateway (and DNS) address",
}

// shellCmds builds one shell command per field plus a frame preview command.
func shellCmds(ctx context.Context, conn *arduino.Connection, sender *arduino.Sender) []*ishell.Cmd {
	var cmds []*ishell.Cmd
	for _, field := range types.Fields {
		field := field
		cmds = append(cmds, &ishell.Cmd{
			Name: field.String(),
			Help: fieldHelp[field],
			Func: func(c *ishell.Context) {
				msg, err := parseMessage(append([]string{field.String()}, c.Args...))
				if err != nil {
					c.Err(err)
					return
				}
				if err := sender.Update(ctx, conn, msg); err != nil {
					c.Err(err)
					return
				}
				c.Println("OK")
			},
		})
	}

	cmds = append(cmds, &ishell.Cmd{
		Name: "frame",
		Help: "FIELD [VALUE] - print a frame without sending it",
		Func: func(c *ishell.Context) {
			msg, err := parseMessage(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			var b bytes.Buffer
			if err := arduino.NewSender().Update(ctx, &b, msg); err != nil {
				c.Err(err)
				return
			}
			c.Println(b.String())
		},
	})
	return cmds
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the device once and send settings interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		return arduino.WithConnection(ctx, serial.NewOpenerAdapter(), opts, func(conn *arduino.Connection) error {
			logging.WithDevice(conn.Name()).Info("Interactive session started")

			sh := ishell.New()
			sh.SetPrompt(fmt.Sprintf("[%s] > ", conn.Name()))
			for _, c := range shellCmds(ctx, conn, sender) {
				sh.AddCmd(c)
			}
			sh.Run()
			sh.Close()
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
