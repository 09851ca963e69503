package cmd

import (
	"fmt"

	"arduino-config/internal/pkg/arduino"

	"github.com/spf13/cobra"
)

var frameCmd = &cobra.Command{
	Use:   "frame FIELD [VALUE]",
	Short: "Print the frame a setting would be sent as, without opening a device",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := parseMessage(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := arduino.NewSender().Update(cmd.Context(), out, msg); err != nil {
			return err
		}
		_, err = fmt.Fprintln(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(frameCmd)
}
