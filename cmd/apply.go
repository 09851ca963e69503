package cmd

import (
	"arduino-config/internal/adapter/configurator"
	"arduino-config/internal/adapter/infrastructure/network"
	"arduino-config/internal/adapter/infrastructure/serial"
	"arduino-config/internal/pkg/arduino"
	"arduino-config/internal/pkg/config"
	"arduino-config/internal/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	datetimeFlag    bool
	serverIPFlag    string
	serverIfaceFlag string
	serverPortFlag  string
	clientIPFlag    string
	gatewayIPFlag   string
	keepGoingFlag   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Send every configured setting to the device over one connection",
	Long: `Send the device settings from the config file, ARDUINO_* environment
variables and flags. Fields are sent in the order datetime, server_ip,
port, client_ip, gateway_ip; unset fields are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyDeviceFlags(cmd, cfg)

		logger := logging.WithDevice(cfg.Serial.Port)
		logger.WithField("config_file", configFlag).Info("Starting configuration")

		sender := arduino.NewSender(arduino.WithFrameInterval(cfg.Serial.FrameInterval))
		manager, err := configurator.NewManager(cfg,
			serial.NewOpenerAdapter(),
			network.NewManagerAdapter(),
			sender,
			configurator.WithKeepGoing(keepGoingFlag),
		)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		if err := manager.Run(ctx); err != nil {
			return err
		}
		logger.Info("Device configuration sent")
		return nil
	},
}

func applyDeviceFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("datetime") {
		cfg.Device.Datetime = datetimeFlag
	}
	if flags.Changed("server-ip") {
		cfg.Device.ServerIP = serverIPFlag
	}
	if flags.Changed("server-iface") {
		cfg.Device.ServerInterface = serverIfaceFlag
	}
	if flags.Changed("server-port") {
		cfg.Device.ServerPort = serverPortFlag
	}
	if flags.Changed("client-ip") {
		cfg.Device.ClientIP = clientIPFlag
	}
	if flags.Changed("gateway-ip") {
		cfg.Device.GatewayIP = gatewayIPFlag
	}
}

func init() {
	flags := applyCmd.Flags()
	flags.BoolVar(&datetimeFlag, "datetime", false, "Send the current local time")
	flags.StringVar(&serverIPFlag, "server-ip", "", "Server IP address the device reports to")
	flags.StringVar(&serverIfaceFlag, "server-iface", "", "Use this host interface's IPv4 address as server IP")
	flags.StringVar(&serverPortFlag, "server-port", "", "Server TCP port")
	flags.StringVar(&clientIPFlag, "client-ip", "", "IP address of the device")
	flags.StringVar(&gatewayIPFlag, "gateway-ip", "", `Gateway (and DNS) IP address, or "auto" for the host default gateway`)
	flags.BoolVar(&keepGoingFlag, "keep-going", false, "Continue with the remaining fields after a failed one")
	rootCmd.AddCommand(applyCmd)
}
