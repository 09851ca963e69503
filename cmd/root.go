package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arduino-config/internal/pkg/config"
	"arduino-config/internal/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	configFlag    string
	envFileFlag   string
	portFlag      string
	baudFlag      int
	settleFlag    time.Duration
	intervalFlag  time.Duration
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:           "arduino-config",
	Short:         "arduino-config pushes network and clock settings to a microcontroller over serial",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI. Any error is printed to stderr and the process exits with status 1.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then ARDUINO_* environment variables, then command-line flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(envFileFlag); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Serial.Port = portFlag
	}
	if flags.Changed("baud") {
		cfg.Serial.BaudRate = baudFlag
	}
	if flags.Changed("settle-delay") {
		cfg.Serial.SettleDelay = settleFlag
	}
	if flags.Changed("frame-interval") {
		cfg.Serial.FrameInterval = intervalFlag
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevelFlag
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormatFlag
	}

	logging.InitLogger(cfg.Logging)
	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.GetLogger().WithField("signal", sig.String()).Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "f", "", "Path to config file (YAML)")
	flags.StringVar(&envFileFlag, "env-file", "", "Path to an env file with ARDUINO_* overrides")
	flags.StringVarP(&portFlag, "port", "p", "", "Serial device (e.g. /dev/ttyACM0 or COM19)")
	flags.IntVarP(&baudFlag, "baud", "b", config.DefaultBaudRate, "Baud rate expected by the firmware")
	flags.DurationVar(&settleFlag, "settle-delay", config.DefaultSettleDelay, "Wait after opening the port before the first frame")
	flags.DurationVar(&intervalFlag, "frame-interval", config.DefaultFrameInterval, "Minimum spacing between frames (0 disables)")
	flags.StringVar(&logLevelFlag, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormatFlag, "log-format", "simple", "Log format (text, json, simple, compact)")
}
