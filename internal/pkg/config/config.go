package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"arduino-config/internal/pkg/logging"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaudRate      = 115200
	DefaultSettleDelay   = 2 * time.Second
	DefaultFrameInterval = 100 * time.Millisecond

	// GatewayAuto asks for the host's default gateway to be sent.
	GatewayAuto = "auto"
)

// SerialConfig represents the serial link to the device
type SerialConfig struct {
	Port          string        `yaml:"port"`
	BaudRate      int           `yaml:"baud_rate"`
	SettleDelay   time.Duration `yaml:"settle_delay"`
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// DeviceConfig represents the values pushed to the device
type DeviceConfig struct {
	Datetime        bool   `yaml:"datetime"`
	ServerIP        string `yaml:"server_ip"`
	ServerInterface string `yaml:"server_interface"`
	ServerPort      string `yaml:"server_port"`
	ClientIP        string `yaml:"client_ip"`
	GatewayIP       string `yaml:"gateway_ip"`
}

// Config represents the main configuration structure
type Config struct {
	Logging logging.LogConfig `yaml:"logging"`
	Serial  SerialConfig      `yaml:"serial"`
	Device  DeviceConfig      `yaml:"device"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: logging.LogConfig{
			Level:  "info",
			Format: "simple",
		},
		Serial: SerialConfig{
			BaudRate:      DefaultBaudRate,
			SettleDelay:   DefaultSettleDelay,
			FrameInterval: DefaultFrameInterval,
		},
	}
}

// Load loads configuration from a YAML file on top of the defaults.
// An empty path returns the defaults.
func Load(configPath string) (*Config, error) {
	config := Default()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return config, nil
}

// envVars maps environment variables to the setting they override.
var envVars = map[string]func(c *Config, v string) error{
	"ARDUINO_SERIAL_PORT": func(c *Config, v string) error {
		c.Serial.Port = v
		return nil
	},
	"ARDUINO_BAUD_RATE": func(c *Config, v string) error {
		baud, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ARDUINO_BAUD_RATE: %w", err)
		}
		c.Serial.BaudRate = baud
		return nil
	},
	"ARDUINO_SERVER_IP": func(c *Config, v string) error {
		c.Device.ServerIP = v
		return nil
	},
	"ARDUINO_SERVER_INTERFACE": func(c *Config, v string) error {
		c.Device.ServerInterface = v
		return nil
	},
	"ARDUINO_SERVER_PORT": func(c *Config, v string) error {
		c.Device.ServerPort = v
		return nil
	},
	"ARDUINO_CLIENT_IP": func(c *Config, v string) error {
		c.Device.ClientIP = v
		return nil
	},
	"ARDUINO_GATEWAY_IP": func(c *Config, v string) error {
		c.Device.GatewayIP = v
		return nil
	},
	"ARDUINO_LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	},
}

// ApplyEnv overrides settings from ARDUINO_* environment variables.
// If envFile is set it is loaded first; variables already present in the
// process environment win over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	for name, apply := range envVars {
		v, ok := os.LookupEnv(name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if err := apply(c, strings.TrimSpace(v)); err != nil {
			return err
		}
	}
	return nil
}

// HasDeviceSettings reports whether at least one field would be sent.
func (c *Config) HasDeviceSettings() bool {
	d := c.Device
	return d.Datetime || d.ServerIP != "" || d.ServerInterface != "" ||
		d.ServerPort != "" || d.ClientIP != "" || d.GatewayIP != ""
}

// ValidateSerial validates the serial link settings only.
func (c *Config) ValidateSerial() error {
	if c.Serial.Port == "" {
		return fmt.Errorf("serial port is required")
	}
	if c.Serial.BaudRate <= 0 {
		return fmt.Errorf("baud rate must be positive, got %d", c.Serial.BaudRate)
	}
	if c.Serial.SettleDelay < 0 {
		return fmt.Errorf("settle delay must not be negative")
	}
	if c.Serial.FrameInterval < 0 {
		return fmt.Errorf("frame interval must not be negative")
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.ValidateSerial(); err != nil {
		return err
	}

	d := c.Device
	if d.ServerIP != "" && d.ServerInterface != "" {
		return fmt.Errorf("device: cannot specify both server_ip and server_interface")
	}
	if err := validateIPv4("server_ip", d.ServerIP); err != nil {
		return err
	}
	if err := validateIPv4("client_ip", d.ClientIP); err != nil {
		return err
	}
	if d.GatewayIP != GatewayAuto {
		if err := validateIPv4("gateway_ip", d.GatewayIP); err != nil {
			return err
		}
	}
	if d.ServerPort != "" {
		p, err := strconv.Atoi(d.ServerPort)
		if err != nil || p < 1 || p > 65535 {
			return fmt.Errorf("device: server_port %q must be a number between 1 and 65535", d.ServerPort)
		}
	}

	return nil
}

func validateIPv4(name, value string) error {
	if value == "" {
		return nil
	}
	ip := net.ParseIP(value)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("device: %s %q is not a valid IPv4 address", name, value)
	}
	return nil
}
