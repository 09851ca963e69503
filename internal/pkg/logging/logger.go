package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, text, simple, or compact
}

// CompactFormatter renders one line per entry with the component and
// device in brackets ahead of the message.
type CompactFormatter struct {
	ShowTime bool
}

// Format renders a single log entry
func (f *CompactFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	if f.ShowTime {
		fmt.Fprintf(b, "[%s]", entry.Time.Format("15:04:05"))
	}

	fmt.Fprintf(b, "[%s]", strings.ToUpper(entry.Level.String()))

	if component, ok := entry.Data["component"]; ok {
		fmt.Fprintf(b, "[%s]", component)
	}
	if device, ok := entry.Data["device"]; ok {
		fmt.Fprintf(b, "[%s]", device)
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)

	// Remaining fields in sorted order
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "component" && k != "device" {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		b.WriteString(" (")
		for i, key := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s=%v", key, entry.Data[key])
		}
		b.WriteString(")")
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// InitLogger initializes the global logger with the provided configuration.
// Output goes to stderr so stdout stays free for command output.
func InitLogger(config LogConfig) {
	InitLoggerWithOutput(config, os.Stderr)
}

// InitLoggerWithOutput is InitLogger with an explicit destination.
func InitLoggerWithOutput(config LogConfig, out io.Writer) {
	Logger = logrus.New()
	Logger.SetOutput(out)

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
		Logger.Warnf("Invalid log level '%s', defaulting to 'info'", config.Level)
	}
	Logger.SetLevel(level)

	switch strings.ToLower(config.Format) {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	case "simple":
		Logger.SetFormatter(&CompactFormatter{ShowTime: false})
	case "compact":
		Logger.SetFormatter(&CompactFormatter{ShowTime: true})
	case "text", "":
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		Logger.Warnf("Invalid log format '%s', defaulting to 'text'", config.Format)
	}

	Logger.Debugf("Logger initialized with level: %s, format: %s", level.String(), config.Format)
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if Logger == nil {
		InitLogger(LogConfig{
			Level:  "info",
			Format: "simple",
		})
	}
	return Logger
}

// Helper functions for common logging patterns
func WithComponent(component string) *logrus.Entry {
	return GetLogger().WithField("component", component)
}

func WithDevice(device string) *logrus.Entry {
	return GetLogger().WithField("device", device)
}

func WithComponentAndDevice(component, device string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"component": component,
		"device":    device,
	})
}

func WithError(err error) *logrus.Entry {
	return GetLogger().WithError(err)
}
