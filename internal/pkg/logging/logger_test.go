//go:build unit

package logging

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactFormatter_Format(t *testing.T) {
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "Frame contains a marker character",
		Data: logrus.Fields{
			"component": "sender",
			"device":    "/dev/ttyACM0",
			"field":     "server_ip",
			"bytes":     14,
		},
	}

	t.Run("WithoutTime", func(t *testing.T) {
		out, err := (&CompactFormatter{}).Format(entry)
		require.NoError(t, err)
		assert.Equal(t, "[WARNING][sender][/dev/ttyACM0] Frame contains a marker character (bytes=14, field=server_ip)\n", string(out))
	})

	t.Run("WithTime", func(t *testing.T) {
		out, err := (&CompactFormatter{ShowTime: true}).Format(entry)
		require.NoError(t, err)
		assert.Equal(t, "[14:05:09][WARNING][sender][/dev/ttyACM0] Frame contains a marker character (bytes=14, field=server_ip)\n", string(out))
	})

	t.Run("NoFields", func(t *testing.T) {
		plain := &logrus.Entry{Logger: logrus.New(), Level: logrus.InfoLevel, Message: "hello", Data: logrus.Fields{}}
		out, err := (&CompactFormatter{}).Format(plain)
		require.NoError(t, err)
		assert.Equal(t, "[INFO] hello\n", string(out))
	})
}

func TestInitLoggerWithOutput(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	t.Run("JSONFormat", func(t *testing.T) {
		var buf bytes.Buffer
		InitLoggerWithOutput(LogConfig{Level: "debug", Format: "json"}, &buf)
		assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())

		buf.Reset()
		WithComponentAndDevice("connection", "/dev/ttyUSB0").Info("Opened serial port")

		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "Opened serial port", line["msg"])
		assert.Equal(t, "connection", line["component"])
		assert.Equal(t, "/dev/ttyUSB0", line["device"])
	})

	t.Run("InvalidLevelDefaultsToInfo", func(t *testing.T) {
		var buf bytes.Buffer
		InitLoggerWithOutput(LogConfig{Level: "loud", Format: "simple"}, &buf)
		assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
		assert.Contains(t, buf.String(), "Invalid log level 'loud'")
	})

	t.Run("InvalidFormatDefaultsToText", func(t *testing.T) {
		var buf bytes.Buffer
		InitLoggerWithOutput(LogConfig{Level: "info", Format: "xml"}, &buf)
		assert.IsType(t, &logrus.TextFormatter{}, Logger.Formatter)
		assert.Contains(t, buf.String(), "Invalid log format 'xml'")
	})
}

func TestGetLogger_LazyInit(t *testing.T) {
	Logger = nil
	t.Cleanup(func() { Logger = nil })

	l := GetLogger()
	require.NotNil(t, l)
	assert.Same(t, l, GetLogger())
	assert.IsType(t, &CompactFormatter{}, l.Formatter)
}
