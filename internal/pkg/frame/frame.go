// Package frame encodes configuration messages into the delimited frames the
// device firmware reads from its serial port.
//
// A frame is '<', a JSON object with exactly one key, then '>':
//
//	<{"server_ip": "192.168.1.50"}>
//
// There is no length prefix, checksum or escaping of the markers. A value that
// contains '<' or '>' breaks framing on the device side.
package frame

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"arduino-config/internal/types"
)

const (
	StartMarker = '<'
	EndMarker   = '>'
)

var (
	// ErrUnknownField is returned for a field the firmware does not accept.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidUTF8 is returned for a value that is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("value is not valid UTF-8")
	// ErrMissingMarkers is returned by Decode when the start or end marker is absent.
	ErrMissingMarkers = errors.New("frame is not enclosed in start/end markers")
	// ErrNotSingleKey is returned by Decode when the payload does not hold exactly one key.
	ErrNotSingleKey = errors.New("payload must hold exactly one key")
)

// SerializationError reports a message that could not be turned into a frame.
type SerializationError struct {
	Field types.Field
	Err   error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("cannot serialize %q: %v", string(e.Field), e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Encode builds the frame for msg.
func Encode(msg types.ConfigMessage) ([]byte, error) {
	payload, err := Payload(msg)
	if err != nil {
		return nil, err
	}

	b := make([]byte, 0, len(payload)+2)
	b = append(b, StartMarker)
	b = append(b, payload...)
	b = append(b, EndMarker)
	return b, nil
}

// Payload returns the JSON object carried inside the frame for msg.
// The layout is {"key": "value"} with a single space after the colon and
// non-ASCII characters written as \u escapes, which is what the firmware's
// reference host tool produced.
func Payload(msg types.ConfigMessage) ([]byte, error) {
	if !msg.Field.Valid() {
		return nil, &SerializationError{Field: msg.Field, Err: ErrUnknownField}
	}
	if !utf8.ValidString(msg.Value) {
		return nil, &SerializationError{Field: msg.Field, Err: ErrInvalidUTF8}
	}

	key, err := encodeString(string(msg.Field))
	if err != nil {
		return nil, &SerializationError{Field: msg.Field, Err: err}
	}
	value, err := encodeString(msg.Value)
	if err != nil {
		return nil, &SerializationError{Field: msg.Field, Err: err}
	}

	var b bytes.Buffer
	b.WriteByte('{')
	b.Write(key)
	b.WriteString(": ")
	b.Write(value)
	b.WriteByte('}')
	return b.Bytes(), nil
}

// ContainsMarker reports whether value would corrupt framing on the device.
func ContainsMarker(value string) bool {
	return strings.ContainsAny(value, string([]rune{StartMarker, EndMarker}))
}

// Decode parses a single frame back into a message.
func Decode(b []byte) (types.ConfigMessage, error) {
	if len(b) < 2 || b[0] != StartMarker || b[len(b)-1] != EndMarker {
		return types.ConfigMessage{}, ErrMissingMarkers
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b[1:len(b)-1], &obj); err != nil {
		return types.ConfigMessage{}, fmt.Errorf("failed to parse payload: %w", err)
	}
	if len(obj) != 1 {
		return types.ConfigMessage{}, ErrNotSingleKey
	}

	var msg types.ConfigMessage
	for k, raw := range obj {
		msg.Field = types.Field(k)
		if !msg.Field.Valid() {
			return types.ConfigMessage{}, fmt.Errorf("%w: %s", ErrUnknownField, k)
		}
		if err := json.Unmarshal(raw, &msg.Value); err != nil {
			return types.ConfigMessage{}, fmt.Errorf("field %s: value must be a string: %w", k, err)
		}
	}
	return msg, nil
}

func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return escapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})), nil
}

func escapeNonASCII(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		if b[0] < utf8.RuneSelf {
			out = append(out, b[0])
			b = b[1:]
			continue
		}
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r <= 0xffff {
			out = fmt.Appendf(out, `\u%04x`, r)
			continue
		}
		hi, lo := utf16.EncodeRune(r)
		out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
	}
	return out
}
