//go:build unit

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField_Valid(t *testing.T) {
	for _, f := range Fields {
		assert.True(t, f.Valid(), "field %s", f)
	}

	assert.False(t, Field("netmask").Valid())
	assert.False(t, Field("").Valid())
	assert.False(t, Field("Server_IP").Valid())
}

func TestFields_Order(t *testing.T) {
	assert.Equal(t, []Field{"datetime", "server_ip", "port", "client_ip", "gateway_ip"}, Fields)
}
