package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientTypeFromName(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		want     ClientType
		wantOK   bool
	}{
		{"machine", "machine", ClientTypeMachine, true},
		{"auth code", "auth_code", ClientTypeAuthCode, true},
		{"unknown", "spa", ClientType{}, false},
		{"empty", "", ClientType{}, false},
		{"case sensitive", "Machine", ClientType{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClientTypeFromName(tt.typeName)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientTypeFromValue(t *testing.T) {
	got, ok := ClientTypeFromValue(1)
	assert.True(t, ok)
	assert.Equal(t, ClientTypeMachine, got)

	got, ok = ClientTypeFromValue(2)
	assert.True(t, ok)
	assert.Equal(t, ClientTypeAuthCode, got)

	_, ok = ClientTypeFromValue(3)
	assert.False(t, ok)
}

func TestClientTypeGrantTypes(t *testing.T) {
	assert.Equal(t, []string{"client_credentials"}, ClientTypeMachine.GrantTypes())
	assert.Equal(t, []string{"authorization_code", "refresh_token"}, ClientTypeAuthCode.GrantTypes())

	// returned slice is a copy, mutating it must not leak into the enum
	grants := ClientTypeMachine.GrantTypes()
	grants[0] = "mutated"
	assert.Equal(t, []string{"client_credentials"}, ClientTypeMachine.GrantTypes())
}

func TestClientTypeProperties(t *testing.T) {
	assert.True(t, ClientTypeMachine.IsMachine())
	assert.False(t, ClientTypeAuthCode.IsMachine())
	assert.True(t, ClientType{}.IsZero())
	assert.False(t, ClientTypeMachine.IsZero())
	assert.Equal(t, "machine", ClientTypeMachine.Name())
	assert.Equal(t, 2, ClientTypeAuthCode.Value())
}
