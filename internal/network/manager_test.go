package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

func TestNewManager(t *testing.T) {
	m, err := NewManager(types.NetworkConfig{BaseURL: "https://api.example.com/v1"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/", m.String())
	assert.Equal(t, "api.example.com", m.BaseURL().Host)
}

func TestNewManager_InvalidConfig(t *testing.T) {
	m, err := NewManager(types.NetworkConfig{})
	assert.ErrorIs(t, err, types.ErrBaseURLEmpty)
	assert.Nil(t, m)

	m, err = NewManager(types.NetworkConfig{BaseURL: "not a url"})
	assert.ErrorIs(t, err, types.ErrBaseURLInvalid)
	assert.Nil(t, m)
}

func TestManagerBaseURL_ReturnsCopy(t *testing.T) {
	m, err := NewManager(types.NetworkConfig{BaseURL: "https://api.example.com"})
	require.NoError(t, err)

	u := m.BaseURL()
	u.Host = "evil.example.com"
	assert.Equal(t, "api.example.com", m.BaseURL().Host)
}

func TestManagerEndpoint(t *testing.T) {
	m, err := NewManager(types.NetworkConfig{BaseURL: "https://api.example.com/v1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "simple path", ref: "toys", want: "https://api.example.com/v1/toys"},
		{name: "nested path", ref: "toys/42", want: "https://api.example.com/v1/toys/42"},
		{name: "leading slash stays under base", ref: "/toys", want: "https://api.example.com/v1/toys"},
		{name: "query kept", ref: "toys?age=5", want: "https://api.example.com/v1/toys?age=5"},
		{name: "empty is base", ref: "", want: "https://api.example.com/v1/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Endpoint(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestManagerEndpoint_RejectsAbsolute(t *testing.T) {
	m, err := NewManager(types.NetworkConfig{BaseURL: "https://api.example.com"})
	require.NoError(t, err)

	_, err = m.Endpoint("https://other.example.com/toys")
	assert.ErrorIs(t, err, types.ErrEndpointAbsolute)

	_, err = m.Endpoint("//other.example.com/toys")
	assert.NoError(t, err, "leading slashes are trimmed so this is a relative path")
}

func TestManagerEndpoint_StaysUnderBase(t *testing.T) {
	m, err := NewManager(types.NetworkConfig{BaseURL: "https://api.example.com/v1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{name: "parent of base", ref: "../admin", wantErr: types.ErrEndpointOutsideBase},
		{name: "climbs out through a child", ref: "toys/../../secret", wantErr: types.ErrEndpointOutsideBase},
		{name: "leading slash then parent", ref: "/../admin", wantErr: types.ErrEndpointOutsideBase},
		{name: "encoded parent", ref: "%2e%2e/admin", wantErr: types.ErrEndpointOutsideBase},
		{name: "parent within base", ref: "toys/../kinds", want: "https://api.example.com/v1/kinds"},
		{name: "back to base", ref: "toys/..", want: "https://api.example.com/v1/"},
		{name: "current dir", ref: "./toys", want: "https://api.example.com/v1/toys"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Endpoint(tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
