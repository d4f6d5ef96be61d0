package permissions_test

import (
	"testing"

	"cowork/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		method, path string
		role         string
		allowed      bool
		public       bool
	}{
		{method: "POST", path: "/v1/auth/login", public: true, allowed: true},
		{method: "GET", path: "/v1/spaces/{id}", public: true, allowed: true},
		{method: "POST", path: "/v1/spaces/", role: "user", allowed: false},
		{method: "POST", path: "/v1/spaces/", role: "admin", allowed: true},
		{method: "POST", path: "/v1/bookings/", role: "user", allowed: true},
		{method: "POST", path: "/v1/bookings/", role: "admin", allowed: false},
		{method: "GET", path: "/v1/bookings/{id}", role: "superadmin", allowed: true},
		{method: "POST", path: "/v1/auth/admin/register", role: "admin", allowed: false},
		{method: "POST", path: "/v1/auth/admin/register", role: "superadmin", allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" "+tt.role, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.public, permission.Skip)
			assert.Equal(t, tt.allowed, permission.Allows(tt.role))
		})
	}
}

func TestParse(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[
		{"path":"/v1/kyc/","method":"GET","permissions":["admin"]},
		{"path":"/v1/kyc/","method":"GET","permissions":["user"]},
		{"path":"/v1/kyc/me","method":"GET","permissions":[]}
	]}`))
	require.NoError(t, err)

	kyc := data.FindPermissions("/v1/kyc/", "GET")
	assert.Equal(t, []string{"admin"}, kyc.Permissions)
	assert.False(t, data.FindPermissions("/v1/kyc/", "POST").Skip)

	assert.True(t, data.FindPermissions("/v1/kyc/me", "GET").Allows("user"))
	assert.True(t, data.FindPermissions("/v1/unknown", "GET").Allows("user"))

	_, err = permissions.Parse([]byte(`{"endpoints":`))
	assert.Error(t, err)
}
