package permissions_test

import (
	"net/http"
	"rental/permissions"
	"rental/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.False(t, data.Skip)
	assert.True(t, data.FindPermissions("/v1/auth/login", http.MethodPost).Skip)
	assert.True(t, data.FindPermissions("/v1/units/{id}/bookings/events", http.MethodGet).Skip)

	deleteUnit := data.FindPermissions("/v1/units/{id}", http.MethodDelete)
	assert.True(t, deleteUnit.Allows(constant.RoleAdmin))
	assert.False(t, deleteUnit.Allows(constant.RoleUser))

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/nowhere", http.MethodGet))
}

func TestPermissionAllows(t *testing.T) {
	open := permissions.Permission{}
	assert.True(t, open.Allows(constant.RoleUser))

	staff := permissions.Permission{Permissions: []string{constant.RoleSuperAdmin, constant.RoleAdmin}}
	assert.True(t, staff.Allows(constant.RoleSuperAdmin))
	assert.False(t, staff.Allows(constant.RoleUser))
	assert.False(t, staff.Allows(""))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name: "valid",
			raw:  `{"endpoints":[{"path":"/v1/units/","method":"POST","permissions":["admin"]}]}`,
		},
		{
			name:    "malformed json",
			raw:     `{"endpoints":`,
			wantErr: "failed to decode permissions",
		},
		{
			name:    "unknown method",
			raw:     `{"endpoints":[{"path":"/v1/units/","method":"TRACE"}]}`,
			wantErr: `unsupported method "TRACE"`,
		},
		{
			name:    "unknown role",
			raw:     `{"endpoints":[{"path":"/v1/units/","method":"POST","permissions":["owner"]}]}`,
			wantErr: `unknown role "owner"`,
		},
		{
			name:    "duplicate endpoint",
			raw:     `{"endpoints":[{"path":"/v1/units/","method":"POST"},{"path":"/v1/units/","method":"POST","skip":true}]}`,
			wantErr: "declared twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := permissions.Load([]byte(tt.raw))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, data)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, []string{constant.RoleAdmin}, data.FindPermissions("/v1/units/", http.MethodPost).Permissions)
		})
	}
}
