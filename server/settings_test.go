package server_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/restmcp/server"
)

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"bypass_authentication: true\nmask_auth_status: true\n"), 0o644))

	s, err := server.LoadSettingsFile(path)
	require.NoError(t, err)

	assert.True(t, s.BypassAuthentication)
	assert.False(t, s.BypassPermissions)
	assert.True(t, s.MaskAuthStatus)
	assert.False(t, s.RequireInitialize)
}

func TestLoadSettingsFile_Missing(t *testing.T) {
	_, err := server.LoadSettingsFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadSettingsFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := server.LoadSettingsFile(path)
	assert.Error(t, err)
}
