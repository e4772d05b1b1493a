package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings hold the deployment-level behavior toggles. The zero value is
// the production default: checks enforced, lenient session handling.
type Settings struct {
	// BypassAuthentication skips resource authenticators so tools can be
	// exercised without credentials in test environments.
	BypassAuthentication bool `yaml:"bypass_authentication"`

	// BypassPermissions skips resource permission checks. Throttles are
	// never bypassed.
	BypassPermissions bool `yaml:"bypass_permissions"`

	// MaskAuthStatus keeps the HTTP status at 200 for authentication and
	// permission failures instead of mirroring 401/403.
	MaskAuthStatus bool `yaml:"mask_auth_status"`

	// RequireInitialize rejects tools/list and tools/call on sessions
	// that have not completed the initialize handshake.
	RequireInitialize bool `yaml:"require_initialize"`
}

// LoadSettingsFile reads Settings from a YAML file.
func LoadSettingsFile(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}
