package profile

import (
	"os"
	"testing"
)

func clearGatewayEnvVars() {
	for _, envVar := range []string{
		"WEAVER_GATEWAY_API_KEY",
		"WEAVER_GATEWAY_BASE_URL",
		"WEAVER_GATEWAY_MODEL",
	} {
		os.Unsetenv(envVar)
	}
}

func TestGatewayProfileDefaults(t *testing.T) {
	clearGatewayEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	if profile.GatewayAPIKey != "" {
		t.Errorf("GatewayAPIKey should be empty by default, got %q", profile.GatewayAPIKey)
	}
	if profile.GatewayBaseURL != "https://api.openai.com/v1" {
		t.Errorf("GatewayBaseURL default: expected %q, got %q", "https://api.openai.com/v1", profile.GatewayBaseURL)
	}
	if profile.GatewayModel != "gpt-4o-mini" {
		t.Errorf("GatewayModel default: expected %q, got %q", "gpt-4o-mini", profile.GatewayModel)
	}
}

func TestGatewayProfileFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		field    func(*Profile) string
		expected string
	}{
		{
			name:     "WEAVER_GATEWAY_API_KEY",
			envVar:   "WEAVER_GATEWAY_API_KEY",
			envValue: "test-key-123",
			field:    func(p *Profile) string { return p.GatewayAPIKey },
			expected: "test-key-123",
		},
		{
			name:     "WEAVER_GATEWAY_BASE_URL",
			envVar:   "WEAVER_GATEWAY_BASE_URL",
			envValue: "https://custom.gateway.proxy/v1",
			field:    func(p *Profile) string { return p.GatewayBaseURL },
			expected: "https://custom.gateway.proxy/v1",
		},
		{
			name:     "WEAVER_GATEWAY_MODEL",
			envVar:   "WEAVER_GATEWAY_MODEL",
			envValue: "gpt-4",
			field:    func(p *Profile) string { return p.GatewayModel },
			expected: "gpt-4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearGatewayEnvVars()
			os.Setenv(tt.envVar, tt.envValue)
			defer clearGatewayEnvVars()

			profile := &Profile{}
			profile.FromEnv()

			if actual := tt.field(profile); actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, actual)
			}
		})
	}
}

func TestValidateDefaultsMode(t *testing.T) {
	profile := &Profile{Mode: "bogus", Data: t.TempDir(), Driver: "sqlite"}
	if err := profile.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if profile.Mode != "dev" {
		t.Errorf("unknown mode should fall back to dev, got %q", profile.Mode)
	}
	if profile.DSN == "" {
		t.Error("sqlite DSN should be derived from the data directory")
	}
}
