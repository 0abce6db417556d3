package nango

import (
	"os"
	"strings"
)

// Environment variables holding the Nango connection identity.
const (
	EnvConnectionID  = "NANGO_CONNECTION_ID"
	EnvIntegrationID = "NANGO_INTEGRATION_ID"
	EnvBaseURL       = "NANGO_BASE_URL"
	EnvSecretKey     = "NANGO_SECRET_KEY"
)

// Config identifies one Nango connection. All four fields are required.
type Config struct {
	// ConnectionID names the end-user connection inside Nango.
	ConnectionID string
	// IntegrationID is the provider config key of the Google Sheets integration.
	IntegrationID string
	// BaseURL is the root of the Nango API, without a trailing slash.
	BaseURL string
	// SecretKey authenticates this server against the Nango API.
	SecretKey string
}

// ConfigFromEnv reads the Nango connection identity from the environment.
// It returns an *AuthError naming every missing variable so a misconfigured
// deployment fails at startup rather than on the first tool call.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		ConnectionID:  os.Getenv(EnvConnectionID),
		IntegrationID: os.Getenv(EnvIntegrationID),
		BaseURL:       strings.TrimSuffix(os.Getenv(EnvBaseURL), "/"),
		SecretKey:     os.Getenv(EnvSecretKey),
	}

	var missing []string
	if cfg.ConnectionID == "" {
		missing = append(missing, EnvConnectionID)
	}
	if cfg.IntegrationID == "" {
		missing = append(missing, EnvIntegrationID)
	}
	if cfg.BaseURL == "" {
		missing = append(missing, EnvBaseURL)
	}
	if cfg.SecretKey == "" {
		missing = append(missing, EnvSecretKey)
	}
	if len(missing) > 0 {
		return Config{}, authErrorf(nil, "Missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}
