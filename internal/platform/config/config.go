package config

import (
	"errors"
	"os"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// AuthMode selects how callers are identified: "header" trusts the
	// X-User-* headers set by a fronting proxy, "bearer" verifies JWTs
	// against the issuer's JWKS.
	AuthMode     string
	AuthIssuer   string
	AuthAudience string
	AuthJWKSURL  string
}

const (
	AuthModeHeader = "header"
	AuthModeBearer = "bearer"
)

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "hearth"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	mode := strings.TrimSpace(os.Getenv("AUTH_MODE"))
	if mode == "" {
		mode = AuthModeHeader
	}
	if mode != AuthModeHeader && mode != AuthModeBearer {
		return Config{}, errors.New("AUTH_MODE must be header or bearer")
	}

	cfg := Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		AuthMode:     mode,
		AuthIssuer:   strings.TrimSpace(os.Getenv("AUTH_ISSUER")),
		AuthAudience: strings.TrimSpace(os.Getenv("AUTH_AUDIENCE")),
		AuthJWKSURL:  strings.TrimSpace(os.Getenv("AUTH_JWKS_URL")),
	}
	if mode == AuthModeBearer && (cfg.AuthIssuer == "" || cfg.AuthJWKSURL == "") {
		return Config{}, errors.New("bearer auth requires AUTH_ISSUER and AUTH_JWKS_URL")
	}
	return cfg, nil
}
