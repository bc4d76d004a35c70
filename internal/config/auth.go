package config

import "fmt"

// AuthConfig holds bearer-token authentication configuration.
type AuthConfig struct {
	// JWTSecret is the HS256 secret shared with the auth provider.
	// Tokens are minted externally; this service only verifies them.
	JWTSecret string
	// Issuer, when non-empty, is required to match the token "iss" claim.
	Issuer string
}

// LoadAuthConfigFromEnv loads authentication configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		JWTSecret: GetEnv("AUTH_JWT_SECRET", ""),
		Issuer:    GetEnv("AUTH_JWT_ISSUER", ""),
	}
}

// Validate validates authentication configuration.
func (c AuthConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	return nil
}
