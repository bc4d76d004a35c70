package config

import (
	"fmt"
	"strings"

	"github.com/idleforest/team-service/pkg/invitecode"
)

// InviteConfig holds invite-link configuration.
type InviteConfig struct {
	// PublicBaseURL is the externally visible base URL used to build
	// shareable invite links (e.g. "https://idleforest.com").
	PublicBaseURL string
	// CodeLength is the generated invite code length in characters.
	CodeLength int
}

// LoadInviteConfigFromEnv loads invite configuration from environment variables.
func LoadInviteConfigFromEnv() InviteConfig {
	return InviteConfig{
		PublicBaseURL: GetEnv("INVITE_PUBLIC_BASE_URL", "http://localhost:8080"),
		CodeLength:    GetEnvInt("INVITE_CODE_LENGTH", invitecode.DefaultLength),
	}
}

// Validate validates invite configuration.
func (c InviteConfig) Validate() error {
	if c.PublicBaseURL == "" {
		return fmt.Errorf("INVITE_PUBLIC_BASE_URL must not be empty")
	}
	if !strings.HasPrefix(c.PublicBaseURL, "http://") && !strings.HasPrefix(c.PublicBaseURL, "https://") {
		return fmt.Errorf("INVITE_PUBLIC_BASE_URL must start with http:// or https://")
	}
	if c.CodeLength < invitecode.MinLength || c.CodeLength > invitecode.MaxLength {
		return fmt.Errorf("INVITE_CODE_LENGTH must be between %d and %d",
			invitecode.MinLength, invitecode.MaxLength)
	}
	return nil
}

// ShareURL builds the shareable URL for an invite code.
func (c InviteConfig) ShareURL(code string) string {
	return strings.TrimSuffix(c.PublicBaseURL, "/") + "/invite/" + code
}
