package auth

import (
	"net/http"
	"strings"
)

// AuthProvider applies provider credentials to outbound HTTP requests
type AuthProvider interface {
	// Apply adds authentication to the request
	Apply(req *http.Request) error

	// Type returns the authentication type identifier
	Type() string

	// Validate checks if the configuration is valid
	Validate() error
}

// NoAuth represents no authentication (local OpenAI-compatible servers)
type NoAuth struct{}

func (n *NoAuth) Apply(req *http.Request) error {
	return nil
}

func (n *NoAuth) Type() string {
	return "none"
}

func (n *NoAuth) Validate() error {
	return nil
}

// ForAPIKey picks how an API key is sent: nothing when the key is empty,
// a named header when header is set, otherwise a Bearer token.
func ForAPIKey(apiKey, header string) AuthProvider {
	if strings.TrimSpace(apiKey) == "" {
		return &NoAuth{}
	}
	if header = strings.TrimSpace(header); header != "" && !strings.EqualFold(header, "Authorization") {
		return NewAPIKeyAuth(header, apiKey)
	}
	return NewBearerAuth(apiKey)
}

// RedactString hides sensitive data for logging
func RedactString(s string) string {
	if len(s) == 0 {
		return "<empty>"
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "***" + s[len(s)-4:]
}
