package auth

import (
	"fmt"
	"net/http"
	"strings"
)

// BearerAuth sends the key as "Authorization: Bearer <key>"
type BearerAuth struct {
	Token string `json:"token"`
}

// NewBearerAuth creates a Bearer token provider
func NewBearerAuth(token string) *BearerAuth {
	return &BearerAuth{Token: token}
}

func (b *BearerAuth) Apply(req *http.Request) error {
	if err := b.Validate(); err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

func (b *BearerAuth) Type() string {
	return "bearer"
}

func (b *BearerAuth) Validate() error {
	if strings.TrimSpace(b.Token) == "" {
		return fmt.Errorf("bearer token cannot be empty")
	}
	return nil
}

// APIKeyAuth sends the key in a custom header (e.g. Azure's "api-key")
type APIKeyAuth struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// NewAPIKeyAuth creates a header-based API key provider
func NewAPIKeyAuth(header, value string) *APIKeyAuth {
	return &APIKeyAuth{
		Header: header,
		Value:  value,
	}
}

// Apply sets the key header on the request
func (a *APIKeyAuth) Apply(req *http.Request) error {
	if err := a.Validate(); err != nil {
		return err
	}
	req.Header.Set(a.Header, a.Value)
	return nil
}

// Type returns the authentication type
func (a *APIKeyAuth) Type() string {
	return "apikey"
}

// Validate checks if the configuration is valid
func (a *APIKeyAuth) Validate() error {
	if strings.TrimSpace(a.Header) == "" {
		return fmt.Errorf("API key header cannot be empty")
	}
	if strings.TrimSpace(a.Value) == "" {
		return fmt.Errorf("API key value cannot be empty")
	}
	return nil
}
