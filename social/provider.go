// Package social implements the OAuth federation client: it exchanges an
// authorization code for a provider identity in two sequential round trips.
package social

import (
	"context"
	"fmt"
)

// Provider is the identity-federation collaborator the auth service calls.
// Exchange must complete before UserInfo; there is no partial success path.
type Provider interface {
	// Exchange trades an authorization code for a provider access token.
	Exchange(ctx context.Context, code string) (*Token, error)

	// UserInfo fetches the user's profile using the access token.
	UserInfo(ctx context.Context, token *Token) (*Profile, error)
}

// Token is a provider access token response.
type Token struct {
	AccessToken string
	TokenType   string
	Scope       string
}

// Profile is the normalized identity returned by the provider.
type Profile struct {
	Email     string
	Name      string
	AvatarURL string
}

// ProviderError captures normalized upstream response details for operator
// diagnostics. It never carries client secrets.
type ProviderError struct {
	Provider    string
	Operation   string
	Status      int
	Code        string
	Description string
	Err         error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "provider error"
	}

	scope := fmt.Sprintf("%s %s", e.Provider, e.Operation)

	if e.Description != "" {
		return fmt.Sprintf("%s failed: %s", scope, e.Description)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s failed: %s", scope, e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", scope, e.Err)
	}

	return fmt.Sprintf("%s failed", scope)
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Metadata flattens the upstream details for error-chain consumers.
func (e *ProviderError) Metadata() map[string]any {
	if e == nil {
		return nil
	}

	meta := map[string]any{
		"provider":  e.Provider,
		"operation": e.Operation,
	}
	if e.Status != 0 {
		meta["status"] = e.Status
	}
	if e.Code != "" {
		meta["code"] = e.Code
	}
	if e.Description != "" {
		meta["description"] = e.Description
	}

	return meta
}
