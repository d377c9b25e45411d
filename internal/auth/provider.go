package auth

import (
	"errors"
	"strings"
)

// ApplicationID is the audience the identity provider issues tokens for.
const ApplicationID = "convex"

// ErrProviderDomainMissing is returned when no identity provider domain is configured.
var ErrProviderDomainMissing = errors.New("identity provider domain is not configured")

// ProviderConfig describes the external identity provider.
type ProviderConfig struct {
	Domain        string
	ApplicationID string
}

// NewProviderConfig builds the provider descriptor for the given domain.
func NewProviderConfig(domain string) (ProviderConfig, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return ProviderConfig{}, ErrProviderDomainMissing
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}

	return ProviderConfig{
		Domain:        strings.TrimRight(domain, "/"),
		ApplicationID: ApplicationID,
	}, nil
}

// Issuer returns the expected "iss" claim.
func (p ProviderConfig) Issuer() string {
	return strings.TrimRight(p.Domain, "/")
}

// JWKSURL returns the provider's JSON Web Key Set endpoint.
func (p ProviderConfig) JWKSURL() string {
	return p.Issuer() + "/.well-known/jwks.json"
}
