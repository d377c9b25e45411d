package auth

import "context"

// Identity is the authenticated caller as asserted by the identity provider.
type Identity struct {
	Subject    string
	Issuer     string
	Name       string
	Email      string
	PictureURL string
	Role       string
}

// IsAdmin reports whether the provider marked the caller as an administrator.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == "admin"
}

// Authenticator fetches the caller's identity. Implementations may block on a
// round trip to the identity provider. A nil identity with a nil error means
// the caller is not authenticated.
type Authenticator interface {
	GetUserIdentity(ctx context.Context) (*Identity, error)
}

// UserID returns the caller's subject identifier.
// ok is false when the caller is unauthenticated; provider errors are returned as-is.
func UserID(ctx context.Context, a Authenticator) (string, bool, error) {
	identity, err := a.GetUserIdentity(ctx)
	if err != nil {
		return "", false, err
	}
	if identity == nil || identity.Subject == "" {
		return "", false, nil
	}
	return identity.Subject, true, nil
}

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity returns a copy of ctx carrying the identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext returns the identity stored on ctx, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// ContextAuthenticator serves the identity that middleware placed on the request context.
type ContextAuthenticator struct{}

// GetUserIdentity implements Authenticator.
func (ContextAuthenticator) GetUserIdentity(ctx context.Context) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return IdentityFromContext(ctx), nil
}
