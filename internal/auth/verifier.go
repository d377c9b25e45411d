package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ProviderCookieName is the cookie the identity provider's frontend SDK stores its session token in.
const ProviderCookieName = "__session"

var (
	ErrMissingToken = errors.New("missing or malformed token")
	ErrInvalidToken = errors.New("invalid token")
)

// providerClaims are the claims issued by the provider's JWT template.
type providerClaims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	Role    string `json:"role"`
}

// Verifier validates identity provider tokens.
type Verifier struct {
	provider ProviderConfig
	keyfunc  jwt.Keyfunc
	jwks     *keyfunc.JWKS
	parser   *jwt.Parser
}

// NewVerifier fetches the provider's JWKS and keeps it refreshed in the
// background until ctx is done or Close is called.
func NewVerifier(ctx context.Context, provider ProviderConfig, logger *slog.Logger) (*Verifier, error) {
	jwks, err := keyfunc.Get(provider.JWKSURL(), keyfunc.Options{
		Ctx: ctx,
		RefreshErrorHandler: func(err error) {
			logger.Warn("failed to refresh identity provider keys", "error", err)
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks from %s: %w", provider.JWKSURL(), err)
	}

	v := NewVerifierWithKeyfunc(provider, jwks.Keyfunc)
	v.jwks = jwks
	return v, nil
}

// NewVerifierWithKeyfunc creates a verifier that resolves signing keys with kf.
func NewVerifierWithKeyfunc(provider ProviderConfig, kf jwt.Keyfunc) *Verifier {
	return &Verifier{
		provider: provider,
		keyfunc:  kf,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256"}),
			jwt.WithIssuer(provider.Issuer()),
			jwt.WithAudience(provider.ApplicationID),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(5*time.Second),
		),
	}
}

// Verify parses and validates a token and returns the identity it asserts.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	var claims providerClaims
	if _, err := v.parser.ParseWithClaims(tokenString, &claims, v.keyfunc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &Identity{
		Subject:    claims.Subject,
		Issuer:     claims.Issuer,
		Name:       claims.Name,
		Email:      claims.Email,
		PictureURL: claims.Picture,
		Role:       claims.Role,
	}, nil
}

// Close stops the background key refresh.
func (v *Verifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

// TokenFromRequest extracts a provider token from the Authorization header,
// falling back to the provider's session cookie.
func TokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", ErrMissingToken
		}
		return strings.TrimSpace(token), nil
	}

	if cookie, err := r.Cookie(ProviderCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", ErrMissingToken
}
