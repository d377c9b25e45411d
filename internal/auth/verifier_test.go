package auth_test

import (
	"context"
	"crypto/rsa"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/pellines/internal/auth"
)

func testVerifier(t *testing.T) (*auth.Verifier, *rsa.PrivateKey) {
	t.Helper()

	key := generateTestKey(t)
	provider, err := auth.NewProviderConfig(testIssuer)
	require.NoError(t, err)

	v := auth.NewVerifierWithKeyfunc(provider, func(token *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	})
	return v, key
}

func TestVerifier_ValidToken(t *testing.T) {
	v, key := testVerifier(t)

	token := signToken(t, key, jwt.MapClaims{
		"name":    "Vecina Pellines",
		"email":   "vecina@example.com",
		"picture": "https://example.com/a.png",
		"role":    "admin",
	})

	identity, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", identity.Subject)
	assert.Equal(t, testIssuer, identity.Issuer)
	assert.Equal(t, "Vecina Pellines", identity.Name)
	assert.Equal(t, "vecina@example.com", identity.Email)
	assert.Equal(t, "https://example.com/a.png", identity.PictureURL)
	assert.True(t, identity.IsAdmin())
}

func TestVerifier_RejectsInvalidTokens(t *testing.T) {
	v, key := testVerifier(t)
	otherKey := generateTestKey(t)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong issuer", signToken(t, key, jwt.MapClaims{"iss": "https://evil.test"})},
		{"wrong audience", signToken(t, key, jwt.MapClaims{"aud": "other-app"})},
		{"expired", signToken(t, key, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})},
		{"missing expiry", signToken(t, key, jwt.MapClaims{"exp": nil})},
		{"missing subject", signToken(t, key, jwt.MapClaims{"sub": nil})},
		{"wrong key", signToken(t, otherKey, nil)},
		{"garbage", "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestVerifier_RejectsHMAC(t *testing.T) {
	v, _ := testVerifier(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": testIssuer,
		"aud": "convex",
		"sub": "user_2abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = v.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifier_EmptyToken(t *testing.T) {
	v, _ := testVerifier(t)

	_, err := v.Verify("")
	assert.ErrorIs(t, err, auth.ErrMissingToken)
}

func TestNewVerifier_FetchesJWKS(t *testing.T) {
	key := generateTestKey(t)
	jwks := jwksJSON(t, key)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/jwks.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(jwks)
	}))
	defer server.Close()

	provider, err := auth.NewProviderConfig(server.URL)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v, err := auth.NewVerifier(ctx, provider, logger)
	require.NoError(t, err)
	defer v.Close()

	token := signToken(t, key, jwt.MapClaims{"iss": server.URL})
	identity, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", identity.Subject)
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		cookie  string
		want    string
		wantErr bool
	}{
		{"bearer header", "Bearer abc.def.ghi", "", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "", "abc", false},
		{"provider cookie", "", "cookie.token", "cookie.token", false},
		{"header wins over cookie", "Bearer header.token", "cookie.token", "header.token", false},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", "", true},
		{"empty bearer", "Bearer ", "", "", true},
		{"nothing", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: auth.ProviderCookieName, Value: tt.cookie})
			}

			got, err := auth.TokenFromRequest(req)
			if tt.wantErr {
				assert.ErrorIs(t, err, auth.ErrMissingToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
