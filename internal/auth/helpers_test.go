package auth_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "https://clerk.pellines.test"
	testKID    = "test-key"
)

// generateTestKey creates a test RSA key for signing provider tokens
func generateTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return privateKey
}

// jwksJSON renders the public half of key as a JSON Web Key Set.
func jwksJSON(t *testing.T, key *rsa.PrivateKey) []byte {
	t.Helper()

	set := map[string]any{
		"keys": []map[string]any{{
			"kty": "RSA",
			"kid": testKID,
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		}},
	}

	b, err := json.Marshal(set)
	require.NoError(t, err)
	return b
}

// signToken signs claims with key, filling in valid defaults for anything unset.
func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	now := time.Now()
	defaults := jwt.MapClaims{
		"iss": testIssuer,
		"aud": "convex",
		"sub": "user_2abc",
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	for k, v := range claims {
		if v == nil {
			delete(defaults, k)
			continue
		}
		defaults[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, defaults)
	token.Header["kid"] = testKID

	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}
