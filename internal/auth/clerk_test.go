package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/pellines/internal/auth"
)

func TestClerkClient_GetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/user_2abc", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "user_2abc",
			"first_name": "Rosa",
			"last_name": "Muñoz",
			"image_url": "https://img.example.com/rosa.png",
			"primary_email_address_id": "idn_2",
			"email_addresses": [
				{"id": "idn_1", "email_address": "old@example.com"},
				{"id": "idn_2", "email_address": "rosa@example.com"}
			]
		}`))
	}))
	defer server.Close()

	client := auth.NewClerkClient("sk_test", server.URL)
	user, err := client.GetUser(context.Background(), "user_2abc")
	require.NoError(t, err)

	assert.Equal(t, "Rosa Muñoz", user.DisplayName())
	assert.Equal(t, "rosa@example.com", user.PrimaryEmail())
	assert.Equal(t, "https://img.example.com/rosa.png", user.ImageURL)
}

func TestClerkClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"code":"resource_not_found"}]}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := auth.NewClerkClient("sk_test", server.URL)
	_, err := client.GetUser(context.Background(), "user_missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClerkClient_NotConfigured(t *testing.T) {
	client := auth.NewClerkClient("", "")
	assert.False(t, client.Configured())
	assert.Equal(t, auth.DefaultClerkAPIURL, client.BaseURL)

	_, err := client.GetUser(context.Background(), "user_2abc")
	assert.ErrorIs(t, err, auth.ErrClerkNotConfigured)
}

func TestClerkUser_DisplayNameFallbacks(t *testing.T) {
	user := &auth.ClerkUser{Username: "rosita"}
	assert.Equal(t, "rosita", user.DisplayName())

	user = &auth.ClerkUser{}
	assert.Equal(t, "", user.DisplayName())
}
