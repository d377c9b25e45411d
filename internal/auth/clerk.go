package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultClerkAPIURL is the identity provider's backend API.
const DefaultClerkAPIURL = "https://api.clerk.com"

// ErrClerkNotConfigured is returned when no backend secret key is set.
var ErrClerkNotConfigured = errors.New("clerk backend api is not configured")

// ClerkClient looks up user profiles through the provider's backend API.
type ClerkClient struct {
	SecretKey  string
	BaseURL    string
	httpClient *http.Client
}

// ClerkUser is the subset of the provider's user object the site uses.
type ClerkUser struct {
	ID                    string `json:"id"`
	Username              string `json:"username"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	ImageURL              string `json:"image_url"`
	PrimaryEmailAddressID string `json:"primary_email_address_id"`
	EmailAddresses        []struct {
		ID           string `json:"id"`
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// DisplayName returns the best human-readable name for the user.
func (u *ClerkUser) DisplayName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	return u.PrimaryEmail()
}

// PrimaryEmail returns the user's primary email address, if any.
func (u *ClerkUser) PrimaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	return ""
}

// NewClerkClient creates a backend API client. An empty baseURL selects the default.
func NewClerkClient(secretKey, baseURL string) *ClerkClient {
	if baseURL == "" {
		baseURL = DefaultClerkAPIURL
	}
	return &ClerkClient{
		SecretKey:  secretKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether a secret key is available.
func (c *ClerkClient) Configured() bool {
	return c != nil && c.SecretKey != ""
}

// GetUser fetches a user's profile by provider subject.
func (c *ClerkClient) GetUser(ctx context.Context, userID string) (*ClerkUser, error) {
	if !c.Configured() {
		return nil, ErrClerkNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/v1/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("clerk api error: %d %s", resp.StatusCode, string(body))
	}

	var user ClerkUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}
