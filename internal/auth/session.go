package auth

import (
	"encoding/gob"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// SessionCookieName is the name of the site's own session cookie.
const SessionCookieName = "pellines_session"

// ErrSessionSecretTooShort is returned when the session secret cannot supply both keys.
var ErrSessionSecretTooShort = errors.New("session secret must be at least 64 bytes")

func init() {
	// Register types for gob encoding
	gob.Register(uuid.UUID{})
	gob.Register(SessionData{})
}

// SessionData holds the verified identity stored in the cookie.
type SessionData struct {
	UserID     uuid.UUID // users row
	Subject    string    // identity provider subject
	Issuer     string
	Name       string
	Email      string
	PictureURL string
	Role       string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Identity converts the session back into the identity it was created from.
func (d *SessionData) Identity() *Identity {
	return &Identity{
		Subject:    d.Subject,
		Issuer:     d.Issuer,
		Name:       d.Name,
		Email:      d.Email,
		PictureURL: d.PictureURL,
		Role:       d.Role,
	}
}

// SessionStore manages session cookies.
type SessionStore struct {
	cookie *securecookie.SecureCookie
	name   string
	maxAge int
	secure bool
}

// NewSessionStore creates a new session store.
// The secret must be at least 64 bytes: first 32 for hash key, next 32 for block key.
func NewSessionStore(secret string, maxAge time.Duration, secure bool) (*SessionStore, error) {
	if len(secret) < 64 {
		return nil, ErrSessionSecretTooShort
	}

	hashKey := []byte(secret)[:32]
	blockKey := []byte(secret)[32:64]

	return &SessionStore{
		cookie: securecookie.New(hashKey, blockKey),
		name:   SessionCookieName,
		maxAge: int(maxAge.Seconds()),
		secure: secure,
	}, nil
}

// Get retrieves the session data from the request cookie.
func (s *SessionStore) Get(r *http.Request) (*SessionData, error) {
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return nil, err
	}

	var data SessionData
	if err := s.cookie.Decode(s.name, cookie.Value, &data); err != nil {
		return nil, err
	}

	// Check expiration
	if time.Now().After(data.ExpiresAt) {
		return nil, http.ErrNoCookie
	}

	return &data, nil
}

// Set stores the session data in a cookie.
func (s *SessionStore) Set(w http.ResponseWriter, data *SessionData) error {
	data.CreatedAt = time.Now()
	data.ExpiresAt = data.CreatedAt.Add(time.Duration(s.maxAge) * time.Second)

	encoded, err := s.cookie.Encode(s.name, data)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   s.maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Clear removes the session cookie.
func (s *SessionStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
