package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vangoframework/pellines/internal/auth"
	"github.com/vangoframework/pellines/internal/database/queries"
	"github.com/vangoframework/pellines/internal/middleware"
	"github.com/vangoframework/pellines/internal/templates/layouts"
	"github.com/vangoframework/pellines/internal/templates/pages"
)

// localRedirect returns target if it is a path on this site, else fallback.
func localRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, `/\`) {
		return fallback
	}
	return target
}

// SignIn renders the sign-in page, or sends signed-in users on their way.
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	redirect := localRedirect(r.URL.Query().Get("redirect_url"), "/dashboard")

	if auth.IdentityFromContext(r.Context()) != nil {
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}

	section := layouts.Section{
		Path:   "/sign-in",
		Meta:   layouts.Meta{Title: "Iniciar sesión - Pinto Los Pellines"},
		Layout: layouts.KindWithHeader,
	}
	h.render(w, r, http.StatusOK, section, pages.SignIn(pages.SignInData{
		FrontendAPI:    h.config.Provider.Domain,
		PublishableKey: h.config.ClerkPublishableKey,
		HostedURL:      h.config.SignInURL,
		Redirect:       redirect,
		Error:          r.URL.Query().Get("error"),
	}))
}

// CreateSession exchanges a provider token for a site session cookie and
// records the user.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := auth.TokenFromRequest(r)
	if err != nil {
		middleware.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing_token"})
		return
	}

	identity, err := h.verifier.Verify(token)
	if err != nil {
		h.logger.Warn("rejected provider token", "error", err)
		middleware.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		return
	}

	// Token templates may omit profile claims.
	if (identity.Name == "" || identity.Email == "") && h.profiles != nil && h.profiles.Configured() {
		profile, err := h.profiles.GetUser(ctx, identity.Subject)
		if err != nil && !errors.Is(err, auth.ErrClerkNotConfigured) {
			h.logger.Warn("failed to fetch user profile", "subject", identity.Subject, "error", err)
		}
		if profile != nil {
			if identity.Name == "" {
				identity.Name = profile.DisplayName()
			}
			if identity.Email == "" {
				identity.Email = profile.PrimaryEmail()
			}
			if identity.PictureURL == "" {
				identity.PictureURL = profile.ImageURL
			}
		}
	}

	user, err := h.store.UpsertUser(ctx, queries.UpsertUserParams{
		ExternalID: identity.Subject,
		Name:       identity.Name,
		Email:      identity.Email,
		ImageURL:   identity.PictureURL,
	})
	if err != nil {
		h.logger.Error("failed to upsert user", "subject", identity.Subject, "error", err)
		middleware.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "database"})
		return
	}

	session := &auth.SessionData{
		UserID:     user.ID,
		Subject:    identity.Subject,
		Issuer:     identity.Issuer,
		Name:       user.Name,
		Email:      user.Email,
		PictureURL: user.ImageURL,
		Role:       identity.Role,
	}
	if err := h.sessions.Set(w, session); err != nil {
		h.logger.Error("failed to set session", "error", err)
		middleware.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "session"})
		return
	}

	h.logger.Info("user signed in", "user_id", user.ID, "subject", identity.Subject)
	w.WriteHeader(http.StatusNoContent)
}

// Logout clears the session and redirects to home.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
