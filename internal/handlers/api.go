package handlers

import (
	"errors"
	"net/http"

	"github.com/vangoframework/pellines/internal/auth"
	"github.com/vangoframework/pellines/internal/middleware"
	"github.com/vangoframework/pellines/internal/weather"
)

type weatherResponse struct {
	Success  bool   `json:"success"`
	Data     any    `json:"data,omitempty"`
	Location string `json:"location,omitempty"`
	Type     string `json:"type,omitempty"`
	Error    string `json:"error,omitempty"`
}

// WeatherAPI serves current conditions or the forecast as JSON.
// Query parameters: location (defaults to the configured location) and
// type, either "current" (default) or "forecast".
func (h *Handlers) WeatherAPI(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		location = h.config.WeatherLocation
	}
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = "current"
	}
	if kind != "current" && kind != "forecast" {
		middleware.WriteJSON(w, http.StatusBadRequest, weatherResponse{Error: `type must be "current" or "forecast"`})
		return
	}

	if h.weather == nil || !h.weather.Configured() {
		middleware.WriteJSON(w, http.StatusServiceUnavailable, weatherResponse{Error: "Weather service not configured"})
		return
	}

	var (
		data any
		err  error
	)
	if kind == "current" {
		data, err = h.weather.Current(r.Context(), location)
	} else {
		data, err = h.weather.Forecast(r.Context(), location)
	}

	switch {
	case errors.Is(err, weather.ErrLocationNotFound):
		middleware.WriteJSON(w, http.StatusNotFound, weatherResponse{Error: "Weather data not available", Location: location})
	case err != nil:
		h.logger.Error("weather lookup failed", "location", location, "type", kind, "error", err)
		middleware.WriteJSON(w, http.StatusBadGateway, weatherResponse{Error: "Failed to fetch weather data"})
	default:
		middleware.WriteJSON(w, http.StatusOK, weatherResponse{Success: true, Data: data, Location: location, Type: kind})
	}
}

// Me returns the caller's identity provider subject.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok, err := auth.UserID(r.Context(), auth.ContextAuthenticator{})
	if err != nil {
		h.logger.Error("failed to resolve identity", "error", err)
		middleware.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "identity unavailable"})
		return
	}
	if !ok {
		middleware.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"userId":  userID,
		"name":    identity.Name,
		"email":   identity.Email,
		"isAdmin": identity.IsAdmin(),
	})
}
