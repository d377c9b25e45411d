package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vangoframework/pellines/internal/auth"
	"github.com/vangoframework/pellines/internal/config"
	"github.com/vangoframework/pellines/internal/database/queries"
	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/middleware"
	"github.com/vangoframework/pellines/internal/templates/layouts"
	"github.com/vangoframework/pellines/internal/templates/pages"
	"github.com/vangoframework/pellines/internal/weather"
)

// Store is the data access the handlers need. *queries.Queries implements it.
type Store interface {
	UpsertUser(ctx context.Context, arg queries.UpsertUserParams) (queries.User, error)

	ListPublicBusinesses(ctx context.Context, arg queries.ListPublicBusinessesParams) ([]domain.Business, error)
	GetBusinessBySlug(ctx context.Context, slug string) (domain.Business, error)
	CreateBusiness(ctx context.Context, b domain.Business, createdBy *uuid.UUID) (domain.Business, error)

	ListEventCategories(ctx context.Context) ([]domain.EventCategory, error)
	ListPublicEvents(ctx context.Context, arg queries.ListEventsParams) ([]domain.Event, error)
	GetPublicEvent(ctx context.Context, id uuid.UUID) (domain.Event, error)

	ListActiveAnnouncements(ctx context.Context, arg queries.ListAnnouncementsParams) ([]domain.Announcement, error)
	CreateAnnouncement(ctx context.Context, a domain.Announcement, authorID *uuid.UUID) (domain.Announcement, error)

	ListCurrentAlerts(ctx context.Context, now time.Time) ([]domain.WeatherAlert, error)
	CreateAlert(ctx context.Context, a domain.WeatherAlert, createdBy *uuid.UUID) (domain.WeatherAlert, error)
	ListProtocols(ctx context.Context, category domain.ProtocolCategory) ([]domain.EmergencyProtocol, error)

	ListContacts(ctx context.Context, types []domain.ContactType) ([]domain.Contact, error)
	ListRadioStations(ctx context.Context) ([]domain.RadioStation, error)
	ListPhotos(ctx context.Context, limit int32) ([]domain.Photo, error)
}

// ProfileLookup fills in profile details the token does not carry.
type ProfileLookup interface {
	Configured() bool
	GetUser(ctx context.Context, userID string) (*auth.ClerkUser, error)
}

// Handlers contains all HTTP handler dependencies.
type Handlers struct {
	config   *config.Config
	store    Store
	sessions *auth.SessionStore
	verifier middleware.TokenVerifier
	profiles ProfileLookup
	weather  weather.Source
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a new Handlers instance with all dependencies.
func New(
	cfg *config.Config,
	store Store,
	sessions *auth.SessionStore,
	verifier middleware.TokenVerifier,
	profiles ProfileLookup,
	weather weather.Source,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		config:   cfg,
		store:    store,
		sessions: sessions,
		verifier: verifier,
		profiles: profiles,
		weather:  weather,
		logger:   logger,
		now:      time.Now,
	}
}

// Routes registers every page, API and auth route on r.
func (h *Handlers) Routes(r chi.Router) {
	// Public pages
	r.Get("/", h.Home)
	r.Get("/anuncios", h.Announcements)
	r.Get("/calendario", h.Calendar)
	r.Get("/calendario.ics", h.CalendarICS)
	r.Get("/comercios", h.Businesses)
	r.Get("/comercios/{slug}", h.Business)
	r.Get("/contactos", h.Contacts)
	r.Get("/documentos", h.Documents)
	r.Get("/emergencias", h.Emergencies)
	r.Get("/eventos", h.Events)
	r.Get("/eventos/{id}.ics", h.EventICS)
	r.Get("/fotos", h.Photos)
	r.Get("/mapa", h.Map)
	r.Get("/radio", h.Radio)
	r.Get("/weather", h.Weather)

	// API
	r.Get("/api/weather", h.WeatherAPI)
	r.With(middleware.RequireAPIAuth).Get("/api/me", h.Me)

	// Auth
	r.Get("/sign-in", h.SignIn)
	r.Post("/auth/session", h.CreateSession)
	r.Post("/auth/logout", h.Logout)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/dashboard", h.Dashboard)
		r.Post("/dashboard/comercios", h.SubmitBusiness)
		r.With(middleware.RequireAdmin).Post("/dashboard/anuncios", h.CreateAnnouncement)
		r.With(middleware.RequireAdmin).Post("/dashboard/alertas", h.CreateAlert)
	})

	r.NotFound(h.NotFound)
}

// render writes a section page. Output is buffered so a failed render becomes a 500.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, section layouts.Section, content templ.Component) {
	ctx := layouts.WithPath(r.Context(), r.URL.Path)

	var buf bytes.Buffer
	if err := layouts.Page(section, content).Render(ctx, &buf); err != nil {
		h.serverError(w, r, "failed to render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, "path", r.URL.Path, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// NotFound renders the 404 page inside the public shell.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, layouts.Section{Meta: layouts.Meta{Title: "Página no encontrada - Pinto Los Pellines"}, Layout: layouts.KindPublic}, pages.NotFound())
}
