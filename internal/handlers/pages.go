package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/vangoframework/pellines/internal/database/queries"
	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/templates/layouts"
	"github.com/vangoframework/pellines/internal/templates/pages"
)

// today returns midnight of the current day in the community's zone.
func (h *Handlers) today() time.Time {
	now := h.now().In(domain.Zone)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, domain.Zone)
}

// Home loads the landing page pieces concurrently. A failing piece is
// logged and rendered empty rather than failing the page.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	var data pages.HomeData
	today := h.today()

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		list, err := h.store.ListActiveAnnouncements(ctx, queries.ListAnnouncementsParams{Now: h.now(), Limit: 3})
		if err != nil {
			h.logger.Warn("home: announcements unavailable", "error", err)
			return nil
		}
		data.Announcements = list
		return nil
	})
	g.Go(func() error {
		list, err := h.store.ListPublicEvents(ctx, queries.ListEventsParams{From: today, To: today.AddDate(0, 0, 30), Limit: 5})
		if err != nil {
			h.logger.Warn("home: events unavailable", "error", err)
			return nil
		}
		data.Events = list
		return nil
	})
	if h.weather != nil && h.weather.Configured() {
		g.Go(func() error {
			current, err := h.weather.Current(ctx, h.config.WeatherLocation)
			if err != nil {
				h.logger.Warn("home: weather unavailable", "error", err)
				return nil
			}
			data.Weather = current
			return nil
		})
	}
	g.Wait()

	h.render(w, r, http.StatusOK, layouts.Home, pages.Home(data))
}

// Announcements lists active announcements.
func (h *Handlers) Announcements(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("categoria")
	if !domain.AnnouncementCategory(category).Valid() {
		category = ""
	}

	list, err := h.store.ListActiveAnnouncements(r.Context(), queries.ListAnnouncementsParams{Now: h.now(), Category: category})
	if err != nil {
		h.serverError(w, r, "failed to list announcements", err)
		return
	}

	h.render(w, r, http.StatusOK, layouts.MustLookup("/anuncios"), pages.Announcements(list, category))
}

// Calendar shows one month of public events. ?mes=YYYY-MM selects the month.
func (h *Handlers) Calendar(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, domain.Zone)
	if m, err := time.ParseInLocation("2006-01", r.URL.Query().Get("mes"), domain.Zone); err == nil {
		month = m
	}
	category := r.URL.Query().Get("categoria")

	var (
		events     []domain.Event
		categories []domain.EventCategory
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		events, err = h.store.ListPublicEvents(ctx, queries.ListEventsParams{
			From:         month,
			To:           month.AddDate(0, 1, -1),
			CategorySlug: category,
		})
		return err
	})
	g.Go(func() (err error) {
		categories, err = h.store.ListEventCategories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.serverError(w, r, "failed to load calendar", err)
		return
	}

	h.render(w, r, http.StatusOK, layouts.MustLookup("/calendario"), pages.Calendar(pages.CalendarData{
		Month:      month,
		Events:     events,
		Categories: categories,
		Category:   category,
	}))
}

// CalendarICS exports public events from the last month through the next year,
// optionally limited to one category with ?categoria=<slug>.
func (h *Handlers) CalendarICS(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("categoria")
	filename := "calendario-pellines.ics"
	if category != "" {
		if domain.ValidateSlug(category) != nil {
			http.Error(w, "invalid category", http.StatusBadRequest)
			return
		}
		filename = "calendario-pellines-" + category + ".ics"
	}

	today := h.today()
	events, err := h.store.ListPublicEvents(r.Context(), queries.ListEventsParams{
		From:         today.AddDate(0, -1, 0),
		To:           today.AddDate(1, 0, 0),
		CategorySlug: category,
	})
	if err != nil {
		h.serverError(w, r, "failed to list events", err)
		return
	}

	h.writeICS(w, filename, events)
}

// EventICS exports a single public event.
func (h *Handlers) EventICS(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	event, err := h.store.GetPublicEvent(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to get event", err)
		return
	}

	h.writeICS(w, "evento-"+id.String()+".ics", []domain.Event{event})
}

func (h *Handlers) writeICS(w http.ResponseWriter, filename string, events []domain.Event) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := domain.WriteICS(w, events); err != nil {
		h.logger.Error("failed to write calendar", "error", err)
	}
}

// Businesses is the public directory, optionally filtered by ?categoria=.
func (h *Handlers) Businesses(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("categoria")
	if !domain.BusinessCategory(category).Valid() {
		category = ""
	}

	list, err := h.store.ListPublicBusinesses(r.Context(), queries.ListPublicBusinessesParams{Category: category})
	if err != nil {
		h.serverError(w, r, "failed to list businesses", err)
		return
	}

	h.render(w, r, http.StatusOK, layouts.MustLookup("/comercios"), pages.Businesses(list, category))
}

// Business shows a single business by slug.
func (h *Handlers) Business(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if domain.ValidateSlug(slug) != nil {
		h.NotFound(w, r)
		return
	}

	b, err := h.store.GetBusinessBySlug(r.Context(), slug)
	if errors.Is(err, pgx.ErrNoRows) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to get business", err)
		return
	}

	section := layouts.MustLookup("/comercios")
	section.Meta = layouts.Meta{Title: b.Name + " - Comercios Locales", Description: b.Description}
	h.render(w, r, http.StatusOK, section, pages.Business(b))
}

// Contacts is the community directory.
func (h *Handlers) Contacts(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListContacts(r.Context(), nil)
	if err != nil {
		h.serverError(w, r, "failed to list contacts", err)
		return
	}

	h.render(w, r, http.StatusOK, layouts.MustLookup("/contactos"), pages.Contacts(list))
}

// Documents is the document archive.
func (h *Handlers) Documents(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, layouts.MustLookup("/documentos"), pages.DocumentList(pages.Documents))
}

// Emergencies lists emergency numbers, local emergency contacts and protocols.
// Contacts and protocols are optional; a database failure only hides them.
func (h *Handlers) Emergencies(w http.ResponseWriter, r *http.Request) {
	var (
		local     []domain.Contact
		protocols []domain.EmergencyProtocol
	)
	category := domain.ProtocolCategory(r.URL.Query().Get("categoria"))
	if !category.Valid() {
		category = ""
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		list, err := h.store.ListContacts(ctx, []domain.ContactType{
			domain.ContactSeguridad, domain.ContactHealth, domain.ContactPolice, domain.ContactFire,
		})
		if err != nil {
			h.logger.Warn("emergency contacts unavailable", "error", err)
			return nil
		}
		local = list
		return nil
	})
	g.Go(func() error {
		list, err := h.store.ListProtocols(ctx, category)
		if err != nil {
			h.logger.Warn("emergency protocols unavailable", "error", err)
			return nil
		}
		protocols = list
		return nil
	})
	g.Wait()

	h.render(w, r, http.StatusOK, layouts.MustLookup("/emergencias"), pages.Emergencies(local, protocols))
}

// Events lists public events for the next three months.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	list, err := h.store.ListPublicEvents(r.Context(), queries.ListEventsParams{
		From:  today,
		To:    today.AddDate(0, 3, 0),
		Limit: 50,
	})
	if err != nil {
		h.serverError(w, r, "failed to list events", err)
		return
	}

	h.render(w, r, http.StatusOK, layouts.MustLookup("/eventos"), pages.Events(list))
}

// Photos is the gallery.
func (h *Handlers) Photos(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListPhotos(r.Context(), 200)
	if err != nil {
		h.serverError(w, r, "failed to list photos", err)
		return
	}

	h.render(w, r, http.StatusOK, layouts.MustLookup("/fotos"), pages.Photos(list))
}

// Map lists points of interest.
func (h *Handlers) Map(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, layouts.MustLookup("/mapa"), pages.Map(pages.Places))
}

// Radio lists the radio streams.
func (h *Handlers) Radio(w http.ResponseWriter, r *http.Request) {
	stations, err := h.store.ListRadioStations(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to list radio stations", err)
		return
	}

	h.render(w, r, http.StatusOK, layouts.MustLookup("/radio"), pages.Radio(stations))
}

// Weather renders current conditions and the forecast. Upstream failures
// degrade to an explanatory message.
func (h *Handlers) Weather(w http.ResponseWriter, r *http.Request) {
	data := pages.WeatherData{Location: h.config.WeatherLocation, Now: h.now()}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		alerts, err := h.store.ListCurrentAlerts(ctx, data.Now)
		if err != nil {
			h.logger.Warn("weather alerts unavailable", "error", err)
			return nil
		}
		data.Alerts = alerts
		return nil
	})

	if h.weather != nil && h.weather.Configured() {
		data.Configured = true

		g.Go(func() error {
			current, err := h.weather.Current(ctx, data.Location)
			if err != nil {
				h.logger.Warn("current weather unavailable", "error", err)
				return nil
			}
			data.Current = current
			return nil
		})
		g.Go(func() error {
			forecast, err := h.weather.Forecast(ctx, data.Location)
			if err != nil {
				h.logger.Warn("forecast unavailable", "error", err)
				return nil
			}
			data.Forecast = forecast
			return nil
		})
	}
	g.Wait()

	h.render(w, r, http.StatusOK, layouts.MustLookup("/weather"), pages.Weather(data))
}
