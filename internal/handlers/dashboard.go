package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vangoframework/pellines/internal/auth"
	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/middleware"
	"github.com/vangoframework/pellines/internal/templates/layouts"
	"github.com/vangoframework/pellines/internal/templates/pages"
)

var flashes = map[string]string{
	"comercio": "Recibimos tu comercio. Lo publicaremos cuando la directiva lo verifique.",
	"anuncio":  "Anuncio publicado.",
	"alerta":   "Alerta meteorológica publicada.",
}

// alertTimeLayout is the value format of datetime-local inputs.
const alertTimeLayout = "2006-01-02T15:04"

// Dashboard is the signed-in overview.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, http.StatusOK, pages.DashboardData{
		Flash: flashes[r.URL.Query().Get("ok")],
	})
}

func (h *Handlers) renderDashboard(w http.ResponseWriter, r *http.Request, status int, data pages.DashboardData) {
	data.Identity = auth.IdentityFromContext(r.Context())
	h.render(w, r, status, layouts.MustLookup("/dashboard"), pages.Dashboard(data))
}

// formOf captures the submitted values of the named fields.
func formOf(r *http.Request, fields ...string) pages.Form {
	f := pages.Form{Values: make(map[string]string, len(fields))}
	for _, name := range fields {
		f.Values[name] = strings.TrimSpace(r.PostFormValue(name))
	}
	return f
}

// fieldErrors flattens ozzo validation errors into per-field messages.
// Keys are renamed through rename, so derived fields point at their inputs.
func fieldErrors(err error, rename map[string]string) (map[string]string, bool) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if to, ok := rename[field]; ok {
			field = to
		}
		if _, seen := out[field]; !seen {
			out[field] = ferr.Error()
		}
	}
	return out, true
}

// authorID returns the users row behind the session, if there is one.
func authorID(r *http.Request) *uuid.UUID {
	if s := middleware.GetSession(r.Context()); s != nil && s.UserID != uuid.Nil {
		id := s.UserID
		return &id
	}
	return nil
}

// SubmitBusiness records a business for review. Submissions stay unverified
// and hidden until the association verifies them.
func (h *Handlers) SubmitBusiness(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := formOf(r, "name", "category", "description", "address", "phone", "email", "website", "hours")
	b := domain.Business{
		Name:        form.Values["name"],
		Category:    domain.BusinessCategory(form.Values["category"]),
		Description: form.Values["description"],
		Address:     form.Values["address"],
		Phone:       form.Values["phone"],
		Email:       form.Values["email"],
		Website:     form.Values["website"],
		Hours:       form.Values["hours"],
		Active:      true,
	}
	b.Prepare()

	if err := b.Validate(); err != nil {
		errs, ok := fieldErrors(err, map[string]string{"slug": "name"})
		if !ok {
			h.serverError(w, r, "failed to validate business", err)
			return
		}
		form.Errors = errs
		h.renderDashboard(w, r, http.StatusUnprocessableEntity, pages.DashboardData{Business: form})
		return
	}

	created, err := h.store.CreateBusiness(r.Context(), b, authorID(r))
	if errors.Is(err, pgx.ErrNoRows) {
		form.Errors = map[string]string{"name": "ya existe un comercio con este nombre"}
		h.renderDashboard(w, r, http.StatusConflict, pages.DashboardData{Business: form})
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to create business", err)
		return
	}

	h.logger.Info("business submitted", "business_id", created.ID, "slug", created.Slug)
	http.Redirect(w, r, "/dashboard?ok=comercio", http.StatusSeeOther)
}

// CreateAnnouncement publishes an announcement immediately.
func (h *Handlers) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := formOf(r, "title", "content", "priority", "category", "expires_at")
	identity := auth.IdentityFromContext(r.Context())
	a := domain.Announcement{
		Title:       form.Values["title"],
		Content:     form.Values["content"],
		Priority:    domain.Priority(form.Values["priority"]),
		Category:    domain.AnnouncementCategory(form.Values["category"]),
		AuthorName:  identity.Name,
		PublishedAt: h.now(),
	}

	errs := map[string]string{}
	if raw := form.Values["expires_at"]; raw != "" {
		day, err := domain.ParseDate(raw)
		if err != nil {
			errs["expires_at"] = "fecha inválida"
		} else {
			// Expires at the end of the chosen day.
			expires := day.AddDate(0, 0, 1)
			if !expires.After(a.PublishedAt) {
				errs["expires_at"] = "la fecha debe ser futura"
			}
			a.ExpiresAt = &expires
		}
	}

	if err := a.Validate(); err != nil {
		verrs, ok := fieldErrors(err, nil)
		if !ok {
			h.serverError(w, r, "failed to validate announcement", err)
			return
		}
		for k, v := range verrs {
			errs[k] = v
		}
	}
	if len(errs) > 0 {
		form.Errors = errs
		h.renderDashboard(w, r, http.StatusUnprocessableEntity, pages.DashboardData{Announcement: form})
		return
	}

	created, err := h.store.CreateAnnouncement(r.Context(), a, authorID(r))
	if err != nil {
		h.serverError(w, r, "failed to create announcement", err)
		return
	}

	h.logger.Info("announcement published", "announcement_id", created.ID, "priority", created.Priority)
	http.Redirect(w, r, "/dashboard?ok=anuncio", http.StatusSeeOther)
}

// CreateAlert publishes a weather alert for the given window.
func (h *Handlers) CreateAlert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := formOf(r, "title", "description", "severity", "type", "starts_at", "ends_at", "areas", "instructions")
	a := domain.WeatherAlert{
		Title:        form.Values["title"],
		Description:  form.Values["description"],
		Severity:     domain.AlertSeverity(form.Values["severity"]),
		Type:         domain.AlertType(form.Values["type"]),
		Instructions: form.Values["instructions"],
		Active:       true,
	}
	for _, area := range strings.Split(form.Values["areas"], ",") {
		if area = strings.TrimSpace(area); area != "" {
			a.Areas = append(a.Areas, area)
		}
	}

	errs := map[string]string{}
	for field, dst := range map[string]*time.Time{"starts_at": &a.StartsAt, "ends_at": &a.EndsAt} {
		raw := form.Values[field]
		if raw == "" {
			continue
		}
		t, err := time.ParseInLocation(alertTimeLayout, raw, domain.Zone)
		if err != nil {
			errs[field] = "fecha inválida"
			continue
		}
		*dst = t
	}
	if _, bad := errs["ends_at"]; !bad && !a.EndsAt.IsZero() && !a.EndsAt.After(h.now()) {
		errs["ends_at"] = "la fecha debe ser futura"
	}

	if err := a.Validate(); err != nil {
		verrs, ok := fieldErrors(err, nil)
		if !ok {
			h.serverError(w, r, "failed to validate alert", err)
			return
		}
		for k, v := range verrs {
			if _, seen := errs[k]; !seen {
				errs[k] = v
			}
		}
	}
	if len(errs) > 0 {
		form.Errors = errs
		h.renderDashboard(w, r, http.StatusUnprocessableEntity, pages.DashboardData{Alert: form})
		return
	}

	created, err := h.store.CreateAlert(r.Context(), a, authorID(r))
	if err != nil {
		h.serverError(w, r, "failed to create alert", err)
		return
	}

	h.logger.Info("weather alert published", "alert_id", created.ID, "severity", created.Severity)
	http.Redirect(w, r, "/dashboard?ok=alerta", http.StatusSeeOther)
}
