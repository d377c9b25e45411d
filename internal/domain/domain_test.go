package domain_test

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/pellines/internal/domain"
)

func validBusiness() domain.Business {
	return domain.Business{
		Name:        "Panadería Ñuble",
		Slug:        "panaderia-nuble",
		Description: "Pan amasado y hallullas todos los días.",
		Category:    domain.BusinessPanaderia,
		Address:     "Camino a Los Pellines km 3",
		Email:       "contacto@panaderia.cl",
		Website:     "https://panaderia.cl",
	}
}

func TestBusiness_Validate(t *testing.T) {
	require.NoError(t, validBusiness().Validate())

	tests := []struct {
		name   string
		mutate func(b *domain.Business)
		field  string
	}{
		{"missing name", func(b *domain.Business) { b.Name = "" }, "name"},
		{"bad slug", func(b *domain.Business) { b.Slug = "Bad--Slug" }, "slug"},
		{"short description", func(b *domain.Business) { b.Description = "pan" }, "description"},
		{"unknown category", func(b *domain.Business) { b.Category = "joyeria" }, "category"},
		{"missing address", func(b *domain.Business) { b.Address = "" }, "address"},
		{"bad email", func(b *domain.Business) { b.Email = "not-an-email" }, "email"},
		{"bad website", func(b *domain.Business) { b.Website = "not a url" }, "website"},
		{"bad phone", func(b *domain.Business) { b.Phone = "123" }, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBusiness()
			tt.mutate(&b)

			err := b.Validate()
			require.Error(t, err)

			errs, ok := err.(validation.Errors)
			require.True(t, ok, "expected validation.Errors, got %T", err)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestBusiness_Prepare(t *testing.T) {
	b := domain.Business{Name: "Ferretería El Roble"}
	b.Prepare()
	assert.Equal(t, "ferreteria-el-roble", b.Slug)

	b = domain.Business{Name: "x", Slug: "keep-me"}
	b.Prepare()
	assert.Equal(t, "keep-me", b.Slug)
}

func TestBusinessCategory_Valid(t *testing.T) {
	assert.True(t, domain.BusinessFarmacia.Valid())
	assert.False(t, domain.BusinessCategory("joyeria").Valid())
}

func TestNormalizePhone(t *testing.T) {
	got, err := domain.NormalizePhone("")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = domain.NormalizePhone("+56 2 2123 4567")
	require.NoError(t, err)
	assert.Equal(t, "+56221234567", got)

	_, err = domain.NormalizePhone("123")
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)

	_, err = domain.NormalizePhone("call me")
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestEvent_Validate(t *testing.T) {
	base := domain.Event{
		Title:     "Asamblea General de Vecinos",
		StartDate: mustDate(t, "2025-01-15"),
		EndDate:   mustDate(t, "2025-01-15"),
		StartTime: "19:00",
		EndTime:   "21:00",
	}
	require.NoError(t, base.Validate())

	e := base
	e.EndTime = "18:00"
	assert.ErrorIs(t, e.Validate(), domain.ErrEventEndsBeforeStart)

	e = base
	e.StartTime = "25:00"
	assert.Error(t, e.Validate())

	e = base
	e.Title = ""
	assert.Error(t, e.Validate())

	e = base
	e.EndDate = mustDate(t, "2025-01-14")
	assert.ErrorIs(t, e.Validate(), domain.ErrEventEndsBeforeStart)
}

func TestEvent_StartEnd(t *testing.T) {
	e := domain.Event{
		StartDate: mustDate(t, "2025-01-18"),
		EndDate:   mustDate(t, "2025-01-18"),
		StartTime: "16:00",
	}

	assert.Equal(t, 16, e.Start().Hour())
	assert.Equal(t, 23, e.End().Hour())
	assert.Equal(t, 59, e.End().Minute())

	e.AllDay = true
	assert.Equal(t, 0, e.Start().Hour())
}

func TestAnnouncement_IsActive(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, domain.Announcement{PublishedAt: past}.IsActive(now))
	assert.True(t, domain.Announcement{PublishedAt: past, ExpiresAt: &future}.IsActive(now))
	assert.False(t, domain.Announcement{PublishedAt: past, ExpiresAt: &past}.IsActive(now))
	assert.False(t, domain.Announcement{PublishedAt: future}.IsActive(now))
}

func TestAnnouncement_Validate(t *testing.T) {
	a := domain.Announcement{
		Title:    "Corte de agua",
		Content:  "El martes no habrá agua entre 9 y 13 horas.",
		Priority: domain.PriorityHigh,
		Category: domain.AnnouncementMaintenance,
	}
	require.NoError(t, a.Validate())
	assert.False(t, a.Urgent())

	a.Priority = "whenever"
	assert.Error(t, a.Validate())

	a.Priority = domain.PriorityCritical
	assert.True(t, a.Urgent())
}

func TestContact_IsEmergency(t *testing.T) {
	for _, typ := range []domain.ContactType{domain.ContactSeguridad, domain.ContactHealth, domain.ContactPolice, domain.ContactFire} {
		assert.True(t, domain.Contact{Type: typ}.IsEmergency(), typ)
	}
	for _, typ := range []domain.ContactType{domain.ContactDirectiva, domain.ContactSocial, domain.ContactMunicipal, domain.ContactService} {
		assert.False(t, domain.Contact{Type: typ}.IsEmergency(), typ)
	}
}

func TestGroupByAlbum(t *testing.T) {
	photos := []domain.Photo{
		{Album: "Fiesta", Caption: "1"},
		{Album: "Río", Caption: "2"},
		{Album: "Fiesta", Caption: "3"},
	}

	albums, byAlbum := domain.GroupByAlbum(photos)
	assert.Equal(t, []string{"Fiesta", "Río"}, albums)
	assert.Len(t, byAlbum["Fiesta"], 2)
	assert.Len(t, byAlbum["Río"], 1)
}

// unfold joins folded iCalendar continuation lines.
func unfold(s string) string {
	return strings.ReplaceAll(s, "\r\n ", "")
}

func TestWriteICS(t *testing.T) {
	id := uuid.MustParse("6f1c2b9e-8d4a-4e55-9a51-1d2c3b4a5f60")
	events := []domain.Event{
		{
			ID:            id,
			Title:         "Festival de la Chilenidad",
			Description:   "Empanadas, cueca; y más",
			StartDate:     mustDate(t, "2025-01-18"),
			EndDate:       mustDate(t, "2025-01-19"),
			AllDay:        true,
			Location:      "Plaza de Armas",
			CategoryName:  "Cultural",
			OrganizerName: "Municipalidad",
		},
		{
			ID:        uuid.New(),
			Title:     "Asamblea",
			StartDate: mustDate(t, "2025-01-15"),
			EndDate:   mustDate(t, "2025-01-15"),
			StartTime: "19:00",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, domain.WriteICS(&buf, events))
	out := unfold(buf.String())

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Contains(t, out, "VERSION:2.0\r\n")
	assert.Contains(t, out, "PRODID:-//Pinto Los Pellines//Calendario Comunitario//ES\r\n")
	assert.Contains(t, out, "METHOD:PUBLISH\r\n")
	assert.Contains(t, out, "X-WR-TIMEZONE:America/Santiago\r\n")
	assert.Contains(t, out, "UID:"+id.String()+"@pellines-calendar\r\n")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250118\r\n")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250120\r\n")
	assert.Contains(t, out, "SUMMARY:Festival de la Chilenidad\r\n")
	assert.Contains(t, out, "Empanadas")
	assert.Contains(t, out, "CATEGORIES:Cultural\r\n")
	assert.Contains(t, out, "Municipalidad")
	assert.Contains(t, out, "mailto:noreply@pellines.cl")
	// 19:00 to 23:59 in Santiago summer time (UTC-3).
	assert.Contains(t, out, "DTSTART:20250115T220000Z\r\n")
	assert.Contains(t, out, "DTEND:20250116T025900Z\r\n")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
}

func TestWriteICS_FoldsLongLines(t *testing.T) {
	description := strings.Repeat("Reunión de vecinos en la sede. ", 130)
	events := []domain.Event{{
		ID:          uuid.New(),
		Title:       "Asamblea",
		Description: description,
		StartDate:   mustDate(t, "2025-03-09"),
		EndDate:     mustDate(t, "2025-03-09"),
		AllDay:      true,
	}}

	var buf bytes.Buffer
	require.NoError(t, domain.WriteICS(&buf, events))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n")
	folded := 0
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 75, "line exceeds 75 octets: %q", line)
		assert.True(t, utf8.ValidString(line), "fold split a character: %q", line)
		if strings.HasPrefix(line, " ") {
			folded++
		}
	}
	assert.Greater(t, folded, 40)
	assert.Contains(t, unfold(buf.String()), "Reunión de vecinos en la sede.")
}

func TestSortProtocols(t *testing.T) {
	list := []domain.EmergencyProtocol{
		{Title: "Sismo", Priority: domain.PriorityMedium},
		{Title: "Robo", Priority: domain.PriorityHigh},
		{Title: "Incendio", Priority: domain.PriorityCritical},
		{Title: "Emergencia médica", Priority: domain.PriorityCritical},
		{Title: "Corte de luz", Priority: domain.PriorityLow},
	}
	domain.SortProtocols(list)

	var titles []string
	for _, p := range list {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"Emergencia médica", "Incendio", "Robo", "Sismo", "Corte de luz"}, titles)
}

func TestWeatherAlert_Validate(t *testing.T) {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, domain.Zone)
	a := domain.WeatherAlert{
		Title:       "Sistema frontal",
		Description: "Lluvias intensas",
		Severity:    domain.SeverityHigh,
		Type:        domain.AlertStorm,
		StartsAt:    start,
		EndsAt:      start.Add(6 * time.Hour),
		Active:      true,
	}
	require.NoError(t, a.Validate())
	assert.True(t, a.Severe())
	assert.True(t, a.InEffect(start.Add(time.Hour)))
	assert.False(t, a.InEffect(start.Add(7*time.Hour)))

	a.EndsAt = start
	assert.Error(t, a.Validate())

	a.EndsAt = start.Add(time.Hour)
	a.Severity = "apocalyptic"
	assert.Error(t, a.Validate())
}
