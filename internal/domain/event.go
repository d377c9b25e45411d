package domain

import (
	"errors"
	"regexp"
	"time"
	_ "time/tzdata"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

// DateLayout is the calendar date format used in forms, URLs and storage.
const DateLayout = "2006-01-02"

// ErrEventEndsBeforeStart is returned when an event's end precedes its start.
var ErrEventEndsBeforeStart = errors.New("event must not end before it starts")

var clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Zone is the community's local time zone.
var Zone = mustLoadZone("America/Santiago")

func mustLoadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// EventCategory groups calendar events.
type EventCategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Active      bool      `json:"active"`
}

// Event is an entry in the community calendar.
// StartDate and EndDate are calendar dates; StartTime and EndTime are
// optional "HH:MM" clock times and are ignored for all-day events.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CategoryID    uuid.UUID `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Location      string    `json:"location"`
	AllDay        bool      `json:"all_day"`
	Public        bool      `json:"public"`
	MaxAttendees  int       `json:"max_attendees"`
	OrganizerName string    `json:"organizer_name"`
	Featured      bool      `json:"featured"`
}

// Validate checks an event submission.
func (e Event) Validate() error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&e.Description, validation.Length(0, 4000)),
		validation.Field(&e.StartDate, validation.Required),
		validation.Field(&e.EndDate, validation.Required),
		validation.Field(&e.StartTime, validation.Match(clockRegex)),
		validation.Field(&e.EndTime, validation.Match(clockRegex)),
		validation.Field(&e.Location, validation.Length(0, 200)),
		validation.Field(&e.MaxAttendees, validation.Min(0)),
	)
	if err != nil {
		return err
	}

	if e.End().Before(e.Start()) {
		return ErrEventEndsBeforeStart
	}
	return nil
}

// Start returns the moment the event begins in the community's zone.
func (e Event) Start() time.Time {
	clock := "00:00"
	if !e.AllDay && e.StartTime != "" {
		clock = e.StartTime
	}
	return combine(e.StartDate, clock)
}

// End returns the moment the event ends in the community's zone.
func (e Event) End() time.Time {
	clock := "23:59"
	if !e.AllDay && e.EndTime != "" {
		clock = e.EndTime
	}
	return combine(e.EndDate, clock)
}

func combine(date time.Time, clock string) time.Time {
	t, err := time.ParseInLocation("15:04", clock, Zone)
	if err != nil {
		t = time.Time{}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, Zone)
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Zone)
}
