package domain

import (
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	icsProdID    = "-//Pinto Los Pellines//Calendario Comunitario//ES"
	icsCalName   = "Calendario Comunitario - Pinto Los Pellines"
	icsUIDHost   = "pellines-calendar"
	icsOrganizer = "mailto:noreply@pellines.cl"
)

// WriteICS writes events as an iCalendar feed.
// All-day events use DATE values with an exclusive end; timed events are
// written in UTC. Long lines are folded and text values escaped by the encoder.
func WriteICS(w io.Writer, events []Event) error {
	cal := ics.NewCalendar()
	cal.SetProductId(icsProdID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(icsCalName)
	cal.SetXWRTimezone(Zone.String())

	stamp := time.Now()
	for _, e := range events {
		ev := cal.AddEvent(e.ID.String() + "@" + icsUIDHost)
		ev.SetDtStampTime(stamp)
		if e.AllDay {
			ev.SetAllDayStartAt(e.StartDate)
			ev.SetAllDayEndAt(e.EndDate.AddDate(0, 0, 1))
		} else {
			ev.SetStartAt(e.Start())
			ev.SetEndAt(e.End())
		}
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		if e.CategoryName != "" {
			ev.AddProperty(ics.ComponentPropertyCategories, e.CategoryName)
		}
		if e.OrganizerName != "" {
			ev.SetOrganizer(icsOrganizer, ics.WithCN(e.OrganizerName))
		}
	}

	return cal.SerializeTo(w)
}
