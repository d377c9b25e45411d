package domain

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type AlertSeverity string

const (
	SeverityLow     AlertSeverity = "low"
	SeverityMedium  AlertSeverity = "medium"
	SeverityHigh    AlertSeverity = "high"
	SeverityExtreme AlertSeverity = "extreme"
)

// AlertSeverities lists severities from mildest to worst.
var AlertSeverities = []AlertSeverity{SeverityLow, SeverityMedium, SeverityHigh, SeverityExtreme}

type AlertType string

const (
	AlertStorm AlertType = "storm"
	AlertHeat  AlertType = "heat"
	AlertCold  AlertType = "cold"
	AlertFlood AlertType = "flood"
	AlertWind  AlertType = "wind"
	AlertOther AlertType = "other"
)

// AlertTypes lists every alert type.
var AlertTypes = []AlertType{AlertStorm, AlertHeat, AlertCold, AlertFlood, AlertWind, AlertOther}

// WeatherAlert is a weather warning issued for part of the community.
type WeatherAlert struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Severity     AlertSeverity `json:"severity"`
	Type         AlertType     `json:"type"`
	StartsAt     time.Time     `json:"starts_at"`
	EndsAt       time.Time     `json:"ends_at"`
	Areas        []string      `json:"areas"`
	Instructions string        `json:"instructions"`
	Active       bool          `json:"active"`
}

// ErrAlertEndsBeforeStart is returned when an alert window is empty or inverted.
var ErrAlertEndsBeforeStart = errors.New("must be after the start")

// InEffect reports whether the alert covers now.
func (a WeatherAlert) InEffect(now time.Time) bool {
	return a.Active && !now.Before(a.StartsAt) && now.Before(a.EndsAt)
}

// Severe reports whether the alert should be highlighted.
func (a WeatherAlert) Severe() bool {
	return a.Severity == SeverityHigh || a.Severity == SeverityExtreme
}

// Validate checks an alert before it is published.
func (a WeatherAlert) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&a.Description, validation.Required, validation.Length(3, 4000)),
		validation.Field(&a.Severity, validation.Required, validation.In(
			SeverityLow, SeverityMedium, SeverityHigh, SeverityExtreme,
		)),
		validation.Field(&a.Type, validation.Required, validation.In(
			AlertStorm, AlertHeat, AlertCold, AlertFlood, AlertWind, AlertOther,
		)),
		validation.Field(&a.StartsAt, validation.Required),
		validation.Field(&a.EndsAt, validation.Required, validation.By(func(any) error {
			if !a.EndsAt.After(a.StartsAt) {
				return ErrAlertEndsBeforeStart
			}
			return nil
		})),
		validation.Field(&a.Instructions, validation.Length(0, 4000)),
	)
}
