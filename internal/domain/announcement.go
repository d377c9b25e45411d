package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type AnnouncementCategory string

const (
	AnnouncementGeneral     AnnouncementCategory = "general"
	AnnouncementEmergency   AnnouncementCategory = "emergency"
	AnnouncementMaintenance AnnouncementCategory = "maintenance"
	AnnouncementEvent       AnnouncementCategory = "event"
	AnnouncementNews        AnnouncementCategory = "news"
)

// Valid reports whether c is a known category.
func (c AnnouncementCategory) Valid() bool {
	switch c {
	case AnnouncementGeneral, AnnouncementEmergency, AnnouncementMaintenance, AnnouncementEvent, AnnouncementNews:
		return true
	}
	return false
}

// Announcement is a notice published by the association.
type Announcement struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Priority    Priority             `json:"priority"`
	Category    AnnouncementCategory `json:"category"`
	AuthorName  string               `json:"author_name"`
	PublishedAt time.Time            `json:"published_at"`
	ExpiresAt   *time.Time           `json:"expires_at,omitempty"`
}

// IsActive reports whether the announcement is still current at now.
func (a Announcement) IsActive(now time.Time) bool {
	if now.Before(a.PublishedAt) {
		return false
	}
	return a.ExpiresAt == nil || now.Before(*a.ExpiresAt)
}

// Urgent reports whether the announcement should be highlighted.
func (a Announcement) Urgent() bool {
	return a.Priority == PriorityCritical || a.Category == AnnouncementEmergency
}

// Validate checks an announcement before it is published.
func (a Announcement) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&a.Content, validation.Required, validation.Length(3, 10000)),
		validation.Field(&a.Priority, validation.Required, validation.In(
			PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical,
		)),
		validation.Field(&a.Category, validation.Required, validation.In(
			AnnouncementGeneral, AnnouncementEmergency, AnnouncementMaintenance, AnnouncementEvent, AnnouncementNews,
		)),
	)
}
