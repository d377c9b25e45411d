package domain

import (
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type ProtocolCategory string

const (
	ProtocolFire            ProtocolCategory = "fire"
	ProtocolMedical         ProtocolCategory = "medical"
	ProtocolPolice          ProtocolCategory = "police"
	ProtocolNaturalDisaster ProtocolCategory = "natural_disaster"
	ProtocolSecurity        ProtocolCategory = "security"
	ProtocolEvacuation      ProtocolCategory = "evacuation"
	ProtocolGeneral         ProtocolCategory = "general"
)

// Valid reports whether c is a known category.
func (c ProtocolCategory) Valid() bool {
	switch c {
	case ProtocolFire, ProtocolMedical, ProtocolPolice, ProtocolNaturalDisaster,
		ProtocolSecurity, ProtocolEvacuation, ProtocolGeneral:
		return true
	}
	return false
}

// ProtocolContact is someone to call while following a protocol.
type ProtocolContact struct {
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone" yaml:"phone"`
	Role  string `json:"role" yaml:"role"`
}

// EmergencyProtocol is a step-by-step procedure for one kind of emergency.
type EmergencyProtocol struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    ProtocolCategory  `json:"category"`
	Priority    Priority          `json:"priority"`
	DocumentURL string            `json:"document_url"`
	Contacts    []ProtocolContact `json:"contacts"`
	Steps       []string          `json:"steps"`
	Active      bool              `json:"active"`
}

// Validate checks a protocol before it is stored.
func (p EmergencyProtocol) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&p.Category, validation.Required, validation.In(
			ProtocolFire, ProtocolMedical, ProtocolPolice, ProtocolNaturalDisaster,
			ProtocolSecurity, ProtocolEvacuation, ProtocolGeneral,
		)),
		validation.Field(&p.Priority, validation.Required, validation.In(
			PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical,
		)),
		validation.Field(&p.Steps, validation.Required),
	)
}

// Rank orders priorities from most to least urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// SortProtocols orders protocols by priority, then title.
func SortProtocols(list []EmergencyProtocol) {
	slices.SortStableFunc(list, func(a, b EmergencyProtocol) int {
		if d := a.Priority.Rank() - b.Priority.Rank(); d != 0 {
			return d
		}
		return strings.Compare(a.Title, b.Title)
	})
}
