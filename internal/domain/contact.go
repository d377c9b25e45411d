package domain

import "github.com/google/uuid"

type ContactType string

const (
	ContactDirectiva ContactType = "directiva"
	ContactSeguridad ContactType = "seguridad"
	ContactSocial    ContactType = "social"
	ContactMunicipal ContactType = "municipal"
	ContactHealth    ContactType = "health"
	ContactPolice    ContactType = "police"
	ContactFire      ContactType = "fire"
	ContactService   ContactType = "service"
)

// Contact is a person or service listed in the community directory.
type Contact struct {
	ID           uuid.UUID   `json:"id" yaml:"-"`
	Name         string      `json:"name" yaml:"name"`
	Position     string      `json:"position" yaml:"position"`
	Department   string      `json:"department" yaml:"department"`
	Phone        string      `json:"phone" yaml:"phone"`
	Email        string      `json:"email" yaml:"email"`
	Address      string      `json:"address" yaml:"address"`
	Availability string      `json:"availability" yaml:"availability"`
	Type         ContactType `json:"type" yaml:"type"`
	Description  string      `json:"description" yaml:"description"`
}

// IsEmergency reports whether the contact belongs on the emergency page.
func (c Contact) IsEmergency() bool {
	switch c.Type {
	case ContactSeguridad, ContactHealth, ContactPolice, ContactFire:
		return true
	}
	return false
}
