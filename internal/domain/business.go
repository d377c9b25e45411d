package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

// BusinessCategory classifies entries in the local business directory.
type BusinessCategory string

const (
	BusinessSupermercado BusinessCategory = "supermercado"
	BusinessPanaderia    BusinessCategory = "panaderia"
	BusinessRestaurante  BusinessCategory = "restaurante"
	BusinessFarmacia     BusinessCategory = "farmacia"
	BusinessFerreteria   BusinessCategory = "ferreteria"
	BusinessOtros        BusinessCategory = "otros"
)

// BusinessCategories lists the categories in display order.
var BusinessCategories = []BusinessCategory{
	BusinessSupermercado,
	BusinessPanaderia,
	BusinessRestaurante,
	BusinessFarmacia,
	BusinessFerreteria,
	BusinessOtros,
}

// Valid reports whether c is a known category.
func (c BusinessCategory) Valid() bool {
	for _, known := range BusinessCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Business is a local business listed in the directory.
// Only active, verified businesses are shown publicly.
type Business struct {
	ID          uuid.UUID        `json:"id"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    BusinessCategory `json:"category"`
	Address     string           `json:"address"`
	Phone       string           `json:"phone"`
	Email       string           `json:"email"`
	Website     string           `json:"website"`
	Hours       string           `json:"hours"`
	Featured    bool             `json:"featured"`
	Verified    bool             `json:"verified"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Validate checks a business submission.
func (b Business) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&b.Slug, validation.Required, validation.By(func(value interface{}) error {
			return ValidateSlug(value.(string))
		})),
		validation.Field(&b.Description, validation.Required, validation.Length(10, 2000)),
		validation.Field(&b.Category, validation.Required, validation.In(
			BusinessSupermercado,
			BusinessPanaderia,
			BusinessRestaurante,
			BusinessFarmacia,
			BusinessFerreteria,
			BusinessOtros,
		)),
		validation.Field(&b.Address, validation.Required, validation.Length(5, 200)),
		validation.Field(&b.Phone, validation.By(func(value interface{}) error {
			_, err := NormalizePhone(value.(string))
			return err
		})),
		validation.Field(&b.Email, is.Email),
		validation.Field(&b.Website, is.URL),
		validation.Field(&b.Hours, validation.Length(0, 200)),
	)
}

// Prepare derives the slug and normalises the phone before validation.
func (b *Business) Prepare() {
	if b.Slug == "" {
		b.Slug = GenerateSlug(b.Name)
	}
	if phone, err := NormalizePhone(b.Phone); err == nil {
		b.Phone = phone
	}
}
