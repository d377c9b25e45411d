// Package seed loads reference data (contacts, radio stations, event
// categories, businesses and photos) from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v3"

	"github.com/vangoframework/pellines/internal/domain"
)

// File is the seed document.
type File struct {
	Contacts        []domain.Contact      `yaml:"contacts"`
	RadioStations   []domain.RadioStation `yaml:"radio_stations"`
	EventCategories []Category            `yaml:"event_categories"`
	Businesses      []Business            `yaml:"businesses"`
	Photos          []Photo               `yaml:"photos"`
	Protocols       []Protocol            `yaml:"emergency_protocols"`
}

type Protocol struct {
	Title       string                   `yaml:"title"`
	Description string                   `yaml:"description"`
	Category    string                   `yaml:"category"`
	Priority    string                   `yaml:"priority"`
	DocumentURL string                   `yaml:"document_url"`
	Contacts    []domain.ProtocolContact `yaml:"contacts"`
	Steps       []string                 `yaml:"steps"`
}

func (p Protocol) domain() domain.EmergencyProtocol {
	priority := domain.Priority(p.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}
	return domain.EmergencyProtocol{
		Title:       p.Title,
		Description: p.Description,
		Category:    domain.ProtocolCategory(p.Category),
		Priority:    priority,
		DocumentURL: p.DocumentURL,
		Contacts:    p.Contacts,
		Steps:       p.Steps,
		Active:      true,
	}
}

type Category struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
	Icon        string `yaml:"icon"`
}

type Business struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Address     string `yaml:"address"`
	Phone       string `yaml:"phone"`
	Email       string `yaml:"email"`
	Website     string `yaml:"website"`
	Hours       string `yaml:"hours"`
	Featured    bool   `yaml:"featured"`
	Verified    *bool  `yaml:"verified"` // defaults to true
}

type Photo struct {
	Album   string `yaml:"album"`
	URL     string `yaml:"url"`
	Caption string `yaml:"caption"`
	TakenAt string `yaml:"taken_at"` // YYYY-MM-DD
}

// Load decodes and validates a seed document. Unknown keys are rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads a seed document from disk.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (f *File) validate() error {
	for i, c := range f.Contacts {
		err := validation.ValidateStruct(&c,
			validation.Field(&c.Name, validation.Required),
			validation.Field(&c.Type, validation.Required, validation.In(
				domain.ContactDirectiva, domain.ContactSeguridad, domain.ContactSocial, domain.ContactMunicipal,
				domain.ContactHealth, domain.ContactPolice, domain.ContactFire, domain.ContactService,
			)),
		)
		if err != nil {
			return fmt.Errorf("contacts[%d]: %w", i, err)
		}
	}
	for i, s := range f.RadioStations {
		if err := validation.ValidateStruct(&s,
			validation.Field(&s.Name, validation.Required),
			validation.Field(&s.StreamURL, validation.Required),
		); err != nil {
			return fmt.Errorf("radio_stations[%d]: %w", i, err)
		}
	}
	for i, c := range f.EventCategories {
		if c.Name == "" {
			return fmt.Errorf("event_categories[%d]: name is required", i)
		}
		if c.Slug != "" {
			if err := domain.ValidateSlug(c.Slug); err != nil {
				return fmt.Errorf("event_categories[%d]: %w", i, err)
			}
		}
	}
	for i, b := range f.Businesses {
		db := b.domain()
		if err := db.Validate(); err != nil {
			return fmt.Errorf("businesses[%d] (%s): %w", i, b.Name, err)
		}
	}
	for i, p := range f.Photos {
		if p.URL == "" || p.Album == "" {
			return fmt.Errorf("photos[%d]: album and url are required", i)
		}
		if p.TakenAt != "" {
			if _, err := domain.ParseDate(p.TakenAt); err != nil {
				return fmt.Errorf("photos[%d]: taken_at: %w", i, err)
			}
		}
	}
	for i, p := range f.Protocols {
		if err := p.domain().Validate(); err != nil {
			return fmt.Errorf("emergency_protocols[%d] (%s): %w", i, p.Title, err)
		}
	}
	return nil
}

func (b Business) domain() domain.Business {
	verified := true
	if b.Verified != nil {
		verified = *b.Verified
	}
	db := domain.Business{
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		Category:    domain.BusinessCategory(b.Category),
		Address:     b.Address,
		Phone:       b.Phone,
		Email:       b.Email,
		Website:     b.Website,
		Hours:       b.Hours,
		Featured:    b.Featured,
		Verified:    verified,
		Active:      true,
	}
	db.Prepare()
	return db
}

func (c Category) domain() domain.EventCategory {
	slug := c.Slug
	if slug == "" {
		slug = domain.GenerateSlug(c.Name)
	}
	return domain.EventCategory{
		Name:        c.Name,
		Slug:        slug,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		Active:      true,
	}
}

func (p Photo) domain() domain.Photo {
	var taken time.Time
	if p.TakenAt != "" {
		taken, _ = domain.ParseDate(p.TakenAt)
	}
	return domain.Photo{Album: p.Album, URL: p.URL, Caption: p.Caption, TakenAt: taken}
}

// Store is the subset of queries the seeder writes through.
type Store interface {
	UpsertContact(ctx context.Context, c domain.Contact) error
	UpsertRadioStation(ctx context.Context, s domain.RadioStation) error
	UpsertEventCategory(ctx context.Context, c domain.EventCategory) (domain.EventCategory, error)
	CreateBusiness(ctx context.Context, b domain.Business, createdBy *uuid.UUID) (domain.Business, error)
	UpsertPhoto(ctx context.Context, p domain.Photo) error
	UpsertProtocol(ctx context.Context, p domain.EmergencyProtocol) error
}

// Result counts what Apply wrote.
type Result struct {
	Contacts         int
	RadioStations    int
	EventCategories  int
	Businesses       int
	BusinessesExists int
	Photos           int
	Protocols        int
}

// Apply writes the seed data. It is idempotent: existing rows are updated
// in place and businesses whose slug already exists are left untouched.
func (f *File) Apply(ctx context.Context, store Store) (Result, error) {
	var res Result

	for _, c := range f.Contacts {
		if phone, err := domain.NormalizePhone(c.Phone); err == nil {
			c.Phone = phone
		}
		if err := store.UpsertContact(ctx, c); err != nil {
			return res, fmt.Errorf("contact %q: %w", c.Name, err)
		}
		res.Contacts++
	}

	for _, s := range f.RadioStations {
		if err := store.UpsertRadioStation(ctx, s); err != nil {
			return res, fmt.Errorf("radio station %q: %w", s.Name, err)
		}
		res.RadioStations++
	}

	for _, c := range f.EventCategories {
		if _, err := store.UpsertEventCategory(ctx, c.domain()); err != nil {
			return res, fmt.Errorf("event category %q: %w", c.Name, err)
		}
		res.EventCategories++
	}

	for _, b := range f.Businesses {
		_, err := store.CreateBusiness(ctx, b.domain(), nil)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			res.BusinessesExists++
		case err != nil:
			return res, fmt.Errorf("business %q: %w", b.Name, err)
		default:
			res.Businesses++
		}
	}

	for _, p := range f.Photos {
		if err := store.UpsertPhoto(ctx, p.domain()); err != nil {
			return res, fmt.Errorf("photo %q: %w", p.URL, err)
		}
		res.Photos++
	}

	for _, p := range f.Protocols {
		protocol := p.domain()
		for i, c := range protocol.Contacts {
			if phone, err := domain.NormalizePhone(c.Phone); err == nil {
				protocol.Contacts[i].Phone = phone
			}
		}
		if err := store.UpsertProtocol(ctx, protocol); err != nil {
			return res, fmt.Errorf("protocol %q: %w", p.Title, err)
		}
		res.Protocols++
	}

	return res, nil
}
