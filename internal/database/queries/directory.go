package queries

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/vangoframework/pellines/internal/domain"
)

func scanContact(row pgx.Row) (domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Position, &c.Department, &c.Phone, &c.Email, &c.Address,
		&c.Availability, &c.Type, &c.Description)
	return c, err
}

const listContacts = `
SELECT id, name, position, department, phone, email, address, availability, type, description
FROM contacts
WHERE active AND ($1::text[] IS NULL OR type = ANY($1::text[]))
ORDER BY type, name`

// ListContacts returns active contacts, optionally restricted to types.
func (q *Queries) ListContacts(ctx context.Context, types []domain.ContactType) ([]domain.Contact, error) {
	var filter []string
	for _, t := range types {
		filter = append(filter, string(t))
	}

	rows, err := q.db.Query(ctx, listContacts, filter)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanContact)
}

const upsertContact = `
INSERT INTO contacts (name, position, department, phone, email, address, availability, type, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (name, type) DO UPDATE SET
    position = EXCLUDED.position,
    department = EXCLUDED.department,
    phone = EXCLUDED.phone,
    email = EXCLUDED.email,
    address = EXCLUDED.address,
    availability = EXCLUDED.availability,
    description = EXCLUDED.description,
    active = true`

// UpsertContact creates or refreshes a contact keyed by name and type.
func (q *Queries) UpsertContact(ctx context.Context, c domain.Contact) error {
	_, err := q.db.Exec(ctx, upsertContact, c.Name, c.Position, c.Department, c.Phone, c.Email, c.Address,
		c.Availability, c.Type, c.Description)
	return err
}

func scanStation(row pgx.Row) (domain.RadioStation, error) {
	var s domain.RadioStation
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.StreamURL, &s.Frequency, &s.Category, &s.Region,
		&s.Quality, &s.LogoURL)
	return s, err
}

const listRadioStations = `
SELECT id, name, description, stream_url, frequency, category, region, quality, logo_url
FROM radio_stations
WHERE active
ORDER BY category, name`

// ListRadioStations returns the active stations.
func (q *Queries) ListRadioStations(ctx context.Context) ([]domain.RadioStation, error) {
	rows, err := q.db.Query(ctx, listRadioStations)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanStation)
}

const upsertRadioStation = `
INSERT INTO radio_stations (name, description, stream_url, frequency, category, region, quality, logo_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (name) DO UPDATE SET
    description = EXCLUDED.description,
    stream_url = EXCLUDED.stream_url,
    frequency = EXCLUDED.frequency,
    category = EXCLUDED.category,
    region = EXCLUDED.region,
    quality = EXCLUDED.quality,
    logo_url = EXCLUDED.logo_url,
    active = true`

// UpsertRadioStation creates or refreshes a station keyed by name.
func (q *Queries) UpsertRadioStation(ctx context.Context, s domain.RadioStation) error {
	_, err := q.db.Exec(ctx, upsertRadioStation, s.Name, s.Description, s.StreamURL, s.Frequency, s.Category,
		s.Region, s.Quality, s.LogoURL)
	return err
}

const listPhotos = `
SELECT id, album, url, caption, taken_at
FROM photos
ORDER BY taken_at DESC
LIMIT NULLIF($1::int, 0)`

// ListPhotos returns the newest photos first.
func (q *Queries) ListPhotos(ctx context.Context, limit int32) ([]domain.Photo, error) {
	rows, err := q.db.Query(ctx, listPhotos, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.Row) (domain.Photo, error) {
		var p domain.Photo
		err := row.Scan(&p.ID, &p.Album, &p.URL, &p.Caption, &p.TakenAt)
		return p, err
	})
}

const upsertPhoto = `
INSERT INTO photos (album, url, caption, taken_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (url) DO UPDATE SET album = EXCLUDED.album, caption = EXCLUDED.caption`

// UpsertPhoto adds a photo to an album, keyed by URL.
func (q *Queries) UpsertPhoto(ctx context.Context, p domain.Photo) error {
	_, err := q.db.Exec(ctx, upsertPhoto, p.Album, p.URL, p.Caption, p.TakenAt)
	return err
}
