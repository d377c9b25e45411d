package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vangoframework/pellines/internal/domain"
)

func scanCategory(row pgx.Row) (domain.EventCategory, error) {
	var c domain.EventCategory
	err := row.Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.Color, &c.Icon, &c.Active)
	return c, err
}

const listEventCategories = `
SELECT id, slug, name, description, color, icon, active
FROM event_categories
WHERE active
ORDER BY name`

// ListEventCategories returns the active event categories.
func (q *Queries) ListEventCategories(ctx context.Context) ([]domain.EventCategory, error) {
	rows, err := q.db.Query(ctx, listEventCategories)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCategory)
}

const upsertEventCategory = `
INSERT INTO event_categories (slug, name, description, color, icon)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    color = EXCLUDED.color,
    icon = EXCLUDED.icon
RETURNING id, slug, name, description, color, icon, active`

// UpsertEventCategory creates or refreshes a category keyed by slug.
func (q *Queries) UpsertEventCategory(ctx context.Context, c domain.EventCategory) (domain.EventCategory, error) {
	return scanCategory(q.db.QueryRow(ctx, upsertEventCategory, c.Slug, c.Name, c.Description, c.Color, c.Icon))
}

const eventColumns = `e.id, e.title, e.description, e.category_id, c.name, e.start_date, e.end_date,
    e.start_time, e.end_time, e.location, e.all_day, e.public, e.featured, e.max_attendees, e.organizer_name`

func scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.CategoryID, &e.CategoryName, &e.StartDate, &e.EndDate,
		&e.StartTime, &e.EndTime, &e.Location, &e.AllDay, &e.Public, &e.Featured, &e.MaxAttendees, &e.OrganizerName,
	)
	return e, err
}

type ListEventsParams struct {
	From         time.Time
	To           time.Time
	CategorySlug string // empty for all
	Limit        int32  // 0 for no limit
}

const listPublicEvents = `
SELECT ` + eventColumns + `
FROM events e
JOIN event_categories c ON c.id = e.category_id
WHERE e.public
  AND e.end_date >= $1::date
  AND e.start_date <= $2::date
  AND ($3::text = '' OR c.slug = $3::text)
ORDER BY e.start_date, e.start_time
LIMIT NULLIF($4::int, 0)`

// ListPublicEvents returns public events overlapping [From, To].
func (q *Queries) ListPublicEvents(ctx context.Context, arg ListEventsParams) ([]domain.Event, error) {
	rows, err := q.db.Query(ctx, listPublicEvents, arg.From, arg.To, arg.CategorySlug, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanEvent)
}

const getPublicEvent = `
SELECT ` + eventColumns + `
FROM events e
JOIN event_categories c ON c.id = e.category_id
WHERE e.public AND e.id = $1`

// GetPublicEvent returns one public event. It returns pgx.ErrNoRows when the
// event does not exist or is not public.
func (q *Queries) GetPublicEvent(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	return scanEvent(q.db.QueryRow(ctx, getPublicEvent, id))
}

const createEvent = `
WITH inserted AS (
    INSERT INTO events (title, description, category_id, start_date, end_date, start_time, end_time,
        location, all_day, public, featured, max_attendees, organizer_name)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    RETURNING *
)
SELECT ` + eventColumns + `
FROM inserted e
JOIN event_categories c ON c.id = e.category_id`

// CreateEvent inserts an event and returns it with its category name.
func (q *Queries) CreateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	return scanEvent(q.db.QueryRow(ctx, createEvent,
		e.Title, e.Description, e.CategoryID, e.StartDate, e.EndDate, e.StartTime, e.EndTime,
		e.Location, e.AllDay, e.Public, e.Featured, e.MaxAttendees, e.OrganizerName,
	))
}
