package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vangoframework/pellines/internal/domain"
)

// orEmpty keeps NOT NULL array and jsonb columns from receiving NULL.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

const alertColumns = `id, title, description, severity, type, starts_at, ends_at, areas, instructions, active`

func scanAlert(row pgx.Row) (domain.WeatherAlert, error) {
	var a domain.WeatherAlert
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Severity, &a.Type, &a.StartsAt, &a.EndsAt,
		&a.Areas, &a.Instructions, &a.Active)
	return a, err
}

const listCurrentAlerts = `
SELECT ` + alertColumns + `
FROM weather_alerts
WHERE active AND ends_at > $1
ORDER BY
    CASE severity WHEN 'extreme' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END,
    starts_at
LIMIT 50`

// ListCurrentAlerts returns active alerts that have not ended at now,
// including upcoming ones, most severe first.
func (q *Queries) ListCurrentAlerts(ctx context.Context, now time.Time) ([]domain.WeatherAlert, error) {
	rows, err := q.db.Query(ctx, listCurrentAlerts, now)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAlert)
}

const createAlert = `
INSERT INTO weather_alerts (title, description, severity, type, starts_at, ends_at, areas, instructions, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + alertColumns

// CreateAlert publishes a weather alert.
func (q *Queries) CreateAlert(ctx context.Context, a domain.WeatherAlert, createdBy *uuid.UUID) (domain.WeatherAlert, error) {
	return scanAlert(q.db.QueryRow(ctx, createAlert,
		a.Title, a.Description, a.Severity, a.Type, a.StartsAt, a.EndsAt, orEmpty(a.Areas), a.Instructions, createdBy,
	))
}

const protocolColumns = `id, title, description, category, priority, document_url, contacts, steps, active`

func scanProtocol(row pgx.Row) (domain.EmergencyProtocol, error) {
	var p domain.EmergencyProtocol
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Priority, &p.DocumentURL,
		&p.Contacts, &p.Steps, &p.Active)
	return p, err
}

const listProtocols = `
SELECT ` + protocolColumns + `
FROM emergency_protocols
WHERE active AND ($1::text = '' OR category = $1::text)
ORDER BY
    CASE priority WHEN 'critical' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END,
    title`

// ListProtocols returns active protocols, most urgent first, optionally for one category.
func (q *Queries) ListProtocols(ctx context.Context, category domain.ProtocolCategory) ([]domain.EmergencyProtocol, error) {
	rows, err := q.db.Query(ctx, listProtocols, string(category))
	if err != nil {
		return nil, err
	}
	return collect(rows, scanProtocol)
}

const upsertProtocol = `
INSERT INTO emergency_protocols (title, description, category, priority, document_url, contacts, steps)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (title) DO UPDATE SET
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    priority = EXCLUDED.priority,
    document_url = EXCLUDED.document_url,
    contacts = EXCLUDED.contacts,
    steps = EXCLUDED.steps,
    active = true`

// UpsertProtocol creates or refreshes a protocol keyed by title.
func (q *Queries) UpsertProtocol(ctx context.Context, p domain.EmergencyProtocol) error {
	_, err := q.db.Exec(ctx, upsertProtocol, p.Title, p.Description, p.Category, p.Priority, p.DocumentURL,
		orEmpty(p.Contacts), orEmpty(p.Steps))
	return err
}
