package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vangoframework/pellines/internal/domain"
)

const businessColumns = `id, slug, name, description, category, address, phone, email, website, hours,
    featured, verified, active, created_at, updated_at`

func scanBusiness(row pgx.Row) (domain.Business, error) {
	var b domain.Business
	err := row.Scan(
		&b.ID, &b.Slug, &b.Name, &b.Description, &b.Category, &b.Address, &b.Phone, &b.Email,
		&b.Website, &b.Hours, &b.Featured, &b.Verified, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

type ListPublicBusinessesParams struct {
	Category string // empty for all
	Featured *bool
	Limit    int32 // 0 for no limit
}

const listPublicBusinesses = `
SELECT ` + businessColumns + `
FROM businesses
WHERE active AND verified
  AND ($1::text = '' OR category = $1::text)
  AND ($2::boolean IS NULL OR featured = $2)
ORDER BY featured DESC, created_at DESC
LIMIT NULLIF($3::int, 0)`

// ListPublicBusinesses returns active, verified businesses.
func (q *Queries) ListPublicBusinesses(ctx context.Context, arg ListPublicBusinessesParams) ([]domain.Business, error) {
	rows, err := q.db.Query(ctx, listPublicBusinesses, arg.Category, arg.Featured, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBusiness)
}

const getBusinessBySlug = `
SELECT ` + businessColumns + `
FROM businesses
WHERE slug = $1 AND active AND verified`

// GetBusinessBySlug returns a public business. It returns pgx.ErrNoRows when absent.
func (q *Queries) GetBusinessBySlug(ctx context.Context, slug string) (domain.Business, error) {
	return scanBusiness(q.db.QueryRow(ctx, getBusinessBySlug, slug))
}

const createBusiness = `
INSERT INTO businesses (slug, name, description, category, address, phone, email, website, hours,
    featured, verified, active, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, true, $12)
ON CONFLICT (slug) DO NOTHING
RETURNING ` + businessColumns

// CreateBusiness inserts a business. It returns pgx.ErrNoRows if the slug is taken.
func (q *Queries) CreateBusiness(ctx context.Context, b domain.Business, createdBy *uuid.UUID) (domain.Business, error) {
	return scanBusiness(q.db.QueryRow(ctx, createBusiness,
		b.Slug, b.Name, b.Description, b.Category, b.Address, b.Phone, b.Email, b.Website, b.Hours,
		b.Featured, b.Verified, createdBy,
	))
}
