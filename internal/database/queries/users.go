package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User mirrors an identity provider account.
type User struct {
	ID         uuid.UUID
	ExternalID string
	Name       string
	Email      string
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type UpsertUserParams struct {
	ExternalID string
	Name       string
	Email      string
	ImageURL   string
}

const upsertUser = `
INSERT INTO users (external_id, name, email, image_url)
VALUES ($1, $2, $3, $4)
ON CONFLICT (external_id) DO UPDATE SET
    name = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
    email = COALESCE(NULLIF(EXCLUDED.email, ''), users.email),
    image_url = COALESCE(NULLIF(EXCLUDED.image_url, ''), users.image_url),
    updated_at = now()
RETURNING id, external_id, name, email, image_url, created_at, updated_at`

// UpsertUser records the account behind an identity provider subject.
func (q *Queries) UpsertUser(ctx context.Context, arg UpsertUserParams) (User, error) {
	var u User
	err := q.db.QueryRow(ctx, upsertUser, arg.ExternalID, arg.Name, arg.Email, arg.ImageURL).Scan(
		&u.ID, &u.ExternalID, &u.Name, &u.Email, &u.ImageURL, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

const getUserByExternalID = `
SELECT id, external_id, name, email, image_url, created_at, updated_at
FROM users WHERE external_id = $1`

// GetUserByExternalID looks a user up by identity provider subject.
func (q *Queries) GetUserByExternalID(ctx context.Context, externalID string) (User, error) {
	var u User
	err := q.db.QueryRow(ctx, getUserByExternalID, externalID).Scan(
		&u.ID, &u.ExternalID, &u.Name, &u.Email, &u.ImageURL, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}
