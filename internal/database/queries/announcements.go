package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vangoframework/pellines/internal/domain"
)

const announcementColumns = `id, title, content, priority, category, author_name, published_at, expires_at`

func scanAnnouncement(row pgx.Row) (domain.Announcement, error) {
	var a domain.Announcement
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Priority, &a.Category, &a.AuthorName, &a.PublishedAt, &a.ExpiresAt)
	return a, err
}

const listActiveAnnouncements = `
SELECT ` + announcementColumns + `
FROM announcements
WHERE published_at <= $1
  AND (expires_at IS NULL OR expires_at > $1)
  AND ($2::text = '' OR category = $2::text)
ORDER BY
    CASE priority WHEN 'critical' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END,
    published_at DESC
LIMIT NULLIF($3::int, 0)`

type ListAnnouncementsParams struct {
	Now      time.Time
	Category string // empty for all
	Limit    int32  // 0 for no limit
}

// ListActiveAnnouncements returns announcements current at Now, most urgent first.
func (q *Queries) ListActiveAnnouncements(ctx context.Context, arg ListAnnouncementsParams) ([]domain.Announcement, error) {
	rows, err := q.db.Query(ctx, listActiveAnnouncements, arg.Now, arg.Category, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAnnouncement)
}

const createAnnouncement = `
INSERT INTO announcements (title, content, priority, category, author_id, author_name, published_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + announcementColumns

// CreateAnnouncement publishes an announcement.
func (q *Queries) CreateAnnouncement(ctx context.Context, a domain.Announcement, authorID *uuid.UUID) (domain.Announcement, error) {
	publishedAt := a.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now()
	}
	return scanAnnouncement(q.db.QueryRow(ctx, createAnnouncement,
		a.Title, a.Content, a.Priority, a.Category, authorID, a.AuthorName, publishedAt, a.ExpiresAt,
	))
}
