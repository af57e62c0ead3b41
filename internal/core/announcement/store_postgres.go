// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package announcement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/presensya/internal/platform/apperr"
	"github.com/taibuivan/presensya/internal/platform/database/schema"
	"github.com/taibuivan/presensya/internal/platform/dberr"
)

// # Announcement Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create inserts a new notice.

Parameters:
  - context: context.Context
  - announcement: *Announcement

Returns:
  - error: apperr.Unprocessable when CreatedBy references a missing account
*/
func (repository *PostgresRepository) Create(context context.Context, announcement *Announcement) error {
	t := schema.Announcement
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.Table, announcementColumnList())

	now := time.Now()
	if announcement.CreatedAt.IsZero() {
		announcement.CreatedAt = now
	}
	announcement.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		announcement.ID,
		announcement.Title,
		announcement.Content,
		announcement.CreatedBy,
		announcement.AnnouncementDate,
		announcement.IsPinned,
		announcement.IsActive,
		announcement.TargetRole,
		announcement.TargetDepartment,
		announcement.ExpiryDate,
		announcement.CreatedAt,
		announcement.UpdatedAt,
	)

	return dberr.Wrap(err, "announcement_create")
}

/*
List returns notices pinned-first, then newest announcement date.

Parameters:
  - context: context.Context
  - filter: ListFilter (active, expiry, audience)

Returns:
  - []*Announcement: Filtered feed, possibly empty
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]*Announcement, error) {
	t := schema.Announcement

	conditions := []string{"TRUE"}
	args := []any{}

	if filter.ActiveOnly {
		conditions = append(conditions, fmt.Sprintf("%s = TRUE", t.IsActive))
	}
	if filter.Unexpired {
		args = append(args, time.Now())
		conditions = append(conditions, fmt.Sprintf("(%s IS NULL OR %s > $%d)", t.ExpiryDate, t.ExpiryDate, len(args)))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		conditions = append(conditions, fmt.Sprintf("(%s = '' OR %s = $%d)", t.TargetRole, t.TargetRole, len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, fmt.Sprintf("(%s = '' OR %s = $%d)", t.TargetDepartment, t.TargetDepartment, len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC, %s DESC`,
		announcementColumnList(), t.Table,
		strings.Join(conditions, " AND "),
		t.IsPinned, t.AnnouncementDate)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "announcement_list")
	}
	defer rows.Close()

	announcements := []*Announcement{}
	for rows.Next() {
		announcement, err := scanAnnouncement(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "announcement_scan")
		}
		announcements = append(announcements, announcement)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "announcement_rows")
	}

	return announcements, nil
}

/*
FindByID returns one notice regardless of active state.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Announcement: Hydrated notice
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Announcement, error) {
	t := schema.Announcement
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		announcementColumnList(), t.Table, t.ID)

	announcement, err := scanAnnouncement(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Announcement")
		}
		return nil, dberr.Wrap(err, "announcement_find")
	}

	return announcement, nil
}

/*
Update persists a notice's mutable fields.

Parameters:
  - context: context.Context
  - announcement: *Announcement

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, announcement *Announcement) error {
	t := schema.Announcement
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1`,
		t.Table, t.Title, t.Content, t.IsPinned, t.TargetRole,
		t.TargetDepartment, t.ExpiryDate, t.UpdatedAt, t.ID)

	announcement.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		announcement.ID,
		announcement.Title,
		announcement.Content,
		announcement.IsPinned,
		announcement.TargetRole,
		announcement.TargetDepartment,
		announcement.ExpiryDate,
		announcement.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "announcement_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Announcement")
	}

	return nil
}

/*
Retract sets IsActive=false by id.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when no active notice matches
*/
func (repository *PostgresRepository) Retract(context context.Context, id string) error {
	t := schema.Announcement
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = FALSE, %s = $2
		WHERE %s = $1 AND %s = TRUE`,
		t.Table, t.IsActive, t.UpdatedAt, t.ID, t.IsActive)

	tag, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return dberr.Wrap(err, "announcement_retract")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Announcement")
	}

	return nil
}

// scanAnnouncement hydrates one notice from a row.
func scanAnnouncement(row pgx.Row) (*Announcement, error) {
	announcement := &Announcement{}
	err := row.Scan(
		&announcement.ID,
		&announcement.Title,
		&announcement.Content,
		&announcement.CreatedBy,
		&announcement.AnnouncementDate,
		&announcement.IsPinned,
		&announcement.IsActive,
		&announcement.TargetRole,
		&announcement.TargetDepartment,
		&announcement.ExpiryDate,
		&announcement.CreatedAt,
		&announcement.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return announcement, nil
}

// announcementColumnList returns the notice columns in scan order.
func announcementColumnList() string {
	t := schema.Announcement
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.Title, t.Content, t.CreatedBy, t.AnnouncementDate,
		t.IsPinned, t.IsActive, t.TargetRole, t.TargetDepartment,
		t.ExpiryDate, t.CreatedAt, t.UpdatedAt)
}
