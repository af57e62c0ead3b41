// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/presensya/internal/platform/database/schema"
	"github.com/taibuivan/presensya/pkg/pagination"
)

// # Attendance Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create appends a clock event to the log.

Parameters:
  - context: context.Context
  - record: *Record (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, record *Record) error {
	t := schema.AttendanceRecord
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.Table, t.ID, t.EmployeeID, t.Type, t.Timestamp,
		t.Latitude, t.Longitude, t.Address, t.Remarks, t.CreatedAt)

	_, err := repository.pool.Exec(context, query,
		record.ID,
		record.EmployeeID,
		record.Type,
		record.Timestamp,
		record.Latitude,
		record.Longitude,
		record.Address,
		record.Remarks,
		record.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_attendance_repo_create_failed: %w", err)
	}

	return nil
}

/*
LatestByType returns the employee's most recent event of one type.

Description: Drives the open-shift check. Ordering is by event timestamp;
corrected timestamps participate in the ordering like any other.

Parameters:
  - context: context.Context
  - employeeID: string
  - recordType: RecordType

Returns:
  - *Record: The newest matching event
  - error: ErrRecordNotFound or execution errors
*/
func (repository *PostgresRepository) LatestByType(context context.Context, employeeID string, recordType RecordType) (*Record, error) {
	t := schema.AttendanceRecord
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s DESC
		LIMIT 1`,
		recordColumnList(), t.Table, t.EmployeeID, t.Type, t.Timestamp)

	record, err := scanRecord(repository.pool.QueryRow(context, query, employeeID, recordType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("postgres_attendance_repo_latest_failed: %w", err)
	}

	return record, nil
}

/*
ListByEmployee returns the employee's events newest first.

Parameters:
  - context: context.Context
  - employeeID: string
  - filter: ListFilter (type and date range, zero values skipped)
  - params: pagination.Params

Returns:
  - []*Record: One page of events
  - int: Total matching events across all pages
  - error: Execution errors
*/
func (repository *PostgresRepository) ListByEmployee(context context.Context, employeeID string, filter ListFilter, params pagination.Params) ([]*Record, int, error) {
	t := schema.AttendanceRecord

	conditions := []string{fmt.Sprintf("%s = $1", t.EmployeeID)}
	args := []any{employeeID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", t.Type, len(args)))
	}
	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("%s >= $%d", t.Timestamp, len(args)))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("%s <= $%d", t.Timestamp, len(args)))
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", t.Table, where)
	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_attendance_repo_count_failed: %w", err)
	}

	args = append(args, params.Limit, params.Offset())
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d`,
		recordColumnList(), t.Table, where, t.Timestamp, len(args)-1, len(args))

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_attendance_repo_list_failed: %w", err)
	}
	defer rows.Close()

	records := make([]*Record, 0, params.Limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_attendance_repo_scan_failed: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_attendance_repo_rows_failed: %w", err)
	}

	return records, total, nil
}

/*
FindByID returns a single event by primary key.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Record: Hydrated event
  - error: ErrRecordNotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Record, error) {
	t := schema.AttendanceRecord
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		recordColumnList(), t.Table, t.ID)

	record, err := scanRecord(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("postgres_attendance_repo_find_failed: %w", err)
	}

	return record, nil
}

/*
Update amends a corrected event in place.

Description: Only the administrative correction path calls this; it persists
the new timestamp, coordinates, remarks, and the editor audit fields.

Parameters:
  - context: context.Context
  - record: *Record

Returns:
  - error: Update failures
*/
func (repository *PostgresRepository) Update(context context.Context, record *Record) error {
	t := schema.AttendanceRecord
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1`,
		t.Table, t.Timestamp, t.Latitude, t.Longitude, t.Address,
		t.Remarks, t.EditedBy, t.EditedAt, t.ID)

	tag, err := repository.pool.Exec(context, query,
		record.ID,
		record.Timestamp,
		record.Latitude,
		record.Longitude,
		record.Address,
		record.Remarks,
		record.EditedBy,
		record.EditedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_attendance_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// scanRecord hydrates one event from a row.
func scanRecord(row pgx.Row) (*Record, error) {
	record := &Record{}
	err := row.Scan(
		&record.ID,
		&record.EmployeeID,
		&record.Type,
		&record.Timestamp,
		&record.Latitude,
		&record.Longitude,
		&record.Address,
		&record.Remarks,
		&record.EditedBy,
		&record.EditedAt,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// recordColumnList returns the event columns in scan order.
func recordColumnList() string {
	t := schema.AttendanceRecord
	return strings.Join(t.Columns(), ", ")
}
