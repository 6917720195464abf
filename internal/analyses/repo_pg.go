package analyses

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres through database/sql.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new screening record.
func (r *PGRepo) Create(ctx context.Context, record Record) error {
	const query = `
INSERT INTO screenings (id, user_id, target_role, blob_url, result, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	var result any
	if len(record.Result) > 0 {
		result = string(record.Result)
	}
	_, err := r.DB.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.TargetRole,
		record.BlobURL,
		result,
		record.CreatedAt,
	)
	return err
}

// GetByID returns a record scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, recordID string) (Record, error) {
	const query = `
SELECT id, user_id, target_role, blob_url, result, created_at
FROM screenings
WHERE id = $1 AND user_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, recordID, userID)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return record, err
}

// ListByUser returns a user's records, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	const query = `
SELECT id, user_id, target_role, blob_url, result, created_at
FROM screenings
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var result sql.NullString
	if err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.TargetRole,
		&record.BlobURL,
		&result,
		&record.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	if result.Valid {
		record.Result = []byte(result.String)
	}
	return record, nil
}

var _ Repo = (*PGRepo)(nil)
