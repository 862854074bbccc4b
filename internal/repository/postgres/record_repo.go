package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"speakeradmin/internal/domain"
)

type recordRepository struct {
	DB *sql.DB
}

// NewRecordRepository returns a domain.RecordRepository implemented with Postgres.
func NewRecordRepository(db *sql.DB) domain.RecordRepository {
	return &recordRepository{DB: db}
}

func (r *recordRepository) Create(ctx context.Context, rec *domain.Record) error {
	query := `
		INSERT INTO records (record_type, title, body, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, rec.Type, rec.Title, rec.Body, rec.Status, rec.CreatedAt, rec.UpdatedAt).Scan(&rec.ID)
}

func (r *recordRepository) GetByID(ctx context.Context, id int64) (*domain.Record, error) {
	query := `
		SELECT id, record_type, title, body, status, created_at, updated_at
		FROM records
		WHERE id = $1
	`
	rec := &domain.Record{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.Type, &rec.Title, &rec.Body, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *recordRepository) UpdateTitle(ctx context.Context, id int64, title string) error {
	query := `UPDATE records SET title = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, title)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *recordRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM records WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *recordRepository) ListByType(ctx context.Context, recordType, search string, params domain.PaginationParams) ([]*domain.Record, int, error) {
	search = strings.TrimSpace(search)
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM records
		WHERE record_type = $1 AND ($2 = '' OR title ILIKE '%' || $2 || '%')
	`
	if err := r.DB.QueryRowContext(ctx, countQuery, recordType, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, record_type, title, body, status, created_at, updated_at
		FROM records
		WHERE record_type = $1 AND ($2 = '' OR title ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, recordType, search, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]*domain.Record, 0)
	for rows.Next() {
		rec := &domain.Record{}
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.Title, &rec.Body, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}
