package postgres

import (
	"context"
	"database/sql"

	"speakeradmin/internal/domain"
)

type metaRepository struct {
	DB *sql.DB
}

// NewMetaRepository returns a domain.MetaRepository implemented with Postgres.
func NewMetaRepository(db *sql.DB) domain.MetaRepository {
	return &metaRepository{DB: db}
}

func (r *metaRepository) Set(ctx context.Context, recordID int64, key, value string) error {
	query := `
		INSERT INTO record_meta (record_id, meta_key, meta_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (record_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value
	`
	_, err := r.DB.ExecContext(ctx, query, recordID, key, value)
	return err
}

func (r *metaRepository) Delete(ctx context.Context, recordID int64, key string) error {
	// Deleting an absent key is a no-op, matching the empty-value-deletes rule.
	_, err := r.DB.ExecContext(ctx, `DELETE FROM record_meta WHERE record_id = $1 AND meta_key = $2`, recordID, key)
	return err
}

func (r *metaRepository) GetAll(ctx context.Context, recordID int64) (map[string]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT meta_key, meta_value FROM record_meta WHERE record_id = $1`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = value
	}
	return meta, rows.Err()
}
