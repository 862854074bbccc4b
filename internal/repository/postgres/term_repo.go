package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"speakeradmin/internal/domain"
)

type termRepository struct {
	DB *sql.DB
}

// NewTermRepository returns a domain.TermRepository implemented with Postgres.
func NewTermRepository(db *sql.DB) domain.TermRepository {
	return &termRepository{DB: db}
}

func (r *termRepository) AssignByID(ctx context.Context, recordID int64, taxonomy string, termID int64) error {
	var id int64
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM terms WHERE id = $1 AND taxonomy = $2`, termID, taxonomy).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return r.replaceAssignment(ctx, recordID, taxonomy, id)
}

func (r *termRepository) AssignByName(ctx context.Context, recordID int64, taxonomy, name string) error {
	slug := domain.Slugify(name)
	if slug == "" {
		return domain.ErrInvalidInput
	}
	// Resolve by name or slug; create on miss. The unique (taxonomy, slug)
	// constraint makes concurrent creates converge on one row.
	var termID int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT id FROM terms WHERE taxonomy = $1 AND (name = $2 OR slug = $3)`,
		taxonomy, name, slug).Scan(&termID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		err = r.DB.QueryRowContext(ctx,
			`INSERT INTO terms (taxonomy, name, slug) VALUES ($1, $2, $3)
			 ON CONFLICT (taxonomy, slug) DO UPDATE SET name = terms.name
			 RETURNING id`,
			taxonomy, name, slug).Scan(&termID)
		if err != nil {
			return fmt.Errorf("create term %q: %w", name, err)
		}
	}
	return r.replaceAssignment(ctx, recordID, taxonomy, termID)
}

func (r *termRepository) Clear(ctx context.Context, recordID int64, taxonomy string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM term_relationships
		 WHERE record_id = $1
		   AND term_id IN (SELECT id FROM terms WHERE taxonomy = $2)`,
		recordID, taxonomy)
	return err
}

func (r *termRepository) FirstForRecord(ctx context.Context, recordID int64, taxonomy string) (*domain.Term, error) {
	term := &domain.Term{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT t.id, t.taxonomy, t.name, t.slug
		 FROM terms t
		 JOIN term_relationships tr ON tr.term_id = t.id
		 WHERE tr.record_id = $1 AND t.taxonomy = $2
		 ORDER BY t.id
		 LIMIT 1`,
		recordID, taxonomy).Scan(&term.ID, &term.Taxonomy, &term.Name, &term.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return term, nil
}

// replaceAssignment swaps the record's single assignment within the taxonomy.
// Repeating the same term is idempotent: the delete-then-insert pair leaves
// exactly one link row.
func (r *termRepository) replaceAssignment(ctx context.Context, recordID int64, taxonomy string, termID int64) error {
	if err := r.Clear(ctx, recordID, taxonomy); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO term_relationships (record_id, term_id) VALUES ($1, $2)
		 ON CONFLICT (record_id, term_id) DO NOTHING`,
		recordID, termID)
	return err
}
