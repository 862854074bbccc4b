package domain

import (
	"context"
	"time"
)

// Record statuses. Speakers are created published.
const (
	RecordStatusPublish = "publish"
	RecordStatusDraft   = "draft"
)

// RecordTypeSpeaker is the type tag for speaker records. Reads and writes
// against a record of any other type are treated as not found.
const RecordTypeSpeaker = "speaker"

// Record is a typed content item: a title, an optional body, and a status.
// Speaker profile data lives in record_meta, not in the record itself.
type Record struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRecord returns a new Record. ID is set by the repository on create.
func NewRecord(recordType, title, body, status string, createdAt, updatedAt time.Time) *Record {
	return &Record{
		Type:      recordType,
		Title:     title,
		Body:      body,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RecordRepository defines storage for typed records.
type RecordRepository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id int64) (*Record, error)
	UpdateTitle(ctx context.Context, id int64, title string) error
	// Delete removes the record permanently. Metadata and taxonomy links are
	// removed with it (FK cascade); there is no trash state.
	Delete(ctx context.Context, id int64) error
	// ListByType returns a page of records of the given type, newest first,
	// optionally filtered by a case-insensitive title substring, plus the
	// total count for the filter.
	ListByType(ctx context.Context, recordType, search string, params PaginationParams) ([]*Record, int, error)
}

// MetaRepository defines storage for key-value metadata scoped to a record.
// Keys are independent: setting or deleting one never touches another.
type MetaRepository interface {
	Set(ctx context.Context, recordID int64, key, value string) error
	Delete(ctx context.Context, recordID int64, key string) error
	// GetAll returns every meta key/value for the record. Missing records
	// yield an empty map, not an error.
	GetAll(ctx context.Context, recordID int64) (map[string]string, error)
}
