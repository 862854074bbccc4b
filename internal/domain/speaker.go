package domain

import "context"

// Meta keys for speaker profile and talk fields, stored per record in
// record_meta. An empty submitted value deletes the key instead of storing "".
const (
	MetaPosition     = "position"
	MetaOrganization = "organization"
	MetaBio          = "bio"
	MetaHeadshotURL  = "headshot_url"
	MetaLinkedIn     = "linkedin"
	MetaTwitter      = "twitter"
	MetaGitHub       = "github"
	MetaWebsite      = "website"
	MetaTalkTitle    = "talk_title"
	MetaTalkDate     = "talk_date"
	MetaTalkTime     = "talk_time"
	MetaTalkEndTime  = "talk_end_time"
	MetaTalkAbstract = "talk_abstract"
)

// SpeakerProfile is the flat speaker object returned by reads. Meta fields
// that are not stored come back as empty strings, never as absent keys.
// swagger:model SpeakerProfile
type SpeakerProfile struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	Organization string `json:"organization"`
	Bio          string `json:"bio"`
	HeadshotURL  string `json:"headshot_url"`
	LinkedIn     string `json:"linkedin"`
	Twitter      string `json:"twitter"`
	GitHub       string `json:"github"`
	Website      string `json:"website"`
	Category     string `json:"category"`
	CategorySlug string `json:"category_slug"`
	TalkTitle    string `json:"talk_title"`
	TalkDate     string `json:"talk_date"`
	TalkTime     string `json:"talk_time"`
	TalkEndTime  string `json:"talk_end_time"`
	TalkAbstract string `json:"talk_abstract"`
}

// SpeakerInput carries a create or update submission. Optional fields use
// pointers to keep the three input states apart: nil means the key was not
// submitted (leave stored value alone), a pointer to "" means submitted empty
// (delete the stored value), non-empty means set.
type SpeakerInput struct {
	Name         *string
	Position     *string
	Organization *string
	Bio          *string
	ImageURL     *string
	LinkedIn     *string
	Twitter      *string
	GitHub       *string
	Website      *string
	TalkTitle    *string
	TalkDate     *string
	TalkTime     *string
	TalkEndTime  *string
	TalkAbstract *string
	// Image is the uploaded headshot file, if any. It takes precedence over
	// ImageURL.
	Image *ImageUpload
	// Category is nil when the category key was absent from the request;
	// in that case the existing assignment is left untouched.
	Category *CategorySelection
}

// RequiredSpeakerFields lists the request fields every create and update must
// carry non-empty, in validation order. The first missing field aborts the
// whole operation before any write.
var RequiredSpeakerFields = []struct {
	Name  string
	Value func(*SpeakerInput) *string
}{
	{"name", func(in *SpeakerInput) *string { return in.Name }},
	{"position", func(in *SpeakerInput) *string { return in.Position }},
	{"bio", func(in *SpeakerInput) *string { return in.Bio }},
	{"talk_title", func(in *SpeakerInput) *string { return in.TalkTitle }},
	{"talk_date", func(in *SpeakerInput) *string { return in.TalkDate }},
	{"talk_time", func(in *SpeakerInput) *string { return in.TalkTime }},
	{"talk_end_time", func(in *SpeakerInput) *string { return in.TalkEndTime }},
}

// SpeakerService defines the speaker admin operations.
type SpeakerService interface {
	// Get returns the full flat profile for a speaker record.
	Get(ctx context.Context, userID string, speakerID int64) (*SpeakerProfile, error)
	// Create validates the submission, creates the record, and applies
	// image, meta fields, and category. Returns the new speaker ID.
	Create(ctx context.Context, userID string, in *SpeakerInput) (int64, error)
	// Update re-validates the full required set and applies the submission
	// field by field to an existing speaker record.
	Update(ctx context.Context, userID string, speakerID int64, in *SpeakerInput) error
	// Delete permanently removes the speaker record and all its metadata.
	Delete(ctx context.Context, userID string, speakerID int64) error
	// List returns a page of speaker records, newest first, with the total
	// count for the optional title search.
	List(ctx context.Context, userID string, search string, params PaginationParams) ([]*SpeakerProfile, int, error)
}
