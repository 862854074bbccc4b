package domain

import (
	"context"
	"strconv"
	"strings"
)

// TaxonomySpeakerCategory is the taxonomy speakers are classified under.
// A record carries at most one term from it.
const TaxonomySpeakerCategory = "speaker_category"

// Term is a taxonomy term: a categorization label with a URL-safe slug.
type Term struct {
	ID       int64  `json:"id"`
	Taxonomy string `json:"taxonomy"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

// CategoryKind discriminates the ways a request can select a category.
type CategoryKind int

const (
	// CategoryClear removes any existing assignment.
	CategoryClear CategoryKind = iota
	// CategoryByID selects an existing term by numeric ID.
	CategoryByID
	// CategoryByNewName creates (or reuses) a term from a free-text name.
	CategoryByNewName
	// CategoryByNameOrSlug selects an existing term by name or slug,
	// creating it when missing.
	CategoryByNameOrSlug
)

// CategorySelection is the tagged union for the polymorphic category input,
// decided once at the HTTP boundary and dispatched by the service.
type CategorySelection struct {
	Kind   CategoryKind
	TermID int64
	Name   string
}

// customCategorySentinel marks "the real name is in the companion field".
const customCategorySentinel = "_custom"

// ParseCategorySelection decides the category selection from the raw category
// value and its companion custom-name value:
// numeric text selects by term ID; the "_custom" sentinel with a non-empty
// companion creates by name; other non-empty text selects by name or slug;
// anything else clears the assignment.
func ParseCategorySelection(category, custom string) CategorySelection {
	category = strings.TrimSpace(category)
	if id, err := strconv.ParseInt(category, 10, 64); err == nil && category != "" {
		return CategorySelection{Kind: CategoryByID, TermID: id}
	}
	if category == customCategorySentinel {
		if custom = strings.TrimSpace(custom); custom != "" {
			return CategorySelection{Kind: CategoryByNewName, Name: custom}
		}
		return CategorySelection{Kind: CategoryClear}
	}
	if category != "" {
		return CategorySelection{Kind: CategoryByNameOrSlug, Name: category}
	}
	return CategorySelection{Kind: CategoryClear}
}

// TermRepository defines storage for taxonomy terms and record-term links.
// Assignment is single-valued per taxonomy: every assign replaces whatever
// was there before.
type TermRepository interface {
	// AssignByID replaces the record's assignment in the term's taxonomy with
	// the given existing term. Unknown term IDs return ErrNotFound.
	AssignByID(ctx context.Context, recordID int64, taxonomy string, termID int64) error
	// AssignByName resolves a term by name or slug within the taxonomy,
	// creating it when missing, then replaces the record's assignment.
	AssignByName(ctx context.Context, recordID int64, taxonomy, name string) error
	// Clear removes the record's assignment in the taxonomy, if any.
	Clear(ctx context.Context, recordID int64, taxonomy string) error
	// FirstForRecord returns the first term assigned to the record in the
	// taxonomy, or ErrNotFound when none is assigned.
	FirstForRecord(ctx context.Context, recordID int64, taxonomy string) (*Term, error)
}

// Slugify converts a term name to its URL-safe slug: lowercased, with runs of
// non-alphanumeric characters collapsed to single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
