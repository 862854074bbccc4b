package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"speakeradmin/internal/domain"
)

type speakerService struct {
	recordRepo     domain.RecordRepository
	metaRepo       domain.MetaRepository
	termRepo       domain.TermRepository
	media          domain.MediaStore
	authorizer     domain.Authorizer
	sanitizer      domain.Sanitizer
	contextTimeout time.Duration
}

// NewSpeakerService creates a SpeakerService backed by the given repositories
// and collaborators.
func NewSpeakerService(recordRepo domain.RecordRepository,
	metaRepo domain.MetaRepository,
	termRepo domain.TermRepository,
	media domain.MediaStore,
	authorizer domain.Authorizer,
	sanitizer domain.Sanitizer,
	timeout time.Duration,
) domain.SpeakerService {
	return &speakerService{
		recordRepo:     recordRepo,
		metaRepo:       metaRepo,
		termRepo:       termRepo,
		media:          media,
		authorizer:     authorizer,
		sanitizer:      sanitizer,
		contextTimeout: timeout,
	}
}

func (s *speakerService) Get(ctx context.Context, userID string, speakerID int64) (*domain.SpeakerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireManager(ctx, userID); err != nil {
		return nil, err
	}
	if speakerID <= 0 {
		return nil, domain.NewValidationError("Invalid speaker ID")
	}

	rec, err := s.recordRepo.GetByID(ctx, speakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("Speaker not found")
		}
		return nil, fmt.Errorf("get speaker record: %w", err)
	}
	if rec.Type != domain.RecordTypeSpeaker {
		return nil, domain.NewNotFoundError("Speaker not found")
	}
	return s.buildProfile(ctx, rec)
}

func (s *speakerService) Create(ctx context.Context, userID string, in *domain.SpeakerInput) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireManager(ctx, userID); err != nil {
		return 0, err
	}
	if err := validateInput(in); err != nil {
		return 0, err
	}

	now := time.Now()
	rec := domain.NewRecord(domain.RecordTypeSpeaker, s.sanitizer.Text(*in.Name), "", domain.RecordStatusPublish, now, now)
	if err := s.recordRepo.Create(ctx, rec); err != nil {
		return 0, fmt.Errorf("create speaker record: %w", err)
	}
	if err := s.applyInput(ctx, rec.ID, in); err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (s *speakerService) Update(ctx context.Context, userID string, speakerID int64, in *domain.SpeakerInput) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireManager(ctx, userID); err != nil {
		return err
	}
	if speakerID <= 0 {
		return domain.NewValidationError("Invalid speaker ID")
	}

	rec, err := s.recordRepo.GetByID(ctx, speakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewForbiddenError("Cannot edit this speaker")
		}
		return fmt.Errorf("get speaker record: %w", err)
	}
	if rec.Type != domain.RecordTypeSpeaker {
		return domain.NewForbiddenError("Cannot edit this speaker")
	}
	ok, err := s.authorizer.CanEditRecord(ctx, userID, speakerID)
	if err != nil {
		return fmt.Errorf("check edit permission: %w", err)
	}
	if !ok {
		return domain.NewForbiddenError("Cannot edit this speaker")
	}

	if err := validateInput(in); err != nil {
		return err
	}
	if err := s.recordRepo.UpdateTitle(ctx, speakerID, s.sanitizer.Text(*in.Name)); err != nil {
		return fmt.Errorf("update speaker title: %w", err)
	}
	return s.applyInput(ctx, speakerID, in)
}

func (s *speakerService) Delete(ctx context.Context, userID string, speakerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireManager(ctx, userID); err != nil {
		return err
	}
	if speakerID <= 0 {
		return domain.NewValidationError("Invalid speaker ID")
	}

	rec, err := s.recordRepo.GetByID(ctx, speakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewForbiddenError("Cannot delete this speaker")
		}
		return fmt.Errorf("get speaker record: %w", err)
	}
	if rec.Type != domain.RecordTypeSpeaker {
		return domain.NewForbiddenError("Cannot delete this speaker")
	}
	ok, err := s.authorizer.CanDeleteRecord(ctx, userID, speakerID)
	if err != nil {
		return fmt.Errorf("check delete permission: %w", err)
	}
	if !ok {
		return domain.NewForbiddenError("Cannot delete this speaker")
	}

	if err := s.recordRepo.Delete(ctx, speakerID); err != nil {
		return fmt.Errorf("Failed to delete speaker")
	}
	return nil
}

func (s *speakerService) List(ctx context.Context, userID string, search string, params domain.PaginationParams) ([]*domain.SpeakerProfile, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireManager(ctx, userID); err != nil {
		return nil, 0, err
	}

	recs, total, err := s.recordRepo.ListByType(ctx, domain.RecordTypeSpeaker, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list speaker records: %w", err)
	}
	profiles := make([]*domain.SpeakerProfile, 0, len(recs))
	for _, rec := range recs {
		p, err := s.buildProfile(ctx, rec)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, nil
}

func (s *speakerService) requireManager(ctx context.Context, userID string) error {
	ok, err := s.authorizer.CanManageSpeakers(ctx, userID)
	if err != nil {
		return fmt.Errorf("check speaker capability: %w", err)
	}
	if !ok {
		return domain.NewForbiddenError("Unauthorized")
	}
	return nil
}

// validateInput enforces the required field set in order, then the upload
// constraints, all before any write happens.
func validateInput(in *domain.SpeakerInput) error {
	for _, f := range domain.RequiredSpeakerFields {
		v := f.Value(in)
		if v == nil || strings.TrimSpace(*v) == "" {
			return domain.NewValidationError("Missing required field: %s", f.Name)
		}
	}
	if in.Image != nil {
		if !domain.AllowedImageType(in.Image.ContentType) {
			return domain.NewValidationError("Invalid file type. Only JPG, PNG, GIF, and WebP are allowed.")
		}
		if in.Image.Size > domain.MaxImageUploadBytes {
			return domain.NewValidationError("File size exceeds 2MB limit.")
		}
	}
	return nil
}

// applyInput applies everything beyond the record title: the headshot, the
// meta fields, and the category assignment.
func (s *speakerService) applyInput(ctx context.Context, speakerID int64, in *domain.SpeakerInput) error {
	imageURL := ""
	if in.Image != nil {
		url, err := s.media.Upload(ctx, in.Image, speakerID)
		if err != nil {
			return fmt.Errorf("Image upload failed: %v", err)
		}
		imageURL = url
	}
	if err := s.applyMeta(ctx, speakerID, in, imageURL); err != nil {
		return err
	}
	if in.Category != nil {
		return s.applyCategory(ctx, speakerID, *in.Category)
	}
	return nil
}

func (s *speakerService) applyMeta(ctx context.Context, speakerID int64, in *domain.SpeakerInput, imageURL string) error {
	// A freshly uploaded file wins over a submitted image URL.
	if imageURL != "" {
		if err := s.metaRepo.Set(ctx, speakerID, domain.MetaHeadshotURL, imageURL); err != nil {
			return fmt.Errorf("store %s: %w", domain.MetaHeadshotURL, err)
		}
	} else if in.ImageURL != nil {
		if err := s.setOrDelete(ctx, speakerID, domain.MetaHeadshotURL, s.sanitizer.URL(*in.ImageURL)); err != nil {
			return err
		}
	}

	fields := []struct {
		key   string
		value *string
		clean func(string) string
	}{
		{domain.MetaPosition, in.Position, s.sanitizer.Text},
		{domain.MetaOrganization, in.Organization, s.sanitizer.Text},
		{domain.MetaBio, in.Bio, s.sanitizer.RichText},
		{domain.MetaLinkedIn, in.LinkedIn, s.sanitizer.URL},
		{domain.MetaTwitter, in.Twitter, s.sanitizer.URL},
		{domain.MetaGitHub, in.GitHub, s.sanitizer.URL},
		{domain.MetaWebsite, in.Website, s.sanitizer.URL},
		{domain.MetaTalkTitle, in.TalkTitle, s.sanitizer.Text},
		{domain.MetaTalkDate, in.TalkDate, s.sanitizer.Text},
		{domain.MetaTalkTime, in.TalkTime, s.sanitizer.Text},
		{domain.MetaTalkEndTime, in.TalkEndTime, s.sanitizer.Text},
		{domain.MetaTalkAbstract, in.TalkAbstract, s.sanitizer.RichText},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := s.setOrDelete(ctx, speakerID, f.key, f.clean(*f.value)); err != nil {
			return err
		}
	}
	return nil
}

// setOrDelete stores a non-empty sanitized value and deletes the key when the
// value came through empty.
func (s *speakerService) setOrDelete(ctx context.Context, speakerID int64, key, value string) error {
	if value == "" {
		if err := s.metaRepo.Delete(ctx, speakerID, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	}
	if err := s.metaRepo.Set(ctx, speakerID, key, value); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (s *speakerService) applyCategory(ctx context.Context, speakerID int64, sel domain.CategorySelection) error {
	switch sel.Kind {
	case domain.CategoryByID:
		err := s.termRepo.AssignByID(ctx, speakerID, domain.TaxonomySpeakerCategory, sel.TermID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("Invalid category")
		}
		if err != nil {
			return fmt.Errorf("assign category: %w", err)
		}
	case domain.CategoryByNewName, domain.CategoryByNameOrSlug:
		name := s.sanitizer.Text(sel.Name)
		if name == "" {
			return s.clearCategory(ctx, speakerID)
		}
		if err := s.termRepo.AssignByName(ctx, speakerID, domain.TaxonomySpeakerCategory, name); err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				return domain.NewValidationError("Invalid category")
			}
			return fmt.Errorf("assign category: %w", err)
		}
	default:
		return s.clearCategory(ctx, speakerID)
	}
	return nil
}

func (s *speakerService) clearCategory(ctx context.Context, speakerID int64) error {
	if err := s.termRepo.Clear(ctx, speakerID, domain.TaxonomySpeakerCategory); err != nil {
		return fmt.Errorf("clear category: %w", err)
	}
	return nil
}

func (s *speakerService) buildProfile(ctx context.Context, rec *domain.Record) (*domain.SpeakerProfile, error) {
	meta, err := s.metaRepo.GetAll(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("load speaker meta: %w", err)
	}
	p := &domain.SpeakerProfile{
		ID:           rec.ID,
		Name:         rec.Title,
		Position:     meta[domain.MetaPosition],
		Organization: meta[domain.MetaOrganization],
		Bio:          meta[domain.MetaBio],
		HeadshotURL:  meta[domain.MetaHeadshotURL],
		LinkedIn:     meta[domain.MetaLinkedIn],
		Twitter:      meta[domain.MetaTwitter],
		GitHub:       meta[domain.MetaGitHub],
		Website:      meta[domain.MetaWebsite],
		TalkTitle:    meta[domain.MetaTalkTitle],
		TalkDate:     meta[domain.MetaTalkDate],
		TalkTime:     meta[domain.MetaTalkTime],
		TalkEndTime:  meta[domain.MetaTalkEndTime],
		TalkAbstract: meta[domain.MetaTalkAbstract],
	}
	term, err := s.termRepo.FirstForRecord(ctx, rec.ID, domain.TaxonomySpeakerCategory)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return p, nil
		}
		return nil, fmt.Errorf("load speaker category: %w", err)
	}
	p.Category = term.Name
	p.CategorySlug = term.Slug
	return p, nil
}
