package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"speakeradmin/internal/delivery/http/helpers"
	"speakeradmin/internal/delivery/http/middleware"
	"speakeradmin/internal/domain"
)

// speakersNonceAction scopes anti-forgery nonces to the speaker admin surface.
// Kept stable for compatibility with existing admin clients.
const speakersNonceAction = "wpfa_speakers_ajax"

// maxFormMemory caps in-memory multipart parsing; larger file parts spill to
// temp files. The upload size limit itself is enforced by the service.
const maxFormMemory = 4 << 20

// speakerFormFields maps form keys to setters on the submission. A key that
// is absent from the form leaves its setter uncalled, which is how stored
// values survive partial submissions.
var speakerFormFields = map[string]func(in *domain.SpeakerInput, v *string){
	"name":          func(in *domain.SpeakerInput, v *string) { in.Name = v },
	"position":      func(in *domain.SpeakerInput, v *string) { in.Position = v },
	"organization":  func(in *domain.SpeakerInput, v *string) { in.Organization = v },
	"bio":           func(in *domain.SpeakerInput, v *string) { in.Bio = v },
	"image_url":     func(in *domain.SpeakerInput, v *string) { in.ImageURL = v },
	"linkedin":      func(in *domain.SpeakerInput, v *string) { in.LinkedIn = v },
	"twitter":       func(in *domain.SpeakerInput, v *string) { in.Twitter = v },
	"github":        func(in *domain.SpeakerInput, v *string) { in.GitHub = v },
	"website":       func(in *domain.SpeakerInput, v *string) { in.Website = v },
	"talk_title":    func(in *domain.SpeakerInput, v *string) { in.TalkTitle = v },
	"talk_date":     func(in *domain.SpeakerInput, v *string) { in.TalkDate = v },
	"talk_time":     func(in *domain.SpeakerInput, v *string) { in.TalkTime = v },
	"talk_end_time": func(in *domain.SpeakerInput, v *string) { in.TalkEndTime = v },
	"talk_abstract": func(in *domain.SpeakerInput, v *string) { in.TalkAbstract = v },
}

// NonceResponse is the response body for GET /admin/speakers/nonce.
type NonceResponse struct {
	Nonce string `json:"nonce"`
}

// SpeakerListResponse is the response body for GET /admin/speakers.
type SpeakerListResponse struct {
	Speakers   []*domain.SpeakerProfile `json:"speakers"`
	Pagination helpers.PaginationMeta   `json:"pagination"`
}

// CreateSpeakerResponse is the response body for POST /admin/speakers.
type CreateSpeakerResponse struct {
	ID int64 `json:"id"`
}

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
	Nonces  domain.NonceManager
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService, nonces domain.NonceManager) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
		Nonces:  nonces,
	}
}

// GetNonce godoc
// @Summary Issue a speaker admin nonce
// @Description Returns a short-lived nonce the client must send with every speaker operation, in the "nonce" form field or query parameter.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the nonce"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /admin/speakers/nonce [get]
func (c *SpeakerController) GetNonce(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NonceResponse{Nonce: c.Nonces.Issue(userID, speakersNonceAction)})
}

// List godoc
// @Summary List speakers
// @Description Returns a page of speaker profiles, newest first. Supports a case-insensitive name search.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param nonce query string true "Speaker admin nonce"
// @Param search query string false "Name substring filter"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains speakers and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/speakers [get]
func (c *SpeakerController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.guard(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	speakers, total, err := c.Service.List(r.Context(), userID, search, params)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SpeakerListResponse{
		Speakers:   speakers,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Get godoc
// @Summary Get a speaker
// @Description Returns the full flat profile for one speaker. Fields without a stored value come back as empty strings.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param speakerID path int true "Speaker ID"
// @Param nonce query string true "Speaker admin nonce"
// @Success 200 {object} helpers.APIResponse "data contains the speaker profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/speakers/{speakerID} [get]
func (c *SpeakerController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.guard(w, r)
	if !ok {
		return
	}
	speakerID := parseSpeakerID(r)

	speaker, err := c.Service.Get(r.Context(), userID, speakerID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// Create godoc
// @Summary Create a speaker
// @Description Creates a speaker from a form or multipart submission. Required fields: name, position, bio, talk_title, talk_date, talk_time, talk_end_time. An uploaded "image" file takes precedence over "image_url".
// @Tags speakers
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} helpers.APIResponse "data contains the new speaker ID"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/speakers [post]
func (c *SpeakerController) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := c.parseForm(w, r)
	if !ok {
		return
	}
	userID, ok := c.guard(w, r)
	if !ok {
		return
	}

	id, err := c.Service.Create(r.Context(), userID, in)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateSpeakerResponse{ID: id})
}

// Update godoc
// @Summary Update a speaker
// @Description Updates a speaker from a form or multipart submission. The full required field set must be present; submitting an optional field empty deletes its stored value, omitting it leaves the value alone.
// @Tags speakers
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param speakerID path int true "Speaker ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/speakers/{speakerID} [post]
func (c *SpeakerController) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := c.parseForm(w, r)
	if !ok {
		return
	}
	userID, ok := c.guard(w, r)
	if !ok {
		return
	}
	speakerID := parseSpeakerID(r)

	if err := c.Service.Update(r.Context(), userID, speakerID, in); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// Delete godoc
// @Summary Delete a speaker
// @Description Permanently deletes a speaker record and all its profile data. There is no trash state.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param speakerID path int true "Speaker ID"
// @Param nonce query string true "Speaker admin nonce"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/speakers/{speakerID} [delete]
func (c *SpeakerController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.guard(w, r)
	if !ok {
		return
	}
	speakerID := parseSpeakerID(r)

	if err := c.Service.Delete(r.Context(), userID, speakerID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// guard resolves the authenticated user and checks the request nonce. The
// nonce travels in the "nonce" form field or query parameter.
func (c *SpeakerController) guard(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return "", false
	}
	if !c.Nonces.Verify(userID, speakersNonceAction, r.FormValue("nonce")) {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "Invalid nonce")
		return "", false
	}
	return userID, true
}

// parseForm builds a SpeakerInput from a urlencoded or multipart form body,
// keeping absent and submitted-empty fields distinct.
func (c *SpeakerController) parseForm(w http.ResponseWriter, r *http.Request) (*domain.SpeakerInput, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "malformed form data")
			return nil, false
		}
	} else {
		if err := r.ParseForm(); err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "malformed form data")
			return nil, false
		}
	}

	in := &domain.SpeakerInput{}
	for key, set := range speakerFormFields {
		if !r.PostForm.Has(key) {
			continue
		}
		v := r.PostForm.Get(key)
		set(in, &v)
	}
	if r.PostForm.Has("category") {
		sel := domain.ParseCategorySelection(r.PostForm.Get("category"), r.PostForm.Get("category_custom"))
		in.Category = &sel
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		in.Image = &domain.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "malformed file upload")
		return nil, false
	}
	return in, true
}

// parseSpeakerID reads the path parameter; anything non-numeric comes back as
// 0 and fails the service's ID check.
func parseSpeakerID(r *http.Request) int64 {
	id, err := strconv.ParseInt(r.PathValue("speakerID"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (c *SpeakerController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
