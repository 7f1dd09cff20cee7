package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/domain"
)

// CreateSessionRequest is the request body for POST /events/{eventID}/sessions.
type CreateSessionRequest struct {
	Title     string    `json:"title"`
	SpeakerID *string   `json:"speaker_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Capacity  *int      `json:"capacity"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (req CreateSessionRequest) Validate() []string {
	var errs []string
	if req.Title == "" {
		errs = append(errs, "title is required")
	}
	if req.StartTime.IsZero() {
		errs = append(errs, "start_time is required")
	}
	if req.EndTime.IsZero() {
		errs = append(errs, "end_time is required")
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		errs = append(errs, "capacity must be positive")
	}
	return errs
}

// UpdateSessionRequest is the request body for PATCH /sessions/{sessionID}.
// Absent fields keep their current value.
type UpdateSessionRequest struct {
	Title     *string    `json:"title"`
	SpeakerID *string    `json:"speaker_id"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Capacity  *int       `json:"capacity"`
	IsActive  *bool      `json:"is_active"`
}

// Validate implements Validator.
func (req UpdateSessionRequest) Validate() []string {
	var errs []string
	if req.Title != nil && *req.Title == "" {
		errs = append(errs, "title must not be empty")
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		errs = append(errs, "capacity must be positive")
	}
	return errs
}

// ListSessionsResponse is the data payload for GET /events/{eventID}/sessions.
type ListSessionsResponse struct {
	Sessions   []*domain.Session      `json:"sessions"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewSessionController(logger *slog.Logger, svc domain.ScheduleService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSession godoc
// @Summary Schedule a session within an event
// @Description Creates a session inside the event's time window. The session is rejected when it falls outside the window or overlaps another active session of the same event, including the configured buffer. On conflict the error details list every conflicting session.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param session body CreateSessionRequest true "Session data"
// @Success 201 {object} helpers.APIResponse "data contains the created session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict, details list the conflicting sessions"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	session := domain.NewSession(eventID, req.Title, req.SpeakerID, req.StartTime, req.EndTime, req.Capacity, now, now)
	created, err := c.Service.CreateSession(r.Context(), session)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GetSessionByID godoc
// @Summary Get a session by ID
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse "data contains the session"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID} [get]
func (c *SessionController) GetSessionByID(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	session, err := c.Service.GetSessionByID(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// ListSessionsByEvent godoc
// @Summary List sessions of an event
// @Description Returns the event's sessions ordered by start time, with pagination metadata.
// @Tags sessions
// @Produce json
// @Param eventID path string true "Event ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains sessions and pagination"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/sessions [get]
func (c *SessionController) ListSessionsByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	p := helpers.ParsePagination(r)
	sessions, total, err := c.Service.ListSessionsByEvent(r.Context(), eventID, p)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListSessionsResponse{
		Sessions:   sessions,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// UpdateSession godoc
// @Summary Update a session
// @Description Partially updates the session. The merged result is validated against the event window and re-checked for conflicts, excluding the session itself.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param session body UpdateSessionRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict, details list the conflicting sessions"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID} [patch]
func (c *SessionController) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	var req UpdateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	patch := domain.SessionPatch{
		Title:     req.Title,
		SpeakerID: req.SpeakerID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Capacity:  req.Capacity,
		IsActive:  req.IsActive,
	}
	session, err := c.Service.UpdateSession(r.Context(), sessionID, patch)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete a session
// @Description Removes the session. Deleting an already absent session returns 204 as well.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID} [delete]
func (c *SessionController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	if _, err := c.Service.DeleteSession(r.Context(), sessionID); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
