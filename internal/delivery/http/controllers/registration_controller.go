package controllers

import (
	"fmt"
	"log/slog"
	"net/http"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

// RegisterRequest is the request body for POST /events/{eventID}/registrations.
type RegisterRequest struct {
	NumberOfParticipants int `json:"number_of_participants"`
}

// Validate implements Validator.
func (req RegisterRequest) Validate() []string {
	var errs []string
	if req.NumberOfParticipants < domain.MinParticipants || req.NumberOfParticipants > domain.MaxParticipants {
		errs = append(errs, fmt.Sprintf("number_of_participants must be between %d and %d", domain.MinParticipants, domain.MaxParticipants))
	}
	return errs
}

// UpdateRegistrationRequest is the request body for PATCH /registrations/{registrationID}.
type UpdateRegistrationRequest struct {
	NumberOfParticipants int `json:"number_of_participants"`
}

// Validate implements Validator.
func (req UpdateRegistrationRequest) Validate() []string {
	var errs []string
	if req.NumberOfParticipants < domain.MinParticipants || req.NumberOfParticipants > domain.MaxParticipants {
		errs = append(errs, fmt.Sprintf("number_of_participants must be between %d and %d", domain.MinParticipants, domain.MaxParticipants))
	}
	return errs
}

// ListRegistrationsResponse is the data payload for registration list endpoints.
type ListRegistrationsResponse struct {
	Registrations []*domain.Registration `json:"registrations"`
	Pagination    helpers.PaginationMeta `json:"pagination"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// ownedRegistration loads the registration and checks it belongs to the
// authenticated user. Returns domain.ErrForbidden on a mismatch.
func (c *RegistrationController) ownedRegistration(r *http.Request, registrationID string) (*domain.Registration, error) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return nil, domain.ErrForbidden
	}
	reg, err := c.Service.GetRegistrationByID(r.Context(), registrationID)
	if err != nil {
		return nil, err
	}
	if reg.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return reg, nil
}

// Register godoc
// @Summary Register for an event
// @Description Registers the authenticated user for the event with the given party size. Fails when the event is inactive, the user is already registered, or the remaining capacity cannot hold the party.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body RegisterRequest true "Party size"
// @Success 201 {object} helpers.APIResponse "data contains the created registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate registration or not enough capacity)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.RegisterToEvent(r.Context(), eventID, userID, req.NumberOfParticipants)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// GetRegistration godoc
// @Summary Get a registration by ID
// @Description Returns the registration. Only its owner may view it.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} helpers.APIResponse "data contains the registration"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID} [get]
func (c *RegistrationController) GetRegistration(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}
	reg, err := c.ownedRegistration(r, registrationID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// UpdateRegistration godoc
// @Summary Change the party size of a registration
// @Description Updates the number of participants. Only the owner may update; the new size is checked against capacity excluding the registration's own current contribution.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID"
// @Param body body UpdateRegistrationRequest true "New party size"
// @Success 200 {object} helpers.APIResponse "data contains the updated registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not enough capacity)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID} [patch]
func (c *RegistrationController) UpdateRegistration(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}
	var req UpdateRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, err := c.ownedRegistration(r, registrationID); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	reg, err := c.Service.UpdateRegistration(r.Context(), registrationID, req.NumberOfParticipants)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// CancelRegistration godoc
// @Summary Cancel a registration
// @Description Deletes the registration and frees its capacity. Only the owner may cancel.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID} [delete]
func (c *RegistrationController) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}
	if _, err := c.ownedRegistration(r, registrationID); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	if _, err := c.Service.CancelRegistration(r.Context(), registrationID); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetEventCapacity godoc
// @Summary Get an event's capacity summary
// @Description Returns total capacity, registered participants, available capacity, and whether the event is full.
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the capacity summary"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/capacity [get]
func (c *RegistrationController) GetEventCapacity(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	info, err := c.Service.GetEventCapacityInfo(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, info)
}

// ListEventRegistrations godoc
// @Summary List registrations of an event
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains registrations and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [get]
func (c *RegistrationController) ListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	p := helpers.ParsePagination(r)
	regs, total, err := c.Service.ListEventRegistrations(r.Context(), eventID, p)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListRegistrationsResponse{
		Registrations: regs,
		Pagination:    helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// ListMyRegistrations godoc
// @Summary List the authenticated user's registrations
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains registrations and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/registrations [get]
func (c *RegistrationController) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	p := helpers.ParsePagination(r)
	regs, total, err := c.Service.ListUserRegistrations(r.Context(), userID, p)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListRegistrationsResponse{
		Registrations: regs,
		Pagination:    helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}
