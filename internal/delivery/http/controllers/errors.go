package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/domain"
)

// writeDomainError maps a service error to the right HTTP status and error
// code and writes the JSON error envelope. Unrecognized errors are logged and
// reported as 500 internal_error without leaking internals to the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		notFound  *domain.NotFoundError
		inactive  *domain.InactiveResourceError
		badRange  *domain.InvalidRangeError
		outRange  *domain.OutOfRangeError
		badValue  *domain.InvalidValueError
		conflict  *domain.ScheduleConflictError
		duplicate *domain.DuplicateRegistrationError
		full      *domain.CapacityExceededError
	)
	switch {
	case errors.As(err, &notFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFound.Error())
	case errors.As(err, &inactive):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, inactive.Error())
	case errors.As(err, &badRange):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, badRange.Error())
	case errors.As(err, &outRange):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, outRange.Error())
	case errors.As(err, &badValue):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, badValue.Error())
	case errors.As(err, &conflict):
		helpers.WriteJSONErrorDetails(w, http.StatusConflict, helpers.ErrCodeConflict, conflict.Error(), conflict.Conflicts)
	case errors.As(err, &duplicate):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, duplicate.Error())
	case errors.As(err, &full):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, full.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrDuplicateEmail):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, domain.ErrDuplicateEmail.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, domain.ErrInvalidCredentials.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
