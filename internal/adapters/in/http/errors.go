package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusForError maps application and domain errors to HTTP status codes.
// Lifecycle rule violations are conflicts with the order's current state,
// not malformed requests, so they map to 409.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsNotUnique),
		errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrInvalidPaymentTransition),
		errors.Is(err, order.ErrInvalidDisputeTransition),
		errors.Is(err, order.ErrRevisionQuotaExhausted),
		errors.Is(err, order.ErrDisputeAlreadyOpened),
		errors.Is(err, order.ErrReviewAlreadyLeft):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidAmount),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(err error) (int, Error) {
	status := statusForError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	return status, Error{Code: status, Message: message}
}
