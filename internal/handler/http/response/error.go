package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jtx-people/employees-service-go/internal/domain/employee"
	"github.com/jtx-people/employees-service-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Validation and
// not-found outcomes are expected results, not incidents, and are never
// logged; store-unavailability is the one condition that is.
func HandleError(w http.ResponseWriter, err error) {
	// A client that disconnected mid-request gets nothing; this is not a
	// server failure.
	if errors.Is(err, context.Canceled) {
		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, "Validation failed", validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrDNIExists):
		Conflict(w, "DNI already registered")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee id already assigned")
	case errors.Is(err, employee.ErrStoreUnavailable):
		slog.Error("employee store unavailable", "error", err)
		InternalServerError(w, "Service temporarily unavailable, retry later")

	// Default
	default:
		slog.Error("unexpected error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
