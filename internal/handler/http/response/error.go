package response

import (
	"errors"
	"net/http"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/attendance"
	"github.com/SyphaxBN/PointageApp-Back/internal/domain/auth"
	"github.com/SyphaxBN/PointageApp-Back/internal/domain/location"
	"github.com/SyphaxBN/PointageApp-Back/internal/domain/report"
	"github.com/SyphaxBN/PointageApp-Back/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "An attendance record is already open for this user")
	case errors.Is(err, attendance.ErrNoOpenRecord):
		Conflict(w, "No open attendance record for this user")
	case errors.Is(err, attendance.ErrOutOfZone):
		BadRequest(w, "Position is outside every authorized zone", nil)
	case errors.Is(err, attendance.ErrNoRecordFound):
		NotFound(w, "No attendance record found")
	case errors.Is(err, attendance.ErrInvalidDateFormat):
		BadRequest(w, "Date must use the YYYY-MM-DD format", nil)

	// Location domain errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, location.ErrLocationNameExists):
		Conflict(w, "A location with this name already exists")

	// Report domain errors
	case errors.Is(err, report.ErrAggregationFailed):
		InternalServerError(w, "Failed to aggregate attendance data")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
