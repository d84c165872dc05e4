package attendance

import (
	"github.com/SyphaxBN/PointageApp-Back/internal/pkg/validator"
)

// Display labels carried to the client. The front end is French.
const (
	StatusCompleted  = "Terminé"
	StatusInProgress = "En cours"

	// OutOfZoneLabel stands in for a location name when the record's
	// reference was nulled (the location was deleted) or never matched.
	OutOfZoneLabel = "Hors zone"
)

type ClockInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *ClockInRequest) Validate() error {
	return validateClockPayload(r.Latitude, r.Longitude)
}

type ClockOutRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *ClockOutRequest) Validate() error {
	return validateClockPayload(r.Latitude, r.Longitude)
}

func validateClockPayload(lat, lon float64) error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(lon) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RecordResponse is the client-facing shape of one attendance record,
// timestamps split into calendar date and clock time for display.
type RecordResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	ClockInTime  string  `json:"clock_in_time"`
	ClockOutTime *string `json:"clock_out_time,omitempty"`
	Location     string  `json:"location"`
	Status       string  `json:"status"`
	Duration     *string `json:"duration,omitempty"`
}
