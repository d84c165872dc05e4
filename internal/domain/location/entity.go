package location

import (
	"time"
)

// Location is an authorized clock-in zone: a circle on the WGS-84
// sphere inside which clock events are accepted.
type Location struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	RecordCount *int64
}
