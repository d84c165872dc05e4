package attendance

import "errors"

// Attendance domain errors
var (
	// Clock event errors
	ErrAlreadyClockedIn = errors.New("you are already clocked in")
	ErrOutOfZone        = errors.New("you are outside all authorized zones")
	ErrNoOpenRecord     = errors.New("you are not clocked in")

	// Reporting errors
	ErrNoRecordFound     = errors.New("no attendance record found")
	ErrInvalidDateFormat = errors.New("date must use the YYYY-MM-DD format")
)
