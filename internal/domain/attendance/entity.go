package attendance

import (
	"time"
)

// Attendance is one clock-in/clock-out cycle for one user. A nil
// ClockOut marks the record as open: the user is currently clocked in.
// Clock-in and clock-out positions are tracked separately; closing a
// record never overwrites where the user clocked in.
type Attendance struct {
	ID                string
	UserID            string
	ClockIn           time.Time
	ClockOut          *time.Time
	ClockInLatitude   float64
	ClockInLongitude  float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	LocationID        *string
	CreatedAt         time.Time

	// DTO (joined columns)
	UserName     *string
	UserPhotoURL *string
	LocationName *string
}

// IsOpen reports whether the record has no clock-out yet.
func (a Attendance) IsOpen() bool {
	return a.ClockOut == nil
}
