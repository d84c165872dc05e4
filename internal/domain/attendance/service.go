package attendance

import (
	"context"
)

// AttendanceService is the clock event state machine. Per user it moves
// between Idle (no open record) and Clocked-In (exactly one open
// record); both transitions check state before position, in that order.
type AttendanceService interface {
	// ClockIn opens a record for the calling user. Fails with
	// ErrAlreadyClockedIn from the Clocked-In state and ErrOutOfZone
	// when the position matches no authorized zone.
	ClockIn(ctx context.Context, req ClockInRequest) (RecordResponse, error)

	// ClockOut closes the calling user's open record. Fails with
	// ErrNoOpenRecord from the Idle state and ErrOutOfZone when the
	// position matches no authorized zone.
	ClockOut(ctx context.Context, req ClockOutRequest) (RecordResponse, error)
}
