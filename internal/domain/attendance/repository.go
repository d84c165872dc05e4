package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
// The storage layer owns open-record exclusivity: a partial unique
// index on (user_id) WHERE clock_out IS NULL makes the check-then-create
// of Create atomic, so Create must return ErrAlreadyClockedIn when a
// concurrent clock-in wins the race.
type AttendanceRepository interface {
	// Create inserts a new open record. Returns ErrAlreadyClockedIn if
	// the user already has an open record.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetOpenByUser returns the user's open record, or ErrNoOpenRecord.
	GetOpenByUser(ctx context.Context, userID string) (Attendance, error)

	// Close sets clock_out and the clock-out position on an open record.
	// Returns ErrNoOpenRecord if the record is already closed or gone.
	Close(ctx context.Context, att Attendance) (Attendance, error)

	// ListAll returns every record, newest clock-in first, with the
	// location name joined.
	ListAll(ctx context.Context) ([]Attendance, error)

	// ListBetween returns records whose clock_in falls in [from, to],
	// newest first, with the location name joined.
	ListBetween(ctx context.Context, from, to time.Time) ([]Attendance, error)

	// LastByUser returns the user's most recent record by clock_in, or
	// ErrNoRecordFound.
	LastByUser(ctx context.Context, userID string) (Attendance, error)

	// Recent returns the latest records across all users, decorated with
	// the owning user's display name and photo.
	Recent(ctx context.Context, limit int) ([]Attendance, error)

	// CountByRange counts records with clock_in in [from, to], split into
	// completed and still-open.
	CountByRange(ctx context.Context, from, to time.Time) (total, completed int64, err error)

	// CloseStale closes every open record whose clock_in is before
	// olderThan, stamping clock_out at clock_in + shiftCap. The
	// clock-out position stays null; nobody reported one. Returns the
	// number of records closed.
	CloseStale(ctx context.Context, olderThan time.Time, shiftCap time.Duration) (int64, error)
}
