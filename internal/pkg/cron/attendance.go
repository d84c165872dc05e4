package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/attendance"
)

const (
	// staleAfter is how long a record may stay open before the closer
	// considers it abandoned.
	staleAfter = 24 * time.Hour

	// shiftCap bounds the synthetic duration stamped on auto-closed
	// records, so an abandoned record never reads as a multi-day shift.
	shiftCap = 12 * time.Hour

	closeStaleInterval = time.Hour
)

// AttendanceJobs owns the background maintenance of attendance records.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository) *AttendanceJobs {
	return &AttendanceJobs{attendanceRepo: attendanceRepo}
}

// RegisterJobs registers all attendance jobs with the scheduler.
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto-close-stale-records", closeStaleInterval, j.AutoCloseStaleRecords)
}

// AutoCloseStaleRecords closes records whose owner never clocked out.
// Closed records get a synthetic clock_out and no clock-out position;
// they render with the out-of-zone location label.
func (j *AttendanceJobs) AutoCloseStaleRecords(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-staleAfter)

	closed, err := j.attendanceRepo.CloseStale(ctx, cutoff, shiftCap)
	if err != nil {
		return err
	}

	if closed > 0 {
		slog.Info("Closed stale attendance records", "count", closed, "cutoff", cutoff)
	}
	return nil
}
