package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStaleCloser struct {
	attendance.AttendanceRepository

	olderThan time.Time
	shiftCap  time.Duration
	closed    int64
	err       error
}

func (f *fakeStaleCloser) CloseStale(ctx context.Context, olderThan time.Time, shiftCap time.Duration) (int64, error) {
	f.olderThan = olderThan
	f.shiftCap = shiftCap
	return f.closed, f.err
}

func TestAttendanceJobs_AutoCloseStaleRecords(t *testing.T) {
	repo := &fakeStaleCloser{closed: 3}
	jobs := NewAttendanceJobs(repo)

	err := jobs.AutoCloseStaleRecords(context.Background())
	require.NoError(t, err)

	assert.Equal(t, shiftCap, repo.shiftCap)
	assert.WithinDuration(t, time.Now().UTC().Add(-staleAfter), repo.olderThan, time.Minute)
}

func TestAttendanceJobs_AutoCloseStaleRecords_RepositoryFault(t *testing.T) {
	repo := &fakeStaleCloser{err: errors.New("connection lost")}
	jobs := NewAttendanceJobs(repo)

	err := jobs.AutoCloseStaleRecords(context.Background())
	assert.Error(t, err)
}

func TestScheduler_RunOnce(t *testing.T) {
	scheduler := NewScheduler()

	ran := 0
	scheduler.AddJob("tick", time.Hour, func(ctx context.Context) error {
		ran++
		return nil
	})

	scheduler.RunOnce(context.Background())
	assert.Equal(t, 1, ran)
}
