package report

import (
	"context"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/attendance"
)

// ReportService computes read-only statistics over the attendance
// record set; it never mutates records.
type ReportService interface {
	// HistoryForDate returns records grouped per user. An empty date
	// means all records; otherwise date must be YYYY-MM-DD and the
	// window is [00:00:00.000, 23:59:59.999] in the service's local
	// calendar. Malformed dates fail with attendance.ErrInvalidDateFormat.
	HistoryForDate(ctx context.Context, date string) ([]UserHistory, error)

	// LastRecordFor returns the user's most recent record, or
	// attendance.ErrNoRecordFound.
	LastRecordFor(ctx context.Context, userID string) (attendance.RecordResponse, error)

	// CountToday counts records clocked in during the current local day.
	CountToday(ctx context.Context) (TodayCountResponse, error)

	// Recent returns the limit most recent records across all users;
	// limit <= 0 falls back to 5.
	Recent(ctx context.Context, limit int) ([]RecentEntry, error)

	// WeeklyTrend returns distinct-user counts for the 7 calendar days
	// ending today.
	WeeklyTrend(ctx context.Context) (WeeklyTrendResponse, error)

	// Dashboard combines CountToday, Recent and WeeklyTrend.
	Dashboard(ctx context.Context) (DashboardResponse, error)
}
