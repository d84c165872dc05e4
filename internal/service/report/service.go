package report

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/attendance"
	"github.com/SyphaxBN/PointageApp-Back/internal/domain/report"
	"github.com/SyphaxBN/PointageApp-Back/internal/pkg/validator"
	attendanceService "github.com/SyphaxBN/PointageApp-Back/internal/service/attendance"
	"golang.org/x/sync/errgroup"
)

const defaultRecentLimit = 5

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	timezone *time.Location
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, timezone *time.Location) report.ReportService {
	if timezone == nil {
		timezone = time.UTC
	}
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepo,
		timezone:             timezone,
	}
}

// dayWindow returns [00:00:00.000, 23:59:59.999] around t in the
// service's local calendar.
func (s *ReportServiceImpl) dayWindow(t time.Time) (time.Time, time.Time) {
	local := t.In(s.timezone)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.timezone)
	end := time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, int(999*time.Millisecond), s.timezone)
	return start, end
}

// HistoryForDate implements report.ReportService.
func (s *ReportServiceImpl) HistoryForDate(ctx context.Context, date string) ([]report.UserHistory, error) {
	var records []attendance.Attendance
	var err error

	if date == "" {
		records, err = s.AttendanceRepository.ListAll(ctx)
	} else {
		day, ok := validator.IsValidDate(date)
		if !ok {
			return nil, attendance.ErrInvalidDateFormat
		}
		from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.timezone)
		to := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, int(999*time.Millisecond), s.timezone)
		records, err = s.AttendanceRepository.ListBetween(ctx, from, to)
	}
	if err != nil {
		return nil, s.aggregationFault("history", err)
	}

	// Group per user, preserving newest-first order of appearance.
	byUser := make(map[string]int)
	history := make([]report.UserHistory, 0)
	for _, att := range records {
		idx, seen := byUser[att.UserID]
		if !seen {
			idx = len(history)
			byUser[att.UserID] = idx
			history = append(history, report.UserHistory{UserID: att.UserID})
		}
		history[idx].Records = append(history[idx].Records,
			attendanceService.MapRecordToResponse(att, s.timezone))
	}

	return history, nil
}

// LastRecordFor implements report.ReportService.
func (s *ReportServiceImpl) LastRecordFor(ctx context.Context, userID string) (attendance.RecordResponse, error) {
	att, err := s.AttendanceRepository.LastByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, attendance.ErrNoRecordFound) {
			return attendance.RecordResponse{}, attendance.ErrNoRecordFound
		}
		return attendance.RecordResponse{}, s.aggregationFault("last record", err)
	}

	return attendanceService.MapRecordToResponse(att, s.timezone), nil
}

// CountToday implements report.ReportService.
func (s *ReportServiceImpl) CountToday(ctx context.Context) (report.TodayCountResponse, error) {
	from, to := s.dayWindow(time.Now())

	total, completed, err := s.AttendanceRepository.CountByRange(ctx, from, to)
	if err != nil {
		return report.TodayCountResponse{}, s.aggregationFault("today count", err)
	}

	return report.TodayCountResponse{
		Total:      total,
		Completed:  completed,
		InProgress: total - completed,
	}, nil
}

// Recent implements report.ReportService.
func (s *ReportServiceImpl) Recent(ctx context.Context, limit int) ([]report.RecentEntry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	records, err := s.AttendanceRepository.Recent(ctx, limit)
	if err != nil {
		return nil, s.aggregationFault("recent records", err)
	}

	entries := make([]report.RecentEntry, 0, len(records))
	for _, att := range records {
		view := attendanceService.MapRecordToResponse(att, s.timezone)

		// The identity collaborator may not know the user anymore; the
		// raw identifier is still displayable.
		userName := att.UserID
		if att.UserName != nil {
			userName = *att.UserName
		}

		entries = append(entries, report.RecentEntry{
			ID:           view.ID,
			UserID:       att.UserID,
			UserName:     userName,
			UserPhotoURL: att.UserPhotoURL,
			Date:         view.Date,
			ClockInTime:  view.ClockInTime,
			ClockOutTime: view.ClockOutTime,
			Location:     view.Location,
			Status:       view.Status,
			Duration:     view.Duration,
		})
	}

	return entries, nil
}

// WeeklyTrend implements report.ReportService. Counts are distinct
// users per day, not records: a user clocking in twice on one day
// contributes once, under "completed" as soon as any of that day's
// records is completed. The summary deduplicates across the window.
func (s *ReportServiceImpl) WeeklyTrend(ctx context.Context) (report.WeeklyTrendResponse, error) {
	todayStart, todayEnd := s.dayWindow(time.Now())
	windowStart := todayStart.AddDate(0, 0, -6)

	records, err := s.AttendanceRepository.ListBetween(ctx, windowStart, todayEnd)
	if err != nil {
		return report.WeeklyTrendResponse{}, s.aggregationFault("weekly trend", err)
	}

	completedByDay := make(map[string]map[string]bool)
	openByDay := make(map[string]map[string]bool)
	weekCompleted := make(map[string]bool)
	weekAll := make(map[string]bool)

	for _, att := range records {
		day := att.ClockIn.In(s.timezone).Format("2006-01-02")

		weekAll[att.UserID] = true
		if att.ClockOut != nil {
			if completedByDay[day] == nil {
				completedByDay[day] = make(map[string]bool)
			}
			completedByDay[day][att.UserID] = true
			weekCompleted[att.UserID] = true
		} else {
			if openByDay[day] == nil {
				openByDay[day] = make(map[string]bool)
			}
			openByDay[day][att.UserID] = true
		}
	}

	days := make([]report.DayTrend, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		day := todayStart.AddDate(0, 0, -offset).Format("2006-01-02")

		completed := len(completedByDay[day])
		inProgress := 0
		for userID := range openByDay[day] {
			// A user with both a completed and an open record that day
			// counts under completed only.
			if !completedByDay[day][userID] {
				inProgress++
			}
		}

		days = append(days, report.DayTrend{
			Date:       day,
			Completed:  completed,
			InProgress: inProgress,
			Total:      completed + inProgress,
		})
	}

	summary := report.TrendSummary{
		DistinctUsers: len(weekAll),
		Completed:     len(weekCompleted),
		InProgress:    len(weekAll) - len(weekCompleted),
	}

	return report.WeeklyTrendResponse{Days: days, Summary: summary}, nil
}

// Dashboard implements report.ReportService.
func (s *ReportServiceImpl) Dashboard(ctx context.Context) (report.DashboardResponse, error) {
	var (
		today  report.TodayCountResponse
		recent []report.RecentEntry
		weekly report.WeeklyTrendResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		today, err = s.CountToday(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		recent, err = s.Recent(gCtx, defaultRecentLimit)
		return err
	})

	g.Go(func() error {
		var err error
		weekly, err = s.WeeklyTrend(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return report.DashboardResponse{}, err
	}

	return report.DashboardResponse{
		Today:  today,
		Recent: recent,
		Weekly: weekly,
	}, nil
}

// aggregationFault logs the storage fault as an operational incident
// and hides the detail behind the generic aggregation error.
func (s *ReportServiceImpl) aggregationFault(op string, err error) error {
	slog.Error("attendance aggregation failed", "op", op, "error", err)
	return report.ErrAggregationFailed
}
