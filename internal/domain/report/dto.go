package report

import (
	"github.com/SyphaxBN/PointageApp-Back/internal/domain/attendance"
)

// UserHistory groups a user's records for the history listing.
type UserHistory struct {
	UserID  string                      `json:"user_id"`
	Records []attendance.RecordResponse `json:"records"`
}

// TodayCountResponse splits today's records by completion.
type TodayCountResponse struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"in_progress"`
}

// RecentEntry is one record of the latest-activity feed, decorated with
// the owning user's display identity.
type RecentEntry struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     string  `json:"user_name"`
	UserPhotoURL *string `json:"user_photo_url,omitempty"`
	Date         string  `json:"date"`
	ClockInTime  string  `json:"clock_in_time"`
	ClockOutTime *string `json:"clock_out_time,omitempty"`
	Location     string  `json:"location"`
	Status       string  `json:"status"`
	Duration     *string `json:"duration,omitempty"`
}

// DayTrend counts distinct users for one calendar day. A user appearing
// with both a completed and an open record that day counts under
// Completed only, so Total is a distinct-user count, not a record count.
type DayTrend struct {
	Date       string `json:"date"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"in_progress"`
	Total      int    `json:"total"`
}

// WeeklyTrendResponse covers the 7 calendar days ending today. Summary
// totals deduplicate users across the whole window rather than summing
// the per-day counts, so repeat clockers are counted once.
type WeeklyTrendResponse struct {
	Days    []DayTrend   `json:"days"`
	Summary TrendSummary `json:"summary"`
}

type TrendSummary struct {
	DistinctUsers int `json:"distinct_users"`
	Completed     int `json:"completed"`
	InProgress    int `json:"in_progress"`
}

// DashboardResponse combines the admin dashboard widgets.
type DashboardResponse struct {
	Today  TodayCountResponse  `json:"today"`
	Recent []RecentEntry       `json:"recent"`
	Weekly WeeklyTrendResponse `json:"weekly"`
}
