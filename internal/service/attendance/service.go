package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/attendance"
	"github.com/SyphaxBN/PointageApp-Back/internal/domain/location"
	"github.com/go-chi/jwtauth/v5"
)

// TxRunner executes fn atomically; the storage layer binds the
// transaction to the context fn receives.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	resolver location.GeofenceResolver
	timezone *time.Location
	withTx   TxRunner
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	resolver location.GeofenceResolver,
	timezone *time.Location,
	withTx TxRunner,
) attendance.AttendanceService {
	if timezone == nil {
		timezone = time.UTC
	}
	if withTx == nil {
		withTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		resolver:             resolver,
		timezone:             timezone,
		withTx:               withTx,
	}
}

// userIDFromContext extracts the verified user identity from JWT claims.
func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// ClockIn implements attendance.AttendanceService. State is checked
// before position: a user who is both clocked in and out of zone gets
// ErrAlreadyClockedIn.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	_, err = s.AttendanceRepository.GetOpenByUser(ctx, userID)
	if err == nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
	}
	if !errors.Is(err, attendance.ErrNoOpenRecord) {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check open record: %w", err)
	}

	zone, err := s.resolver.Match(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to resolve geofence: %w", err)
	}
	if zone == nil {
		return attendance.RecordResponse{}, attendance.ErrOutOfZone
	}

	record := attendance.Attendance{
		UserID:           userID,
		ClockIn:          time.Now().UTC(),
		ClockInLatitude:  req.Latitude,
		ClockInLongitude: req.Longitude,
		LocationID:       &zone.ID,
	}

	// The storage-level open-record index backstops the check above:
	// if a concurrent clock-in won, Create reports ErrAlreadyClockedIn.
	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	created.LocationName = &zone.Name
	return s.toResponse(created), nil
}

// ClockOut implements attendance.AttendanceService. Same order as
// ClockIn: state first, then position.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// Read-then-close runs atomically so the record seen open here is
	// the one that gets closed.
	var closed attendance.Attendance
	err = s.withTx(ctx, func(ctx context.Context) error {
		record, err := s.AttendanceRepository.GetOpenByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, attendance.ErrNoOpenRecord) {
				return attendance.ErrNoOpenRecord
			}
			return fmt.Errorf("failed to get open record: %w", err)
		}

		zone, err := s.resolver.Match(ctx, req.Latitude, req.Longitude)
		if err != nil {
			return fmt.Errorf("failed to resolve geofence: %w", err)
		}
		if zone == nil {
			return attendance.ErrOutOfZone
		}

		now := time.Now().UTC()
		record.ClockOut = &now
		record.ClockOutLatitude = &req.Latitude
		record.ClockOutLongitude = &req.Longitude
		// The reference follows the most recent event.
		record.LocationID = &zone.ID

		closed, err = s.AttendanceRepository.Close(ctx, record)
		if err != nil {
			if errors.Is(err, attendance.ErrNoOpenRecord) {
				return attendance.ErrNoOpenRecord
			}
			return fmt.Errorf("failed to close attendance record: %w", err)
		}

		closed.LocationName = &zone.Name
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return s.toResponse(closed), nil
}

func (s *AttendanceServiceImpl) toResponse(att attendance.Attendance) attendance.RecordResponse {
	return MapRecordToResponse(att, s.timezone)
}

// MapRecordToResponse converts an Attendance entity to its display
// shape, timestamps split into date and time in the given timezone.
func MapRecordToResponse(att attendance.Attendance, tz *time.Location) attendance.RecordResponse {
	localIn := att.ClockIn.In(tz)

	resp := attendance.RecordResponse{
		ID:          att.ID,
		UserID:      att.UserID,
		Date:        localIn.Format("2006-01-02"),
		ClockInTime: localIn.Format("15:04:05"),
		Location:    attendance.OutOfZoneLabel,
		Status:      attendance.StatusInProgress,
	}

	if att.LocationName != nil {
		resp.Location = *att.LocationName
	}

	if att.ClockOut != nil {
		outTime := att.ClockOut.In(tz).Format("15:04:05")
		resp.ClockOutTime = &outTime
		resp.Status = attendance.StatusCompleted

		duration := FormatDuration(att.ClockOut.Sub(att.ClockIn))
		resp.Duration = &duration
	}

	return resp
}

// FormatDuration renders an elapsed time as hours and minutes.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %02dmin", hours, minutes)
}
