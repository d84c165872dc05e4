package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/attendance"
	"github.com/SyphaxBN/PointageApp-Back/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.user_id, a.clock_in, a.clock_out,
	a.clock_in_latitude, a.clock_in_longitude,
	a.clock_out_latitude, a.clock_out_longitude,
	a.location_id, a.created_at,
	l.name AS location_name
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.ClockIn, &att.ClockOut,
		&att.ClockInLatitude, &att.ClockInLongitude,
		&att.ClockOutLatitude, &att.ClockOutLongitude,
		&att.LocationID, &att.CreatedAt,
		&att.LocationName,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository. The partial unique
// index on (user_id) WHERE clock_out IS NULL is the atomic guard for
// open-record exclusivity; its violation maps to ErrAlreadyClockedIn.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att.ID = uuid.NewString()

	query := `
		INSERT INTO attendance_records (
			id, user_id, clock_in, clock_in_latitude, clock_in_longitude, location_id
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		att.ID, att.UserID, att.ClockIn,
		att.ClockInLatitude, att.ClockInLongitude, att.LocationID,
	).Scan(&att.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return att, nil
}

// GetOpenByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenByUser(ctx context.Context, userID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN locations l ON l.id = a.location_id
		WHERE a.user_id = $1
		  AND a.clock_out IS NULL
		ORDER BY a.clock_in DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoOpenRecord
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open record: %w", err)
	}

	return att, nil
}

// Close implements attendance.AttendanceRepository. The clock_out IS
// NULL guard makes a lost race surface as ErrNoOpenRecord instead of
// overwriting a closed record.
func (a *attendanceRepository) Close(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET clock_out = $2,
		    clock_out_latitude = $3,
		    clock_out_longitude = $4,
		    location_id = $5
		WHERE id = $1
		  AND clock_out IS NULL
		RETURNING id
	`

	var closedID string
	err := q.QueryRow(ctx, query,
		att.ID, att.ClockOut, att.ClockOutLatitude, att.ClockOutLongitude, att.LocationID,
	).Scan(&closedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoOpenRecord
		}
		return attendance.Attendance{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	return att, nil
}

// ListAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN locations l ON l.id = a.location_id
		ORDER BY a.clock_in DESC
	`

	return a.queryRecords(ctx, query)
}

// ListBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListBetween(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN locations l ON l.id = a.location_id
		WHERE a.clock_in >= $1 AND a.clock_in <= $2
		ORDER BY a.clock_in DESC
	`

	return a.queryRecords(ctx, query, from, to)
}

func (a *attendanceRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, nil
}

// LastByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) LastByUser(ctx context.Context, userID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN locations l ON l.id = a.location_id
		WHERE a.user_id = $1
		ORDER BY a.clock_in DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoRecordFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get last record: %w", err)
	}

	return att, nil
}

// Recent implements attendance.AttendanceRepository.
func (a *attendanceRepository) Recent(ctx context.Context, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `,
		       u.name AS user_name,
		       u.photo_url AS user_photo_url
		FROM attendance_records a
		LEFT JOIN locations l ON l.id = a.location_id
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.clock_in DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.UserID, &att.ClockIn, &att.ClockOut,
			&att.ClockInLatitude, &att.ClockInLongitude,
			&att.ClockOutLatitude, &att.ClockOutLongitude,
			&att.LocationID, &att.CreatedAt,
			&att.LocationName,
			&att.UserName, &att.UserPhotoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent record: %w", err)
		}
		records = append(records, att)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent records: %w", err)
	}

	return records, nil
}

// CountByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByRange(ctx context.Context, from, to time.Time) (int64, int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE clock_out IS NOT NULL)
		FROM attendance_records
		WHERE clock_in >= $1 AND clock_in <= $2
	`

	var total, completed int64
	if err := q.QueryRow(ctx, query, from, to).Scan(&total, &completed); err != nil {
		return 0, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	return total, completed, nil
}

// CloseStale implements attendance.AttendanceRepository. Records
// abandoned open get a synthetic clock_out capped at shiftCap past
// their clock_in; the clock-out position stays null.
func (a *attendanceRepository) CloseStale(ctx context.Context, olderThan time.Time, shiftCap time.Duration) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET clock_out = clock_in + $2
		WHERE clock_out IS NULL
		  AND clock_in < $1
	`

	tag, err := q.Exec(ctx, query, olderThan, shiftCap)
	if err != nil {
		return 0, fmt.Errorf("failed to close stale records: %w", err)
	}

	return tag.RowsAffected(), nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
