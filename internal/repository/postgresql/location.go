package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/location"
	"github.com/SyphaxBN/PointageApp-Back/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type locationRepository struct {
	db *database.DB
}

// Create implements location.LocationRepository.
func (l *locationRepository) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	q := GetQuerier(ctx, l.db)

	loc.ID = uuid.NewString()

	query := `
		INSERT INTO locations (id, name, latitude, longitude, radius_meters)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		loc.ID, loc.Name, loc.Latitude, loc.Longitude, loc.RadiusMeters,
	).Scan(&loc.CreatedAt, &loc.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return location.Location{}, location.ErrLocationNameExists
		}
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return loc, nil
}

// GetByID implements location.LocationRepository.
func (l *locationRepository) GetByID(ctx context.Context, id string) (location.Location, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, created_at, updated_at
		FROM locations
		WHERE id = $1
	`

	var loc location.Location
	err := q.QueryRow(ctx, query, id).Scan(
		&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters,
		&loc.CreatedAt, &loc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location by ID: %w", err)
	}

	return loc, nil
}

// List implements location.LocationRepository.
func (l *locationRepository) List(ctx context.Context) ([]location.Location, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, created_at, updated_at
		FROM locations
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		var loc location.Location
		err := rows.Scan(
			&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters,
			&loc.CreatedAt, &loc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read locations: %w", err)
	}

	return locations, nil
}

// ListWithRecordCounts implements location.LocationRepository.
func (l *locationRepository) ListWithRecordCounts(ctx context.Context) ([]location.Location, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT l.id, l.name, l.latitude, l.longitude, l.radius_meters, l.created_at, l.updated_at,
		       COUNT(a.id) AS record_count
		FROM locations l
		LEFT JOIN attendance_records a ON a.location_id = l.id
		GROUP BY l.id
		ORDER BY l.created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations with record counts: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		var loc location.Location
		var count int64
		err := rows.Scan(
			&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters,
			&loc.CreatedAt, &loc.UpdatedAt, &count,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		loc.RecordCount = &count
		locations = append(locations, loc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read locations: %w", err)
	}

	return locations, nil
}

// Update implements location.LocationRepository.
func (l *locationRepository) Update(ctx context.Context, req location.UpdateLocationRequest) error {
	q := GetQuerier(ctx, l.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Latitude != nil {
		updates = append(updates, fmt.Sprintf("latitude = $%d", argIdx))
		args = append(args, *req.Latitude)
		argIdx++
	}
	if req.Longitude != nil {
		updates = append(updates, fmt.Sprintf("longitude = $%d", argIdx))
		args = append(args, *req.Longitude)
		argIdx++
	}
	if req.RadiusMeters != nil {
		updates = append(updates, fmt.Sprintf("radius_meters = $%d", argIdx))
		args = append(args, *req.RadiusMeters)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for location update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)

	query := "UPDATE locations SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.ErrLocationNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return location.ErrLocationNameExists
		}
		return fmt.Errorf("failed to update location: %w", err)
	}

	return nil
}

// Delete implements location.LocationRepository. Attendance records
// referencing the location are nulled by the FK's ON DELETE SET NULL,
// never deleted.
func (l *locationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, l.db)

	query := `DELETE FROM locations WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepository{db: db}
}
