package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/location"
)

// TxRunner executes fn atomically; the storage layer binds the
// transaction to the context fn receives.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type LocationServiceImpl struct {
	location.LocationRepository
	withTx TxRunner
}

func NewLocationService(locationRepo location.LocationRepository, withTx TxRunner) location.LocationService {
	if withTx == nil {
		withTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &LocationServiceImpl{
		LocationRepository: locationRepo,
		withTx:             withTx,
	}
}

// Create implements location.LocationService.
func (s *LocationServiceImpl) Create(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	loc := location.Location{
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	}

	created, err := s.LocationRepository.Create(ctx, loc)
	if err != nil {
		if errors.Is(err, location.ErrLocationNameExists) {
			return location.LocationResponse{}, location.ErrLocationNameExists
		}
		return location.LocationResponse{}, fmt.Errorf("failed to create location: %w", err)
	}

	return mapLocationToResponse(created), nil
}

// List implements location.LocationService.
func (s *LocationServiceImpl) List(ctx context.Context) ([]location.LocationResponse, error) {
	locations, err := s.LocationRepository.ListWithRecordCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, mapLocationToResponse(loc))
	}

	return responses, nil
}

// Update implements location.LocationService.
func (s *LocationServiceImpl) Update(ctx context.Context, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	// Update and read-back run atomically so the response reflects
	// exactly the state this update produced.
	var updated location.Location
	err := s.withTx(ctx, func(ctx context.Context) error {
		if err := s.LocationRepository.Update(ctx, req); err != nil {
			if errors.Is(err, location.ErrLocationNotFound) {
				return location.ErrLocationNotFound
			}
			if errors.Is(err, location.ErrLocationNameExists) {
				return location.ErrLocationNameExists
			}
			return fmt.Errorf("failed to update location: %w", err)
		}

		var err error
		updated, err = s.LocationRepository.GetByID(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get updated location: %w", err)
		}
		return nil
	})
	if err != nil {
		return location.LocationResponse{}, err
	}

	return mapLocationToResponse(updated), nil
}

// Delete implements location.LocationService. Historical attendance
// records referencing the location survive; the persistence layer
// nulls the reference.
func (s *LocationServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.LocationRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			return location.ErrLocationNotFound
		}
		return fmt.Errorf("failed to delete location: %w", err)
	}

	return nil
}

func mapLocationToResponse(loc location.Location) location.LocationResponse {
	return location.LocationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		RadiusMeters: loc.RadiusMeters,
		RecordCount:  loc.RecordCount,
		CreatedAt:    loc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    loc.UpdatedAt.Format(time.RFC3339),
	}
}
