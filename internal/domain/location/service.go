package location

import "context"

// LocationService defines business logic for geofence administration.
type LocationService interface {
	Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)

	// List returns all locations annotated with their attendance record count.
	List(ctx context.Context) ([]LocationResponse, error)

	Update(ctx context.Context, req UpdateLocationRequest) (LocationResponse, error)

	Delete(ctx context.Context, id string) error
}

// GeofenceResolver decides whether a reported position falls inside an
// authorized zone. A nil result with a nil error means no zone matched;
// callers decide whether that is fatal.
type GeofenceResolver interface {
	Match(ctx context.Context, lat, lon float64) (*Location, error)
}
