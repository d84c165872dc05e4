package location

import "context"

type LocationRepository interface {
	Create(ctx context.Context, loc Location) (Location, error)

	GetByID(ctx context.Context, id string) (Location, error)

	// List returns every location in creation order. The geofence
	// resolver reads the registry in full on each check.
	List(ctx context.Context) ([]Location, error)

	// ListWithRecordCounts annotates each location with the number of
	// attendance records referencing it, for administrative display.
	ListWithRecordCounts(ctx context.Context) ([]Location, error)

	Update(ctx context.Context, req UpdateLocationRequest) error

	// Delete removes a location. Attendance records referencing it keep
	// existing; the storage layer nulls the reference (ON DELETE SET NULL).
	Delete(ctx context.Context, id string) error
}
