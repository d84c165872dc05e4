package geofence

import (
	"context"
	"fmt"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/location"
	"github.com/SyphaxBN/PointageApp-Back/internal/pkg/geo"
)

// ResolverImpl matches reported positions against the location
// registry. The registry is read in full on each check; with a handful
// of zones per deployment a spatial index is not worth carrying.
type ResolverImpl struct {
	locations location.LocationRepository
}

func NewResolver(locationRepo location.LocationRepository) location.GeofenceResolver {
	return &ResolverImpl{
		locations: locationRepo,
	}
}

// Match implements location.GeofenceResolver. Unusable coordinates
// (NaN, out of range, or a zero component) never match. When several
// zones contain the position the nearest center wins; a nil result
// with a nil error means no zone matched.
func (r *ResolverImpl) Match(ctx context.Context, lat, lon float64) (*location.Location, error) {
	if !geo.IsUsableCoordinate(lat, lon) {
		return nil, nil
	}

	zones, err := r.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load location registry: %w", err)
	}

	var best *location.Location
	var bestDistance float64
	for i := range zones {
		zone := zones[i]
		distance := geo.HaversineDistance(lat, lon, zone.Latitude, zone.Longitude)
		if distance > zone.RadiusMeters {
			continue
		}
		if best == nil || distance < bestDistance {
			best = &zones[i]
			bestDistance = distance
		}
	}

	return best, nil
}
