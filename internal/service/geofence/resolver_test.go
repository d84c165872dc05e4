package geofence

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocationRepo struct {
	zones   []location.Location
	listErr error
}

func (f *fakeLocationRepo) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	f.zones = append(f.zones, loc)
	return loc, nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string) (location.Location, error) {
	for _, zone := range f.zones {
		if zone.ID == id {
			return zone, nil
		}
	}
	return location.Location{}, location.ErrLocationNotFound
}

func (f *fakeLocationRepo) List(ctx context.Context) ([]location.Location, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.zones, nil
}

func (f *fakeLocationRepo) ListWithRecordCounts(ctx context.Context) ([]location.Location, error) {
	return f.List(ctx)
}

func (f *fakeLocationRepo) Update(ctx context.Context, req location.UpdateLocationRequest) error {
	return nil
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id string) error {
	return nil
}

// Paris HQ test zone, 200m radius.
var testHQ = location.Location{
	ID:           "loc-hq",
	Name:         "Siège",
	Latitude:     48.8566,
	Longitude:    2.3522,
	RadiusMeters: 200,
}

func TestResolver_Match_InsideZone(t *testing.T) {
	resolver := NewResolver(&fakeLocationRepo{zones: []location.Location{testHQ}})

	// ~50m east of the zone center
	zone, err := resolver.Match(context.Background(), 48.8566, 2.3529)
	require.NoError(t, err)
	require.NotNil(t, zone)
	assert.Equal(t, "loc-hq", zone.ID)
}

func TestResolver_Match_OutsideZone(t *testing.T) {
	resolver := NewResolver(&fakeLocationRepo{zones: []location.Location{testHQ}})

	// ~1.5km away
	zone, err := resolver.Match(context.Background(), 48.8566, 2.3722)
	require.NoError(t, err)
	assert.Nil(t, zone)
}

func TestResolver_Match_BoundaryIsInside(t *testing.T) {
	zone := testHQ
	// Radius chosen so the point sits just inside
	zone.RadiusMeters = 60
	resolver := NewResolver(&fakeLocationRepo{zones: []location.Location{zone}})

	matched, err := resolver.Match(context.Background(), 48.8566, 2.3529)
	require.NoError(t, err)
	assert.NotNil(t, matched)
}

func TestResolver_Match_EmptyRegistry(t *testing.T) {
	resolver := NewResolver(&fakeLocationRepo{})

	zone, err := resolver.Match(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)
	assert.Nil(t, zone)
}

func TestResolver_Match_NearestZoneWins(t *testing.T) {
	far := location.Location{
		ID:           "loc-far",
		Name:         "Annexe",
		Latitude:     48.8566,
		Longitude:    2.3540,
		RadiusMeters: 500,
	}
	near := location.Location{
		ID:           "loc-near",
		Name:         "Siège",
		Latitude:     48.8566,
		Longitude:    2.3524,
		RadiusMeters: 500,
	}
	resolver := NewResolver(&fakeLocationRepo{zones: []location.Location{far, near}})

	zone, err := resolver.Match(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)
	require.NotNil(t, zone)
	assert.Equal(t, "loc-near", zone.ID)
}

func TestResolver_Match_DegenerateCoordinatesNeverMatch(t *testing.T) {
	// A zone centered on the null island would otherwise swallow
	// missing GPS fixes reported as (0, 0).
	nullZone := location.Location{
		ID:           "loc-null",
		Name:         "Origine",
		Latitude:     0.0001,
		Longitude:    0.0001,
		RadiusMeters: 100000,
	}
	resolver := NewResolver(&fakeLocationRepo{zones: []location.Location{nullZone}})

	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"zero pair", 0, 0},
		{"zero latitude", 0, 0.0001},
		{"zero longitude", 0.0001, 0},
		{"NaN latitude", math.NaN(), 0.0001},
		{"latitude above range", 91, 0.0001},
		{"longitude below range", 0.0001, -181},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			zone, err := resolver.Match(context.Background(), tc.lat, tc.lon)
			require.NoError(t, err)
			assert.Nil(t, zone)
		})
	}
}

func TestResolver_Match_RegistryError(t *testing.T) {
	resolver := NewResolver(&fakeLocationRepo{listErr: errors.New("connection lost")})

	zone, err := resolver.Match(context.Background(), 48.8566, 2.3522)
	assert.Error(t, err)
	assert.Nil(t, zone)
}
