package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SyphaxBN/PointageApp-Back/internal/config"
	"github.com/SyphaxBN/PointageApp-Back/internal/domain/attendance"
	"github.com/SyphaxBN/PointageApp-Back/internal/domain/location"
	"github.com/SyphaxBN/PointageApp-Back/internal/pkg/jwt"
	attendanceService "github.com/SyphaxBN/PointageApp-Back/internal/service/attendance"
	"github.com/SyphaxBN/PointageApp-Back/internal/service/geofence"
	locationService "github.com/SyphaxBN/PointageApp-Back/internal/service/location"
	reportService "github.com/SyphaxBN/PointageApp-Back/internal/service/report"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range f.records {
		if existing.UserID == att.UserID && existing.IsOpen() {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
	}
	att.ID = uuid.NewString()
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetOpenByUser(ctx context.Context, userID string) (attendance.Attendance, error) {
	for _, att := range f.records {
		if att.UserID == userID && att.IsOpen() {
			return att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNoOpenRecord
}

func (f *fakeAttendanceRepo) Close(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	existing, ok := f.records[att.ID]
	if !ok || !existing.IsOpen() {
		return attendance.Attendance{}, attendance.ErrNoOpenRecord
	}
	existing.ClockOut = att.ClockOut
	existing.ClockOutLatitude = att.ClockOutLatitude
	existing.ClockOutLongitude = att.ClockOutLongitude
	f.records[att.ID] = existing
	return existing, nil
}

func (f *fakeAttendanceRepo) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	out := make([]attendance.Attendance, 0, len(f.records))
	for _, att := range f.records {
		out = append(out, att)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListBetween(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if !att.ClockIn.Before(from) && !att.ClockIn.After(to) {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) LastByUser(ctx context.Context, userID string) (attendance.Attendance, error) {
	var found *attendance.Attendance
	for _, att := range f.records {
		att := att
		if att.UserID != userID {
			continue
		}
		if found == nil || att.ClockIn.After(found.ClockIn) {
			found = &att
		}
	}
	if found == nil {
		return attendance.Attendance{}, attendance.ErrNoRecordFound
	}
	return *found, nil
}

func (f *fakeAttendanceRepo) Recent(ctx context.Context, limit int) ([]attendance.Attendance, error) {
	out, _ := f.ListAll(ctx)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAttendanceRepo) CountByRange(ctx context.Context, from, to time.Time) (int64, int64, error) {
	var total, completed int64
	for _, att := range f.records {
		if att.ClockIn.Before(from) || att.ClockIn.After(to) {
			continue
		}
		total++
		if !att.IsOpen() {
			completed++
		}
	}
	return total, completed, nil
}

func (f *fakeAttendanceRepo) CloseStale(ctx context.Context, olderThan time.Time, shiftCap time.Duration) (int64, error) {
	return 0, nil
}

type fakeLocationRepo struct {
	zones map[string]location.Location
}

func (f *fakeLocationRepo) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	for _, existing := range f.zones {
		if existing.Name == loc.Name {
			return location.Location{}, location.ErrLocationNameExists
		}
	}
	loc.ID = uuid.NewString()
	loc.CreatedAt = time.Now().UTC()
	loc.UpdatedAt = loc.CreatedAt
	f.zones[loc.ID] = loc
	return loc, nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string) (location.Location, error) {
	loc, ok := f.zones[id]
	if !ok {
		return location.Location{}, location.ErrLocationNotFound
	}
	return loc, nil
}

func (f *fakeLocationRepo) List(ctx context.Context) ([]location.Location, error) {
	out := make([]location.Location, 0, len(f.zones))
	for _, loc := range f.zones {
		out = append(out, loc)
	}
	return out, nil
}

func (f *fakeLocationRepo) ListWithRecordCounts(ctx context.Context) ([]location.Location, error) {
	return f.List(ctx)
}

func (f *fakeLocationRepo) Update(ctx context.Context, req location.UpdateLocationRequest) error {
	loc, ok := f.zones[req.ID]
	if !ok {
		return location.ErrLocationNotFound
	}
	if req.Name != nil {
		loc.Name = *req.Name
	}
	f.zones[req.ID] = loc
	return nil
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.zones[id]; !ok {
		return location.ErrLocationNotFound
	}
	delete(f.zones, id)
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.LogLevel = "error"
	cfg.App.FrontendURL = "http://localhost:3000"

	attendanceRepo := &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
	locationRepo := &fakeLocationRepo{zones: map[string]location.Location{
		"loc-hq": {
			ID:           "loc-hq",
			Name:         "Siège",
			Latitude:     48.8566,
			Longitude:    2.3522,
			RadiusMeters: 200,
		},
	}}

	jwtService := jwt.NewJWTService(handlerTestSecret)
	resolver := geofence.NewResolver(locationRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, resolver, time.UTC, nil)
	reportSvc := reportService.NewReportService(attendanceRepo, time.UTC)
	locationSvc := locationService.NewLocationService(locationRepo, nil)

	router := NewRouter(
		cfg,
		jwtService,
		NewAttendanceHandler(attendanceSvc),
		NewReportHandler(reportSvc),
		NewLocationHandler(locationSvc),
	)
	return router
}

func bearerToken(t *testing.T, userID, role string) string {
	ja := jwtauth.New("HS256", []byte(handlerTestSecret), nil)
	_, tokenString, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    role,
	})
	require.NoError(t, err)
	return "Bearer " + tokenString
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAttendanceEndpoints_RequireAuthentication(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendance/clock-in", "",
		map[string]float64{"latitude": 48.8566, "longitude": 2.3523})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAttendanceEndpoints_ClockInClockOutCycle(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "user-1", "employee")
	payload := map[string]float64{"latitude": 48.8566, "longitude": 2.3523}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendance/clock-in", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			Status   string `json:"status"`
			Location string `json:"location"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "En cours", created.Data.Status)
	assert.Equal(t, "Siège", created.Data.Location)

	// Double clock-in conflicts
	rec = doJSON(t, router, http.MethodPost, "/api/v1/attendance/clock-in", token, payload)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/attendance/clock-out", token, payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Clock-out without an open record conflicts
	rec = doJSON(t, router, http.MethodPost, "/api/v1/attendance/clock-out", token, payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceEndpoints_OutOfZone(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "user-1", "employee")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendance/clock-in", token,
		map[string]float64{"latitude": 45.0, "longitude": 5.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceEndpoints_ValidationRejected(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "user-1", "employee")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendance/clock-in", token,
		map[string]float64{"latitude": 95, "longitude": 2.3523})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReportEndpoints_AdminOnly(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/attendance/dashboard",
		bearerToken(t, "user-1", "employee"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/attendance/dashboard",
		bearerToken(t, "admin-1", "admin"), nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestReportEndpoints_HistoryRejectsMalformedDate(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "admin-1", "admin")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/attendance/history?date=2024-13-40", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/attendance/history?date=2024-02-29", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReportEndpoints_LastRecordNotFound(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "admin-1", "admin")

	rec := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/attendance/users/%s/last", uuid.NewString()), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLocationEndpoints_CRUD(t *testing.T) {
	router := newTestRouter(t)
	admin := bearerToken(t, "admin-1", "admin")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/locations", admin, map[string]interface{}{
		"name":          "Annexe",
		"latitude":      45.7640,
		"longitude":     4.8357,
		"radius_meters": 150,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	// Duplicate name conflicts
	rec = doJSON(t, router, http.MethodPost, "/api/v1/locations", admin, map[string]interface{}{
		"name":          "Annexe",
		"latitude":      45.7640,
		"longitude":     4.8357,
		"radius_meters": 150,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/locations/"+created.Data.ID, admin,
		map[string]interface{}{"name": "Annexe Lyon"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/locations/"+created.Data.ID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/locations/"+created.Data.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLocationEndpoints_RejectsMalformedID(t *testing.T) {
	router := newTestRouter(t)
	admin := bearerToken(t, "admin-1", "admin")

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/locations/not-a-uuid", admin,
		map[string]interface{}{"name": "Annexe"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/locations/not-a-uuid", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// A well-formed but unknown ID still falls through to not-found.
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/locations/"+uuid.NewString(), admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLocationEndpoints_CreateIsAdminOnly(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/locations",
		bearerToken(t, "user-1", "employee"), map[string]interface{}{
			"name":          "Annexe",
			"latitude":      45.7640,
			"longitude":     4.8357,
			"radius_meters": 150,
		})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
