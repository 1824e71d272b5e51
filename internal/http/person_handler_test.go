package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
	"github.com/execsgroup/zowehlife-sub005/internal/events"
	"github.com/execsgroup/zowehlife-sub005/internal/repository"
	"github.com/execsgroup/zowehlife-sub005/internal/service"
	"github.com/execsgroup/zowehlife-sub005/internal/store"
)

// testKV minimal KV for handler tests.
type testKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newTestKV() *testKV { return &testKV{data: map[string]string{}} }

func (f *testKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *testKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *testKV) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

// noopNotifier handler tests don't exercise reminder delivery.
type noopNotifier struct{}

func (noopNotifier) FollowupScheduled(context.Context, service.FollowupNotice) {}

type testAPI struct {
	router     *Router
	ministryID string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := zap.NewNop()

	ministries := repository.NewMemoryMinistriesRepo()
	ministryID, err := ministries.CreateMinistry(context.Background(), &domain.Ministry{
		MinistryName: "Grace Chapel",
	})
	require.NoError(t, err)

	people := repository.NewMemoryPeopleRepo()
	dashboard := service.NewDashboardService(people, newTestKV(), logger)
	fanout := events.NewFanout(logger)
	fanout.Register(dashboard)

	persons := service.NewPersonService(people, ministries, fanout, noopNotifier{}, logger)
	export := service.NewExportService(people, logger)

	router := NewRouter(logger)
	router.RegisterHealthRoute()
	router.RegisterMinistryRoutes(NewMinistriesHandler(ministries, logger))
	router.RegisterPeopleRoutes(NewPersonHandler(people, persons, export, logger))
	router.RegisterUserRoutes(NewUsersHandler(repository.NewMemoryUsersRepo(), logger))
	router.RegisterDashboardRoutes(NewDashboardHandler(dashboard, logger))

	return &testAPI{router: router, ministryID: ministryID}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, scoped bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if scoped {
		req.Header.Set("X-Ministry-ID", a.ministryID)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Code   int             `json:"code"`
		Result json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, ResultSuccess, envelope.Code)
	var result map[string]any
	require.NoError(t, json.Unmarshal(envelope.Result, &result))
	return result
}

func (a *testAPI) createPerson(t *testing.T, kind string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/v1/people", map[string]any{
		"kind":      kind,
		"firstName": "Ada",
		"lastName":  "Mensah",
		"email":     "ada@example.com",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeResult(t, rec)["personId"].(string)
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/healthz", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreatePerson_AndList(t *testing.T) {
	api := newTestAPI(t)
	api.createPerson(t, "convert")

	rec := api.do(t, http.MethodGet, "/api/v1/people", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	require.Equal(t, float64(1), result["total"])

	items := result["items"].([]any)
	person := items[0].(map[string]any)
	require.Equal(t, "NEW", person["status"])
	require.Equal(t, "NEW", person["statusDisplay"])
	require.Equal(t, "badge-blue", person["statusColor"])
}

func TestCreatePerson_MissingMinistryScope(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodPost, "/api/v1/people", map[string]any{
		"kind":      "convert",
		"firstName": "Ada",
	}, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicRegister(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/public/api/v1/register", map[string]any{
		"ministryId": api.ministryID,
		"kind":       "new_member",
		"firstName":  "Kwame",
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code)
	result := decodeResult(t, rec)
	require.Equal(t, "self_form", result["source"])
	require.Equal(t, "NEW", result["status"])
}

func TestRecordCheckin_SchedulesFollowup(t *testing.T) {
	api := newTestAPI(t)
	personID := api.createPerson(t, "convert")

	rec := api.do(t, http.MethodPost, "/api/v1/people/"+personID+"/checkins", map[string]any{
		"outcome":      "CONNECTED",
		"notes":        "met after service",
		"followupDate": "2025-03-01",
		"followupTime": "19:30",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	result := decodeResult(t, rec)
	person := result["person"].(map[string]any)
	require.Equal(t, "SCHEDULED", person["status"])
	require.Equal(t, "2025-03-01", person["nextFollowupDate"])

	checkin := result["checkin"].(map[string]any)
	require.Equal(t, true, checkin["pending"])
}

func TestRecordCheckin_InvalidOutcomeIs400(t *testing.T) {
	api := newTestAPI(t)
	personID := api.createPerson(t, "member")

	rec := api.do(t, http.MethodPost, "/api/v1/people/"+personID+"/checkins", map[string]any{
		"outcome": "NEEDS_PRAYER",
	}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteCheckin(t *testing.T) {
	api := newTestAPI(t)
	personID := api.createPerson(t, "convert")

	rec := api.do(t, http.MethodPost, "/api/v1/people/"+personID+"/checkins", map[string]any{
		"outcome":      "NEEDS_FOLLOWUP",
		"followupDate": "2025-03-01",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	checkinID := decodeResult(t, rec)["checkin"].(map[string]any)["checkinId"].(string)

	rec = api.do(t, http.MethodPatch, "/api/v1/checkins/"+checkinID+"/complete", map[string]any{
		"outcome": "CONNECTED",
		"notes":   "video call went well",
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	person := decodeResult(t, rec)["person"].(map[string]any)
	require.Equal(t, "CONNECTED", person["status"])
	require.Equal(t, "COMPLETED", person["statusDisplay"])
	_, hasFollowup := person["nextFollowupDate"]
	require.False(t, hasFollowup)
}

func TestDashboardStats(t *testing.T) {
	api := newTestAPI(t)
	personID := api.createPerson(t, "convert")

	rec := api.do(t, http.MethodGet, "/api/v1/dashboard/stats", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	require.Equal(t, float64(1), result["total"])
	require.Equal(t, float64(1), result["new"])

	// Status change invalidates the cache through the listener chain.
	recCheckin := api.do(t, http.MethodPost, "/api/v1/people/"+personID+"/checkins", map[string]any{
		"outcome": "CONNECTED",
	}, true)
	require.Equal(t, http.StatusCreated, recCheckin.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/dashboard/stats", nil, true)
	result = decodeResult(t, rec)
	require.Equal(t, float64(0), result["new"])
	require.Equal(t, float64(1), result["completed"])
}

func TestExportEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.createPerson(t, "convert")

	rec := api.do(t, http.MethodGet, "/api/v1/people/export", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"),
	)
	require.NotEmpty(t, rec.Body.Bytes())
}

func TestOutcomesEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/outcomes?kind=convert", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	require.Len(t, result["outcomes"].([]any), 6)

	rec = api.do(t, http.MethodGet, "/api/v1/outcomes?kind=visitor", nil, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
