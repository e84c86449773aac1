package webserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/config"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/db"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/log"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/models"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/store"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/utils"
)

const scenarioPrefs = `{"startDate":"2024-04-01","endDate":"2024-04-03","adults":2,"children":0,"infants":0,
	"activities":["temples"],"budgetRange":"mid-range","tripPace":"moderate","accessibilityNeeds":[]}`

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
	Meta    json.RawMessage   `json:"meta"`
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:        "localhost",
			Port:        3001,
			Mode:        "test",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Security: config.SecurityConfig{
			SessionSecret:     "test-session-secret",
			SessionCookieName: "trip_planner_session",
			SessionMaxAge:     3600,
			DemoUserID:        store.DemoUserID,
		},
		Planner: config.PlannerConfig{HistoryDepth: 10},
	}
}

func newORMBackend(t *testing.T) store.Backend {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := db.New(&config.DatabaseConfig{
		Driver:       "sqlite",
		URL:          "file:" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, log.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate())
	require.NoError(t, database.SeedInitialData(planner.DefaultCatalog(), store.DemoUserID))

	repo := db.NewRepository(database, log.NewNop())
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// client sends requests to the server and keeps the session cookie
type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
	userID  string
}

func newClient(t *testing.T, cfg *config.Config, backend store.Backend) (*client, *Server) {
	t.Helper()
	srv, err := New(cfg, backend, nil, log.NewNop())
	require.NoError(t, err)
	return &client{t: t, handler: srv.Handler()}, srv
}

func (cl *client) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	cl.t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.userID != "" {
		req.Header.Set(userIDHeader, cl.userID)
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	cl.handler.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		cl.cookies = cookies
	}

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(cl.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	cl, _ := newClient(t, testConfig(), newORMBackend(t))

	rec, env := cl.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, config.BackendORM, data["backend_mode"])
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestTripLifecycle(t *testing.T) {
	cl, _ := newClient(t, testConfig(), newORMBackend(t))

	rec, env := cl.do(http.MethodPost, "/api/trips", `{"preferences":`+scenarioPrefs+`}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	trip := decode[models.Trip](t, env.Data)
	assert.Equal(t, "Japan Trip 2024", trip.Title)
	assert.Equal(t, store.DemoUserID, trip.UserID)
	assert.Equal(t, models.TripStatusDraft, trip.Status)

	rec, env = cl.do(http.MethodGet, "/api/trips", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Trip](t, env.Data), 1)

	rec, env = cl.do(http.MethodPut, "/api/trips/"+trip.ID, `{"title":"Temples of Kyoto","status":"published"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Trip](t, env.Data)
	assert.Equal(t, "Temples of Kyoto", updated.Title)
	assert.Equal(t, models.TripStatusPublished, updated.Status)

	rec, env = cl.do(http.MethodPut, "/api/trips/"+trip.ID, `{"status":"deleted"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Details, "status")

	rec, env = cl.do(http.MethodPut, "/api/trips/"+trip.ID, `{"end_date":"2024-03-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Details, "end_date")

	rec, env = cl.do(http.MethodGet, "/api/trips/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[store.TripStats](t, env.Data)
	assert.Equal(t, 1, stats.TotalTrips)
	assert.Equal(t, 3, stats.TotalTravelDays)
	assert.Equal(t, 1, stats.StatusBreakdown["published"])

	rec, _ = cl.do(http.MethodDelete, "/api/trips/"+trip.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = cl.do(http.MethodGet, "/api/trips/"+trip.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Trip not found", env.Error)
}

func TestCreateTripValidation(t *testing.T) {
	cl, _ := newClient(t, testConfig(), newORMBackend(t))

	rec, env := cl.do(http.MethodPost, "/api/trips", `{"preferences":{"startDate":"2024-04-03","endDate":"2024-04-01","adults":0,"activities":[]}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Details, "adults")
	assert.Contains(t, env.Details, "endDate")
	assert.Contains(t, env.Details, "activities")

	rec, env = cl.do(http.MethodPost, "/api/trips", `{"preferences":{"startDate":"soon"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Details, "startDate")

	rec, env = cl.do(http.MethodPost, "/api/trips", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request data", env.Error)
}

func TestTripsAreScopedToUser(t *testing.T) {
	cfg := testConfig()
	backend := newORMBackend(t)
	alice, _ := newClient(t, cfg, backend)
	alice.userID = "alice"
	bob, _ := newClient(t, cfg, backend)
	bob.userID = "bob"

	rec, env := alice.do(http.MethodPost, "/api/trips", `{"title":"Alice in Tokyo","preferences":`+scenarioPrefs+`}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	trip := decode[models.Trip](t, env.Data)
	assert.Equal(t, "alice", trip.UserID)

	rec, _ = bob.do(http.MethodGet, "/api/trips/"+trip.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = bob.do(http.MethodDelete, "/api/trips/"+trip.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, env = bob.do(http.MethodGet, "/api/trips", "")
	assert.Empty(t, decode[[]models.Trip](t, env.Data))

	bob.userID = "bob smith!"
	rec, _ = bob.do(http.MethodGet, "/api/trips", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateItinerary(t *testing.T) {
	cl, _ := newClient(t, testConfig(), newORMBackend(t))

	rec, env := cl.do(http.MethodPost, "/api/trips/generate", `{"preferences":`+scenarioPrefs+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	it := decode[planner.ItineraryData](t, env.Data)
	assert.NotEmpty(t, it.ID)
	assert.Equal(t, 2, it.TripDuration)
	require.Len(t, it.Days, 2)
	assert.Equal(t, "temple-1", it.Days[0].Activities[0].ID)
	assert.Equal(t, "temple-2", it.Days[1].Activities[0].ID)
	assert.Equal(t, float64(800), it.TotalEstimatedCost)

	rec, _ = cl.do(http.MethodPost, "/api/trips/generate", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItineraryEditing(t *testing.T) {
	cl, _ := newClient(t, testConfig(), newORMBackend(t))

	rec, env := cl.do(http.MethodPost, "/api/itineraries", `{"preferences":`+scenarioPrefs+`}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	opened := decode[ItineraryResponse](t, env.Data)
	assert.False(t, opened.CanUndo)
	id := opened.Itinerary.ID
	base := "/api/itineraries/" + id

	rec, env = cl.do(http.MethodPost, base+"/days/1/activities", `{"activity_id":"food-1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	added := decode[ItineraryResponse](t, env.Data)
	assert.True(t, added.CanUndo)
	assert.Equal(t, float64(800+3500*2), added.Itinerary.TotalEstimatedCost)

	rec, _ = cl.do(http.MethodPost, base+"/days/2/activities", `{"activity_id":"food-1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec, _ = cl.do(http.MethodPost, base+"/days/9/activities", `{"activity_id":"food-2"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = cl.do(http.MethodPost, base+"/days/1/activities", `{"activity_id":"karaoke-1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = cl.do(http.MethodPost, base+"/days/one/activities", `{"activity_id":"food-2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = cl.do(http.MethodPut, base+"/days/1/order", `{"from_index":0,"to_index":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = cl.do(http.MethodPut, base+"/days/1/order", `{"from_index":1,"to_index":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	reordered := decode[ItineraryResponse](t, env.Data)
	assert.Equal(t, "food-1", reordered.Itinerary.Days[0].Activities[0].ID)

	rec, env = cl.do(http.MethodPost, base+"/move", `{"activity_id":"food-1","from_day":1,"to_day":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	moved := decode[ItineraryResponse](t, env.Data)
	require.Len(t, moved.Itinerary.Days[1].Activities, 2)
	assert.Equal(t, "food-1", moved.Itinerary.Days[1].Activities[1].ID)

	rec, env = cl.do(http.MethodPost, base+"/undo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	undone := decode[ItineraryResponse](t, env.Data)
	assert.Equal(t, "food-1", undone.Itinerary.Days[0].Activities[0].ID)
	assert.Len(t, undone.Itinerary.Days[1].Activities, 1)

	rec, env = cl.do(http.MethodDelete, base+"/days/1/activities/food-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	removed := decode[ItineraryResponse](t, env.Data)
	assert.Equal(t, float64(800), removed.Itinerary.TotalEstimatedCost)

	rec, env = cl.do(http.MethodGet, base+"/timeline", "")
	require.Equal(t, http.StatusOK, rec.Code)
	timeline := decode[[]planner.DayTimeline](t, env.Data)
	require.Len(t, timeline, 2)
	assert.Equal(t, "9:00 AM", timeline[0].Slots[0].StartTime)

	rec, env = cl.do(http.MethodGet, base+"/map", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[planner.MapView](t, env.Data).Pins, 2)

	rec, _ = cl.do(http.MethodDelete, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec, env = cl.do(http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, planner.ErrItineraryNotFound.Error(), env.Error)
}

func TestPlanningSession(t *testing.T) {
	cl, _ := newClient(t, testConfig(), newORMBackend(t))

	rec, env := cl.do(http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, planner.ViewPreferences, decode[planner.PlanningState](t, env.Data).CurrentView)

	// Drafts with errors are kept together with their field errors
	rec, env = cl.do(http.MethodPut, "/api/session/preferences", `{"startDate":"2024-04-01","endDate":"2024-04-03","adults":0,"activities":["temples"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[planner.PlanningState](t, env.Data).FormErrors, "adults")

	rec, env = cl.do(http.MethodPut, "/api/session/preferences", `{"startDate":"2024-13-45","endDate":"2024-04-03","adults":1,"activities":["temples"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", env.Error)
	assert.Contains(t, env.Details, "startDate")
	assert.NotContains(t, env.Details, "endDate")

	rec, env = cl.do(http.MethodPut, "/api/session/preferences", scenarioPrefs)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[planner.PlanningState](t, env.Data).FormErrors)

	rec, _ = cl.do(http.MethodPut, "/api/session/view", `{"view":"calendar"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, env = cl.do(http.MethodPut, "/api/session/view", `{"view":"gallery"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, planner.ViewGallery, decode[planner.PlanningState](t, env.Data).CurrentView)

	rec, _ = cl.do(http.MethodPost, "/api/session/bookmarks/temple-2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = cl.do(http.MethodPost, "/api/session/bookmarks/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Without a body the itinerary is generated from the session draft
	rec, env = cl.do(http.MethodPost, "/api/itineraries", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode[ItineraryResponse](t, env.Data).Itinerary.ID

	rec, env = cl.do(http.MethodGet, "/api/itineraries/"+id+"/gallery", "")
	require.Equal(t, http.StatusOK, rec.Code)
	gallery := decode[[]planner.GalleryItem](t, env.Data)
	require.Len(t, gallery, 2)
	assert.False(t, gallery[0].IsBookmarked)
	assert.True(t, gallery[1].IsBookmarked)

	rec, env = cl.do(http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[planner.PlanningState](t, env.Data)
	assert.Equal(t, []string{"temple-2"}, state.Bookmarks)
	require.NotNil(t, state.Preferences)
	assert.Equal(t, 2, state.Preferences.Adults)

	rec, env = cl.do(http.MethodDelete, "/api/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[planner.PlanningState](t, env.Data).Bookmarks)
}

func TestAttractions(t *testing.T) {
	cl, _ := newClient(t, testConfig(), newORMBackend(t))

	rec, env := cl.do(http.MethodGet, "/api/attractions?categories=temples,food&prefecture=Kyoto", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.Attraction](t, env.Data)
	require.Len(t, list, 2)
	assert.Equal(t, "temple-2", list[0].ID)
	assert.Equal(t, "food-2", list[1].ID)

	rec, env = cl.do(http.MethodGet, "/api/attractions?limit=3&page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Attraction](t, env.Data), 3)
	meta := decode[utils.PageMeta](t, env.Meta)
	assert.Equal(t, 10, meta.TotalCount)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	_, env = cl.do(http.MethodGet, "/api/attractions?limit=3&page=4", "")
	assert.Len(t, decode[[]models.Attraction](t, env.Data), 1)
	assert.False(t, decode[utils.PageMeta](t, env.Meta).HasNext)

	rec, _ = cl.do(http.MethodGet, "/api/attractions?categories=karaoke", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = cl.do(http.MethodGet, "/api/attractions/search?q=bamboo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[[]models.Attraction](t, env.Data)
	require.Len(t, found, 1)
	assert.Equal(t, "nature-1", found[0].ID)

	rec, _ = cl.do(http.MethodGet, "/api/attractions/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = cl.do(http.MethodGet, "/api/attractions/search?q=temple&limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = cl.do(http.MethodGet, "/api/attractions/food-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tsukiji Outer Market Food Tour", decode[models.Attraction](t, env.Data).Name)

	rec, _ = cl.do(http.MethodGet, "/api/attractions/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = cl.do(http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	catalog := decode[map[string][]planner.Activity](t, env.Data)
	assert.Len(t, catalog["temples"], 2)
}

func TestSaveItineraryIntoTrip(t *testing.T) {
	cl, _ := newClient(t, testConfig(), newORMBackend(t))

	_, env := cl.do(http.MethodPost, "/api/trips", `{"preferences":`+scenarioPrefs+`}`)
	trip := decode[models.Trip](t, env.Data)
	_, env = cl.do(http.MethodPost, "/api/itineraries", `{"preferences":`+scenarioPrefs+`}`)
	id := decode[ItineraryResponse](t, env.Data).Itinerary.ID

	rec, _ := cl.do(http.MethodPut, "/api/trips/"+trip.ID+"/itinerary", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = cl.do(http.MethodPut, "/api/trips/"+trip.ID+"/itinerary", `{"itinerary_id":"unknown"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = cl.do(http.MethodPut, "/api/trips/"+trip.ID+"/itinerary", `{"itinerary_id":"`+id+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = cl.do(http.MethodGet, "/api/trips/"+trip.ID+"/activities", "")
	require.Equal(t, http.StatusOK, rec.Code)
	activities := decode[[]models.TripActivity](t, env.Data)
	require.Len(t, activities, 2)
	assert.Equal(t, "temple-1", activities[0].AttractionID)
	assert.Equal(t, "9:00 AM", activities[0].StartTime)
}

func TestCurrentUser(t *testing.T) {
	cl, _ := newClient(t, testConfig(), newORMBackend(t))

	rec, env := cl.do(http.MethodGet, "/api/users/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Demo User", decode[models.User](t, env.Data).FullName)

	cl.userID = "kenji"
	rec, env = cl.do(http.MethodPut, "/api/users/me", `{"full_name":"Kenji","preferences":{"currency":"JPY"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decode[models.User](t, env.Data)
	assert.Equal(t, "kenji", user.ID)
	assert.Equal(t, "Kenji", user.FullName)
	assert.Equal(t, "JPY", user.Preferences["currency"])

	rec, env = cl.do(http.MethodPut, "/api/users/me", `{"avatar_url":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Details, "avatar_url")
}

// failingBackend answers every trip call with an internal error
type failingBackend struct {
	store.Backend
}

type failingTrips struct {
	store.TripStore
}

func (failingBackend) Trips() store.TripStore { return failingTrips{} }
func (failingBackend) Mode() string           { return "failing" }
func (failingBackend) HealthCheck(context.Context) error {
	return errors.New("connection refused")
}

func (failingTrips) GetUserTrips(context.Context, string) ([]models.Trip, error) {
	return nil, errors.New("pq: relation \"trips\" does not exist")
}

func TestBackendFailures(t *testing.T) {
	cl, _ := newClient(t, testConfig(), failingBackend{})

	rec, env := cl.do(http.MethodGet, "/api/trips", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to get trips", env.Error)
	assert.NotContains(t, rec.Body.String(), "relation")

	rec, env = cl.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", decode[map[string]interface{}](t, env.Data)["status"])
}

func TestGenerationDelayHonoursCancellation(t *testing.T) {
	cfg := testConfig()
	cfg.Planner.GenerationDelayMS = 60_000
	_, srv := newClient(t, cfg, newORMBackend(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, srv.generationDelay(ctx), context.Canceled)

	req := httptest.NewRequest(http.MethodPost, "/api/trips/generate", strings.NewReader(`{"preferences":`+scenarioPrefs+`}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitEnabled = true
	cfg.Security.RateLimitPerMinute = 1
	cfg.Security.RateLimitBurstSize = 2
	cl, _ := newClient(t, cfg, newORMBackend(t))

	codes := []int{}
	for i := 0; i < 3; i++ {
		rec, _ := cl.do(http.MethodGet, "/api/catalog", "")
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
