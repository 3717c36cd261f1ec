package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spots-server/config"
	"spots-server/dao/redis"
	"spots-server/dao/tables"
	"spots-server/db"
	"spots-server/metrics"
	"spots-server/queue"
	"spots-server/server/handlers"
	services "spots-server/service"
)

// 2026-10-19 09:00 is a Monday morning.
var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// buildRouter wires real handlers over seeded in-memory stores without
// registering routes.
func buildRouter(t *testing.T) (*Router, *mux.Router, *db.MockTableClient) {
	t.Helper()

	tableClient := db.NewMockTableClient()
	tableClient.Seed(tables.STUDY_SPOTS_TABLE,
		db.Row{"id": "1", "name": "Koerner Library", "description": "Silent floors", "noise": 1, "wifi": 5, "seating": 4, "rating": 4.6},
		db.Row{"id": "2", "name": "Loafe Cafe", "description": "Coffee", "noise": 3, "wifi": 3, "seating": 2, "rating": 4.1},
	)
	tableClient.Seed(tables.SPOT_CATEGORIES_TABLE,
		db.Row{"spot_id": "1", "category_id": "library"},
		db.Row{"spot_id": "2", "category_id": "cafe"},
	)
	tableClient.Seed(tables.SPOT_OPENING_HOURS_TABLE,
		db.Row{"spot_id": "1", "monday_open": "08:00:00", "monday_close": "22:00:00"},
	)
	tableClient.Seed(tables.CATEGORIES_TABLE,
		db.Row{"id": "library", "name": "Library", "icon": "Book", "color": "#2563eb"},
		db.Row{"id": "cafe", "name": "Cafe", "icon": "Coffee", "color": "#d97706"},
	)
	tableClient.Seed(tables.AMENITIES_TABLE, db.Row{"id": "wifi", "name": "Wi-Fi", "icon": "Wifi"})
	tableClient.Seed(tables.REVIEWS_TABLE,
		db.Row{"reviews_id": "r1", "spot_id": "1", "date": "2026-10-01", "time": "10:00:00", "rating": 4, "helpful": 0},
	)

	m := metrics.NewMetrics(prometheus.NewRegistry())
	clock := func() time.Time { return testNow }
	spotService := services.NewSpotService(tables.NewSpotDAO(tableClient), m, clock)
	reviewService := services.NewReviewService(
		tables.NewReviewDAO(tableClient),
		redis.NewRedisVoteDAO(db.NewMockRedisClient()),
		queue.NoopReviewPublisher{},
		m,
		config.ReviewsConfig{AuthorName: "Jake Fung"},
		clock,
	)

	muxRouter := mux.NewRouter()
	appRouter := NewRouter(
		handlers.NewSpotHandler(spotService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewMapHandler(spotService, config.MapConfig{
			Provider: "mapbox", APIKey: "pk.test", Style: "mapbox://styles/mapbox/streets-v11",
			CenterLat: 49.2606, CenterLng: -123.246, Zoom: 14,
		}),
		m,
		muxRouter,
	)
	return appRouter, muxRouter, tableClient
}

func newTestRouter(t *testing.T) (*mux.Router, *db.MockTableClient) {
	t.Helper()
	appRouter, muxRouter, tableClient := buildRouter(t)
	appRouter.RegisterRoutes()
	return muxRouter, tableClient
}

func TestRouter_RegisterRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		session    string
		statusCode int
		contains   string
	}{
		{"Ping Route", "GET", "/ping", "", "", http.StatusOK, `"pong"`},
		{"Categories", "GET", "/v1/categories", "", "", http.StatusOK, `"icon":"Book"`},
		{"Amenities", "GET", "/v1/amenities", "", "", http.StatusOK, `"id":"wifi"`},
		{"All Spots", "GET", "/v1/spots", "", "", http.StatusOK, `"Loafe Cafe"`},
		{"Filtered Spots", "GET", "/v1/spots?noise=2", "", "", http.StatusOK, `"Koerner Library"`},
		{"Bad Filter", "GET", "/v1/spots?wifi=9", "", "", http.StatusBadRequest, `"error"`},
		{"Spots Map", "GET", "/v1/spots/map", "", "", http.StatusOK, "Koerner Library"},
		{"Single Spot", "GET", "/v1/spots/2", "", "", http.StatusOK, `"name":"Loafe Cafe"`},
		{"Missing Spot", "GET", "/v1/spots/99", "", "", http.StatusNotFound, `"error"`},
		{"Spot Status", "GET", "/v1/spots/1/status", "", "", http.StatusOK, `"today":"8 AM - 10 PM"`},
		{"Reviews", "GET", "/v1/spots/1/reviews", "", "", http.StatusOK, `"id":"r1"`},
		{"Submit Review", "POST", "/v1/spots/2/reviews",
			`{"ratings":{"overall":5,"comfort":4,"noise":3,"amenities":4},"comment":"Good coffee"}`,
			"", http.StatusCreated, `"spot_id":"2"`},
		{"Submit Review Missing Rating", "POST", "/v1/spots/2/reviews",
			`{"ratings":{"overall":0,"comfort":4,"noise":3,"amenities":4},"comment":"Good coffee"}`,
			"", http.StatusBadRequest, `"error":"Please provide an overall rating"`},
		{"Submit Review Bad Body", "POST", "/v1/spots/2/reviews", `{`, "", http.StatusBadRequest, `"error"`},
		{"Helpful Without Session", "POST", "/v1/reviews/r1/helpful", "", "", http.StatusBadRequest, `"error"`},
		{"Helpful Missing Review", "POST", "/v1/reviews/nope/helpful", "", "s1", http.StatusNotFound, `"error"`},
		{"Helpful Reserved Session", "POST", "/v1/reviews/r1/helpful", "", "s1:r1", http.StatusBadRequest, `"error":"invalid session id"`},
		{"Votes Glob Session", "GET", "/v1/votes", "", "*", http.StatusBadRequest, `"error":"invalid session id"`},
		{"Vote Status", "GET", "/v1/reviews/r1/helpful", "", "s1", http.StatusOK, `"voted":false`},
		{"Map Config", "GET", "/v1/map/config", "", "", http.StatusOK, `"center":[-123.246,49.2606]`},
		{"Metrics", "GET", "/metrics", "", "", http.StatusOK, "http_requests_total"},
		{"Invalid Route", "GET", "/invalid", "", "", http.StatusNotFound, ""},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			if test.session != "" {
				req.Header.Set(config.SESSION_HEADER, test.session)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, test.statusCode, rr.Code, rr.Body.String())
			if test.contains != "" {
				assert.Contains(t, rr.Body.String(), test.contains)
			}
		})
	}
}

func TestRouter_FilterNarrowsSpots(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/spots?category=cafe", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var spots []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &spots))
	require.Len(t, spots, 1)
	assert.Equal(t, "2", spots[0]["id"])

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/spots?open=true", nil))
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &spots))
	require.Len(t, spots, 1)
	assert.Equal(t, "1", spots[0]["id"])
}

func TestRouter_HelpfulVoteOncePerSession(t *testing.T) {
	router, tableClient := newTestRouter(t)

	vote := func(session string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/v1/reviews/r1/helpful", nil)
		req.Header.Set(config.SESSION_HEADER, session)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	first := vote("session-a")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, `{"review_id":"r1","helpful":1}`, first.Body.String())

	again := vote("session-a")
	assert.Equal(t, http.StatusConflict, again.Code)

	other := vote("session-b")
	assert.Equal(t, http.StatusOK, other.Code)
	assert.JSONEq(t, `{"review_id":"r1","helpful":2}`, other.Body.String())

	assert.Equal(t, 2, tableClient.Rows(tables.REVIEWS_TABLE)[0].Int("helpful"))

	req := httptest.NewRequest("GET", "/v1/votes", nil)
	req.Header.Set(config.SESSION_HEADER, "session-a")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.JSONEq(t, `{"review_ids":["r1"]}`, rr.Body.String())

	req = httptest.NewRequest("GET", "/v1/reviews/r1/helpful", nil)
	req.Header.Set(config.SESSION_HEADER, "session-b")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.JSONEq(t, `{"review_id":"r1","voted":true}`, rr.Body.String())
}

func TestRouter_StoreFailureIsGeneric(t *testing.T) {
	router, tableClient := newTestRouter(t)
	tableClient.FailOn(tables.STUDY_SPOTS_TABLE, assert.AnError)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/spots", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"`+handlers.GENERIC_ERROR_MESSAGE+`"}`, rr.Body.String())
}

func TestSpotsHttpServer_CORS(t *testing.T) {
	appRouter, muxRouter, _ := buildRouter(t)
	srv := NewSpotsHttpServer(appRouter, muxRouter, config.HTTPConfig{AllowedOrigins: []string{"https://spots.example"}})
	handler := srv.Handler()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://spots.example")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://spots.example", rr.Header().Get("Access-Control-Allow-Origin"))
}
