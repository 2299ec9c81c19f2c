//go:debug httpmuxgo121=0

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valley-oracle/pkg/config"
	"valley-oracle/pkg/jobs"
	"valley-oracle/pkg/predict"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.RateLimitEnabled = false
	cfg.SearchWorkers = 2
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	srv := New(cfg, logger)
	t.Cleanup(func() {
		if srv.rateLimiter != nil {
			srv.rateLimiter.Stop()
		}
	})
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.middleware(srv.muxForTest()).ServeHTTP(rec, req)
	return rec
}

// muxForTest rebuilds the route table; the production mux lives inside
// the http.Server and is not otherwise reachable.
func (s *Server) muxForTest() http.Handler {
	mux := http.NewServeMux()
	s.routes(mux)
	return mux
}

func TestHandlePredictDay(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/predict/day", map[string]interface{}{
		"seed": 12345, "day": 1, "version": "1.5",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var got predict.DayPrediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Day)
	assert.Equal(t, "Mon, Spring 1, Year 1", got.Info)
	assert.InDelta(t, 0.085, got.Luck, 1e-12)
	assert.Equal(t, int32(203), got.Dish.ID)
	assert.Nil(t, got.Cart)
}

func TestHandlePredictDay_Errors(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/predict/day", map[string]interface{}{
		"seed": 1, "day": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/predict/day", map[string]interface{}{
		"seed": 1, "day": 1, "version": "9.9",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/predict/day", map[string]interface{}{
		"seed": 1, "day": 1, "bogus_field": true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown fields are rejected")
}

func TestHandlePredictCart_CartDaysOnly(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/predict/cart", map[string]interface{}{
		"seed": 12345, "day_lo": 5, "day_hi": 7, "version": "1.6",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var carts []predict.DayCart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &carts))
	require.Len(t, carts, 2)
	assert.Equal(t, 5, carts[0].Day)
	assert.Equal(t, 7, carts[1].Day)
	for _, dc := range carts {
		assert.Len(t, dc.Items, 10)
	}
}

func TestHandlePredictGeodes(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/predict/geodes", map[string]interface{}{
		"seed": 12345, "start": 1, "count": 5, "geode_type": "omni", "version": "1.6",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/predict/geodes", map[string]interface{}{
		"seed": 12345, "start": 0, "count": 5, "geode_type": "omni",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/predict/geodes", map[string]interface{}{
		"seed": 12345, "start": 1, "count": 5, "geode_type": "lava",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMonsterFloors(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/mines/monster-floors", map[string]interface{}{
		"seed": 12345, "day": 5, "floor_lo": 1, "floor_hi": 120, "version": "1.6",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var floors []int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &floors))
	for _, level := range floors {
		m := level % 40
		assert.True(t, m >= 6 && m <= 29 && m != 19, "level %d", level)
	}
}

func TestHandleSearch(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/search", map[string]interface{}{
		"filter": json.RawMessage(`{"logic": "and", "conditions": [
			{"logic": "condition", "type": "night_event", "day_start": 29, "day_end": 29, "event_type": "earthquake"}
		]}`),
		"seed_lo": 1, "seed_hi": 1000, "max_results": 1000, "version": "1.5",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var sum jobs.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Len(t, sum.Matches, 1000)
	assert.Equal(t, int64(1000), sum.Checked)
}

func TestHandleSearch_ParseErrorHasPath(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/search", map[string]interface{}{
		"filter":  json.RawMessage(`{"logic": "and", "conditions": [{"logic": "condition", "type": "fish"}]}`),
		"seed_lo": 1, "seed_hi": 10,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "$.conditions[0]", resp.Path)
}

func TestHandleSearch_SpanLimit(t *testing.T) {
	srv := testServer(t)
	srv.cfg.SearchMaxSpan = 100

	rec := doJSON(t, srv, http.MethodPost, "/api/search", map[string]interface{}{
		"filter":  json.RawMessage(`{"logic": "and", "conditions": []}`),
		"seed_lo": 1, "seed_hi": 1000,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.middleware(srv.muxForTest()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.middleware(srv.muxForTest()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
