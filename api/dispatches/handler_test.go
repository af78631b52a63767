package dispatches

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dispatchrec/core/dispatch"
	"github.com/kilianp07/dispatchrec/core/metrics"
	"github.com/kilianp07/dispatchrec/core/responsetime"
)

type sampleSink struct {
	metrics.NopSink
	samples []metrics.ResponseTimeEvent
}

func (s *sampleSink) RecordResponseTime(ev metrics.ResponseTimeEvent) error {
	s.samples = append(s.samples, ev)
	return nil
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestRouter_Lifecycle(t *testing.T) {
	h := NewRouter(Options{})

	rr := do(t, h, http.MethodPost, "/api/dispatches", `{"id":101,"description":"Robbery in progress"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeBody[dispatch.RecordView](t, rr)
	assert.Equal(t, dispatch.ID(101), created.ID)
	assert.Empty(t, created.ResponseTimes)

	rr = do(t, h, http.MethodGet, "/api/dispatches/101", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Robbery in progress", decodeBody[dispatch.RecordView](t, rr).Description)

	rr = do(t, h, http.MethodPut, "/api/dispatches/101", `{"description":"Resolved"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Resolved", decodeBody[dispatch.RecordView](t, rr).Description)

	rr = do(t, h, http.MethodDelete, "/api/dispatches/101", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/dispatches/101", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_Errors(t *testing.T) {
	h := NewRouter(Options{})
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/dispatches", `{"id":1,"description":"a"}`).Code)

	cases := []struct {
		name, method, path, body string
		want                     int
	}{
		{"duplicate", http.MethodPost, "/api/dispatches", `{"id":1,"description":"b"}`, http.StatusConflict},
		{"missing id", http.MethodPost, "/api/dispatches", `{"description":"b"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/dispatches", `{`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/dispatches", `{"id":2,"desc":"b"}`, http.StatusBadRequest},
		{"bad path id", http.MethodGet, "/api/dispatches/abc", "", http.StatusBadRequest},
		{"update missing", http.MethodPut, "/api/dispatches/9", `{"description":"x"}`, http.StatusNotFound},
		{"delete missing", http.MethodDelete, "/api/dispatches/9", "", http.StatusNotFound},
		{"sample missing dispatch", http.MethodPost, "/api/dispatches/9/response-times", `{"value":1}`, http.StatusNotFound},
		{"sample without value", http.MethodPost, "/api/dispatches/1/response-times", `{}`, http.StatusBadRequest},
		{"average missing", http.MethodGet, "/api/dispatches/9/response-times/average", "", http.StatusNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := do(t, h, c.method, c.path, c.body)
			assert.Equal(t, c.want, rr.Code, rr.Body.String())
			assert.NotEmpty(t, decodeBody[map[string]string](t, rr)["error"])
		})
	}

	rr := do(t, h, http.MethodGet, "/api/dispatches/1", "")
	assert.Equal(t, "a", decodeBody[dispatch.RecordView](t, rr).Description, "duplicate create left record unchanged")
}

func TestRouter_DispatchResponseTimes(t *testing.T) {
	h := NewRouter(Options{})
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/dispatches", `{"id":5,"description":"Noise"}`).Code)

	rr := do(t, h, http.MethodGet, "/api/dispatches/5/response-times/average", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, AverageResponse{Average: 0, Count: 0}, decodeBody[AverageResponse](t, rr))

	for _, v := range []string{"300", "450"} {
		require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/dispatches/5/response-times", `{"value":`+v+`}`).Code)
	}
	rr = do(t, h, http.MethodGet, "/api/dispatches/5/response-times/average", "")
	assert.Equal(t, AverageResponse{Average: 375, Count: 2}, decodeBody[AverageResponse](t, rr))

	rr = do(t, h, http.MethodGet, "/api/dispatches", "")
	list := decodeBody[[]dispatch.RecordView](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, []float64{300, 450}, list[0].ResponseTimes)
}

func TestRouter_Tracker(t *testing.T) {
	sink := &sampleSink{}
	tracker := responsetime.NewTracker()
	h := NewRouter(Options{Tracker: tracker, Metrics: sink})

	rr := do(t, h, http.MethodGet, "/api/response-times/average", "")
	assert.Equal(t, AverageResponse{}, decodeBody[AverageResponse](t, rr))

	do(t, h, http.MethodPost, "/api/response-times", `{"value":300}`)
	rr = do(t, h, http.MethodPost, "/api/response-times", `{"value":450}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, AverageResponse{Average: 375, Count: 2}, decodeBody[AverageResponse](t, rr))
	assert.Equal(t, 375.0, tracker.AverageResponseTime())

	require.Len(t, sink.samples, 2)
	assert.Equal(t, metrics.ScopeTracker, sink.samples[0].Scope)
}

func TestRouter_BearerAuth(t *testing.T) {
	metricsHit := false
	h := NewRouter(Options{
		Token: "tok",
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metricsHit = true
		}),
	})

	rr := do(t, h, http.MethodGet, "/api/dispatches", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/dispatches", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, metricsHit, "/metrics is not behind the token")
}

func TestRouter_LargeResponseTimes(t *testing.T) {
	h := NewRouter(Options{})
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/dispatches", `{"id":1,"description":"a"}`).Code)

	for i := 0; i < 2; i++ {
		rr := do(t, h, http.MethodPost, "/api/dispatches/1/response-times", `{"value":1e308}`)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, 1e308, decodeBody[dispatch.RecordView](t, rr).AverageResponseTime)
	}

	rr := do(t, h, http.MethodGet, "/api/dispatches/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[dispatch.RecordView](t, rr).ResponseTimes, 2)

	rr = do(t, h, http.MethodGet, "/api/dispatches", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]dispatch.RecordView](t, rr), 1)

	rr = do(t, h, http.MethodGet, "/api/dispatches/1/response-times/average", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, AverageResponse{Average: 1e308, Count: 2}, decodeBody[AverageResponse](t, rr))
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusOK, AverageResponse{Average: math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	body := decodeBody[map[string]string](t, rr)
	assert.Contains(t, body["error"], "encode response")
}
