package http

import (
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMetricsMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/metrics-probe/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := MetricsMiddleware(mux)

	matched := httpRequestsTotal.WithLabelValues(http.MethodGet, "GET /api/metrics-probe/{id}", "418")
	unmatched := httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	matchedBefore := testutil.ToFloat64(matched)
	unmatchedBefore := testutil.ToFloat64(unmatched)

	for _, target := range []string{"/api/metrics-probe/1", "/api/metrics-probe/2", "/nowhere"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	}

	assert.Equal(t, matchedBefore+2, testutil.ToFloat64(matched))
	assert.Equal(t, unmatchedBefore+1, testutil.ToFloat64(unmatched))
	assert.Equal(t, float64(0), testutil.ToFloat64(httpRequestsInFlight))
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	w := httptest.NewRecorder()
	rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

	_, _ = rw.Write([]byte("ok"))
	assert.Equal(t, http.StatusOK, rw.statusCode)

	rw.WriteHeader(http.StatusAccepted)
	assert.Equal(t, http.StatusAccepted, rw.statusCode)
}
