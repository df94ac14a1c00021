package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/spawns/{channelID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, ch := range []string{"111", "222"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/spawns/"+ch, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/spawns/{channelID}", "418"))
	assert.Equal(t, float64(2), got)
}

func TestMiddleware_ImplicitOKAndUnmatched(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("dev"))
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/version", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/version", "200")))

	assert.Equal(t, PathUnmatched, routePattern(httptest.NewRequest(http.MethodGet, "/nowhere", nil)))
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
}
