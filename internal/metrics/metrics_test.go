package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/items/{id}", "418"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/items/42", http.NoBody))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/items/{id}", "418")))
}

func TestMiddleware_DefaultStatusOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ok", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", http.NoBody))

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ok", "200")))
}

func TestRecordCacheLoad(t *testing.T) {
	okBefore := testutil.ToFloat64(cacheLoadsTotal.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(cacheLoadsTotal.WithLabelValues("error"))

	RecordCacheLoad(10*time.Millisecond, nil)
	RecordCacheLoad(10*time.Millisecond, errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(cacheLoadsTotal.WithLabelValues("ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(cacheLoadsTotal.WithLabelValues("error")))
}

func TestRecordQuery(t *testing.T) {
	before := testutil.ToFloat64(queriesTotal.WithLabelValues("client-stats"))
	RecordQuery("client-stats")
	assert.Equal(t, before+1, testutil.ToFloat64(queriesTotal.WithLabelValues("client-stats")))
}
