package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInstrumentRoute(t *testing.T) {
	handler := InstrumentRoute(http.MethodGet, "/v1/sales/:id", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/v1/sales/:id", "404"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sales/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/v1/sales/:id", "404")))
}

func TestRecordSale(t *testing.T) {
	before := testutil.ToFloat64(salesRevenue)

	RecordSale("COMPLETED", 99.9)

	assert.InDelta(t, before+99.9, testutil.ToFloat64(salesRevenue), 0.0001)
}
