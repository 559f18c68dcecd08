package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveReportCountsOutcomes(t *testing.T) {
	r := New()

	r.ObserveReport("30d", 10*time.Millisecond, nil)
	r.ObserveReport("30d", 10*time.Millisecond, nil)
	r.ObserveReport("7d", 10*time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(r.reportsTotal.WithLabelValues("30d", "ok")); got != 2 {
		t.Fatalf("30d ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.reportsTotal.WithLabelValues("7d", "error")); got != 1 {
		t.Fatalf("7d error = %v, want 1", got)
	}
}

func TestObserveQueryCountsOnlyErrors(t *testing.T) {
	r := New()

	r.ObserveQuery("deposits.sum", time.Millisecond, nil)
	r.ObserveQuery("deposits.sum", time.Millisecond, errors.New("timeout"))

	if got := testutil.ToFloat64(r.queryErrors.WithLabelValues("deposits.sum")); got != 1 {
		t.Fatalf("query errors = %v, want 1", got)
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	r := New()
	r.ObserveHTTP("/admin/api/analytics", http.MethodGet, http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "drivefund_http_requests_total") {
		t.Fatalf("metrics output missing http counter")
	}
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{200: "2xx", 304: "3xx", 404: "4xx", 500: "5xx", 0: "5xx"}
	for code, want := range cases {
		if got := statusClass(code); got != want {
			t.Errorf("statusClass(%d) = %s, want %s", code, got, want)
		}
	}
}
