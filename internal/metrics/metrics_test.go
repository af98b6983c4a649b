package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveUpstream_Outcomes(t *testing.T) {
	m := New()
	m.ObserveUpstream("search", nil, 10*time.Millisecond)
	m.ObserveUpstream("search", errors.New("boom"), 5*time.Millisecond)
	m.ObserveUpstream("details", nil, time.Millisecond)

	if got := testutil.ToFloat64(m.upstreamTotal.WithLabelValues("search", "success")); got != 1 {
		t.Errorf("search/success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.upstreamTotal.WithLabelValues("search", "error")); got != 1 {
		t.Errorf("search/error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.upstreamTotal.WithLabelValues("details", "success")); got != 1 {
		t.Errorf("details/success = %v, want 1", got)
	}
}

func TestSessions_Gauge(t *testing.T) {
	m := New()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	if got := testutil.ToFloat64(m.liveSessions); got != 1 {
		t.Errorf("live sessions = %v, want 1", got)
	}
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/api", "200", time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if !strings.Contains(w.Body.String(), `recipefinder_http_requests_total{method="GET",route="/api",status_code="200"} 1`) {
		t.Errorf("exposition missing request counter:\n%s", w.Body.String())
	}
}

func TestNew_Independent(t *testing.T) {
	// Two instances must not panic on duplicate registration.
	New()
	New()
}
