package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordGateDecision(t *testing.T) {
	before := testutil.ToFloat64(gateDecisionsTotal.WithLabelValues("redirect", "blocked"))
	RecordGateDecision("redirect", "blocked")
	after := testutil.ToFloat64(gateDecisionsTotal.WithLabelValues("redirect", "blocked"))

	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}

func TestRecordAuthEventAndAdminAction(t *testing.T) {
	before := testutil.ToFloat64(authEventsTotal.WithLabelValues(EventLogin))
	RecordAuthEvent(EventLogin)
	if got := testutil.ToFloat64(authEventsTotal.WithLabelValues(EventLogin)) - before; got != 1 {
		t.Errorf("auth counter delta = %v, want 1", got)
	}

	before = testutil.ToFloat64(adminActionsTotal.WithLabelValues(ActionApprove))
	RecordAdminAction(ActionApprove)
	if got := testutil.ToFloat64(adminActionsTotal.WithLabelValues(ActionApprove)) - before; got != 1 {
		t.Errorf("admin counter delta = %v, want 1", got)
	}
}

func TestHandlerServesCounters(t *testing.T) {
	RecordGateDecision("pass", "none")

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "jobconnect_gate_decisions_total") {
		t.Error("metrics output missing jobconnect_gate_decisions_total")
	}
}
