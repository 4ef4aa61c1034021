package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewSettlementMetrics_NilRegisterer(t *testing.T) {
	m := NewSettlementMetrics(nil)
	if m == nil {
		t.Fatal("expected metrics instance")
	}
	// No-op recorder must be safe to call.
	m.ObserveDuration("order", time.Second)
	m.IncSettled("order")
	m.IncRefunded("order")
	m.IncFailure("order")
	m.IncNoop("order")
}

func TestNewSettlementMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSettlementMetrics(reg)

	m.IncSettled("labour_booking")
	m.IncNoop("")
	m.ObserveDuration("order", 250*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{"settlement_completed_total", "settlement_noop_total", "settlement_duration_seconds"} {
		if !names[want] {
			t.Fatalf("expected metric family %s, got %v", want, names)
		}
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *SettlementMetrics
	m.IncSettled("order")
	m.IncFailure("order")
	m.ObserveDuration("order", time.Second)
}
