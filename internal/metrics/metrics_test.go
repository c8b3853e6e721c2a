package metrics

import "testing"

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func hasMetric(t *testing.T, reg *Registry, name string) bool {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return true
		}
	}
	return false
}

func TestRegistry_RecordRequest(t *testing.T) {
	reg := NewRegistry()
	reg.RecordRequest("GET", "/api/v1/series", 200, 0.05)

	if !hasMetric(t, reg, "http_requests_total") {
		t.Error("expected http_requests_total metric")
	}
}

func TestRegistry_AcquisitionMetrics(t *testing.T) {
	reg := NewRegistry()

	reg.RecordPage("fundingRate")
	reg.RecordDropped("fundingRate", 3)
	reg.RecordTermination("fundingRate", "empty_batch")
	reg.RecordFetch(1.5, 42)

	for _, name := range []string{
		"coinlens_pages_fetched_total",
		"coinlens_records_dropped_total",
		"coinlens_fetch_terminations_total",
		"coinlens_fetch_duration_seconds",
		"coinlens_records_returned",
	} {
		if !hasMetric(t, reg, name) {
			t.Errorf("expected %s metric", name)
		}
	}
}

func TestRegistry_NilSafeRecording(t *testing.T) {
	var reg *Registry

	// Must not panic
	reg.RecordPage("fundingRate")
	reg.RecordDropped("fundingRate", 1)
	reg.RecordTermination("fundingRate", "no_progress")
	reg.RecordFetch(0.1, 0)
}

func TestStatusToString(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		if got := statusToString(tt.status); got != tt.expected {
			t.Errorf("statusToString(%d) = %s, want %s", tt.status, got, tt.expected)
		}
	}
}
