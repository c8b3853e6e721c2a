// internal/api/handler/api/series_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coinlens/coinlens/internal/api/response"
	"github.com/coinlens/coinlens/internal/core"
	"github.com/coinlens/coinlens/internal/fetch"
)

// fakeFetcher records the query it was given and returns a canned result.
type fakeFetcher struct {
	got    *fetch.Query
	series *core.Series
	err    error
}

func (f *fakeFetcher) FetchSeries(ctx context.Context, q fetch.Query) (*core.Series, error) {
	f.got = &q
	if f.err != nil {
		return nil, f.err
	}
	return f.series, nil
}

func okSeries(q fetch.Query) *core.Series {
	return &core.Series{
		DataType:           q.DataType,
		Symbol:             q.Symbol,
		Window:             q.Window,
		Records:            []core.Record{core.Record(`{"fundingTime":1000}`)},
		RecordCount:        1,
		TotalUniqueFetched: 1,
		Termination:        core.TermEndOfRange,
	}
}

func TestSeriesHandler_Get(t *testing.T) {
	f := &fakeFetcher{series: okSeries(fetch.Query{
		DataType: core.DataTypeFundingRate,
		Symbol:   "BTCUSDT",
		Window:   core.Window{Start: 1000, End: 2000},
	})}
	h := NewSeriesHandler(f, "BTCUSDT")

	req := httptest.NewRequest("GET", "/api/v1/series?dataType=fundingRate&startTime=1000&endTime=2000", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if f.got == nil {
		t.Fatal("fetcher not called")
	}
	if f.got.DataType != core.DataTypeFundingRate {
		t.Errorf("unexpected data type %s", f.got.DataType)
	}
	if f.got.Symbol != "BTCUSDT" {
		t.Errorf("expected default symbol, got %s", f.got.Symbol)
	}
	if f.got.Window.Start != 1000 || f.got.Window.End != 2000 {
		t.Errorf("unexpected window %+v", f.got.Window)
	}

	var p response.Payload
	json.Unmarshal(w.Body.Bytes(), &p)
	if !p.Success {
		t.Error("expected success")
	}
	if p.Meta == nil || p.Meta.RecordCount != 1 {
		t.Errorf("unexpected meta: %+v", p.Meta)
	}
}

func TestSeriesHandler_SymbolOverride(t *testing.T) {
	f := &fakeFetcher{series: okSeries(fetch.Query{})}
	h := NewSeriesHandler(f, "BTCUSDT")

	req := httptest.NewRequest("GET", "/api/v1/series?dataType=openInterest&startTime=1&endTime=2&symbol=ETHUSDT", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	if f.got.Symbol != "ETHUSDT" {
		t.Errorf("expected symbol override, got %s", f.got.Symbol)
	}
}

func TestSeriesHandler_Validation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing dataType", "startTime=1&endTime=2"},
		{"missing startTime", "dataType=fundingRate&endTime=2"},
		{"missing endTime", "dataType=fundingRate&startTime=1"},
		{"unknown dataType", "dataType=klines&startTime=1&endTime=2"},
		{"non-numeric startTime", "dataType=fundingRate&startTime=abc&endTime=2"},
		{"non-numeric endTime", "dataType=fundingRate&startTime=1&endTime=xyz"},
		{"start equals end", "dataType=fundingRate&startTime=5&endTime=5"},
		{"start after end", "dataType=fundingRate&startTime=6&endTime=5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeFetcher{}
			h := NewSeriesHandler(f, "BTCUSDT")

			req := httptest.NewRequest("GET", "/api/v1/series?"+tc.query, nil)
			w := httptest.NewRecorder()
			h.Get(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if f.got != nil {
				t.Error("no upstream fetch may happen for an invalid request")
			}

			var p response.Payload
			json.Unmarshal(w.Body.Bytes(), &p)
			if p.Success {
				t.Error("expected failure payload")
			}
		})
	}
}

func TestSeriesHandler_UpstreamFailure(t *testing.T) {
	f := &fakeFetcher{err: core.WrapError(core.ErrUpstreamFailed, errors.New("503 from upstream"))}
	h := NewSeriesHandler(f, "BTCUSDT")

	req := httptest.NewRequest("GET", "/api/v1/series?dataType=fundingRate&startTime=1&endTime=2", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}

	var p response.Payload
	json.Unmarshal(w.Body.Bytes(), &p)
	if p.Success {
		t.Error("expected failure payload")
	}
	if p.Details != "503 from upstream" {
		t.Errorf("upstream cause should be details, got %q", p.Details)
	}
}

func TestSeriesHandler_MethodNotAllowed(t *testing.T) {
	h := NewSeriesHandler(&fakeFetcher{}, "BTCUSDT")

	req := httptest.NewRequest("POST", "/api/v1/series", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestDataTypes(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/datatypes", nil)
	w := httptest.NewRecorder()
	DataTypes(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var p response.Payload
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if len(p.Data) != len(core.DataTypes()) {
		t.Errorf("expected %d entries, got %d", len(core.DataTypes()), len(p.Data))
	}

	var first dataTypeInfo
	if err := json.Unmarshal(p.Data[0], &first); err != nil {
		t.Fatalf("invalid entry: %v", err)
	}
	if first.ID != "fundingRate" || first.TimestampField != "fundingTime" {
		t.Errorf("unexpected first entry: %+v", first)
	}
}
