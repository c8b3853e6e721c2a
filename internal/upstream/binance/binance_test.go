package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coinlens/coinlens/internal/config"
	"github.com/coinlens/coinlens/internal/core"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Defaults().Upstream
	c := New(cfg, zap.NewNop())
	c.SetBaseURL(server.URL)
	return c
}

func TestClient_FetchPage_FundingRate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "fundingRate") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("startTime"); got != "1700000000000" {
			t.Errorf("expected startTime to be forwarded, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"symbol":"BTCUSDT","fundingTime":1700000000000,"fundingRate":"0.00010000"},
			{"symbol":"BTCUSDT","fundingTime":1700028800000,"fundingRate":"0.00012000"}
		]`))
	})

	records, err := c.FetchPage(context.Background(), core.DataTypeFundingRate, "BTCUSDT", 1700000000000)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	ts := gjson.GetBytes(records[0], "fundingTime")
	if !ts.Exists() || ts.Int() != 1700000000000 {
		t.Errorf("expected fundingTime field in record, got %s", records[0])
	}
}

func TestClient_FetchPage_OpenInterest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "openInterestHist") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"symbol":"BTCUSDT","sumOpenInterest":"101.5","sumOpenInterestValue":"4050000.0","timestamp":1700000000000}
		]`))
	})

	records, err := c.FetchPage(context.Background(), core.DataTypeOpenInterest, "BTCUSDT", 1700000000000)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if ts := gjson.GetBytes(records[0], "timestamp"); ts.Int() != 1700000000000 {
		t.Errorf("expected timestamp field in record, got %s", records[0])
	}
}

func TestClient_FetchPage_UnsupportedType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	if _, err := c.FetchPage(context.Background(), core.DataType("klines"), "BTCUSDT", 0); err == nil {
		t.Error("expected error for unsupported data type")
	}
}

func TestClient_FetchPage_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	})

	if _, err := c.FetchPage(context.Background(), core.DataTypeFundingRate, "NOPE", 0); err == nil {
		t.Error("expected error from failing upstream")
	}
}

func TestClient_StatsLimitCap(t *testing.T) {
	cfg := config.Defaults().Upstream
	cfg.PageLimit = 1000
	c := New(cfg, zap.NewNop())

	if got := c.statsLimit(); got != statsPageLimit {
		t.Errorf("expected stats limit capped at %d, got %d", statsPageLimit, got)
	}
}
