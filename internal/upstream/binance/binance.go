package binance

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/coinlens/coinlens/internal/config"
	"github.com/coinlens/coinlens/internal/core"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// statsPageLimit is the hard cap Binance imposes on the /futures/data
// statistics endpoints (open interest, ratios, taker volume).
const statsPageLimit = 500

// Client fetches futures market-data pages from Binance. It implements
// upstream.PageClient. Requests are paced client-side; retry and signing
// are left to the underlying SDK.
type Client struct {
	futures *futures.Client
	limiter *rate.Limiter
	period  string
	limit   int
	log     *zap.Logger
}

// New creates a Binance page client.
func New(cfg config.UpstreamConfig, log *zap.Logger) *Client {
	fc := futures.NewClient(cfg.Binance.APIKey, cfg.Binance.APISecret)
	if cfg.Binance.Testnet {
		futures.UseTestnet = true
	}

	return &Client{
		futures: fc,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
		period:  cfg.Period,
		limit:   cfg.PageLimit,
		log:     log,
	}
}

// SetBaseURL overrides the API endpoint (for testing).
func (c *Client) SetBaseURL(url string) {
	c.futures.BaseURL = url
}

// FetchPage fetches one bounded batch of records of the given data type
// for symbol, beginning at or after startMs.
func (c *Client) FetchPage(ctx context.Context, dataType core.DataType, symbol string, startMs int64) ([]core.Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	c.log.Debug("fetching upstream page",
		zap.String("data_type", string(dataType)),
		zap.String("symbol", symbol),
		zap.Int64("start_ms", startMs),
	)

	switch dataType {
	case core.DataTypeFundingRate:
		items, err := c.futures.NewFundingRateService().
			Symbol(symbol).
			StartTime(startMs).
			Limit(c.limit).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("funding rate page: %w", err)
		}
		return marshalRecords(items)

	case core.DataTypeOpenInterest:
		items, err := c.futures.NewOpenInterestStatisticsService().
			Symbol(symbol).
			Period(c.period).
			StartTime(startMs).
			Limit(c.statsLimit()).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("open interest page: %w", err)
		}
		return marshalRecords(items)

	case core.DataTypeLongShortRatio:
		items, err := c.futures.NewLongShortRatioService().
			Symbol(symbol).
			Period(c.period).
			StartTime(startMs).
			Limit(c.statsLimit()).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("long/short ratio page: %w", err)
		}
		return marshalRecords(items)

	case core.DataTypeTakerBuySellVolume:
		items, err := c.futures.NewTakerLongShortRatioService().
			Symbol(symbol).
			Period(c.period).
			StartTime(uint64(startMs)).
			Limit(uint32(c.statsLimit())).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("taker volume page: %w", err)
		}
		return marshalRecords(items)
	}

	return nil, fmt.Errorf("unsupported data type: %s", dataType)
}

func (c *Client) statsLimit() int {
	if c.limit > statsPageLimit {
		return statsPageLimit
	}
	return c.limit
}

// marshalRecords re-encodes SDK items as the raw JSON objects the engine
// passes through untouched.
func marshalRecords[T any](items []T) ([]core.Record, error) {
	records := make([]core.Record, 0, len(items))
	for _, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encoding record: %w", err)
		}
		records = append(records, core.Record(b))
	}
	return records, nil
}
