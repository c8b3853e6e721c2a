package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/coinlens/coinlens/internal/core"
	"github.com/coinlens/coinlens/internal/metrics"
	"github.com/coinlens/coinlens/internal/upstream"
	"go.uber.org/zap"
)

// IncompleteRangeWarning is surfaced in response metadata when the
// attempt limit tripped before the requested range was covered.
const IncompleteRangeWarning = "attempt limit reached before the requested range was covered; results may be incomplete"

// Query describes one window fetch.
type Query struct {
	DataType core.DataType
	Symbol   string
	Window   core.Window
}

// Service runs the windowed fetch-merge-deduplicate pipeline. Each call
// owns its own cursor and buffer; a Service is safe for concurrent use
// as long as its page client is.
type Service struct {
	client      upstream.PageClient
	log         *zap.Logger
	metrics     *metrics.Registry
	maxAttempts int
}

// NewService creates a fetch service. reg may be nil when metrics are
// not wanted (one-shot CLI use).
func NewService(client upstream.PageClient, log *zap.Logger, reg *metrics.Registry, maxAttempts int) *Service {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Service{
		client:      client,
		log:         log,
		metrics:     reg,
		maxAttempts: maxAttempts,
	}
}

// FetchSeries assembles the gap-free, deduplicated, ascending sequence of
// records covering q.Window. Terminations other than an upstream failure
// yield a (possibly partial) series.
func (s *Service) FetchSeries(ctx context.Context, q Query) (*core.Series, error) {
	if !q.DataType.IsValid() {
		return nil, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("unknown data type %q", q.DataType))
	}
	if q.Symbol == "" {
		return nil, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("symbol is required"))
	}
	if !q.Window.IsValid() {
		return nil, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("start %d must be before end %d", q.Window.Start, q.Window.End))
	}

	began := time.Now()
	lr, err := s.runWindow(ctx, q)
	if err != nil {
		return nil, err
	}

	ordered, unique := Merge(lr.records, q.DataType, q.Window)

	s.metrics.RecordDropped(string(q.DataType), lr.dropped)
	s.metrics.RecordTermination(string(q.DataType), string(lr.reason))
	s.metrics.RecordFetch(time.Since(began).Seconds(), len(ordered))

	series := &core.Series{
		DataType:           q.DataType,
		Symbol:             q.Symbol,
		Window:             q.Window,
		Records:            ordered,
		RecordCount:        len(ordered),
		TotalUniqueFetched: unique,
		Termination:        lr.reason,
		PagesFetched:       lr.pages,
		DroppedRecords:     lr.dropped,
	}
	if lr.reason == core.TermMaxAttempts {
		series.Warning = IncompleteRangeWarning
	}

	s.log.Info("window fetch complete",
		zap.String("data_type", string(q.DataType)),
		zap.String("symbol", q.Symbol),
		zap.Int64("start", q.Window.Start),
		zap.Int64("end", q.Window.End),
		zap.String("termination", string(lr.reason)),
		zap.Int("pages", lr.pages),
		zap.Int("records", len(ordered)),
		zap.Int("dropped", lr.dropped),
	)

	return series, nil
}
