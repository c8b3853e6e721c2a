package fetch

import (
	"context"

	"github.com/coinlens/coinlens/internal/core"
	"go.uber.org/zap"
)

// DefaultMaxAttempts caps the number of pages fetched for one window. It
// is a safety valve against runaway ranges and pathological upstreams.
const DefaultMaxAttempts = 200

// loopResult is the raw outcome of one window fetch before merging.
type loopResult struct {
	records []core.Record
	reason  core.TerminationReason
	pages   int
	dropped int
}

// runWindow advances a cursor from q.Window.Start, one upstream page at a
// time, until the window is covered or a terminal condition trips.
//
// Only an upstream failure is an error; every other termination yields
// whatever was accumulated so far.
func (s *Service) runWindow(ctx context.Context, q Query) (loopResult, error) {
	strat, err := strategyFor(q.DataType)
	if err != nil {
		return loopResult{}, core.WrapError(core.ErrInvalidRequest, err)
	}

	var res loopResult
	cursor := q.Window.Start
	attempts := 0

	for {
		batch, err := s.client.FetchPage(ctx, q.DataType, q.Symbol, cursor)
		if err != nil {
			// Aborts the whole request; partial data is not returned
			// for upstream failures.
			return loopResult{}, core.WrapError(core.ErrUpstreamFailed, err)
		}
		res.pages++
		s.metrics.RecordPage(string(q.DataType))

		if len(batch) == 0 {
			// End of available history.
			res.reason = core.TermEmptyBatch
			return res, nil
		}

		// Accumulate the batch, dropping records whose timestamp cannot
		// be extracted, and track the page's maximum timestamp.
		var maxTS int64
		kept := 0
		for _, rec := range batch {
			ts, err := strat.extract(rec)
			if err != nil {
				res.dropped++
				s.log.Warn("dropping malformed record",
					zap.String("data_type", string(q.DataType)),
					zap.Error(err),
				)
				continue
			}
			res.records = append(res.records, rec)
			if kept == 0 || ts > maxTS {
				maxTS = ts
			}
			kept++
		}

		// A page that cannot move the cursor forward would repeat
		// forever; the +1 below already guarantees the boundary record
		// is never re-requested, so a maximum behind the cursor means
		// the upstream is replaying an old page.
		if kept == 0 || maxTS < cursor {
			res.reason = core.TermNoProgress
			return res, nil
		}
		cursor = maxTS + 1

		if cursor >= q.Window.End {
			res.reason = core.TermEndOfRange
			return res, nil
		}

		attempts++
		if attempts >= s.maxAttempts {
			res.reason = core.TermMaxAttempts
			return res, nil
		}
	}
}
