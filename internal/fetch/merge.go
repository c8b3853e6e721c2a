package fetch

import (
	"sort"

	"github.com/coinlens/coinlens/internal/core"
)

// Merge collapses an accumulation buffer into the final sequence:
// duplicate timestamps keep the latest-received record, entries outside
// [w.Start, w.End) are filtered out, and the remainder is sorted
// ascending. Returns the ordered records and the count of unique
// timestamps seen before the range filter.
//
// When two genuinely distinct records share a timestamp, one is
// discarded; timestamp is the identity key here, deliberately.
func Merge(records []core.Record, dt core.DataType, w core.Window) ([]core.Record, int) {
	strat, err := strategyFor(dt)
	if err != nil {
		return []core.Record{}, 0
	}

	byTS := make(map[int64]core.Record, len(records))
	for _, rec := range records {
		ts, err := strat.extract(rec)
		if err != nil {
			// The loop drops these before they reach the buffer; skip
			// rather than abort if one slips through.
			continue
		}
		byTS[ts] = rec
	}
	unique := len(byTS)

	keys := make([]int64, 0, len(byTS))
	for ts := range byTS {
		if w.Contains(ts) {
			keys = append(keys, ts)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	ordered := make([]core.Record, 0, len(keys))
	for _, ts := range keys {
		ordered = append(ordered, byTS[ts])
	}
	return ordered, unique
}
