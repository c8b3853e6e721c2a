package upstream

import (
	"context"

	"github.com/coinlens/coinlens/internal/core"
)

// PageClient fetches one bounded batch of records for a data type,
// beginning at or after startMs. The batch length and covered duration
// are capped by the upstream; no ordering is guaranteed.
type PageClient interface {
	FetchPage(ctx context.Context, dataType core.DataType, symbol string, startMs int64) ([]core.Record, error)
}

// PageFunc adapts a function to the PageClient interface.
type PageFunc func(ctx context.Context, dataType core.DataType, symbol string, startMs int64) ([]core.Record, error)

// FetchPage implements PageClient.
func (f PageFunc) FetchPage(ctx context.Context, dataType core.DataType, symbol string, startMs int64) ([]core.Record, error) {
	return f(ctx, dataType, symbol, startMs)
}
