// internal/api/handler/api/series.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coinlens/coinlens/internal/api/response"
	"github.com/coinlens/coinlens/internal/core"
	"github.com/coinlens/coinlens/internal/fetch"
)

// SeriesFetcher assembles a windowed series. Implemented by fetch.Service.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, q fetch.Query) (*core.Series, error)
}

// SeriesHandler serves the windowed series read endpoint.
type SeriesHandler struct {
	fetcher       SeriesFetcher
	defaultSymbol string
}

// NewSeriesHandler creates a series handler. defaultSymbol fills in when
// the request omits ?symbol=.
func NewSeriesHandler(fetcher SeriesFetcher, defaultSymbol string) *SeriesHandler {
	return &SeriesHandler{fetcher: fetcher, defaultSymbol: defaultSymbol}
}

// Get handles GET /api/v1/series.
func (h *SeriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed,
			core.WrapError(core.ErrInvalidRequest, fmt.Errorf("method %s not allowed", r.Method)))
		return
	}

	query, err := parseSeriesQuery(r, h.defaultSymbol)
	if err != nil {
		// No upstream call is made for a malformed request.
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	series, err := h.fetcher.FetchSeries(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidRequest):
			response.Error(w, http.StatusBadRequest, err)
		case errors.Is(err, core.ErrUpstreamFailed):
			response.Error(w, http.StatusBadGateway, err)
		default:
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.Series(w, series)
}

func parseSeriesQuery(r *http.Request, defaultSymbol string) (fetch.Query, error) {
	q := r.URL.Query()

	dtStr := q.Get("dataType")
	startStr := q.Get("startTime")
	endStr := q.Get("endTime")
	if dtStr == "" || startStr == "" || endStr == "" {
		return fetch.Query{}, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("dataType, startTime and endTime are required"))
	}

	dt := core.DataType(dtStr)
	if !dt.IsValid() {
		return fetch.Query{}, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("unknown dataType %q", dtStr))
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return fetch.Query{}, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("startTime %q is not an integer", startStr))
	}
	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return fetch.Query{}, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("endTime %q is not an integer", endStr))
	}
	if start >= end {
		return fetch.Query{}, core.WrapError(core.ErrInvalidRequest,
			fmt.Errorf("startTime %d must be before endTime %d", start, end))
	}

	symbol := q.Get("symbol")
	if symbol == "" {
		symbol = defaultSymbol
	}

	return fetch.Query{
		DataType: dt,
		Symbol:   symbol,
		Window:   core.Window{Start: start, End: end},
	}, nil
}
