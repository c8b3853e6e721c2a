package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/coinlens/coinlens/internal/core"
	"github.com/coinlens/coinlens/internal/fetch"
	"github.com/coinlens/coinlens/internal/logger"
	"github.com/coinlens/coinlens/internal/upstream/binance"
	"github.com/spf13/cobra"
)

var (
	fetchType   string
	fetchStart  string
	fetchEnd    string
	fetchSymbol string
	fetchPeriod string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch one windowed series and print it as JSON",
	Long:  "Run a single window fetch against the upstream and print the assembled series to stdout.",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchType, "type", "", "data type (fundingRate, openInterest, longShortRatio, takerBuySellVolume)")
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "window start, epoch-ms or RFC3339")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "window end (exclusive), epoch-ms or RFC3339")
	fetchCmd.Flags().StringVar(&fetchSymbol, "symbol", "", "symbol override")
	fetchCmd.Flags().StringVar(&fetchPeriod, "period", "", "statistics period override (e.g. 5m, 1h)")

	fetchCmd.MarkFlagRequired("type")
	fetchCmd.MarkFlagRequired("start")
	fetchCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if fetchSymbol == "" {
		fetchSymbol = cfg.Upstream.Symbol
	}
	if fetchPeriod != "" {
		cfg.Upstream.Period = fetchPeriod
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	start, err := parseTimeMs(fetchStart)
	if err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	end, err := parseTimeMs(fetchEnd)
	if err != nil {
		return fmt.Errorf("invalid end: %w", err)
	}

	client := binance.New(cfg.Upstream, log.Named("binance"))
	service := fetch.NewService(client, log.Named("fetch"), nil, cfg.Fetch.MaxAttempts)

	series, err := service.FetchSeries(context.Background(), fetch.Query{
		DataType: core.DataType(fetchType),
		Symbol:   fetchSymbol,
		Window:   core.Window{Start: start, End: end},
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(series)
}

// parseTimeMs accepts either an integer epoch-ms value or an RFC3339
// timestamp.
func parseTimeMs(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("%q is neither epoch-ms nor RFC3339", s)
	}
	return t.UnixMilli(), nil
}
