package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "coinlens",
	Short: "coinlens - windowed Binance futures series viewer",
	Long: `coinlens assembles gap-free, deduplicated, time-ordered futures market
series (funding rate, open interest, long/short ratio, taker volume) over
an arbitrary time window, and serves them to a browser table.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
