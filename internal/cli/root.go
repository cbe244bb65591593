// Package cli implements the pos command line.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "pos",
	Short: "Studio point-of-sale daemon",
	Long: `pos records sales, bookings with deposits, and invoices for a
single studio, settles outstanding balances, and keeps the daily cash
ledger. Run 'pos serve' to start the HTTP API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml (default ~/.pos/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
