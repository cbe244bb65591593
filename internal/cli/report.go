package cli

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumistudio/pos/internal/app/ledger"
	"github.com/lumistudio/pos/internal/daemon"
	"github.com/lumistudio/pos/internal/domain"
	"github.com/lumistudio/pos/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("date", "d", "", "Date to report (YYYY-MM-DD, default today)")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the daily balance report for a date",
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = domain.Today()
	}

	cfg, err := daemon.LoadConfig(configPath)
	if err != nil {
		return err
	}
	db, err := sqlite.Open(cfg.Store.Path, cfg.Store.BusyTimeout())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, err := ledger.New(db).DailyReport(ctx, date)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
