package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/finchwatch/finch/internal/anomaly"
	"github.com/finchwatch/finch/internal/cli"
	"github.com/finchwatch/finch/internal/common"
)

func anomaliesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anomalies",
		Short: "Scan recent transactions for anomalies",
		Long: `Flags transactions that look unusual against your recent history:
outsized amounts, duplicate charges, overnight activity, and large
first-time merchants.`,
		RunE: runAnomalies,
	}

	cmd.Flags().Int("days", 30, "window of history to scan (7-90)")
	cmd.Flags().Int("limit", 3, "maximum alerts to surface (0 = all)")
	cmd.Flags().Bool("report", false, "use the stricter on-demand report threshold")
	cmd.Flags().Bool("json", false, "emit JSON instead of a table")
	cmd.Flags().Bool("save", false, "persist alerts to the database")

	return cmd
}

func runAnomalies(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	days, _ := cmd.Flags().GetInt("days")
	limit, _ := cmd.Flags().GetInt("limit")
	report, _ := cmd.Flags().GetBool("report")
	asJSON, _ := cmd.Flags().GetBool("json")
	save, _ := cmd.Flags().GetBool("save")

	if days < 7 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	now := time.Now()
	txns, err := store.GetTransactionsByDateRange(ctx, now.AddDate(0, 0, -days), now)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(txns) == 0 {
		return common.NewUserError(
			fmt.Sprintf("no transactions in the last %d days; run 'finch seed' first", days),
			common.ErrNoTransactions)
	}

	mode := anomaly.ModeRoutine
	if report {
		mode = anomaly.ModeReport
	}

	detector := anomaly.NewDetector(anomaly.DefaultConfig())
	records := detector.Detect(ctx, txns, now, mode)
	surfaced := anomaly.TopAlerts(records, limit)

	slog.Info("Anomaly scan complete",
		"days", days,
		"transactions", len(txns),
		"flags", len(records),
		"surfaced", len(surfaced))

	if save && len(surfaced) > 0 {
		if err := store.SaveAnomalyAlerts(ctx, surfaced); err != nil {
			return fmt.Errorf("failed to save alerts: %w", err)
		}
	}

	if asJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(surfaced)
	}

	cli.RenderAnomalies(cmd.OutOrStdout(), surfaced)
	return nil
}
