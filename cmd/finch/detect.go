package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/finchwatch/finch/internal/cli"
	"github.com/finchwatch/finch/internal/model"
	"github.com/finchwatch/finch/internal/recurring"
)

func detectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect recurring charges (subscriptions and bills)",
		Long: `Analyzes your transaction history for charges that repeat on a regular
interval. Subscriptions use a 180-day lookback; bills use 365 days with
tighter amount-stability requirements.`,
		RunE: runDetect,
	}

	cmd.Flags().Bool("subscriptions", false, "detect subscriptions only")
	cmd.Flags().Bool("bills", false, "detect bills only")
	cmd.Flags().Int("lookback", 0, "override lookback window in days")
	cmd.Flags().Bool("json", false, "emit JSON instead of a table")
	cmd.Flags().Bool("save", false, "persist detections to the database")

	return cmd
}

func runDetect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	subsOnly, _ := cmd.Flags().GetBool("subscriptions")
	billsOnly, _ := cmd.Flags().GetBool("bills")
	lookback, _ := cmd.Flags().GetInt("lookback")
	asJSON, _ := cmd.Flags().GetBool("json")
	save, _ := cmd.Flags().GetBool("save")

	configs := make([]recurring.DomainConfig, 0, 2)
	if !billsOnly {
		configs = append(configs, recurring.DefaultSubscriptionConfig())
	}
	if !subsOnly {
		configs = append(configs, recurring.DefaultBillConfig())
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	now := time.Now()
	var all []model.DetectionResult

	for _, cfg := range configs {
		if lookback > 0 {
			cfg.LookbackDays = lookback
		}

		start := now.AddDate(0, 0, -cfg.LookbackDays)
		txns, err := store.GetTransactionsByDateRange(ctx, start, now)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}

		detector := recurring.NewDetector(cfg)
		results := detector.Detect(ctx, txns, now)
		slog.Info("Detection complete",
			"kind", cfg.Kind,
			"transactions", len(txns),
			"detections", len(results))

		all = append(all, results...)
	}

	if save && len(all) > 0 {
		if err := store.SaveRecurringCharges(ctx, all); err != nil {
			return fmt.Errorf("failed to save detections: %w", err)
		}
	}

	if asJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(all)
	}

	for _, cfg := range configs {
		var filtered []model.DetectionResult
		for _, r := range all {
			if r.Kind == cfg.Kind {
				filtered = append(filtered, r)
			}
		}
		title := "Subscriptions"
		if cfg.Kind == model.DetectionBill {
			title = "Bills"
		}
		cli.RenderDetections(cmd.OutOrStdout(), title, filtered)
	}

	return nil
}
