package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/finchwatch/finch/internal/classification"
	"github.com/finchwatch/finch/internal/model"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <file.csv>",
		Short: "Load transactions from a CSV file",
		Long: `Loads transactions into the local database from a CSV file with the
columns: id, date (YYYY-MM-DD or RFC 3339), name, merchant, amount,
direction (debit/credit), category, account. A header row is skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runSeed,
	}
	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 8

	detector := classification.NewDefaultDirectionDetector()

	var txns []model.Transaction
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}
		line++
		if line == 1 && record[0] == "id" {
			continue // header row
		}

		txn, err := parseCSVTransaction(record, detector)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		txns = append(txns, txn)
	}

	if len(txns) == 0 {
		slog.Info("No transactions to load")
		return nil
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := store.SaveTransactions(ctx, txns); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	slog.Info("Loaded transactions", "count", len(txns), "file", args[0])
	return nil
}

func parseCSVTransaction(record []string, detector *classification.DirectionDetector) (model.Transaction, error) {
	date, err := time.Parse("2006-01-02", record[1])
	if err != nil {
		date, err = time.Parse(time.RFC3339, record[1])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("invalid date %q", record[1])
		}
	}

	amount, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q", record[4])
	}

	txn := model.Transaction{
		ID:           record[0],
		Date:         date,
		Name:         record[2],
		MerchantName: record[3],
		Amount:       amount,
		Category:     record[6],
		AccountID:    record[7],
	}

	switch {
	case record[5] == string(model.DirectionDebit):
		txn.Direction = model.DirectionDebit
	case record[5] == string(model.DirectionCredit):
		txn.Direction = model.DirectionCredit
	case amount < 0:
		txn.Direction = model.DirectionCredit
	default:
		// No explicit direction: classify from the description.
		txn.Direction = detector.Classify(txn)
	}
	if txn.Amount < 0 {
		txn.Amount = -txn.Amount
	}

	return txn, nil
}
