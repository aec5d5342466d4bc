package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/finchwatch/finch/internal/model"
)

// validateContext ensures a context is usable before hitting the database.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	return nil
}

// validateString ensures a required string parameter is non-empty.
func validateString(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}

// validateTransactions ensures transactions are well-formed before saving.
func validateTransactions(transactions []model.Transaction) error {
	for i, txn := range transactions {
		if txn.ID == "" {
			return fmt.Errorf("transaction %d: ID cannot be empty", i)
		}
		if txn.Date.IsZero() {
			return fmt.Errorf("transaction %d: date cannot be zero", i)
		}
		if txn.Name == "" {
			return fmt.Errorf("transaction %d: name cannot be empty", i)
		}
	}
	return nil
}
