package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/finchwatch/finch/internal/model"
)

// SaveTransactions saves multiple transactions, skipping duplicates by hash.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, hash, date, name, merchant_name, amount, direction, category, account_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}
		if txn.Direction == "" {
			txn.Direction = model.DirectionDebit
		}

		if _, err := stmt.ExecContext(ctx,
			txn.ID, txn.Hash, txn.Date, txn.Name, txn.MerchantName,
			txn.Amount, string(txn.Direction), txn.Category, txn.AccountID,
		); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// GetTransactionsByDateRange returns transactions in [start, end], date
// ascending. This is the lookback window fed into the detection engine.
func (s *SQLiteStorage) GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hash, date, name, merchant_name, amount, direction, category, account_id
		FROM transactions
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, id ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var merchantName, category, accountID sql.NullString
		var direction string

		if err := rows.Scan(&txn.ID, &txn.Hash, &txn.Date, &txn.Name,
			&merchantName, &txn.Amount, &direction, &category, &accountID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		txn.MerchantName = merchantName.String
		txn.Category = category.String
		txn.AccountID = accountID.String
		txn.Direction = model.TransactionDirection(direction)
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}
