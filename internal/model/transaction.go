// Package model defines the core data structures for the finch application.
package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// TransactionDirection indicates whether money moved in or out of the account.
type TransactionDirection string

// Transaction direction constants.
const (
	DirectionDebit  TransactionDirection = "debit"
	DirectionCredit TransactionDirection = "credit"
)

// Transaction represents a single financial transaction from any source.
type Transaction struct {
	Date         time.Time
	ID           string
	Name         string // Raw transaction description
	MerchantName string // Cleaned merchant name, may be empty
	Category     string
	AccountID    string
	Hash         string
	Direction    TransactionDirection
	Amount       float64 // Absolute value; Direction carries the sign
}

// Payee returns the best available counterparty name: the cleaned merchant
// name when present, otherwise the raw description.
func (t *Transaction) Payee() string {
	if t.MerchantName != "" {
		return t.MerchantName
	}
	return t.Name
}

// NormalizedPayee returns the lowercased, trimmed payee name used for
// similarity comparisons. Empty when neither name is set.
func (t *Transaction) NormalizedPayee() string {
	return strings.ToLower(strings.TrimSpace(t.Payee()))
}

// IsDebit reports whether the transaction is an outflow.
func (t *Transaction) IsDebit() bool {
	return t.Direction == DirectionDebit
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.MerchantName,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
