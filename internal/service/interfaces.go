// Package service defines the interfaces between the detection engine's
// collaborators.
package service

import (
	"context"
	"time"

	"github.com/finchwatch/finch/internal/model"
)

// Storage is the persistence collaborator: it supplies the transaction
// history the engine analyzes and keeps confirmed results. The engine itself
// never touches it.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]model.Transaction, error)

	// Detection persistence
	SaveRecurringCharges(ctx context.Context, results []model.DetectionResult) error
	GetRecurringCharges(ctx context.Context, kind model.DetectionKind) ([]model.DetectionResult, error)
	SaveAnomalyAlerts(ctx context.Context, records []model.AnomalyRecord) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
