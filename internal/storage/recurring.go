package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finchwatch/finch/internal/model"
)

// SaveRecurringCharges upserts confirmed detections. A detection is keyed by
// (payee, kind, frequency) so re-running detection refreshes the record
// instead of duplicating it.
func (s *SQLiteStorage) SaveRecurringCharges(ctx context.Context, results []model.DetectionResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recurring_charges (
			id, name, payee, kind, category, amount, frequency,
			confidence, confidence_level, transaction_count,
			first_date, last_date, predicted_next_date, amount_variance_percent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(payee, kind, frequency) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			amount = excluded.amount,
			confidence = excluded.confidence,
			confidence_level = excluded.confidence_level,
			transaction_count = excluded.transaction_count,
			first_date = excluded.first_date,
			last_date = excluded.last_date,
			predicted_next_date = excluded.predicted_next_date,
			amount_variance_percent = excluded.amount_variance_percent,
			detected_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range results {
		if _, err := stmt.ExecContext(ctx,
			uuid.NewString(), r.Name, r.Payee, string(r.Kind), r.SuggestedCategory,
			r.Amount, string(r.Frequency), r.Confidence, string(r.ConfidenceLevel),
			r.TransactionCount, r.FirstDate, r.LastDate, r.PredictedNextDate,
			r.AmountVariancePercent,
		); err != nil {
			return fmt.Errorf("failed to save recurring charge %q: %w", r.Name, err)
		}
	}

	return tx.Commit()
}

// GetRecurringCharges returns stored detections of one kind, strongest first.
func (s *SQLiteStorage) GetRecurringCharges(ctx context.Context, kind model.DetectionKind) ([]model.DetectionResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, payee, kind, category, amount, frequency,
			confidence, confidence_level, transaction_count,
			first_date, last_date, predicted_next_date, amount_variance_percent
		FROM recurring_charges
		WHERE kind = ?
		ORDER BY confidence DESC, name ASC
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring charges: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.DetectionResult
	for rows.Next() {
		var r model.DetectionResult
		var rKind, frequency, level string

		if err := rows.Scan(&r.Name, &r.Payee, &rKind, &r.SuggestedCategory,
			&r.Amount, &frequency, &r.Confidence, &level, &r.TransactionCount,
			&r.FirstDate, &r.LastDate, &r.PredictedNextDate,
			&r.AmountVariancePercent); err != nil {
			return nil, fmt.Errorf("failed to scan recurring charge: %w", err)
		}

		r.Kind = model.DetectionKind(rKind)
		r.Frequency = model.Frequency(frequency)
		r.ConfidenceLevel = model.ConfidenceLevel(level)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recurring charges: %w", err)
	}

	return results, nil
}

// SaveAnomalyAlerts records flagged transactions.
func (s *SQLiteStorage) SaveAnomalyAlerts(ctx context.Context, records []model.AnomalyRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO anomaly_alerts (
			id, transaction_id, kind, severity,
			baseline_mean, baseline_stddev, threshold, related_txn_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			uuid.NewString(), rec.Transaction.ID, string(rec.Kind), string(rec.Severity),
			rec.Stats.BaselineMean, rec.Stats.BaselineStdDev, rec.Stats.Threshold,
			rec.Stats.RelatedTxnID,
		); err != nil {
			return fmt.Errorf("failed to save anomaly alert for %s: %w", rec.Transaction.ID, err)
		}
	}

	return tx.Commit()
}
