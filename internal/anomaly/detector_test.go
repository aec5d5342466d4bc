package anomaly

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchwatch/finch/internal/model"
)

func debitAt(t *testing.T, merchant string, amount float64, timestamp string) model.Transaction {
	t.Helper()
	d, err := time.Parse("2006-01-02 15:04", timestamp)
	require.NoError(t, err)
	return model.Transaction{
		ID:           fmt.Sprintf("%s-%s", merchant, timestamp),
		Date:         d,
		Name:         merchant,
		MerchantName: merchant,
		Direction:    model.DirectionDebit,
		Amount:       amount,
	}
}

func findKind(records []model.AnomalyRecord, kind model.AnomalyKind) []model.AnomalyRecord {
	var matched []model.AnomalyRecord
	for _, r := range records {
		if r.Kind == kind {
			matched = append(matched, r)
		}
	}
	return matched
}

func TestDetector_MagnitudeAnomaly(t *testing.T) {
	ctx := context.Background()
	now, _ := time.Parse("2006-01-02", "2025-06-15")
	d := NewDetector(DefaultConfig())

	// Baseline of $20-$60 groceries and one $500 charge.
	txns := []model.Transaction{
		debitAt(t, "Grocery Mart", 20.00, "2025-06-01 12:00"),
		debitAt(t, "Grocery Mart", 35.00, "2025-06-03 12:00"),
		debitAt(t, "Coffee Shop", 40.00, "2025-06-05 12:00"),
		debitAt(t, "Grocery Mart", 55.00, "2025-06-07 12:00"),
		debitAt(t, "Coffee Shop", 60.00, "2025-06-09 12:00"),
		debitAt(t, "Electronics Hut", 500.00, "2025-06-11 12:00"),
	}

	records := d.Detect(ctx, txns, now, ModeRoutine)
	flagged := findKind(records, model.AnomalyLargeTransaction)
	require.Len(t, flagged, 1)

	rec := flagged[0]
	assert.Equal(t, 500.00, rec.Transaction.Amount)
	assert.Equal(t, model.SeverityHigh, rec.Severity)
	assert.Greater(t, rec.Stats.Threshold, rec.Stats.BaselineMean)

	// The stricter report mode still catches an outlier this large.
	reportRecords := d.Detect(ctx, txns, now, ModeReport)
	assert.Len(t, findKind(reportRecords, model.AnomalyLargeTransaction), 1)
}

func TestDetector_MagnitudeFloorSuppressesSmallBaselines(t *testing.T) {
	ctx := context.Background()
	now, _ := time.Parse("2006-01-02", "2025-06-15")
	d := NewDetector(DefaultConfig())

	// $12 is a huge outlier against a $3 baseline, but below the absolute
	// floor it is just noise.
	txns := []model.Transaction{
		debitAt(t, "Vending", 3.00, "2025-06-01 12:00"),
		debitAt(t, "Vending", 3.00, "2025-06-02 12:00"),
		debitAt(t, "Vending", 3.00, "2025-06-03 12:00"),
		debitAt(t, "Vending", 12.00, "2025-06-04 12:00"),
	}

	records := d.Detect(ctx, txns, now, ModeRoutine)
	assert.Empty(t, findKind(records, model.AnomalyLargeTransaction))
}

func TestDetector_MagnitudeNeedsBaseline(t *testing.T) {
	ctx := context.Background()
	now, _ := time.Parse("2006-01-02", "2025-06-15")
	d := NewDetector(DefaultConfig())

	txns := []model.Transaction{
		debitAt(t, "Shop", 20.00, "2025-06-01 12:00"),
		debitAt(t, "Shop", 900.00, "2025-06-02 12:00"),
	}

	records := d.Detect(ctx, txns, now, ModeRoutine)
	assert.Empty(t, findKind(records, model.AnomalyLargeTransaction))
}

func TestDetector_DuplicateAnomaly(t *testing.T) {
	ctx := context.Background()
	now, _ := time.Parse("2006-01-02", "2025-06-15")
	d := NewDetector(DefaultConfig())

	txns := []model.Transaction{
		debitAt(t, "Amazon", 45.00, "2025-06-10 08:00"),
		debitAt(t, "Amazon", 45.00, "2025-06-10 14:00"),
	}

	records := d.Detect(ctx, txns, now, ModeRoutine)
	flagged := findKind(records, model.AnomalyDuplicate)
	require.Len(t, flagged, 1)

	rec := flagged[0]
	assert.Equal(t, "Amazon-2025-06-10 14:00", rec.Transaction.ID)
	assert.Equal(t, "Amazon-2025-06-10 08:00", rec.Stats.RelatedTxnID)
	assert.Equal(t, model.SeverityMedium, rec.Severity)
}

func TestDetector_DuplicateRequiresSameAmountAndWindow(t *testing.T) {
	ctx := context.Background()
	now, _ := time.Parse("2006-01-02", "2025-06-15")
	d := NewDetector(DefaultConfig())

	tests := []struct {
		name string
		txns []model.Transaction
	}{
		{
			name: "amounts differ beyond tolerance",
			txns: []model.Transaction{
				debitAt(t, "Amazon", 45.00, "2025-06-10 08:00"),
				debitAt(t, "Amazon", 45.05, "2025-06-10 14:00"),
			},
		},
		{
			name: "more than 24 hours apart",
			txns: []model.Transaction{
				debitAt(t, "Amazon", 45.00, "2025-06-10 08:00"),
				debitAt(t, "Amazon", 45.00, "2025-06-11 10:00"),
			},
		},
		{
			name: "different merchants",
			txns: []model.Transaction{
				debitAt(t, "Amazon", 45.00, "2025-06-10 08:00"),
				debitAt(t, "Target", 45.00, "2025-06-10 14:00"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := d.Detect(ctx, tt.txns, now, ModeRoutine)
			assert.Empty(t, findKind(records, model.AnomalyDuplicate))
		})
	}
}

func TestDetector_OddHourAnomaly(t *testing.T) {
	ctx := context.Background()
	now, _ := time.Parse("2006-01-02", "2025-06-15")
	d := NewDetector(DefaultConfig())

	txns := []model.Transaction{
		debitAt(t, "Online Store", 75.00, "2025-06-10 03:30"),
		debitAt(t, "Online Store", 40.00, "2025-06-11 03:30"), // too small
		debitAt(t, "Online Store", 75.00, "2025-06-12 06:00"), // normal hour
		debitAt(t, "Online Store", 75.00, "2025-06-13 01:59"), // just before window
	}

	records := d.Detect(ctx, txns, now, ModeRoutine)
	flagged := findKind(records, model.AnomalyOddHour)
	require.Len(t, flagged, 1)
	assert.Equal(t, "Online Store-2025-06-10 03:30", flagged[0].Transaction.ID)
	assert.Equal(t, model.SeverityLow, flagged[0].Severity)
}

func TestDetector_NewMerchantLargeAmount(t *testing.T) {
	ctx := context.Background()
	now, _ := time.Parse("2006-01-02", "2025-06-15")
	d := NewDetector(DefaultConfig())

	// Trailing history: familiar merchants averaging $40. A brand-new
	// merchant shows up this week at $200, five times the baseline.
	txns := []model.Transaction{
		debitAt(t, "Grocery Mart", 30.00, "2025-05-20 12:00"),
		debitAt(t, "Grocery Mart", 40.00, "2025-05-27 12:00"),
		debitAt(t, "Coffee Shop", 50.00, "2025-06-03 12:00"),
		debitAt(t, "Luxury Boutique", 200.00, "2025-06-12 12:00"),
		debitAt(t, "Grocery Mart", 45.00, "2025-06-13 12:00"), // known, ignored
	}

	records := d.Detect(ctx, txns, now, ModeRoutine)
	flagged := findKind(records, model.AnomalyNewMerchantLargeAmount)
	require.Len(t, flagged, 1)
	assert.Equal(t, "Luxury Boutique", flagged[0].Transaction.MerchantName)
	assert.InDelta(t, 40.0, flagged[0].Stats.BaselineMean, 1e-9)
	assert.InDelta(t, 80.0, flagged[0].Stats.Threshold, 1e-9)
}

func TestDetector_RulesAreAdditive(t *testing.T) {
	ctx := context.Background()
	now, _ := time.Parse("2006-01-02", "2025-06-15")
	d := NewDetector(DefaultConfig())

	// One 3 AM $500 charge against a small baseline trips both the
	// magnitude and odd-hour rules.
	txns := []model.Transaction{
		debitAt(t, "Grocery Mart", 30.00, "2025-06-01 12:00"),
		debitAt(t, "Grocery Mart", 40.00, "2025-06-03 12:00"),
		debitAt(t, "Grocery Mart", 50.00, "2025-06-05 12:00"),
		debitAt(t, "Casino Lounge", 500.00, "2025-06-10 03:00"),
	}

	records := d.Detect(ctx, txns, now, ModeRoutine)
	assert.Len(t, findKind(records, model.AnomalyLargeTransaction), 1)
	assert.Len(t, findKind(records, model.AnomalyOddHour), 1)
}

func TestDetector_Idempotent(t *testing.T) {
	ctx := context.Background()
	now, _ := time.Parse("2006-01-02", "2025-06-15")
	d := NewDetector(DefaultConfig())

	txns := []model.Transaction{
		debitAt(t, "Grocery Mart", 30.00, "2025-06-01 12:00"),
		debitAt(t, "Grocery Mart", 40.00, "2025-06-03 12:00"),
		debitAt(t, "Grocery Mart", 50.00, "2025-06-05 12:00"),
		debitAt(t, "Electronics Hut", 500.00, "2025-06-11 12:00"),
	}

	first := d.Detect(ctx, txns, now, ModeRoutine)
	second := d.Detect(ctx, txns, now, ModeRoutine)
	assert.Equal(t, first, second)
}

func TestTopAlerts(t *testing.T) {
	mk := func(id string, severity model.AnomalySeverity, timestamp string) model.AnomalyRecord {
		d, _ := time.Parse("2006-01-02 15:04", timestamp)
		return model.AnomalyRecord{
			Transaction: model.Transaction{ID: id, Date: d},
			Kind:        model.AnomalyLargeTransaction,
			Severity:    severity,
		}
	}

	records := []model.AnomalyRecord{
		mk("old-low", model.SeverityLow, "2025-06-01 12:00"),
		mk("new-medium", model.SeverityMedium, "2025-06-10 12:00"),
		mk("old-high", model.SeverityHigh, "2025-06-02 12:00"),
		mk("new-high", model.SeverityHigh, "2025-06-12 12:00"),
	}

	top := TopAlerts(records, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "new-high", top[0].Transaction.ID)
	assert.Equal(t, "old-high", top[1].Transaction.ID)
	assert.Equal(t, "new-medium", top[2].Transaction.ID)

	// Zero cap returns everything, input untouched.
	all := TopAlerts(records, 0)
	assert.Len(t, all, 4)
	assert.Equal(t, "old-low", records[0].Transaction.ID)
}
