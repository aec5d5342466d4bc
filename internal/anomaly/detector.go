// Package anomaly flags statistically or structurally unusual transactions
// relative to a recent history window.
package anomaly

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/finchwatch/finch/internal/model"
)

// ScanMode selects the magnitude sensitivity of a run.
type ScanMode string

// Scan mode constants.
const (
	// ModeRoutine is the background scan: flags above mean + 2 stddev.
	ModeRoutine ScanMode = "routine"
	// ModeReport is the on-demand detection report: flags above mean + 3 stddev.
	ModeReport ScanMode = "report"
)

// Config holds the detector's thresholds as named values so the rules stay
// independently testable.
type Config struct {
	// RoutineSigma and ReportSigma are the stddev multipliers for the two
	// scan modes.
	RoutineSigma float64
	ReportSigma  float64

	// MagnitudeFloor suppresses low-baseline noise: a magnitude anomaly must
	// also exceed this absolute amount.
	MagnitudeFloor float64

	// HighSeverityFactor promotes a magnitude anomaly to high severity when
	// the amount exceeds the threshold by this multiple.
	HighSeverityFactor float64

	// MinBaseline is the smallest window that yields magnitude statistics.
	MinBaseline int

	// DuplicateWindow and DuplicateTolerance define a duplicate: same
	// merchant, amounts within the tolerance, dates within the window.
	DuplicateWindow    time.Duration
	DuplicateTolerance float64

	// OddHourStart and OddHourEnd bound the suspicious overnight window
	// (inclusive start, exclusive end, local wall clock). OddHourMinAmount
	// ignores small overnight charges.
	OddHourStart     int
	OddHourEnd       int
	OddHourMinAmount float64

	// NewMerchantFactor flags a first-seen merchant whose amount exceeds
	// this multiple of the baseline mean. RecentDays is the slice of history
	// treated as "new".
	NewMerchantFactor float64
	RecentDays        int
}

// DefaultConfig returns the tuned anomaly thresholds.
func DefaultConfig() Config {
	return Config{
		RoutineSigma:       2.0,
		ReportSigma:        3.0,
		MagnitudeFloor:     100.0,
		HighSeverityFactor: 1.5,
		MinBaseline:        3,
		DuplicateWindow:    24 * time.Hour,
		DuplicateTolerance: 0.01,
		OddHourStart:       2,
		OddHourEnd:         5,
		OddHourMinAmount:   50.0,
		NewMerchantFactor:  2.0,
		RecentDays:         7,
	}
}

// Detector scans a debit-transaction window for outliers. Like the recurring
// detector it is stateless and re-entrant.
type Detector struct {
	cfg Config
}

// NewDetector creates a detector with the given thresholds.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Detect runs all anomaly rules over the window and returns every flag. The
// rules are independent and additive; one transaction may trigger several.
// Callers cap surfaced alerts themselves, typically with TopAlerts.
func (d *Detector) Detect(_ context.Context, txns []model.Transaction, now time.Time, mode ScanMode) []model.AnomalyRecord {
	debits := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.IsDebit() {
			debits = append(debits, txn)
		}
	}
	sort.Slice(debits, func(i, j int) bool {
		if !debits[i].Date.Equal(debits[j].Date) {
			return debits[i].Date.Before(debits[j].Date)
		}
		return debits[i].ID < debits[j].ID
	})

	var records []model.AnomalyRecord
	records = append(records, d.magnitudeAnomalies(debits, mode)...)
	records = append(records, d.duplicateAnomalies(debits)...)
	records = append(records, d.oddHourAnomalies(debits)...)
	records = append(records, d.newMerchantAnomalies(debits, now)...)

	slog.Debug("anomaly scan complete",
		"mode", mode,
		"window_size", len(debits),
		"flags", len(records))

	return records
}

// magnitudeAnomalies flags transactions far above the rest of the window.
// Each transaction is compared against a leave-one-out baseline so a single
// huge outlier cannot inflate its own threshold. At least MinBaseline points
// are needed for the statistics to mean anything.
func (d *Detector) magnitudeAnomalies(debits []model.Transaction, mode ScanMode) []model.AnomalyRecord {
	if len(debits) < d.cfg.MinBaseline {
		return nil
	}

	var sum, sumSq float64
	for _, txn := range debits {
		sum += txn.Amount
		sumSq += txn.Amount * txn.Amount
	}

	sigma := d.cfg.RoutineSigma
	if mode == ModeReport {
		sigma = d.cfg.ReportSigma
	}

	var records []model.AnomalyRecord
	for _, txn := range debits {
		n := float64(len(debits) - 1)
		baselineMean := (sum - txn.Amount) / n
		variance := (sumSq-txn.Amount*txn.Amount)/n - baselineMean*baselineMean
		if variance < 0 {
			variance = 0 // float rounding on flat baselines
		}
		baselineStd := math.Sqrt(variance)
		threshold := baselineMean + sigma*baselineStd

		if txn.Amount <= threshold || txn.Amount <= d.cfg.MagnitudeFloor {
			continue
		}
		severity := model.SeverityMedium
		if txn.Amount > threshold*d.cfg.HighSeverityFactor {
			severity = model.SeverityHigh
		}
		records = append(records, model.AnomalyRecord{
			Transaction: txn,
			Kind:        model.AnomalyLargeTransaction,
			Severity:    severity,
			Stats: model.AnomalyStats{
				BaselineMean:   baselineMean,
				BaselineStdDev: baselineStd,
				Threshold:      threshold,
			},
		})
	}
	return records
}

// duplicateAnomalies flags same-merchant, same-amount pairs within the
// duplicate window. The later transaction of each pair is the one flagged.
func (d *Detector) duplicateAnomalies(debits []model.Transaction) []model.AnomalyRecord {
	var records []model.AnomalyRecord
	for i := 1; i < len(debits); i++ {
		for j := i - 1; j >= 0; j-- {
			gap := debits[i].Date.Sub(debits[j].Date)
			if gap > d.cfg.DuplicateWindow {
				break
			}
			if debits[i].NormalizedPayee() == "" {
				continue
			}
			if debits[i].NormalizedPayee() != debits[j].NormalizedPayee() {
				continue
			}
			if math.Abs(debits[i].Amount-debits[j].Amount) > d.cfg.DuplicateTolerance {
				continue
			}
			records = append(records, model.AnomalyRecord{
				Transaction: debits[i],
				Kind:        model.AnomalyDuplicate,
				Severity:    model.SeverityMedium,
				Stats: model.AnomalyStats{
					RelatedTxnID: debits[j].ID,
				},
			})
			break
		}
	}
	return records
}

// oddHourAnomalies flags meaningful charges made in the overnight window.
func (d *Detector) oddHourAnomalies(debits []model.Transaction) []model.AnomalyRecord {
	var records []model.AnomalyRecord
	for _, txn := range debits {
		hour := txn.Date.Hour()
		if hour < d.cfg.OddHourStart || hour >= d.cfg.OddHourEnd {
			continue
		}
		if txn.Amount <= d.cfg.OddHourMinAmount {
			continue
		}
		records = append(records, model.AnomalyRecord{
			Transaction: txn,
			Kind:        model.AnomalyOddHour,
			Severity:    model.SeverityLow,
			Stats: model.AnomalyStats{
				Threshold: d.cfg.OddHourMinAmount,
			},
		})
	}
	return records
}

// newMerchantAnomalies flags large first-time charges: the merchant appears
// nowhere in the trailing history (everything before the recent slice) and
// the amount exceeds NewMerchantFactor times the baseline mean.
func (d *Detector) newMerchantAnomalies(debits []model.Transaction, now time.Time) []model.AnomalyRecord {
	recentCutoff := now.AddDate(0, 0, -d.cfg.RecentDays)

	known := make(map[string]bool)
	var trailing []float64
	for _, txn := range debits {
		if txn.Date.Before(recentCutoff) {
			if payee := txn.NormalizedPayee(); payee != "" {
				known[payee] = true
			}
			trailing = append(trailing, txn.Amount)
		}
	}
	if len(trailing) < d.cfg.MinBaseline {
		return nil
	}
	baselineMean, _ := meanStdDev(trailing)
	threshold := baselineMean * d.cfg.NewMerchantFactor

	var records []model.AnomalyRecord
	for _, txn := range debits {
		if txn.Date.Before(recentCutoff) {
			continue
		}
		payee := txn.NormalizedPayee()
		if payee == "" || known[payee] {
			continue
		}
		if txn.Amount <= threshold {
			continue
		}
		records = append(records, model.AnomalyRecord{
			Transaction: txn,
			Kind:        model.AnomalyNewMerchantLargeAmount,
			Severity:    model.SeverityMedium,
			Stats: model.AnomalyStats{
				BaselineMean: baselineMean,
				Threshold:    threshold,
			},
		})
	}
	return records
}

// TopAlerts returns the k most pressing records, ranked by severity then
// recency. The full record list is untouched.
func TopAlerts(records []model.AnomalyRecord, k int) []model.AnomalyRecord {
	ranked := make([]model.AnomalyRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := severityRank(ranked[i].Severity), severityRank(ranked[j].Severity)
		if si != sj {
			return si < sj
		}
		return ranked[i].Transaction.Date.After(ranked[j].Transaction.Date)
	})

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

func severityRank(s model.AnomalySeverity) int {
	switch s {
	case model.SeverityHigh:
		return 0
	case model.SeverityMedium:
		return 1
	default:
		return 2
	}
}

// meanStdDev returns the mean and population standard deviation.
func meanStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))

	if len(values) < 2 {
		return m, 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return m, math.Sqrt(sumSq / float64(len(values)))
}
