package recurring

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/finchwatch/finch/internal/model"
)

// Detector runs the full recurring-charge pipeline for one pattern domain.
// It is stateless and re-entrant: it performs no I/O, holds no mutable state,
// and concurrent invocations need no coordination.
type Detector struct {
	matcher *Matcher
	cfg     DomainConfig
}

// NewDetector creates a detector for the given domain configuration.
func NewDetector(cfg DomainConfig) *Detector {
	return &Detector{
		cfg:     cfg,
		matcher: NewMatcher(cfg),
	}
}

// NewSubscriptionDetector creates a detector tuned for subscriptions.
func NewSubscriptionDetector() *Detector {
	return NewDetector(DefaultSubscriptionConfig())
}

// NewBillDetector creates a detector tuned for bills.
func NewBillDetector() *Detector {
	return NewDetector(DefaultBillConfig())
}

// Config returns the detector's domain configuration.
func (d *Detector) Config() DomainConfig {
	return d.cfg
}

// Detect analyzes the transactions and returns every recurring charge found
// in the lookback window ending at now. Insufficient history or
// unclassifiable series simply produce fewer results, never an error.
func (d *Detector) Detect(_ context.Context, txns []model.Transaction, now time.Time) []model.DetectionResult {
	cutoff := now.AddDate(0, 0, -d.cfg.LookbackDays)
	window := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Date.Before(cutoff) || txn.Date.After(now) {
			continue
		}
		window = append(window, txn)
	}

	series := group(window, d.matcher, d.cfg)

	results := make([]model.DetectionResult, 0, len(series))
	for _, s := range series {
		if result, ok := d.assemble(s); ok {
			results = append(results, result)
		}
	}

	// Deterministic output order: strongest detections first.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].Name < results[j].Name
	})

	slog.Debug("recurring detection complete",
		"kind", d.cfg.Kind,
		"window_size", len(window),
		"candidate_series", len(series),
		"detections", len(results))

	return results
}

// assemble scores one candidate series and builds its DetectionResult. It
// returns false when the series has no classifiable frequency or, for bills,
// when the amount spread exceeds the domain's hard cap.
func (d *Detector) assemble(s Series) (model.DetectionResult, bool) {
	gaps := dayGaps(s)
	freq := classifyFrequency(gaps, d.cfg.FrequencyWindows)
	if freq == model.FrequencyNone {
		return model.DetectionResult{}, false
	}

	amounts := make([]float64, len(s))
	for i, txn := range s {
		amounts[i] = txn.Amount
	}
	variancePct := amountVariancePercent(amounts)
	if d.cfg.MaxVariancePercent > 0 && variancePct > d.cfg.MaxVariancePercent {
		return model.DetectionResult{}, false
	}

	gapSpread := stdDev(gaps)
	score := confidenceScore(len(s), variancePct, gapSpread, freq)

	confidence := score
	if d.cfg.NormalizeScore {
		confidence = score / 100
	}

	first, last := s[0], s[len(s)-1]
	payee := first.Payee()

	return model.DetectionResult{
		Name:                  deriveName(payee),
		Payee:                 payee,
		SuggestedCategory:     suggestCategory(payee, d.cfg),
		Kind:                  d.cfg.Kind,
		Amount:                mean(amounts),
		Frequency:             freq,
		Confidence:            confidence,
		ConfidenceLevel:       confidenceLevel(confidence, d.cfg),
		TransactionCount:      len(s),
		FirstDate:             first.Date,
		LastDate:              last.Date,
		PredictedNextDate:     predictNext(last.Date, freq),
		AmountVariancePercent: variancePct,
	}, true
}
