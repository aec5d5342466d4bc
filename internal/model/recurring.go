package model

import "time"

// Frequency is the classified billing interval of a recurring series.
type Frequency string

// Frequency constants.
const (
	FrequencyWeekly     Frequency = "weekly"
	FrequencyBiweekly   Frequency = "biweekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiannual Frequency = "semiannual"
	FrequencyAnnual     Frequency = "annual"
	FrequencyNone       Frequency = "none"
)

// CanonicalDays maps a frequency to its nominal interval in days. This is a
// coarse, non-calendar-aware estimate; downstream use is reminder scheduling,
// not billing accounting.
func (f Frequency) CanonicalDays() int {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencyMonthly:
		return 30
	case FrequencyQuarterly:
		return 90
	case FrequencySemiannual:
		return 180
	case FrequencyAnnual:
		return 365
	default:
		return 0
	}
}

// ConfidenceLevel is the tiered confidence of a detection.
type ConfidenceLevel string

// Confidence level constants.
const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// DetectionKind distinguishes the two flavors of recurring charge.
type DetectionKind string

// Detection kind constants.
const (
	DetectionSubscription DetectionKind = "subscription"
	DetectionBill         DetectionKind = "bill"
)

// DetectionResult describes one detected recurring charge. Subscription and
// bill detections share this shape.
type DetectionResult struct {
	FirstDate             time.Time
	LastDate              time.Time
	PredictedNextDate     time.Time
	Name                  string
	Payee                 string
	SuggestedCategory     string
	Kind                  DetectionKind
	Frequency             Frequency
	ConfidenceLevel       ConfidenceLevel
	Amount                float64 // Mean of series amounts
	Confidence            float64 // 0-1 fraction for subscriptions, 0-100 for bills
	AmountVariancePercent float64
	TransactionCount      int
}
