package model

// AnomalyKind identifies which rule flagged a transaction.
type AnomalyKind string

// Anomaly kind constants.
const (
	AnomalyLargeTransaction       AnomalyKind = "large_transaction"
	AnomalyDuplicate              AnomalyKind = "duplicate"
	AnomalyOddHour                AnomalyKind = "odd_hour"
	AnomalyNewMerchantLargeAmount AnomalyKind = "new_merchant_large_amount"
)

// AnomalySeverity ranks how unusual a flagged transaction is.
type AnomalySeverity string

// Anomaly severity constants.
const (
	SeverityHigh   AnomalySeverity = "high"
	SeverityMedium AnomalySeverity = "medium"
	SeverityLow    AnomalySeverity = "low"
)

// AnomalyStats carries the supporting statistics behind a flag. Which fields
// are populated depends on the anomaly kind.
type AnomalyStats struct {
	BaselineMean   float64 // Mean of the comparison window
	BaselineStdDev float64 // Population standard deviation of the window
	Threshold      float64 // Value the transaction exceeded
	RelatedTxnID   string  // Set for duplicate anomalies
}

// AnomalyRecord describes one flagged transaction. Rules are independent and
// additive, so a single transaction may appear in more than one record.
type AnomalyRecord struct {
	Transaction Transaction
	Kind        AnomalyKind
	Severity    AnomalySeverity
	Stats       AnomalyStats
}
