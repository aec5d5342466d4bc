package recurring

import (
	"math"
	"strings"

	"github.com/finchwatch/finch/internal/model"
)

// Matcher decides whether two transactions plausibly belong to the same
// recurring series.
type Matcher struct {
	nameThreshold     float64
	varianceThreshold float64
}

// NewMatcher creates a matcher with the domain's similarity thresholds.
func NewMatcher(cfg DomainConfig) *Matcher {
	return &Matcher{
		nameThreshold:     cfg.NameThreshold,
		varianceThreshold: cfg.AmountVarianceThreshold,
	}
}

// SameSeries reports whether the two transactions are same-series candidates:
// their names must be similar enough and their amounts close enough.
func (m *Matcher) SameSeries(a, b model.Transaction) bool {
	if nameSimilarity(a.NormalizedPayee(), b.NormalizedPayee()) < m.nameThreshold {
		return false
	}
	return amountVariance(a.Amount, b.Amount) < m.varianceThreshold
}

// nameSimilarity scores two normalized payee names in [0, 1]. Exact match
// scores 1.0, substring containment 0.9, otherwise a token-overlap ratio
// |intersection| / max(|tokens1|, |tokens2|). An empty name never matches.
func nameSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.9
	}

	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(tokensA))
	for _, tok := range tokensA {
		seen[tok] = true
	}
	overlap := 0
	counted := make(map[string]bool, len(tokensB))
	for _, tok := range tokensB {
		if seen[tok] && !counted[tok] {
			overlap++
			counted[tok] = true
		}
	}

	return float64(overlap) / math.Max(float64(len(tokensA)), float64(len(tokensB)))
}

// amountVariance returns the relative difference between two amounts,
// |a-b| / max(|a|, |b|). Two zero amounts have zero variance.
func amountVariance(a, b float64) float64 {
	larger := math.Max(math.Abs(a), math.Abs(b))
	if larger == 0 {
		return 0
	}
	return math.Abs(a-b) / larger
}
