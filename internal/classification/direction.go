// Package classification infers transaction direction from description
// patterns when the source data does not carry an explicit sign.
package classification

import (
	"fmt"
	"regexp"

	"github.com/finchwatch/finch/internal/model"
)

// Pattern maps a description regex to a transaction direction.
type Pattern struct {
	Name      string
	Regex     string
	Direction model.TransactionDirection
	Priority  int // Higher priority patterns are checked first
}

type compiledPattern struct {
	regex *regexp.Regexp
	Pattern
}

// DirectionDetector classifies transaction direction from the description.
type DirectionDetector struct {
	patterns []compiledPattern
}

// NewDirectionDetector compiles the given patterns. Patterns are evaluated in
// descending priority order; the first match wins.
func NewDirectionDetector(patterns []Pattern) (*DirectionDetector, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		regex, err := regexp.Compile("(?i)" + p.Regex)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %s: %w", p.Name, err)
		}
		compiled = append(compiled, compiledPattern{regex: regex, Pattern: p})
	}

	// Stable insertion sort by priority, highest first
	for i := 1; i < len(compiled); i++ {
		for j := i; j > 0 && compiled[j].Priority > compiled[j-1].Priority; j-- {
			compiled[j], compiled[j-1] = compiled[j-1], compiled[j]
		}
	}

	return &DirectionDetector{patterns: compiled}, nil
}

// NewDefaultDirectionDetector creates a detector with the built-in patterns.
func NewDefaultDirectionDetector() *DirectionDetector {
	d, err := NewDirectionDetector(defaultPatterns)
	if err != nil {
		// Built-in patterns are compile-time constants; a failure here is a bug.
		panic(err)
	}
	return d
}

// Classify returns the direction suggested by the transaction's description.
// Unmatched descriptions default to debit, the overwhelmingly common case in
// purchase history.
func (d *DirectionDetector) Classify(txn model.Transaction) model.TransactionDirection {
	name := txn.Payee()
	for _, p := range d.patterns {
		if p.regex.MatchString(name) {
			return p.Direction
		}
	}
	return model.DirectionDebit
}

// defaultPatterns cover the common credit-side descriptions seen in bank
// exports. Everything else is treated as a debit.
var defaultPatterns = []Pattern{
	{Name: "payroll", Regex: `\b(payroll|direct dep|dir dep|salary)\b`, Direction: model.DirectionCredit, Priority: 100},
	{Name: "deposit", Regex: `\bdeposit\b`, Direction: model.DirectionCredit, Priority: 90},
	{Name: "refund", Regex: `\b(refund|reversal|chargeback)\b`, Direction: model.DirectionCredit, Priority: 80},
	{Name: "interest", Regex: `\binterest (paid|payment|earned)\b`, Direction: model.DirectionCredit, Priority: 70},
	{Name: "cashback", Regex: `\b(cash ?back|rewards? credit)\b`, Direction: model.DirectionCredit, Priority: 60},
}
