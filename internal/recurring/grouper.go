package recurring

import (
	"sort"

	"github.com/finchwatch/finch/internal/model"
)

// Series is a date-ordered list of transactions hypothesized to represent one
// recurring charge. Series are ephemeral; nothing here is persisted.
type Series []model.Transaction

// group partitions debit transactions into candidate series using greedy
// first-match clustering: each transaction is compared against the first
// member of every existing series and attached to the first match, otherwise
// it starts a new series. O(n*k), fine for one user's half-year history.
//
// First match wins deliberately; candidates are not ranked by best
// similarity. Confidence thresholds were tuned against this approximation.
func group(txns []model.Transaction, matcher *Matcher, cfg DomainConfig) []Series {
	candidates := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if !txn.IsDebit() || txn.Amount < cfg.MinAmount {
			continue
		}
		candidates = append(candidates, txn)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].Date.Equal(candidates[j].Date) {
			return candidates[i].Date.Before(candidates[j].Date)
		}
		return candidates[i].ID < candidates[j].ID
	})

	var series []Series
	for _, txn := range candidates {
		attached := false
		for i := range series {
			if matcher.SameSeries(series[i][0], txn) {
				series[i] = append(series[i], txn)
				attached = true
				break
			}
		}
		if !attached {
			series = append(series, Series{txn})
		}
	}

	kept := series[:0]
	for _, s := range series {
		if len(s) >= cfg.MinOccurrences {
			kept = append(kept, s)
		}
	}
	return kept
}
