package recurring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchwatch/finch/internal/model"
)

func debitOn(t *testing.T, merchant string, amount float64, date string) model.Transaction {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return model.Transaction{
		ID:           fmt.Sprintf("%s-%s", merchant, date),
		Date:         d,
		Name:         merchant,
		MerchantName: merchant,
		Direction:    model.DirectionDebit,
		Amount:       amount,
	}
}

func TestGroup(t *testing.T) {
	cfg := DefaultSubscriptionConfig()
	matcher := NewMatcher(cfg)

	t.Run("partitions by merchant", func(t *testing.T) {
		txns := []model.Transaction{
			debitOn(t, "Netflix", 15.99, "2025-01-15"),
			debitOn(t, "Spotify", 9.99, "2025-01-20"),
			debitOn(t, "Netflix", 15.99, "2025-02-14"),
			debitOn(t, "Spotify", 9.99, "2025-02-19"),
			debitOn(t, "Netflix", 15.99, "2025-03-16"),
		}

		series := group(txns, matcher, cfg)
		require.Len(t, series, 2)

		byName := map[string]int{}
		for _, s := range series {
			byName[s[0].MerchantName] = len(s)
		}
		assert.Equal(t, 3, byName["Netflix"])
		assert.Equal(t, 2, byName["Spotify"])
	})

	t.Run("series are date ordered", func(t *testing.T) {
		txns := []model.Transaction{
			debitOn(t, "Netflix", 15.99, "2025-03-16"),
			debitOn(t, "Netflix", 15.99, "2025-01-15"),
			debitOn(t, "Netflix", 15.99, "2025-02-14"),
		}

		series := group(txns, matcher, cfg)
		require.Len(t, series, 1)
		for i := 1; i < len(series[0]); i++ {
			assert.True(t, series[0][i].Date.After(series[0][i-1].Date))
		}
	})

	t.Run("drops series below minimum size", func(t *testing.T) {
		txns := []model.Transaction{
			debitOn(t, "One Off Shop", 42.00, "2025-02-01"),
			debitOn(t, "Netflix", 15.99, "2025-01-15"),
			debitOn(t, "Netflix", 15.99, "2025-02-14"),
		}

		series := group(txns, matcher, cfg)
		require.Len(t, series, 1)
		assert.Equal(t, "Netflix", series[0][0].MerchantName)
	})

	t.Run("ignores credits and noise-floor amounts", func(t *testing.T) {
		billCfg := DefaultBillConfig()
		billMatcher := NewMatcher(billCfg)

		refund := debitOn(t, "PG&E", 118.00, "2025-02-10")
		refund.Direction = model.DirectionCredit

		txns := []model.Transaction{
			debitOn(t, "PG&E", 118.00, "2025-01-05"),
			refund,
			debitOn(t, "PG&E", 118.00, "2025-02-04"),
			debitOn(t, "PG&E", 118.00, "2025-03-06"),
			debitOn(t, "Tiny Vendor", 2.50, "2025-01-10"),
			debitOn(t, "Tiny Vendor", 2.50, "2025-02-09"),
			debitOn(t, "Tiny Vendor", 2.50, "2025-03-11"),
		}

		series := group(txns, billMatcher, billCfg)
		require.Len(t, series, 1)
		assert.Equal(t, "PG&E", series[0][0].MerchantName)
		assert.Len(t, series[0], 3)
	})

	t.Run("first match wins over later similar series", func(t *testing.T) {
		// "prime video" could plausibly fit an "amazon prime" series too;
		// it attaches to whichever series came first in list order.
		txns := []model.Transaction{
			debitOn(t, "prime video", 8.99, "2025-01-03"),
			debitOn(t, "amazon prime video", 8.99, "2025-02-02"),
			debitOn(t, "prime video", 8.99, "2025-03-04"),
		}

		series := group(txns, matcher, cfg)
		require.Len(t, series, 1)
		assert.Equal(t, "prime video", series[0][0].MerchantName)
		assert.Len(t, series[0], 3)
	})
}
