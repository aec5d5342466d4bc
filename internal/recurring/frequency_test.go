package recurring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchwatch/finch/internal/model"
)

func TestClassifyFrequency(t *testing.T) {
	subWindows := DefaultSubscriptionConfig().FrequencyWindows
	billWindows := DefaultBillConfig().FrequencyWindows

	tests := []struct {
		name    string
		gaps    []float64
		windows []FrequencyWindow
		want    model.Frequency
	}{
		{name: "monthly", gaps: []float64{30, 30, 31}, windows: subWindows, want: model.FrequencyMonthly},
		{name: "weekly", gaps: []float64{7, 7, 8}, windows: subWindows, want: model.FrequencyWeekly},
		{name: "biweekly", gaps: []float64{14, 14, 13}, windows: subWindows, want: model.FrequencyBiweekly},
		{name: "quarterly", gaps: []float64{90, 91}, windows: subWindows, want: model.FrequencyQuarterly},
		{name: "annual", gaps: []float64{365}, windows: subWindows, want: model.FrequencyAnnual},
		{name: "between windows is none", gaps: []float64{45}, windows: subWindows, want: model.FrequencyNone},
		{name: "no gaps is none", gaps: nil, windows: subWindows, want: model.FrequencyNone},
		{name: "mean of 32 misses subscription monthly window", gaps: []float64{32, 32}, windows: subWindows, want: model.FrequencyNone},
		{name: "mean of 32 fits bill monthly window", gaps: []float64{32, 32}, windows: billWindows, want: model.FrequencyMonthly},
		{name: "semiannual is bills only", gaps: []float64{182, 183}, windows: billWindows, want: model.FrequencySemiannual},
		{name: "semiannual unavailable for subscriptions", gaps: []float64{182, 183}, windows: subWindows, want: model.FrequencyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyFrequency(tt.gaps, tt.windows))
		})
	}
}

func TestDayGaps(t *testing.T) {
	s := Series{
		debitOn(t, "Netflix", 15.99, "2025-01-01"),
		debitOn(t, "Netflix", 15.99, "2025-01-31"),
		debitOn(t, "Netflix", 15.99, "2025-03-02"),
	}

	assert.Equal(t, []float64{30, 30}, dayGaps(s))
	assert.Nil(t, dayGaps(s[:1]))
	assert.Nil(t, dayGaps(nil))
}

func TestPredictNext(t *testing.T) {
	last, err := time.Parse("2006-01-02", "2025-06-15")
	require.NoError(t, err)

	tests := []struct {
		freq model.Frequency
		days int
	}{
		{model.FrequencyWeekly, 7},
		{model.FrequencyBiweekly, 14},
		{model.FrequencyMonthly, 30},
		{model.FrequencyQuarterly, 90},
		{model.FrequencySemiannual, 180},
		{model.FrequencyAnnual, 365},
	}

	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			next := predictNext(last, tt.freq)
			assert.Equal(t, tt.days, int(next.Sub(last).Hours()/24))
		})
	}
}
