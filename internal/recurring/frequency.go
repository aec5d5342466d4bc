package recurring

import (
	"time"

	"github.com/finchwatch/finch/internal/model"
)

// dayGaps returns the consecutive day differences of a date-sorted series.
func dayGaps(s Series) []float64 {
	if len(s) < 2 {
		return nil
	}
	gaps := make([]float64, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		gaps = append(gaps, s[i].Date.Sub(s[i-1].Date).Hours()/24)
	}
	return gaps
}

// classifyFrequency maps the mean day-gap of a series into exactly one of the
// domain's tolerance windows. Only the mean drives classification; gap spread
// feeds the confidence score separately. No window means the series is not a
// recognizable recurring pattern and is dropped.
func classifyFrequency(gaps []float64, windows []FrequencyWindow) model.Frequency {
	if len(gaps) == 0 {
		return model.FrequencyNone
	}

	var sum float64
	for _, g := range gaps {
		sum += g
	}
	mean := sum / float64(len(gaps))

	for _, w := range windows {
		if mean >= w.MinDays && mean <= w.MaxDays {
			return w.Frequency
		}
	}
	return model.FrequencyNone
}

// predictNext extrapolates the next expected occurrence from the last one by
// the frequency's canonical interval. Deliberately not calendar-aware.
func predictNext(last time.Time, freq model.Frequency) time.Time {
	return last.AddDate(0, 0, freq.CanonicalDays())
}
