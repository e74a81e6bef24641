package domain

import (
	"time"
)

// marineTimeLayout is the hourly timestamp format returned with timezone=UTC.
const marineTimeLayout = "2006-01-02T15:04"

// SummarizeOceanographic picks the hourly row closest to the current time and
// exposes it as the scalar readings, keeping the series for the hourly table.
// A series without rows yields a summary with no readings.
func SummarizeOceanographic(series MarineSeries) OceanographicSummary {
	summary := OceanographicSummary{Readings: make(map[string]*float64, len(MarineMetrics))}
	if !series.HasData() {
		return summary
	}

	row := currentRow(series.Time, clock.Now().UTC())
	for _, m := range MarineMetrics {
		summary.Readings[m.Key] = series.Value(m.Key, row)
	}
	if ts := series.TimeAt(row); ts != "" {
		summary.ObservedAt = ts + " UTC"
	}
	summary.Series = &series
	return summary
}

// currentRow returns the index of the timestamp nearest to now. Unparseable
// timestamps are skipped; if none parse the first row is used.
func currentRow(times []string, now time.Time) int {
	best := 0
	var bestDiff time.Duration = -1
	for i, ts := range times {
		t, err := time.Parse(marineTimeLayout, ts)
		if err != nil {
			continue
		}
		diff := now.Sub(t)
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}
