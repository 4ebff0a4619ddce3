// Package resample aggregates daily OHLCV bars into coarser resolutions.
package resample

import (
	"sort"
	"time"

	"LiquidityMonitor/internal/model"
)

// Resample aggregates a daily bar series to the requested resolution.
// Daily is an order-preserving defensive copy. Weekly buckets end on Friday
// (a Saturday or Sunday bar rolls into the next Friday's bucket); monthly
// buckets end on the last calendar day of the month. Within a bucket:
// open = first bar, high = max, low = min, close = last bar, volume = sum.
// Buckets with no contributing bars are never emitted. The input slice is
// never mutated; weekly/monthly work on a sorted copy, so out-of-order input
// from upstream fetch merges still buckets correctly.
func Resample(daily []model.Bar, res model.Resolution) []model.Bar {
	switch res {
	case model.Weekly:
		return aggregate(daily, weekEnd)
	case model.Monthly:
		return aggregate(daily, monthEnd)
	default:
		out := make([]model.Bar, len(daily))
		copy(out, daily)
		return out
	}
}

// weekEnd returns midnight of the Friday on or after d.
func weekEnd(d time.Time) time.Time {
	days := (int(time.Friday) - int(d.Weekday()) + 7) % 7
	d = d.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// monthEnd returns midnight of the last calendar day of d's month.
func monthEnd(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location())
}

func aggregate(daily []model.Bar, bucketOf func(time.Time) time.Time) []model.Bar {
	if len(daily) == 0 {
		return nil
	}

	sorted := make([]model.Bar, len(daily))
	copy(sorted, daily)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	var out []model.Bar
	var bucket model.Bar
	var started bool

	for _, b := range sorted {
		key := bucketOf(b.Date)
		if !started || !key.Equal(bucket.Date) {
			if started {
				out = append(out, bucket)
			}
			bucket = model.Bar{Date: key, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
			started = true
			continue
		}
		if b.High > bucket.High {
			bucket.High = b.High
		}
		if b.Low < bucket.Low {
			bucket.Low = b.Low
		}
		bucket.Close = b.Close
		bucket.Volume += b.Volume
	}
	out = append(out, bucket)
	return out
}
