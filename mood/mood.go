// Package mood derives dashboard numbers from stored dream records.
// Everything here is pure, callers pass the records and the clock
package mood

import (
	"math"
	"time"

	"dreamcatcher/dream-api/model"
)

func sameDay(millis int64, day time.Time) bool {
	t := time.UnixMilli(millis).In(day.Location())
	return t.Year() == day.Year() && t.YearDay() == day.YearDay()
}

// dayFloor truncates t to midnight in its own location
func dayFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TopForDay returns the label with the largest summed score across
// the given calendar day's dreams, together with its normalized share
// of the day's total. ok is false when no dream falls on that day or
// none carries mood scores. Ties go to the label encountered first in
// input order
func TopForDay(dreams []model.Dream, day time.Time) (label string, share float64, ok bool) {
	sums := make(map[string]float64)
	var order []string
	var total float64

	for _, d := range dreams {
		if !sameDay(d.CreatedAt, day) {
			continue
		}

		for _, m := range d.Mood {
			if _, seen := sums[m.Label]; !seen {
				order = append(order, m.Label)
			}

			sums[m.Label] += m.Score
			total += m.Score
		}
	}

	if total == 0 {
		return "", 0, false
	}

	best := math.Inf(-1)
	for _, l := range order {
		if sums[l] > best {
			best = sums[l]
			label = l
		}
	}

	return label, best / total, true
}

// TopForToday is TopForDay against the current calendar day
func TopForToday(dreams []model.Dream) (string, float64, bool) {
	return TopForDay(dreams, time.Now())
}

// Aggregate sums mood scores over the trailing days calendar days
// (inclusive of the day containing now) and normalizes them so the
// returned fractions sum to 1. The map is empty when nothing
// qualifies
func Aggregate(dreams []model.Dream, days int, now time.Time) map[string]float64 {
	out := make(map[string]float64)
	if days <= 0 {
		return out
	}

	windowStart := dayFloor(now).AddDate(0, 0, -(days - 1))
	windowEnd := dayFloor(now).AddDate(0, 0, 1)

	var total float64

	for _, d := range dreams {
		t := time.UnixMilli(d.CreatedAt).In(now.Location())
		if t.Before(windowStart) || !t.Before(windowEnd) {
			continue
		}

		for _, m := range d.Mood {
			out[m.Label] += m.Score
			total += m.Score
		}
	}

	if total == 0 {
		return map[string]float64{}
	}

	for l := range out {
		out[l] /= total
	}

	return out
}

// Percent formats a fraction for display: a percentage truncated to
// one decimal place
func Percent(f float64) float64 {
	return math.Trunc(f*1000) / 10
}
