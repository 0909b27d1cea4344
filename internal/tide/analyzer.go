// Package tide locates the high tide nearest to a reference instant.
package tide

import (
	"time"

	"github.com/lox/tidelaunch/internal/models"
)

// HighTides holds the closest high tide at or before a reference instant
// and the closest one after it.
type HighTides struct {
	Past      time.Time
	HasPast   bool
	Future    time.Time
	HasFuture bool
}

// FindHighTides scans preds once. A high tide exactly at now counts as past.
// Ties keep the first record found. Low tides are ignored.
func FindHighTides(preds []models.Prediction, now time.Time) HighTides {
	var h HighTides
	for _, p := range preds {
		if !p.IsHigh() {
			continue
		}
		if !p.Time.After(now) {
			if !h.HasPast || p.Time.After(h.Past) {
				h.Past, h.HasPast = p.Time, true
			}
		} else {
			if !h.HasFuture || p.Time.Before(h.Future) {
				h.Future, h.HasFuture = p.Time, true
			}
		}
	}
	return h
}

// Closest picks whichever candidate is nearer to now, preferring the past
// one when both are equally distant.
func (h HighTides) Closest(now time.Time) (time.Time, bool) {
	switch {
	case h.HasPast && h.HasFuture:
		if now.Sub(h.Past) <= h.Future.Sub(now) {
			return h.Past, true
		}
		return h.Future, true
	case h.HasPast:
		return h.Past, true
	case h.HasFuture:
		return h.Future, true
	default:
		return time.Time{}, false
	}
}

// RoundToHour rounds t to the nearest hour in its own location, half up:
// minute 30 or later moves forward one hour.
func RoundToHour(t time.Time) time.Time {
	if t.Minute() >= 30 {
		t = t.Add(time.Hour)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}
