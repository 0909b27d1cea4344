// Package sampling decides the logger's sampling interval from the nearest
// high tide.
package sampling

import (
	"time"

	"github.com/lox/tidelaunch/internal/tide"
)

const (
	// HighTideSeconds is the interval used around high tide (25 minutes).
	HighTideSeconds = 1500

	// WindowBefore and WindowAfter bound high-tide mode around the rounded
	// high tide, inclusive.
	WindowBefore = 2 * time.Hour
	WindowAfter  = 3 * time.Hour

	// guardMinute is the wall-clock minute on which only high-tide runs launch.
	guardMinute = 30
)

// Mode is the sampling regime selected for a run.
type Mode int

const (
	ModeDefault Mode = iota
	ModeHighTide
)

// Modes lists every mode, for exporting per-mode metrics.
var Modes = []Mode{ModeDefault, ModeHighTide}

func (m Mode) String() string {
	switch m {
	case ModeHighTide:
		return "high_tide"
	default:
		return "default"
	}
}

// Decision is the outcome of interval selection.
type Decision struct {
	Mode    Mode
	Seconds int
	// RoundedTide is the rounded high tide the decision was based on; zero
	// when no high tide was identified.
	RoundedTide time.Time
}

// Select returns high-tide mode when a high tide was found and now lies
// within [round(tide)-WindowBefore, round(tide)+WindowAfter], otherwise the
// default mode with defaultSeconds.
func Select(highTide time.Time, found bool, now time.Time, defaultSeconds int) Decision {
	d := Decision{Mode: ModeDefault, Seconds: defaultSeconds}
	if !found {
		return d
	}

	rounded := tide.RoundToHour(highTide)
	d.RoundedTide = rounded

	start := rounded.Add(-WindowBefore)
	end := rounded.Add(WindowAfter)
	if !now.Before(start) && !now.After(end) {
		d.Mode = ModeHighTide
		d.Seconds = HighTideSeconds
	}
	return d
}

// SkipAt reports whether a run at now should end without launching. Runs on
// minute 30 would duplicate the top-of-hour run unless sampling at the
// high-tide interval. now should be in the zone of the clock that invokes
// the run.
func (d Decision) SkipAt(now time.Time) bool {
	return now.Minute() == guardMinute && d.Mode != ModeHighTide
}
