package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/tidelaunch/internal/launcher"
	"github.com/lox/tidelaunch/internal/metrics"
	"github.com/lox/tidelaunch/internal/models"
	"github.com/lox/tidelaunch/internal/noaa"
	"github.com/lox/tidelaunch/internal/sampling"
	"github.com/lox/tidelaunch/internal/tide"
)

// TideSource supplies high/low predictions for a station.
type TideSource interface {
	Predictions(ctx context.Context, stationID string, begin time.Time) ([]models.Prediction, error)
}

// Launcher starts the sensor logger for a sampling interval.
type Launcher interface {
	Executable() string
	ConfigPath(seconds int) string
	Launch(ctx context.Context, seconds int) error
}

// Result describes what a run decided and did.
type Result struct {
	Decision sampling.Decision
	Outcome  string // one of the metrics.Outcome* values
	Err      error  // launch error, if any
}

type Scheduler struct {
	tides          TideSource
	launcher       Launcher
	station        string
	defaultSeconds int
	loc            *time.Location
	now            func() time.Time
	dryRun         bool
	log            zerolog.Logger
}

func NewScheduler(tides TideSource, l Launcher, station string, defaultSeconds int, loc *time.Location, log zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		tides:          tides,
		launcher:       l,
		station:        station,
		defaultSeconds: defaultSeconds,
		loc:            loc,
		now:            time.Now,
		log:            log.With().Str("component", "scheduler").Logger(),
	}
}

// SetClock replaces the time source used for the reference instant.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// SetDryRun makes RunOnce stop after the decision without launching.
func (s *Scheduler) SetDryRun(dryRun bool) {
	s.dryRun = dryRun
}

// RunOnce fetches predictions, picks the sampling interval and launches the
// logger. Every failure degrades to a logged message; nothing is returned
// as an error.
func (s *Scheduler) RunOnce(ctx context.Context) Result {
	// The guard follows the host clock the timer fires on; tide analysis
	// uses the station zone.
	hostNow := s.now()
	now := hostNow.In(s.loc)

	decision := s.decide(ctx, now)
	s.log.Info().
		Int("seconds", decision.Seconds).
		Stringer("mode", decision.Mode).
		Msg("sampling time set")

	metrics.SamplingIntervalSeconds.Set(float64(decision.Seconds))
	modes := make([]string, len(sampling.Modes))
	for i, m := range sampling.Modes {
		modes[i] = m.String()
	}
	metrics.SetMode(decision.Mode.String(), modes...)

	res := Result{Decision: decision}

	if decision.SkipAt(hostNow) {
		s.log.Info().Msg("running on :30 but not in high tide situation, skipping launch")
		res.Outcome = metrics.OutcomeSkipped
		metrics.RunsTotal.WithLabelValues(res.Outcome).Inc()
		return res
	}

	configPath := s.launcher.ConfigPath(decision.Seconds)

	if s.dryRun {
		s.log.Info().Str("config", configPath).Msg("dry run, not launching logger")
		res.Outcome = metrics.OutcomeDryRun
		metrics.RunsTotal.WithLabelValues(res.Outcome).Inc()
		return res
	}

	s.log.Info().
		Str("executable", s.launcher.Executable()).
		Str("config", configPath).
		Msg("launching logger")
	if err := s.launcher.Launch(ctx, decision.Seconds); err != nil {
		if errors.Is(err, launcher.ErrNotFound) {
			s.log.Error().Err(err).Msg("logger program not found")
		} else {
			s.log.Error().Err(err).Msg("error running logger")
		}
		res.Outcome = metrics.OutcomeLaunchFailed
		res.Err = err
		metrics.RunsTotal.WithLabelValues(res.Outcome).Inc()
		return res
	}

	res.Outcome = metrics.OutcomeLaunched
	metrics.RunsTotal.WithLabelValues(res.Outcome).Inc()
	return res
}

func (s *Scheduler) decide(ctx context.Context, now time.Time) sampling.Decision {
	preds, err := s.tides.Predictions(ctx, s.station, noaa.BeginDate(now))
	if err != nil {
		s.log.Error().Err(err).Str("station", s.station).Msg("error fetching tide data")
		s.log.Warn().Msg("falling back to default sampling time")
		metrics.PredictionsReceived.Set(0)
		return sampling.Select(time.Time{}, false, now, s.defaultSeconds)
	}
	metrics.PredictionsReceived.Set(float64(len(preds)))

	highs := tide.FindHighTides(preds, now)
	s.logCandidate("closest past high tide", highs.Past, highs.HasPast)
	s.logCandidate("closest future high tide", highs.Future, highs.HasFuture)

	closest, ok := highs.Closest(now)
	d := sampling.Select(closest, ok, now, s.defaultSeconds)
	if ok {
		s.log.Debug().
			Time("high_tide", closest).
			Time("rounded", d.RoundedTide).
			Msg("closest high tide")
	}
	return d
}

func (s *Scheduler) logCandidate(msg string, t time.Time, ok bool) {
	ev := s.log.Info()
	if ok {
		ev = ev.Str("at", t.Format("2006-01-02 15:04"))
	} else {
		ev = ev.Str("at", "none")
	}
	ev.Msg(msg)
}
