package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every tidelaunch collector. It is separate from the default
// registry so the textfile only carries run metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
	StatusMalformed   = "malformed"

	OutcomeLaunched     = "launched"
	OutcomeSkipped      = "skipped"
	OutcomeLaunchFailed = "launch_failed"
	OutcomeDryRun       = "dry_run"
)

var (
	TideAPICallsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tidelaunch_tide_api_calls_total",
			Help: "Total NOAA CO-OPS tide prediction API calls",
		},
		[]string{"station", "status"},
	)

	TideAPILatency = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tidelaunch_tide_api_latency_seconds",
			Help:    "Tide prediction API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"station"},
	)

	PredictionsReceived = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "tidelaunch_predictions_received",
			Help: "Number of tide predictions parsed in the last run",
		},
	)

	SamplingIntervalSeconds = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "tidelaunch_sampling_interval_seconds",
			Help: "Sampling interval selected in the last run",
		},
	)

	SamplingMode = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tidelaunch_sampling_mode",
			Help: "Sampling mode selected in the last run (1 for the active mode)",
		},
		[]string{"mode"},
	)

	RunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tidelaunch_runs_total",
			Help: "Runs by outcome",
		},
		[]string{"outcome"},
	)

	LastRunTimestamp = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "tidelaunch_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		},
	)
)

// SetMode marks mode as the active sampling mode and clears the others.
func SetMode(active string, all ...string) {
	for _, m := range all {
		v := 0.0
		if m == active {
			v = 1
		}
		SamplingMode.WithLabelValues(m).Set(v)
	}
}

// WriteTextfile stamps the run time and writes the registry in the
// Prometheus text format for the node_exporter textfile collector.
func WriteTextfile(path string, at time.Time) error {
	LastRunTimestamp.Set(float64(at.Unix()))
	return prometheus.WriteToTextfile(path, Registry)
}
