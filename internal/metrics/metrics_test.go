package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSetMode(t *testing.T) {
	SetMode("high_tide", "default", "high_tide")

	if got := testutil.ToFloat64(SamplingMode.WithLabelValues("high_tide")); got != 1 {
		t.Errorf("high_tide = %v, want 1", got)
	}
	if got := testutil.ToFloat64(SamplingMode.WithLabelValues("default")); got != 0 {
		t.Errorf("default = %v, want 0", got)
	}

	SetMode("default", "default", "high_tide")

	if got := testutil.ToFloat64(SamplingMode.WithLabelValues("high_tide")); got != 0 {
		t.Errorf("high_tide after switch = %v, want 0", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	RunsTotal.WithLabelValues(OutcomeLaunched).Inc()
	SamplingIntervalSeconds.Set(1500)

	path := filepath.Join(t.TempDir(), "tidelaunch.prom")
	at := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

	if err := WriteTextfile(path, at); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	if got := testutil.ToFloat64(LastRunTimestamp); got != float64(at.Unix()) {
		t.Errorf("last run = %v, want %v", got, float64(at.Unix()))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`tidelaunch_runs_total{outcome="launched"}`,
		"tidelaunch_sampling_interval_seconds 1500",
		"tidelaunch_last_run_timestamp_seconds ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q\n%s", want, out)
		}
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "tidelaunch.prom")
	if err := WriteTextfile(path, time.Now()); err == nil {
		t.Error("expected error for unwritable path")
	}
}
