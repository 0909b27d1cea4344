package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/lox/tidelaunch/internal/config"
	"github.com/lox/tidelaunch/internal/launcher"
	"github.com/lox/tidelaunch/internal/logging"
	"github.com/lox/tidelaunch/internal/metrics"
	"github.com/lox/tidelaunch/internal/noaa"
	"github.com/lox/tidelaunch/internal/scheduler"
)

type CLI struct {
	Config          string `short:"c" default:"config.yaml" help:"Path to the YAML config file."`
	DryRun          bool   `help:"Select the sampling interval but do not launch the logger."`
	LogLevel        string `help:"Override log.level (debug, info, warn, error)."`
	LogFormat       string `help:"Override log.format (console, json)."`
	MetricsTextfile string `help:"Write Prometheus metrics to this file when the run ends."`
	TidesURL        string `hidden:"" help:"Override tides.base_url."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("tidelaunch"),
		kong.Description("Pick the lidar logger's sampling interval from the nearest high tide and launch it."),
		kong.UsageOnError(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	run(ctx, cli, os.Stdout, time.Now)
}

func run(ctx context.Context, cli CLI, stdout io.Writer, now func() time.Time) scheduler.Result {
	cfg, cfgErr := config.Load(cli.Config)
	if cfgErr != nil {
		cfg = config.Default()
	}
	applyFlags(cfg, cli)

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, stdout)
	if err != nil {
		log, _ = logging.New("info", "console", stdout)
		log.Warn().Err(err).Msg("invalid log settings; falling back to info")
	}

	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("failed to load config; using defaults")
	} else {
		log.Info().Str("path", cli.Config).Msg("config loaded")
		if cfg.StationDefaulted {
			log.Warn().
				Str("station", cfg.Station).
				Str("fqdn_ip", cfg.FQDNIP).
				Msg("config does not set station; fqdn_ip is not used as a station id, using default station")
		}
	}

	loc := loadLocation(cfg.Tides.Timezone, log)

	tides := noaa.NewTideClient(cfg.Tides.BaseURL, loc)
	l := launcher.New(cfg.Launcher.Executable, cfg.Launcher.ConfigDir)

	s := scheduler.NewScheduler(tides, l, cfg.Station, cfg.Sampling.Time, loc, log)
	s.SetClock(now)
	s.SetDryRun(cli.DryRun)

	res := s.RunOnce(ctx)

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, now()); err != nil {
			log.Warn().Err(err).Str("path", cfg.Metrics.Textfile).Msg("write metrics textfile")
		}
	}
	return res
}

func applyFlags(cfg *config.Config, cli CLI) {
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Log.Format = cli.LogFormat
	}
	if cli.MetricsTextfile != "" {
		cfg.Metrics.Textfile = cli.MetricsTextfile
	}
	if cli.TidesURL != "" {
		cfg.Tides.BaseURL = cli.TidesURL
	}
}

func loadLocation(name string, log zerolog.Logger) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("timezone", name).Msg("could not load timezone, using local time")
		return time.Local
	}
	return loc
}
