package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"gridnav/astar"
	"gridnav/config"
	"gridnav/constants"
	"gridnav/logging"
	"gridnav/observability"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitAborted = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdout io.Writer, stderr io.Writer, getenv func(string) string) int {
	constants.InitFrom(getenv)

	fs := flag.NewFlagSet("pathfinder", flag.ContinueOnError)
	fs.SetOutput(stderr)
	scenarioPath := fs.String("scenario", "", "scenario JSON file; the built-in L-wall grid when empty")
	settingsPath := fs.String("settings", "", "settings JSON file")
	color := fs.Bool("color", false, "color the printed map")
	maxExpansions := fs.Int("max-expansions", 0, "abort after expanding this many nodes (0 = unbounded)")
	timeout := fs.Duration("timeout", 0, "abort after this long (0 = unbounded)")
	metricsOut := fs.String("metrics-out", "", "write Prometheus metrics to this textfile")
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	settings := config.NewSettings()
	if *settingsPath != "" {
		loaded, err := config.LoadSettings(*settingsPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitInvalid
		}
		settings = loaded
	}
	if err := settings.ApplyEnv(getenv); err != nil {
		fmt.Fprintln(stderr, err)
		return exitInvalid
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "color":
			settings.Render.Color = *color
		case "max-expansions":
			settings.Search.MaxExpansions = *maxExpansions
		case "timeout":
			settings.Search.Timeout = config.Duration(*timeout)
		case "metrics-out":
			settings.Metrics.Textfile = *metricsOut
		}
	})

	logger, err := logging.New(settings.Log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitInvalid
	}
	defer logger.Sync()

	ctx := context.Background()
	shutdown, err := observability.InitTracing(ctx, settings.Tracing, stderr, logger)
	if err != nil {
		logger.Error("init tracing", zap.Error(err))
		return exitInvalid
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, logger)

	scenario := config.DefaultScenario()
	if *scenarioPath != "" {
		if scenario, err = config.LoadScenario(*scenarioPath); err != nil {
			logger.Error("load scenario", zap.Error(err))
			return exitInvalid
		}
	}
	grid, start, goal, err := scenario.Build()
	if err != nil {
		logger.Error("build scenario", zap.Error(err))
		return exitInvalid
	}

	collector, err := observability.NewSearchCollector(prometheus.NewRegistry())
	if err != nil {
		logger.Error("register metrics", zap.Error(err))
		return exitInvalid
	}

	began := time.Now()
	result, err := astar.Search(ctx, grid, start, goal, settings.SearchOptions(logger, collector)...)
	code := exitOK
	switch {
	case errors.Is(err, astar.ErrInvalidInput):
		logger.Error("invalid search input", zap.Error(err))
		fmt.Fprintf(stdout, "Invalid input: %v\n", err)
		code = exitInvalid
	case errors.Is(err, astar.ErrSearchAborted):
		logger.Warn("search aborted", zap.Error(err), zap.Int("expanded", result.Expanded))
		fmt.Fprintf(stdout, "Search aborted: %v\n", err)
		code = exitAborted
	case err != nil:
		logger.Error("search failed", zap.Error(err))
		code = exitInvalid
	case result.Found:
		logger.Info("path found",
			zap.Int("steps", len(result.Path)-1),
			zap.Float64("cost", result.Cost),
			zap.Int("expanded", result.Expanded),
			zap.Duration("elapsed", time.Since(began)))
		if err := astar.PrintMap(stdout, grid, result.Path, settings.Render.Color); err != nil {
			logger.Error("print map", zap.Error(err))
		}
		fmt.Fprintf(stdout, "Path found: %s\n", astar.FormatPath(result.Path))
	default:
		logger.Info("no path found", zap.Int("expanded", result.Expanded))
		fmt.Fprintln(stdout, "No path found")
	}

	if settings.Metrics.Textfile != "" {
		if err := collector.WriteTextfile(settings.Metrics.Textfile); err != nil {
			logger.Error("write metrics", zap.Error(err))
		}
	}
	return code
}
