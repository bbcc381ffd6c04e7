// Command sand-bench runs the configured scenarios headlessly across seeds
// and writes per-tick telemetry as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"sandsim/internal/bench"
	"sandsim/internal/config"
	"sandsim/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file merged over the defaults")
	out := flag.String("out", "", "CSV output path (stdout when empty)")
	scenarios := flag.String("scenarios", "", "comma separated scenarios overriding the config")
	seeds := flag.Int("seeds", 0, "seeds per scenario (0 keeps the config value)")
	ticks := flag.Int("ticks", 0, "ticks per run (0 keeps the config value)")
	workers := flag.Int("workers", -1, "number of worker goroutines (0 means one per CPU)")
	overrides := config.Overrides{}
	flag.Var(overrides, "set", "override a world or physics parameter as key=value (repeatable)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(logger, *configPath, *out, *scenarios, *seeds, *ticks, *workers, overrides); err != nil {
		logger.Error("bench failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath, out, scenarios string, seeds, ticks, workers int, overrides config.Overrides) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Override(overrides); err != nil {
		return err
	}
	if scenarios != "" {
		cfg.Bench.Scenarios = strings.Split(scenarios, ",")
	}
	if seeds > 0 {
		cfg.Bench.Seeds = seeds
	}
	if ticks > 0 {
		cfg.Bench.Ticks = ticks
	}
	if workers >= 0 {
		cfg.Bench.Workers = workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	jobs := bench.Jobs(cfg)
	logger.Info("running bench", "jobs", len(jobs), "workers", cfg.Bench.Workers, "ticks", cfg.Bench.Ticks,
		"size", fmt.Sprintf("%dx%d", cfg.World.Width, cfg.World.Height))
	start := time.Now()
	results := bench.Run(ctx, cfg, jobs)

	dst := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		dst = f
	}
	rec := telemetry.NewRecorder(dst)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Warn("run failed", "scenario", r.Job.Scenario, "seed", r.Job.Seed, "err", r.Err)
			continue
		}
		if err := rec.Write(r.Samples...); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	grouped := bench.ByScenario(results)
	for _, name := range cfg.Bench.Scenarios {
		logger.Info("scenario summary", "scenario", name, "stats", telemetry.Summarize(grouped[name]))
	}
	logger.Info("bench finished", "rows", rec.Rows(), "failed", failed, "elapsed", time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		return fmt.Errorf("%d of %d runs failed", failed, len(jobs))
	}
	return nil
}
