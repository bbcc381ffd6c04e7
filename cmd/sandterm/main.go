// Command sandterm runs the sand simulator inside a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"sandsim/internal/app"
	"sandsim/internal/material"
	"sandsim/internal/scenario"
	"sandsim/internal/term"
	"sandsim/internal/ui"
)

func main() {
	flags := app.NewConfig()
	flags.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, nil))
	}

	if err := run(logger, flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, flags *app.Config) error {
	cfg, err := flags.Load()
	if err != nil {
		return err
	}
	world, err := scenario.New(cfg.Sand(), cfg.World.Scenario)
	if err != nil {
		return err
	}
	id, ok := material.Parse(cfg.Display.Material)
	if !ok {
		return fmt.Errorf("unknown material %q", cfg.Display.Material)
	}

	viewer, err := term.New(world, ui.NewBrush(id, cfg.Display.BrushRadius), cfg.Display.TPS, cfg.World.Seed, logger)
	if err != nil {
		return err
	}
	logger.Info("starting", "scenario", cfg.World.Scenario, "w", cfg.World.Width, "h", cfg.World.Height, "seed", cfg.World.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return viewer.Run(ctx)
}
