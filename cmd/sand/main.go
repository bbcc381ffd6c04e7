//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"sandsim/internal/app"
	"sandsim/internal/material"
	"sandsim/internal/scenario"
	"sandsim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := app.NewConfig()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		log.Fatal(err)
	}

	world, err := scenario.New(cfg.Sand(), cfg.World.Scenario)
	if err != nil {
		log.Fatal(err)
	}

	id, ok := material.Parse(cfg.Display.Material)
	if !ok {
		log.Fatalf("unknown material %q", cfg.Display.Material)
	}
	brush := ui.NewBrush(id, cfg.Display.BrushRadius)

	game := app.New(world, brush, cfg.Display.Scale, cfg.Display.HUDWidth, cfg.World.Seed)
	size := world.Size()

	ebiten.SetWindowTitle("sandsim: " + cfg.World.Scenario)
	ebiten.SetTPS(cfg.Display.TPS)
	ebiten.SetWindowSize(size.W*cfg.Display.Scale+cfg.Display.HUDWidth, size.H*cfg.Display.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
