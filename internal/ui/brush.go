package ui

import (
	"sandsim/internal/core"
	"sandsim/internal/material"
)

const (
	minBrushRadius = 0
	maxBrushRadius = 32
)

// Brush is the painting tool state shared by the HUD, the overlay and the
// input handling of a front end.
type Brush struct {
	Material material.ID
	Radius   int
}

// NewBrush returns a brush painting id with the given radius.
func NewBrush(id material.ID, radius int) *Brush {
	b := &Brush{}
	b.Select(id)
	b.Resize(radius)
	return b
}

// Select switches the brush material. Unknown ids are ignored.
func (b *Brush) Select(id material.ID) {
	if material.Valid(id) {
		b.Material = id
	}
}

// Cycle steps through the materials in id order, wrapping around. EMPTY is
// part of the cycle and acts as the eraser.
func (b *Brush) Cycle(dir int) {
	n := int(material.Count)
	next := (int(b.Material) + dir%n + n) % n
	b.Material = material.ID(next)
}

// Resize sets the radius, clamped to the supported range.
func (b *Brush) Resize(radius int) {
	b.Radius = core.Clamp(radius, minBrushRadius, maxBrushRadius)
}

// Grow changes the radius by delta.
func (b *Brush) Grow(delta int) { b.Resize(b.Radius + delta) }

// Label names the brush material for display.
func (b *Brush) Label() string {
	if b.Material == material.Empty {
		return "eraser"
	}
	return b.Material.String()
}
