package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandsim/internal/core"
	"sandsim/internal/material"
)

func TestNewRejectsNonPositiveDimensions(t *testing.T) {
	assert.Panics(t, func() { New(0, 4) })
	assert.Panics(t, func() { New(4, -1) })
}

func TestInBounds(t *testing.T) {
	g := New(4, 3)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {4, 3}, {-5, -5}} {
		assert.False(t, g.InBounds(c[0], c[1]), "%v", c)
		assert.False(t, g.IsEmpty(c[0], c[1]), "out of bounds is never empty: %v", c)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.True(t, g.InBounds(x, y))
			assert.True(t, g.IsEmpty(x, y))
		}
	}
}

func TestIndexRowMajor(t *testing.T) {
	g := New(5, 4)
	assert.Equal(t, 0, g.Index(0, 0))
	assert.Equal(t, 7, g.Index(2, 1))
	x, y := g.Coords(7)
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
	assert.Len(t, g.Pixels(), 4*5*4)
}

func TestWriteMirrorsColor(t *testing.T) {
	g := New(3, 3)
	rng := core.NewRNG(1)
	p := material.Create(material.Acid, rng)
	idx := g.Index(1, 2)
	g.Write(idx, p)

	assert.Equal(t, p, g.Read(1, 2))
	assert.Equal(t, p.Color, g.ColorAt(idx))
	assert.False(t, g.IsEmpty(1, 2))
	assert.Equal(t, []uint8{p.Color.R, p.Color.G, p.Color.B, 200}, g.Pixels()[idx*4:idx*4+4])
}

func TestReadReturnsSnapshot(t *testing.T) {
	g := New(2, 2)
	g.Write(0, material.Create(material.Sand, core.NewRNG(2)))
	snap := g.Read(0, 0)
	snap.Velocity.Y = 9
	assert.Zero(t, g.Read(0, 0).Velocity.Y)
}

func TestReadOutOfBoundsPanics(t *testing.T) {
	g := New(3, 3)
	g.Write(g.Index(2, 0), material.Create(material.Stone, core.NewRNG(4)))

	// (-1, 1) and (3, 0) would alias (2, 0) and (0, 1) without the check.
	for _, c := range [][2]int{{-1, 1}, {3, 0}, {0, 3}, {0, -1}} {
		assert.Panics(t, func() { g.Read(c[0], c[1]) }, "Read(%d, %d)", c[0], c[1])
		assert.Panics(t, func() { g.Index(c[0], c[1]) }, "Index(%d, %d)", c[0], c[1])
		assert.False(t, g.IsEmpty(c[0], c[1]))
	}
}

func TestResetIsIdempotent(t *testing.T) {
	g := New(4, 4)
	rng := core.NewRNG(8)
	for i := 0; i < g.Len(); i += 3 {
		g.Write(i, material.Create(material.Water, rng))
	}
	g.Reset()
	onceParticles := append([]material.Particle(nil), g.particles...)
	oncePixels := append([]uint8(nil), g.Pixels()...)
	g.Reset()

	assert.Equal(t, onceParticles, g.particles)
	assert.Equal(t, oncePixels, g.Pixels())
	for i := 0; i < g.Len(); i++ {
		require.Equal(t, material.Particle{}, g.At(i))
		require.Equal(t, material.Color{}, g.ColorAt(i))
	}
}

func TestClearUpdatedPreservesColors(t *testing.T) {
	g := New(2, 1)
	p := material.Create(material.Stone, core.NewRNG(3))
	p.Updated = true
	g.Write(1, p)
	g.ClearUpdated()

	assert.False(t, g.At(1).Updated)
	assert.Equal(t, p.Color, g.ColorAt(1))
}

func TestCount(t *testing.T) {
	g := New(3, 1)
	rng := core.NewRNG(5)
	g.Write(0, material.Create(material.Salt, rng))
	g.Write(2, material.Create(material.Salt, rng))
	assert.Equal(t, 2, g.Count(material.Salt))
	assert.Equal(t, 1, g.Count(material.Empty))
	assert.Equal(t, 2, g.Occupied())
}
