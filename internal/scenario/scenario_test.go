package scenario

import (
	"slices"
	"testing"

	"sandsim/internal/material"
	"sandsim/internal/sims/sand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() sand.Config {
	cfg := sand.DefaultConfig()
	cfg.Width = 96
	cfg.Height = 64
	cfg.Seed = 7
	return cfg
}

func TestBuiltinsRegistered(t *testing.T) {
	names := Names()
	for _, want := range []string{"dunes", "empty", "hourglass", "reservoir", "volcano"} {
		assert.Contains(t, names, want)
	}
	assert.True(t, slices.IsSorted(names))
}

func TestInstallUnknown(t *testing.T) {
	w := sand.New(8, 8)
	err := Install(w, "atlantis")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknown)

	_, err = New(testConfig(), "atlantis")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestScenariosPaintExpectedMaterials(t *testing.T) {
	cases := map[string][]material.ID{
		"hourglass": {material.Sand, material.Stone},
		"dunes":     {material.Sand, material.Stone, material.Water},
		"volcano":   {material.Lava, material.Stone, material.Wood},
		"reservoir": {material.Water, material.Oil, material.Gunpowder, material.Wood},
	}
	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			w, err := New(testConfig(), name)
			require.NoError(t, err)
			census := w.Census()
			for _, id := range ids {
				assert.Positive(t, census[id], "expected some %v", id)
			}
		})
	}

	w, err := New(testConfig(), "empty")
	require.NoError(t, err)
	assert.Zero(t, w.Census().Total())
}

func TestScenariosDeterministicPerSeed(t *testing.T) {
	for _, name := range Names() {
		a, err := New(testConfig(), name)
		require.NoError(t, err)
		b, err := New(testConfig(), name)
		require.NoError(t, err)
		for i := 0; i < 30; i++ {
			a.Step()
			b.Step()
		}
		assert.Equal(t, a.Pixels(), b.Pixels(), name)
	}
}

func TestResetRepaintsScenario(t *testing.T) {
	w, err := New(testConfig(), "hourglass")
	require.NoError(t, err)
	initial := slices.Clone(w.Pixels())

	for i := 0; i < 50; i++ {
		w.Step()
	}
	w.Reset(0)

	assert.Equal(t, initial, w.Pixels())
}

func TestDunesVaryWithSeed(t *testing.T) {
	cfg := testConfig()
	a, err := New(cfg, "dunes")
	require.NoError(t, err)
	cfg.Seed = 8
	b, err := New(cfg, "dunes")
	require.NoError(t, err)
	assert.NotEqual(t, a.Pixels(), b.Pixels())
}
