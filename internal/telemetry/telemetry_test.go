package telemetry

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"sandsim/internal/material"
	"sandsim/internal/sims/sand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureCountsMaterials(t *testing.T) {
	w := sand.New(8, 8)
	w.Reset(3)
	w.Set(0, 0, material.Sand)
	w.Set(1, 0, material.Sand)
	w.Set(2, 0, material.Water)
	w.Step()

	s := Capture(w, "custom", 3, 1500*time.Microsecond)
	assert.Equal(t, "custom", s.Scenario)
	assert.Equal(t, int64(3), s.Seed)
	assert.Equal(t, uint64(1), s.Tick)
	assert.Equal(t, int64(1500), s.TickUS)
	assert.Equal(t, 3, s.Occupied)
	assert.Equal(t, 2, s.Sand)
	assert.Equal(t, 1, s.Water)
	assert.Greater(t, s.SimTime, 0.0)
}

func TestRecorderWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	require.NoError(t, rec.Write())
	assert.Zero(t, buf.Len(), "empty batch writes nothing")

	first := []Sample{{Scenario: "a", Tick: 1, Occupied: 5}, {Scenario: "a", Tick: 2, Occupied: 6}}
	second := Sample{Scenario: "b", Tick: 1, Occupied: 7, Sand: 7}
	require.NoError(t, rec.Write(first...))
	require.NoError(t, rec.Write(second))
	assert.Equal(t, 3, rec.Rows())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "scenario,seed,tick"))
	headers := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "scenario,") {
			headers++
		}
	}
	assert.Equal(t, 1, headers)

	got, err := ReadSamples(&buf)
	require.NoError(t, err)
	assert.Equal(t, append(first, second), got)
}

func TestSummarize(t *testing.T) {
	samples := []Sample{
		{Occupied: 3, TickUS: 30},
		{Occupied: 1, TickUS: 10},
		{Occupied: 4, TickUS: 40},
		{Occupied: 2, TickUS: 20},
	}
	s := Summarize(samples)

	assert.Equal(t, 4, s.Samples)
	assert.InDelta(t, 2.5, s.OccupiedMean, 1e-9)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.OccupiedStd, 1e-9)
	assert.Equal(t, 1.0, s.OccupiedMin)
	assert.Equal(t, 4.0, s.OccupiedMax)
	assert.InDelta(t, 25, s.TickMeanUS, 1e-9)
	assert.Equal(t, 20.0, s.TickP50US)
	assert.Equal(t, 40.0, s.TickP90US)
	assert.Equal(t, int64(30), samples[0].TickUS, "input must not be reordered")
}

func TestSummarizeDegenerate(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	one := Summarize([]Sample{{Occupied: 9, TickUS: 5}})
	assert.Equal(t, 9.0, one.OccupiedMean)
	assert.Zero(t, one.OccupiedStd)
}

func TestSummaryLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("run", "summary", Summarize([]Sample{{Occupied: 2, TickUS: 7}, {Occupied: 4, TickUS: 9}}))

	out := buf.String()
	assert.Contains(t, out, "summary.samples=2")
	assert.Contains(t, out, "summary.occupied_mean=3")
	assert.Contains(t, out, "summary.tick_p90_us=9")
}
