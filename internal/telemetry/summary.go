package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a set of samples.
type Summary struct {
	Samples int

	OccupiedMean float64
	OccupiedStd  float64
	OccupiedMin  float64
	OccupiedMax  float64

	TickMeanUS float64
	TickP50US  float64
	TickP90US  float64
}

// Summarize computes occupancy and tick timing statistics over samples.
func Summarize(samples []Sample) Summary {
	s := Summary{Samples: len(samples)}
	if len(samples) == 0 {
		return s
	}

	occupied := make([]float64, len(samples))
	ticks := make([]float64, len(samples))
	for i, sm := range samples {
		occupied[i] = float64(sm.Occupied)
		ticks[i] = float64(sm.TickUS)
	}

	s.OccupiedMean, s.OccupiedStd = stat.MeanStdDev(occupied, nil)
	if len(samples) < 2 {
		s.OccupiedStd = 0
	}
	s.OccupiedMin = floats.Min(occupied)
	s.OccupiedMax = floats.Max(occupied)

	sort.Float64s(ticks)
	s.TickMeanUS = stat.Mean(ticks, nil)
	s.TickP50US = stat.Quantile(0.5, stat.Empirical, ticks, nil)
	s.TickP90US = stat.Quantile(0.9, stat.Empirical, ticks, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("samples", s.Samples),
		slog.Float64("occupied_mean", s.OccupiedMean),
		slog.Float64("occupied_std", s.OccupiedStd),
		slog.Float64("occupied_min", s.OccupiedMin),
		slog.Float64("occupied_max", s.OccupiedMax),
		slog.Float64("tick_mean_us", s.TickMeanUS),
		slog.Float64("tick_p50_us", s.TickP50US),
		slog.Float64("tick_p90_us", s.TickP90US),
	)
}
