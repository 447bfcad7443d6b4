// Package telemetry aggregates particle engine counters into windowed stats
// for structured logging and CSV export. It is an optional observer: the
// simulation never depends on it.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated engine statistics for one time window.
type WindowStats struct {
	WindowEndFrame int64   `csv:"window_end"`
	SimTimeSec     float64 `csv:"sim_time"`

	// Counts at window end
	ActiveParticles int `csv:"active"`
	MaxParticles    int `csv:"max"`
	PoolSize        int `csv:"pool_size"`

	// Events during window
	Spawned   int `csv:"spawned"`
	Destroyed int `csv:"destroyed"`

	// Pool behavior (cumulative)
	PoolHits       uint64  `csv:"pool_hits"`
	PoolMisses     uint64  `csv:"pool_misses"`
	PoolEfficiency float64 `csv:"pool_efficiency"`

	// Particle field distribution (sampled at window end)
	SizeMean  float64 `csv:"size_mean"`
	SizeStd   float64 `csv:"size_std"`
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`

	SpawnAccumulator float64 `csv:"spawn_accumulator"`
}

// ComputeDistribution fills mean/std pairs from sampled values.
func ComputeDistribution(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}
	return mean, std
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("active", s.ActiveParticles),
		slog.Int("max", s.MaxParticles),
		slog.Int("pool_size", s.PoolSize),
		slog.Int("spawned", s.Spawned),
		slog.Int("destroyed", s.Destroyed),
		slog.Uint64("pool_hits", s.PoolHits),
		slog.Uint64("pool_misses", s.PoolMisses),
		slog.Float64("pool_efficiency", s.PoolEfficiency),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("size_std", s.SizeStd),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("spawn_accumulator", s.SpawnAccumulator),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"active", s.ActiveParticles,
		"max", s.MaxParticles,
		"pool_size", s.PoolSize,
		"spawned", s.Spawned,
		"destroyed", s.Destroyed,
		"pool_hits", s.PoolHits,
		"pool_misses", s.PoolMisses,
		"pool_efficiency", s.PoolEfficiency,
		"size_mean", s.SizeMean,
		"size_std", s.SizeStd,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"spawn_accumulator", s.SpawnAccumulator,
	)
}
