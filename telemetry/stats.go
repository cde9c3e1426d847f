package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a sample distribution.
type Summary struct {
	Mean   float64
	StdDev float64
	P50    float64
	P95    float64
	Max    float64
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.StdDev),
		slog.Float64("p50", s.P50),
		slog.Float64("p95", s.P95),
		slog.Float64("max", s.Max),
	)
}

// Summarize computes mean, sample standard deviation and quantiles.
// The input is not modified. Empty input yields a zero Summary.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Mean: stat.Mean(sorted, nil),
		P50:  Percentile(sorted, 0.50),
		P95:  Percentile(sorted, 0.95),
		Max:  sorted[n-1],
	}
	if n > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}

// Percentile returns the empirical p-quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// FrameStats holds aggregated statistics for a time window.
type FrameStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Roster at window end
	Lobsters int `csv:"lobsters"`
	Airborne int `csv:"airborne"`

	// Events during window
	Spawned       int `csv:"spawned"`
	Dropped       int `csv:"dropped"`
	Jumps         int `csv:"jumps"`
	Removals      int `csv:"removals"`
	Regenerations int `csv:"regenerations"`

	// Speed distribution at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`

	// Frame work time, microseconds
	FrameMeanUS float64 `csv:"frame_mean_us"`
	FrameP95US  float64 `csv:"frame_p95_us"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("lobsters", s.Lobsters),
		slog.Int("airborne", s.Airborne),
		slog.Int("spawned", s.Spawned),
		slog.Int("dropped", s.Dropped),
		slog.Int("jumps", s.Jumps),
		slog.Int("removals", s.Removals),
		slog.Int("regenerations", s.Regenerations),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("frame_mean_us", s.FrameMeanUS),
		slog.Float64("frame_p95_us", s.FrameP95US),
	)
}

// LogStats logs the window stats using slog.
func (s FrameStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"lobsters", s.Lobsters,
		"airborne", s.Airborne,
		"spawned", s.Spawned,
		"dropped", s.Dropped,
		"jumps", s.Jumps,
		"removals", s.Removals,
	)
}
