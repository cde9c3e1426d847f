package telemetry

import (
	"log/slog"
	"math"
	"time"
)

// Phase names for one compositor frame.
const (
	PhaseReconcile  = "reconcile"
	PhaseBackground = "background"
	PhaseUpdate     = "update"
	PhaseSort       = "sort"
	PhaseDraw       = "draw"
)

// Phases lists the frame phases in execution order.
var Phases = []string{PhaseReconcile, PhaseBackground, PhaseUpdate, PhaseSort, PhaseDraw}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timing over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Wall time between presented frames
	lastPresent time.Time
	presentGap  time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to summarise (e.g., 120 for 2 seconds at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.lastPhase = ""

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordPresent records the time a frame reached the screen.
func (p *PerfCollector) RecordPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentGap = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// FrameTimes returns the frame durations in the window in microseconds.
func (p *PerfCollector) FrameTimes() []float64 {
	out := make([]float64, p.sampleCount)
	for i := 0; i < p.sampleCount; i++ {
		out[i] = float64(p.samples[i].FrameDuration) / float64(time.Microsecond)
	}
	return out
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Frames int

	// Frame work time, microseconds
	Frame Summary

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame time
	PhasePct map[string]float64

	// Presentation rate (graphics mode)
	PresentGap time.Duration
	FPS        float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.presentGap > 0 {
		fps = float64(time.Second) / float64(p.presentGap)
	}

	stats := PerfStats{
		Frames:     p.sampleCount,
		PhaseAvg:   make(map[string]time.Duration),
		PhasePct:   make(map[string]float64),
		PresentGap: p.presentGap,
		FPS:        fps,
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		stats.PhaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			stats.PhasePct[phase] = float64(stats.PhaseAvg[phase]) / float64(avg) * 100
		}
	}
	stats.Frame = Summarize(p.FrameTimes())

	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"frames", s.Frames,
		"mean_frame_us", int64(s.Frame.Mean),
		"p95_frame_us", int64(s.Frame.P95),
		"max_frame_us", int64(s.Frame.Max),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", math.Round(pct*10)/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Any("frame_us", s.Frame),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int64   `csv:"window_end"`
	MeanFrameUS   float64 `csv:"mean_frame_us"`
	StdFrameUS    float64 `csv:"std_frame_us"`
	P50FrameUS    float64 `csv:"p50_frame_us"`
	P95FrameUS    float64 `csv:"p95_frame_us"`
	MaxFrameUS    float64 `csv:"max_frame_us"`
	FPS           float64 `csv:"fps"`
	ReconcilePct  float64 `csv:"reconcile_pct"`
	BackgroundPct float64 `csv:"background_pct"`
	UpdatePct     float64 `csv:"update_pct"`
	SortPct       float64 `csv:"sort_pct"`
	DrawPct       float64 `csv:"draw_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		MeanFrameUS:   s.Frame.Mean,
		StdFrameUS:    s.Frame.StdDev,
		P50FrameUS:    s.Frame.P50,
		P95FrameUS:    s.Frame.P95,
		MaxFrameUS:    s.Frame.Max,
		FPS:           s.FPS,
		ReconcilePct:  s.PhasePct[PhaseReconcile],
		BackgroundPct: s.PhasePct[PhaseBackground],
		UpdatePct:     s.PhasePct[PhaseUpdate],
		SortPct:       s.PhasePct[PhaseSort],
		DrawPct:       s.PhasePct[PhaseDraw],
	}
}
