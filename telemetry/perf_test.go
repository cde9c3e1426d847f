package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseBackground)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseUpdate)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.Frames != 5 {
		t.Errorf("Frames = %d, want 5", stats.Frames)
	}
	if stats.Frame.Mean <= 0 {
		t.Error("expected positive mean frame time")
	}
	if _, ok := stats.PhaseAvg[PhaseBackground]; !ok {
		t.Error("expected background phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseUpdate]; !ok {
		t.Error("expected update phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseSort)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.Frames != 5 {
		t.Errorf("Frames = %d, want window size 5", stats.Frames)
	}
	if got := len(pc.FrameTimes()); got != 5 {
		t.Errorf("len(FrameTimes) = %d, want 5", got)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseSort)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(500 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	sortPct := stats.PhasePct[PhaseSort]
	drawPct := stats.PhasePct[PhaseDraw]

	if drawPct <= sortPct {
		t.Errorf("expected draw phase (%v%%) > sort phase (%v%%)", drawPct, sortPct)
	}

	row := stats.ToCSV(42)
	if row.WindowEnd != 42 || row.DrawPct != drawPct {
		t.Errorf("ToCSV = %+v, want window_end 42 and draw_pct %v", row, drawPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.Frame.Mean != 0 {
		t.Error("expected zero mean frame time for empty collector")
	}
	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}
	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_PresentTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordPresent()
	time.Sleep(16 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()

	if stats.PresentGap < 15*time.Millisecond {
		t.Errorf("expected present gap >= 15ms, got %v", stats.PresentGap)
	}
	if stats.FPS < 20 || stats.FPS > 70 {
		t.Errorf("expected FPS near 60 with 16ms frames, got %v", stats.FPS)
	}
}
