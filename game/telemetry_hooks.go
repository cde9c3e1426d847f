package game

import "log/slog"

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame, g.simTime) {
		return
	}

	speeds, airborne := g.sampleRoster()
	stats := g.collector.Flush(g.frame, g.simTime, g.Count(), airborne, speeds, g.perf.FrameTimes())
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleRoster collects walking speeds and counts airborne lobsters.
func (g *Game) sampleRoster() (speeds []float64, airborne int) {
	speeds = make([]float64, 0, len(g.order))
	for _, id := range g.order {
		l := g.roster[id]
		speeds = append(speeds, l.Speed)
		if l.Airborne() {
			airborne++
		}
	}
	return speeds, airborne
}

// recordRemoval counts a removal requested through the router.
func (g *Game) recordRemoval() {
	g.collector.RecordRemoval()
}
