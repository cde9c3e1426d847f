package telemetry

// Collector accumulates events within time windows and produces FrameStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartFrame int64
	windowStartTime  float64
	started          bool

	// Event counters for current window
	spawned       int
	dropped       int
	jumps         int
	removals      int
	regenerations int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulated seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordSpawn records lobsters entering the roster.
func (c *Collector) RecordSpawn(n int) {
	c.spawned += n
}

// RecordDrop records lobsters leaving the roster.
func (c *Collector) RecordDrop(n int) {
	c.dropped += n
}

// RecordJump records a click-triggered jump.
func (c *Collector) RecordJump() {
	c.jumps++
}

// RecordRemoval records a double-click removal.
func (c *Collector) RecordRemoval() {
	c.removals++
}

// RecordRegeneration records a scene decoration rebuild.
func (c *Collector) RecordRegeneration() {
	c.regenerations++
}

// ShouldFlush returns true once the window has covered its duration.
// The first call anchors the window at simTime.
func (c *Collector) ShouldFlush(frame int64, simTime float64) bool {
	if !c.started {
		c.started = true
		c.windowStartFrame = frame
		c.windowStartTime = simTime
		return false
	}
	return simTime-c.windowStartTime >= c.windowDurationSec
}

// Flush produces a FrameStats and resets counters for the next window.
// speeds are the roster's walking speeds and frameTimesUS the recent
// frame work times, both used for distribution summaries.
func (c *Collector) Flush(frame int64, simTime float64, lobsters, airborne int, speeds, frameTimesUS []float64) FrameStats {
	speed := Summarize(speeds)
	frames := Summarize(frameTimesUS)

	stats := FrameStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		SimTimeSec:       simTime,
		Lobsters:         lobsters,
		Airborne:         airborne,
		Spawned:          c.spawned,
		Dropped:          c.dropped,
		Jumps:            c.jumps,
		Removals:         c.removals,
		Regenerations:    c.regenerations,
		SpeedMean:        speed.Mean,
		SpeedStd:         speed.StdDev,
		FrameMeanUS:      frames.Mean,
		FrameP95US:       frames.P95,
	}

	c.spawned = 0
	c.dropped = 0
	c.jumps = 0
	c.removals = 0
	c.regenerations = 0
	c.windowStartFrame = frame
	c.windowStartTime = simTime

	return stats
}
