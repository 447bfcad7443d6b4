package telemetry

import (
	"math"

	"github.com/pthm-cable/aura/particles"
)

// Collector accumulates per-frame engine snapshots into fixed windows. Call
// Record once per frame after Update; a completed window is returned when
// the window duration elapses.
type Collector struct {
	windowSec float64

	frame       int64
	simTime     float64
	windowStart float64

	createdAtWindowStart   uint64
	destroyedAtWindowStart uint64

	// Scratch buffers reused per flush.
	sizes  []float64
	speeds []float64
}

// NewCollector creates a collector with the given window size in seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 1
	}
	return &Collector{windowSec: windowSec}
}

// Record folds one frame into the current window. Returns the completed
// window stats and true when the window just closed.
func (c *Collector) Record(sys *particles.System, dtMs float64) (WindowStats, bool) {
	c.frame++
	if dtMs > 0 {
		c.simTime += dtMs / 1000
	}

	if c.simTime-c.windowStart < c.windowSec {
		return WindowStats{}, false
	}

	st := sys.Stats()

	c.sizes = c.sizes[:0]
	c.speeds = c.speeds[:0]
	sys.Visit(func(p *particles.Particle) {
		c.sizes = append(c.sizes, float64(p.Size))
		c.speeds = append(c.speeds, math.Hypot(float64(p.VX), float64(p.VY)))
	})

	out := WindowStats{
		WindowEndFrame:   c.frame,
		SimTimeSec:       c.simTime,
		ActiveParticles:  st.ActiveParticles,
		MaxParticles:     st.MaxParticles,
		PoolSize:         st.PoolSize,
		Spawned:          int(st.TotalCreated - c.createdAtWindowStart),
		Destroyed:        int(st.TotalDestroyed - c.destroyedAtWindowStart),
		PoolHits:         st.PoolHits,
		PoolMisses:       st.PoolMisses,
		PoolEfficiency:   st.PoolEfficiency,
		SpawnAccumulator: float64(st.SpawnAccumulator),
	}
	out.SizeMean, out.SizeStd = ComputeDistribution(c.sizes)
	out.SpeedMean, out.SpeedStd = ComputeDistribution(c.speeds)

	c.windowStart = c.simTime
	c.createdAtWindowStart = st.TotalCreated
	c.destroyedAtWindowStart = st.TotalDestroyed

	return out, true
}
