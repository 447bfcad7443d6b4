package particles

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/aura/config"
)

// Options configures a System. Zero fields take defaults.
type Options struct {
	MaxParticles int // initial soft cap; the hard cap is fixed at 2x this
	PoolCapacity int // freelist bound (0 = MaxParticles)

	SurfaceW, SurfaceH float32
	GlowRadius         float32
	EdgeMargin         float32
	AccumulatorCap     float32

	BaseSize   float32
	SizeJitter float32
	MinLife    float32 // seconds
	MaxLife    float32 // seconds

	Physics Tunables

	Seed int64
}

// OptionsFromConfig builds Options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxParticles:   cfg.Particles.MaxParticles,
		PoolCapacity:   cfg.Derived.PoolCap,
		SurfaceW:       cfg.Derived.ScreenW32,
		SurfaceH:       cfg.Derived.ScreenH32,
		GlowRadius:     float32(cfg.Spawn.GlowRadius),
		EdgeMargin:     float32(cfg.Spawn.EdgeMargin),
		AccumulatorCap: float32(cfg.Spawn.AccumulatorCap),
		BaseSize:       float32(cfg.Particles.BaseSize),
		SizeJitter:     float32(cfg.Particles.SizeJitter),
		MinLife:        float32(cfg.Particles.MinLifeSec),
		MaxLife:        float32(cfg.Particles.MaxLifeSec),
		Physics: Tunables{
			VelocityDrag:   float32(cfg.Physics.VelocityDrag),
			RiseAccel:      float32(cfg.Physics.RiseAccel),
			FallAccel:      float32(cfg.Physics.FallAccel),
			RadialAccel:    float32(cfg.Physics.RadialAccel),
			OrbitSpeed:     float32(cfg.Physics.OrbitSpeed),
			OrbitStiffness: float32(cfg.Physics.OrbitStiffness),
			JitterAccel:    float32(cfg.Physics.JitterAccel),
		},
	}
}

// gestureCmd is a queued behavior-override command. Commands are applied in
// order, as one batch, at the start of the next Update so the update loop
// remains the only writer of particle state.
type gestureCmd struct {
	behavior Behavior
	active   bool
}

// System owns every particle it creates; the pool and the active list
// partition that ownership. Single-threaded: one Update call per frame, the
// render pass reads between updates.
type System struct {
	pool   *Pool
	active []*Particle

	maxParticles int // soft cap, mutable
	absoluteMax  int // hard cap, fixed at construction

	spawnAccumulator float32
	accumulatorCap   float32

	contain containment

	palette        []Color
	undertone      string
	currentEmotion string

	surfaceW, surfaceH float32
	glowRadius         float32
	edgeMargin         float32

	baseSize, sizeJitter float32
	minLife, maxLife     float32

	tun Tunables

	gestureQueue []gestureCmd

	totalCreated   uint64
	totalDestroyed uint64

	time float32
	rng  *rand.Rand
}

// NewSystem creates a particle system. The absolute cap (and the backing
// arena) is fixed at twice the initial soft cap.
func NewSystem(opts Options) *System {
	if opts.MaxParticles < 1 {
		opts.MaxParticles = 150
	}
	if opts.PoolCapacity <= 0 {
		opts.PoolCapacity = opts.MaxParticles
	}
	if opts.SurfaceW <= 0 {
		opts.SurfaceW = 800
	}
	if opts.SurfaceH <= 0 {
		opts.SurfaceH = 600
	}
	if opts.GlowRadius <= 0 {
		opts.GlowRadius = 60
	}
	if opts.EdgeMargin < 0 {
		opts.EdgeMargin = 0
	}
	if opts.AccumulatorCap <= 0 {
		opts.AccumulatorCap = 3
	}
	if opts.BaseSize <= 0 {
		opts.BaseSize = 3
	}
	if opts.SizeJitter < 0 {
		opts.SizeJitter = 0
	}
	if opts.MinLife <= 0 {
		opts.MinLife = 1.5
	}
	if opts.MaxLife < opts.MinLife {
		opts.MaxLife = opts.MinLife + 2.5
	}
	opts.Physics.fillDefaults()
	if opts.Seed == 0 {
		opts.Seed = 1
	}

	absoluteMax := opts.MaxParticles * 2

	return &System{
		pool:           NewPool(absoluteMax, opts.PoolCapacity),
		active:         make([]*Particle, 0, opts.MaxParticles),
		maxParticles:   opts.MaxParticles,
		absoluteMax:    absoluteMax,
		accumulatorCap: opts.AccumulatorCap,
		surfaceW:       opts.SurfaceW,
		surfaceH:       opts.SurfaceH,
		glowRadius:     opts.GlowRadius,
		edgeMargin:     opts.EdgeMargin,
		baseSize:       opts.BaseSize,
		sizeJitter:     opts.SizeJitter,
		minLife:        opts.MinLife,
		maxLife:        opts.MaxLife,
		tun:            opts.Physics,
		rng:            rand.New(rand.NewSource(opts.Seed)),
	}
}

// GestureState carries the optional per-frame gesture inputs to Update.
type GestureState struct {
	AttractorX, AttractorY float32 // moving center for meditation_swirl
	HasAttractor           bool
	Progress               float32 // 0..1 progress of the driving gesture
}

// Update advances every active particle by dtMs milliseconds: age/life, the
// behavior rule, then containment. Dead particles are removed in a single
// stable compaction pass and recycled to the pool.
func (s *System) Update(dtMs, originX, originY float32) {
	s.UpdateWithGesture(dtMs, originX, originY, GestureState{})
}

// UpdateWithGesture is Update with gesture inputs. Queued behavior-override
// commands are applied first, as one batch, even when dt is unusable.
func (s *System) UpdateWithGesture(dtMs, originX, originY float32, g GestureState) {
	s.applyGestureQueue()

	if !(dtMs > 0) || !finite(dtMs) {
		return
	}
	dt := dtMs / 1000
	s.time += dt

	st := s.computeStepState(dt, originX, originY)
	st.attractorX = g.AttractorX
	st.attractorY = g.AttractorY
	st.hasAttractor = g.HasAttractor

	alive := 0
	for _, p := range s.active {
		p.Life -= dt
		if p.Life <= 0 {
			s.recycle(p)
			continue
		}

		p.Age = clamp01(1 - p.Life/p.MaxLife)
		s.stepBehavior(p, &st)

		// Fade in fast, fade out over the last third of life.
		fadeIn := clamp01(p.Age / 0.1)
		fadeOut := clamp01((1 - p.Age) / 0.3)
		p.Opacity = fadeIn
		if fadeOut < fadeIn {
			p.Opacity = fadeOut
		}
		p.Size = p.BaseSize * (1 - 0.25*p.Age)

		s.active[alive] = p
		alive++
	}
	s.active = s.active[:alive]
}

// applyGestureQueue drains queued override commands onto all active particles.
func (s *System) applyGestureQueue() {
	if len(s.gestureQueue) == 0 {
		return
	}
	for _, cmd := range s.gestureQueue {
		for _, p := range s.active {
			if cmd.active {
				p.GestureBehavior = cmd.behavior
				p.HasGesture = true
			} else if p.HasGesture && p.GestureBehavior == cmd.behavior {
				p.HasGesture = false
			}
		}
	}
	s.gestureQueue = s.gestureQueue[:0]
}

// SetGestureBehavior queues a behavior override (enabled) or its removal
// (disabled) for every active particle. The command takes effect as a single
// batch at the start of the next Update. Unknown names are ignored.
func (s *System) SetGestureBehavior(name string, enabled bool) {
	b, ok := BehaviorFromName(name)
	if !ok {
		return
	}
	s.gestureQueue = append(s.gestureQueue, gestureCmd{behavior: b, active: enabled})
}

// SetMaxParticles adjusts the soft cap, clamped to [1, absolute cap]. When
// reducing below the active count, excess particles are trimmed back to the
// pool immediately rather than waiting for natural death.
func (s *System) SetMaxParticles(n int) {
	if n < 1 {
		n = 1
	}
	if n > s.absoluteMax {
		n = s.absoluteMax
	}
	s.maxParticles = n

	for len(s.active) > n {
		p := s.active[len(s.active)-1]
		s.active = s.active[:len(s.active)-1]
		s.recycle(p)
	}
}

// MaxParticles returns the current soft cap.
func (s *System) MaxParticles() int { return s.maxParticles }

// AbsoluteMaxParticles returns the hard cap fixed at construction.
func (s *System) AbsoluteMaxParticles() int { return s.absoluteMax }

// SetContainment enables bounds enforcement for every subsequent tick.
func (s *System) SetContainment(bounds Rect, mode ContainmentMode, restitution float32) {
	s.contain = containment{
		bounds:      bounds,
		mode:        mode,
		restitution: clamp01(restitution),
		enabled:     true,
	}
}

// ClearContainment disables bounds enforcement.
func (s *System) ClearContainment() {
	s.contain = containment{}
}

// SetPalette replaces the tint palette for newly spawned particles, applying
// the undertone saturation transform once up front.
func (s *System) SetPalette(palette []Color, saturationScale float32, undertone string) {
	if saturationScale <= 0 || !finite(saturationScale) {
		saturationScale = 1
	}
	s.palette = applySaturation(palette, saturationScale)
	s.undertone = undertone
}

// CurrentEmotion returns the emotion tag recorded by the last Spawn call.
func (s *System) CurrentEmotion() string { return s.currentEmotion }

// CurrentUndertone returns the undertone recorded by the last palette change.
func (s *System) CurrentUndertone() string { return s.undertone }

// Clear moves every active particle to the pool (bounded by pool capacity)
// and resets the spawn accumulator. Idempotent.
func (s *System) Clear() {
	for _, p := range s.active {
		s.recycle(p)
	}
	s.active = s.active[:0]
	s.spawnAccumulator = 0
}

// CleanupDead is the defensive pass: removes any particle whose life has hit
// zero outside the normal update path and trims an over-grown pool back to
// capacity.
func (s *System) CleanupDead() {
	alive := 0
	for _, p := range s.active {
		if p.Life <= 0 {
			s.recycle(p)
			continue
		}
		s.active[alive] = p
		alive++
	}
	s.active = s.active[:alive]
	s.pool.Trim()
}

// recycle returns one particle to the pool.
func (s *System) recycle(p *Particle) {
	s.pool.Release(p)
	s.totalDestroyed++
}

// Len returns the active particle count.
func (s *System) Len() int { return len(s.active) }

// Visit calls fn for each active particle in order. The callback must not
// spawn, clear, or otherwise mutate the active list.
func (s *System) Visit(fn func(p *Particle)) {
	for _, p := range s.active {
		fn(p)
	}
}

// Stats is a point-in-time snapshot, consistent with the post-update state.
type Stats struct {
	ActiveParticles  int
	MaxParticles     int
	PoolSize         int
	PoolHits         uint64
	PoolMisses       uint64
	PoolEfficiency   float64
	SpawnAccumulator float32
	TotalCreated     uint64
	TotalDestroyed   uint64
}

// Stats returns the current counters.
func (s *System) Stats() Stats {
	return Stats{
		ActiveParticles:  len(s.active),
		MaxParticles:     s.maxParticles,
		PoolSize:         s.pool.Len(),
		PoolHits:         s.pool.Hits(),
		PoolMisses:       s.pool.Misses(),
		PoolEfficiency:   s.pool.Efficiency(),
		SpawnAccumulator: s.spawnAccumulator,
		TotalCreated:     s.totalCreated,
		TotalDestroyed:   s.totalDestroyed,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (st Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("active", st.ActiveParticles),
		slog.Int("max", st.MaxParticles),
		slog.Int("pool_size", st.PoolSize),
		slog.Uint64("pool_hits", st.PoolHits),
		slog.Uint64("pool_misses", st.PoolMisses),
		slog.Float64("pool_efficiency", st.PoolEfficiency),
		slog.Float64("spawn_accumulator", float64(st.SpawnAccumulator)),
		slog.Uint64("created", st.TotalCreated),
		slog.Uint64("destroyed", st.TotalDestroyed),
	)
}
