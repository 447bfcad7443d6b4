package particles

import "math"

// SpawnOptions is the unified spawn request. A set Count selects explicit
// mode; otherwise Rate drives the accumulator and MinParticles tops up.
type SpawnOptions struct {
	Behavior Behavior
	Emotion  string // recorded for diagnostics; palettes arrive via Palette

	Rate    float32 // particles per second, rate mode
	DeltaMS float32 // frame delta feeding the rate accumulator

	OriginX float32
	OriginY float32

	HasCount bool
	Count    int // explicit mode: spawn exactly this many, capped

	MinParticles int // maintain-minimum top-up (0 = none)
	MaxOverride  int // temporary soft-cap override for this call (0 = none)

	ScaleFactor    float32 // glow radius scale (0 = 1)
	SizeMultiplier float32 // base size scale (0 = 1)

	Palette         []Color // tint palette for newly spawned particles
	SaturationScale float32 // undertone saturation multiplier (0 = 1)
	Undertone       string  // recorded undertone name
}

// Spawn introduces particles according to the request mode. Negative rates
// and counts are no-ops; all modes respect the soft cap and the absolute cap.
func (s *System) Spawn(opts SpawnOptions) {
	if opts.ScaleFactor <= 0 || !finite(opts.ScaleFactor) {
		opts.ScaleFactor = 1
	}
	if opts.SizeMultiplier <= 0 || !finite(opts.SizeMultiplier) {
		opts.SizeMultiplier = 1
	}
	if opts.Palette != nil {
		s.SetPalette(opts.Palette, opts.SaturationScale, opts.Undertone)
	}
	if opts.Emotion != "" {
		s.currentEmotion = opts.Emotion
	}

	softMax := s.maxParticles
	if opts.MaxOverride > 0 && opts.MaxOverride < softMax {
		softMax = opts.MaxOverride
	}

	if opts.HasCount {
		if opts.Count > 0 {
			s.spawnN(opts.Count, softMax, &opts)
		}
		return
	}

	// Rate-based continuous spawning. The accumulator is hard-clamped so a
	// paused or backgrounded driver does not burst on resume.
	if opts.Rate > 0 && opts.DeltaMS > 0 && finite(opts.Rate) && finite(opts.DeltaMS) {
		s.spawnAccumulator += opts.Rate * opts.DeltaMS / 1000
		if s.spawnAccumulator > s.accumulatorCap {
			s.spawnAccumulator = s.accumulatorCap
		}
		n := int(math.Floor(float64(s.spawnAccumulator)))
		if n > 0 {
			s.spawnAccumulator -= float32(n)
			s.spawnN(n, softMax, &opts)
		}
	}

	// Maintain-minimum top-up, independent of rate.
	if opts.MinParticles > 0 && len(s.active) < opts.MinParticles {
		s.spawnN(opts.MinParticles-len(s.active), softMax, &opts)
	}
}

// Burst immediately spawns count particles at a point, capped at the soft max.
func (s *System) Burst(count int, behavior Behavior, originX, originY float32) {
	if count <= 0 {
		return
	}
	opts := SpawnOptions{
		Behavior:       behavior,
		OriginX:        originX,
		OriginY:        originY,
		ScaleFactor:    1,
		SizeMultiplier: 1,
	}
	room := s.maxParticles - len(s.active)
	if count > room {
		count = room
	}
	for i := 0; i < count; i++ {
		s.spawnBurstOne(&opts)
	}
}

// spawnN spawns up to n particles bounded by the soft cap and the arena.
func (s *System) spawnN(n int, softMax int, opts *SpawnOptions) {
	room := softMax - len(s.active)
	if hard := s.absoluteMax - len(s.active); hard < room {
		room = hard
	}
	if n > room {
		n = room
	}
	for i := 0; i < n; i++ {
		if !s.spawnOne(opts) {
			return
		}
	}
}

// spawnOne places a single particle using the behavior's spawn dispersion.
func (s *System) spawnOne(opts *SpawnOptions) bool {
	x, y, vx, vy := s.spawnPlacement(opts.Behavior, opts.OriginX, opts.OriginY, opts.ScaleFactor)
	return s.materialize(opts, x, y, vx, vy)
}

// spawnBurstOne places a burst particle exactly at the origin with a radial
// velocity ring.
func (s *System) spawnBurstOne(opts *SpawnOptions) bool {
	angle := s.rng.Float32() * 2 * math.Pi
	speed := 40 + s.rng.Float32()*60
	return s.materialize(opts, opts.OriginX, opts.OriginY, cos32(angle)*speed, sin32(angle)*speed)
}

func (s *System) materialize(opts *SpawnOptions, x, y, vx, vy float32) bool {
	x = clampFloat(x, s.edgeMargin, s.surfaceW-s.edgeMargin)
	y = clampFloat(y, s.edgeMargin, s.surfaceH-s.edgeMargin)

	p := s.pool.Acquire(x, y, opts.Behavior)
	if p == nil {
		return false
	}
	p.VX = vx
	p.VY = vy
	p.Z = s.randSym()

	life := s.minLife + s.rng.Float32()*(s.maxLife-s.minLife)
	p.Life = life
	p.MaxLife = life

	size := (s.baseSize + s.randSym()*s.sizeJitter) * opts.SizeMultiplier
	if size < 0.5 {
		size = 0.5
	}
	p.BaseSize = size
	p.Size = size
	p.Color = s.pickColor()

	if opts.Behavior == BehaviorOrbiting || opts.Behavior == BehaviorMeditationSwirl {
		dx := p.X - opts.OriginX
		dy := p.Y - opts.OriginY
		radius := hypot32(dx, dy)
		if radius < 1 {
			radius = s.glowRadius * opts.ScaleFactor
		}
		speed := s.tun.OrbitSpeed * (0.7 + s.rng.Float32()*0.6)
		if opts.Behavior == BehaviorMeditationSwirl {
			speed *= 0.5
		}
		p.Data = BehaviorData{
			Kind: DataOrbit,
			Orbit: OrbitState{
				Angle:  atan232(dy, dx),
				Radius: radius,
				Speed:  speed,
			},
		}
	}

	s.active = append(s.active, p)
	s.totalCreated++
	return true
}

// spawnPlacement returns the spawn position and initial velocity for a
// behavior. Dispersion widens with behavior energy: ambient sits on the glow
// ring, aggressive/glitchy/spaz spread to increasing ring multiples.
func (s *System) spawnPlacement(b Behavior, originX, originY, scale float32) (x, y, vx, vy float32) {
	glow := s.glowRadius * scale
	angle := s.rng.Float32() * 2 * math.Pi
	ca := cos32(angle)
	sa := sin32(angle)

	switch b {
	case BehaviorRising, BehaviorFalling:
		x = originX + s.randSym()*glow*0.3
		y = originY + s.randSym()*glow*0.3
		vx = s.randSym() * 8
		if b == BehaviorRising {
			vy = -(10 + s.rng.Float32()*20)
		} else {
			vy = 10 + s.rng.Float32()*20
		}

	case BehaviorAggressive:
		r := glow * (1.5 + s.rng.Float32()*1.5) // 1.5-3x
		x = originX + ca*r
		y = originY + sa*r
		vx = ca * 30
		vy = sa * 30

	case BehaviorGlitchy:
		r := glow * (2 + s.rng.Float32()*3) // 2-5x
		x = originX + ca*r
		y = originY + sa*r
		vx = s.randSym() * 40
		vy = s.randSym() * 40

	case BehaviorSpaz:
		r := glow * (3 + s.rng.Float32()*4) // 3-7x
		x = originX + ca*r
		y = originY + sa*r
		vx = s.randSym() * 60
		vy = s.randSym() * 60

	case BehaviorScattering, BehaviorRepelling:
		r := glow * (0.2 + s.rng.Float32()*0.4)
		x = originX + ca*r
		y = originY + sa*r
		vx = ca * (20 + s.rng.Float32()*20)
		vy = sa * (20 + s.rng.Float32()*20)

	case BehaviorBurst:
		x = originX
		y = originY
		speed := 40 + s.rng.Float32()*60
		vx = ca * speed
		vy = sa * speed

	case BehaviorResting:
		r := glow * s.rng.Float32() * 0.5
		x = originX + ca*r
		y = originY + sa*r
		vx = s.randSym() * 2
		vy = s.randSym() * 2

	case BehaviorOrbiting, BehaviorMeditationSwirl:
		r := glow * (0.8 + s.rng.Float32()*0.5)
		x = originX + ca*r
		y = originY + sa*r
		// Tangential start so the ring correction has little work to do.
		vx = -sa * s.tun.OrbitSpeed * r
		vy = ca * s.tun.OrbitSpeed * r

	default: // ambient: glow ring edge, outward-pointing velocity
		x = originX + ca*glow
		y = originY + sa*glow
		speed := 4 + s.rng.Float32()*8
		vx = ca * speed
		vy = sa * speed
	}
	return x, y, vx, vy
}

// pickColor draws a random tint from the current palette.
func (s *System) pickColor() Color {
	if len(s.palette) == 0 {
		return Color{R: 255, G: 255, B: 255, A: 255}
	}
	return s.palette[s.rng.Intn(len(s.palette))]
}
