package particles

// Tunables holds the shared physics constants consumed by the behavior
// evaluators. Zero fields are replaced with defaults at system construction.
type Tunables struct {
	VelocityDrag   float32 // exponential drag coefficient, per second
	RiseAccel      float32
	FallAccel      float32
	RadialAccel    float32
	OrbitSpeed     float32 // radians per second
	OrbitStiffness float32
	JitterAccel    float32
}

func defaultTunables() Tunables {
	return Tunables{
		VelocityDrag:   1.2,
		RiseAccel:      38,
		FallAccel:      42,
		RadialAccel:    55,
		OrbitSpeed:     1.6,
		OrbitStiffness: 4,
		JitterAccel:    140,
	}
}

func (t *Tunables) fillDefaults() {
	d := defaultTunables()
	if t.VelocityDrag <= 0 {
		t.VelocityDrag = d.VelocityDrag
	}
	if t.RiseAccel <= 0 {
		t.RiseAccel = d.RiseAccel
	}
	if t.FallAccel <= 0 {
		t.FallAccel = d.FallAccel
	}
	if t.RadialAccel <= 0 {
		t.RadialAccel = d.RadialAccel
	}
	if t.OrbitSpeed <= 0 {
		t.OrbitSpeed = d.OrbitSpeed
	}
	if t.OrbitStiffness <= 0 {
		t.OrbitStiffness = d.OrbitStiffness
	}
	if t.JitterAccel <= 0 {
		t.JitterAccel = d.JitterAccel
	}
}

// stepState carries per-tick values shared by all behavior evaluators.
// Drag factors are precomputed once per frame so the hot loop never calls
// math.Exp per particle.
type stepState struct {
	dt float32 // seconds

	drag     float32 // exp(-VelocityDrag * dt)
	restDrag float32 // exp(-4 * dt), extra damping for resting particles

	originX, originY       float32
	attractorX, attractorY float32
	hasAttractor           bool

	time float32 // accumulated simulation time, for wander phases
}

func (s *System) computeStepState(dt, originX, originY float32) stepState {
	return stepState{
		dt:       dt,
		drag:     exp32(-s.tun.VelocityDrag * dt),
		restDrag: exp32(-4 * dt),
		originX:  originX,
		originY:  originY,
		time:     s.time,
	}
}

// stepBehavior applies one tick of the particle's effective behavior rule.
// Every path ends with the shared drag + integration + repair sequence, so no
// behavior can accelerate without bound and no non-finite value survives the
// tick.
func (s *System) stepBehavior(p *Particle, st *stepState) {
	dt := st.dt

	switch p.EffectiveBehavior() {
	case BehaviorAmbient:
		phase := float32(p.slot) * 0.73
		p.VX += sin32(st.time*1.3+phase) * 9 * dt
		p.VY += cos32(st.time*1.1+phase)*9*dt - 4*dt

	case BehaviorRising:
		p.VY -= s.tun.RiseAccel * dt

	case BehaviorFalling:
		p.VY += s.tun.FallAccel * dt

	case BehaviorBurst:
		// Velocity was set at spawn; a light pull-down reads as embers.
		p.VY += 14 * dt

	case BehaviorOrbiting:
		s.stepOrbit(p, st, st.originX, st.originY)

	case BehaviorMeditationSwirl:
		cx, cy := st.originX, st.originY
		if st.hasAttractor {
			cx, cy = st.attractorX, st.attractorY
		}
		s.stepOrbit(p, st, cx, cy)

	case BehaviorScattering:
		dirX, dirY := radialDir(p.X, p.Y, st.originX, st.originY)
		p.VX += dirX * s.tun.RadialAccel * dt
		p.VY += dirY * s.tun.RadialAccel * dt

	case BehaviorRepelling:
		dirX, dirY := radialDir(p.X, p.Y, st.originX, st.originY)
		p.VX += dirX * s.tun.RadialAccel * dt
		p.VY += dirY * s.tun.RadialAccel * dt

	case BehaviorAggressive:
		j := s.tun.JitterAccel
		dirX, dirY := radialDir(p.X, p.Y, st.originX, st.originY)
		p.VX += (s.randSym()*j + dirX*j*0.3) * dt
		p.VY += (s.randSym()*j + dirY*j*0.3) * dt

	case BehaviorGlitchy:
		j := s.tun.JitterAccel * 1.3
		p.VX += s.randSym() * j * dt
		p.VY += s.randSym() * j * dt
		// Occasional position snap, scaled so huge deltas stay one snap.
		if s.rng.Float32() < clamp01(8*dt) {
			p.X += s.randSym() * 6
			p.Y += s.randSym() * 6
		}

	case BehaviorSpaz:
		j := s.tun.JitterAccel * 2
		p.VX += s.randSym() * j * dt
		p.VY += s.randSym() * j * dt

	case BehaviorResting:
		p.VX = p.VX*st.restDrag + s.randSym()*2*dt
		p.VY = p.VY*st.restDrag + s.randSym()*2*dt
	}

	// Shared decay and integration. The multiplicative decay, not clamping,
	// is what keeps velocity bounded for pathological frame deltas.
	p.VX *= st.drag
	p.VY *= st.drag
	p.X += p.VX * dt
	p.Y += p.VY * dt

	s.repair(p, st)
	s.contain.apply(p)

	if p.EffectiveBehavior() == BehaviorRepelling {
		enforceOutward(p, st.originX, st.originY)
	}
}

// stepOrbit keeps the particle's distance from the center bounded by pulling
// it toward a ring that rotates at the orbit speed. The exponential approach
// factor is stable for any dt.
func (s *System) stepOrbit(p *Particle, st *stepState, cx, cy float32) {
	if p.Data.Kind != DataOrbit {
		// Particle entered orbit mid-life (gesture override); derive state
		// from its current offset.
		dx := p.X - cx
		dy := p.Y - cy
		radius := hypot32(dx, dy)
		if radius < 1 {
			radius = s.glowRadius
		}
		p.Data = BehaviorData{
			Kind: DataOrbit,
			Orbit: OrbitState{
				Angle:  atan232(dy, dx),
				Radius: radius,
				Speed:  s.tun.OrbitSpeed,
			},
		}
	}

	orb := &p.Data.Orbit
	orb.Angle += orb.Speed * st.dt

	targetX := cx + cos32(orb.Angle)*orb.Radius
	targetY := cy + sin32(orb.Angle)*orb.Radius

	approach := 1 - exp32(-s.tun.OrbitStiffness*st.dt)
	moveX := (targetX - p.X) * approach
	moveY := (targetY - p.Y) * approach

	// Express the correction as velocity so the shared integration applies it.
	p.VX = moveX / st.dt
	p.VY = moveY / st.dt
}

// repair replaces any non-finite scalar produced this tick. Positions snap
// back to the origin, velocities to zero; the particle is never dropped here.
func (s *System) repair(p *Particle, st *stepState) {
	p.X = sanitize(p.X, st.originX)
	p.Y = sanitize(p.Y, st.originY)
	p.VX = sanitize(p.VX, 0)
	p.VY = sanitize(p.VY, 0)
	p.Size = sanitize(p.Size, p.BaseSize)
	p.Opacity = clamp01(sanitize(p.Opacity, 0))
}

// enforceOutward removes any inward velocity component so a repelling
// particle never drifts back toward the center.
func enforceOutward(p *Particle, cx, cy float32) {
	dx := p.X - cx
	dy := p.Y - cy
	dist := hypot32(dx, dy)
	if dist < 1e-4 {
		return
	}
	dirX := dx / dist
	dirY := dy / dist
	inward := p.VX*dirX + p.VY*dirY
	if inward < 0 {
		p.VX -= dirX * inward
		p.VY -= dirY * inward
	}
}

// radialDir returns the unit vector from the center toward the particle.
// A particle sitting on the center gets a deterministic push to the right.
func radialDir(x, y, cx, cy float32) (float32, float32) {
	dx := x - cx
	dy := y - cy
	dist := hypot32(dx, dy)
	if dist < 1e-4 {
		return 1, 0
	}
	return dx / dist, dy / dist
}

// randSym returns a uniform random value in [-1, 1).
func (s *System) randSym() float32 {
	return s.rng.Float32()*2 - 1
}
