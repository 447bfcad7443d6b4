package particles

import (
	"math"
	"testing"
)

func meanY(s *System) float32 {
	var sum float32
	n := 0
	s.Visit(func(p *Particle) {
		sum += p.Y
		n++
	})
	if n == 0 {
		return 0
	}
	return sum / float32(n)
}

func TestFallingParticlesDescend(t *testing.T) {
	s := newTestSystem()
	spawnCount(s, 30, BehaviorFalling)

	before := meanY(s)
	for i := 0; i < 15; i++ {
		s.Update(16, 400, 300)
	}
	after := meanY(s)

	if after <= before {
		t.Errorf("expected falling particles to descend, mean y %f -> %f", before, after)
	}
}

func TestRisingParticlesAscend(t *testing.T) {
	s := newTestSystem()
	spawnCount(s, 30, BehaviorRising)

	before := meanY(s)
	for i := 0; i < 15; i++ {
		s.Update(16, 400, 300)
	}
	after := meanY(s)

	if after >= before {
		t.Errorf("expected rising particles to ascend, mean y %f -> %f", before, after)
	}
}

func TestRepellingNeverMovesInward(t *testing.T) {
	s := newTestSystem()
	spawnCount(s, 30, BehaviorRepelling)

	for i := 0; i < 15; i++ {
		s.Update(16, 400, 300)
	}

	s.Visit(func(p *Particle) {
		dx := p.X - 400
		dy := p.Y - 300
		dot := p.VX*dx + p.VY*dy
		if dot < -1e-3 {
			t.Fatalf("repelling particle has inward velocity: pos=(%f,%f) vel=(%f,%f) dot=%f",
				p.X, p.Y, p.VX, p.VY, dot)
		}
	})
}

func TestScatteringMovesOutward(t *testing.T) {
	s := newTestSystem()
	spawnCount(s, 20, BehaviorScattering)

	dist := func() float32 {
		var sum float32
		n := 0
		s.Visit(func(p *Particle) {
			sum += hypot32(p.X-400, p.Y-300)
			n++
		})
		return sum / float32(n)
	}

	before := dist()
	for i := 0; i < 20; i++ {
		s.Update(16, 400, 300)
	}
	if after := dist(); after <= before {
		t.Errorf("expected scattering particles to move outward, mean dist %f -> %f", before, after)
	}
}

func TestOrbitingStaysNearRing(t *testing.T) {
	s := newTestSystem()
	spawnCount(s, 20, BehaviorOrbiting)

	for i := 0; i < 120; i++ {
		s.Update(16, 400, 300)
	}

	// Orbiting particles spawn at 0.8-1.3x glow radius and must stay bounded
	// near their ring, never spiraling off.
	s.Visit(func(p *Particle) {
		d := hypot32(p.X-400, p.Y-300)
		if d > 60*2 || d < 60*0.3 {
			t.Fatalf("orbiting particle left its ring: dist=%f", d)
		}
	})
}

func TestMeditationSwirlFollowsAttractor(t *testing.T) {
	s := NewSystem(Options{
		MaxParticles: 20,
		SurfaceW:     800,
		SurfaceH:     600,
		GlowRadius:   60,
		MinLife:      60,
		MaxLife:      60,
		Seed:         42,
	})
	spawnCount(s, 20, BehaviorMeditationSwirl)

	// Drive the swirl toward a corner attractor for two seconds.
	for i := 0; i < 120; i++ {
		s.UpdateWithGesture(16, 400, 300, GestureState{
			AttractorX:   650,
			AttractorY:   450,
			HasAttractor: true,
		})
	}

	var sumX, sumY float32
	n := 0
	s.Visit(func(p *Particle) {
		sumX += p.X
		sumY += p.Y
		n++
	})
	if n == 0 {
		t.Fatal("expected live particles")
	}
	cx, cy := sumX/float32(n), sumY/float32(n)
	if hypot32(cx-650, cy-450) > 100 {
		t.Errorf("expected swirl centroid near attractor (650,450), got (%f,%f)", cx, cy)
	}
}

func TestRestingStaysCalm(t *testing.T) {
	s := newTestSystem()
	spawnCount(s, 20, BehaviorResting)

	for i := 0; i < 60; i++ {
		s.Update(16, 400, 300)
	}

	s.Visit(func(p *Particle) {
		speed := hypot32(p.VX, p.VY)
		if speed > 10 {
			t.Fatalf("resting particle moving too fast: %f", speed)
		}
	})
}

func TestRepairReplacesNonFinite(t *testing.T) {
	s := newTestSystem()
	spawnCount(s, 1, BehaviorAmbient)

	s.Visit(func(p *Particle) {
		p.X = float32(math.NaN())
		p.VY = float32(math.Inf(1))
	})

	s.Update(16, 400, 300)

	s.Visit(func(p *Particle) {
		if math.IsNaN(float64(p.X)) {
			t.Error("expected NaN position repaired")
		}
		if math.IsInf(float64(p.VY), 0) {
			t.Error("expected Inf velocity repaired")
		}
	})
}

func TestContainmentClamp(t *testing.T) {
	s := newTestSystem()
	s.SetContainment(Rect{MinX: 100, MinY: 100, MaxX: 700, MaxY: 500}, ContainClamp, 0)
	spawnCount(s, 30, BehaviorSpaz)

	for i := 0; i < 120; i++ {
		s.Update(16, 400, 300)
	}

	s.Visit(func(p *Particle) {
		if p.X < 100 || p.X > 700 || p.Y < 100 || p.Y > 500 {
			t.Fatalf("particle escaped clamp bounds: (%f, %f)", p.X, p.Y)
		}
	})
}

func TestContainmentBounce(t *testing.T) {
	s := newTestSystem()
	s.SetContainment(Rect{MinX: 100, MinY: 100, MaxX: 700, MaxY: 500}, ContainBounce, 0.8)
	spawnCount(s, 30, BehaviorScattering)

	for i := 0; i < 240; i++ {
		s.Update(16, 400, 300)
	}

	s.Visit(func(p *Particle) {
		if p.X < 100 || p.X > 700 || p.Y < 100 || p.Y > 500 {
			t.Fatalf("particle escaped bounce bounds: (%f, %f)", p.X, p.Y)
		}
	})
}

func TestClearContainment(t *testing.T) {
	s := newTestSystem()
	s.SetContainment(Rect{MinX: 390, MinY: 290, MaxX: 410, MaxY: 310}, ContainClamp, 0)
	s.ClearContainment()
	spawnCount(s, 20, BehaviorScattering)

	for i := 0; i < 120; i++ {
		s.Update(16, 400, 300)
	}

	escaped := false
	s.Visit(func(p *Particle) {
		if p.X < 390 || p.X > 410 || p.Y < 290 || p.Y > 310 {
			escaped = true
		}
	})
	if !escaped {
		t.Error("expected particles to leave the cleared bounds")
	}
}
