package particles

import (
	"math"
	"testing"
)

func newTestSystem() *System {
	return NewSystem(Options{
		MaxParticles: 100,
		SurfaceW:     800,
		SurfaceH:     600,
		GlowRadius:   60,
		Seed:         42,
	})
}

func spawnCount(s *System, n int, b Behavior) {
	s.Spawn(SpawnOptions{
		Behavior: b,
		OriginX:  400,
		OriginY:  300,
		HasCount: true,
		Count:    n,
	})
}

func TestSystemSoftCap(t *testing.T) {
	s := newTestSystem()

	spawnCount(s, 500, BehaviorAmbient)
	if s.Len() != 100 {
		t.Errorf("expected active count capped at 100, got %d", s.Len())
	}

	// Further spawn attempts are no-ops at the cap.
	spawnCount(s, 10, BehaviorAmbient)
	if s.Len() != 100 {
		t.Errorf("expected cap held, got %d", s.Len())
	}
}

func TestSystemExplicitCount(t *testing.T) {
	s := newTestSystem()

	spawnCount(s, 5, BehaviorRising)
	if s.Len() != 5 {
		t.Errorf("expected exactly 5 particles, got %d", s.Len())
	}
}

func TestSystemNegativeInputsAreNoops(t *testing.T) {
	s := newTestSystem()

	s.Spawn(SpawnOptions{Behavior: BehaviorAmbient, HasCount: true, Count: -3})
	if s.Len() != 0 {
		t.Errorf("negative count spawned %d particles", s.Len())
	}

	s.Spawn(SpawnOptions{Behavior: BehaviorAmbient, Rate: -10, DeltaMS: 16})
	if s.Len() != 0 {
		t.Errorf("negative rate spawned %d particles", s.Len())
	}

	s.Update(-16, 400, 300)
	s.Update(float32(math.NaN()), 400, 300)
	if s.Len() != 0 {
		t.Error("unusable dt mutated the system")
	}
}

func TestSystemRateAccumulatorClamp(t *testing.T) {
	s := newTestSystem()

	// A huge backlogged delta must not burst past the accumulator cap.
	s.Spawn(SpawnOptions{
		Behavior: BehaviorAmbient,
		Rate:     10,
		DeltaMS:  100000,
		OriginX:  400,
		OriginY:  300,
	})
	if s.Len() > 3 {
		t.Errorf("expected at most 3 spawns from a clamped accumulator, got %d", s.Len())
	}
}

func TestSystemRateAccumulation(t *testing.T) {
	s := newTestSystem()

	// 10/s at 60fps: one particle roughly every 6 frames.
	for i := 0; i < 60; i++ {
		s.Spawn(SpawnOptions{
			Behavior: BehaviorAmbient,
			Rate:     10,
			DeltaMS:  16.67,
			OriginX:  400,
			OriginY:  300,
		})
	}
	if s.Len() < 8 || s.Len() > 12 {
		t.Errorf("expected ~10 particles after 1s at rate 10, got %d", s.Len())
	}
}

func TestSystemMinParticlesTopUp(t *testing.T) {
	s := newTestSystem()

	s.Spawn(SpawnOptions{
		Behavior:     BehaviorAmbient,
		MinParticles: 8,
		OriginX:      400,
		OriginY:      300,
	})
	if s.Len() != 8 {
		t.Errorf("expected top-up to 8, got %d", s.Len())
	}

	// Already above the minimum: no change.
	s.Spawn(SpawnOptions{
		Behavior:     BehaviorAmbient,
		MinParticles: 4,
		OriginX:      400,
		OriginY:      300,
	})
	if s.Len() != 8 {
		t.Errorf("expected no top-up above the minimum, got %d", s.Len())
	}
}

func TestSystemMaxOverride(t *testing.T) {
	s := newTestSystem()

	s.Spawn(SpawnOptions{
		Behavior:    BehaviorAmbient,
		HasCount:    true,
		Count:       50,
		MaxOverride: 10,
		OriginX:     400,
		OriginY:     300,
	})
	if s.Len() != 10 {
		t.Errorf("expected override cap 10, got %d", s.Len())
	}
}

func TestSystemSetMaxParticlesTrims(t *testing.T) {
	s := newTestSystem()

	spawnCount(s, 100, BehaviorAmbient)
	if s.Len() != 100 {
		t.Fatalf("setup: expected 100 active, got %d", s.Len())
	}

	s.SetMaxParticles(50)
	if s.Len() != 50 {
		t.Errorf("expected immediate trim to 50, got %d", s.Len())
	}
	if s.MaxParticles() != 50 {
		t.Errorf("expected soft cap 50, got %d", s.MaxParticles())
	}

	// Clamped to [1, absolute cap].
	s.SetMaxParticles(0)
	if s.MaxParticles() != 1 {
		t.Errorf("expected clamp to 1, got %d", s.MaxParticles())
	}
	s.SetMaxParticles(100000)
	if s.MaxParticles() != s.AbsoluteMaxParticles() {
		t.Errorf("expected clamp to absolute cap %d, got %d", s.AbsoluteMaxParticles(), s.MaxParticles())
	}
}

func TestSystemClearIdempotent(t *testing.T) {
	s := newTestSystem()

	spawnCount(s, 40, BehaviorAmbient)
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("expected empty system after clear, got %d", s.Len())
	}
	if s.Stats().SpawnAccumulator != 0 {
		t.Error("expected spawn accumulator reset on clear")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Error("second clear changed state")
	}

	// Cleared particles are reusable.
	spawnCount(s, 10, BehaviorAmbient)
	if s.Len() != 10 {
		t.Errorf("expected respawn after clear, got %d", s.Len())
	}
	if s.Stats().PoolHits == 0 {
		t.Error("expected respawn to reuse pooled slots")
	}
}

func TestSystemLifecycleExpiry(t *testing.T) {
	s := NewSystem(Options{
		MaxParticles: 20,
		SurfaceW:     800,
		SurfaceH:     600,
		MinLife:      0.1,
		MaxLife:      0.2,
		Seed:         42,
	})

	spawnCount(s, 20, BehaviorAmbient)
	for i := 0; i < 30; i++ {
		s.Update(16, 400, 300)
	}
	if s.Len() != 0 {
		t.Errorf("expected all particles expired after 480ms with 200ms max life, got %d", s.Len())
	}

	st := s.Stats()
	if st.TotalDestroyed != 20 {
		t.Errorf("expected 20 destroyed, got %d", st.TotalDestroyed)
	}
	if st.PoolSize == 0 {
		t.Error("expected expired particles recycled to the pool")
	}
}

func TestSystemHugeDeltaStaysFinite(t *testing.T) {
	s := NewSystem(Options{
		MaxParticles: 60,
		SurfaceW:     800,
		SurfaceH:     600,
		MinLife:      120,
		MaxLife:      240,
		Seed:         42,
	})

	behaviors := []Behavior{
		BehaviorAmbient, BehaviorRising, BehaviorFalling, BehaviorBurst,
		BehaviorOrbiting, BehaviorScattering, BehaviorRepelling,
		BehaviorAggressive, BehaviorGlitchy, BehaviorSpaz, BehaviorResting,
		BehaviorMeditationSwirl,
	}
	for _, b := range behaviors {
		spawnCount(s, 5, b)
	}

	// One pathological 10-second frame.
	s.Update(10000, 400, 300)

	if s.Len() == 0 {
		t.Fatal("expected particles to survive with long lives")
	}
	s.Visit(func(p *Particle) {
		for _, v := range []float32{p.X, p.Y, p.VX, p.VY, p.Size, p.Opacity} {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				t.Fatalf("non-finite particle state after huge delta: %+v", p)
			}
		}
	})
}

func TestSystemGestureOverrideBatch(t *testing.T) {
	s := newTestSystem()
	spawnCount(s, 10, BehaviorAmbient)

	s.SetGestureBehavior("meditation_swirl", true)

	// Queued commands do not apply until the next update.
	s.Visit(func(p *Particle) {
		if p.HasGesture {
			t.Fatal("gesture applied before update")
		}
	})

	s.Update(16, 400, 300)
	s.Visit(func(p *Particle) {
		if !p.HasGesture || p.GestureBehavior != BehaviorMeditationSwirl {
			t.Fatal("expected gesture override on every particle after update")
		}
		if p.EffectiveBehavior() != BehaviorMeditationSwirl {
			t.Fatal("expected effective behavior to follow the override")
		}
	})

	s.SetGestureBehavior("meditation_swirl", false)
	s.Update(16, 400, 300)
	s.Visit(func(p *Particle) {
		if p.HasGesture {
			t.Fatal("expected gesture cleared after disable")
		}
		if p.EffectiveBehavior() != BehaviorAmbient {
			t.Fatal("expected base behavior restored")
		}
	})
}

func TestSystemGestureUnknownNameIgnored(t *testing.T) {
	s := newTestSystem()
	spawnCount(s, 5, BehaviorAmbient)

	s.SetGestureBehavior("no_such_behavior", true)
	s.Update(16, 400, 300)
	s.Visit(func(p *Particle) {
		if p.HasGesture {
			t.Fatal("unknown gesture name applied an override")
		}
	})
}

func TestSystemCleanupDead(t *testing.T) {
	s := newTestSystem()
	spawnCount(s, 10, BehaviorAmbient)

	// Kill half out of band.
	i := 0
	s.Visit(func(p *Particle) {
		if i%2 == 0 {
			p.Life = 0
		}
		i++
	})

	s.CleanupDead()
	if s.Len() != 5 {
		t.Errorf("expected 5 survivors, got %d", s.Len())
	}
}

func TestSystemOpacityFade(t *testing.T) {
	s := NewSystem(Options{
		MaxParticles: 1,
		SurfaceW:     800,
		SurfaceH:     600,
		MinLife:      10,
		MaxLife:      10,
		Seed:         42,
	})
	spawnCount(s, 1, BehaviorResting)

	// Just-spawned particles fade in from zero.
	s.Update(16, 400, 300)
	var early float32
	s.Visit(func(p *Particle) { early = p.Opacity })
	if early <= 0 || early >= 1 {
		t.Errorf("expected partial fade-in opacity, got %f", early)
	}

	// Mid-life is fully opaque.
	for i := 0; i < 300; i++ {
		s.Update(16, 400, 300)
	}
	var mid float32
	s.Visit(func(p *Particle) { mid = p.Opacity })
	if mid != 1 {
		t.Errorf("expected full opacity mid-life, got %f", mid)
	}
}

func TestBehaviorNameRoundTrip(t *testing.T) {
	for b, name := range behaviorNames {
		got, ok := BehaviorFromName(name)
		if !ok || got != b {
			t.Errorf("round trip failed for %q: got %v, ok=%v", name, got, ok)
		}
	}
	if _, ok := BehaviorFromName("bogus"); ok {
		t.Error("expected unknown name to report ok=false")
	}
}
