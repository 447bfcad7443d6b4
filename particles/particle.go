// Package particles implements the particle lifecycle and physics engine:
// pooled particle storage, spawn scheduling, per-behavior force simulation,
// containment, and the frame-driven orchestrator.
package particles

// Behavior identifies the force/motion rule governing a particle's update.
type Behavior uint8

const (
	BehaviorAmbient Behavior = iota
	BehaviorRising
	BehaviorFalling
	BehaviorBurst
	BehaviorOrbiting
	BehaviorScattering
	BehaviorRepelling
	BehaviorAggressive
	BehaviorGlitchy
	BehaviorSpaz
	BehaviorResting
	BehaviorMeditationSwirl
)

var behaviorNames = map[Behavior]string{
	BehaviorAmbient:         "ambient",
	BehaviorRising:          "rising",
	BehaviorFalling:         "falling",
	BehaviorBurst:           "burst",
	BehaviorOrbiting:        "orbiting",
	BehaviorScattering:      "scattering",
	BehaviorRepelling:       "repelling",
	BehaviorAggressive:      "aggressive",
	BehaviorGlitchy:         "glitchy",
	BehaviorSpaz:            "spaz",
	BehaviorResting:         "resting",
	BehaviorMeditationSwirl: "meditation_swirl",
}

// String returns the behavior's wire name.
func (b Behavior) String() string {
	if name, ok := behaviorNames[b]; ok {
		return name
	}
	return "ambient"
}

// BehaviorFromName resolves a behavior tag by name. Unknown names report ok=false.
func BehaviorFromName(name string) (Behavior, bool) {
	for b, n := range behaviorNames {
		if n == name {
			return b, true
		}
	}
	return BehaviorAmbient, false
}

// BehaviorDataKind tags the active variant of a particle's transient state.
type BehaviorDataKind uint8

const (
	DataNone BehaviorDataKind = iota
	DataOrbit
)

// OrbitState holds per-particle orbital state for orbiting and swirl behaviors.
type OrbitState struct {
	Angle  float32 // current angle around the center, radians
	Radius float32 // target ring radius
	Speed  float32 // angular velocity, radians per second
}

// BehaviorData is behavior-local transient state, keyed by Kind.
// The zero value means "no data".
type BehaviorData struct {
	Kind  BehaviorDataKind
	Orbit OrbitState
}

// Gradient is a cached two-stop radial fill used by the render batcher.
type Gradient struct {
	Inner Color
	Outer Color
}

// Particle is a single simulated point-visual. Particles are arena slots owned
// exclusively by one System; they live either on the active list or in the pool,
// never both.
type Particle struct {
	X, Y float32
	Z    float32 // layer depth: negative renders behind the character core
	VX   float32
	VY   float32

	Age     float32 // normalized lifetime progress, 0..1
	Life    float32 // remaining seconds; <= 0 means dead
	MaxLife float32

	Size     float32
	BaseSize float32
	Opacity  float32

	Behavior        Behavior
	GestureBehavior Behavior // valid only while HasGesture is set
	HasGesture      bool

	Data BehaviorData

	Color Color

	// Render caches, owned by the batcher; nulled whenever the particle
	// returns to the pool.
	CachedGradient    *Gradient
	CachedGradientKey uint32

	slot   int32 // arena index, fixed for the particle's whole existence
	pooled bool  // guards against double release
}

// EffectiveBehavior returns the gesture override when one is active,
// otherwise the particle's own behavior tag.
func (p *Particle) EffectiveBehavior() Behavior {
	if p.HasGesture {
		return p.GestureBehavior
	}
	return p.Behavior
}

// reset clears behavior-local state and render caches. Called on release.
func (p *Particle) reset() {
	p.Data = BehaviorData{}
	p.CachedGradient = nil
	p.CachedGradientKey = 0
	p.HasGesture = false
}
