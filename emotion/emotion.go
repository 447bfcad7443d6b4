// Package emotion supplies the per-emotion visual profiles and undertone
// saturation multipliers consumed by the particle engine. Data only: the
// package performs no simulation.
package emotion

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/aura/particles"
)

// Profile describes how one emotion drives the aura.
type Profile struct {
	PrimaryColor     particles.Color
	GlowIntensity    float32 // 0..1, scales spawn dispersion
	ParticleRate     float32 // particles per second at full intensity
	ParticleBehavior particles.Behavior
	CoreSize         float32 // character core radius multiplier
	BreathRate       float32 // breaths per second
	BreathDepth      float32 // 0..1 size modulation amplitude
}

var profiles = map[string]Profile{
	"neutral": {
		PrimaryColor:     particles.Color{R: 180, G: 190, B: 210, A: 255},
		GlowIntensity:    0.4,
		ParticleRate:     6,
		ParticleBehavior: particles.BehaviorAmbient,
		CoreSize:         1.0,
		BreathRate:       0.22,
		BreathDepth:      0.08,
	},
	"joy": {
		PrimaryColor:     particles.Color{R: 255, G: 200, B: 60, A: 255},
		GlowIntensity:    0.9,
		ParticleRate:     18,
		ParticleBehavior: particles.BehaviorRising,
		CoreSize:         1.15,
		BreathRate:       0.3,
		BreathDepth:      0.12,
	},
	"sadness": {
		PrimaryColor:     particles.Color{R: 90, G: 120, B: 200, A: 255},
		GlowIntensity:    0.3,
		ParticleRate:     5,
		ParticleBehavior: particles.BehaviorFalling,
		CoreSize:         0.85,
		BreathRate:       0.14,
		BreathDepth:      0.05,
	},
	"anger": {
		PrimaryColor:     particles.Color{R: 230, G: 60, B: 50, A: 255},
		GlowIntensity:    1.0,
		ParticleRate:     24,
		ParticleBehavior: particles.BehaviorAggressive,
		CoreSize:         1.2,
		BreathRate:       0.45,
		BreathDepth:      0.18,
	},
	"fear": {
		PrimaryColor:     particles.Color{R: 160, G: 80, B: 200, A: 255},
		GlowIntensity:    0.7,
		ParticleRate:     16,
		ParticleBehavior: particles.BehaviorGlitchy,
		CoreSize:         0.8,
		BreathRate:       0.55,
		BreathDepth:      0.2,
	},
	"calm": {
		PrimaryColor:     particles.Color{R: 100, G: 200, B: 180, A: 255},
		GlowIntensity:    0.45,
		ParticleRate:     7,
		ParticleBehavior: particles.BehaviorOrbiting,
		CoreSize:         1.0,
		BreathRate:       0.16,
		BreathDepth:      0.1,
	},
	"excitement": {
		PrimaryColor:     particles.Color{R: 255, G: 120, B: 180, A: 255},
		GlowIntensity:    0.95,
		ParticleRate:     22,
		ParticleBehavior: particles.BehaviorSpaz,
		CoreSize:         1.1,
		BreathRate:       0.5,
		BreathDepth:      0.15,
	},
	"meditation": {
		PrimaryColor:     particles.Color{R: 150, G: 170, B: 255, A: 255},
		GlowIntensity:    0.5,
		ParticleRate:     8,
		ParticleBehavior: particles.BehaviorMeditationSwirl,
		CoreSize:         0.95,
		BreathRate:       0.1,
		BreathDepth:      0.22,
	},
	"tired": {
		PrimaryColor:     particles.Color{R: 140, G: 140, B: 160, A: 255},
		GlowIntensity:    0.25,
		ParticleRate:     3,
		ParticleBehavior: particles.BehaviorResting,
		CoreSize:         0.9,
		BreathRate:       0.12,
		BreathDepth:      0.06,
	},
}

// undertoneSaturation maps undertone names to palette saturation multipliers.
var undertoneSaturation = map[string]float32{
	"clear":    1.0,
	"muted":    0.55,
	"intense":  1.35,
	"washed":   0.35,
	"vivid":    1.6,
	"grounded": 0.8,
}

// Lookup returns the profile for an emotion, falling back to neutral for
// unknown names.
func Lookup(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	return profiles["neutral"]
}

// Names returns the known emotion names in no particular order.
func Names() []string {
	out := make([]string, 0, len(profiles))
	for name := range profiles {
		out = append(out, name)
	}
	return out
}

// SaturationScale returns the saturation multiplier for an undertone.
// Unknown undertones leave the palette untouched.
func SaturationScale(undertone string) float32 {
	if s, ok := undertoneSaturation[undertone]; ok {
		return s
	}
	return 1
}

// Palette derives a small tint palette from the emotion's primary color:
// the primary plus lightened and deepened variants, so spawned particles
// shimmer instead of reading as a flat color.
func Palette(name string) []particles.Color {
	p := Lookup(name)
	base := colorful.Color{
		R: float64(p.PrimaryColor.R) / 255.0,
		G: float64(p.PrimaryColor.G) / 255.0,
		B: float64(p.PrimaryColor.B) / 255.0,
	}
	h, s, l := base.Hsl()

	variants := []colorful.Color{
		base,
		colorful.Hsl(h, s, clampLum(l+0.15)),
		colorful.Hsl(h, s, clampLum(l-0.12)),
		colorful.Hsl(h+12, s, l),
	}

	out := make([]particles.Color, len(variants))
	for i, v := range variants {
		v = v.Clamped()
		out[i] = particles.Color{
			R: uint8(v.R*255 + 0.5),
			G: uint8(v.G*255 + 0.5),
			B: uint8(v.B*255 + 0.5),
			A: p.PrimaryColor.A,
		}
	}
	return out
}

func clampLum(l float64) float64 {
	if l < 0.05 {
		return 0.05
	}
	if l > 0.95 {
		return 0.95
	}
	return l
}
