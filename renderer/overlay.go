package renderer

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/aura/particles"
)

// OverlayKind selects the per-frame overlay transform applied multiplicatively
// to particle opacity and size during drawing.
type OverlayKind uint8

const (
	OverlayNone OverlayKind = iota
	OverlayFirefly
	OverlayFlicker
	OverlayShimmer
	OverlayGlowBurst
)

// overlayState drives the active overlay. Every transform is shaped by a
// sin(pi*progress) envelope, so at progress 0 and progress >= 1 the
// multipliers are exactly 1 and the baseline is fully restored.
type overlayState struct {
	kind     OverlayKind
	progress float32
	time     float32
	noise    opensimplex.Noise
}

func (o *overlayState) init() {
	o.noise = opensimplex.NewNormalized(7)
}

// SetOverlay activates an overlay transform at progress 0.
func (b *Batcher) SetOverlay(kind OverlayKind) {
	b.overlay.kind = kind
	b.overlay.progress = 0
}

// ClearOverlay deactivates the overlay transform.
func (b *Batcher) ClearOverlay() {
	b.overlay.kind = OverlayNone
	b.overlay.progress = 0
}

// SetOverlayProgress advances the overlay's driving progress. Values are
// clamped to [0, 1]; at 1 the transform has fully reverted.
func (b *Batcher) SetOverlayProgress(p float32) {
	if !finite(p) {
		p = 0
	}
	b.overlay.progress = clamp01(p)
}

// Advance moves the overlay's internal clock, used by time-based transforms.
func (b *Batcher) Advance(dtMs float32) {
	if dtMs > 0 && finite(dtMs) {
		b.overlay.time += dtMs / 1000
	}
}

// modulate returns the (opacity, size) multipliers for one particle at its
// index within the current layer.
func (o *overlayState) modulate(p *particles.Particle, index int, surfaceW float32) (float32, float32) {
	if o.kind == OverlayNone || o.progress <= 0 || o.progress >= 1 {
		return 1, 1
	}

	envelope := sin32(math.Pi * o.progress)

	switch o.kind {
	case OverlayFirefly:
		// Independent per-particle blink phases.
		blink := 0.5 + 0.5*sin32(2*math.Pi*o.progress*3+float32(index)*2.4)
		return 1 - envelope*(1-blink)*0.8, 1

	case OverlayFlicker:
		// Noise-driven brightness wobble, decorrelated by index.
		n := float32(o.noise.Eval2(float64(o.time)*6, float64(index)*0.61))
		return 1 + envelope*(n-0.5)*0.7, 1

	case OverlayShimmer:
		// Traveling wave across the surface.
		u := float32(0)
		if surfaceW > 0 {
			u = p.X / surfaceW
		}
		wave := sin32(2*math.Pi*(u*2 - o.progress*3))
		return 1 + envelope*wave*0.2, 1 + envelope*wave*0.25

	case OverlayGlowBurst:
		return 1 + envelope*0.5, 1 + envelope*1.2
	}
	return 1, 1
}

func sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}
