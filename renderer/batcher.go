// Package renderer turns particle system state into minimal draw sequences
// for an external drawing surface. The batcher is a pure consumer: it reads
// the simulation between updates and never mutates physics state.
package renderer

import (
	"math"
	"sort"

	"github.com/pthm-cable/aura/particles"
)

// Surface is the narrow capability interface the batcher draws against.
// Anything exposing save/restore, a fill style, and a filled-circle
// primitive can back it.
type Surface interface {
	Save()
	Restore()
	SetFill(c particles.Color, opacity float32)
	FillCircle(x, y, radius float32)
}

// Batcher splits particles into background/foreground layers, culls
// off-surface particles, and groups draws by fill style so state changes on
// the surface are minimized.
type Batcher struct {
	surfaceW   float32
	surfaceH   float32
	cullMargin float32

	overlay overlayState

	// Scratch buffers reused across frames.
	background []*particles.Particle
	foreground []*particles.Particle
}

// NewBatcher creates a batcher for a surface of the given dimensions.
// cullMargin is how far off-surface a particle may drift before it is
// skipped from drawing (it keeps simulating regardless).
func NewBatcher(surfaceW, surfaceH, cullMargin float32) *Batcher {
	if cullMargin < 0 {
		cullMargin = 0
	}
	b := &Batcher{
		surfaceW:   surfaceW,
		surfaceH:   surfaceH,
		cullMargin: cullMargin,
	}
	b.overlay.init()
	return b
}

// Draw renders all visible particles in two passes: background first
// (negative z), then foreground, so foreground particles overlay the
// character core drawn between the passes by the caller.
func (b *Batcher) Draw(sys *particles.System, surf Surface) {
	b.DrawBackground(sys, surf)
	b.DrawForeground(sys, surf)
}

// DrawBackground renders the particles behind the character core.
func (b *Batcher) DrawBackground(sys *particles.System, surf Surface) {
	b.background = b.collect(sys, b.background, func(z float32) bool { return z < 0 })
	b.drawLayer(b.background, surf)
}

// DrawForeground renders the particles in front of the character core.
func (b *Batcher) DrawForeground(sys *particles.System, surf Surface) {
	b.foreground = b.collect(sys, b.foreground, func(z float32) bool { return z >= 0 })
	b.drawLayer(b.foreground, surf)
}

// collect gathers drawable particles for one layer into a reused buffer,
// skipping culled and non-finite entries.
func (b *Batcher) collect(sys *particles.System, buf []*particles.Particle, inLayer func(z float32) bool) []*particles.Particle {
	buf = buf[:0]
	minX := -b.cullMargin
	minY := -b.cullMargin
	maxX := b.surfaceW + b.cullMargin
	maxY := b.surfaceH + b.cullMargin

	sys.Visit(func(p *particles.Particle) {
		if !inLayer(p.Z) {
			return
		}
		if !finite(p.X) || !finite(p.Y) || !finite(p.Size) {
			return
		}
		if p.X < minX || p.X > maxX || p.Y < minY || p.Y > maxY {
			return
		}
		if p.Opacity <= 0 || p.Size <= 0 {
			return
		}
		buf = append(buf, p)
	})
	return buf
}

// drawLayer emits one layer in two grouped sub-passes: soft halos from each
// particle's gradient outer stop, then cores. Within a sub-pass particles are
// ordered by fill key so SetFill fires once per group.
func (b *Batcher) drawLayer(layer []*particles.Particle, surf Surface) {
	if len(layer) == 0 {
		return
	}

	sort.Slice(layer, func(i, j int) bool {
		return fillKey(layer[i]) < fillKey(layer[j])
	})

	surf.Save()

	// Halo sub-pass. The fill is re-emitted when either the tint group or the
	// effective opacity changes, so per-particle overlay modulation always
	// reaches the surface even inside a group.
	var lastKey uint64 = math.MaxUint64
	lastOp := float32(-1)
	for i, p := range layer {
		opMul, sizeMul := b.overlay.modulate(p, i, b.surfaceW)
		grad := b.gradientFor(p)
		op := clamp01(p.Opacity*opMul) * 0.35
		if op <= 0 {
			continue
		}
		if key := fillKey(p); key != lastKey || op != lastOp {
			surf.SetFill(grad.Outer, op)
			lastKey = key
			lastOp = op
		}
		surf.FillCircle(p.X, p.Y, p.Size*sizeMul*2)
	}

	// Core sub-pass.
	lastKey = math.MaxUint64
	lastOp = -1
	for i, p := range layer {
		opMul, sizeMul := b.overlay.modulate(p, i, b.surfaceW)
		grad := b.gradientFor(p)
		op := clamp01(p.Opacity * opMul)
		if op <= 0 {
			continue
		}
		if key := fillKey(p); key != lastKey || op != lastOp {
			surf.SetFill(grad.Inner, op)
			lastKey = key
			lastOp = op
		}
		surf.FillCircle(p.X, p.Y, p.Size*sizeMul)
	}

	surf.Restore()
}

// gradientFor returns the particle's cached two-stop gradient, rebuilding it
// only when the tint changed since the last frame.
func (b *Batcher) gradientFor(p *particles.Particle) *particles.Gradient {
	key := uint32(p.Color.R)<<16 | uint32(p.Color.G)<<8 | uint32(p.Color.B)
	if p.CachedGradient != nil && p.CachedGradientKey == key {
		return p.CachedGradient
	}
	g := &particles.Gradient{
		Inner: p.Color,
		Outer: dim(p.Color),
	}
	p.CachedGradient = g
	p.CachedGradientKey = key
	return g
}

// fillKey buckets a particle by tint and base opacity quantized into 32
// levels. The key only orders the layer so particles with matching fills end
// up adjacent; it never decides the drawn opacity, which is emitted exactly
// whenever it differs from the previous draw.
func fillKey(p *particles.Particle) uint64 {
	q := uint64(clamp01(p.Opacity) * 31)
	return uint64(p.Color.R)<<32 | uint64(p.Color.G)<<24 | uint64(p.Color.B)<<16 | uint64(p.Color.A)<<8 | q
}

// dim returns the gradient outer stop: the tint at reduced intensity.
func dim(c particles.Color) particles.Color {
	return particles.Color{
		R: uint8(uint16(c.R) * 3 / 5),
		G: uint8(uint16(c.G) * 3 / 5),
		B: uint8(uint16(c.B) * 3 / 5),
		A: c.A,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
