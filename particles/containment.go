package particles

// ContainmentMode selects how bounds violations are resolved.
type ContainmentMode uint8

const (
	// ContainClamp pins the particle to the boundary and zeroes the
	// outward velocity component.
	ContainClamp ContainmentMode = iota
	// ContainBounce reflects the outward velocity component, scaled by the
	// restitution factor.
	ContainBounce
)

// Rect is an axis-aligned containment region.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// Contains reports whether (x, y) lies inside the rect.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// containment enforces an optional rectangular bound after each physics step.
type containment struct {
	bounds      Rect
	mode        ContainmentMode
	restitution float32
	enabled     bool
}

// apply resolves a bounds violation for one particle. Runs after the behavior
// rule, every tick, independent of the behavior variant.
func (c *containment) apply(p *Particle) {
	if !c.enabled {
		return
	}

	if p.X < c.bounds.MinX {
		p.X = c.bounds.MinX
		p.VX = c.resolve(p.VX)
	} else if p.X > c.bounds.MaxX {
		p.X = c.bounds.MaxX
		p.VX = -c.resolveOut(p.VX)
	}

	if p.Y < c.bounds.MinY {
		p.Y = c.bounds.MinY
		p.VY = c.resolve(p.VY)
	} else if p.Y > c.bounds.MaxY {
		p.Y = c.bounds.MaxY
		p.VY = -c.resolveOut(p.VY)
	}
}

// resolve handles a min-edge violation: v is the (negative) outward velocity.
func (c *containment) resolve(v float32) float32 {
	if v >= 0 {
		return v
	}
	if c.mode == ContainBounce {
		return -v * c.restitution
	}
	return 0
}

// resolveOut handles a max-edge violation: v is the (positive) outward velocity.
// Returns the magnitude to negate.
func (c *containment) resolveOut(v float32) float32 {
	if v <= 0 {
		return -v
	}
	if c.mode == ContainBounce {
		return v * c.restitution
	}
	return 0
}
