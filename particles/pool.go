package particles

// Pool is a bounded freelist over a preallocated particle arena. The arena is
// sized once, at the system's absolute particle cap, so acquire/release never
// allocates after construction.
//
// Slot accounting: a slot is exactly one of active (held by the System), free
// (on the bounded freelist), vacant (released past the freelist bound), or
// virgin (never constructed). Releases past the freelist bound park the slot
// on the vacant stack instead of growing the freelist, so the reported pool
// size never exceeds its capacity.
type Pool struct {
	slots  []Particle
	free   []int32 // bounded freelist; reuse from here counts as a hit
	vacant []int32 // discarded slots; reuse from here counts as a miss
	grown  int32   // high-water mark of constructed slots

	capacity int

	hits   uint64
	misses uint64
}

// NewPool creates a pool with the given arena size and freelist capacity.
func NewPool(arenaSize, capacity int) *Pool {
	if arenaSize < 1 {
		arenaSize = 1
	}
	if capacity < 0 {
		capacity = 0
	}
	if capacity > arenaSize {
		capacity = arenaSize
	}
	return &Pool{
		slots:    make([]Particle, arenaSize),
		free:     make([]int32, 0, capacity),
		vacant:   make([]int32, 0, arenaSize),
		capacity: capacity,
	}
}

// Acquire returns a particle reinitialized at (x, y) with the given behavior.
// Behavior data is empty and render caches are nil on every acquire. Returns
// nil only when the arena is exhausted; callers cap spawn counts so that is
// a defensive path, never an error.
func (pl *Pool) Acquire(x, y float32, behavior Behavior) *Particle {
	var idx int32
	switch {
	case len(pl.free) > 0:
		idx = pl.free[len(pl.free)-1]
		pl.free = pl.free[:len(pl.free)-1]
		pl.hits++
	case len(pl.vacant) > 0:
		idx = pl.vacant[len(pl.vacant)-1]
		pl.vacant = pl.vacant[:len(pl.vacant)-1]
		pl.misses++
	case int(pl.grown) < len(pl.slots):
		idx = pl.grown
		pl.grown++
		pl.misses++
	default:
		return nil
	}

	p := &pl.slots[idx]
	*p = Particle{
		slot:     idx,
		X:        x,
		Y:        y,
		Behavior: behavior,
		Opacity:  1,
	}
	return p
}

// Release clears the particle's transient state and pushes it onto the
// freelist while there is room; otherwise the slot is parked as vacant.
// Releasing an already-pooled particle is a no-op.
func (pl *Pool) Release(p *Particle) {
	if p == nil || p.pooled {
		return
	}
	p.reset()
	p.pooled = true
	if len(pl.free) < pl.capacity {
		pl.free = append(pl.free, p.slot)
		return
	}
	pl.vacant = append(pl.vacant, p.slot)
}

// Trim moves any freelist entries beyond capacity to the vacant stack.
// The freelist cannot normally over-grow; this is the defensive pass used by
// CleanupDead.
func (pl *Pool) Trim() {
	for len(pl.free) > pl.capacity {
		idx := pl.free[len(pl.free)-1]
		pl.free = pl.free[:len(pl.free)-1]
		pl.vacant = append(pl.vacant, idx)
	}
}

// Len returns the current freelist size.
func (pl *Pool) Len() int { return len(pl.free) }

// Capacity returns the freelist bound.
func (pl *Pool) Capacity() int { return pl.capacity }

// Hits returns the number of acquires served from the freelist.
func (pl *Pool) Hits() uint64 { return pl.hits }

// Misses returns the number of acquires that constructed a slot.
func (pl *Pool) Misses() uint64 { return pl.misses }

// Efficiency returns hits / (hits + misses), or 0 before any acquire.
func (pl *Pool) Efficiency() float64 {
	total := pl.hits + pl.misses
	if total == 0 {
		return 0
	}
	return float64(pl.hits) / float64(total)
}
