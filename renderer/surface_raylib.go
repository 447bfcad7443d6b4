package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aura/particles"
)

// RaylibSurface adapts a raylib drawing context to the Surface interface.
// Raylib is immediate-mode, so Save/Restore only snapshot the fill style.
type RaylibSurface struct {
	fill  rl.Color
	stack []rl.Color
}

// NewRaylibSurface creates a surface targeting the current raylib window.
func NewRaylibSurface() *RaylibSurface {
	return &RaylibSurface{fill: rl.White}
}

func (s *RaylibSurface) Save() {
	s.stack = append(s.stack, s.fill)
}

func (s *RaylibSurface) Restore() {
	if n := len(s.stack); n > 0 {
		s.fill = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

func (s *RaylibSurface) SetFill(c particles.Color, opacity float32) {
	s.fill = rl.Color{
		R: c.R,
		G: c.G,
		B: c.B,
		A: uint8(clamp01(opacity) * float32(c.A)),
	}
}

func (s *RaylibSurface) FillCircle(x, y, radius float32) {
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius, s.fill)
}
