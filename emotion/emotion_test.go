package emotion

import (
	"testing"

	"github.com/pthm-cable/aura/particles"
)

func TestLookupFallsBackToNeutral(t *testing.T) {
	neutral := Lookup("neutral")
	unknown := Lookup("does_not_exist")

	if unknown != neutral {
		t.Error("expected unknown emotion to fall back to neutral")
	}
}

func TestProfilesAreComplete(t *testing.T) {
	for _, name := range Names() {
		p := Lookup(name)
		if p.ParticleRate <= 0 {
			t.Errorf("%s: non-positive particle rate", name)
		}
		if p.GlowIntensity <= 0 || p.GlowIntensity > 1 {
			t.Errorf("%s: glow intensity outside (0, 1]: %f", name, p.GlowIntensity)
		}
		if p.CoreSize <= 0 {
			t.Errorf("%s: non-positive core size", name)
		}
		if p.BreathRate <= 0 || p.BreathDepth <= 0 {
			t.Errorf("%s: breathing parameters unset", name)
		}
		if p.PrimaryColor.A == 0 {
			t.Errorf("%s: fully transparent primary color", name)
		}
	}
}

func TestSaturationScale(t *testing.T) {
	cases := []struct {
		undertone string
		want      float32
	}{
		{"clear", 1.0},
		{"muted", 0.55},
		{"vivid", 1.6},
		{"unknown", 1.0},
		{"", 1.0},
	}
	for _, tc := range cases {
		if got := SaturationScale(tc.undertone); got != tc.want {
			t.Errorf("SaturationScale(%q) = %f, want %f", tc.undertone, got, tc.want)
		}
	}
}

func TestPaletteVariants(t *testing.T) {
	pal := Palette("joy")
	if len(pal) != 4 {
		t.Fatalf("expected 4 palette variants, got %d", len(pal))
	}

	primary := Lookup("joy").PrimaryColor
	if pal[0] != primary {
		t.Errorf("expected first variant to be the primary color, got %+v", pal[0])
	}

	// Variants must differ from each other so the aura shimmers.
	seen := map[particles.Color]bool{}
	for _, c := range pal {
		seen[c] = true
		if c.A != primary.A {
			t.Errorf("variant alpha changed: %+v", c)
		}
	}
	if len(seen) < 3 {
		t.Errorf("expected at least 3 distinct variants, got %d", len(seen))
	}
}
