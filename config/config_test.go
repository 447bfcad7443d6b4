package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Screen.Width != 800 || cfg.Screen.Height != 600 {
		t.Errorf("unexpected default screen: %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Particles.MaxParticles != 150 {
		t.Errorf("unexpected default max particles: %d", cfg.Particles.MaxParticles)
	}
	if cfg.Spawn.AccumulatorCap != 3.0 {
		t.Errorf("unexpected default accumulator cap: %f", cfg.Spawn.AccumulatorCap)
	}
	if cfg.Physics.VelocityDrag <= 0 {
		t.Error("expected positive default velocity drag")
	}
}

func TestLoadComputesDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Derived.ScreenW32 != 800 || cfg.Derived.ScreenH32 != 600 {
		t.Errorf("derived screen floats wrong: %f x %f", cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	}
	// pool_capacity 0 falls back to max_particles.
	if cfg.Derived.PoolCap != cfg.Particles.MaxParticles {
		t.Errorf("expected derived pool cap %d, got %d", cfg.Particles.MaxParticles, cfg.Derived.PoolCap)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := []byte("particles:\n  max_particles: 42\nspawn:\n  glow_radius: 90.0\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override file: %v", err)
	}

	if cfg.Particles.MaxParticles != 42 {
		t.Errorf("expected overridden max particles 42, got %d", cfg.Particles.MaxParticles)
	}
	if cfg.Spawn.GlowRadius != 90.0 {
		t.Errorf("expected overridden glow radius 90, got %f", cfg.Spawn.GlowRadius)
	}
	// Untouched fields keep their defaults.
	if cfg.Screen.Width != 800 {
		t.Errorf("expected default width preserved, got %d", cfg.Screen.Width)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Particles.MaxParticles = 77

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading yaml: %v", err)
	}
	if loaded.Particles.MaxParticles != 77 {
		t.Errorf("round trip lost max particles: %d", loaded.Particles.MaxParticles)
	}
}
