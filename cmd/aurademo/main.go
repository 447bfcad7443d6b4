// Interactive aura demo - drives the particle engine with a breathing
// character core, emotion switching, gestures and live tuning sliders.
//
// Usage: go run ./cmd/aurademo
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aura/config"
	"github.com/pthm-cable/aura/emotion"
	"github.com/pthm-cable/aura/particles"
	"github.com/pthm-cable/aura/renderer"
	"github.com/pthm-cable/aura/telemetry"
)

const panelWidth = 230

var emotionKeys = []struct {
	key  int32
	name string
}{
	{rl.KeyOne, "neutral"},
	{rl.KeyTwo, "joy"},
	{rl.KeyThree, "sadness"},
	{rl.KeyFour, "anger"},
	{rl.KeyFive, "fear"},
	{rl.KeySix, "calm"},
	{rl.KeySeven, "excitement"},
	{rl.KeyEight, "meditation"},
	{rl.KeyNine, "tired"},
}

var undertones = []string{"clear", "muted", "intense", "washed", "vivid", "grounded"}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Aura Demo")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	opts := particles.OptionsFromConfig(cfg)
	opts.Seed = rngSeed
	sys := particles.NewSystem(opts)

	if cfg.Containment.Enabled {
		inset := float32(cfg.Containment.Inset)
		mode := particles.ContainClamp
		if cfg.Containment.Mode == "bounce" {
			mode = particles.ContainBounce
		}
		sys.SetContainment(particles.Rect{
			MinX: inset,
			MinY: inset,
			MaxX: opts.SurfaceW - inset,
			MaxY: opts.SurfaceH - inset,
		}, mode, float32(cfg.Containment.Restitution))
	}

	batcher := renderer.NewBatcher(opts.SurfaceW, opts.SurfaceH, float32(cfg.Render.CullMargin))
	surf := renderer.NewRaylibSurface()

	collector := telemetry.NewCollector(cfg.Telemetry.StatsWindowSec)
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	currentEmotion := "neutral"
	undertoneIdx := 0
	profile := emotion.Lookup(currentEmotion)
	palette := emotion.Palette(currentEmotion)

	originX := opts.SurfaceW / 2
	originY := opts.SurfaceH / 2

	rateScale := float32(1)
	swirling := false
	var breathPhase float32
	var simTime float32

	slog.Info("starting aura demo", "seed", rngSeed, "emotion", currentEmotion)

	for !rl.WindowShouldClose() {
		perf.StartFrame()
		dtMs := rl.GetFrameTime() * 1000
		simTime += dtMs / 1000

		// Input: emotion keys, undertone cycling, gestures, bursts.
		for _, ek := range emotionKeys {
			if rl.IsKeyPressed(ek.key) {
				currentEmotion = ek.name
				profile = emotion.Lookup(currentEmotion)
				palette = emotion.Palette(currentEmotion)
			}
		}
		if rl.IsKeyPressed(rl.KeyU) {
			undertoneIdx = (undertoneIdx + 1) % len(undertones)
		}
		if rl.IsKeyPressed(rl.KeyG) {
			swirling = !swirling
			sys.SetGestureBehavior("meditation_swirl", swirling)
		}
		if rl.IsKeyPressed(rl.KeyC) {
			sys.Clear()
		}
		if rl.IsKeyPressed(rl.KeyF) {
			batcher.SetOverlay(renderer.OverlayFlicker)
		}
		if rl.IsKeyPressed(rl.KeyB) {
			batcher.SetOverlay(renderer.OverlayGlowBurst)
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			m := rl.GetMousePosition()
			sys.Burst(12, particles.BehaviorBurst, m.X, m.Y)
		}

		undertone := undertones[undertoneIdx]

		// Spawn, then physics.
		perf.StartPhase(telemetry.PhaseSpawn)
		sys.Spawn(particles.SpawnOptions{
			Behavior:        profile.ParticleBehavior,
			Emotion:         currentEmotion,
			Rate:            profile.ParticleRate * rateScale,
			DeltaMS:         dtMs,
			OriginX:         originX,
			OriginY:         originY,
			MinParticles:    4,
			ScaleFactor:     0.5 + profile.GlowIntensity,
			Palette:         palette,
			SaturationScale: emotion.SaturationScale(undertone),
			Undertone:       undertone,
		})

		perf.StartPhase(telemetry.PhaseUpdate)
		gesture := particles.GestureState{}
		if swirling {
			m := rl.GetMousePosition()
			gesture.AttractorX = m.X
			gesture.AttractorY = m.Y
			gesture.HasAttractor = true
		}
		sys.UpdateWithGesture(dtMs, originX, originY, gesture)
		batcher.Advance(dtMs)
		batcher.SetOverlayProgress(fract(simTime * 0.25))

		// Draw: background particles, breathing core, foreground particles.
		perf.StartPhase(telemetry.PhaseRender)
		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 12, B: 20, A: 255})

		batcher.DrawBackground(sys, surf)

		breathPhase += profile.BreathRate * dtMs / 1000
		breath := 1 + profile.BreathDepth*sin32(2*3.14159265*breathPhase)
		coreRadius := 24 * profile.CoreSize * breath
		core := profile.PrimaryColor
		rl.DrawCircleV(rl.Vector2{X: originX, Y: originY}, coreRadius*1.6,
			rl.Color{R: core.R, G: core.G, B: core.B, A: 60})
		rl.DrawCircleV(rl.Vector2{X: originX, Y: originY}, coreRadius,
			rl.Color{R: core.R, G: core.G, B: core.B, A: 230})

		batcher.DrawForeground(sys, surf)

		drawPanel(sys, &rateScale, currentEmotion, undertone, swirling)

		rl.EndDrawing()

		// Telemetry window flush.
		perf.StartPhase(telemetry.PhaseStats)
		if stats, done := collector.Record(sys, float64(dtMs)); done {
			if *logStats {
				stats.LogStats()
				perf.Stats().LogStats()
			}
			if err := out.WriteTelemetry(stats); err != nil {
				slog.Error("telemetry write failed", "error", err)
			}
			if err := out.WritePerf(perf.Stats(), stats.WindowEndFrame); err != nil {
				slog.Error("perf write failed", "error", err)
			}
		}
		perf.EndFrame()
	}
}

// drawPanel renders the tuning sidebar and applies slider changes.
func drawPanel(sys *particles.System, rateScale *float32, emotionName, undertone string, swirling bool) {
	panelX := float32(10)
	panelY := float32(10)

	st := sys.Stats()
	rl.DrawText(fmt.Sprintf("emotion: %s (%s)", emotionName, undertone), int32(panelX), int32(panelY), 16, rl.RayWhite)
	panelY += 22
	rl.DrawText(fmt.Sprintf("active: %d / %d  pool: %d", st.ActiveParticles, st.MaxParticles, st.PoolSize), int32(panelX), int32(panelY), 14, rl.LightGray)
	panelY += 20
	rl.DrawText(fmt.Sprintf("pool eff: %.0f%%", st.PoolEfficiency*100), int32(panelX), int32(panelY), 14, rl.LightGray)
	panelY += 26

	rl.DrawText("Max particles", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	newMax := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 60, Height: 20},
		"1", fmt.Sprintf("%d", sys.AbsoluteMaxParticles()),
		float32(sys.MaxParticles()), 1, float32(sys.AbsoluteMaxParticles()),
	)
	rl.DrawText(fmt.Sprintf("%d", sys.MaxParticles()), int32(panelX+panelWidth-50), int32(panelY+2), 16, rl.LightGray)
	if int(newMax) != sys.MaxParticles() {
		sys.SetMaxParticles(int(newMax))
	}
	panelY += 32

	rl.DrawText("Spawn rate scale", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	*rateScale = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 60, Height: 20},
		"0", "3",
		*rateScale, 0, 3,
	)
	rl.DrawText(fmt.Sprintf("%.1fx", *rateScale), int32(panelX+panelWidth-50), int32(panelY+2), 16, rl.LightGray)
	panelY += 34

	help := "1-9 emotion  U undertone  G swirl  F/B overlay  C clear  click burst"
	if swirling {
		help = "swirl follows mouse  |  " + help
	}
	rl.DrawText(help, int32(panelX), int32(panelY), 12, rl.Gray)
}

func sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func fract(x float32) float32 {
	return x - float32(int(x))
}
