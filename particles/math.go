package particles

import "math"

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// exp32 is math.Exp for float32.
func exp32(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

// sin32 is math.Sin for float32.
func sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// cos32 is math.Cos for float32.
func cos32(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// atan232 is math.Atan2 for float32.
func atan232(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// hypot32 is math.Hypot for float32.
func hypot32(x, y float32) float32 {
	return float32(math.Hypot(float64(x), float64(y)))
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// sanitize returns v unchanged when finite, otherwise the fallback.
func sanitize(v, fallback float32) float32 {
	if finite(v) {
		return v
	}
	return fallback
}
