package engine

import "math"

// idealTickSpacing is the target distance between ruler ticks in pixels.
const idealTickSpacing = 100.0

// TickStep picks a human-friendly ruler step for the visible duration over
// contentWidth pixels: the raw per-tick duration snapped onto the 1/2/5
// decade sequence.
func TickStep(duration, contentWidth float64) float64 {
	raw := duration * (idealTickSpacing / contentWidth)
	base := math.Pow(10, math.Floor(math.Log10(raw)))
	switch {
	case raw/base < 2:
		return base
	case raw/base < 5:
		return base * 2
	default:
		return base * 5
	}
}

// FirstTick returns the smallest multiple of step at or after start.
func FirstTick(start, step float64) float64 {
	return math.Ceil(start/step) * step
}

// Ticks lists every tick time in [start, end] for the chosen step.
func Ticks(start, end, step float64) []float64 {
	var ticks []float64
	for t := FirstTick(start, step); t <= end; t += step {
		ticks = append(ticks, t)
	}
	return ticks
}
