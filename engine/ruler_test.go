package engine

import (
	"math"
	"testing"
)

func TestTickStepNiceNumbers(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		width    float64
		want     float64
	}{
		{"exact decade", 10, 1000, 1},           // raw 1.0
		{"mantissa 3 snaps to 2", 30, 1000, 2},  // raw 3.0
		{"under 2 keeps base", 19, 1000, 1},     // raw 1.9
		{"mantissa 7 snaps to 5", 7, 1000, 0.5}, // raw 0.7
		{"sub-second", 0.02, 1000, 0.002},       // raw 0.002
		{"milliseconds", 0.037, 1000, 0.002},    // raw 0.0037
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TickStep(tt.duration, tt.width)
			if math.Abs(got-tt.want) > tt.want*1e-9 {
				t.Errorf("TickStep(%v,%v) = %v, want %v", tt.duration, tt.width, got, tt.want)
			}
		})
	}
}

func TestTickStepCoversTargetSpacing(t *testing.T) {
	// The chosen step must be one of {1,2,5}x10^k.
	for _, dur := range []float64{0.001, 0.42, 3, 77, 1234} {
		step := TickStep(dur, 800)
		mant := step / math.Pow(10, math.Floor(math.Log10(step)))
		ok := false
		for _, m := range []float64{1, 2, 5} {
			if math.Abs(mant-m) < 1e-9 {
				ok = true
			}
		}
		if !ok {
			t.Errorf("TickStep(%v) = %v, mantissa %v not in {1,2,5}", dur, step, mant)
		}
	}
}

func TestFirstTick(t *testing.T) {
	tests := []struct {
		start, step, want float64
	}{
		{0.33, 0.1, 0.4},
		{-0.25, 0.1, -0.2},
		{2.0, 0.5, 2.0}, // already on a multiple
		{0, 1, 0},
	}
	for _, tt := range tests {
		if got := FirstTick(tt.start, tt.step); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("FirstTick(%v,%v) = %v, want %v", tt.start, tt.step, got, tt.want)
		}
	}
}

func TestTicksSpanRange(t *testing.T) {
	ticks := Ticks(0.05, 1.0, 0.1)
	if len(ticks) == 0 {
		t.Fatal("no ticks")
	}
	if ticks[0] < 0.05 {
		t.Errorf("first tick %v before range start", ticks[0])
	}
	if last := ticks[len(ticks)-1]; last > 1.0 {
		t.Errorf("last tick %v after range end", last)
	}
	for i := 1; i < len(ticks); i++ {
		if d := ticks[i] - ticks[i-1]; math.Abs(d-0.1) > 1e-9 {
			t.Errorf("tick spacing %v, want 0.1", d)
		}
	}
}
