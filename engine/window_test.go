package engine

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/kumaryash6352/csvpshmem-viewer/model"
)

func eventsAt(times ...float64) []model.Event {
	evs := make([]model.Event, len(times))
	for i, t := range times {
		evs[i] = model.Event{Raw: model.RawEvent{Time: t, Function: "f"}}
	}
	return evs
}

func TestWindowSliceBounds(t *testing.T) {
	evs := eventsAt(0.0, 0.5, 1.0, 1.0, 1.5, 2.0, 3.0)

	tests := []struct {
		name   string
		center float64
		width  float64
		want   []float64
	}{
		{"mid window", 1.0, 1.0, []float64{0.5, 1.0, 1.0, 1.5}},
		{"inclusive both edges", 1.25, 0.5, []float64{1.0, 1.0, 1.5}},
		{"empty gap", 2.5, 0.4, nil},
		{"everything", 1.5, 10, []float64{0.0, 0.5, 1.0, 1.0, 1.5, 2.0, 3.0}},
		{"before data", -5, 1, nil},
		{"after data", 10, 1, nil},
		{"single point", 3.0, 0, []float64{3.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WindowSlice(evs, tt.center, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Raw.Time != tt.want[i] {
					t.Errorf("event %d time = %v, want %v", i, got[i].Raw.Time, tt.want[i])
				}
			}
		})
	}
}

func TestWindowSliceMatchesLinearReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	times := make([]float64, 500)
	for i := range times {
		times[i] = rng.Float64() * 100
	}
	sort.Float64s(times)
	evs := eventsAt(times...)

	for trial := 0; trial < 200; trial++ {
		center := rng.Float64()*120 - 10
		width := rng.Float64() * 30

		got := WindowSlice(evs, center, width)

		start, end := center-width/2, center+width/2
		var want []float64
		for _, tm := range times {
			if tm >= start && tm <= end {
				want = append(want, tm)
			}
		}
		if len(got) != len(want) {
			t.Fatalf("trial %d: got %d events, reference %d (center=%v width=%v)",
				trial, len(got), len(want), center, width)
		}
		for i := range got {
			if got[i].Raw.Time != want[i] {
				t.Fatalf("trial %d: event %d = %v, reference %v", trial, i, got[i].Raw.Time, want[i])
			}
		}
	}
}

func TestWindowSliceIsContiguous(t *testing.T) {
	evs := eventsAt(0, 1, 2, 3, 4, 5)
	got := WindowSlice(evs, 2.5, 3)
	if len(got) == 0 {
		t.Fatal("empty slice")
	}
	// Returned range must share backing with the input slice.
	if &got[0] != &evs[1] {
		t.Error("slice does not alias the source events")
	}
}
