package engine

import (
	"sort"

	"github.com/kumaryash6352/csvpshmem-viewer/model"
)

// WindowSlice returns the contiguous run of events whose start time falls in
// [center-width/2, center+width/2]. Events are sorted by start time, so the
// lower edge comes from a binary search; the upper edge is a forward scan,
// since event end times are not ordered and give us no bound to bisect on.
// Callers that need overlap-with-duration semantics additionally test
// Time+Duration against the window start per event.
func WindowSlice(events []model.Event, center, width float64) []model.Event {
	start := center - width/2
	end := center + width/2

	lo := sort.Search(len(events), func(i int) bool {
		return events[i].Raw.Time >= start
	})
	hi := lo
	for hi < len(events) && events[hi].Raw.Time <= end {
		hi++
	}
	return events[lo:hi]
}
