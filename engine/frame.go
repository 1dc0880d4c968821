package engine

import (
	"sort"
	"strings"

	"github.com/kumaryash6352/csvpshmem-viewer/model"
)

// minPaintDuration keeps zero-duration events visible as a sliver.
const minPaintDuration = 1e-9

// visibleLookbehind widens the lower search bound so events that started
// before the window but are still running get drawn.
const visibleLookbehind = 0.5

// EventBox is one event placed on the timeline, in content pixels.
type EventBox struct {
	Row   uint32 // PE row index
	X0    float64
	X1    float64
	Color RGBA
	Event *model.Event
}

// Tooltip carries the fields the renderer shows for one event.
type Tooltip struct {
	Function   string
	PE         uint32
	Hostname   string
	Duration   float64
	TotalBytes uint64
	RXBytes    uint64
	TXBytes    uint64
	// GBps is the derived bandwidth, 0 when the event has no duration.
	GBps   float64
	Frames []string
}

// Edge is one directed bandwidth edge between two PEs.
type Edge struct {
	Src      uint32
	Dst      uint32
	Sent     uint64
	Received uint64
	Width    float32
	Color    RGBA
	Muted    bool
}

// Node is one PE in the bandwidth view.
type Node struct {
	PE       uint32
	Hostname string
	Fill     RGBA
	Focused  bool
	Adjacent bool
}

// Frame is everything the core computes for one repaint: the visible range,
// ruler ticks, placed event boxes, cursor/hover geometry, and the bandwidth
// reduction around the view time. The renderer consumes it without touching
// profile or viewport state.
type Frame struct {
	Start float64
	End   float64

	TickStep float64
	Ticks    []float64

	Boxes []EventBox

	CursorX       float64
	CursorVisible bool

	// Hover window highlight span in pixels, valid when Hovering.
	Hovering  bool
	HoverTime float64
	HoverX0   float64
	HoverX1   float64

	ViewTime float64
	Playing  bool

	Edges []Edge
	Nodes []Node
}

// BuildFrame runs the per-frame pipeline: viewport window -> event slice ->
// bandwidth reduction -> colors. focus is the PE highlighted in the
// bandwidth view; focusValid is false when none is.
func BuildFrame(data *model.ProfileData, vp *Viewport, focus uint32, focusValid bool) Frame {
	f := Frame{
		Start:    vp.Start,
		End:      vp.End,
		ViewTime: vp.ViewTime(),
		Playing:  vp.Playing,
		Hovering: vp.Hovering,
	}

	if vp.ContentWidth > 0 {
		f.TickStep = TickStep(vp.End-vp.Start, vp.ContentWidth)
		f.Ticks = Ticks(vp.Start, vp.End, f.TickStep)
	}

	f.Boxes = visibleBoxes(data, vp)

	cx := vp.TimeToPixel(vp.CursorTime)
	if cx >= vp.ContentX && cx <= vp.ContentX+vp.ContentWidth {
		f.CursorX = cx
		f.CursorVisible = true
	}
	if vp.Hovering {
		f.HoverTime = vp.HoverTime
		f.HoverX0 = vp.TimeToPixel(vp.HoverTime - vp.WindowSize/2)
		f.HoverX1 = vp.TimeToPixel(vp.HoverTime + vp.WindowSize/2)
	}

	window := WindowSlice(data.Events, f.ViewTime, vp.WindowSize)
	comms := AggregateBandwidth(window, vp.ShowTX, vp.ShowRX)
	f.Edges = buildEdges(comms, focus, focusValid)
	f.Nodes = buildNodes(data, comms, focus, focusValid)
	return f
}

// visibleBoxes places every event intersecting the visible range onto its
// PE row.
func visibleBoxes(data *model.ProfileData, vp *Viewport) []EventBox {
	events := data.Events
	from := vp.Start - visibleLookbehind
	lo := sort.Search(len(events), func(i int) bool {
		return events[i].Raw.Time >= from
	})

	var boxes []EventBox
	for i := lo; i < len(events); i++ {
		e := &events[i]
		if e.Raw.Time > vp.End {
			break
		}
		dur := e.Raw.Duration
		if dur < minPaintDuration {
			dur = minPaintDuration
		}
		x0 := vp.TimeToPixel(e.Raw.Time)
		x1 := vp.TimeToPixel(e.Raw.Time + dur)
		if x1 < vp.ContentX || x0 > vp.ContentX+vp.ContentWidth {
			continue
		}
		boxes = append(boxes, EventBox{
			Row:   e.SourcePE,
			X0:    x0,
			X1:    x1,
			Color: FunctionColor(e.Raw.Function),
			Event: e,
		})
	}
	return boxes
}

func buildEdges(comms map[PairKey]PairTotal, focus uint32, focusValid bool) []Edge {
	var edges []Edge
	for key, t := range comms {
		if t.Total() == 0 {
			continue
		}
		muted := focusValid && key.Src != focus && key.Dst != focus
		edges = append(edges, Edge{
			Src:      key.Src,
			Dst:      key.Dst,
			Sent:     t.Sent,
			Received: t.Received,
			Width:    EdgeWidth(t.Total()),
			Color:    EdgeColor(t, muted),
			Muted:    muted,
		})
	}
	return edges
}

func buildNodes(data *model.ProfileData, comms map[PairKey]PairTotal, focus uint32, focusValid bool) []Node {
	nodes := make([]Node, data.PECount)
	var totals map[uint32]PairTotal
	var maxTotal uint64
	if focusValid {
		totals, maxTotal = FocusTotals(comms, focus)
	}

	for pe := uint32(0); pe < data.PECount; pe++ {
		n := Node{
			PE:       pe,
			Hostname: data.Hostname(pe),
			Fill:     RGBA{R: 80, G: 80, B: 80, A: 255},
		}
		if focusValid {
			switch {
			case pe == focus:
				n.Focused = true
				n.Fill = RGBA{R: 100, G: 100, B: 200, A: 255}
			default:
				if t, ok := totals[pe]; ok && t.Total() > 0 {
					n.Adjacent = true
					n.Fill = NodeFill(t, maxTotal)
				} else {
					n.Fill = RGBA{R: 50, G: 50, B: 50, A: 50}
				}
			}
		}
		nodes[pe] = n
	}
	return nodes
}

// BuildTooltip assembles the hover tooltip for one event.
func BuildTooltip(data *model.ProfileData, e *model.Event) Tooltip {
	b := e.Raw.Bytes
	tt := Tooltip{
		Function:   e.Raw.Function,
		PE:         e.SourcePE,
		Hostname:   data.Hostname(e.SourcePE),
		Duration:   e.Raw.Duration,
		TotalBytes: b.Total(),
	}
	if b.Kind == model.AccountingDirected {
		tt.RXBytes = b.Received
		tt.TXBytes = b.Sent
	}
	if tt.TotalBytes > 0 && e.Raw.Duration > 0 {
		tt.GBps = (float64(tt.TotalBytes) / e.Raw.Duration) / 1e9
	}
	for _, frame := range strings.Split(e.Raw.Symboltrace, "|") {
		if s := strings.TrimSpace(frame); s != "" {
			tt.Frames = append(tt.Frames, s)
		}
	}
	return tt
}
