package engine

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kumaryash6352/csvpshmem-viewer/model"
)

// PairKey identifies a directed PE pair.
type PairKey struct {
	Src uint32
	Dst uint32
}

// PairTotal accumulates bytes over one directed pair within a window.
// Undirected legacy traces put their whole edge weight into Sent (one
// unsigned weight on the forward edge), so downstream math only ever deals
// with the directed form.
type PairTotal struct {
	Sent     uint64
	Received uint64
}

// Total is the combined byte count of the pair.
func (t PairTotal) Total() uint64 {
	return t.Sent + t.Received
}

// AggregateBandwidth reduces a windowed event slice into directed byte
// totals per PE pair. Only events addressed to another PE participate.
// Transmit bytes accumulate on (src,dst); receive bytes land on the
// reversed key (dst,src), attributing them from the receiver's side.
func AggregateBandwidth(events []model.Event, showTX, showRX bool) map[PairKey]PairTotal {
	comms := make(map[PairKey]PairTotal)
	for i := range events {
		e := &events[i]
		if !e.Raw.IsComm() {
			continue
		}
		src := e.SourcePE
		dst := uint32(e.Raw.TargetPE)
		if src == dst {
			continue
		}
		b := e.Raw.Bytes
		if b.Kind == model.AccountingUndirected {
			if (showTX || showRX) && b.Bytes > 0 {
				t := comms[PairKey{src, dst}]
				t.Sent += b.Bytes
				comms[PairKey{src, dst}] = t
			}
			continue
		}
		if showTX && b.Sent > 0 {
			t := comms[PairKey{src, dst}]
			t.Sent += b.Sent
			comms[PairKey{src, dst}] = t
		}
		if showRX && b.Received > 0 {
			t := comms[PairKey{dst, src}]
			t.Received += b.Received
			comms[PairKey{dst, src}] = t
		}
	}
	return comms
}

// FocusTotals folds pair totals down to per-PE totals relative to a focus
// PE: for every pair touching focus, the other PE accumulates the pair's
// bytes. The returned max is the largest combined total, used to normalize
// node fill intensity.
func FocusTotals(comms map[PairKey]PairTotal, focus uint32) (map[uint32]PairTotal, uint64) {
	totals := make(map[uint32]PairTotal)
	var max uint64
	for key, t := range comms {
		var other uint32
		switch focus {
		case key.Src:
			other = key.Dst
		case key.Dst:
			other = key.Src
		default:
			continue
		}
		acc := totals[other]
		acc.Sent += t.Sent
		acc.Received += t.Received
		totals[other] = acc
		if s := acc.Total(); s > max {
			max = s
		}
	}
	return totals, max
}

// RGBA is a plain 8-bit color quadruple handed to the renderer.
type RGBA struct {
	R, G, B, A uint8
}

// Hex renders the color as "#rrggbb" (alpha is composited by the renderer).
func (c RGBA) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// EdgeWidth maps an edge's byte total to a stroke width in pixels.
func EdgeWidth(total uint64) float32 {
	w := math.Log(math.Max(float64(total), 1)) / 2
	if w < 0.5 {
		w = 0.5
	}
	if w > 8.0 {
		w = 8.0
	}
	return float32(w)
}

// EdgeColor encodes a pair total as a color: red proportional to the sent
// share, blue to the received share, alpha scaling with volume. A muted
// edge (neither endpoint is the focus PE) collapses to luminance-weighted
// grayscale at a tenth of the alpha; the alpha scaling is applied exactly
// once, after the grayscale conversion.
func EdgeColor(t PairTotal, muted bool) RGBA {
	total := t.Total()
	if total == 0 {
		return RGBA{}
	}
	alpha := float64(total) / 1000
	if alpha < 50 {
		alpha = 50
	}
	if alpha > 200 {
		alpha = 200
	}

	r := uint8(255 * float64(t.Sent) / float64(total))
	b := uint8(255 * float64(t.Received) / float64(total))
	c := RGBA{R: r, G: 0, B: b, A: uint8(alpha)}

	if muted {
		gray := uint8(float64(c.R)*0.2126 + float64(c.G)*0.7152 + float64(c.B)*0.0722)
		c = RGBA{R: gray, G: gray, B: gray, A: uint8(alpha * 0.1)}
	}
	return c
}

// nodeBase is the neutral fill channel value non-focus nodes start from.
const nodeBase = 50.0 / 255.0

// NodeFill colors a PE that communicates with the focus PE: the neutral
// base blended toward the sent/received ratio color, with intensity
// sqrt(total/maxTotal) so small totals stay distinguishable.
func NodeFill(t PairTotal, maxTotal uint64) RGBA {
	total := t.Total()
	if total == 0 || maxTotal == 0 {
		return RGBA{R: 50, G: 50, B: 50, A: 255}
	}
	intensity := math.Sqrt(float64(total) / float64(maxTotal))
	if intensity > 1 {
		intensity = 1
	}

	base := colorful.Color{R: nodeBase, G: nodeBase, B: nodeBase}
	target := colorful.Color{
		R: float64(t.Sent) / float64(total),
		G: 0,
		B: float64(t.Received) / float64(total),
	}
	c := base.BlendRgb(target, intensity)
	return RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: 255,
	}
}
