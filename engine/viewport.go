package engine

import "math"

// Track height bounds in pixels per PE row.
const (
	MinTrackHeight = 8.0
	MaxTrackHeight = 100.0
)

// minTimeSpan is the smallest visible duration; zooming past it re-centers
// to this span so later ratio math never divides by zero.
const minTimeSpan = 1e-9

// playEndSlack treats the cursor as "at the end" when within this of MaxTime,
// so pressing play at the end restarts from the beginning.
const playEndSlack = 1e-5

// Viewport owns all mutable view state: the visible time range, vertical
// scroll, cursor/hover time, the aggregation window and playback. Query and
// aggregation functions take it by pointer but never mutate it; all writes
// happen through its methods on the UI goroutine.
type Viewport struct {
	Start float64 // visible range start, seconds
	End   float64 // visible range end, seconds

	Scroll      float32 // pixels scrolled into track content
	TrackHeight float32 // pixels per PE row, in [MinTrackHeight, MaxTrackHeight]

	CursorTime float64
	HoverTime  float64
	Hovering   bool

	WindowSize float64 // aggregation window width, seconds

	Playing bool
	Speed   float64 // playback seconds per wall second

	ShowRX bool
	ShowTX bool

	// Horizontal extent of the timeline content region, set each frame
	// before any pixel mapping.
	ContentX     float64
	ContentWidth float64
}

// NewViewport returns a viewport spanning [minTime, maxTime] with the
// defaults the viewer starts with.
func NewViewport(minTime, maxTime float64) *Viewport {
	return &Viewport{
		Start:       minTime,
		End:         maxTime,
		TrackHeight: 16,
		CursorTime:  minTime,
		WindowSize:  0.01,
		Speed:       1.0,
		ShowRX:      true,
		ShowTX:      true,
	}
}

// zoomFactor converts a wheel delta into a multiplicative zoom factor.
// Negative delta (scroll up) zooms in.
func zoomFactor(delta float64) float64 {
	return math.Exp(-delta / 200)
}

// ZoomTime scales the visible range by exp(-delta/200) keeping the time at
// anchorRatio (0..1 across the content region) fixed on screen.
func (v *Viewport) ZoomTime(anchorRatio, delta float64) {
	factor := zoomFactor(delta)
	anchor := v.Start + anchorRatio*(v.End-v.Start)
	v.Start = anchor - (anchor-v.Start)*factor
	v.End = anchor + (v.End-anchor)*factor

	if v.End-v.Start < minTimeSpan {
		center := (v.Start + v.End) / 2
		v.Start = center - minTimeSpan/2
		v.End = center + minTimeSpan/2
	}
}

// ZoomTrackHeight scales the per-row height by the same factor, clamped to
// [MinTrackHeight, MaxTrackHeight], and adjusts scroll so the content under
// anchorY (pixels from the top of the content region) stays put.
func (v *Viewport) ZoomTrackHeight(anchorY float32, delta float64) {
	old := v.TrackHeight
	h := old * float32(zoomFactor(delta))
	if h < MinTrackHeight {
		h = MinTrackHeight
	}
	if h > MaxTrackHeight {
		h = MaxTrackHeight
	}
	v.TrackHeight = h

	yInContent := anchorY + v.Scroll
	v.Scroll = yInContent*(h/old) - anchorY
}

// Pan shifts the visible range by dx pixels (converted with timePerPixel)
// and the vertical scroll by dy pixels. Positive dx drags content rightward,
// moving the window earlier.
func (v *Viewport) Pan(dx, dy float32, timePerPixel float64) {
	dt := float64(dx) * timePerPixel
	v.Start -= dt
	v.End -= dt
	v.Scroll -= dy
}

// TimePerPixel returns seconds per horizontal pixel at the current zoom.
func (v *Viewport) TimePerPixel() float64 {
	if v.ContentWidth <= 0 {
		return 0
	}
	return (v.End - v.Start) / v.ContentWidth
}

// ClampToData keeps the window in touch with the data: the range may pan
// past the data but never fully beyond it, and scroll stays within the track
// content given the content region's pixel height.
func (v *Viewport) ClampToData(minTime, maxTime float64, peCount uint32, contentHeight float32) {
	duration := v.End - v.Start
	if v.Start > maxTime {
		v.Start = maxTime
		v.End = v.Start + duration
	}
	if v.End < minTime {
		v.End = minTime
		v.Start = v.End - duration
	}

	totalContent := float32(peCount) * v.TrackHeight
	maxScroll := totalContent - (contentHeight - v.TrackHeight)
	if maxScroll < 0 {
		maxScroll = 0
	}
	if v.Scroll < 0 {
		v.Scroll = 0
	}
	if v.Scroll > maxScroll {
		v.Scroll = maxScroll
	}
}

// SetContentExtent records the content region's horizontal pixel extent for
// this frame's pixel mapping.
func (v *Viewport) SetContentExtent(x, width float64) {
	v.ContentX = x
	v.ContentWidth = width
}

// TimeToPixel maps a time to an x pixel within the content extent.
func (v *Viewport) TimeToPixel(t float64) float64 {
	ratio := (t - v.Start) / (v.End - v.Start)
	return v.ContentX + ratio*v.ContentWidth
}

// PixelToTime is the exact inverse of TimeToPixel.
func (v *Viewport) PixelToTime(x float64) float64 {
	ratio := (x - v.ContentX) / v.ContentWidth
	return v.Start + ratio*(v.End-v.Start)
}

// SetHover records the hover time from a pointer x position inside the
// content region.
func (v *Viewport) SetHover(x float64) {
	v.HoverTime = v.PixelToTime(x)
	v.Hovering = true
}

// ClearHover drops the hover state when the pointer leaves the content.
func (v *Viewport) ClearHover() {
	v.Hovering = false
}

// ViewTime is the instant the bandwidth window is centered on: the hover
// time while hovering, else the cursor.
func (v *Viewport) ViewTime() float64 {
	if v.Hovering {
		return v.HoverTime
	}
	return v.CursorTime
}

// SetCursorFromPixel places the cursor at the time under x, clamped to the
// data range.
func (v *Viewport) SetCursorFromPixel(x, minTime, maxTime float64) {
	t := v.PixelToTime(x)
	if t < minTime {
		t = minTime
	}
	if t > maxTime {
		t = maxTime
	}
	v.CursorTime = t
}

// TogglePlay flips playback. Pressing play with the cursor already at the
// end restarts from the beginning.
func (v *Viewport) TogglePlay(minTime, maxTime float64) {
	if !v.Playing && v.CursorTime >= maxTime-playEndSlack {
		v.CursorTime = minTime
	}
	v.Playing = !v.Playing
}

// Advance moves the cursor by dt wall seconds of playback. When the cursor
// passes maxTime it clamps there and playback stops.
func (v *Viewport) Advance(dt, maxTime float64) {
	if !v.Playing {
		return
	}
	v.CursorTime += dt * v.Speed
	if v.CursorTime > maxTime {
		v.CursorTime = maxTime
		v.Playing = false
	}
}
