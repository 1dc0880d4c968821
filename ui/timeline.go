package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/kumaryash6352/csvpshmem-viewer/engine"
)

// cellColor is the resolved foreground of one timeline cell, "" = empty.
type cellColor struct {
	glyph rune
	color lipgloss.Color
	set   bool
}

// renderTimeline draws the PE tracks with their event boxes, the ruler, the
// hover window highlight and the cursor marker.
func renderTimeline(m Model, frame engine.Frame) string {
	x, width, _, rows := m.contentGeometry()
	vp := m.vp

	var sb strings.Builder
	sb.WriteString(renderRuler(m, frame, x, width))
	sb.WriteByte('\n')

	// Paint grid: grid[row][col] resolved from event boxes.
	grid := make([][]cellColor, rows)
	for r := range grid {
		grid[r] = make([]cellColor, width)
	}
	for _, box := range frame.Boxes {
		top := float32(box.Row)*vp.TrackHeight - vp.Scroll
		r0 := int(top / cellPx)
		r1 := int((top + vp.TrackHeight - 1) / cellPx)
		c0 := int(box.X0) - x
		c1 := int(box.X1) - x
		if c1 < 0 || c0 >= width {
			continue
		}
		if c0 < 0 {
			c0 = 0
		}
		if c1 >= width {
			c1 = width - 1
		}
		color := lipgloss.Color(box.Color.Hex())
		for r := r0; r <= r1; r++ {
			if r < 0 || r >= rows {
				continue
			}
			for c := c0; c <= c1; c++ {
				grid[r][c] = cellColor{glyph: '█', color: color, set: true}
			}
		}
	}

	// Hover window tint on empty cells.
	if frame.Hovering {
		h0, h1 := int(frame.HoverX0)-x, int(frame.HoverX1)-x
		for r := 0; r < rows; r++ {
			for c := h0; c <= h1; c++ {
				if c >= 0 && c < width && !grid[r][c].set {
					grid[r][c] = cellColor{glyph: '·', color: colorYellow, set: true}
				}
			}
		}
	}

	// Cursor column overlays everything.
	if frame.CursorVisible {
		cc := int(frame.CursorX) - x
		if cc >= 0 && cc < width {
			for r := 0; r < rows; r++ {
				grid[r][cc] = cellColor{glyph: '│', color: colorWhite, set: true}
			}
		}
	}

	for r := 0; r < rows; r++ {
		sb.WriteString(renderTrackLabel(m, r))
		sb.WriteString(renderGridRow(grid[r]))
		if r < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// renderTrackLabel writes the fixed-width "PE n hostname" gutter for one
// screen row, or padding when the row is inside a track's body.
func renderTrackLabel(m Model, row int) string {
	vp := m.vp
	rowPx := float32(row) * cellPx
	pe := int((rowPx + vp.Scroll) / vp.TrackHeight)
	pad := strings.Repeat(" ", labelWidth)
	if pe < 0 || uint32(pe) >= m.profile.PECount {
		return pad
	}
	// Label only the first screen row of each track.
	if row > 0 && int((rowPx-cellPx+vp.Scroll)/vp.TrackHeight) == pe {
		return pad
	}
	host := m.profile.Hostname(uint32(pe))
	label := fmt.Sprintf("PE %d %s", pe, host)
	if len(label) > labelWidth-1 {
		label = label[:labelWidth-1]
	}
	return labelStyle.Render(label) + strings.Repeat(" ", labelWidth-len(label))
}

// renderGridRow flattens one row of cells into styled runs.
func renderGridRow(row []cellColor) string {
	var sb strings.Builder
	runStart := 0
	flush := func(end int) {
		if end <= runStart {
			return
		}
		c := row[runStart]
		text := make([]rune, 0, end-runStart)
		for i := runStart; i < end; i++ {
			if row[i].set {
				text = append(text, row[i].glyph)
			} else {
				text = append(text, ' ')
			}
		}
		if c.set {
			sb.WriteString(lipgloss.NewStyle().Foreground(c.color).Render(string(text)))
		} else {
			sb.WriteString(string(text))
		}
		runStart = end
	}
	for i := 1; i <= len(row); i++ {
		if i == len(row) || !sameCell(row[i], row[runStart]) {
			flush(i)
		}
	}
	return sb.String()
}

func sameCell(a, b cellColor) bool {
	return a.set == b.set && (!a.set || a.color == b.color)
}

// renderRuler draws tick marks and labels over the content region, plus the
// cursor head.
func renderRuler(m Model, frame engine.Frame, x, width int) string {
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = '─'
	}
	for _, tick := range frame.Ticks {
		col := int(m.vp.TimeToPixel(tick)) - x
		if col < 0 || col >= width {
			continue
		}
		cells[col] = '┼'
		label := []rune(fmt.Sprintf("%.4gs", tick))
		for j, r := range label {
			if col+1+j < width {
				cells[col+1+j] = r
			}
		}
	}
	if frame.CursorVisible {
		if col := int(frame.CursorX) - x; col >= 0 && col < width {
			cells[col] = '▼'
		}
	}
	return strings.Repeat(" ", labelWidth) + rulerStyle.Render(string(cells))
}

// renderTooltip shows the event under the pointer, if any.
func (m Model) renderTooltip(frame engine.Frame) string {
	if !m.overGrid || m.page != PageTimeline {
		return dimStyle.Render("hover an event for details")
	}
	_, _, topRow, _ := m.contentGeometry()
	rowPx := float32(m.mouseY-topRow) * cellPx
	pe := int((rowPx + m.vp.Scroll) / m.vp.TrackHeight)
	col := float64(m.mouseX)

	for _, box := range frame.Boxes {
		if int(box.Row) != pe || box.X0 > col+1 || box.X1 < col {
			continue
		}
		tt := engine.BuildTooltip(m.profile, box.Event)
		parts := []string{
			fg(box.Color).Render(tt.Function),
			labelStyle.Render(fmt.Sprintf("PE %d on %s", tt.PE, tt.Hostname)),
			valueStyle.Render(fmt.Sprintf("%.9fs", tt.Duration)),
		}
		if tt.TotalBytes > 0 {
			data := humanize.Bytes(tt.TotalBytes)
			if tt.RXBytes > 0 && tt.TXBytes > 0 {
				data = fmt.Sprintf("%s (RX %s, TX %s)",
					data, humanize.Bytes(tt.RXBytes), humanize.Bytes(tt.TXBytes))
			}
			parts = append(parts, valueStyle.Render(data))
			if tt.GBps > 0 {
				parts = append(parts, valueStyle.Render(fmt.Sprintf("%.2f GB/s", tt.GBps)))
			}
		}
		if len(tt.Frames) > 0 {
			parts = append(parts, dimStyle.Render(strings.Join(tt.Frames, " < ")))
		}
		return strings.Join(parts, "  ")
	}
	return dimStyle.Render("hover an event for details")
}
