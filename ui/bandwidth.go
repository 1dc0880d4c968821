package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/kumaryash6352/csvpshmem-viewer/engine"
)

// renderBandwidth draws the windowed communication view: one line per PE
// with its fill intensity, then the directed edges sorted by volume.
func renderBandwidth(m Model, frame engine.Frame) string {
	var sb strings.Builder

	if frame.Hovering {
		sb.WriteString(hoverStyle.Render(
			fmt.Sprintf("Showing bandwidth at hover: %.6fs", frame.ViewTime)))
	} else {
		sb.WriteString(valueStyle.Render(
			fmt.Sprintf("Showing bandwidth at cursor: %.6fs", frame.ViewTime)))
	}
	sb.WriteString("\n\n")

	sb.WriteString(renderNodes(frame))
	sb.WriteString("\n\n")

	edges := append([]engine.Edge(nil), frame.Edges...)
	sort.Slice(edges, func(i, j int) bool {
		ti, tj := edges[i].Sent+edges[i].Received, edges[j].Sent+edges[j].Received
		if ti != tj {
			return ti > tj
		}
		if edges[i].Src != edges[j].Src {
			return edges[i].Src < edges[j].Src
		}
		return edges[i].Dst < edges[j].Dst
	})

	_, _, topRow, rows := m.contentGeometry()
	maxEdges := rows - (topRow - headerRows) - 4
	if maxEdges < 1 {
		maxEdges = 1
	}
	if len(edges) == 0 {
		sb.WriteString(dimStyle.Render("  no communication in window"))
		return sb.String()
	}
	for i, e := range edges {
		if i >= maxEdges {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(edges)-i)))
			break
		}
		sb.WriteString(renderEdge(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// renderNodes lays the PEs out on one wrapped strip with their fill colors.
func renderNodes(frame engine.Frame) string {
	parts := make([]string, 0, len(frame.Nodes))
	for _, n := range frame.Nodes {
		style := lipgloss.NewStyle().Foreground(composite(n.Fill))
		marker := "●"
		if n.Focused {
			marker = "◉"
		}
		label := fmt.Sprintf("%s PE%d", marker, n.PE)
		if n.Focused {
			label += " [focus]"
		}
		parts = append(parts, style.Render(label))
	}
	return "  " + strings.Join(parts, "   ")
}

// renderEdge prints one directed edge with a bar scaled to its stroke width
// and the engine's volume/ratio color composited onto the background.
func renderEdge(e engine.Edge) string {
	style := lipgloss.NewStyle().Foreground(composite(e.Color))
	bar := strings.Repeat("━", int(e.Width*2)+1)

	var vol string
	switch {
	case e.Sent > 0 && e.Received > 0:
		vol = fmt.Sprintf("TX %s, RX %s", humanize.Bytes(e.Sent), humanize.Bytes(e.Received))
	case e.Received > 0:
		vol = fmt.Sprintf("RX %s", humanize.Bytes(e.Received))
	default:
		vol = fmt.Sprintf("TX %s", humanize.Bytes(e.Sent))
	}

	line := fmt.Sprintf("  PE %-3d → PE %-3d %-22s ", e.Src, e.Dst, vol)
	if e.Muted {
		return dimStyle.Render(line) + style.Render(bar)
	}
	return valueStyle.Render(line) + style.Render(bar)
}
