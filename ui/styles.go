package ui

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/charmbracelet/lipgloss"

	"github.com/kumaryash6352/csvpshmem-viewer/engine"
)

var (
	// Colors
	colorYellow = lipgloss.Color("#F1FA8C")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorWhite  = lipgloss.Color("#F8F8F2")
	colorGray   = lipgloss.Color("#6272A4")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	labelStyle = lipgloss.NewStyle().Foreground(colorGray)
	valueStyle = lipgloss.NewStyle().Foreground(colorWhite)
	hoverStyle = lipgloss.NewStyle().Foreground(colorYellow)
	dimStyle   = lipgloss.NewStyle().Foreground(colorGray)
	helpStyle  = lipgloss.NewStyle().Foreground(colorGray)
	rulerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#707070"))
)

// background the bandwidth alpha channel is composited against.
var background = colorful.Color{R: 0x12 / 255.0, G: 0x12 / 255.0, B: 0x12 / 255.0}

// fg returns a style with the given engine color as foreground.
func fg(c engine.RGBA) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}

// composite flattens an RGBA color onto the dark background, since the
// terminal has no alpha channel.
func composite(c engine.RGBA) lipgloss.Color {
	a := float64(c.A) / 255
	blended := colorful.Color{
		R: background.R + (float64(c.R)/255-background.R)*a,
		G: background.G + (float64(c.G)/255-background.G)*a,
		B: background.B + (float64(c.B)/255-background.B)*a,
	}
	return lipgloss.Color(blended.Hex())
}
