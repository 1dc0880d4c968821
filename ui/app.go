package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kumaryash6352/csvpshmem-viewer/config"
	"github.com/kumaryash6352/csvpshmem-viewer/engine"
	"github.com/kumaryash6352/csvpshmem-viewer/model"
)

// Page identifies the current screen.
type Page int

const (
	PageTimeline Page = iota
	PageBandwidth
	pageCount
)

var pageNames = []string{"Timeline", "Bandwidth"}

// frameMsg drives playback repaints while playing.
type frameMsg time.Time

// frameInterval is a repaint scheduling hint, not a timing guarantee; dt is
// always read from the host clock.
const frameInterval = 33 * time.Millisecond

// Terminal geometry: one cell is one horizontal pixel; vertically a cell
// stands for cellPx viewport pixels, so the default 16 px track height is
// one row.
const (
	cellPx     = 16.0
	labelWidth = 14
	headerRows = 2
	rulerRows  = 1
	footerRows = 3
)

// Model is the bubbletea model.
type Model struct {
	profile *model.ProfileData
	vp      *engine.Viewport
	loadErr error

	width  int
	height int

	page     Page
	showHelp bool

	// Bandwidth focus PE, keyboard-selected.
	focusPE    uint32
	focusValid bool

	// Mouse tracking for hover/tooltip/drag.
	mouseX   int
	mouseY   int
	overGrid bool
	dragging bool
	lastX    int
	lastY    int

	// Host clock reading at the previous playback frame.
	lastFrame time.Time
}

// NewModel builds the TUI model. loadErr renders as a terminal error screen
// instead of the viewer.
func NewModel(profile *model.ProfileData, cfg config.Config, loadErr error) Model {
	m := Model{profile: profile, loadErr: loadErr}
	if profile != nil {
		vp := engine.NewViewport(profile.MinTime, profile.MaxTime)
		vp.WindowSize = cfg.WindowSizeSec
		vp.Speed = cfg.PlaybackSpeed
		vp.TrackHeight = cfg.TrackHeight
		vp.ShowRX = cfg.ShowRX
		vp.ShowTX = cfg.ShowTX
		m.vp = vp
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// contentGeometry returns the timeline content region in cells.
func (m Model) contentGeometry() (x, width, topRow, rows int) {
	x = labelWidth
	width = m.width - labelWidth
	if width < 1 {
		width = 1
	}
	topRow = headerRows + rulerRows
	rows = m.height - topRow - footerRows
	if rows < 1 {
		rows = 1
	}
	return
}

// syncViewport feeds this frame's geometry to the viewport and clamps it
// against the data.
func (m *Model) syncViewport() {
	x, width, _, rows := m.contentGeometry()
	m.vp.SetContentExtent(float64(x), float64(width))
	m.vp.ClampToData(m.profile.MinTime, m.profile.MaxTime, m.profile.PECount, float32(rows)*cellPx)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.loadErr != nil {
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.loadErr != nil || m.vp == nil {
			return m, nil
		}
		return m.handleMouse(msg)

	case frameMsg:
		if m.vp == nil || !m.vp.Playing {
			return m, nil
		}
		now := time.Time(msg)
		dt := now.Sub(m.lastFrame).Seconds()
		m.lastFrame = now
		m.vp.Advance(dt, m.profile.MaxTime)
		if m.vp.Playing {
			return m, nextFrame()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := m.vp
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "tab":
		m.page = (m.page + 1) % pageCount
	case " ", "space":
		vp.TogglePlay(m.profile.MinTime, m.profile.MaxTime)
		if vp.Playing {
			m.lastFrame = time.Now()
			return m, nextFrame()
		}
	case "left", "h":
		vp.Pan(20, 0, vp.TimePerPixel())
	case "right", "l":
		vp.Pan(-20, 0, vp.TimePerPixel())
	case "up", "k":
		vp.Pan(0, cellPx, 0)
	case "down", "j":
		vp.Pan(0, -cellPx, 0)
	case "+", "=":
		vp.ZoomTime(0.5, 40)
	case "-", "_":
		vp.ZoomTime(0.5, -40)
	case "K":
		m.zoomTracksAtCenter(40)
	case "J":
		m.zoomTracksAtCenter(-40)
	case "[":
		vp.WindowSize /= 2
		if vp.WindowSize < 1e-4 {
			vp.WindowSize = 1e-4
		}
	case "]":
		vp.WindowSize *= 2
		if span := m.profile.Duration(); span > 1e-4 && vp.WindowSize > span {
			vp.WindowSize = span
		}
	case "r":
		vp.ShowRX = !vp.ShowRX
	case "t":
		vp.ShowTX = !vp.ShowTX
	case "<":
		vp.Speed /= 2
		if vp.Speed < 0.1 {
			vp.Speed = 0.1
		}
	case ">":
		vp.Speed *= 2
	case ".":
		if !m.focusValid {
			m.focusValid = true
			m.focusPE = 0
		} else if m.focusPE+1 < m.profile.PECount {
			m.focusPE++
		}
	case ",":
		if m.focusValid && m.focusPE > 0 {
			m.focusPE--
		}
	case "esc":
		m.focusValid = false
	case "0":
		vp.Start = m.profile.MinTime
		vp.End = m.profile.MaxTime
		vp.Scroll = 0
	}
	m.syncViewport()
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	vp := m.vp
	x, width, topRow, rows := m.contentGeometry()
	m.syncViewport()

	inContent := msg.X >= x && msg.X < x+width &&
		msg.Y >= topRow && msg.Y < topRow+rows
	onRuler := msg.Y == topRow-1 && msg.X >= x && msg.X < x+width

	m.mouseX = msg.X
	m.mouseY = msg.Y
	m.overGrid = inContent

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.wheelZoom(msg, 40, x, width, topRow)
		m.syncViewport()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.wheelZoom(msg, -40, x, width, topRow)
		m.syncViewport()
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.dragging = true
		m.lastX = msg.X
		m.lastY = msg.Y
		if onRuler || (inContent && msg.Alt) {
			vp.SetCursorFromPixel(float64(msg.X), m.profile.MinTime, m.profile.MaxTime)
		}
	case tea.MouseActionMotion:
		if inContent && m.page == PageTimeline {
			vp.SetHover(float64(msg.X))
		} else {
			vp.ClearHover()
		}
		if m.dragging && msg.Button == tea.MouseButtonLeft {
			if onRuler || (inContent && msg.Alt) {
				vp.SetCursorFromPixel(float64(msg.X), m.profile.MinTime, m.profile.MaxTime)
			} else if inContent {
				vp.Pan(float32(msg.X-m.lastX), float32(msg.Y-m.lastY)*cellPx, vp.TimePerPixel())
			}
			m.lastX = msg.X
			m.lastY = msg.Y
		}
	case tea.MouseActionRelease:
		m.dragging = false
	}
	m.syncViewport()
	return m, nil
}

// wheelZoom routes a wheel step: shift scales the track height around the
// pointer row, plain wheel zooms time around the pointer column.
func (m *Model) wheelZoom(msg tea.MouseMsg, delta float64, x, width, topRow int) {
	if msg.Shift {
		anchorY := float32(msg.Y-topRow) * cellPx
		m.vp.ZoomTrackHeight(anchorY, delta)
		return
	}
	ratio := float64(msg.X-x) / float64(width)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	m.vp.ZoomTime(ratio, delta)
}

func (m *Model) zoomTracksAtCenter(delta float64) {
	_, _, _, rows := m.contentGeometry()
	m.vp.ZoomTrackHeight(float32(rows)/2*cellPx, delta)
}

func (m Model) View() string {
	if m.loadErr != nil {
		return titleStyle.Render("LOAD ERROR") + "\n\n" +
			valueStyle.Render(m.loadErr.Error()) + "\n\n" +
			dimStyle.Render("press any key to exit") + "\n"
	}
	if m.width == 0 || m.profile == nil {
		return "loading..."
	}
	if m.showHelp {
		return renderHelp()
	}

	m.syncViewport()
	frame := engine.BuildFrame(m.profile, m.vp, m.focusPE, m.focusValid)

	var body string
	switch m.page {
	case PageBandwidth:
		body = renderBandwidth(m, frame)
	default:
		body = renderTimeline(m, frame)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(frame),
		body,
		m.renderFooter(frame),
	)
}

func (m Model) renderHeader(frame engine.Frame) string {
	vp := m.vp
	play := "stopped"
	if frame.Playing {
		play = fmt.Sprintf("playing x%.1f", vp.Speed)
	}
	filters := ""
	if vp.ShowTX {
		filters += "TX"
	}
	if vp.ShowRX {
		if filters != "" {
			filters += "+"
		}
		filters += "RX"
	}
	if filters == "" {
		filters = "none"
	}

	at := fmt.Sprintf("cursor %.6fs", vp.CursorTime)
	view := valueStyle.Render(fmt.Sprintf("view %.6fs", frame.ViewTime))
	if frame.Hovering {
		view = hoverStyle.Render(fmt.Sprintf("hover %.6fs", frame.HoverTime))
	}

	line1 := titleStyle.Render("PSHMEM TRACE") + "  " +
		labelStyle.Render(pageNames[m.page]) + "  " +
		dimStyle.Render(fmt.Sprintf("%d PEs, %d events", m.profile.PECount, len(m.profile.Events)))
	line2 := valueStyle.Render(at) + "  " + view + "  " +
		labelStyle.Render(fmt.Sprintf("window %.4gs", vp.WindowSize)) + "  " +
		labelStyle.Render("filter "+filters) + "  " +
		labelStyle.Render(play)
	return line1 + "\n" + line2
}

func (m Model) renderFooter(frame engine.Frame) string {
	tooltip := m.renderTooltip(frame)
	help := helpStyle.Render("space play  tab page  +/- zoom  [/] window  r/t filters  ,/. focus  ? help  q quit")
	return tooltip + "\n" + help
}

func renderHelp() string {
	lines := []string{
		titleStyle.Render("KEYS"),
		"",
		"  space        play / pause (restarts when at the end)",
		"  tab          switch timeline / bandwidth page",
		"  arrows, hjkl pan time and scroll tracks",
		"  + / -        zoom time at the view center",
		"  J / K        shrink / grow track height",
		"  wheel        zoom time at pointer (shift: track height)",
		"  click ruler  set cursor (alt-click in content too)",
		"  drag         pan",
		"  [ / ]        halve / double the bandwidth window",
		"  r / t        toggle RX / TX aggregation",
		"  < / >        halve / double playback speed",
		"  , / .        move bandwidth focus PE (esc clears)",
		"  0            reset view to the full trace",
		"  q            quit",
		"",
		dimStyle.Render("press any key to return"),
	}
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}
