// Package term hosts the ticker in a terminal using bubbletea. Frame ticks
// advance a ticker.SteppedTransitioner, so the engine itself still only sees
// "animate from A to B, tell me when done".
package term

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/acarl005/stripansi"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/edward-ap/miniticker/internal/config"
	"github.com/edward-ap/miniticker/internal/textmeasure"
	"github.com/edward-ap/miniticker/internal/ticker"
)

const (
	frameInterval = 50 * time.Millisecond
	// maxFrameGap caps the clock jump after the process was suspended.
	maxFrameGap = 500 * time.Millisecond
	minDuration = 500 * time.Millisecond
	maxDuration = 2 * time.Minute
)

type frameMsg time.Time

// ReloadMsg carries a live configuration change into the program.
type ReloadMsg struct {
	Patch ticker.PartialConfig
	Text  string
}

var (
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the bubbletea model for a one-row ticker.
type Model struct {
	tk    *ticker.Ticker
	clock *ticker.SteppedTransitioner
	last  time.Time
}

// New builds an idle model whose viewport is width cells wide.
func New(text string, cfg ticker.Config, width int) Model {
	if width < 1 {
		width = 1
	}
	clock := ticker.NewSteppedTransitioner()
	tk := ticker.New(ticker.Rect{Width: float32(width), Height: 1}, textmeasure.CellMeasurer{}, clock, ticker.WithConfig(cfg))
	tk.SetText(text)
	return Model{tk: tk, clock: clock}
}

// Ticker exposes the underlying model.
func (m Model) Ticker() *ticker.Ticker { return m.tk }

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Init starts scrolling and the frame clock.
func (m Model) Init() tea.Cmd {
	m.tk.Start()
	return tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			dt := now.Sub(m.last)
			if dt > maxFrameGap {
				dt = maxFrameGap
			}
			m.clock.Advance(dt)
		}
		m.last = now
		return m, tick()

	case tea.WindowSizeMsg:
		// border takes two columns
		w := msg.Width - 2
		if w < 1 {
			w = 1
		}
		m.tk.Resize(float32(w), 1)
		return m, nil

	case ReloadMsg:
		m.tk.ApplyConfiguration(msg.Patch)
		m.tk.SetText(msg.Text)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.tk.Close()
			return m, tea.Quit
		case " ":
			if m.tk.State() == ticker.Running {
				m.tk.Stop()
			} else {
				m.tk.Start()
			}
		case "+", "=":
			m.scaleDuration(0.5)
		case "-", "_":
			m.scaleDuration(2)
		}
	}
	return m, nil
}

// scaleDuration changes the pass duration and restarts a running scroll so
// the new speed is visible immediately.
func (m Model) scaleDuration(f float64) {
	d := time.Duration(float64(m.tk.Config().Duration) * f)
	if d < minDuration {
		d = minDuration
	}
	if d > maxDuration {
		d = maxDuration
	}
	m.tk.ApplyConfiguration(ticker.PartialConfig{Duration: ticker.DurationPtr(d)})
	if m.tk.State() == ticker.Running {
		m.tk.Stop()
		m.tk.Start()
	}
}

// viewWidth is the viewport width in cells, taken from the ticker bounds.
func (m Model) viewWidth() int {
	return int(m.tk.Bounds().Width)
}

// View renders the clipped ticker row and a status line.
func (m Model) View() string {
	cfg := m.tk.Config()
	row := Window(m.tk.Text(), int(math.Round(float64(m.tk.Position()))), m.viewWidth())
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(config.FormatColor(cfg.TextColor)))
	status := fmt.Sprintf("%s · %s/pass · space start/stop · +/- speed · q quit",
		m.tk.State(), cfg.Duration.Round(10*time.Millisecond))
	return borderStyle.Render(style.Render(row)) + "\n" + statusStyle.Render(status)
}

// Window renders text whose left edge sits at column x inside a viewport of
// width cells. Cells outside the viewport are clipped; wide runes that would
// straddle an edge are replaced by spaces.
func Window(text string, x, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	used := 0
	if x > 0 {
		used = min(x, width)
		b.WriteString(strings.Repeat(" ", used))
	}
	col := x
	for _, r := range stripansi.Strip(text) {
		if col >= width {
			break
		}
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		switch {
		case col >= 0 && col+rw <= width:
			b.WriteRune(r)
			used += rw
		case col+rw > 0:
			vis := min(col+rw, width) - max(col, 0)
			b.WriteString(strings.Repeat(" ", vis))
			used += vis
		}
		col += rw
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}
