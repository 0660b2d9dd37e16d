package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/miniticker/internal/ticker"
)

// minTickerWidth keeps the widget from collapsing in box layouts; the text
// itself never contributes to the minimum width.
const minTickerWidth float32 = 40

// TickerWidget scrolls one line of text through a clipping viewport. The
// scroll state lives in a ticker.Ticker; the widget only moves a
// canvas.Text to the positions it reports.
type TickerWidget struct {
	widget.BaseWidget

	model   *ticker.Ticker
	style   fyne.TextStyle
	text    *canvas.Text
	content *fyne.Container
	clip    *container.Scroll
}

// NewTickerWidget creates an idle ticker animated by fyne's animation runner.
func NewTickerWidget(cfg ticker.Config) *TickerWidget {
	return newTickerWidget(cfg, fyneTransitioner{})
}

func newTickerWidget(cfg ticker.Config, host ticker.Transitioner) *TickerWidget {
	w := &TickerWidget{}
	w.text = canvas.NewText("", colorOrForeground(cfg.TextColor))
	w.text.Alignment = fyne.TextAlignLeading
	w.content = container.NewWithoutLayout(w.text)
	w.clip = container.NewScroll(w.content)
	w.clip.Direction = container.ScrollNone
	w.model = ticker.New(ticker.Rect{}, fyneMeasurer{style: w.style}, host,
		ticker.WithConfig(cfg),
		ticker.WithOnMove(w.moveText),
		ticker.WithOnLayout(w.applyLayout),
	)
	w.ExtendBaseWidget(w)
	return w
}

// CreateRenderer implements fyne.Widget.
func (w *TickerWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.clip)
}

// MinSize is a narrow strip one default line tall.
func (w *TickerWidget) MinSize() fyne.Size {
	cfg := w.model.Config()
	size := cfg.FontSize
	if size <= 0 {
		size = ticker.DefaultFontSize
	}
	h := fyneMeasurer{style: w.style}.MeasureText("M", size).Height
	return fyne.NewSize(minTickerWidth, h)
}

// Resize updates the viewport and re-fits the text to the new height.
func (w *TickerWidget) Resize(size fyne.Size) {
	w.BaseWidget.Resize(size)
	w.model.Resize(size.Width, size.Height)
}

// SetText replaces the scrolling text.
func (w *TickerWidget) SetText(text string) {
	w.model.SetText(text)
}

// StartAnimation starts scrolling; repeated calls are ignored.
func (w *TickerWidget) StartAnimation() {
	w.model.Start()
}

// StopAnimation freezes the text where it is.
func (w *TickerWidget) StopAnimation() {
	w.model.Stop()
}

// ApplyConfiguration merges a partial update into the configuration.
// Call SetText (or restart) to see font changes.
func (w *TickerWidget) ApplyConfiguration(p ticker.PartialConfig) {
	w.model.ApplyConfiguration(p)
}

// IsRunning reports whether the text is scrolling.
func (w *TickerWidget) IsRunning() bool {
	return w.model.State() == ticker.Running
}

// Model exposes the underlying ticker.
func (w *TickerWidget) Model() *ticker.Ticker { return w.model }

// Close stops the animation for good.
func (w *TickerWidget) Close() {
	w.model.Close()
}

func (w *TickerWidget) moveText(x float32) {
	w.text.Move(fyne.NewPos(x, 0))
	canvas.Refresh(w.text)
}

func (w *TickerWidget) applyLayout(l ticker.Layout, col color.Color) {
	w.text.Text = w.model.Text()
	w.text.TextSize = l.FontSize
	w.text.TextStyle = w.style
	w.text.Color = colorOrForeground(col)
	w.text.Resize(fyne.NewSize(l.Box.Width, l.Box.Height))
	w.content.Resize(fyne.NewSize(w.Size().Width, l.Box.Height))
	canvas.Refresh(w.text)
}

func colorOrForeground(c color.Color) color.Color {
	if c == nil {
		return theme.ForegroundColor()
	}
	return c
}
