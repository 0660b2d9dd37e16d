// Package tickerapp wires the ticker widget, its controls and the settings
// file together into the MiniTicker demo window.
package tickerapp

import (
	"image/color"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	config "github.com/edward-ap/miniticker/internal/config"
	ticker "github.com/edward-ap/miniticker/internal/ticker"
	ui "github.com/edward-ap/miniticker/internal/ui"
)

const (
	minPass = 2 * time.Second
	maxPass = 30 * time.Second
)

// colorChoices are offered in the colour select, name -> #rrggbb.
var colorChoices = []struct{ name, hex string }{
	{"White", "#ffffff"},
	{"Amber", "#ffaa00"},
	{"Green", "#33dd66"},
	{"Cyan", "#33ccff"},
	{"Red", "#ff4444"},
}

// App owns the fyne application, the main window, the ticker and the
// settings store.
type App struct {
	fa    fyne.App
	w     fyne.Window
	store *config.Store

	ticker   *ui.TickerWidget
	ind      *ui.RunIndicator
	playBtn  *widget.Button
	speed    *ui.DurationSlider
	autoFit  *widget.Check
	sizeSel  *widget.Select
	colorSel *widget.Select
	entry    *widget.Entry

	// silent suppresses control callbacks while the UI is synced from disk
	silent bool
}

// NewApp loads the settings and builds the window.
func NewApp() *App {
	store, err := config.Load()
	if err != nil {
		log.Println("config load error:", err)
	}

	fa := app.NewWithID(config.AppID)
	ui.UseCompactTheme()
	if AppIcon != nil {
		fa.SetIcon(AppIcon)
	}
	w := fa.NewWindow("MiniTicker")
	w.SetMaster()
	w.SetPadded(false)
	w.Resize(fyne.NewSize(config.DefaultWidth, config.DefaultHeight*3))

	a := &App{fa: fa, w: w, store: store}
	a.buildUI(a.settings())

	if store != nil {
		store.Watch(func(p ticker.PartialConfig, s config.Settings) {
			ui.CallOnMain(func() { a.applyReload(p, s) })
		})
	}

	w.SetCloseIntercept(func() {
		a.saveSettings()
		a.ticker.Close()
		a.syncRunControls()
		w.Close()
		fa.Quit()
	})
	w.Canvas().SetOnTypedKey(a.handleShortcutKey)
	return a
}

// Run shows the window, starts scrolling and enters the fyne event loop.
func (a *App) Run() {
	a.start()
	a.w.ShowAndRun()
}

func (a *App) settings() config.Settings {
	if a.store == nil {
		def := ticker.DefaultConfig()
		return config.Settings{
			Duration: def.Duration,
			AutoFit:  def.AutoFitText,
			FontSize: def.FontSize,
			Color:    config.DefaultColor,
			Text:     config.DefaultText,
		}
	}
	return a.store.Settings()
}

// buildUI lays out the strip: play button and lamp on the left, the ticker
// in the middle, and a row of controls underneath.
func (a *App) buildUI(s config.Settings) {
	a.silent = true
	darkBg := color.NRGBA{0x1a, 0x1a, 0x1a, 0xFF}

	a.playBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), a.togglePlay)
	a.playBtn.Importance = widget.LowImportance
	a.ind = ui.NewRunIndicator(12)
	left := container.NewHBox(a.playBtn, a.ind.CanvasObject(), widget.NewSeparator())

	a.ticker = ui.NewTickerWidget(s.TickerConfig())
	a.ticker.SetText(s.Text)
	tickerBg := canvas.NewRectangle(color.NRGBA{0x00, 0x99, 0xFF, 0x40})
	center := container.NewStack(tickerBg, a.ticker)

	strip := container.NewStack(
		canvas.NewRectangle(darkBg),
		container.NewBorder(nil, nil, left, nil, center),
	)

	a.speed = ui.NewDurationSlider(minPass, maxPass)
	a.speed.Value = clampPass(s.Duration)
	a.speed.OnChanged = a.setDuration

	a.autoFit = widget.NewCheck("Auto-fit", a.setAutoFit)
	a.autoFit.SetChecked(s.AutoFit)

	a.sizeSel = widget.NewSelect([]string{"10", "12", "14", "18", "24", "32"}, a.setFontSize)
	a.sizeSel.PlaceHolder = "Size"
	a.syncSizeSelect(s.FontSize, s.AutoFit)

	names := make([]string, len(colorChoices))
	for i, c := range colorChoices {
		names[i] = c.name
	}
	a.colorSel = widget.NewSelect(names, a.setColor)
	a.colorSel.PlaceHolder = "Colour"
	a.syncColorSelect(s.Color)

	a.entry = widget.NewEntry()
	a.entry.SetPlaceHolder("Ticker text, Enter to apply")
	a.entry.SetText(s.Text)
	a.entry.OnSubmitted = a.submitText

	speedBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, a.speed.MinSize().Height)), a.speed)
	controls := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel("Speed"), container.NewCenter(speedBox)),
		container.NewHBox(a.autoFit, a.sizeSel, a.colorSel),
		a.entry,
	)

	stripHeight := canvas.NewRectangle(color.NRGBA{0, 0, 0, 0})
	stripHeight.SetMinSize(fyne.NewSize(1, config.DefaultHeight))
	a.w.SetContent(container.NewBorder(
		container.NewStack(stripHeight, strip),
		nil, nil, nil,
		container.NewPadded(controls),
	))
	a.silent = false
}

// handleShortcutKey: space toggles, up/down change speed.
func (a *App) handleShortcutKey(ke *fyne.KeyEvent) {
	if ke == nil {
		return
	}
	switch ke.Name {
	case fyne.KeySpace:
		a.togglePlay()
	case fyne.KeyUp:
		a.speed.SetValue(a.speed.Value - time.Second)
	case fyne.KeyDown:
		a.speed.SetValue(a.speed.Value + time.Second)
	}
}

func (a *App) togglePlay() {
	if a.ticker.IsRunning() {
		a.stop()
		return
	}
	a.start()
}

func (a *App) start() {
	a.ticker.StartAnimation()
	a.syncRunControls()
}

func (a *App) stop() {
	a.ticker.StopAnimation()
	a.syncRunControls()
}

// syncRunControls brings the play button and lamp in line with the ticker.
func (a *App) syncRunControls() {
	running := a.ticker.IsRunning()
	if running == a.ind.Active() {
		return
	}
	if running {
		a.playBtn.SetIcon(theme.MediaStopIcon())
	} else {
		a.playBtn.SetIcon(theme.MediaPlayIcon())
	}
	a.ind.SetActive(running)
}

// restartIfRunning makes configuration changes visible right away; a
// restart re-fits the text.
func (a *App) restartIfRunning() {
	if !a.ticker.IsRunning() {
		return
	}
	a.ticker.StopAnimation()
	a.ticker.StartAnimation()
}

// refit shows font and colour changes: a running ticker restarts, an idle
// one re-lays out its current text.
func (a *App) refit() {
	if a.ticker.IsRunning() {
		a.restartIfRunning()
		return
	}
	a.relayout()
}

func (a *App) setDuration(d time.Duration) {
	if a.silent {
		return
	}
	a.ticker.ApplyConfiguration(ticker.PartialConfig{Duration: ticker.DurationPtr(d)})
	a.restartIfRunning()
}

func (a *App) setAutoFit(on bool) {
	if a.silent || a.ticker == nil {
		return
	}
	a.ticker.ApplyConfiguration(ticker.PartialConfig{AutoFitText: ticker.BoolPtr(on)})
	a.refit()
	if a.sizeSel != nil {
		a.syncSizeSelect(a.ticker.Model().Config().FontSize, on)
	}
}

func (a *App) setFontSize(v string) {
	if a.silent {
		return
	}
	size, ok := parseSize(v)
	if !ok {
		return
	}
	a.ticker.ApplyConfiguration(ticker.PartialConfig{FontSize: ticker.Float32Ptr(size)})
	a.refit()
}

func (a *App) setColor(name string) {
	if a.silent {
		return
	}
	for _, c := range colorChoices {
		if c.name != name {
			continue
		}
		col, err := config.ParseColor(c.hex)
		if err != nil {
			return
		}
		a.ticker.ApplyConfiguration(ticker.PartialConfig{TextColor: col})
		a.refit()
		return
	}
}

func (a *App) submitText(s string) {
	a.ticker.SetText(strings.TrimSpace(s))
}

// relayout re-applies the current text so font and colour changes show.
func (a *App) relayout() {
	a.ticker.SetText(a.ticker.Model().Text())
}

// applyReload handles a settings file edit made while the window is open.
func (a *App) applyReload(p ticker.PartialConfig, s config.Settings) {
	a.ticker.ApplyConfiguration(p)
	a.ticker.SetText(s.Text)

	a.silent = true
	if p.Duration != nil {
		a.speed.SetValue(clampPass(*p.Duration))
	}
	a.autoFit.SetChecked(s.AutoFit)
	a.syncSizeSelect(s.FontSize, s.AutoFit)
	a.syncColorSelect(s.Color)
	a.entry.SetText(s.Text)
	a.silent = false
	if p.Duration != nil {
		a.restartIfRunning()
	}
}

func (a *App) syncSizeSelect(size float32, autoFit bool) {
	a.sizeSel.SetSelected(formatSize(size))
	if autoFit {
		a.sizeSel.Disable()
	} else {
		a.sizeSel.Enable()
	}
}

func (a *App) syncColorSelect(hex string) {
	for _, c := range colorChoices {
		if strings.EqualFold(c.hex, strings.TrimSpace(hex)) {
			a.colorSel.SetSelected(c.name)
			return
		}
	}
	a.colorSel.ClearSelected()
}

// saveSettings persists what is on screen; failures are only logged.
func (a *App) saveSettings() {
	if a.store == nil {
		return
	}
	cfg := a.ticker.Model().Config()
	s := a.store.Settings()
	s.Duration = cfg.Duration
	s.AutoFit = cfg.AutoFitText
	s.FontSize = cfg.FontSize
	s.Color = config.FormatColor(cfg.TextColor)
	s.Text = a.ticker.Model().Text()
	a.store.Update(s)
	if err := a.store.Save(); err != nil {
		log.Println("config save error:", err)
	}
}

func clampPass(d time.Duration) time.Duration {
	if d < minPass {
		return minPass
	}
	if d > maxPass {
		return maxPass
	}
	return d
}
