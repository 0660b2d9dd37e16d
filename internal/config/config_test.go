package config

import (
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/edward-ap/miniticker/internal/ticker"
)

func TestLoadDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	restore := overrideConfigEnv(tempDir)
	defer restore()

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath error: %v", err)
	}
	_ = os.Remove(path)

	store, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	s := store.Settings()
	if s.Duration != ticker.DefaultDuration {
		t.Errorf("Duration = %v, want %v", s.Duration, ticker.DefaultDuration)
	}
	if !s.AutoFit {
		t.Error("AutoFit should default to true")
	}
	if s.FontSize != ticker.DefaultFontSize {
		t.Errorf("FontSize = %v, want %v", s.FontSize, ticker.DefaultFontSize)
	}
	if s.Color != DefaultColor {
		t.Errorf("Color = %q, want %q", s.Color, DefaultColor)
	}
	if s.Text != DefaultText {
		t.Errorf("Text = %q, want %q", s.Text, DefaultText)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s, got error: %v", path, err)
	}
}

func TestOpenReadsFile(t *testing.T) {
	path := writeSettings(t, t.TempDir(), `
duration: 3s
auto_fit: false
font_size: 18.5
color: "#ff8000"
text: Flood watch until 6pm
`)
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s := store.Settings()
	want := Settings{Duration: 3 * time.Second, AutoFit: false, FontSize: 18.5, Color: "#ff8000", Text: "Flood watch until 6pm"}
	if s != want {
		t.Fatalf("Settings = %+v, want %+v", s, want)
	}
	cfg := s.TickerConfig()
	if cfg.TextColor != (color.NRGBA{0xff, 0x80, 0x00, 0xff}) {
		t.Fatalf("TextColor = %v", cfg.TextColor)
	}
	if cfg.AutoFitText || cfg.FontSize != 18.5 || cfg.Duration != 3*time.Second {
		t.Fatalf("TickerConfig = %+v", cfg)
	}
}

func TestOpenNormalizesBadValues(t *testing.T) {
	path := writeSettings(t, t.TempDir(), `
font_size: -4
color: chartreuse
`)
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s := store.Settings()
	if s.FontSize != ticker.DefaultFontSize {
		t.Errorf("FontSize = %v, want default", s.FontSize)
	}
	if s.Color != DefaultColor {
		t.Errorf("Color = %q, want default", s.Color)
	}
}

func TestOpenRejectsBrokenYAML(t *testing.T) {
	path := writeSettings(t, t.TempDir(), "duration: [oops\n")
	if _, err := Open(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MINITICKER_DURATION", "1500ms")
	store, err := Open(filepath.Join(t.TempDir(), AppConfigName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if d := store.Settings().Duration; d != 1500*time.Millisecond {
		t.Fatalf("Duration = %v, want 1.5s", d)
	}
}

func TestReloadEmitsOnlyChangedFields(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, `
duration: 8s
auto_fit: true
font_size: 14
color: "#ffffff"
text: one
`)
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	writeSettings(t, dir, `
duration: 2s
auto_fit: true
font_size: 14
color: "#ffffff"
text: one
`)
	p, next, changed, err := store.reload()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !changed {
		t.Fatal("reload reported no change")
	}
	if p.Duration == nil || *p.Duration != 2*time.Second {
		t.Fatalf("Duration patch = %v, want 2s", p.Duration)
	}
	if p.AutoFitText != nil || p.FontSize != nil || p.TextColor != nil {
		t.Fatalf("unexpected fields in patch: %+v", p)
	}
	if next.Duration != 2*time.Second {
		t.Fatalf("next.Duration = %v", next.Duration)
	}

	_, _, changed, err = store.reload()
	if err != nil {
		t.Fatalf("second reload: %v", err)
	}
	if changed {
		t.Fatal("unchanged file reported as changed")
	}
}

func TestReloadKeepsColorOnInvalidValue(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, `
duration: 8s
color: "#ff0000"
text: one
`)
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	writeSettings(t, dir, `
duration: 8s
color: chartreuse
text: one
`)
	p, next, changed, err := store.reload()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if changed || p.TextColor != nil {
		t.Fatalf("invalid colour produced a change: changed=%v patch=%+v", changed, p)
	}
	if next.Color != "#ff0000" || store.Settings().Color != "#ff0000" {
		t.Fatalf("Color = %q (stored %q), want #ff0000 kept", next.Color, store.Settings().Color)
	}

	writeSettings(t, dir, `
duration: 8s
color: "#00ff00"
text: one
`)
	p, _, changed, err = store.reload()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !changed || p.TextColor != (color.NRGBA{G: 0xff, A: 0xff}) {
		t.Fatalf("valid colour after a bad one: changed=%v patch=%+v", changed, p)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", AppConfigName)
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	next := store.Settings()
	next.Text = "saved text"
	next.Duration = 5 * time.Second
	store.Update(next)
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := again.Settings(); got.Text != "saved text" || got.Duration != 5*time.Second {
		t.Fatalf("reopened settings = %+v", got)
	}
}

func TestDiff(t *testing.T) {
	base := Settings{Duration: time.Second, AutoFit: true, FontSize: 12, Color: "#fff", Text: "a"}
	tests := []struct {
		name  string
		next  Settings
		check func(ticker.PartialConfig) bool
	}{
		{name: "identical", next: base, check: func(p ticker.PartialConfig) bool { return p.IsEmpty() }},
		{name: "text only", next: Settings{Duration: time.Second, AutoFit: true, FontSize: 12, Color: "#fff", Text: "b"}, check: func(p ticker.PartialConfig) bool { return p.IsEmpty() }},
		{name: "colour case", next: Settings{Duration: time.Second, AutoFit: true, FontSize: 12, Color: "#FFF", Text: "a"}, check: func(p ticker.PartialConfig) bool { return p.IsEmpty() }},
		{name: "auto fit", next: Settings{Duration: time.Second, AutoFit: false, FontSize: 12, Color: "#fff", Text: "a"}, check: func(p ticker.PartialConfig) bool {
			return p.AutoFitText != nil && !*p.AutoFitText && p.Duration == nil && p.FontSize == nil && p.TextColor == nil
		}},
		{name: "colour", next: Settings{Duration: time.Second, AutoFit: true, FontSize: 12, Color: "#00ff00", Text: "a"}, check: func(p ticker.PartialConfig) bool {
			return p.TextColor == color.NRGBA{G: 0xff, A: 0xff} && p.Duration == nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p := Diff(base, tt.next); !tt.check(p) {
				t.Fatalf("Diff = %+v", p)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#fff", want: color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{in: "#1a2b3c", want: color.NRGBA{0x1a, 0x2b, 0x3c, 0xff}},
		{in: " 1a2b3c80 ", want: color.NRGBA{0x1a, 0x2b, 0x3c, 0x80}},
		{in: "#12", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if s := FormatColor(color.NRGBA{0x1a, 0x2b, 0x3c, 0xff}); s != "#1a2b3c" {
		t.Errorf("FormatColor = %q", s)
	}
}

func writeSettings(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, AppConfigName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func overrideConfigEnv(tempDir string) func() {
	originals := map[string]string{
		"APPDATA":         os.Getenv("APPDATA"),
		"LOCALAPPDATA":    os.Getenv("LOCALAPPDATA"),
		"USERPROFILE":     os.Getenv("USERPROFILE"),
		"XDG_CONFIG_HOME": os.Getenv("XDG_CONFIG_HOME"),
		"HOME":            os.Getenv("HOME"),
	}

	if runtime.GOOS == "windows" {
		os.Setenv("APPDATA", tempDir)
		os.Setenv("LOCALAPPDATA", tempDir)
		os.Setenv("USERPROFILE", tempDir)
	} else {
		xdg := filepath.Join(tempDir, "xdg")
		_ = os.MkdirAll(xdg, 0o755)
		os.Setenv("XDG_CONFIG_HOME", xdg)
		os.Setenv("HOME", tempDir)
	}

	return func() {
		for k, v := range originals {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}
}
