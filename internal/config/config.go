// Package config defines the MiniTicker settings file and helpers for
// loading, saving and watching it.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/edward-ap/miniticker/internal/ticker"
)

const (
	// AppID is the stable application identifier used by the GUI framework.
	AppID = "miniticker"
	// AppConfigSubdir is the OS-specific directory that holds the config file.
	AppConfigSubdir = "MiniTicker"
	// AppConfigName is the YAML file stored on disk.
	AppConfigName = "ticker.yaml"
	// EnvPrefix prefixes environment overrides, e.g. MINITICKER_DURATION=4s.
	EnvPrefix = "MINITICKER"

	// DefaultText is shown until something else is configured.
	DefaultText = "MiniTicker ready"
	// DefaultColor is the default text colour as #rrggbb.
	DefaultColor = "#ffffff"
	// DefaultWidth is the preferred demo window width.
	DefaultWidth = 640
	// DefaultHeight is the height of the ticker strip.
	DefaultHeight = 32
)

// Settings mirrors the file: the four ticker configuration fields plus the
// initial text.
type Settings struct {
	Duration time.Duration `mapstructure:"duration"`
	AutoFit  bool          `mapstructure:"auto_fit"`
	FontSize float32       `mapstructure:"font_size"`
	Color    string        `mapstructure:"color"`
	Text     string        `mapstructure:"text"`
}

// TickerConfig converts the settings into a ticker configuration.
func (s Settings) TickerConfig() ticker.Config {
	col, err := ParseColor(s.Color)
	if err != nil {
		col, _ = ParseColor(DefaultColor)
	}
	return ticker.Config{
		Duration:    s.Duration,
		AutoFitText: s.AutoFit,
		FontSize:    s.FontSize,
		TextColor:   col,
	}
}

// Diff returns a partial update holding only the ticker fields that differ
// between old and next.
func Diff(old, next Settings) ticker.PartialConfig {
	var p ticker.PartialConfig
	if old.Duration != next.Duration {
		p.Duration = ticker.DurationPtr(next.Duration)
	}
	if old.AutoFit != next.AutoFit {
		p.AutoFitText = ticker.BoolPtr(next.AutoFit)
	}
	if old.FontSize != next.FontSize {
		p.FontSize = ticker.Float32Ptr(next.FontSize)
	}
	if !strings.EqualFold(strings.TrimSpace(old.Color), strings.TrimSpace(next.Color)) {
		if col, err := ParseColor(next.Color); err == nil {
			p.TextColor = col
		}
	}
	return p
}

// ConfigDir resolves the writable directory that should contain the config file.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppConfigSubdir), nil
}

// ConfigPath is a helper that returns the full path to ticker.yaml.
func ConfigPath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, AppConfigName), nil
}

// Store owns a viper instance bound to one settings file.
type Store struct {
	v    *viper.Viper
	path string

	mu      sync.Mutex
	current Settings
}

// Load opens the settings file at the default location.
func Load() (*Store, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Open reads the settings file at path, applying defaults and environment
// overrides. A missing file yields defaults and an attempt to write them.
func Open(path string) (*Store, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	s := &Store{v: v, path: path}
	missing := false
	if err := v.ReadInConfig(); err != nil {
		if !isNotExist(err) {
			return nil, fmt.Errorf("config parse error: %w", err)
		}
		missing = true
	}
	cur, err := s.decode()
	if err != nil {
		return nil, err
	}
	s.current = cur
	if missing {
		// Try saving an initial config, but still return defaults even if it fails.
		if err := s.Save(); err != nil {
			log.Println("config: write defaults:", err)
		}
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	def := ticker.DefaultConfig()
	v.SetDefault("duration", def.Duration.String())
	v.SetDefault("auto_fit", def.AutoFitText)
	v.SetDefault("font_size", def.FontSize)
	v.SetDefault("color", DefaultColor)
	v.SetDefault("text", DefaultText)
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

func (s *Store) decode() (Settings, error) {
	var out Settings
	if err := s.v.Unmarshal(&out); err != nil {
		return Settings{}, fmt.Errorf("config decode: %w", err)
	}
	out.applyRuntimeDefaults()
	return out, nil
}

// applyRuntimeDefaults normalizes values after a load so the ticker always
// receives sane inputs. Durations are left alone; the engine clamps them.
func (s *Settings) applyRuntimeDefaults() {
	if s.FontSize <= 0 {
		s.FontSize = ticker.DefaultFontSize
	}
	if _, err := ParseColor(s.Color); err != nil {
		s.Color = DefaultColor
	}
}

// Path is the settings file location.
func (s *Store) Path() string { return s.path }

// Settings returns the last loaded settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update replaces the in-memory settings; call Save to persist them.
func (s *Store) Update(next Settings) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

// Save persists the current settings, creating directories as needed. A
// separate viper instance does the writing so that saved values never
// shadow later edits of the file.
func (s *Store) Save() error {
	cur := s.Settings()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	w := viper.New()
	w.SetConfigType("yaml")
	w.Set("duration", cur.Duration.String())
	w.Set("auto_fit", cur.AutoFit)
	w.Set("font_size", cur.FontSize)
	w.Set("color", cur.Color)
	w.Set("text", cur.Text)
	return w.WriteConfigAs(s.path)
}

// Watch re-reads the file whenever it changes on disk and calls fn with the
// ticker fields that changed and the full new settings.
func (s *Store) Watch(fn func(ticker.PartialConfig, Settings)) {
	s.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		p, next, changed, err := s.reload()
		if err != nil {
			log.Println("config reload:", err)
			return
		}
		if changed && fn != nil {
			fn(p, next)
		}
	})
	s.v.WatchConfig()
}

// reload re-reads the file and diffs it against the previous settings.
func (s *Store) reload() (ticker.PartialConfig, Settings, bool, error) {
	if err := s.v.ReadInConfig(); err != nil {
		return ticker.PartialConfig{}, Settings{}, false, fmt.Errorf("config parse error: %w", err)
	}
	next, err := s.decode()
	if err != nil {
		return ticker.PartialConfig{}, Settings{}, false, err
	}
	s.mu.Lock()
	prev := s.current
	// an unparsable colour keeps the one on screen instead of resetting it
	if raw := s.v.GetString("color"); !validColor(raw) {
		log.Printf("config: ignoring invalid color %q", raw)
		next.Color = prev.Color
	}
	s.current = next
	s.mu.Unlock()
	p := Diff(prev, next)
	return p, next, !p.IsEmpty() || prev.Text != next.Text, nil
}

// ParseColor accepts #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var c color.NRGBA
	c.A = 0xff
	var err error
	switch len(s) {
	case 3:
		var r, g, b uint8
		_, err = fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b)
		c.R, c.G, c.B = r*17, g*17, b*17
	case 6:
		_, err = fmt.Sscanf(s, "%2x%2x%2x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(s, "%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = errors.New("want #rgb, #rrggbb or #rrggbbaa")
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

func validColor(s string) bool {
	_, err := ParseColor(s)
	return err == nil
}

// FormatColor renders c as #rrggbb (or #rrggbbaa when not opaque). A nil
// colour formats as DefaultColor.
func FormatColor(c color.Color) string {
	if c == nil {
		return DefaultColor
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
