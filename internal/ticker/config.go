package ticker

import (
	"image/color"
	"time"
)

const (
	// DefaultDuration is the time one full pass across the container takes.
	DefaultDuration = 8 * time.Second
	// DefaultFontSize is used when auto-fit is disabled and nothing else is set.
	DefaultFontSize float32 = 14
	// MinDuration is the shortest cycle we schedule (one 60 Hz frame).
	MinDuration = 16 * time.Millisecond
)

// Config holds the tunables of one animation run. FontSize is ignored while
// AutoFitText is set.
type Config struct {
	Duration    time.Duration
	AutoFitText bool
	FontSize    float32
	TextColor   color.Color
}

// DefaultConfig returns the configuration a fresh ticker starts with.
func DefaultConfig() Config {
	return Config{
		Duration:    DefaultDuration,
		AutoFitText: true,
		FontSize:    DefaultFontSize,
		TextColor:   color.White,
	}
}

// PartialConfig is a sparse update. A nil field means "leave unchanged".
type PartialConfig struct {
	Duration    *time.Duration
	AutoFitText *bool
	FontSize    *float32
	TextColor   color.Color
}

// IsEmpty reports whether the update carries no fields at all.
func (p PartialConfig) IsEmpty() bool {
	return p.Duration == nil && p.AutoFitText == nil && p.FontSize == nil && p.TextColor == nil
}

// Merge returns c with every present field of p applied.
func (c Config) Merge(p PartialConfig) Config {
	if p.Duration != nil {
		c.Duration = *p.Duration
	}
	if p.AutoFitText != nil {
		c.AutoFitText = *p.AutoFitText
	}
	if p.FontSize != nil {
		c.FontSize = *p.FontSize
	}
	if p.TextColor != nil {
		c.TextColor = p.TextColor
	}
	return c
}

func clampDuration(d time.Duration) time.Duration {
	if d < MinDuration {
		return MinDuration
	}
	return d
}

// textColor falls back to white when no colour was ever configured.
func (c Config) textColor() color.Color {
	if c.TextColor == nil {
		return color.White
	}
	return c.TextColor
}

// Helpers for building partial updates inline.

// DurationPtr returns a pointer to d.
func DurationPtr(d time.Duration) *time.Duration { return &d }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// Float32Ptr returns a pointer to f.
func Float32Ptr(f float32) *float32 { return &f }
