// Package textmeasure provides ticker.Measurer implementations that do not
// need a running GUI: OpenType face metrics and terminal cell widths.
package textmeasure

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/edward-ap/miniticker/internal/ticker"
)

// maxCachedFaces bounds the per-size face cache; the fit loop probes a
// handful of sizes per SetText.
const maxCachedFaces = 64

// FaceMeasurer measures text with an OpenType font at 72 DPI, so one point
// is one pixel. Line height is ascent plus descent.
type FaceMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float32]font.Face
}

// NewFaceMeasurer parses the given TTF/OTF data.
func NewFaceMeasurer(data []byte) (*FaceMeasurer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FaceMeasurer{font: f, faces: map[float32]font.Face{}}, nil
}

// NewGoRegular returns a measurer for the bundled Go Regular font.
func NewGoRegular() *FaceMeasurer {
	m, err := NewFaceMeasurer(goregular.TTF)
	if err != nil {
		// goregular is compiled in; failing to parse it is a build defect
		panic(err)
	}
	return m
}

// MeasureText implements ticker.Measurer.
func (m *FaceMeasurer) MeasureText(text string, size float32) ticker.Metrics {
	if size <= 0 {
		return ticker.Metrics{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	face, err := m.faceLocked(size)
	if err != nil {
		return ticker.Metrics{}
	}
	met := face.Metrics()
	return ticker.Metrics{
		Width:  fixedToFloat(font.MeasureString(face, text)),
		Height: fixedToFloat(met.Ascent + met.Descent),
	}
}

// Close releases cached faces.
func (m *FaceMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropFacesLocked()
	return nil
}

func (m *FaceMeasurer) faceLocked(size float32) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	if len(m.faces) >= maxCachedFaces {
		m.dropFacesLocked()
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

func (m *FaceMeasurer) dropFacesLocked() {
	for k, f := range m.faces {
		_ = f.Close()
		delete(m.faces, k)
	}
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
