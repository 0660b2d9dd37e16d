package textmeasure

import (
	"github.com/acarl005/stripansi"
	"github.com/mattn/go-runewidth"

	"github.com/edward-ap/miniticker/internal/ticker"
)

// CellMeasurer measures text in terminal cells. Every line is one row tall
// regardless of the requested size, and escape sequences take no space.
type CellMeasurer struct{}

// MeasureText implements ticker.Measurer.
func (CellMeasurer) MeasureText(text string, size float32) ticker.Metrics {
	if size <= 0 {
		return ticker.Metrics{}
	}
	return ticker.Metrics{
		Width:  float32(CellWidth(text)),
		Height: 1,
	}
}

// CellWidth is the number of terminal columns text occupies.
func CellWidth(text string) int {
	return runewidth.StringWidth(stripansi.Strip(text))
}
