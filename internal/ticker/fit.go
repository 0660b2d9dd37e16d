package ticker

// Measurer reports the intrinsic single-line size of text at a font size.
// Height is the rendered line height.
type Measurer interface {
	MeasureText(text string, size float32) Metrics
}

const (
	fitShrinkStep float32 = 0.95
	maxFitPasses          = 32
)

// Fit chooses the font size for text under cfg's policy and measures it.
// The resulting box sits at the trailing edge of bounds with the
// container's height and the measured width.
func Fit(text string, bounds Rect, cfg Config, m Measurer) Layout {
	size := fitFontSize(text, bounds.Height, cfg, m)
	var metrics Metrics
	if size > 0 && m != nil {
		metrics = m.MeasureText(text, size)
	}
	if metrics.Width < 0 {
		metrics.Width = 0
	}
	height := bounds.Height
	if height < 0 {
		height = 0
	}
	return Layout{
		FontSize: size,
		Metrics:  metrics,
		Box: Rect{
			X:      maxf(bounds.Width, 0),
			Y:      0,
			Width:  metrics.Width,
			Height: height,
		},
	}
}

// fitFontSize picks the point size. Auto-fit starts from the container
// height; fixed mode starts from cfg.FontSize. Either way the size is only
// ever reduced until the line height fits the container.
func fitFontSize(text string, containerHeight float32, cfg Config, m Measurer) float32 {
	if containerHeight <= 0 || m == nil {
		return 0
	}
	size := containerHeight
	if !cfg.AutoFitText {
		size = cfg.FontSize
	}
	if size <= 0 {
		return 0
	}
	return shrinkToHeight(text, size, containerHeight, m)
}

// shrinkToHeight reduces size until the measured line height is at most
// limit. Line height is close to linear in the point size, so the first pass
// scales by limit/height; later passes only happen when hinting rounds the
// height up and step down by at least fitShrinkStep. A measurer whose line
// height never drops to limit (terminal cells are always one row) gets size
// 0: nothing is drawn rather than an over-tall line.
func shrinkToHeight(text string, size, limit float32, m Measurer) float32 {
	for i := 0; i <= maxFitPasses; i++ {
		h := m.MeasureText(text, size).Height
		if h <= limit {
			return size
		}
		if i == maxFitPasses {
			break
		}
		next := size * limit / h
		if i > 0 && next > size*fitShrinkStep {
			next = size * fitShrinkStep
		}
		size = next
	}
	return 0
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
