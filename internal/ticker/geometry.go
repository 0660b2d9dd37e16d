package ticker

// Rect is a box in the container's coordinate space.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Metrics is the intrinsic single-line size of a string at a font size.
type Metrics struct {
	Width  float32
	Height float32
}

// Geometry describes one scroll pass: content enters at StartX (fully past
// the trailing edge) and leaves at EndX (fully past the leading edge).
type Geometry struct {
	ContainerWidth float32
	StartX         float32
	EndX           float32
}

// NewGeometry derives the scroll path for content of measuredWidth inside a
// container of containerWidth. Negative inputs are treated as zero.
func NewGeometry(containerWidth, measuredWidth float32) Geometry {
	if containerWidth < 0 {
		containerWidth = 0
	}
	if measuredWidth < 0 {
		measuredWidth = 0
	}
	return Geometry{
		ContainerWidth: containerWidth,
		StartX:         containerWidth,
		EndX:           -measuredWidth,
	}
}

// Span is the distance travelled in one pass.
func (g Geometry) Span() float32 { return g.StartX - g.EndX }

// Layout is the outcome of fitting text into the container.
type Layout struct {
	FontSize float32
	Metrics  Metrics
	Box      Rect
}
