package polysketch

// Viewport is the drawable area in physical pixels.
// Both dimensions are always at least 1, so mapping never divides by zero.
type Viewport struct {
	Width, Height uint32
}

// NewViewport creates a viewport, clamping each dimension to a minimum of 1.
func NewViewport(width, height int) Viewport {
	return Viewport{Width: clampDim(width), Height: clampDim(height)}
}

// Resize returns the viewport for a new window size. Zero or negative
// targets are ignored: the receiver is returned unchanged with ok=false.
func (v Viewport) Resize(width, height int) (Viewport, bool) {
	if width <= 0 || height <= 0 {
		return v, false
	}
	return Viewport{Width: uint32(width), Height: uint32(height)}, true //nolint:gosec // checked positive above
}

// ToNDC maps raw pointer coordinates (origin top-left, Y down) into
// normalized device coordinates (origin at center, Y up).
//
//	(0, 0)          -> (-1,  1)
//	(W/2, H/2)      -> ( 0,  0)
//	(W, H)          -> ( 1, -1)
//
// Pointers outside the viewport map outside [-1, 1]; callers decide
// whether to accept such points.
func (v Viewport) ToNDC(rawX, rawY float64) Point {
	cx := float64(v.Width) / 2
	cy := float64(v.Height) / 2
	return Point{
		X: float32((rawX - cx) / cx),
		Y: float32((cy - rawY) / cy),
	}
}

// Fraction returns the raw position as a fraction of the viewport size,
// clamped to [0, 1] on both axes.
func (v Viewport) Fraction(rawX, rawY float64) (fx, fy float64) {
	fx = rawX / float64(v.Width)
	fy = rawY / float64(v.Height)
	return float64(clamp01(fx)), float64(clamp01(fy))
}

func clampDim(d int) uint32 {
	if d < 1 {
		return 1
	}
	return uint32(d) //nolint:gosec // d >= 1
}
