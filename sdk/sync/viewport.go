package sync

const (
	// autoScrollTolerance is how close to the bottom (in scroll units)
	// the reader can be and still count as "at the bottom" for
	// auto-scroll purposes.
	autoScrollTolerance = 50

	// jumpTolerance is the tighter band for the "new messages" jump
	// affordance: beyond it, arriving messages show the jump control
	// instead of yanking the reader down.
	jumpTolerance = 20
)

// Viewport is the scroll state of the message pane, in whatever units
// the UI measures (pixels, rows). A zero Viewport counts as at-bottom,
// so a fresh room auto-scrolls.
type Viewport struct {
	Top           float64
	Height        float64
	ContentHeight float64
}

// distanceFromBottom is how far the visible window's lower edge sits
// above the end of the content. Never negative.
func (v Viewport) distanceFromBottom() float64 {
	d := v.ContentHeight - (v.Top + v.Height)
	if d < 0 {
		return 0
	}
	return d
}

// AtBottom reports whether the reader is close enough to the end that
// new content should scroll into view automatically.
func (v Viewport) AtBottom() bool {
	return v.distanceFromBottom() <= autoScrollTolerance
}

// NearBottom is the tighter check used for the jump affordance: when
// false and new messages arrive without auto-scroll, the UI should
// offer a jump-to-latest control.
func (v Viewport) NearBottom() bool {
	return v.distanceFromBottom() <= jumpTolerance
}
