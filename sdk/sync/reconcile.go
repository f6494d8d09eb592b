package sync

// ChangeKind classifies what a refresh means for the rendered list.
type ChangeKind int

const (
	// NoChange: the incoming snapshot renders identically, leave the
	// DOM/widget tree alone. This is what makes a 2s poll tolerable.
	NoChange ChangeKind = iota
	// Replace: rebuild the rendered list from the new snapshot.
	Replace
)

// RenderDecision tells the UI what to do after a refresh.
type RenderDecision struct {
	Kind ChangeKind
	// AutoScroll is only meaningful for Replace: whether to pin the
	// view to the newest message after rendering.
	AutoScroll bool
	// ShowJump is set when content changed under a reader who scrolled
	// up; the UI should surface a jump-to-latest affordance.
	ShowJump bool
}

// Reconcile compares the previous and freshly-fetched snapshots against
// the current viewport and decides how to render. Pure: same inputs,
// same decision, no matter how many times it runs.
//
// Auto-scroll triggers when the reader is already at the bottom, when
// the list grew (a conversation in motion follows its newest message),
// on the first fill of an empty pane, or when the user explicitly
// locked scrolling to the tail.
func Reconcile(prev, next Snapshot, view Viewport, scrollLocked bool) RenderDecision {
	if prev.Equal(next) {
		return RenderDecision{Kind: NoChange}
	}

	auto := scrollLocked ||
		view.AtBottom() ||
		len(next) > len(prev) ||
		len(prev) == 0

	return RenderDecision{
		Kind:       Replace,
		AutoScroll: auto,
		ShowJump:   !auto && !view.NearBottom(),
	}
}
