package parser

import "strings"

// Fence delimiter families recognized by the tracker.
const (
	backtickFence = "```"
	tildeFence    = "~~~"
)

// FenceTracker determines, line by line, whether the scan cursor is inside a
// fenced code block and which delimiter family would close it. The same
// tracker semantics are shared by format detection, slide segmentation, and
// chunk decomposition so a delimiter-looking line inside a fence never
// triggers a split.
//
// A tracker is single-use per scan: allocate a fresh one for each top-level
// call (or Reset it). An unterminated fence that runs to end of input keeps
// the tracker in-fence for the rest of the scan; that is not an error.
type FenceTracker struct {
	inFence   bool
	delimiter string
}

// NewFenceTracker returns a tracker in the not-in-fence state.
func NewFenceTracker() *FenceTracker {
	return &FenceTracker{}
}

// Observe consumes one line and reports whether it toggled fence state.
// Opening requires a trimmed line starting with ``` or ~~~; closing requires
// a trimmed line starting with the same delimiter family that opened.
func (t *FenceTracker) Observe(line string) bool {
	trimmed := strings.TrimSpace(line)

	if !t.inFence {
		switch {
		case strings.HasPrefix(trimmed, backtickFence):
			t.inFence = true
			t.delimiter = backtickFence
		case strings.HasPrefix(trimmed, tildeFence):
			t.inFence = true
			t.delimiter = tildeFence
		default:
			return false
		}
		return true
	}

	if strings.HasPrefix(trimmed, t.delimiter) {
		t.inFence = false
		t.delimiter = ""
		return true
	}

	return false
}

// InFence reports whether the cursor is currently inside a fenced block.
func (t *FenceTracker) InFence() bool {
	return t.inFence
}

// Delimiter returns the delimiter that opened the current fence, or the
// empty string outside a fence.
func (t *FenceTracker) Delimiter() string {
	return t.delimiter
}

// Reset returns the tracker to the not-in-fence state for reuse.
func (t *FenceTracker) Reset() {
	t.inFence = false
	t.delimiter = ""
}
