package tui

import (
	"time"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

// DefaultHoldWindow is how long a direction stays held after its last press.
// Terminal auto-repeat usually fires every 30-50ms after a ~250ms delay.
const DefaultHoldWindow = 300 * time.Millisecond

// HoldTracker turns the press stream of a terminal into held directions.
// Terminals report key presses, repeated while the key is down, but never
// releases. A direction counts as held until no press arrives for a whole
// window, the opposite direction is pressed, or ReleaseAll is called.
type HoldTracker struct {
	window time.Duration
	left   time.Time // Last left press, zero when not held
	right  time.Time // Last right press, zero when not held
}

// NewHoldTracker creates a tracker; a non-positive window uses the default.
func NewHoldTracker(window time.Duration) HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return HoldTracker{window: window}
}

// Press records a left or right press at now and sets the matching actions
// on frame. Other actions are ignored.
func (h *HoldTracker) Press(a core.Action, now time.Time, frame *core.InputFrame) {
	switch a {
	case core.ActionLeft:
		if !h.right.IsZero() {
			h.right = time.Time{}
			frame.Set(core.ActionReleaseRight)
		}
		h.left = now
		frame.Set(core.ActionLeft)
	case core.ActionRight:
		if !h.left.IsZero() {
			h.left = time.Time{}
			frame.Set(core.ActionReleaseLeft)
		}
		h.right = now
		frame.Set(core.ActionRight)
	}
}

// Expire releases directions whose last press is older than the window.
func (h *HoldTracker) Expire(now time.Time, frame *core.InputFrame) {
	if !h.left.IsZero() && now.Sub(h.left) > h.window {
		h.left = time.Time{}
		frame.Set(core.ActionReleaseLeft)
	}
	if !h.right.IsZero() && now.Sub(h.right) > h.window {
		h.right = time.Time{}
		frame.Set(core.ActionReleaseRight)
	}
}

// ReleaseAll lets go of both directions.
func (h *HoldTracker) ReleaseAll(frame *core.InputFrame) {
	if !h.left.IsZero() {
		frame.Set(core.ActionReleaseLeft)
	}
	if !h.right.IsZero() {
		frame.Set(core.ActionReleaseRight)
	}
	h.left, h.right = time.Time{}, time.Time{}
}

// Window returns the hold window.
func (h HoldTracker) Window() time.Duration {
	return h.window
}
