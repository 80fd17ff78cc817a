package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // W, Up arrow - move cursor up
	ActionDown                // S, Down arrow - move cursor down
	ActionLeft                // A, Left arrow - pressed or still held
	ActionRight               // D, Right arrow - pressed or still held
	ActionReleaseLeft         // Left direction is no longer held
	ActionReleaseRight        // Right direction is no longer held
	ActionJump                // Space - primary action (start, select)
	ActionConfirm             // Enter - confirm selection
	ActionBack                // B, Escape - go back to menu
	ActionRestart             // R key - restart game after game over
	ActionQuit                // Q, Ctrl+C - exit game/session
	ActionPause               // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionReleaseLeft:
		return "ReleaseLeft"
	case ActionReleaseRight:
		return "ReleaseRight"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PointerEvent is a mouse or touch press/release in screen cell coordinates.
type PointerEvent struct {
	X, Y int
	Down bool // true on press, false on release
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions and pointer events that arrived since the last tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointers holds pointer events in arrival order.
	Pointers []PointerEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddPointer appends a pointer event to this frame.
func (f *InputFrame) AddPointer(ev PointerEvent) {
	f.Pointers = append(f.Pointers, ev)
}

// Clear resets all actions and pointer events for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointers = f.Pointers[:0]
}
