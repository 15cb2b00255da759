package csg

// Event identifies the tree operation an inspection hook is observing.
type Event int

const (
	// BuildEvent fires at the start of every Node.Build call.
	BuildEvent Event = iota
	// InvertEvent fires at the start of every Node.Invert call.
	InvertEvent
	// ClipEvent fires at the start of every Node.ClipTo call; the hook
	// receives the tree being clipped against.
	ClipEvent
)

func (e Event) String() string {
	switch e {
	case BuildEvent:
		return "build"
	case InvertEvent:
		return "invert"
	case ClipEvent:
		return "clip"
	default:
		return "unknown"
	}
}

// Action is an inspection hook's verdict.
type Action int

const (
	// Proceed lets the operation continue normally.
	Proceed Action = iota
	// Abort stops the operation before it processes anything. State built
	// by earlier calls is kept; Build reports the stop as AbortedError.
	Abort
)

// InspectFunc is an optional hook for external tooling to single-step
// through tree construction. detail is non-nil only for ClipEvent, carrying
// the tree being clipped against. The hook runs cooperatively on the calling
// goroutine; a nil hook costs nothing.
type InspectFunc func(event Event, detail *Node) Action
