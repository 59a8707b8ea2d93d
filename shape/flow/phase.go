package flow

type Phase int

const (
	Deform Phase = iota
	Resize
	Done
)

func (p Phase) String() string {
	switch p {
	case Deform:
		return "deform"
	case Resize:
		return "resize"
	case Done:
		return "done"
	}
	return "unknown"
}

type RingPolicy string

const (
	// RingOff never shows feedback.
	RingOff RingPolicy = "off"
	// RingAfterLock shows the target ring once Y has locked.
	RingAfterLock RingPolicy = "after-lock"
	// RingAlways shows a height marker before the lock and the radius target after.
	RingAlways RingPolicy = "always"
)

// Transition is delivered to listeners once per phase change.
type Transition struct {
	Body string
	From Phase
	To   Phase
	Tick int
}
