package toolkit

// EventKind discriminates renderer events.
type EventKind int

const (
	// EventVisibilityReady fires once the renderer widget became
	// visible for the first time.
	EventVisibilityReady EventKind = iota
	// EventLoadFinished fires when a navigation completes.
	EventLoadFinished
	// EventTitleChanged fires on document title changes; also the
	// bridge side-channel.
	EventTitleChanged
	// EventNavigationRequested fires before a navigation is committed.
	EventNavigationRequested
)

// Event is the renderer event variant delivered to the surface handler.
type Event struct {
	Kind  EventKind
	Title string // EventTitleChanged

	// EventNavigationRequested
	URI         string
	TargetBlank bool
	// Cancel, when non-nil, aborts the in-place navigation.
	Cancel func()
}

func (k EventKind) String() string {
	switch k {
	case EventVisibilityReady:
		return "visibility-ready"
	case EventLoadFinished:
		return "load-finished"
	case EventTitleChanged:
		return "title-changed"
	case EventNavigationRequested:
		return "navigation-requested"
	default:
		return "unknown"
	}
}
