// Package toolkit defines the capability surface the backend consumes
// from the native widget toolkit and embedded renderer. The core never
// talks to GTK or WebKit directly; it drives these interfaces, and the
// gtk package (build tag "gtk") provides the real implementation.
package toolkit

// Loop is the cooperative, single-threaded UI loop that owns all native
// state. Post is the only safe way to reach toolkit objects from another
// goroutine.
type Loop interface {
	// Run blocks, servicing the loop until Quit.
	Run()
	// Quit stops the loop.
	Quit()
	// Post schedules fn onto the loop thread. Calls posted from the
	// same goroutine execute in submission order.
	Post(fn func())
	// Pump synchronously drains pending loop iterations. Only valid on
	// the loop thread.
	Pump()
	// Level returns the loop nesting depth; 0 means the loop is not
	// running.
	Level() int
}

// Window is the native window chrome.
type Window interface {
	SetTitle(title string)
	Resize(width, height int)
	SetMinSize(width, height int)
	Move(x, y int)
	Center()
	SetResizable(resizable bool)
	SetDecorated(decorated bool)
	SetKeepAbove(above bool)
	Fullscreen()
	Unfullscreen()
	Iconify()
	Present()
	Show()
	Hide()
	Destroy()
	Position() (x, y int)
	Size() (width, height int)
	// SetBackgroundColor applies the chrome background; transparent
	// additionally requests an alpha visual.
	SetBackgroundColor(color string, transparent bool)
	// SetCloseRequestHandler intercepts user-initiated close. The
	// window must not destroy itself; the handler decides.
	SetCloseRequestHandler(fn func())
}

// WebView is the embedded renderer instance hosted by a Window.
type WebView interface {
	Load(uri string)
	LoadContent(html, baseURI string)
	// RunScript evaluates script on the loop thread. onDone, when
	// non-nil, receives the stringified result once execution
	// completes; pass nil for fire-and-forget injection. Renderers
	// that cannot report results (see CanReportScriptResults) never
	// invoke onDone.
	RunScript(script string, onDone func(result string, err error))
	CurrentURI() string
	SetOpacity(opacity float64)
	SetUserAgent(ua string)
	// CanReportScriptResults reports whether RunScript completion
	// callbacks work. When false the bridge falls back to the title
	// side-channel for evaluation results.
	CanReportScriptResults() bool
	// EnableEasyDrag wires pointer events so dragging the page moves
	// the frameless window via moveTo.
	EnableEasyDrag(moveTo func(x, y int))
	// SetEventHandler installs the renderer event sink. Events are
	// delivered on the loop thread.
	SetEventHandler(fn func(Event))
}

// Dialogs are the modal primitives. Both block the loop thread until the
// user responds, which is acceptable because they only ever run inside a
// loop callback.
type Dialogs interface {
	// Confirm shows an OK/Cancel prompt and reports acceptance.
	Confirm(title, message string) bool
	// ChooseFiles runs a file chooser; ok is false on cancel.
	ChooseFiles(opts FileDialogOptions) (paths []string, ok bool)
}

// Host bundles the per-window native objects handed to a surface.
type Host struct {
	Window  Window
	WebView WebView
	Dialogs Dialogs
}

// Factory creates the native objects for one window. Must be called on
// the loop thread.
type Factory interface {
	NewHost(title string) (*Host, error)
}
