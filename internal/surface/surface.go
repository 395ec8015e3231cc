// Package surface realizes a session as a native window plus embedded
// renderer, and owns the per-window half of the JS bridge.
package surface

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/webpane/internal/bridge"
	"github.com/bnema/webpane/internal/session"
	"github.com/bnema/webpane/internal/toolkit"
)

// InvokeHandler executes a native function exposed to the page. hasParam
// is false when the script side passed no argument.
type InvokeHandler func(function, param string, hasParam bool) (any, error)

// Options parameterizes surface construction.
type Options struct {
	Session  *session.Session
	Loop     toolkit.Loop
	Factory  toolkit.Factory
	Registry *Registry
	Opener   toolkit.Opener
	Strings  toolkit.Strings
	Invoke   InvokeHandler
	Logger   zerolog.Logger
}

type pendingEval struct {
	done   chan struct{}
	once   sync.Once
	result *string
}

func (p *pendingEval) release() {
	p.once.Do(func() { close(p.done) })
}

// Surface owns one native window and one renderer instance.
type Surface struct {
	sess    *session.Session
	loop    toolkit.Loop
	reg     *Registry
	win     toolkit.Window
	view    toolkit.WebView
	dialogs toolkit.Dialogs
	opener  toolkit.Opener
	strings toolkit.Strings
	invoke  InvokeHandler
	logger  zerolog.Logger

	token  string
	legacy bool

	// closedCh is closed by destroy so blocked waiters (evaluation,
	// current-URL) unblock when the window goes away mid-wait.
	closedCh chan struct{}

	mu           sync.Mutex
	pending      map[string]*pendingEval
	isFullscreen bool
	destroyed    bool
}

// New builds the native window for a session. Must run on the loop
// thread. The construction order matters: the renderer may fire
// readiness callbacks as soon as it exists, so all policy is applied
// before navigation begins.
func New(opts Options) (*Surface, error) {
	if opts.Session == nil {
		return nil, errors.New("surface: nil session")
	}
	host, err := opts.Factory.NewHost(opts.Session.Title)
	if err != nil {
		return nil, fmt.Errorf("surface: create host: %w", err)
	}

	s := &Surface{
		sess:     opts.Session,
		loop:     opts.Loop,
		reg:      opts.Registry,
		win:      host.Window,
		view:     host.WebView,
		dialogs:  host.Dialogs,
		opener:   opts.Opener,
		strings:  opts.Strings,
		invoke:   opts.Invoke,
		logger:   opts.Logger.With().Str("component", "surface").Str("window_id", opts.Session.UID).Logger(),
		token:    bridge.NewBridgeToken(),
		legacy:   !host.WebView.CanReportScriptResults(),
		closedCh: make(chan struct{}),
		pending:  make(map[string]*pendingEval),
	}
	s.reg.add(s)

	sess := s.sess
	geo := sess.Geometry

	s.win.SetTitle(sess.Title)
	if geo.Resizable {
		s.win.SetMinSize(geo.MinWidth, geo.MinHeight)
		s.win.Resize(geo.Width, geo.Height)
	} else {
		s.win.SetMinSize(geo.Width, geo.Height)
		s.win.Resize(geo.Width, geo.Height)
	}
	s.win.SetResizable(geo.Resizable)

	if sess.Flags.Minimized {
		s.win.Iconify()
	}

	if geo.HasPosition {
		s.win.Move(geo.X, geo.Y)
	} else {
		s.win.Center()
	}

	s.win.SetBackgroundColor(sess.BackgroundColor, sess.Flags.Transparent)
	s.win.SetCloseRequestHandler(s.Close)

	s.view.SetEventHandler(s.handleEvent)

	if sess.UserAgent != "" {
		s.view.SetUserAgent(sess.UserAgent)
	}

	if sess.Flags.Frameless {
		s.win.SetDecorated(false)
		if sess.Flags.EasyDrag {
			s.view.EnableEasyDrag(s.win.Move)
		}
	}

	if sess.Flags.OnTop {
		s.win.SetKeepAbove(true)
	}

	// Invisible until the first load finishes, to avoid a flash of
	// unstyled content.
	s.view.SetOpacity(0)

	switch {
	case sess.URL != "":
		s.view.Load(sess.URL)
	case sess.HTML != "":
		s.view.LoadContent(sess.HTML, "")
	default:
		s.view.LoadContent(bridge.DefaultHTML, "")
	}

	if sess.Flags.Fullscreen {
		s.ToggleFullscreen()
	}

	return s, nil
}

// Session returns the backing session.
func (s *Surface) Session() *session.Session {
	return s.sess
}

// Show presents the window, honoring the hidden flag on first show.
func (s *Surface) Show() {
	s.win.Show()
	if s.sess.Flags.Hidden {
		s.win.Hide()
		s.sess.Flags.Hidden = false
	}
}

// Hide hides the window.
func (s *Surface) Hide() {
	s.win.Hide()
}

// SetTitle updates the window title.
func (s *Surface) SetTitle(title string) {
	s.win.SetTitle(title)
}

// ToggleFullscreen flips fullscreen state.
func (s *Surface) ToggleFullscreen() {
	s.mu.Lock()
	fs := s.isFullscreen
	s.isFullscreen = !fs
	s.mu.Unlock()

	if fs {
		s.win.Unfullscreen()
	} else {
		s.win.Fullscreen()
	}
}

// SetOnTop toggles the always-on-top hint.
func (s *Surface) SetOnTop(top bool) {
	s.win.SetKeepAbove(top)
}

// Resize resizes the window.
func (s *Surface) Resize(width, height int) {
	s.win.Resize(width, height)
}

// Move positions the window at (x, y).
func (s *Surface) Move(x, y int) {
	s.win.Move(x, y)
}

// Minimize iconifies the window.
func (s *Surface) Minimize() {
	s.win.Iconify()
}

// Restore deiconifies and raises the window.
func (s *Surface) Restore() {
	s.win.Present()
}

// Position returns the window origin.
func (s *Surface) Position() (x, y int) {
	return s.win.Position()
}

// Size returns the window dimensions.
func (s *Surface) Size() (width, height int) {
	return s.win.Size()
}

// CurrentURL waits for the document to load and returns its URI; ok is
// false for about:blank, or when the window closes before the load
// completes.
func (s *Surface) CurrentURL() (string, bool) {
	select {
	case <-s.sess.Loaded.Done():
	case <-s.closedCh:
		return "", false
	}
	uri := s.view.CurrentURI()
	if uri == "about:blank" || uri == "" {
		return "", false
	}
	return uri, true
}

// LoadURL navigates to url. Loaded is cleared first so waiters observe
// the new navigation's completion, not the previous one.
func (s *Surface) LoadURL(url string) {
	s.sess.Loaded.Clear()
	s.view.Load(url)
}

// LoadHTML renders inline markup.
func (s *Surface) LoadHTML(html, baseURI string) {
	s.sess.Loaded.Clear()
	s.view.LoadContent(html, baseURI)
}

// FileDialog runs a modal file chooser. Must run on the loop thread.
// ok is false on cancel.
func (s *Surface) FileDialog(opts toolkit.FileDialogOptions) ([]string, bool) {
	if opts.Title == "" {
		switch opts.Type {
		case toolkit.OpenFolderDialog:
			opts.Title = s.strings.OpenFolder
		case toolkit.OpenFilesDialog:
			opts.Title = s.strings.OpenFiles
		case toolkit.SaveFileDialog:
			opts.Title = s.strings.SaveFile
		default:
			opts.Title = s.strings.OpenFile
		}
	}
	return s.dialogs.ChooseFiles(opts)
}

// Close requests window closure, honoring the confirm-close policy. On
// the confirm path the modal prompt blocks the loop thread until the
// user responds; cancel leaves the window open with no side effects.
func (s *Surface) Close() {
	if s.sess.Flags.ConfirmClose {
		if !s.dialogs.Confirm(s.sess.Title, s.strings.QuitConfirmation) {
			return
		}
	}
	s.destroy()
}

// destroy tears the surface down: signal closing, release every pending
// evaluation so no caller blocks forever, flush in-flight loop
// callbacks, drop the native window, deregister, then signal closed.
// Stops the loop when the last surface goes away.
func (s *Surface) destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	close(s.closedCh)
	waiters := make([]*pendingEval, 0, len(s.pending))
	for _, p := range s.pending {
		waiters = append(waiters, p)
	}
	s.mu.Unlock()

	s.sess.Closing.Set()

	for _, p := range waiters {
		p.release()
	}

	s.loop.Pump()
	s.win.Destroy()
	s.reg.remove(s.sess.UID)
	s.sess.Closed.Set()

	if s.reg.Len() == 0 {
		s.loop.Quit()
	}
}
