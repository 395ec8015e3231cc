//go:build gtk

package gtk

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/bnema/webpane/internal/toolkit"
)

// Factory builds GTK windows hosting WebKit views.
type Factory struct {
	Logger zerolog.Logger
}

// NewHost creates the native window chrome, the scrolled container and
// the embedded WebView. Loop thread only.
func (f *Factory) NewHost(title string) (*toolkit.Host, error) {
	win := gtk.NewWindow()
	if win == nil {
		return nil, fmt.Errorf("gtk: create window: %w", ErrUnavailable)
	}
	win.SetTitle(title)

	scroller := gtk.NewScrolledWindow()
	win.SetChild(scroller)

	view, err := newWebView(f.Logger)
	if err != nil {
		win.Destroy()
		return nil, err
	}
	scroller.SetChild(view.view)

	w := &Window{win: win, logger: f.Logger}
	return &toolkit.Host{
		Window:  w,
		WebView: view,
		Dialogs: &Dialogs{parent: win, logger: f.Logger},
	}, nil
}

// Window implements toolkit.Window over gtk.Window.
type Window struct {
	win    *gtk.Window
	logger zerolog.Logger

	// GTK4 dropped global window positioning; we keep the last
	// requested origin so Position stays consistent for callers.
	x, y int
}

func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

func (w *Window) Resize(width, height int) {
	w.win.SetDefaultSize(width, height)
}

func (w *Window) SetMinSize(width, height int) {
	w.win.SetSizeRequest(width, height)
}

// Move records the requested origin. GTK4 has no client-side window
// positioning (the compositor owns placement on Wayland), so this is
// advisory.
func (w *Window) Move(x, y int) {
	w.x, w.y = x, y
	w.logger.Debug().Int("x", x).Int("y", y).Msg("window positioning is compositor-controlled on gtk4")
}

// Center is compositor-controlled on GTK4; new toplevels are centered
// by default.
func (w *Window) Center() {}

func (w *Window) SetResizable(resizable bool) {
	w.win.SetResizable(resizable)
}

func (w *Window) SetDecorated(decorated bool) {
	w.win.SetDecorated(decorated)
}

// SetKeepAbove is advisory: GTK4 removed the keep-above hint, Wayland
// compositors decide stacking.
func (w *Window) SetKeepAbove(above bool) {
	w.logger.Debug().Bool("above", above).Msg("keep-above is compositor-controlled on gtk4")
}

func (w *Window) Fullscreen() {
	w.win.Fullscreen()
}

func (w *Window) Unfullscreen() {
	w.win.Unfullscreen()
}

func (w *Window) Iconify() {
	w.win.Minimize()
}

func (w *Window) Present() {
	w.win.Unminimize()
	w.win.Present()
}

func (w *Window) Show() {
	w.win.SetVisible(true)
}

func (w *Window) Hide() {
	w.win.SetVisible(false)
}

func (w *Window) Destroy() {
	w.win.Destroy()
}

func (w *Window) Position() (x, y int) {
	return w.x, w.y
}

func (w *Window) Size() (width, height int) {
	return w.win.DefaultSize()
}

// SetBackgroundColor styles the window chrome; transparent windows get
// a fully transparent background so the page alpha shows through.
func (w *Window) SetBackgroundColor(color string, transparent bool) {
	if transparent {
		color = "rgba(0,0,0,0)"
	}
	if color == "" {
		return
	}
	provider := gtk.NewCSSProvider()
	provider.LoadFromString(fmt.Sprintf("window { background-color: %s; background-image: none; }", color))
	gtk.StyleContextAddProviderForDisplay(
		gdk.DisplayGetDefault(),
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}

func (w *Window) SetCloseRequestHandler(fn func()) {
	w.win.ConnectCloseRequest(func() bool {
		fn()
		// The handler decides whether to destroy; stop the default.
		return true
	})
}
