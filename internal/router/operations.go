package router

import (
	"github.com/bnema/webpane/internal/bridge"
	"github.com/bnema/webpane/internal/procbridge"
	"github.com/bnema/webpane/internal/surface"
	"github.com/bnema/webpane/internal/toolkit"
)

// SetTitle updates a window's title.
func (r *Router) SetTitle(uid, title string) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpSetTitle, UID: uid, Title: title})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(func() { s.SetTitle(title) })
	return nil
}

// DestroyWindow closes a window programmatically. The confirm-close
// policy still applies.
func (r *Router) DestroyWindow(uid string) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpDestroy, UID: uid})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(s.Close)
	return nil
}

// ToggleFullscreen flips a window's fullscreen state.
func (r *Router) ToggleFullscreen(uid string) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpToggleFullscreen, UID: uid})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(s.ToggleFullscreen)
	return nil
}

// SetOnTop toggles the always-on-top hint.
func (r *Router) SetOnTop(uid string, top bool) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpSetOnTop, UID: uid, Top: top})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(func() { s.SetOnTop(top) })
	return nil
}

// Resize resizes a window.
func (r *Router) Resize(uid string, width, height int) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpResize, UID: uid, Width: width, Height: height})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(func() { s.Resize(width, height) })
	return nil
}

// Move positions a window at (x, y). Both modes use the passed
// coordinates unconditionally.
func (r *Router) Move(uid string, x, y int) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpMove, UID: uid, X: x, Y: y})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(func() { s.Move(x, y) })
	return nil
}

// Hide hides a window.
func (r *Router) Hide(uid string) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpHide, UID: uid})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(s.Hide)
	return nil
}

// Show presents a window.
func (r *Router) Show(uid string) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpShow, UID: uid})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(s.Show)
	return nil
}

// Minimize iconifies a window.
func (r *Router) Minimize(uid string) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpMinimize, UID: uid})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(s.Minimize)
	return nil
}

// Restore deiconifies and raises a window.
func (r *Router) Restore(uid string) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpRestore, UID: uid})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(s.Restore)
	return nil
}

// LoadURL navigates a window to url.
func (r *Router) LoadURL(uid, url string) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpLoadURL, UID: uid, URL: url})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(func() { s.LoadURL(url) })
	return nil
}

// LoadHTML renders inline markup in a window.
func (r *Router) LoadHTML(uid, html, baseURI string) error {
	if r.mode == MultiProcess {
		return r.forward(procbridge.Command{Op: procbridge.OpLoadHTML, UID: uid, HTML: html, BaseURI: baseURI})
	}
	s, err := r.local(uid)
	if err != nil {
		return err
	}
	r.loop.Post(func() { s.LoadHTML(html, baseURI) })
	return nil
}

// GetCurrentURL blocks until the document loaded and returns its URI;
// ok is false for the placeholder document.
func (r *Router) GetCurrentURL(uid string) (url string, ok bool, err error) {
	if r.mode == MultiProcess {
		reply := make(chan procbridge.URLResult, 1)
		if err := r.forward(procbridge.Command{Op: procbridge.OpGetCurrentURL, UID: uid, URLReply: reply}); err != nil {
			return "", false, err
		}
		res, open := <-reply
		if !open {
			return "", false, surface.ErrWindowNotFound
		}
		return res.URL, res.OK, nil
	}
	s, err := r.local(uid)
	if err != nil {
		return "", false, err
	}
	url, ok = s.CurrentURL()
	return url, ok, nil
}

// EvaluateJS runs script in a window and blocks until the result comes
// back. A window closed mid-wait yields bridge.NoResult.
func (r *Router) EvaluateJS(uid, script string) (any, error) {
	if r.mode == MultiProcess {
		reply := make(chan procbridge.EvalResult, 1)
		if err := r.forward(procbridge.Command{Op: procbridge.OpEvaluateJS, UID: uid, Script: script, EvalReply: reply}); err != nil {
			return nil, err
		}
		res, open := <-reply
		if !open {
			return nil, surface.ErrWindowNotFound
		}
		return res.Value, res.Err
	}
	s, err := r.local(uid)
	if err != nil {
		return nil, err
	}
	return s.EvaluateJS(script)
}

// GetPosition returns a window's origin.
func (r *Router) GetPosition(uid string) (x, y int, err error) {
	if r.mode == MultiProcess {
		reply := make(chan procbridge.Point, 1)
		if err := r.forward(procbridge.Command{Op: procbridge.OpGetPosition, UID: uid, PointReply: reply}); err != nil {
			return 0, 0, err
		}
		p, open := <-reply
		if !open {
			return 0, 0, surface.ErrWindowNotFound
		}
		return p.X, p.Y, nil
	}
	s, err := r.local(uid)
	if err != nil {
		return 0, 0, err
	}
	reply := make(chan procbridge.Point, 1)
	r.loop.Post(func() {
		px, py := s.Position()
		reply <- procbridge.Point{X: px, Y: py}
	})
	p := <-reply
	return p.X, p.Y, nil
}

// GetSize returns a window's dimensions.
func (r *Router) GetSize(uid string) (width, height int, err error) {
	if r.mode == MultiProcess {
		reply := make(chan procbridge.Size, 1)
		if err := r.forward(procbridge.Command{Op: procbridge.OpGetSize, UID: uid, SizeReply: reply}); err != nil {
			return 0, 0, err
		}
		sz, open := <-reply
		if !open {
			return 0, 0, surface.ErrWindowNotFound
		}
		return sz.Width, sz.Height, nil
	}
	s, err := r.local(uid)
	if err != nil {
		return 0, 0, err
	}
	reply := make(chan procbridge.Size, 1)
	r.loop.Post(func() {
		w, h := s.Size()
		reply <- procbridge.Size{Width: w, Height: h}
	})
	sz := <-reply
	return sz.Width, sz.Height, nil
}

// CreateFileDialog runs a modal file chooser on the window's loop
// thread. ok is false on user cancel; cancel is not an error.
func (r *Router) CreateFileDialog(uid string, opts toolkit.FileDialogOptions) (paths []string, ok bool, err error) {
	if r.mode == MultiProcess {
		reply := make(chan procbridge.FilesResult, 1)
		if err := r.forward(procbridge.Command{Op: procbridge.OpFileDialog, UID: uid, Dialog: opts, FilesReply: reply}); err != nil {
			return nil, false, err
		}
		res, open := <-reply
		if !open {
			return nil, false, surface.ErrWindowNotFound
		}
		return res.Paths, res.OK, nil
	}
	s, err := r.local(uid)
	if err != nil {
		return nil, false, err
	}
	reply := make(chan procbridge.FilesResult, 1)
	r.loop.Post(func() {
		p, chose := s.FileDialog(opts)
		reply <- procbridge.FilesResult{Paths: p, OK: chose}
	})
	res := <-reply
	return res.Paths, res.OK, nil
}

// IsNoResult reports whether an EvaluateJS return is the explicit
// "no result" sentinel.
func IsNoResult(v any) bool {
	_, ok := v.(bridge.NoResult)
	return ok
}
