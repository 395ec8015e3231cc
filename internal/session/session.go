// Package session holds per-window state: identity, geometry, flags and
// the four lifecycle latches the backend signals on.
package session

import (
	"errors"
	"sync"
)

// MasterUID is reserved for the first window; it anchors the UI loop and,
// in multiprocess mode, owns the worker bridge.
const MasterUID = "master"

var ErrEmptyUID = errors.New("session: empty uid")

// Geometry describes initial size, minimum size and optional position.
type Geometry struct {
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	// X/Y are only honored when HasPosition is true; otherwise the
	// window is centered.
	X           int
	Y           int
	HasPosition bool
	Resizable   bool
}

// Flags carries the boolean window options.
type Flags struct {
	Fullscreen   bool
	Frameless    bool
	EasyDrag     bool
	Minimized    bool
	OnTop        bool
	Hidden       bool
	ConfirmClose bool
	Transparent  bool
	TextSelect   bool
}

// Session is the per-window state shared between the controller and the
// surface that realizes it. URL takes precedence over HTML when both are
// present.
type Session struct {
	UID   string
	Title string
	URL   string
	HTML  string

	Geometry        Geometry
	Flags           Flags
	BackgroundColor string
	UserAgent       string

	// JSAPI lists the native function names exposed to the page.
	JSAPI []string

	Shown   *Signal
	Loaded  *Signal
	Closing *Signal
	Closed  *Signal
}

// New creates a session with fresh, unset lifecycle latches. Loaded and
// Shown start unset so a fast renderer cannot complete before a waiter
// attaches.
func New(uid string) (*Session, error) {
	if uid == "" {
		return nil, ErrEmptyUID
	}
	return &Session{
		UID:     uid,
		Shown:   NewSignal(),
		Loaded:  NewSignal(),
		Closing: NewSignal(),
		Closed:  NewSignal(),
	}, nil
}

// ResetLatches re-arms shown and loaded. The worker calls this after
// reconstructing a session from a creation request, before navigation
// begins.
func (s *Session) ResetLatches() {
	s.Shown.Clear()
	s.Loaded.Clear()
}

// List is the ordered set of live sessions. The loop-owning side mutates
// it; the controller's event pump reads it, so access is guarded.
type List struct {
	mu       sync.Mutex
	sessions []*Session
}

// NewList returns an empty window list.
func NewList() *List {
	return &List{}
}

// Add appends a session.
func (l *List) Add(s *Session) {
	l.mu.Lock()
	l.sessions = append(l.sessions, s)
	l.mu.Unlock()
}

// Remove deletes the session with the given uid, if present.
func (l *List) Remove(uid string) {
	l.mu.Lock()
	for i, s := range l.sessions {
		if s.UID == uid {
			l.sessions = append(l.sessions[:i], l.sessions[i+1:]...)
			break
		}
	}
	l.mu.Unlock()
}

// Get returns the session with the given uid, or nil.
func (l *List) Get(uid string) *Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.sessions {
		if s.UID == uid {
			return s
		}
	}
	return nil
}

// Len returns the number of live sessions.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sessions)
}
