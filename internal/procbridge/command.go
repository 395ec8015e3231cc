// Package procbridge relays window creation, deferred commands and
// lifecycle events between the controller and the worker that owns the
// UI loop. The worker runs on a dedicated OS thread; the three queues
// are typed channels, and blocking queries carry their own one-shot
// reply channel.
package procbridge

import (
	"github.com/bnema/webpane/internal/session"
	"github.com/bnema/webpane/internal/toolkit"
)

// Op tags a deferred command.
type Op int

const (
	OpSetTitle Op = iota
	OpDestroy
	OpToggleFullscreen
	OpSetOnTop
	OpResize
	OpMove
	OpHide
	OpShow
	OpMinimize
	OpRestore
	OpLoadURL
	OpLoadHTML
	OpEvaluateJS
	OpGetPosition
	OpGetSize
	OpGetCurrentURL
	OpFileDialog
)

// Point is a window origin reply.
type Point struct {
	X, Y int
}

// Size is a window dimensions reply.
type Size struct {
	Width, Height int
}

// URLResult carries a current-URL reply; OK is false for about:blank.
type URLResult struct {
	URL string
	OK  bool
}

// EvalResult carries a script evaluation reply.
type EvalResult struct {
	Value any
	Err   error
}

// FilesResult carries a file dialog reply; OK is false on cancel.
type FilesResult struct {
	Paths []string
	OK    bool
}

// Command is the tagged variant pushed onto the worker inbox. Only the
// fields relevant to Op are populated. Reply channels are created per
// call by the controller and closed by the worker when the uid has no
// live surface, so a blocked caller always unblocks.
type Command struct {
	Op  Op
	UID string

	Title         string
	Top           bool
	Width, Height int
	X, Y          int
	URL           string
	HTML          string
	BaseURI       string
	Script        string
	Dialog        toolkit.FileDialogOptions

	PointReply chan Point
	SizeReply  chan Size
	URLReply   chan URLResult
	EvalReply  chan EvalResult
	FilesReply chan FilesResult
}

// WindowEvent is a lifecycle notification from the worker. Name is one
// of shown, loaded, closing, closed.
type WindowEvent struct {
	UID  string
	Name string
}

// Lifecycle event names on the wire.
const (
	EventShown   = "shown"
	EventLoaded  = "loaded"
	EventClosing = "closing"
	EventClosed  = "closed"
)

// CreateRequest carries full window-construction parameters from the
// controller to the worker. The field order is the wire contract (the
// struct is flat and gob/json serializable); do not reorder.
type CreateRequest struct {
	UID             string
	Title           string
	URL             string
	HTML            string
	Width           int
	Height          int
	X               int
	Y               int
	HasPosition     bool
	Resizable       bool
	Fullscreen      bool
	MinWidth        int
	MinHeight       int
	Hidden          bool
	Frameless       bool
	EasyDrag        bool
	Minimized       bool
	OnTop           bool
	ConfirmClose    bool
	BackgroundColor string
	JSAPI           []string
	TextSelect      bool
	Transparent     bool
	UserAgent       string
}

// RequestFromSession flattens a session into its wire form.
func RequestFromSession(s *session.Session) CreateRequest {
	return CreateRequest{
		UID:             s.UID,
		Title:           s.Title,
		URL:             s.URL,
		HTML:            s.HTML,
		Width:           s.Geometry.Width,
		Height:          s.Geometry.Height,
		X:               s.Geometry.X,
		Y:               s.Geometry.Y,
		HasPosition:     s.Geometry.HasPosition,
		Resizable:       s.Geometry.Resizable,
		Fullscreen:      s.Flags.Fullscreen,
		MinWidth:        s.Geometry.MinWidth,
		MinHeight:       s.Geometry.MinHeight,
		Hidden:          s.Flags.Hidden,
		Frameless:       s.Flags.Frameless,
		EasyDrag:        s.Flags.EasyDrag,
		Minimized:       s.Flags.Minimized,
		OnTop:           s.Flags.OnTop,
		ConfirmClose:    s.Flags.ConfirmClose,
		BackgroundColor: s.BackgroundColor,
		JSAPI:           s.JSAPI,
		TextSelect:      s.Flags.TextSelect,
		Transparent:     s.Flags.Transparent,
		UserAgent:       s.UserAgent,
	}
}

// Session reconstructs an equivalent session on the worker side, with
// fresh unset latches.
func (r CreateRequest) Session() (*session.Session, error) {
	s, err := session.New(r.UID)
	if err != nil {
		return nil, err
	}
	s.Title = r.Title
	s.URL = r.URL
	s.HTML = r.HTML
	s.Geometry = session.Geometry{
		Width:       r.Width,
		Height:      r.Height,
		MinWidth:    r.MinWidth,
		MinHeight:   r.MinHeight,
		X:           r.X,
		Y:           r.Y,
		HasPosition: r.HasPosition,
		Resizable:   r.Resizable,
	}
	s.Flags = session.Flags{
		Fullscreen:   r.Fullscreen,
		Frameless:    r.Frameless,
		EasyDrag:     r.EasyDrag,
		Minimized:    r.Minimized,
		OnTop:        r.OnTop,
		Hidden:       r.Hidden,
		ConfirmClose: r.ConfirmClose,
		Transparent:  r.Transparent,
		TextSelect:   r.TextSelect,
	}
	s.BackgroundColor = r.BackgroundColor
	s.JSAPI = r.JSAPI
	s.UserAgent = r.UserAgent
	return s, nil
}
