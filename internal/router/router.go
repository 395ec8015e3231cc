// Package router is the single dispatch point for window operations.
// Every operation is keyed by window uid and either scheduled onto the
// local UI loop (single-process mode) or forwarded to the worker inbox
// (multiprocess mode). Blocking reads pair a one-shot reply channel per
// call. None of the blocking entry points may be called from the loop
// thread.
package router

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/webpane/internal/procbridge"
	"github.com/bnema/webpane/internal/session"
	"github.com/bnema/webpane/internal/surface"
	"github.com/bnema/webpane/internal/toolkit"
)

// Mode selects the execution context for window operations.
type Mode int

const (
	// SingleProcess runs all windows on the local UI loop.
	SingleProcess Mode = iota
	// MultiProcess proxies every operation to the worker that owns the
	// UI loop.
	MultiProcess
)

// ErrDuplicateUID rejects a second window with an already-live uid.
var ErrDuplicateUID = errors.New("router: duplicate window uid")

// ErrNoMasterWindow is returned when a non-master window is created
// before the master.
var ErrNoMasterWindow = errors.New("router: master window not created yet")

// Options configures a Router.
type Options struct {
	Mode    Mode
	Loop    toolkit.Loop
	Factory toolkit.Factory
	Opener  toolkit.Opener
	Strings toolkit.Strings
	Invoke  surface.InvokeHandler
	Logger  zerolog.Logger
}

// Router dispatches window operations.
type Router struct {
	mode    Mode
	loop    toolkit.Loop
	factory toolkit.Factory
	opener  toolkit.Opener
	strings toolkit.Strings
	invoke  surface.InvokeHandler
	logger  zerolog.Logger

	// Single-process state.
	reg *surface.Registry

	// Multiprocess state: local sessions mirrored by the event pump.
	windows *session.List
	bridge  *procbridge.Bridge
	handle  *procbridge.Handle
}

// New creates a router in the given mode.
func New(opts Options) *Router {
	r := &Router{
		mode:    opts.Mode,
		loop:    opts.Loop,
		factory: opts.Factory,
		opener:  opts.Opener,
		strings: opts.Strings,
		invoke:  opts.Invoke,
		logger:  opts.Logger.With().Str("component", "router").Logger(),
		reg:     surface.NewRegistry(),
		windows: session.NewList(),
	}
	if r.mode == MultiProcess {
		r.bridge = procbridge.New(opts.Logger)
	}
	return r
}

// Registry exposes the single-process registry (used by the embedder's
// loop bootstrap and by tests).
func (r *Router) Registry() *surface.Registry {
	return r.reg
}

// CreateWindow realizes a session. The master window is constructed
// synchronously: in single-process mode on the calling thread (which
// then runs the loop), in multiprocess mode inside the freshly spawned
// worker before its loop starts; the returned handle is non-nil only in
// that case. Non-master windows are deferred onto the loop or the
// creation queue.
func (r *Router) CreateWindow(sess *session.Session) (*procbridge.Handle, error) {
	if sess == nil {
		return nil, errors.New("router: nil session")
	}

	if r.mode == MultiProcess {
		if r.windows.Get(sess.UID) != nil {
			return nil, ErrDuplicateUID
		}
		if sess.UID == session.MasterUID {
			r.windows.Add(sess)
			r.bridge.StartEventPump(r.windows)
			r.handle = r.bridge.StartWorker(procbridge.WorkerConfig{
				Loop:    r.loop,
				Factory: r.factory,
				Opener:  r.opener,
				Strings: r.strings,
				Invoke:  r.invoke,
				Logger:  r.logger,
			}, procbridge.RequestFromSession(sess))
			return r.handle, nil
		}
		if r.handle == nil {
			return nil, ErrNoMasterWindow
		}
		r.windows.Add(sess)
		r.bridge.SubmitCreate(procbridge.RequestFromSession(sess))
		return nil, nil
	}

	if _, err := r.reg.Get(sess.UID); err == nil {
		return nil, ErrDuplicateUID
	}
	if sess.UID == session.MasterUID {
		return nil, r.construct(sess)
	}
	r.loop.Post(func() {
		if err := r.construct(sess); err != nil {
			r.logger.Error().Err(err).Str("window_id", sess.UID).Msg("create window")
		}
	})
	return nil, nil
}

// construct must run on the loop thread (or on the thread that is about
// to become it, for the master window).
func (r *Router) construct(sess *session.Session) error {
	s, err := surface.New(surface.Options{
		Session:  sess,
		Loop:     r.loop,
		Factory:  r.factory,
		Registry: r.reg,
		Opener:   r.opener,
		Strings:  r.strings,
		Invoke:   r.invoke,
		Logger:   r.logger,
	})
	if err != nil {
		return fmt.Errorf("router: construct %s: %w", sess.UID, err)
	}
	s.Show()
	return nil
}

// Run enters the UI loop. Single-process mode only; in multiprocess
// mode the worker owns the loop.
func (r *Router) Run() {
	r.loop.Run()
}

func (r *Router) local(uid string) (*surface.Surface, error) {
	return r.reg.Get(uid)
}

// checkRemote verifies the uid is known on the controller side before
// forwarding.
func (r *Router) checkRemote(uid string) error {
	if r.windows.Get(uid) == nil {
		return surface.ErrWindowNotFound
	}
	return nil
}

// forward pushes a command onto the worker inbox after the uid check.
func (r *Router) forward(cmd procbridge.Command) error {
	if err := r.checkRemote(cmd.UID); err != nil {
		return err
	}
	r.bridge.Submit(cmd)
	return nil
}
