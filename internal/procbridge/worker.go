package procbridge

import (
	"runtime"

	"github.com/rs/zerolog"

	"github.com/bnema/webpane/internal/surface"
	"github.com/bnema/webpane/internal/toolkit"
)

// WorkerConfig supplies the native capabilities the worker drives.
type WorkerConfig struct {
	Loop    toolkit.Loop
	Factory toolkit.Factory
	Opener  toolkit.Opener
	Strings toolkit.Strings
	Invoke  surface.InvokeHandler
	Logger  zerolog.Logger
}

// Handle tracks a running worker.
type Handle struct {
	done chan struct{}
}

// Done is closed when the worker's UI loop exits.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

type worker struct {
	cfg WorkerConfig
	b   *Bridge
	reg *surface.Registry
}

// StartWorker spawns the worker that owns the UI loop: one goroutine
// pinned to an OS thread runs the loop, one drains the creation queue,
// one drains the command inbox. The master window is constructed
// synchronously before the loop starts, mirroring the single-process
// path.
func (b *Bridge) StartWorker(cfg WorkerConfig, master CreateRequest) *Handle {
	h := &Handle{done: make(chan struct{})}
	w := &worker{cfg: cfg, b: b, reg: surface.NewRegistry()}

	go func() {
		// The loop thread owns all native state for this worker.
		runtime.LockOSThread()

		go w.drainCreations()
		go w.drainInbox()

		if err := w.create(master); err != nil {
			cfg.Logger.Error().Err(err).Str("window_id", master.UID).Msg("create master window")
			close(h.done)
			return
		}

		cfg.Loop.Run()
		close(h.done)
	}()

	return h
}

// drainCreations reconstructs sessions from creation requests and posts
// their construction onto the loop.
func (w *worker) drainCreations() {
	for req := range w.b.creations {
		req := req
		w.cfg.Loop.Post(func() {
			if err := w.create(req); err != nil {
				w.cfg.Logger.Error().Err(err).Str("window_id", req.UID).Msg("create window")
			}
		})
	}
}

// create must run on the loop thread.
func (w *worker) create(req CreateRequest) error {
	sess, err := req.Session()
	if err != nil {
		return err
	}
	sess.ResetLatches()
	w.b.wireSignals(sess)

	s, err := surface.New(surface.Options{
		Session:  sess,
		Loop:     w.cfg.Loop,
		Factory:  w.cfg.Factory,
		Registry: w.reg,
		Opener:   w.cfg.Opener,
		Strings:  w.cfg.Strings,
		Invoke:   w.cfg.Invoke,
		Logger:   w.cfg.Logger,
	})
	if err != nil {
		return err
	}
	s.Show()
	return nil
}

// drainInbox re-dispatches deferred commands onto the loop.
func (w *worker) drainInbox() {
	for cmd := range w.b.inbox {
		w.dispatch(cmd)
	}
}

func (w *worker) dispatch(cmd Command) {
	s, err := w.reg.Get(cmd.UID)
	if err != nil {
		w.cfg.Logger.Error().Str("window_id", cmd.UID).Msg("command for unknown window")
		failCommand(cmd)
		return
	}

	loop := w.cfg.Loop
	switch cmd.Op {
	case OpSetTitle:
		loop.Post(func() { s.SetTitle(cmd.Title) })
	case OpDestroy:
		loop.Post(s.Close)
	case OpToggleFullscreen:
		loop.Post(s.ToggleFullscreen)
	case OpSetOnTop:
		loop.Post(func() { s.SetOnTop(cmd.Top) })
	case OpResize:
		loop.Post(func() { s.Resize(cmd.Width, cmd.Height) })
	case OpMove:
		loop.Post(func() { s.Move(cmd.X, cmd.Y) })
	case OpHide:
		loop.Post(s.Hide)
	case OpShow:
		loop.Post(s.Show)
	case OpMinimize:
		loop.Post(s.Minimize)
	case OpRestore:
		loop.Post(s.Restore)
	case OpLoadURL:
		loop.Post(func() { s.LoadURL(cmd.URL) })
	case OpLoadHTML:
		loop.Post(func() { s.LoadHTML(cmd.HTML, cmd.BaseURI) })
	case OpEvaluateJS:
		// EvaluateJS blocks its caller; never run it on the drainer.
		go func() {
			v, err := s.EvaluateJS(cmd.Script)
			cmd.EvalReply <- EvalResult{Value: v, Err: err}
		}()
	case OpGetPosition:
		loop.Post(func() {
			x, y := s.Position()
			cmd.PointReply <- Point{X: x, Y: y}
		})
	case OpGetSize:
		loop.Post(func() {
			width, height := s.Size()
			cmd.SizeReply <- Size{Width: width, Height: height}
		})
	case OpGetCurrentURL:
		// Blocks on the loaded latch, so off the loop thread.
		go func() {
			url, ok := s.CurrentURL()
			cmd.URLReply <- URLResult{URL: url, OK: ok}
		}()
	case OpFileDialog:
		loop.Post(func() {
			paths, ok := s.FileDialog(cmd.Dialog)
			cmd.FilesReply <- FilesResult{Paths: paths, OK: ok}
		})
	default:
		w.cfg.Logger.Warn().Int("op", int(cmd.Op)).Msg("unknown command")
		failCommand(cmd)
	}
}

// failCommand closes any reply channel so a blocked controller caller
// unblocks with a zero value instead of hanging.
func failCommand(cmd Command) {
	if cmd.PointReply != nil {
		close(cmd.PointReply)
	}
	if cmd.SizeReply != nil {
		close(cmd.SizeReply)
	}
	if cmd.URLReply != nil {
		close(cmd.URLReply)
	}
	if cmd.EvalReply != nil {
		close(cmd.EvalReply)
	}
	if cmd.FilesReply != nil {
		close(cmd.FilesReply)
	}
}
