package procbridge

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/webpane/internal/session"
)

const (
	queueDepth = 64

	// publishTimeout bounds how long the worker waits on a full event
	// queue before giving up on a lifecycle event.
	publishTimeout = 5 * time.Second
)

// Bridge holds the three queues between controller and worker: the
// creation-request queue, the worker->controller event queue, and the
// generic command inbox.
type Bridge struct {
	creations chan CreateRequest
	events    chan WindowEvent
	inbox     chan Command
	logger    zerolog.Logger
}

// New creates an idle bridge.
func New(logger zerolog.Logger) *Bridge {
	return &Bridge{
		creations: make(chan CreateRequest, queueDepth),
		events:    make(chan WindowEvent, queueDepth),
		inbox:     make(chan Command, queueDepth),
		logger:    logger.With().Str("component", "procbridge").Logger(),
	}
}

// SubmitCreate queues a window-creation request for the worker.
func (b *Bridge) SubmitCreate(req CreateRequest) {
	b.creations <- req
}

// Submit queues a deferred command for the worker inbox.
func (b *Bridge) Submit(cmd Command) {
	b.inbox <- cmd
}

// publish pushes a lifecycle event toward the controller. The latch
// events fire at most once per epoch, and losing one (a dropped closed,
// say) strands controller-side waiters, so a full queue gets a bounded
// wait for the pump to catch up before the event is dropped.
func (b *Bridge) publish(uid, name string) {
	ev := WindowEvent{UID: uid, Name: name}
	select {
	case b.events <- ev:
		return
	default:
	}

	timer := time.NewTimer(publishTimeout)
	defer timer.Stop()
	select {
	case b.events <- ev:
	case <-timer.C:
		b.logger.Warn().Str("window_id", uid).Str("event", name).Msg("event queue full, dropping")
	}
}

// wireSignals forwards a worker-side session's lifecycle latches onto
// the event queue.
func (b *Bridge) wireSignals(s *session.Session) {
	uid := s.UID
	s.Shown.OnSet(func() { b.publish(uid, EventShown) })
	s.Loaded.OnSet(func() { b.publish(uid, EventLoaded) })
	s.Closing.OnSet(func() { b.publish(uid, EventClosing) })
	s.Closed.OnSet(func() { b.publish(uid, EventClosed) })
}

// StartEventPump drains the event queue on the controller side and
// re-fires each event on the matching local session, so controller-side
// waiters observe worker-side lifecycle transitions transparently.
// Closed windows are dropped from the local list after their closed
// latch fires.
func (b *Bridge) StartEventPump(windows *session.List) {
	go func() {
		for ev := range b.events {
			sess := windows.Get(ev.UID)
			if sess == nil {
				b.logger.Debug().Str("window_id", ev.UID).Str("event", ev.Name).Msg("event for unknown window")
				continue
			}
			switch ev.Name {
			case EventShown:
				sess.Shown.Set()
			case EventLoaded:
				sess.Loaded.Set()
			case EventClosing:
				sess.Closing.Set()
			case EventClosed:
				sess.Closed.Set()
				windows.Remove(ev.UID)
			default:
				b.logger.Warn().Str("event", ev.Name).Msg("unknown lifecycle event")
			}
		}
	}()
}
