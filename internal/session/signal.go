package session

import (
	"sync"
	"time"
)

// Signal is a single-set, multi-wait latch. Set is idempotent and wakes
// every waiter; Clear re-arms the latch so a later Set starts a new epoch
// (used by the loaded signal on navigation). Handlers registered with
// OnSet run on every Set transition.
type Signal struct {
	mu    sync.Mutex
	set   bool
	ch    chan struct{}
	onSet []func()
}

// NewSignal returns an unset latch.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// Set latches the signal and releases all current waiters.
func (s *Signal) Set() {
	s.mu.Lock()
	if s.set {
		s.mu.Unlock()
		return
	}
	s.set = true
	close(s.ch)
	handlers := make([]func(), len(s.onSet))
	copy(handlers, s.onSet)
	s.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

// Clear re-arms the latch. Waiters that attached before the previous Set
// have already been released; new waiters block until the next Set.
func (s *Signal) Clear() {
	s.mu.Lock()
	if s.set {
		s.set = false
		s.ch = make(chan struct{})
	}
	s.mu.Unlock()
}

// IsSet reports whether the latch is currently set.
func (s *Signal) IsSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}

// Wait blocks until the latch is set, or returns immediately if it
// already is.
func (s *Signal) Wait() {
	s.mu.Lock()
	if s.set {
		s.mu.Unlock()
		return
	}
	ch := s.ch
	s.mu.Unlock()
	<-ch
}

// Done returns a channel closed once the latch is set, for callers that
// need to select the wait against other events. The channel belongs to
// the current epoch; Clear hands out a fresh one.
func (s *Signal) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch
}

// WaitTimeout waits up to d and reports whether the latch was set.
func (s *Signal) WaitTimeout(d time.Duration) bool {
	s.mu.Lock()
	if s.set {
		s.mu.Unlock()
		return true
	}
	ch := s.ch
	s.mu.Unlock()

	select {
	case <-ch:
		return true
	case <-time.After(d):
		return false
	}
}

// OnSet registers a handler invoked on every Set transition. If the latch
// is already set the handler fires immediately, so late registration does
// not lose the event.
func (s *Signal) OnSet(fn func()) {
	s.mu.Lock()
	s.onSet = append(s.onSet, fn)
	fireNow := s.set
	s.mu.Unlock()

	if fireNow {
		fn()
	}
}
