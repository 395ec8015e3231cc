package surface

import (
	"github.com/bnema/webpane/internal/bridge"
)

// EvaluateJS runs script in the page and blocks the calling goroutine
// until the result is available. It must not be called from the loop
// thread. Dispatch waits for the loaded latch so the script never runs
// against an unloaded document; if the window closes while waiting, the
// caller gets bridge.NoResult instead of hanging.
func (s *Surface) EvaluateJS(script string) (any, error) {
	callID := bridge.NewCallID()
	p := &pendingEval{done: make(chan struct{})}

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return bridge.NoResult{}, nil
	}
	s.pending[callID] = p
	s.mu.Unlock()

	submit := script
	if s.legacy {
		submit = bridge.LegacyEvalWrapper(callID, script)
	}

	// A window closed before its first load would otherwise park this
	// caller on the loaded latch forever.
	select {
	case <-s.sess.Loaded.Done():
	case <-s.closedCh:
		s.mu.Lock()
		delete(s.pending, callID)
		s.mu.Unlock()
		return bridge.NoResult{}, nil
	}

	s.loop.Post(func() {
		if s.legacy {
			// Result comes back over the title channel.
			s.view.RunScript(submit, nil)
			return
		}
		s.view.RunScript(submit, func(result string, err error) {
			s.mu.Lock()
			if err == nil {
				p.result = &result
			}
			s.mu.Unlock()
			p.release()
		})
	})

	<-p.done

	if s.loop.Level() == 0 {
		// Loop terminated while we waited; the slot is stale.
		s.mu.Lock()
		delete(s.pending, callID)
		s.mu.Unlock()
		return bridge.NoResult{}, nil
	}

	s.mu.Lock()
	result := p.result
	delete(s.pending, callID)
	s.mu.Unlock()

	return bridge.DecodeResult(result)
}

// PendingEvaluations reports the number of in-flight evaluate calls.
func (s *Surface) PendingEvaluations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
