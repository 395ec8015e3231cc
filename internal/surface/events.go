package surface

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/webpane/internal/bridge"
	"github.com/bnema/webpane/internal/toolkit"
)

// handleEvent is the renderer event sink. It runs on the loop thread.
func (s *Surface) handleEvent(ev toolkit.Event) {
	switch ev.Kind {
	case toolkit.EventVisibilityReady:
		// WebKit can fire visibility after the window was already
		// destroyed; setting shown is harmless then.
		s.sess.Shown.Set()

	case toolkit.EventLoadFinished:
		s.onLoadFinished()

	case toolkit.EventTitleChanged:
		s.onTitleChanged(ev.Title)

	case toolkit.EventNavigationRequested:
		if ev.TargetBlank {
			if s.opener != nil {
				if err := s.opener.OpenExternal(ev.URI); err != nil {
					s.logger.Warn().Err(err).Str("uri", ev.URI).Msg("open external browser")
				}
			}
			if ev.Cancel != nil {
				ev.Cancel()
			}
		}
	}
}

func (s *Surface) onLoadFinished() {
	s.view.SetOpacity(1)

	if !s.sess.Flags.TextSelect {
		s.view.RunScript(bridge.DisableTextSelectScript, nil)
	}

	// Install the API bridge on the next loop iteration, then latch
	// loaded so evaluate callers see a scriptable document.
	s.loop.Post(func() {
		s.view.RunScript(bridge.APIScript(s.sess.JSAPI, s.token), nil)
		s.sess.Loaded.Set()
	})
}

// onTitleChanged decodes the title side-channel. Ordinary page titles
// are expected to fail the parse; they are logged and dropped.
func (s *Surface) onTitleChanged(title string) {
	env, err := bridge.DecodeTitle(title)
	if err != nil {
		s.logger.Debug().Str("title", title).Msg("title is not a bridge message")
		return
	}

	switch env.Type {
	case bridge.TypeInvoke:
		s.handleInvoke(env)
	case bridge.TypeEval:
		// Legacy transport: the wrapped expression posted its result
		// as the final step.
		if !s.legacy {
			return
		}
		s.resolveEval(env.UID, env.Result)
	}
}

func (s *Surface) handleInvoke(env *bridge.Envelope) {
	if s.invoke == nil {
		s.logger.Warn().Str("function", env.Function).Msg("invoke with no handler registered")
		return
	}

	param, hasParam := env.ParamValue()
	ret, err := s.invoke(env.Function, param, hasParam)
	if err != nil {
		s.logger.Error().Err(err).Str("function", env.Function).Msg("js api call failed")
		return
	}

	escaped := bridge.EscapeScript(stringify(ret))
	s.view.RunScript(bridge.ReturnValueScript(escaped), nil)
}

func (s *Surface) resolveEval(callID string, raw json.RawMessage) {
	s.mu.Lock()
	p, ok := s.pending[callID]
	if ok && raw != nil {
		res := string(raw)
		p.result = &res
	}
	s.mu.Unlock()

	if !ok {
		s.logger.Debug().Str("call_id", callID).Msg("eval result for unknown call")
		return
	}
	p.release()
}

// stringify renders a native return value as JSON so the script side
// recovers the exact value when it parses the reinjected literal.
func stringify(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
