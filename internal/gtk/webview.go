//go:build gtk

package gtk

import (
	"context"
	"fmt"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/bnema/webpane/internal/toolkit"
)

// WebView implements toolkit.WebView over webkit.WebView.
type WebView struct {
	view   *webkit.WebView
	logger zerolog.Logger
}

func newWebView(logger zerolog.Logger) (*WebView, error) {
	view := webkit.NewWebView()
	if view == nil {
		return nil, fmt.Errorf("gtk: create webview: %w", ErrUnavailable)
	}
	return &WebView{view: view, logger: logger}, nil
}

func (v *WebView) Load(uri string) {
	v.view.LoadURI(uri)
}

func (v *WebView) LoadContent(html, baseURI string) {
	v.view.LoadHTML(html, baseURI)
}

// RunScript evaluates script asynchronously. With a non-nil onDone, the
// completion callback delivers the stringified result.
func (v *WebView) RunScript(script string, onDone func(result string, err error)) {
	if onDone == nil {
		v.view.EvaluateJavascript(context.Background(), script, -1, "", "", nil)
		return
	}
	v.view.EvaluateJavascript(context.Background(), script, -1, "", "", func(res gio.AsyncResulter) {
		value, err := v.view.EvaluateJavascriptFinish(res)
		if err != nil {
			onDone("", err)
			return
		}
		if value == nil {
			onDone("undefined", nil)
			return
		}
		onDone(value.ToString(), nil)
	})
}

func (v *WebView) CurrentURI() string {
	return v.view.URI()
}

func (v *WebView) SetOpacity(opacity float64) {
	v.view.SetOpacity(opacity)
}

func (v *WebView) SetUserAgent(ua string) {
	if settings := v.view.Settings(); settings != nil {
		settings.SetUserAgent(ua)
	}
}

// CanReportScriptResults is always true on WebKitGTK 6: evaluation
// completion callbacks carry the result, so the title side-channel is
// only kept for older engines.
func (v *WebView) CanReportScriptResults() bool {
	return true
}

// EnableEasyDrag starts a compositor-driven move on pointer drag, for
// frameless windows. moveTo is unused here: Wayland moves are opaque to
// the client.
func (v *WebView) EnableEasyDrag(moveTo func(x, y int)) {
	_ = moveTo
	drag := gtk.NewGestureDrag()
	drag.ConnectDragBegin(func(startX, startY float64) {
		root := v.view.Root()
		if root == nil {
			return
		}
		win, ok := root.Cast().(*gtk.Window)
		if !ok {
			return
		}
		if tl, ok := win.Surface().(*gdk.Toplevel); ok {
			tl.BeginMove(drag.Device(), 1, startX, startY, gdk.CURRENT_TIME)
		}
	})
	v.view.AddController(drag)
}

// SetEventHandler wires the renderer signals onto the event variant.
func (v *WebView) SetEventHandler(fn func(toolkit.Event)) {
	v.view.ConnectMap(func() {
		fn(toolkit.Event{Kind: toolkit.EventVisibilityReady})
	})

	v.view.ConnectLoadChanged(func(event webkit.LoadEvent) {
		if event == webkit.LoadFinished {
			fn(toolkit.Event{Kind: toolkit.EventLoadFinished})
		}
	})

	v.view.Connect("notify::title", func() {
		fn(toolkit.Event{Kind: toolkit.EventTitleChanged, Title: v.view.Title()})
	})

	v.view.ConnectDecidePolicy(func(decision webkit.PolicyDecisioner, decisionType webkit.PolicyDecisionType) bool {
		if decisionType != webkit.PolicyDecisionTypeNewWindowAction {
			return false
		}
		nav, ok := decision.(*webkit.NavigationPolicyDecision)
		if !ok {
			return false
		}
		uri := nav.NavigationAction().Request().URI()
		fn(toolkit.Event{
			Kind:        toolkit.EventNavigationRequested,
			URI:         uri,
			TargetBlank: true,
			Cancel:      func() { nav.Ignore() },
		})
		return true
	})
}
