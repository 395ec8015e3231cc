package surface

import (
	"sync"

	"github.com/bnema/webpane/internal/toolkit"
)

// fakeLoop executes posted callbacks inline, which keeps construction
// and event delivery deterministic in tests.
type fakeLoop struct {
	mu     sync.Mutex
	level  int
	quits  int
	pumps  int
	inline bool
	queued []func()
}

func newFakeLoop() *fakeLoop {
	return &fakeLoop{level: 1, inline: true}
}

func (l *fakeLoop) Run() {}

func (l *fakeLoop) Quit() {
	l.mu.Lock()
	l.quits++
	l.level = 0
	l.mu.Unlock()
}

func (l *fakeLoop) Post(fn func()) {
	l.mu.Lock()
	inline := l.inline
	if !inline {
		l.queued = append(l.queued, fn)
	}
	l.mu.Unlock()
	if inline {
		fn()
	}
}

func (l *fakeLoop) Pump() {
	l.mu.Lock()
	l.pumps++
	queued := l.queued
	l.queued = nil
	l.mu.Unlock()
	for _, fn := range queued {
		fn()
	}
}

func (l *fakeLoop) Level() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *fakeLoop) quitCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quits
}

type fakeWindow struct {
	mu        sync.Mutex
	calls     []string
	title     string
	x, y      int
	w, h      int
	destroyed bool
	onClose   func()
}

func (w *fakeWindow) record(call string) {
	w.mu.Lock()
	w.calls = append(w.calls, call)
	w.mu.Unlock()
}

func (w *fakeWindow) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
	w.record("set-title")
}
func (w *fakeWindow) Resize(width, height int) {
	w.mu.Lock()
	w.w, w.h = width, height
	w.mu.Unlock()
	w.record("resize")
}
func (w *fakeWindow) SetMinSize(width, height int) { w.record("set-min-size") }
func (w *fakeWindow) Move(x, y int) {
	w.mu.Lock()
	w.x, w.y = x, y
	w.mu.Unlock()
	w.record("move")
}
func (w *fakeWindow) Center()                      { w.record("center") }
func (w *fakeWindow) SetResizable(resizable bool)  { w.record("set-resizable") }
func (w *fakeWindow) SetDecorated(decorated bool)  { w.record("set-decorated") }
func (w *fakeWindow) SetKeepAbove(above bool)      { w.record("set-keep-above") }
func (w *fakeWindow) Fullscreen()                  { w.record("fullscreen") }
func (w *fakeWindow) Unfullscreen()                { w.record("unfullscreen") }
func (w *fakeWindow) Iconify()                     { w.record("iconify") }
func (w *fakeWindow) Present()                     { w.record("present") }
func (w *fakeWindow) Show()                        { w.record("show") }
func (w *fakeWindow) Hide()                        { w.record("hide") }
func (w *fakeWindow) Destroy() {
	w.mu.Lock()
	w.destroyed = true
	w.mu.Unlock()
	w.record("destroy")
}
func (w *fakeWindow) Position() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.x, w.y
}
func (w *fakeWindow) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w, w.h
}
func (w *fakeWindow) SetBackgroundColor(color string, transparent bool) {
	w.record("set-background")
}
func (w *fakeWindow) SetCloseRequestHandler(fn func()) {
	w.onClose = fn
}

type submittedScript struct {
	text   string
	onDone func(result string, err error)
}

type fakeWebView struct {
	mu             sync.Mutex
	uris           []string
	contents       []string
	scripts        []submittedScript
	opacity        float64
	userAgent      string
	currentURI     string
	reportsResults bool
	// autoResult, when non-nil, completes every RunScript-with-callback
	// immediately with this value.
	autoResult *string
	handler    func(toolkit.Event)
}

func newFakeWebView() *fakeWebView {
	return &fakeWebView{reportsResults: true}
}

func (v *fakeWebView) Load(uri string) {
	v.mu.Lock()
	v.uris = append(v.uris, uri)
	v.mu.Unlock()
}

func (v *fakeWebView) LoadContent(html, baseURI string) {
	v.mu.Lock()
	v.contents = append(v.contents, html)
	v.mu.Unlock()
}

func (v *fakeWebView) RunScript(script string, onDone func(string, error)) {
	v.mu.Lock()
	v.scripts = append(v.scripts, submittedScript{text: script, onDone: onDone})
	auto := v.autoResult
	v.mu.Unlock()
	if onDone != nil && auto != nil {
		onDone(*auto, nil)
	}
}

func (v *fakeWebView) CurrentURI() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.currentURI
}

func (v *fakeWebView) SetOpacity(opacity float64) {
	v.mu.Lock()
	v.opacity = opacity
	v.mu.Unlock()
}

func (v *fakeWebView) SetUserAgent(ua string) {
	v.mu.Lock()
	v.userAgent = ua
	v.mu.Unlock()
}

func (v *fakeWebView) CanReportScriptResults() bool {
	return v.reportsResults
}

func (v *fakeWebView) EnableEasyDrag(moveTo func(x, y int)) {}

func (v *fakeWebView) SetEventHandler(fn func(toolkit.Event)) {
	v.handler = fn
}

func (v *fakeWebView) scriptTexts() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	texts := make([]string, len(v.scripts))
	for i, s := range v.scripts {
		texts[i] = s.text
	}
	return texts
}

func (v *fakeWebView) lastScript() string {
	texts := v.scriptTexts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

type fakeDialogs struct {
	mu             sync.Mutex
	confirmAnswers []bool
	confirms       int
	filePaths      []string
	fileOK         bool
	lastFileOpts   toolkit.FileDialogOptions
}

func (d *fakeDialogs) Confirm(title, message string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirms++
	if len(d.confirmAnswers) == 0 {
		return false
	}
	answer := d.confirmAnswers[0]
	d.confirmAnswers = d.confirmAnswers[1:]
	return answer
}

func (d *fakeDialogs) ChooseFiles(opts toolkit.FileDialogOptions) ([]string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastFileOpts = opts
	return d.filePaths, d.fileOK
}

type fakeFactory struct {
	win     *fakeWindow
	view    *fakeWebView
	dialogs *fakeDialogs
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		win:     &fakeWindow{},
		view:    newFakeWebView(),
		dialogs: &fakeDialogs{},
	}
}

func (f *fakeFactory) NewHost(title string) (*toolkit.Host, error) {
	return &toolkit.Host{Window: f.win, WebView: f.view, Dialogs: f.dialogs}, nil
}

type fakeOpener struct {
	mu   sync.Mutex
	uris []string
}

func (o *fakeOpener) OpenExternal(uri string) error {
	o.mu.Lock()
	o.uris = append(o.uris, uri)
	o.mu.Unlock()
	return nil
}
