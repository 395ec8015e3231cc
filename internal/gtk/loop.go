//go:build gtk

package gtk

import (
	"sync/atomic"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

// Loop drives the GLib main loop. It implements toolkit.Loop; only the
// thread that calls Run may touch native objects directly.
type Loop struct {
	main  *glib.MainLoop
	level int32
}

// NewLoop creates the main loop on the default context.
func NewLoop() *Loop {
	return &Loop{main: glib.NewMainLoop(nil, false)}
}

// Run blocks, servicing the loop until Quit.
func (l *Loop) Run() {
	atomic.AddInt32(&l.level, 1)
	l.main.Run()
	atomic.AddInt32(&l.level, -1)
}

// Quit stops the loop.
func (l *Loop) Quit() {
	l.main.Quit()
}

// Post schedules fn onto the loop thread via idle-add.
func (l *Loop) Post(fn func()) {
	glib.IdleAdd(func() bool {
		fn()
		return false
	})
}

// Pump synchronously drains pending iterations. Loop thread only.
func (l *Loop) Pump() {
	ctx := glib.MainContextDefault()
	for ctx.Pending() {
		ctx.Iteration(false)
	}
}

// Level reports the loop nesting depth; 0 means not running.
func (l *Loop) Level() int {
	return int(atomic.LoadInt32(&l.level))
}
