//go:build !gtk

package gtk

import (
	"github.com/rs/zerolog"

	"github.com/bnema/webpane/internal/toolkit"
)

// Loop is a no-op stand-in for non-gtk builds.
type Loop struct{}

// NewLoop returns a stub loop.
func NewLoop() *Loop { return &Loop{} }

// Run is a no-op in non-gtk builds.
func (l *Loop) Run() {}

// Quit is a no-op in non-gtk builds.
func (l *Loop) Quit() {}

// Post runs fn inline in non-gtk builds.
func (l *Loop) Post(fn func()) { fn() }

// Pump is a no-op in non-gtk builds.
func (l *Loop) Pump() {}

// Level always reports 0 in non-gtk builds.
func (l *Loop) Level() int { return 0 }

// Factory always fails in non-gtk builds.
type Factory struct {
	Logger zerolog.Logger
}

// NewHost returns ErrUnavailable.
func (f *Factory) NewHost(title string) (*toolkit.Host, error) {
	_ = title
	return nil, ErrUnavailable
}
