// Package gtk adapts the toolkit capability surface onto GTK4 and
// WebKitGTK through gotk4. The real implementation is behind the "gtk"
// build tag; without it the package compiles to stubs so the core and
// its tests build on machines without GTK.
package gtk

import "errors"

// ErrUnavailable is returned by stub builds (no "gtk" build tag).
var ErrUnavailable = errors.New("gtk: built without gtk support")
