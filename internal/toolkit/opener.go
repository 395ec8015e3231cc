package toolkit

import (
	"fmt"
	"os/exec"
)

// Opener launches a URI in the user's default external browser.
type Opener interface {
	OpenExternal(uri string) error
}

// XDGOpener shells out to xdg-open, the freedesktop way.
type XDGOpener struct {
	path string
}

// NewXDGOpener locates xdg-open on PATH.
func NewXDGOpener() (*XDGOpener, error) {
	path, err := exec.LookPath("xdg-open")
	if err != nil {
		return nil, fmt.Errorf("toolkit: xdg-open not found: %w", err)
	}
	return &XDGOpener{path: path}, nil
}

// OpenExternal opens uri without waiting for the browser to exit.
func (o *XDGOpener) OpenExternal(uri string) error {
	cmd := exec.Command(o.path, uri)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("toolkit: open %s: %w", uri, err)
	}
	// Reap the child in the background.
	go func() { _ = cmd.Wait() }()
	return nil
}
