package surface

import (
	"errors"
	"sync"

	"github.com/bnema/webpane/internal/session"
)

// ErrWindowNotFound is returned for operations addressed to a uid with
// no live surface.
var ErrWindowNotFound = errors.New("surface: window not found")

// Registry owns the uid -> surface mapping and the window list for one
// loop. Surfaces register on construction and deregister before their
// session signals closed.
type Registry struct {
	mu       sync.Mutex
	surfaces map[string]*Surface
	windows  *session.List
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		surfaces: make(map[string]*Surface),
		windows:  session.NewList(),
	}
}

// Get returns the live surface for uid.
func (r *Registry) Get(uid string) (*Surface, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.surfaces[uid]
	if !ok {
		return nil, ErrWindowNotFound
	}
	return s, nil
}

// Windows exposes the session list (read by the controller event pump).
func (r *Registry) Windows() *session.List {
	return r.windows
}

// Len reports the number of live surfaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.surfaces)
}

func (r *Registry) add(s *Surface) {
	r.mu.Lock()
	r.surfaces[s.sess.UID] = s
	r.mu.Unlock()
	r.windows.Add(s.sess)
}

// remove drops both the surface mapping and the session entry. Called
// from teardown before the closed signal fires.
func (r *Registry) remove(uid string) {
	r.mu.Lock()
	delete(r.surfaces, uid)
	r.mu.Unlock()
	r.windows.Remove(uid)
}
