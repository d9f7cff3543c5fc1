package domain

import (
	m "strlift.dev/pkg/strlift/internal/model"
)

// BindingStore associates editing surfaces with their source bindings. It is
// mutated only by the synchronization engine, after a successful write,
// never speculatively. The engine is synchronous and single-threaded, so the
// store carries no locking; span-validity checks before every write carry
// the correctness burden instead.
type BindingStore struct {
	bindings map[m.SurfaceID]*m.SourceBinding
}

// NewBindingStore returns an empty store.
func NewBindingStore() *BindingStore {
	return &BindingStore{bindings: make(map[m.SurfaceID]*m.SourceBinding)}
}

// Get returns the binding for id, or nil when the session is unknown.
func (s *BindingStore) Get(id m.SurfaceID) *m.SourceBinding {
	return s.bindings[id]
}

// Put records or replaces the binding for id.
func (s *BindingStore) Put(id m.SurfaceID, binding *m.SourceBinding) {
	s.bindings[id] = binding
}

// Delete removes the binding for id. Deleting an unknown id is a no-op.
func (s *BindingStore) Delete(id m.SurfaceID) {
	delete(s.bindings, id)
}

// Len returns the number of live bindings.
func (s *BindingStore) Len() int {
	return len(s.bindings)
}

// Overlapping returns the id of a live binding on the same origin document
// whose span intersects span, if any. Used to reject overlapping sessions at
// creation time.
func (s *BindingStore) Overlapping(originDocument string, span m.Span) (m.SurfaceID, bool) {
	for id, b := range s.bindings {
		if b.OriginDocument == originDocument && b.Span.Overlaps(span) {
			return id, true
		}
	}

	return "", false
}

// Each calls fn for every live binding.
func (s *BindingStore) Each(fn func(id m.SurfaceID, binding *m.SourceBinding)) {
	for id, b := range s.bindings {
		fn(id, b)
	}
}
