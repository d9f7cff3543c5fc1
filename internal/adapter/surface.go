package adapter

import (
	"fmt"
	"log/slog"

	m "strlift.dev/pkg/strlift/internal/model"
)

// SurfaceManager owns the disposable editing surfaces sessions edit in. A
// surface is a plain text container with no persistence semantics of its
// own; the engine creates one per session and destroys it on save or
// cancel.
type SurfaceManager interface {
	// Create allocates a surface pre-filled with lines and returns its id.
	Create(lines []string) m.SurfaceID

	// Destroy releases the surface. Destroying an unknown id is an error,
	// but implementations must leave no residue behind regardless.
	Destroy(id m.SurfaceID) error

	// Lines returns the surface's current content.
	Lines(id m.SurfaceID) ([]string, error)

	// SetLines replaces the surface's content. Hosts push the user's edits
	// through here before the engine synchronizes.
	SetLines(id m.SurfaceID, lines []string) error

	// Exists reports whether id names a live surface of the recognized
	// editing type.
	Exists(id m.SurfaceID) bool
}

// MemSurfaceManager keeps surfaces in memory. It backs both the tests and
// the CLI, where the interactive editor pushes its buffer into the surface
// before each synchronize.
type MemSurfaceManager struct {
	surfaces map[m.SurfaceID][]string
	nextID   int
}

// NewMemSurfaceManager returns an empty manager.
func NewMemSurfaceManager() *MemSurfaceManager {
	return &MemSurfaceManager{surfaces: make(map[m.SurfaceID][]string)}
}

// Create allocates a new surface holding lines.
func (s *MemSurfaceManager) Create(lines []string) m.SurfaceID {
	s.nextID++
	id := m.SurfaceID(fmt.Sprintf("surface-%d", s.nextID))

	copied := make([]string, len(lines))
	copy(copied, lines)
	s.surfaces[id] = copied

	slog.Debug("created editing surface", "surface", string(id), "lines", len(lines))

	return id
}

// Destroy releases the surface for id.
func (s *MemSurfaceManager) Destroy(id m.SurfaceID) error {
	if _, ok := s.surfaces[id]; !ok {
		return fmt.Errorf("unknown surface %s", id)
	}

	delete(s.surfaces, id)
	slog.Debug("destroyed editing surface", "surface", string(id))

	return nil
}

// Lines returns a copy of the surface content.
func (s *MemSurfaceManager) Lines(id m.SurfaceID) ([]string, error) {
	lines, ok := s.surfaces[id]
	if !ok {
		return nil, fmt.Errorf("unknown surface %s", id)
	}

	copied := make([]string, len(lines))
	copy(copied, lines)

	return copied, nil
}

// SetLines replaces the surface content.
func (s *MemSurfaceManager) SetLines(id m.SurfaceID, lines []string) error {
	if _, ok := s.surfaces[id]; !ok {
		return fmt.Errorf("unknown surface %s", id)
	}

	copied := make([]string, len(lines))
	copy(copied, lines)
	s.surfaces[id] = copied

	return nil
}

// Exists reports whether id names a live surface.
func (s *MemSurfaceManager) Exists(id m.SurfaceID) bool {
	_, ok := s.surfaces[id]

	return ok
}
