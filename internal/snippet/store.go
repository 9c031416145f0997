// internal/snippet/store.go
package snippet

import (
	"github.com/you-n-g/obsidian-latex-suite/internal/edit"
	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// PaletteSize is the number of distinct tabstop colors; color indexes cycle
// through [0, PaletteSize).
const PaletteSize = 4

// Store holds the active tabstop groups in navigation order: index 0 is the
// group selected next. Empty at session start, populated wholesale by one
// expansion, shrinking by one per navigation step or cleared entirely.
type Store struct {
	groups []Group
}

// Add merges new groups at navigation-front precedence; they become the
// groups selected next.
func (s *Store) Add(groups []Group) {
	s.groups = append(append([]Group{}, groups...), s.groups...)
}

// ConsumeCurrent removes and returns the group at index 0.
func (s *Store) ConsumeCurrent() Group {
	g := s.groups[0]
	s.groups = s.groups[1:]
	return g
}

// ClearAll empties the store. This is the only cancellation primitive.
func (s *Store) ClearAll() {
	s.groups = nil
}

// Groups returns the ordered groups for inspection.
func (s *Store) Groups() []Group {
	return s.groups
}

// Empty reports whether no groups are active.
func (s *Store) Empty() bool {
	return len(s.groups) == 0
}

// Len returns the number of active groups.
func (s *Store) Len() int {
	return len(s.groups)
}

// NextColor picks a palette color not used by any active group, so
// overlapping snippet sessions stay visually distinguishable. With the
// whole palette in use it falls back to cycling past the front group's
// color.
func (s *Store) NextColor() int {
	inUse := [PaletteSize]bool{}
	for _, g := range s.groups {
		if g.Color >= 0 && g.Color < PaletteSize {
			inUse[g.Color] = true
		}
	}
	start := 0
	if len(s.groups) > 0 {
		start = (s.groups[0].Color + 1) % PaletteSize
	}
	for i := 0; i < PaletteSize; i++ {
		c := (start + i) % PaletteSize
		if !inUse[c] {
			return c
		}
	}
	return start
}

// MapThrough remaps every active group range through a dispatched edit
// list. Range starts keep text inserted at the boundary inside the range;
// so do range ends.
func (s *Store) MapThrough(l edit.List) {
	for i := range s.groups {
		s.groups[i].mapThrough(l)
	}
}

// ContainsSelection reports whether any active group contains sel.
func (s *Store) ContainsSelection(sel types.Selection) bool {
	for _, g := range s.groups {
		if g.ContainsSelection(sel) {
			return true
		}
	}
	return false
}
