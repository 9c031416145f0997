// internal/snippet/tabstop.go
package snippet

import (
	"fmt"

	"github.com/you-n-g/obsidian-latex-suite/internal/edit"
	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// Spec is one placeholder occurrence: the document range its marker text
// occupies, the default text that replaces it, and the tabstop number.
// Specs sharing Group are mirrored stops selected together.
type Spec struct {
	From        int
	To          int
	Replacement string
	Group       int
}

func (s Spec) String() string {
	return fmt.Sprintf("tabstop %d [%d,%d)->%q", s.Group, s.From, s.To, s.Replacement)
}

// Group is an ordered set of ranges sharing one tabstop number, tagged with
// a display color index into the tabstop palette. Index 0 is the final stop.
type Group struct {
	Index  int
	Ranges []types.SelRange
	Color  int
}

// Select returns the selection that lands on this group. Full-range mode
// selects every range; collapse mode (or the final stop) places a cursor at
// each range's end instead of spanning it.
func (g Group) Select(collapse, isFinal bool) types.Selection {
	ranges := make([]types.SelRange, len(g.Ranges))
	for i, r := range g.Ranges {
		if collapse || isFinal {
			ranges[i] = types.SelRange{From: r.To, To: r.To}
		} else {
			ranges[i] = r
		}
	}
	return types.Selection{Ranges: ranges, Main: 0}
}

// ContainsSelection reports whether every range of sel lies within one of
// this group's ranges.
func (g Group) ContainsSelection(sel types.Selection) bool {
	if len(sel.Ranges) == 0 {
		return false
	}
	for _, sr := range sel.Ranges {
		covered := false
		for _, gr := range g.Ranges {
			if gr.Covers(sr) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

func (g *Group) mapThrough(l edit.List) {
	for i, r := range g.Ranges {
		g.Ranges[i] = l.MapRange(r)
	}
}
