// internal/types/selection.go
package types

// SelRange is one selection range, [From, To) in byte offsets, From <= To.
// A zero-width range is a plain cursor.
type SelRange struct {
	From int
	To   int
}

// Empty reports whether the range is a zero-width cursor.
func (r SelRange) Empty() bool {
	return r.From == r.To
}

// Covers reports whether other lies entirely within r (boundaries included).
func (r SelRange) Covers(other SelRange) bool {
	return other.From >= r.From && other.To <= r.To
}

// Selection is a (possibly multi-range) editor selection. Ranges are kept
// sorted by From and non-overlapping; Main indexes the primary range.
type Selection struct {
	Ranges []SelRange
	Main   int
}

// Cursor returns a single zero-width selection at pos.
func Cursor(pos int) Selection {
	return Selection{Ranges: []SelRange{{From: pos, To: pos}}}
}

// Single returns a single-range selection covering [from, to).
func Single(from, to int) Selection {
	return Selection{Ranges: []SelRange{{From: from, To: to}}}
}

// MainRange returns the primary range. An empty selection yields a cursor at 0.
func (s Selection) MainRange() SelRange {
	if len(s.Ranges) == 0 {
		return SelRange{}
	}
	if s.Main < 0 || s.Main >= len(s.Ranges) {
		return s.Ranges[0]
	}
	return s.Ranges[s.Main]
}

// Eq reports whether two selections cover exactly the same ranges.
func (s Selection) Eq(other Selection) bool {
	if len(s.Ranges) != len(other.Ranges) {
		return false
	}
	for i := range s.Ranges {
		if s.Ranges[i] != other.Ranges[i] {
			return false
		}
	}
	return true
}
