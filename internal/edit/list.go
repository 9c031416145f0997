// internal/edit/list.go
// Package edit builds, inverts and composes ordered lists of text edits
// against a single document snapshot, and maps positions through them.
package edit

import (
	"fmt"
	"sort"

	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// Bias controls where a mapped position lands when it sits exactly on an
// edit boundary.
type Bias int

const (
	// BiasBefore keeps the position before text inserted at that point.
	BiasBefore Bias = -1
	// BiasAfter moves the position past text inserted at that point. This is
	// the bias that keeps a just-typed cursor at the end of new text.
	BiasAfter Bias = 1
)

// List is an ordered sequence of non-overlapping edits expressed against one
// document snapshot of known length. The zero value is an empty list against
// an empty document.
type List struct {
	length int
	edits  []types.TextEdit
}

// NewList creates a List against a document of length docLen. Edits are
// sorted by position; out-of-range or overlapping edits are a contract
// violation of the caller and panic rather than being clamped (clamping
// would silently corrupt position mapping).
func NewList(docLen int, edits ...types.TextEdit) List {
	sorted := make([]types.TextEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})

	prevEnd := 0
	for _, e := range sorted {
		if e.From < 0 || e.From > e.To || e.To > docLen {
			panic(fmt.Sprintf("edit: range %s out of bounds for doc length %d", e, docLen))
		}
		if e.From < prevEnd {
			panic(fmt.Sprintf("edit: overlapping edit %s", e))
		}
		prevEnd = e.To
	}
	return List{length: docLen, edits: sorted}
}

// Edits returns the ordered edits. The slice must not be mutated.
func (l List) Edits() []types.TextEdit {
	return l.edits
}

// Empty reports whether the list contains no edits.
func (l List) Empty() bool {
	return len(l.edits) == 0
}

// OriginalLength returns the length of the document the list applies to.
func (l List) OriginalLength() int {
	return l.length
}

// NewLength returns the document length after applying the list.
func (l List) NewLength() int {
	n := l.length
	for _, e := range l.edits {
		n += e.Delta()
	}
	return n
}

// Apply applies the list to the original document content.
func (l List) Apply(src string) string {
	if len(src) != l.length {
		panic(fmt.Sprintf("edit: Apply on document of length %d, list expects %d", len(src), l.length))
	}
	var out []byte
	pos := 0
	for _, e := range l.edits {
		out = append(out, src[pos:e.From]...)
		out = append(out, e.Insert...)
		pos = e.To
	}
	out = append(out, src[pos:]...)
	return string(out)
}

// Invert returns the list that undoes l, expressed against the document as it
// is after l has been applied. src is the original document content.
func (l List) Invert(src string) List {
	if len(src) != l.length {
		panic(fmt.Sprintf("edit: Invert on document of length %d, list expects %d", len(src), l.length))
	}
	inv := make([]types.TextEdit, 0, len(l.edits))
	delta := 0
	for _, e := range l.edits {
		from := e.From + delta
		inv = append(inv, types.TextEdit{
			From:   from,
			To:     from + len(e.Insert),
			Insert: src[e.From:e.To],
		})
		delta += e.Delta()
	}
	return List{length: l.NewLength(), edits: inv}
}

// Compose combines l with a list expressed against l's output document,
// producing a single equivalent list against l's original document.
func (l List) Compose(next List) List {
	if next.length != l.NewLength() {
		panic(fmt.Sprintf("edit: Compose length mismatch: %d vs %d", next.length, l.NewLength()))
	}
	composed := composeOps(l.ops(), next.ops())
	return opsToList(l.length, composed)
}

// MapPos tracks where a pre-edit offset lands after the edits. Positions
// inside a replaced range collapse to the start (BiasBefore) or the end
// (BiasAfter) of the replacement text.
func (l List) MapPos(pos int, bias Bias) int {
	delta := 0
	for _, e := range l.edits {
		if pos < e.From {
			break
		}
		if pos == e.From {
			// A pure insertion exactly at pos only moves the position when
			// the bias points past the inserted text.
			if e.From == e.To && bias == BiasAfter {
				delta += len(e.Insert)
			}
			break
		}
		if pos <= e.To {
			if bias == BiasBefore && pos < e.To {
				return e.From + delta
			}
			return e.From + len(e.Insert) + delta
		}
		delta += e.Delta()
	}
	return pos + delta
}

// MapRange maps a range so that it keeps covering the text it covered:
// the start maps with BiasBefore, the end with BiasAfter, so text typed at
// either boundary grows the range.
func (l List) MapRange(r types.SelRange) types.SelRange {
	return types.SelRange{
		From: l.MapPos(r.From, BiasBefore),
		To:   l.MapPos(r.To, BiasAfter),
	}
}

// MapSelection maps every range of a selection with the given bias on both
// endpoints (cursor semantics).
func (l List) MapSelection(sel types.Selection, bias Bias) types.Selection {
	mapped := types.Selection{Ranges: make([]types.SelRange, len(sel.Ranges)), Main: sel.Main}
	for i, r := range sel.Ranges {
		mapped.Ranges[i] = types.SelRange{
			From: l.MapPos(r.From, bias),
			To:   l.MapPos(r.To, bias),
		}
	}
	return mapped
}

// --- Internal operation-sequence form ---
//
// Compose works on a normalized stream of retain/delete/insert operations
// rather than on [from,to) ranges; the stream form makes the pairwise
// composition rules straightforward.

type op struct {
	retain int    // >0: keep this many bytes
	delete int    // >0: drop this many bytes
	insert string // non-empty: insert this text
}

func (l List) ops() []op {
	var ops []op
	pos := 0
	for _, e := range l.edits {
		if e.From > pos {
			ops = append(ops, op{retain: e.From - pos})
		}
		if e.To > e.From {
			ops = append(ops, op{delete: e.To - e.From})
		}
		if e.Insert != "" {
			ops = append(ops, op{insert: e.Insert})
		}
		pos = e.To
	}
	if pos < l.length {
		ops = append(ops, op{retain: l.length - pos})
	}
	return ops
}

// composeOps merges operation stream b (against a's output) into a.
func composeOps(a, b []op) []op {
	var out []op
	emit := func(o op) {
		if o.retain == 0 && o.delete == 0 && o.insert == "" {
			return
		}
		out = append(out, o)
	}

	i, j := 0, 0
	var cur, nxt op
	if i < len(a) {
		cur = a[i]
	}
	if j < len(b) {
		nxt = b[j]
	}
	advanceA := func() {
		i++
		if i < len(a) {
			cur = a[i]
		} else {
			cur = op{}
		}
	}
	advanceB := func() {
		j++
		if j < len(b) {
			nxt = b[j]
		} else {
			nxt = op{}
		}
	}

	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && cur.delete > 0:
			// Text deleted by a never reaches b; pass the delete through.
			emit(op{delete: cur.delete})
			advanceA()

		case j >= len(b):
			panic("edit: compose ran out of operations")

		case nxt.insert != "":
			// Text inserted by b exists regardless of a.
			emit(op{insert: nxt.insert})
			advanceB()

		case i >= len(a):
			panic("edit: compose ran out of operations")

		case cur.retain > 0 && nxt.retain > 0:
			n := min(cur.retain, nxt.retain)
			emit(op{retain: n})
			cur.retain -= n
			nxt.retain -= n
			if cur.retain == 0 {
				advanceA()
			}
			if nxt.retain == 0 {
				advanceB()
			}

		case cur.retain > 0 && nxt.delete > 0:
			n := min(cur.retain, nxt.delete)
			emit(op{delete: n})
			cur.retain -= n
			nxt.delete -= n
			if cur.retain == 0 {
				advanceA()
			}
			if nxt.delete == 0 {
				advanceB()
			}

		case cur.insert != "" && nxt.retain > 0:
			n := min(len(cur.insert), nxt.retain)
			emit(op{insert: cur.insert[:n]})
			cur.insert = cur.insert[n:]
			nxt.retain -= n
			if cur.insert == "" {
				advanceA()
			}
			if nxt.retain == 0 {
				advanceB()
			}

		case cur.insert != "" && nxt.delete > 0:
			// b deletes text a inserted: the two cancel out.
			n := min(len(cur.insert), nxt.delete)
			cur.insert = cur.insert[n:]
			nxt.delete -= n
			if cur.insert == "" {
				advanceA()
			}
			if nxt.delete == 0 {
				advanceB()
			}

		default:
			panic("edit: compose reached inconsistent operations")
		}
	}
	return out
}

// opsToList folds an operation stream back into an edit list against a
// document of the given original length.
func opsToList(docLen int, ops []op) List {
	var edits []types.TextEdit
	pos := 0         // position in the original document
	start := -1      // start of the pending edit, -1 when none
	pendingDel := 0  // bytes deleted by the pending edit
	pendingIns := "" // text inserted by the pending edit

	flush := func() {
		if start < 0 {
			return
		}
		edits = append(edits, types.TextEdit{From: start, To: start + pendingDel, Insert: pendingIns})
		start = -1
		pendingDel = 0
		pendingIns = ""
	}

	for _, o := range ops {
		switch {
		case o.retain > 0:
			flush()
			pos += o.retain
		case o.delete > 0:
			if start < 0 {
				start = pos
			}
			pendingDel += o.delete
			pos += o.delete
		case o.insert != "":
			if start < 0 {
				start = pos
			}
			pendingIns += o.insert
		}
	}
	flush()
	return NewList(docLen, edits...)
}
