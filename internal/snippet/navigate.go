// internal/snippet/navigate.go
package snippet

import "github.com/you-n-g/obsidian-latex-suite/internal/types"

// AdvanceToNext moves the selection from the current tabstop group to the
// next one. Returns false when no groups are active, so the caller can fall
// back to default key handling. Degenerate stops whose selection would not
// move are skipped by retrying against the shrinking store; the loop
// terminates because every pass consumes one group.
func AdvanceToNext(view View, ses *Session) bool {
	for {
		if ses.Stops.Empty() {
			return false
		}

		oldSel := view.Selection()
		ses.Stops.ConsumeCurrent()
		if ses.Stops.Empty() {
			// There was exactly one group and it has just been consumed.
			return true
		}

		next := ses.Stops.Groups()[0]

		// A selection already nested inside the next stop means the user
		// has been editing there; land on the boundary instead of
		// re-highlighting what they typed.
		collapse := next.ContainsSelection(oldSel)
		sel := next.Select(collapse, next.Index == 0)
		if sel.Eq(oldSel) {
			continue
		}

		view.Dispatch(types.Transaction{Selection: &sel})
		if ses.Stops.Len() == 1 {
			ses.Stops.ClearAll()
		}
		return true
	}
}

// IsSelectionInside reports whether the current selection lies within any
// active tabstop group. Callers use it to decide whether to intercept a key
// at all.
func IsSelectionInside(view View, ses *Session) bool {
	return ses.Stops.ContainsSelection(view.Selection())
}
