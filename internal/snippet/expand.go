// internal/snippet/expand.go
package snippet

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/you-n-g/obsidian-latex-suite/internal/edit"
	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// Transaction meta tags understood by the history layer.
const (
	// MetaSnippetStart tags the transaction where a snippet substitution
	// begins; it opens a history step that absorbs the finalize edit.
	MetaSnippetStart = "snippet.start"
	// MetaSnippetFinalize tags the edit that rewrites placeholder markers
	// into their default text; history folds it into the open snippet step.
	MetaSnippetFinalize = "snippet.finalize"
	// MetaSnippetEnd tags the selection that closes the expansion.
	MetaSnippetEnd = "snippet.end"
)

// ExpandPending drains the session's request queue into the document as one
// logical expansion: replay any trigger keystrokes as an isolated history
// step, commit the substitution with the keystrokes composed away, collect
// and mark tabstops, rewrite markers into default text and select the first
// group. Returns false if nothing was queued.
func ExpandPending(view View, ses *Session) bool {
	reqs := ses.Queue.drain()
	if len(reqs) == 0 {
		return false
	}

	docLen := view.Length()
	original := view.Slice(0, docLen)

	substEdits := make([]types.TextEdit, len(reqs))
	for i, r := range reqs {
		substEdits[i] = types.TextEdit{From: r.From, To: r.To, Insert: r.Insert}
	}
	substList := edit.NewList(docLen, substEdits...)
	keyList := keystrokeEdits(reqs, docLen, original)

	if keyList.Empty() {
		view.Dispatch(types.Transaction{Edits: substList.Edits(), Meta: MetaSnippetStart})
	} else {
		// The keystroke replay is its own isolated history step, so one
		// undo after expansion restores exactly the typed trigger text.
		view.Dispatch(types.Transaction{Edits: keyList.Edits(), Isolate: true})
		combined := keyList.Invert(original).Compose(substList)
		view.Dispatch(types.Transaction{Edits: combined.Edits(), Meta: MetaSnippetStart})
	}

	specs := collectTabstops(view, reqs, substList)
	if len(specs) == 0 {
		logger.Debugf("Snippet expansion: %d request(s), no tabstops", len(reqs))
		return true
	}

	groups := groupSpecs(specs, ses.Stops.NextColor())
	ses.Stops.Add(groups)

	// Rewrite each marker range into its default text. Dispatching remaps
	// the stored group ranges onto exactly that text.
	finalize := make([]types.TextEdit, len(specs))
	for i, sp := range specs {
		finalize[i] = types.TextEdit{From: sp.From, To: sp.To, Insert: sp.Replacement}
	}
	view.Dispatch(types.Transaction{Edits: finalize, Meta: MetaSnippetFinalize})

	first := ses.Stops.Groups()[0]
	sel := first.Select(false, first.Index == 0)
	view.Dispatch(types.Transaction{Selection: &sel, Meta: MetaSnippetEnd})

	// A single remaining stop needs no further navigation bookkeeping.
	if ses.Stops.Len() == 1 {
		ses.Stops.ClearAll()
	}
	logger.Debugf("Snippet expansion: %d request(s), %d group(s)", len(reqs), len(groups))
	return true
}

// keystrokeEdits synthesizes the trigger-keystroke replay list: for every
// key-triggered request, re-insert the character preceding the trigger
// point together with the trigger key, replacing that preceding character.
// Anchoring on the preceding character keeps the cursor at the end of the
// inserted text instead of drifting before it.
func keystrokeEdits(reqs []Request, docLen int, original string) edit.List {
	var edits []types.TextEdit
	for _, r := range reqs {
		if r.TriggerKey == "" {
			continue
		}
		from := r.To
		if r.To > 0 {
			_, size := utf8.DecodeLastRuneInString(original[:r.To])
			from = r.To - size
		}
		edits = append(edits, types.TextEdit{
			From:   from,
			To:     r.To,
			Insert: original[from:r.To] + r.TriggerKey,
		})
	}
	return edit.NewList(docLen, edits...)
}

// collectTabstops maps each request's original position through the
// substitution-only list to its post-edit anchor and concatenates the specs
// every request reports there, preserving request order.
func collectTabstops(view View, reqs []Request, substList edit.List) []Spec {
	docLen := view.Length()
	var specs []Spec
	for _, r := range reqs {
		if r.Tabstops == nil {
			continue
		}
		anchor := substList.MapPos(r.From, edit.BiasBefore)
		for _, sp := range r.Tabstops(view, anchor) {
			if sp.From < 0 || sp.From > sp.To || sp.To > docLen {
				panic(fmt.Sprintf("snippet: %s out of bounds for doc length %d", sp, docLen))
			}
			specs = append(specs, sp)
		}
	}
	return specs
}

// groupSpecs folds a flat spec list into groups ordered by navigation
// precedence: ascending tabstop number, the final stop (0) last.
func groupSpecs(specs []Spec, color int) []Group {
	byIndex := make(map[int][]types.SelRange)
	var indexes []int
	for _, sp := range specs {
		if _, seen := byIndex[sp.Group]; !seen {
			indexes = append(indexes, sp.Group)
		}
		byIndex[sp.Group] = append(byIndex[sp.Group], types.SelRange{From: sp.From, To: sp.To})
	}
	sort.SliceStable(indexes, func(i, j int) bool {
		return navOrder(indexes[i]) < navOrder(indexes[j])
	})

	groups := make([]Group, len(indexes))
	for i, idx := range indexes {
		groups[i] = Group{Index: idx, Ranges: byIndex[idx], Color: color}
	}
	return groups
}

func navOrder(group int) int {
	if group == 0 {
		return int(^uint(0) >> 1) // final stop sorts last
	}
	return group
}
