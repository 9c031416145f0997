// internal/snippet/view.go
// Package snippet is the expansion and tabstop-navigation engine: it drains
// queued snippet requests into atomic buffer mutations, tracks the resulting
// placeholder groups, and advances the selection between them.
package snippet

import "github.com/you-n-g/obsidian-latex-suite/internal/types"

// View is the document surface the engine drives. Dispatch applies a
// transaction atomically; implementations must remap the active tabstop
// group ranges of their session through every transaction's edits, so
// stored ranges stay valid while the document keeps changing.
type View interface {
	Length() int
	Slice(from, to int) string
	Selection() types.Selection
	Dispatch(tx types.Transaction)
}
