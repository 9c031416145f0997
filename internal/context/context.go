// internal/context/context.go
// Package context classifies the syntax node at a buffer offset so snippet
// auto-expansion can be suppressed inside comments and strings.
package context

import (
	gocontext "context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"

	"github.com/you-n-g/obsidian-latex-suite/internal/buffer"
	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
)

// Kind is the coarse syntactic class at a position.
type Kind int

const (
	KindCode Kind = iota
	KindComment
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindString:
		return "string"
	default:
		return "code"
	}
}

// languageForExtension maps file extensions to grammars. Files outside the
// table are treated as plain text (everything is code).
func languageForExtension(ext string) *sitter.Language {
	switch ext {
	case ".go":
		return gosrc.GetLanguage()
	case ".py", ".pyw":
		return pythonsrc.GetLanguage()
	case ".js", ".mjs", ".cjs", ".json":
		return jssrc.GetLanguage()
	case ".rs":
		return rustsrc.GetLanguage()
	default:
		return nil
	}
}

// Detector parses the buffer on demand and answers KindAt queries. The parse
// tree is cached against the buffer version, so repeated queries between
// edits reuse it.
type Detector struct {
	parser      *sitter.Parser
	lang        *sitter.Language
	tree        *sitter.Tree
	treeVersion int
}

// NewDetector creates a detector for the given file. A nil detector language
// means no grammar is available and KindAt always reports code.
func NewDetector(filePath string) *Detector {
	d := &Detector{parser: sitter.NewParser()}
	d.lang = languageForExtension(strings.ToLower(filepath.Ext(filePath)))
	if d.lang != nil {
		d.parser.SetLanguage(d.lang)
	}
	return d
}

// Close releases the cached parse tree.
func (d *Detector) Close() {
	if d.tree != nil {
		d.tree.Close()
		d.tree = nil
	}
}

// KindAt reports the syntactic class at a byte offset. Parse failures fall
// back to code, so snippets stay usable when the parser cannot keep up.
func (d *Detector) KindAt(buf buffer.Buffer, offset int) Kind {
	if d.lang == nil || offset < 0 {
		return KindCode
	}
	if err := d.ensureTree(buf); err != nil {
		logger.Warnf("Context: parse failed: %v", err)
		return KindCode
	}

	node := d.tree.RootNode()
	target := uint32(offset)
	for {
		kind := classify(node.Type())
		if kind != KindCode {
			return kind
		}
		child := namedChildAt(node, target)
		if child == nil {
			return KindCode
		}
		node = child
	}
}

// ensureTree reparses when the buffer has changed since the cached tree.
func (d *Detector) ensureTree(buf buffer.Buffer) error {
	if d.tree != nil && d.treeVersion == buf.Version() {
		return nil
	}
	tree, err := d.parser.ParseCtx(gocontext.Background(), nil, buf.Bytes())
	if err != nil {
		return err
	}
	if d.tree != nil {
		d.tree.Close()
	}
	d.tree = tree
	d.treeVersion = buf.Version()
	return nil
}

// namedChildAt finds the named child whose byte range covers target. A
// cursor sitting at the very end of a node still counts as inside it, so
// typing at the end of a comment is gated too.
func namedChildAt(node *sitter.Node, target uint32) *sitter.Node {
	count := int(node.NamedChildCount())
	for i := 0; i < count; i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		if child.StartByte() <= target && target <= child.EndByte() {
			return child
		}
	}
	return nil
}

// classify maps a tree-sitter node type to a Kind. Grammar node names vary
// ("comment", "line_comment", "interpreted_string_literal", ...), so match
// on substrings.
func classify(nodeType string) Kind {
	if strings.Contains(nodeType, "comment") {
		return KindComment
	}
	if strings.Contains(nodeType, "string") || strings.Contains(nodeType, "char_literal") {
		return KindString
	}
	return KindCode
}
