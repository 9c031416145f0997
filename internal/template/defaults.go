// internal/template/defaults.go
package template

import "github.com/you-n-g/obsidian-latex-suite/internal/config"

// DefaultSnippets is the built-in LaTeX-flavored snippet set used when no
// snippets file is found.
func DefaultSnippets() []config.SnippetDef {
	return []config.SnippetDef{
		{Trigger: "mk", Replacement: "$$1$$0", Options: "Aw", Description: "Inline math"},
		{Trigger: "dm", Replacement: "$$\n\t$1\n$$\n$0", Options: "Aw", Description: "Display math"},
		{Trigger: "beg", Replacement: "\\begin{$1}\n\t$2\n\\end{$1}", Options: "Aw", Description: "Environment"},
		{Trigger: "//", Replacement: "\\frac{$1}{$2}$0", Options: "A", Description: "Fraction"},
		{Trigger: "([a-zA-Z0-9]+)/", Replacement: "\\frac{[[0]]}{$1}$0", Options: "rA", Description: "Fraction from numerator"},
		{Trigger: "sr", Replacement: "^{2}", Options: "A", Description: "Square"},
		{Trigger: "cb", Replacement: "^{3}", Options: "A", Description: "Cube"},
		{Trigger: "td", Replacement: "^{$1}$0", Options: "A", Description: "Superscript"},
		{Trigger: "_", Replacement: "_{$1}$0", Options: "A", Description: "Subscript"},
		{Trigger: "sq", Replacement: "\\sqrt{$1}$0", Options: "Aw", Description: "Square root"},
		{Trigger: "sum", Replacement: "\\sum_{$1}^{$2}$0", Options: "Aw", Description: "Sum"},
		{Trigger: "int", Replacement: "\\int_{$1}^{$2}$0", Options: "Aw", Description: "Integral"},
		{Trigger: "lim", Replacement: "\\lim_{$1 \\to $2}$0", Options: "Aw", Description: "Limit"},
		{Trigger: "fn", Replacement: "for (let ${1:i} = 0; ${1:i} < ${2:n}; ${1:i}++) {\n\t$3\n}", Options: "w", Description: "For loop"},
	}
}
