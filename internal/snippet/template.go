// internal/snippet/template.go
package snippet

import "github.com/you-n-g/obsidian-latex-suite/internal/template"

// NewTemplateRequest builds a Request from a parsed replacement template:
// the parsed text (markers verbatim) is what the substitution inserts, and
// the tabstop callback locates every marker relative to the anchor.
func NewTemplateRequest(from, to int, triggerKey string, parsed template.Parsed) Request {
	return Request{
		From:       from,
		To:         to,
		Insert:     parsed.Text,
		TriggerKey: triggerKey,
		Tabstops: func(_ View, anchor int) []Spec {
			specs := make([]Spec, 0, len(parsed.Markers))
			for _, m := range parsed.Markers {
				specs = append(specs, Spec{
					From:        anchor + m.Offset,
					To:          anchor + m.Offset + m.Length,
					Replacement: m.Default,
					Group:       m.Group,
				})
			}
			return specs
		},
	}
}
