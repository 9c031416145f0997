// internal/template/registry.go
package template

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/you-n-g/obsidian-latex-suite/internal/config"
	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
)

// Snippet is one compiled snippet definition.
type Snippet struct {
	Trigger     string
	Replacement string
	Description string

	Auto         bool // expand as soon as the trigger is typed
	WordBoundary bool // only expand when the trigger starts at a word boundary
	Regex        bool // trigger is a regular expression

	pattern *regexp.Regexp // compiled trigger, anchored at end of input
}

// Match is the result of matching typed text against a snippet.
type Match struct {
	Snippet     *Snippet
	MatchedText string // the text before the cursor that the trigger consumed
	Replacement string // replacement with regex captures substituted
}

// Registry holds compiled snippets in definition order. Earlier definitions
// win when several triggers match.
type Registry struct {
	snippets []*Snippet
}

// NewRegistry compiles snippet definitions. A definition with an invalid
// regex trigger is skipped with a warning rather than failing the whole set.
func NewRegistry(defs []config.SnippetDef) *Registry {
	r := &Registry{}
	for _, def := range defs {
		s, err := compile(def)
		if err != nil {
			logger.Warnf("Skipping snippet %q: %v", def.Trigger, err)
			continue
		}
		r.snippets = append(r.snippets, s)
	}
	return r
}

func compile(def config.SnippetDef) (*Snippet, error) {
	s := &Snippet{
		Trigger:     def.Trigger,
		Replacement: def.Replacement,
		Description: def.Description,
	}
	for _, opt := range def.Options {
		switch opt {
		case 'A':
			s.Auto = true
		case 'w':
			s.WordBoundary = true
		case 'r':
			s.Regex = true
		default:
			return nil, fmt.Errorf("unknown option %q", string(opt))
		}
	}
	if s.Regex {
		// Anchor at the end so the trigger must abut the cursor.
		pattern, err := regexp.Compile("(?:" + def.Trigger + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid trigger regex: %w", err)
		}
		s.pattern = pattern
	}
	return s, nil
}

// Len returns the number of compiled snippets.
func (r *Registry) Len() int {
	return len(r.snippets)
}

// Match finds the first snippet whose trigger matches the end of
// textBefore (the document text up to the cursor). When autoOnly is true,
// only auto-option snippets are considered; that is the per-keystroke path,
// while an explicit expand key passes false and may fire any snippet.
func (r *Registry) Match(textBefore string, autoOnly bool) *Match {
	for _, s := range r.snippets {
		if autoOnly && !s.Auto {
			continue
		}
		if m := s.match(textBefore); m != nil {
			return m
		}
	}
	return nil
}

func (s *Snippet) match(textBefore string) *Match {
	if s.Regex {
		loc := s.pattern.FindStringSubmatchIndex(textBefore)
		if loc == nil {
			return nil
		}
		matched := textBefore[loc[0]:loc[1]]
		if matched == "" {
			return nil
		}
		if s.WordBoundary && !atWordBoundary(textBefore, loc[0]) {
			return nil
		}
		groups := s.pattern.FindStringSubmatch(textBefore)
		return &Match{
			Snippet:     s,
			MatchedText: matched,
			Replacement: substituteCaptures(s.Replacement, groups[1:]),
		}
	}

	if !strings.HasSuffix(textBefore, s.Trigger) {
		return nil
	}
	start := len(textBefore) - len(s.Trigger)
	if s.WordBoundary && !atWordBoundary(textBefore, start) {
		return nil
	}
	return &Match{
		Snippet:     s,
		MatchedText: s.Trigger,
		Replacement: s.Replacement,
	}
}

// atWordBoundary reports whether the character before start is absent or a
// non-word character.
func atWordBoundary(text string, start int) bool {
	if start == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:start])
	return !unicode.IsLetter(prev) && !unicode.IsDigit(prev) && prev != '_'
}

// substituteCaptures replaces [[0]], [[1]], ... markers in a replacement with
// the corresponding regex capture group.
func substituteCaptures(replacement string, captures []string) string {
	for i, capture := range captures {
		marker := fmt.Sprintf("[[%d]]", i)
		replacement = strings.ReplaceAll(replacement, marker, capture)
	}
	return replacement
}
