package template

import (
	"testing"

	"github.com/you-n-g/obsidian-latex-suite/internal/config"
)

func TestRegistryMatch(t *testing.T) {
	reg := NewRegistry([]config.SnippetDef{
		{Trigger: "mk", Replacement: "$$1$$0", Options: "Aw"},
		{Trigger: "sr", Replacement: "^{2}", Options: "A"},
		{Trigger: "beg", Replacement: "\\begin{$1}\n\t$2\n\\end{$1}", Options: "w"},
		{Trigger: "([a-zA-Z0-9]+)/", Replacement: "\\frac{[[0]]}{$1}$0", Options: "rA"},
	})

	t.Run("plain trigger matches at end of text", func(t *testing.T) {
		m := reg.Match("some text mk", true)
		if m == nil {
			t.Fatal("expected a match")
		}
		if m.MatchedText != "mk" || m.Replacement != "$$1$$0" {
			t.Errorf("got %+v", m)
		}
	})

	t.Run("no match mid-text", func(t *testing.T) {
		if m := reg.Match("mk and more", true); m != nil {
			t.Errorf("unexpected match %+v", m)
		}
	})

	t.Run("word boundary rejects mid-word trigger", func(t *testing.T) {
		if m := reg.Match("hmk", true); m != nil {
			t.Errorf("unexpected match %+v", m)
		}
		if m := reg.Match(" mk", true); m == nil {
			t.Error("expected match after space")
		}
	})

	t.Run("non-word-boundary trigger matches anywhere", func(t *testing.T) {
		m := reg.Match("xsr", true)
		if m == nil || m.Snippet.Trigger != "sr" {
			t.Fatalf("got %+v", m)
		}
	})

	t.Run("autoOnly skips non-auto snippets", func(t *testing.T) {
		if m := reg.Match("beg", true); m != nil {
			t.Errorf("auto pass must skip tab-only snippet, got %+v", m)
		}
		m := reg.Match("beg", false)
		if m == nil || m.Snippet.Trigger != "beg" {
			t.Fatalf("got %+v", m)
		}
	})

	t.Run("regex trigger substitutes captures", func(t *testing.T) {
		m := reg.Match("take x2/", true)
		if m == nil {
			t.Fatal("expected a match")
		}
		if m.MatchedText != "x2/" {
			t.Errorf("matched %q", m.MatchedText)
		}
		if m.Replacement != "\\frac{x2}{$1}$0" {
			t.Errorf("got replacement %q", m.Replacement)
		}
	})

	t.Run("earlier definition wins", func(t *testing.T) {
		first := NewRegistry([]config.SnippetDef{
			{Trigger: "ab", Replacement: "first", Options: "A"},
			{Trigger: "b", Replacement: "second", Options: "A"},
		})
		m := first.Match("ab", true)
		if m == nil || m.Replacement != "first" {
			t.Fatalf("got %+v", m)
		}
	})

	t.Run("invalid regex is skipped at compile time", func(t *testing.T) {
		r := NewRegistry([]config.SnippetDef{
			{Trigger: "([", Replacement: "x", Options: "r"},
			{Trigger: "ok", Replacement: "y", Options: ""},
		})
		if r.Len() != 1 {
			t.Errorf("expected 1 compiled snippet, got %d", r.Len())
		}
	})

	t.Run("unknown option is rejected", func(t *testing.T) {
		r := NewRegistry([]config.SnippetDef{
			{Trigger: "zz", Replacement: "x", Options: "Q"},
		})
		if r.Len() != 0 {
			t.Errorf("expected snippet to be skipped, got %d", r.Len())
		}
	})
}
