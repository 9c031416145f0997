package template

import "testing"

func TestParse(t *testing.T) {
	t.Run("plain text has no markers", func(t *testing.T) {
		p := Parse("hello world")
		if p.Text != "hello world" {
			t.Errorf("got text %q", p.Text)
		}
		if p.HasMarkers() {
			t.Error("expected no markers")
		}
	})

	t.Run("bare markers stay verbatim in the text", func(t *testing.T) {
		p := Parse("\\sum_{$1}^{$2}$0")
		if p.Text != "\\sum_{$1}^{$2}$0" {
			t.Errorf("got text %q", p.Text)
		}
		want := []Marker{
			{Offset: 6, Length: 2, Group: 1},
			{Offset: 11, Length: 2, Group: 2},
			{Offset: 14, Length: 2, Group: 0},
		}
		if len(p.Markers) != len(want) {
			t.Fatalf("expected %d markers, got %d", len(want), len(p.Markers))
		}
		for i, m := range p.Markers {
			if m != want[i] {
				t.Errorf("marker %d: expected %+v, got %+v", i, want[i], m)
			}
		}
	})

	t.Run("braced markers carry default text", func(t *testing.T) {
		p := Parse("for ${1:i} in ${2:range}")
		want := []Marker{
			{Offset: 4, Length: 6, Group: 1, Default: "i"},
			{Offset: 14, Length: 10, Group: 2, Default: "range"},
		}
		if len(p.Markers) != len(want) {
			t.Fatalf("expected %d markers, got %d", len(want), len(p.Markers))
		}
		for i, m := range p.Markers {
			if m != want[i] {
				t.Errorf("marker %d: expected %+v, got %+v", i, want[i], m)
			}
		}
	})

	t.Run("final renders defaults in place of markers", func(t *testing.T) {
		p := Parse("for (let ${1:i} = 0; ${1:i} < ${2:n}; ${1:i}++) {\n\t$3\n}")
		if got := p.Final(); got != "for (let i = 0; i < n; i++) {\n\t\n}" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("mirrored markers repeat a group", func(t *testing.T) {
		p := Parse("for (let ${1:i} = 0; ${1:i} < ${2:n}; ${1:i}++) {\n\t$3\n}")
		groups := map[int]int{}
		for _, m := range p.Markers {
			groups[m.Group]++
		}
		if groups[1] != 3 || groups[2] != 1 || groups[3] != 1 {
			t.Errorf("unexpected group counts: %v", groups)
		}
	})

	t.Run("escaped dollar is literal", func(t *testing.T) {
		p := Parse("\\$$1\\$")
		if p.Text != "$$1$" {
			t.Errorf("got text %q", p.Text)
		}
		if len(p.Markers) != 1 || p.Markers[0].Offset != 1 || p.Markers[0].Group != 1 {
			t.Errorf("got markers %+v", p.Markers)
		}
		if got := p.Final(); got != "$$" {
			t.Errorf("final: got %q", got)
		}
	})

	t.Run("dollar without marker is literal", func(t *testing.T) {
		p := Parse("cost: $ amount")
		if p.Text != "cost: $ amount" {
			t.Errorf("got text %q", p.Text)
		}
		if p.HasMarkers() {
			t.Error("expected no markers")
		}
	})

	t.Run("braced marker without default", func(t *testing.T) {
		p := Parse("${1}x")
		if p.Text != "${1}x" {
			t.Errorf("got text %q", p.Text)
		}
		if len(p.Markers) != 1 || p.Markers[0].Group != 1 || p.Markers[0].Length != 4 {
			t.Errorf("got markers %+v", p.Markers)
		}
	})

	t.Run("unterminated brace is literal", func(t *testing.T) {
		p := Parse("${1:oops")
		if p.Text != "${1:oops" {
			t.Errorf("got text %q", p.Text)
		}
		if p.HasMarkers() {
			t.Error("expected no markers")
		}
	})
}
