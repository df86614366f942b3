package wisp

import (
	"strings"
	"testing"
)

func glyphs(units []CharacterUnit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Glyph
	}
	return out
}

func TestSplitGraphemes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"ascii", "Hi!", []string{"H", "i", "!"}},
		{"space", "a b", []string{"a", " ", "b"}},
		{"combining", "éx", []string{"é", "x"}},
		{"emoji zwj", "a👩‍💻", []string{"a", "👩‍💻"}},
		{"flag", "🇯🇵!", []string{"🇯🇵", "!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units, _ := Split([]Segment{Text(tt.in)}, SplitOptions{})
			got := glyphs(units)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Split(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i, u := range units {
				if u.Index != i {
					t.Errorf("unit %d has index %d", i, u.Index)
				}
				if u.Current != Neutral {
					t.Errorf("unit %d starts at %+v", i, u.Current)
				}
			}
		})
	}
}

func TestSplitWhitespaceWidth(t *testing.T) {
	units, _ := Split([]Segment{Text("a b")}, SplitOptions{})
	if !units[1].IsWhitespace || units[1].MinWidth != DefaultWhitespaceWidth {
		t.Errorf("space unit = %+v", units[1])
	}
	if units[0].IsWhitespace || units[0].MinWidth != 0 {
		t.Errorf("letter unit = %+v", units[0])
	}

	units, _ = Split([]Segment{Text(" ")}, SplitOptions{WhitespaceWidth: 0.5})
	if units[0].MinWidth != 0.5 {
		t.Errorf("MinWidth = %v, want 0.5", units[0].MinWidth)
	}
}

func TestSplitStructural(t *testing.T) {
	segs := []Segment{
		Text("Creative"),
		Break(),
		{Kind: SegmentElement, Tag: "span", Markup: "<span>X</span>", Text: "X"},
		Text("Dev"),
	}
	units, structural := Split(segs, SplitOptions{})
	if len(units) != 11 {
		t.Fatalf("units = %d, want 11", len(units))
	}
	if len(structural) != 2 {
		t.Fatalf("structural = %d, want 2", len(structural))
	}
	if structural[0].Position != 8 || structural[0].Segment.Kind != SegmentBreak {
		t.Errorf("break = %+v", structural[0])
	}
	if structural[1].Position != 8 || structural[1].Segment.Tag != "span" {
		t.Errorf("element = %+v", structural[1])
	}
}

func TestSplitTrimRuns(t *testing.T) {
	segs := []Segment{Text("\n  Creative  \n"), Break(), Text("   "), Text(" Developer\n")}
	units, structural := Split(segs, SplitOptions{TrimRuns: true})
	if got := strings.Join(glyphs(units), ""); got != "CreativeDeveloper" {
		t.Errorf("glyphs = %q", got)
	}
	if len(structural) != 1 || structural[0].Position != 8 {
		t.Errorf("structural = %+v", structural)
	}
}

func TestSplitEmpty(t *testing.T) {
	units, structural := Split(nil, SplitOptions{})
	if len(units) != 0 || len(structural) != 0 {
		t.Errorf("got %d units, %d structural", len(units), len(structural))
	}
	units, structural = Split([]Segment{Break()}, SplitOptions{})
	if len(units) != 0 || len(structural) != 1 {
		t.Errorf("break only: %d units, %d structural", len(units), len(structural))
	}
}

func TestParseMarkup(t *testing.T) {
	segs, err := ParseMarkup(`Hello<br>big <em class="x">wide</em> world<!-- note -->`)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		kind SegmentKind
		text string
	}{
		{SegmentText, "Hello"},
		{SegmentBreak, ""},
		{SegmentText, "big "},
		{SegmentElement, "wide"},
		{SegmentText, " world"},
	}
	if len(segs) != len(want) {
		t.Fatalf("segments = %+v", segs)
	}
	for i, w := range want {
		if segs[i].Kind != w.kind || segs[i].Text != w.text {
			t.Errorf("segment %d = %+v, want kind %d text %q", i, segs[i], w.kind, w.text)
		}
	}
	if segs[3].Tag != "em" || segs[3].Markup != `<em class="x">wide</em>` {
		t.Errorf("element = %+v", segs[3])
	}
}

func TestSplitRoundTrip(t *testing.T) {
	inputs := []string{
		"Creative<br>Developer",
		"a <b>bold</b> move",
		"tab\tand  spaces",
		"👩‍💻 and é",
	}
	for _, in := range inputs {
		segs, err := ParseMarkup(in)
		if err != nil {
			t.Fatal(err)
		}
		reg := NewRegistry()
		c, err := reg.Register("c", segs, SplitOptions{})
		if err != nil {
			t.Fatal(err)
		}

		var want strings.Builder
		for _, s := range segs {
			if s.Kind == SegmentBreak {
				want.WriteByte('\n')
			} else {
				want.WriteString(s.Text)
			}
		}
		if got := c.Text(); got != want.String() {
			t.Errorf("round trip %q: got %q, want %q", in, got, want.String())
		}
	}
}
