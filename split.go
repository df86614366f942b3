package wisp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultWhitespaceWidth is the reserved width, in em, given to whitespace
// units so inter-word spacing survives decomposition.
const DefaultWhitespaceWidth = 0.3

// SegmentKind distinguishes the pieces of a container's mixed content.
type SegmentKind uint8

const (
	SegmentText    SegmentKind = iota // a run of text, decomposed into units
	SegmentBreak                      // a line break, passed through
	SegmentElement                    // opaque inline markup, passed through
)

// Segment is one piece of a container's original content.
type Segment struct {
	Kind SegmentKind
	// Text is the run for SegmentText and the visible text of an element.
	Text string
	// Tag and Markup describe a SegmentElement.
	Tag    string
	Markup string
}

// Text builds a text segment.
func Text(s string) Segment { return Segment{Kind: SegmentText, Text: s} }

// Break builds a line-break segment.
func Break() Segment { return Segment{Kind: SegmentBreak} }

// Structural is a pass-through segment and the number of units that precede
// it in the decomposed sequence.
type Structural struct {
	Position int
	Segment  Segment
}

// SplitOptions controls decomposition.
type SplitOptions struct {
	// TrimRuns trims surrounding whitespace from each text run before
	// splitting. Runs that become empty are skipped.
	TrimRuns bool
	// WhitespaceWidth overrides DefaultWhitespaceWidth when positive.
	WhitespaceWidth float64
}

// ParseMarkup parses an HTML fragment into segments. Text nodes become text
// runs, <br> becomes a break, and every other element is kept whole as an
// opaque element segment. Comments are dropped.
func ParseMarkup(markup string) ([]Segment, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	segs := make([]Segment, 0, len(nodes))
	for _, n := range nodes {
		switch {
		case n.Type == html.TextNode:
			segs = append(segs, Text(n.Data))
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			segs = append(segs, Break())
		case n.Type == html.ElementNode:
			var b strings.Builder
			if err := html.Render(&b, n); err != nil {
				return nil, fmt.Errorf("render element %s: %w", n.Data, err)
			}
			segs = append(segs, Segment{
				Kind:   SegmentElement,
				Tag:    n.Data,
				Markup: b.String(),
				Text:   textContent(n),
			})
		}
	}
	return segs, nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Br {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Split decomposes segments into one CharacterUnit per grapheme cluster of
// every text run, in order. Breaks and elements are returned untouched as
// structural children positioned by the count of preceding units.
func Split(segs []Segment, opts SplitOptions) ([]CharacterUnit, []Structural) {
	ws := opts.WhitespaceWidth
	if ws <= 0 {
		ws = DefaultWhitespaceWidth
	}

	var units []CharacterUnit
	var structural []Structural
	for _, seg := range segs {
		if seg.Kind != SegmentText {
			structural = append(structural, Structural{Position: len(units), Segment: seg})
			continue
		}
		text := seg.Text
		if opts.TrimRuns {
			text = strings.TrimSpace(text)
		}
		if text == "" {
			continue
		}
		g := uniseg.NewGraphemes(text)
		for g.Next() {
			glyph := g.Str()
			u := CharacterUnit{Index: len(units), Glyph: glyph, Current: Neutral}
			if isBlank(glyph) {
				u.IsWhitespace = true
				u.MinWidth = ws
			}
			units = append(units, u)
		}
	}
	return units, structural
}

func isBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
