package wisp

import "testing"

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()
	c, err := reg.Register("title", []Segment{Text("ab")}, SplitOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if c.ID == 0 {
		t.Error("ID 0 assigned")
	}
	if c.State() != StateIdle {
		t.Errorf("initial state %v", c.State())
	}
	for i, u := range c.Units() {
		if u.Owner != c.ID {
			t.Errorf("unit %d owner = %d, want %d", i, u.Owner, c.ID)
		}
	}
	if reg.Lookup("title") != c || reg.Container(c.ID) != c {
		t.Error("lookup mismatch")
	}
	if _, err := reg.Register("title", nil, SplitOptions{}); err == nil {
		t.Error("duplicate name accepted")
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d", reg.Len())
	}
}

func TestRegistryUnit(t *testing.T) {
	reg := NewRegistry()
	c, _ := reg.Register("x", []Segment{Text("abc")}, SplitOptions{})
	u := reg.Unit(c.ID, 2)
	if u == nil || u.Glyph != "c" {
		t.Fatalf("Unit(2) = %+v", u)
	}
	u.Current.X = 5
	if c.Units()[2].Current.X != 5 {
		t.Error("Unit does not point into the container")
	}
	if reg.Unit(c.ID, 3) != nil || reg.Unit(c.ID, -1) != nil || reg.Unit(99, 0) != nil {
		t.Error("out-of-range lookups should be nil")
	}
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistry()
	a, _ := reg.Register("a", []Segment{Text("a")}, SplitOptions{})
	b, _ := reg.Register("b", []Segment{Text("b")}, SplitOptions{})
	reg.Remove(a.ID)

	if !a.IsDisposed() || a.NumUnits() != 0 {
		t.Error("removed container not torn down")
	}
	if reg.Container(a.ID) != nil || reg.Lookup("a") != nil {
		t.Error("removed container still reachable")
	}
	var seen []string
	reg.Each(func(c *Container) { seen = append(seen, c.Name) })
	if len(seen) != 1 || seen[0] != "b" || reg.Len() != 1 {
		t.Errorf("Each after remove = %v", seen)
	}
	// The name can be reused and IDs are not.
	c, err := reg.Register("a", nil, SplitOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if c.ID == a.ID || c.ID == b.ID {
		t.Errorf("ID %d reused", c.ID)
	}
}

func TestRegistryRedecompose(t *testing.T) {
	reg := NewRegistry()
	c, _ := reg.Register("x", []Segment{Text("abc")}, SplitOptions{})
	c.state = StateActive
	c.units[0].Current.Opacity = 0

	if err := reg.Redecompose(c.ID, []Segment{Text("hello")}); err != nil {
		t.Fatal(err)
	}
	if c.NumUnits() != 5 || c.State() != StateIdle {
		t.Errorf("units=%d state=%v", c.NumUnits(), c.State())
	}
	if c.Units()[0].Current != Neutral {
		t.Error("redecomposed unit not neutral")
	}
	if err := reg.Redecompose(99, nil); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestContainerLines(t *testing.T) {
	reg := NewRegistry()
	c, _ := reg.Register("x", []Segment{
		Text("ab"), Break(), {Kind: SegmentElement, Tag: "i", Text: "-"}, Text("c"), Break(), Break(), Text("d"),
	}, SplitOptions{})

	lines := c.Lines()
	want := [][]int{{0, 1}, {2}, nil, {3}}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if len(lines[i]) != len(want[i]) {
			t.Errorf("line %d = %v, want %v", i, lines[i], want[i])
			continue
		}
		for j := range want[i] {
			if lines[i][j] != want[i][j] {
				t.Errorf("line %d = %v, want %v", i, lines[i], want[i])
			}
		}
	}
	if got := c.Text(); got != "ab\n-c\n\nd" {
		t.Errorf("Text = %q", got)
	}
}
