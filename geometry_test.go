package flexgrid

import "testing"

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in   string
		want Dimension
	}{
		{"auto", Auto()},
		{"", Auto()},
		{"12", Cells(12)},
		{" 40 ", Cells(40)},
		{"50%", Pct(50)},
		{"12.5%", Pct(12.5)},
	}
	for _, tt := range tests {
		got, err := ParseDimension(tt.in)
		if err != nil {
			t.Errorf("ParseDimension(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDimension(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"abc", "x%", "12px"} {
		if _, err := ParseDimension(bad); err == nil {
			t.Errorf("ParseDimension(%q) should fail", bad)
		}
	}
}

func TestDimensionString(t *testing.T) {
	for _, s := range []string{"auto", "12", "50%"} {
		d, err := ParseDimension(s)
		if err != nil {
			t.Fatalf("ParseDimension(%q): %v", s, err)
		}
		if d.String() != s {
			t.Errorf("round trip of %q gave %q", s, d.String())
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 5, Y: 5, Width: 10, Height: 4}
	if !r.Contains(Position{X: 5, Y: 5}) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(Position{X: 15, Y: 5}) {
		t.Error("right edge is exclusive")
	}
	if r.Contains(Position{X: 5, Y: 9}) {
		t.Error("bottom edge is exclusive")
	}
	if !r.Contains(Position{X: 14, Y: 8}) {
		t.Error("last cell should be inside")
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 20, Height: 10}
	if !outer.ContainsRect(Rect{X: 2, Y: 2, Width: 5, Height: 5}) {
		t.Error("inner rect should be contained")
	}
	if outer.ContainsRect(Rect{X: 18, Y: 0, Width: 5, Height: 5}) {
		t.Error("overflowing rect should not be contained")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !a.Intersects(Rect{X: 5, Y: 5, Width: 10, Height: 10}) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(Rect{X: 10, Y: 0, Width: 5, Height: 5}) {
		t.Error("touching edges should not intersect")
	}
}

func TestEdgeInsets(t *testing.T) {
	e := EdgeInsets{Top: 1, Right: 2, Bottom: 3, Left: 4}
	if e.Horizontal() != 6 {
		t.Errorf("Horizontal should be 6, got %d", e.Horizontal())
	}
	if e.Vertical() != 4 {
		t.Errorf("Vertical should be 4, got %d", e.Vertical())
	}
	if Insets(2) != (EdgeInsets{Top: 2, Right: 2, Bottom: 2, Left: 2}) {
		t.Error("Insets(2) should be uniform")
	}
	if !(EdgeInsets{}).IsZero() {
		t.Error("zero insets should report IsZero")
	}
}

func TestConstraintsHash(t *testing.T) {
	a := Tight(Size{Width: 80, Height: 24})
	b := Tight(Size{Width: 80, Height: 25})
	if a.Hash() == b.Hash() {
		t.Error("different constraints should hash differently")
	}
	if a.Hash() != Tight(Size{Width: 80, Height: 24}).Hash() {
		t.Error("equal constraints should hash equally")
	}
}
