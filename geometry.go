// Package flexgrid is a flexbox-style layout engine for character-grid
// terminal interfaces. It computes the position and size of every node in a
// layout tree, in integer character cells, from size constraints and flex
// distribution rules. Rendering, widgets and terminal I/O live outside the
// package; they supply a viewport size and a node tree and read back
// computed rectangles after each layout pass.
package flexgrid

import (
	"fmt"
	"strconv"
	"strings"
)

// Unbounded is the "no maximum" value for constraints. It is large enough
// that no terminal dimension approaches it while still leaving headroom for
// arithmetic on sums of constraint values.
const Unbounded = 1 << 30

// Size is a width/height pair in character cells.
type Size struct {
	Width  int
	Height int
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Position is an x/y coordinate in character cells.
type Position struct {
	X int
	Y int
}

// Add returns the position offset by p.
func (a Position) Add(p Position) Position {
	return Position{X: a.X + p.X, Y: a.Y + p.Y}
}

// Rect is a rectangle in character cells.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RectAt builds a rect from a position and size.
func RectAt(p Position, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Origin returns the rect's top-left corner.
func (r Rect) Origin() Position {
	return Position{X: r.X, Y: r.Y}
}

// Size returns the rect's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// ContainsRect reports whether the rect fully encloses other.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Intersects reports whether the two rects overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Inflate grows the rect by n cells on every side.
func (r Rect) Inflate(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, Width: r.Width + 2*n, Height: r.Height + 2*n}
}

// EdgeInsets describes padding or margin around a box.
type EdgeInsets struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Insets builds uniform edge insets.
func Insets(n int) EdgeInsets {
	return EdgeInsets{Top: n, Right: n, Bottom: n, Left: n}
}

// InsetsXY builds insets with horizontal and vertical components.
func InsetsXY(horizontal, vertical int) EdgeInsets {
	return EdgeInsets{Top: vertical, Right: horizontal, Bottom: vertical, Left: horizontal}
}

// Horizontal returns left + right.
func (e EdgeInsets) Horizontal() int {
	return e.Left + e.Right
}

// Vertical returns top + bottom.
func (e EdgeInsets) Vertical() int {
	return e.Top + e.Bottom
}

// IsZero reports whether all four edges are zero.
func (e EdgeInsets) IsZero() bool {
	return e.Top == 0 && e.Right == 0 && e.Bottom == 0 && e.Left == 0
}

// DimensionKind discriminates the ways a node dimension can be expressed.
type DimensionKind uint8

const (
	DimAuto DimensionKind = iota
	DimFixed
	DimPercent
)

// Dimension is a node's requested extent on one axis: a fixed cell count, a
// percentage of the container, or auto (derived from constraints/content).
type Dimension struct {
	Kind    DimensionKind
	Value   int     // cells, for DimFixed
	Percent float64 // 0-100, for DimPercent
}

// Auto returns the auto dimension.
func Auto() Dimension {
	return Dimension{Kind: DimAuto}
}

// Cells returns a fixed dimension of n cells.
func Cells(n int) Dimension {
	return Dimension{Kind: DimFixed, Value: n}
}

// Pct returns a percentage dimension. p is in the 0-100 range.
func Pct(p float64) Dimension {
	return Dimension{Kind: DimPercent, Percent: p}
}

// ParseDimension parses "auto", "50%" or a plain cell count like "12".
func ParseDimension(s string) (Dimension, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "auto" {
		return Auto(), nil
	}
	if strings.HasSuffix(s, "%") {
		p, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return Dimension{}, fmt.Errorf("flexgrid: bad percentage %q", s)
		}
		return Pct(p), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Dimension{}, fmt.Errorf("flexgrid: bad dimension %q", s)
	}
	return Cells(n), nil
}

// String renders the dimension in the form ParseDimension accepts.
func (d Dimension) String() string {
	switch d.Kind {
	case DimFixed:
		return strconv.Itoa(d.Value)
	case DimPercent:
		return strconv.FormatFloat(d.Percent, 'g', -1, 64) + "%"
	default:
		return "auto"
	}
}

// Constraints bound a node's size on both axes. Max values of Unbounded mean
// no upper limit.
type Constraints struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
}

// Tight returns constraints that pin both axes to exactly s.
func Tight(s Size) Constraints {
	return Constraints{
		MinWidth: s.Width, MaxWidth: s.Width,
		MinHeight: s.Height, MaxHeight: s.Height,
	}
}

// Loose returns fully unconstrained constraints: zero minimums, unbounded
// maximums.
func Loose() Constraints {
	return Constraints{MaxWidth: Unbounded, MaxHeight: Unbounded}
}

// Bounded returns constraints with zero minimums and s as the maximums.
func Bounded(s Size) Constraints {
	return Constraints{MaxWidth: s.Width, MaxHeight: s.Height}
}

// IsTight reports whether min equals max on both axes.
func (c Constraints) IsTight() bool {
	return c.MinWidth == c.MaxWidth && c.MinHeight == c.MaxHeight
}

// IsLoose reports whether both axes are fully unconstrained.
func (c Constraints) IsLoose() bool {
	return c.MinWidth == 0 && c.MaxWidth == Unbounded &&
		c.MinHeight == 0 && c.MaxHeight == Unbounded
}

// Hash returns an FNV-1a hash of the constraint values, used as a cheap
// first-pass key when probing layout caches.
func (c Constraints) Hash() uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for _, v := range [4]int{c.MinWidth, c.MaxWidth, c.MinHeight, c.MaxHeight} {
		u := uint64(v)
		for i := 0; i < 8; i++ {
			h ^= u & 0xff
			h *= prime64
			u >>= 8
		}
	}
	return h
}

// clamp bounds v to [lo, hi]. Callers guarantee lo <= hi.
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
