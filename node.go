package flexgrid

import "time"

// NodeID identifies a node within a tree.
type NodeID int64

// IDGenerator hands out node identities. Injecting a generator keeps ids
// deterministic and test-reproducible; the package falls back to a shared
// serial generator for convenience.
type IDGenerator interface {
	NextID() NodeID
}

// SerialIDs is a plain incrementing IDGenerator.
type SerialIDs struct {
	next NodeID
}

// NewSerialIDs creates a generator whose first id is 1.
func NewSerialIDs() *SerialIDs {
	return &SerialIDs{}
}

// NextID implements IDGenerator.
func (g *SerialIDs) NextID() NodeID {
	g.next++
	return g.next
}

var defaultIDs = NewSerialIDs()

// ComputedLayout is the result of a layout pass for one node. Position is
// relative to the parent's content box.
type ComputedLayout struct {
	Position   Position
	Size       Size
	Valid      bool
	ComputedAt time.Time
}

// nodeCacheCap bounds the per-node layout cache. The oldest entry is dropped
// once the capacity is exceeded.
const nodeCacheCap = 10

type cacheEntry struct {
	hash    uint64
	key     Constraints
	version uint64
	layout  ComputedLayout
}

// Node is one box in the layout tree. The parent pointer is a non-owning
// back-reference used only for invalidation propagation and absolute
// position queries; children are the sole ownership path. Attaching a node
// always detaches it from any prior parent first, so cycles cannot form.
type Node struct {
	id       int64
	parent   *Node
	children []*Node

	constraints Constraints
	width       Dimension
	height      Dimension
	padding     EdgeInsets
	margin      EdgeInsets

	flexGrow   float64
	flexShrink float64
	flexBasis  Dimension // auto or fixed; percentages are not meaningful here
	alignSelf  AlignSelf

	visible   bool
	intrinsic Size // caller-supplied content size, consulted when auto-sized

	version  uint64
	computed ComputedLayout
	cache    []cacheEntry

	flex *Flex // non-nil when this node lays out children as a flex container

	// Data is an opaque payload for the widget layer. The engine never
	// inspects it.
	Data any
}

// NewNode creates a leaf node with loose constraints, auto dimensions and
// default flex item properties (grow 0, shrink 1, basis auto).
func NewNode() *Node {
	return NewNodeWith(defaultIDs)
}

// NewNodeWith creates a node drawing its identity from gen.
func NewNodeWith(gen IDGenerator) *Node {
	return &Node{
		id:          int64(gen.NextID()),
		constraints: Loose(),
		width:       Auto(),
		height:      Auto(),
		flexShrink:  1,
		flexBasis:   Auto(),
		visible:     true,
	}
}

// ID returns the node's identity.
func (n *Node) ID() NodeID {
	return NodeID(n.id)
}

// Parent returns the owning container, or nil for a detached or root node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's child list. The slice is owned by the node;
// callers must not mutate it.
func (n *Node) Children() []*Node {
	return n.children
}

// Flex returns the node's flex container configuration, or nil if the node
// lays out generically.
func (n *Node) Flex() *Flex {
	return n.flex
}

// Version returns the structural version, bumped by every layout-affecting
// mutation.
func (n *Node) Version() uint64 {
	return n.version
}

// Computed returns the last computed layout. Trust it only when Valid.
func (n *Node) Computed() ComputedLayout {
	return n.computed
}

// mutate records a layout-affecting change: the structural version moves
// forward (discarding cached layouts) and the node plus its still-valid
// ancestors are marked stale.
func (n *Node) mutate() {
	n.version++
	n.computed.Valid = false
	for p := n.parent; p != nil && p.computed.Valid; p = p.parent {
		p.version++
		p.computed.Valid = false
	}
}

// Invalidate marks the node's layout stale and walks ancestors upward,
// stopping at the first already-invalid one. Calling it on an invalid node
// is a no-op, so repeated invalidation does the walk only once. Unlike a
// property mutation it leaves the structural version alone: cached layouts
// for the current version remain servable.
func (n *Node) Invalidate() {
	for p := n; p != nil && p.computed.Valid; p = p.parent {
		p.computed.Valid = false
	}
}

// restoreValidity re-validates invalidated descendants after a cache hit.
// The structural version is unchanged, so every layout stored below still
// holds. Invalidation only ever stales upward chains, so a valid child's
// subtree needs no visit; nodes never laid out stay invalid.
func (n *Node) restoreValidity() {
	for _, c := range n.children {
		if c.computed.Valid || c.computed.ComputedAt.IsZero() {
			continue
		}
		c.computed.Valid = true
		c.restoreValidity()
	}
}

// --- tree operations ---

// AddChild appends child, detaching it from any prior parent first.
func (n *Node) AddChild(child *Node) *Node {
	return n.InsertChild(len(n.children), child)
}

// InsertChild inserts child at index i, clamped to the child list bounds.
func (n *Node) InsertChild(i int, child *Node) *Node {
	if child == nil || child == n {
		return n
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	i = clamp(i, 0, len(n.children))
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
	n.mutate()
	return n
}

// RemoveChild detaches child and reports whether it was present.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.IndexOf(child)
	if i < 0 {
		return false
	}
	n.RemoveChildAt(i)
	return true
}

// RemoveChildAt detaches and returns the child at index i, or nil if the
// index is out of range.
func (n *Node) RemoveChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	child := n.children[i]
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil
	n.mutate()
	return child
}

// RemoveAllChildren detaches every child.
func (n *Node) RemoveAllChildren() {
	if len(n.children) == 0 {
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = n.children[:0]
	n.mutate()
}

// IndexOf returns child's index, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Contains reports whether child is a direct child of n.
func (n *Node) Contains(child *Node) bool {
	return n.IndexOf(child) >= 0
}

// Walk visits the subtree pre-order: the node first, then each child's
// subtree in order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// WalkPost visits the subtree post-order: children's subtrees first, the
// node last.
func (n *Node) WalkPost(fn func(*Node)) {
	for _, c := range n.children {
		c.WalkPost(fn)
	}
	fn(n)
}

// FindByID searches the subtree for a node with the given id.
func (n *Node) FindByID(id NodeID) *Node {
	if n.ID() == id {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// FindAll collects every node in the subtree matching the predicate, in
// pre-order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(node *Node) {
		if pred(node) {
			out = append(out, node)
		}
	})
	return out
}

// --- bounds ---

// Bounds returns the computed rect, parent-relative.
func (n *Node) Bounds() Rect {
	return RectAt(n.computed.Position, n.computed.Size)
}

// ContentBounds returns the computed rect shrunk by padding.
func (n *Node) ContentBounds() Rect {
	b := n.Bounds()
	return Rect{
		X:      b.X + n.padding.Left,
		Y:      b.Y + n.padding.Top,
		Width:  maxInt(0, b.Width-n.padding.Horizontal()),
		Height: maxInt(0, b.Height-n.padding.Vertical()),
	}
}

// TotalBounds returns the computed rect grown by margin.
func (n *Node) TotalBounds() Rect {
	b := n.Bounds()
	return Rect{
		X:      b.X - n.margin.Left,
		Y:      b.Y - n.margin.Top,
		Width:  b.Width + n.margin.Horizontal(),
		Height: b.Height + n.margin.Vertical(),
	}
}

// SetComputedLayout records the result of a layout pass and marks it valid.
func (n *Node) SetComputedLayout(pos Position, size Size) {
	n.computed = ComputedLayout{
		Position:   pos,
		Size:       size,
		Valid:      true,
		ComputedAt: time.Now(),
	}
}

// --- layout cache ---

// CachedLayout returns the layout last computed for these incoming
// constraints, if the node's structural version has not moved since.
func (n *Node) CachedLayout(c Constraints) (ComputedLayout, bool) {
	h := c.Hash()
	for i, e := range n.cache {
		if e.hash == h && e.key == c && e.version == n.version {
			// Refresh recency so the entry outlives colder ones.
			if i != len(n.cache)-1 {
				copy(n.cache[i:], n.cache[i+1:])
				n.cache[len(n.cache)-1] = e
			}
			return e.layout, true
		}
	}
	return ComputedLayout{}, false
}

// CacheLayout stores a computed layout against the incoming constraints and
// the current structural version, evicting the oldest entry at capacity.
// Stale-version entries are dropped on the way through.
func (n *Node) CacheLayout(c Constraints, layout ComputedLayout) {
	kept := n.cache[:0]
	h := c.Hash()
	for _, e := range n.cache {
		if e.version == n.version && !(e.hash == h && e.key == c) {
			kept = append(kept, e)
		}
	}
	n.cache = kept
	if len(n.cache) >= nodeCacheCap {
		copy(n.cache, n.cache[1:])
		n.cache = n.cache[:len(n.cache)-1]
	}
	n.cache = append(n.cache, cacheEntry{hash: h, key: c, version: n.version, layout: layout})
}

// --- property accessors and chainable setters ---

// Constraints returns the node's own constraint set.
func (n *Node) Constraints() Constraints {
	return n.constraints
}

// Constrain replaces the node's constraint set.
func (n *Node) Constrain(c Constraints) *Node {
	n.constraints = c
	n.mutate()
	return n
}

// WidthDim returns the width dimension.
func (n *Node) WidthDim() Dimension { return n.width }

// HeightDim returns the height dimension.
func (n *Node) HeightDim() Dimension { return n.height }

// Width fixes the width to a cell count.
func (n *Node) Width(cells int) *Node {
	return n.SetWidth(Cells(cells))
}

// Height fixes the height to a cell count.
func (n *Node) Height(cells int) *Node {
	return n.SetHeight(Cells(cells))
}

// SetWidth sets the width dimension.
func (n *Node) SetWidth(d Dimension) *Node {
	n.width = d
	n.mutate()
	return n
}

// SetHeight sets the height dimension.
func (n *Node) SetHeight(d Dimension) *Node {
	n.height = d
	n.mutate()
	return n
}

// Padding returns the node's padding insets.
func (n *Node) Padding() EdgeInsets { return n.padding }

// Pad sets padding.
func (n *Node) Pad(e EdgeInsets) *Node {
	n.padding = e
	n.mutate()
	return n
}

// Margin returns the node's margin insets.
func (n *Node) Margin() EdgeInsets { return n.margin }

// WithMargin sets margin.
func (n *Node) WithMargin(e EdgeInsets) *Node {
	n.margin = e
	n.mutate()
	return n
}

// FlexGrow returns the grow factor.
func (n *Node) FlexGrow() float64 { return n.flexGrow }

// Grow sets the flex grow factor.
func (n *Node) Grow(f float64) *Node {
	n.flexGrow = f
	n.mutate()
	return n
}

// FlexShrink returns the shrink factor.
func (n *Node) FlexShrink() float64 { return n.flexShrink }

// Shrink sets the flex shrink factor.
func (n *Node) Shrink(f float64) *Node {
	n.flexShrink = f
	n.mutate()
	return n
}

// FlexBasis returns the basis dimension.
func (n *Node) FlexBasis() Dimension { return n.flexBasis }

// Basis fixes the flex basis to a cell count.
func (n *Node) Basis(cells int) *Node {
	n.flexBasis = Cells(cells)
	n.mutate()
	return n
}

// BasisAuto reverts the flex basis to auto.
func (n *Node) BasisAuto() *Node {
	n.flexBasis = Auto()
	n.mutate()
	return n
}

// AlignSelf returns the item's own cross-axis alignment.
func (n *Node) AlignSelf() AlignSelf { return n.alignSelf }

// Align sets the item's cross-axis alignment, overriding the container's
// alignItems.
func (n *Node) Align(a AlignSelf) *Node {
	n.alignSelf = a
	n.mutate()
	return n
}

// Visible reports whether the node participates in layout.
func (n *Node) Visible() bool { return n.visible }

// Show includes the node in layout.
func (n *Node) Show() *Node { return n.SetVisible(true) }

// Hide excludes the node from layout.
func (n *Node) Hide() *Node { return n.SetVisible(false) }

// SetVisible sets layout participation.
func (n *Node) SetVisible(v bool) *Node {
	if n.visible != v {
		n.visible = v
		n.mutate()
	}
	return n
}

// Intrinsic returns the caller-supplied content size.
func (n *Node) Intrinsic() Size { return n.intrinsic }

// Content supplies the node's intrinsic content size in cells. The engine
// does no text measurement of its own; widget layers that know their
// content's cell extent report it here.
func (n *Node) Content(width, height int) *Node {
	n.intrinsic = Size{Width: width, Height: height}
	n.mutate()
	return n
}

// Spacer returns a flexible empty node that grows to fill available space.
func Spacer() *Node {
	n := NewNode()
	n.flexGrow = 1
	return n
}
