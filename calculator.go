package flexgrid

import "log/slog"

// DefaultMaxDepth bounds the recursive layout walk. Trees cannot contain
// cycles, so this only trips on pathological nesting.
const DefaultMaxDepth = 100

// Calculator walks a node tree and computes every node's layout. It
// dispatches per node kind (flex container or generic box), consults the
// per-node caches, and records results through SetComputedLayout.
type Calculator struct {
	maxDepth int
	caching  bool
	logger   *slog.Logger
}

// NewCalculator creates a calculator with caching enabled and the default
// depth guard.
func NewCalculator() *Calculator {
	return &Calculator{
		maxDepth: DefaultMaxDepth,
		caching:  true,
		logger:   slog.Default(),
	}
}

// MaxDepth sets the recursion guard.
func (c *Calculator) MaxDepth(d int) *Calculator {
	if d > 0 {
		c.maxDepth = d
	}
	return c
}

// SetCaching toggles consultation of per-node layout caches.
func (c *Calculator) SetCaching(enabled bool) *Calculator {
	c.caching = enabled
	return c
}

// SetLogger replaces the calculator's logger.
func (c *Calculator) SetLogger(l *slog.Logger) *Calculator {
	if l != nil {
		c.logger = l
	}
	return c
}

// Calculate lays out the tree rooted at root within the available size and
// returns the root's computed size. The root's position is left to the
// caller; child positions are parent-relative.
func (c *Calculator) Calculate(root *Node, avail Size) Size {
	if root == nil {
		return Size{}
	}
	return c.calculate(root, avail, Tight(avail), 0)
}

// calculate computes one node's size, lays out its children, and caches the
// result against the incoming constraints.
func (c *Calculator) calculate(node *Node, avail Size, cons Constraints, depth int) Size {
	if !node.visible {
		return Size{}
	}
	if depth > c.maxDepth {
		c.logger.Warn("layout depth limit exceeded, zero-sizing subtree",
			"node", node.ID(), "depth", depth, "max", c.maxDepth)
		node.SetComputedLayout(node.computed.Position, Size{})
		return Size{}
	}

	if c.caching {
		if cached, ok := node.CachedLayout(cons); ok {
			node.computed = cached
			node.restoreValidity()
			return cached.Size
		}
	}

	var size Size
	if node.flex != nil {
		size = c.calculateFlex(node, avail, cons, depth)
	} else {
		size = c.calculateGeneric(node, avail, cons, depth)
	}

	node.SetComputedLayout(node.computed.Position, size)
	if c.caching {
		node.CacheLayout(cons, node.computed)
	}
	return size
}

// calculateFlex sizes a flex container and places its children with the
// flexbox algorithm. Children keep the sizes the distribution assigned;
// each child's own subtree is then laid out within that size.
func (c *Calculator) calculateFlex(node *Node, avail Size, cons Constraints, depth int) Size {
	working := c.resolveWorkingSize(node, avail)
	content := deflateSize(working, node.padding)

	placements, extent := node.flex.layout(content)

	size := working
	if node.width.Kind == DimAuto {
		size.Width = minInt(extent.Width+node.padding.Horizontal(), avail.Width)
	}
	if node.height.Kind == DimAuto {
		size.Height = minInt(extent.Height+node.padding.Vertical(), avail.Height)
	}
	size = c.fit(size, node, cons)

	for _, p := range placements {
		childSize := c.calculate(p.node, p.size, Tight(p.size), depth+1)
		p.node.SetComputedLayout(Position{
			X: node.padding.Left + p.pos.X,
			Y: node.padding.Top + p.pos.Y,
		}, childSize)
	}
	return size
}

// calculateGeneric sizes a plain box from its own dimensions and stacks each
// visible child at the content origin, offset by the child's margin.
func (c *Calculator) calculateGeneric(node *Node, avail Size, cons Constraints, depth int) Size {
	size := c.fit(c.resolveWorkingSize(node, avail), node, cons)
	content := deflateSize(size, node.padding)

	for _, child := range node.children {
		if !child.visible {
			continue
		}
		childAvail := deflateSize(content, child.margin)
		childSize := c.calculate(child, childAvail, Bounded(childAvail), depth+1)
		child.SetComputedLayout(Position{
			X: node.padding.Left + child.margin.Left,
			Y: node.padding.Top + child.margin.Top,
		}, childSize)
	}
	return size
}

// resolveWorkingSize resolves the node's own dimensions against the
// available size and the node's constraints. Auto dimensions provisionally
// fill the available space.
func (c *Calculator) resolveWorkingSize(node *Node, avail Size) Size {
	nc := ResolveConstraints(node.constraints)
	return Size{
		Width:  ResolveDimension(node.width, avail.Width, nc.MinWidth, nc.MaxWidth),
		Height: ResolveDimension(node.height, avail.Height, nc.MinHeight, nc.MaxHeight),
	}
}

// fit reconciles a desired size with the node's constraints and the incoming
// constraints from the parent.
func (c *Calculator) fit(desired Size, node *Node, cons Constraints) Size {
	merged := MergeConstraints(cons, ResolveConstraints(node.constraints))
	return ResolveOverConstrained(desired, merged)
}

// MeasureIntrinsicSize estimates the size a subtree wants without running a
// full layout pass and without touching caches or computed layouts. Flex
// containers sum children on the main axis and take the max on the cross
// axis; generic boxes take the max over children. Leaves report their
// caller-supplied content size. Padding is included.
func (c *Calculator) MeasureIntrinsicSize(node *Node) Size {
	return c.measureIntrinsic(node, 0)
}

func (c *Calculator) measureIntrinsic(node *Node, depth int) Size {
	if node == nil || !node.visible || depth > c.maxDepth {
		return Size{}
	}

	inner := node.intrinsic
	if node.flex != nil {
		main, cross, count := 0, 0, 0
		for _, child := range node.children {
			if !child.visible {
				continue
			}
			cs := c.measureIntrinsic(child, depth+1)
			cm, cc := cs.Width, cs.Height
			if !node.flex.direction.isRow() {
				cm, cc = cc, cm
			}
			main += cm
			cross = maxInt(cross, cc)
			count++
		}
		if count > 1 {
			main += (count - 1) * node.flex.gap
		}
		if node.flex.direction.isRow() {
			inner = Size{Width: maxInt(inner.Width, main), Height: maxInt(inner.Height, cross)}
		} else {
			inner = Size{Width: maxInt(inner.Width, cross), Height: maxInt(inner.Height, main)}
		}
	} else {
		for _, child := range node.children {
			if !child.visible {
				continue
			}
			cs := c.measureIntrinsic(child, depth+1)
			inner.Width = maxInt(inner.Width, cs.Width)
			inner.Height = maxInt(inner.Height, cs.Height)
		}
	}

	return Size{
		Width:  inner.Width + node.padding.Horizontal(),
		Height: inner.Height + node.padding.Vertical(),
	}
}

// LayoutChange records one node whose layout differs between two passes.
type LayoutChange struct {
	NodeID          NodeID
	Old             ComputedLayout
	New             ComputedLayout
	PositionChanged bool
	SizeChanged     bool
}

// CalculateDiff walks two trees in lockstep by child index and emits a
// change wherever both sides hold valid layouts that differ.
func (c *Calculator) CalculateDiff(oldTree, newTree *Node) []LayoutChange {
	var changes []LayoutChange
	diffNodes(oldTree, newTree, &changes)
	return changes
}

func diffNodes(oldNode, newNode *Node, out *[]LayoutChange) {
	if oldNode == nil || newNode == nil {
		return
	}
	oc, nc := oldNode.computed, newNode.computed
	if oc.Valid && nc.Valid {
		posChanged := oc.Position != nc.Position
		sizeChanged := oc.Size != nc.Size
		if posChanged || sizeChanged {
			*out = append(*out, LayoutChange{
				NodeID:          newNode.ID(),
				Old:             oc,
				New:             nc,
				PositionChanged: posChanged,
				SizeChanged:     sizeChanged,
			})
		}
	}
	n := minInt(len(oldNode.children), len(newNode.children))
	for i := 0; i < n; i++ {
		diffNodes(oldNode.children[i], newNode.children[i], out)
	}
}
