package flexgrid

import "math"

// Direction is the main-axis flow of a flex container.
type Direction uint8

const (
	Row Direction = iota
	RowReverse
	Column
	ColumnReverse
)

// isRow reports whether the main axis maps to width.
func (d Direction) isRow() bool {
	return d == Row || d == RowReverse
}

// isReverse reports whether items flow from the far edge backwards.
func (d Direction) isReverse() bool {
	return d == RowReverse || d == ColumnReverse
}

// Wrap controls line breaking in a flex container.
type Wrap uint8

const (
	NoWrap Wrap = iota
	WrapLines
	WrapReverse
)

// Justify positions items along the main axis when free space remains.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// Align positions items along the cross axis of their line.
type Align uint8

const (
	AlignStretch Align = iota
	AlignStart
	AlignEnd
	AlignCenter
	AlignBaseline
)

// AlignSelf overrides the container's Align for a single item.
type AlignSelf uint8

const (
	AlignSelfAuto AlignSelf = iota
	AlignSelfStretch
	AlignSelfStart
	AlignSelfEnd
	AlignSelfCenter
	AlignSelfBaseline
)

// AlignContent positions the lines themselves when wrapping leaves free
// cross-axis space.
type AlignContent uint8

const (
	ContentStretch AlignContent = iota
	ContentStart
	ContentEnd
	ContentCenter
	ContentSpaceBetween
	ContentSpaceAround
)

// Flex is a node's flex container configuration. A node with a Flex attached
// distributes its children with the flexbox algorithm; gap separates items
// on the main axis and rowGap separates lines on the cross axis.
type Flex struct {
	node         *Node
	direction    Direction
	wrap         Wrap
	justify      Justify
	alignItems   Align
	alignContent AlignContent
	gap          int
	rowGap       int
}

// NewFlexNode creates a node that lays out its children as a flex container.
// Defaults follow CSS: row direction, no wrap, start justification, stretch
// alignment.
func NewFlexNode() *Node {
	return NewFlexNodeWith(defaultIDs)
}

// NewFlexNodeWith is NewFlexNode drawing identity from gen.
func NewFlexNodeWith(gen IDGenerator) *Node {
	n := NewNodeWith(gen)
	n.flex = &Flex{node: n}
	return n
}

// FlexRow creates a row-direction flex node holding the given children.
func FlexRow(children ...*Node) *Node {
	n := NewFlexNode()
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// FlexColumn creates a column-direction flex node holding the given children.
func FlexColumn(children ...*Node) *Node {
	n := FlexRow(children...)
	n.flex.direction = Column
	return n
}

// Node returns the node this configuration belongs to.
func (f *Flex) Node() *Node { return f.node }

// Direction returns the main-axis flow.
func (f *Flex) Direction() Direction { return f.direction }

// SetDirection sets the main-axis flow.
func (f *Flex) SetDirection(d Direction) *Flex {
	f.direction = d
	f.node.mutate()
	return f
}

// Wrap returns the wrapping mode.
func (f *Flex) Wrap() Wrap { return f.wrap }

// SetWrap sets the wrapping mode.
func (f *Flex) SetWrap(w Wrap) *Flex {
	f.wrap = w
	f.node.mutate()
	return f
}

// Justify returns the main-axis distribution.
func (f *Flex) Justify() Justify { return f.justify }

// SetJustify sets the main-axis distribution.
func (f *Flex) SetJustify(j Justify) *Flex {
	f.justify = j
	f.node.mutate()
	return f
}

// AlignItems returns the default cross-axis alignment for items.
func (f *Flex) AlignItems() Align { return f.alignItems }

// SetAlignItems sets the default cross-axis alignment for items.
func (f *Flex) SetAlignItems(a Align) *Flex {
	f.alignItems = a
	f.node.mutate()
	return f
}

// AlignContent returns the cross-axis distribution of lines.
func (f *Flex) AlignContent() AlignContent { return f.alignContent }

// SetAlignContent sets the cross-axis distribution of lines.
func (f *Flex) SetAlignContent(a AlignContent) *Flex {
	f.alignContent = a
	f.node.mutate()
	return f
}

// Gap returns the main-axis gap between adjacent items.
func (f *Flex) Gap() int { return f.gap }

// SetGap sets the main-axis gap between adjacent items.
func (f *Flex) SetGap(g int) *Flex {
	f.gap = g
	f.node.mutate()
	return f
}

// RowGap returns the cross-axis gap between lines.
func (f *Flex) RowGap() int { return f.rowGap }

// SetRowGap sets the cross-axis gap between lines.
func (f *Flex) SetRowGap(g int) *Flex {
	f.rowGap = g
	f.node.mutate()
	return f
}

// flexItem is per-child scratch for one layout pass. It lives in slices
// parallel to the line's item list; node fields are never used as scratch
// space mid-algorithm.
type flexItem struct {
	node      *Node
	baseMain  int
	baseCross int
	grow      float64
	shrink    float64

	mainSize  int
	crossSize int
	mainPos   int
	crossPos  int
}

// flexLine accumulates one row/column of items during line building.
type flexLine struct {
	items     []*flexItem
	sumBase   int
	sumGrow   float64
	sumShrink float64
	maxCross  int

	crossSize int
	crossPos  int
}

// flexPlacement is one child's finished geometry, in the container's
// content-box coordinates.
type flexPlacement struct {
	node *Node
	pos  Position
	size Size
}

// layout runs the flex algorithm over the container's visible children
// within the given content-box size. It returns each child's placement and
// the content extent actually used, both in content-box coordinates.
func (f *Flex) layout(avail Size) ([]flexPlacement, Size) {
	mainSize, crossSize := avail.Width, avail.Height
	if !f.direction.isRow() {
		mainSize, crossSize = crossSize, mainSize
	}

	items := f.collectItems(mainSize, crossSize)
	if len(items) == 0 {
		return nil, Size{}
	}

	lines := f.buildLines(items, mainSize)
	if f.wrap == WrapReverse {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}

	for _, line := range lines {
		f.distributeMain(line, mainSize)
	}
	f.distributeCross(lines, crossSize)

	content := f.contentExtent(lines, crossSize)

	placements := make([]flexPlacement, 0, len(items))
	for _, it := range items {
		pos := Position{X: it.mainPos, Y: it.crossPos}
		size := Size{Width: it.mainSize, Height: it.crossSize}
		if !f.direction.isRow() {
			pos = Position{X: it.crossPos, Y: it.mainPos}
			size = Size{Width: it.crossSize, Height: it.mainSize}
		}
		placements = append(placements, flexPlacement{node: it.node, pos: pos, size: size})
	}
	return placements, content
}

// collectItems snapshots each visible child into a flexItem, computing its
// base main and cross sizes once for the whole pass.
func (f *Flex) collectItems(mainSize, crossSize int) []*flexItem {
	items := make([]*flexItem, 0, len(f.node.children))
	for _, child := range f.node.children {
		if !child.visible {
			continue
		}
		items = append(items, &flexItem{
			node:      child,
			baseMain:  f.baseMainSize(child, mainSize),
			baseCross: f.baseCrossSize(child, crossSize),
			grow:      child.flexGrow,
			shrink:    child.flexShrink,
		})
	}
	return items
}

// baseMainSize is the item's flex basis in cells: an explicit basis wins,
// then an explicit main-axis dimension, then the caller-supplied intrinsic
// content size. The result is clamped to the child's own constraints.
func (f *Flex) baseMainSize(child *Node, mainSize int) int {
	c := ResolveConstraints(child.constraints)
	min, max := c.MinWidth, c.MaxWidth
	dim, intrinsic := child.width, child.intrinsic.Width
	if !f.direction.isRow() {
		min, max = c.MinHeight, c.MaxHeight
		dim, intrinsic = child.height, child.intrinsic.Height
	}
	if child.flexBasis.Kind == DimFixed {
		return clamp(maxInt(0, child.flexBasis.Value), min, max)
	}
	if dim.Kind != DimAuto {
		return ResolveDimension(dim, mainSize, min, max)
	}
	return clamp(maxInt(0, intrinsic), min, max)
}

// baseCrossSize is the item's cross-axis size before stretching: an explicit
// cross dimension, else the intrinsic content size.
func (f *Flex) baseCrossSize(child *Node, crossSize int) int {
	c := ResolveConstraints(child.constraints)
	min, max := c.MinHeight, c.MaxHeight
	dim, intrinsic := child.height, child.intrinsic.Height
	if !f.direction.isRow() {
		min, max = c.MinWidth, c.MaxWidth
		dim, intrinsic = child.width, child.intrinsic.Width
	}
	if dim.Kind != DimAuto {
		return ResolveDimension(dim, crossSize, min, max)
	}
	return clamp(maxInt(0, intrinsic), min, max)
}

// buildLines walks items in order, closing the current line before an item
// that would overflow the main axis. A line never ends up empty, so a single
// oversized item still occupies a line of its own.
func (f *Flex) buildLines(items []*flexItem, mainSize int) []*flexLine {
	var lines []*flexLine
	line := &flexLine{}
	extent := 0
	for _, it := range items {
		if f.wrap != NoWrap && len(line.items) >= 1 && extent+f.gap+it.baseMain > mainSize {
			lines = append(lines, line)
			line = &flexLine{}
			extent = 0
		}
		if len(line.items) > 0 {
			extent += f.gap
		}
		extent += it.baseMain
		line.items = append(line.items, it)
		line.sumBase += it.baseMain
		line.sumGrow += it.grow
		line.sumShrink += it.shrink
		line.maxCross = maxInt(line.maxCross, it.baseCross)
	}
	if len(line.items) > 0 {
		lines = append(lines, line)
	}
	return lines
}

// distributeMain sizes and positions a line's items along the main axis.
// When flexible items absorb the surplus or deficit, sizing goes through
// ResolveFlexSizes and items pack from the start edge; otherwise sizes stay
// at base and justification places them.
func (f *Flex) distributeMain(line *flexLine, mainSize int) {
	n := len(line.items)
	gaps := 0
	if n > 1 {
		gaps = (n - 1) * f.gap
	}
	remaining := mainSize - line.sumBase - gaps

	shrinkWeight := 0.0
	for _, it := range line.items {
		shrinkWeight += it.shrink * float64(it.baseMain)
	}
	flexed := (remaining > 0 && line.sumGrow > 0) || (remaining < 0 && shrinkWeight > 0)

	if flexed {
		specs := make([]FlexSpec, n)
		for i, it := range line.items {
			specs[i] = FlexSpec{Base: it.baseMain, Grow: it.grow, Shrink: it.shrink}
		}
		sizes := ResolveFlexSizes(specs, mainSize-gaps)
		for i, it := range line.items {
			it.mainSize = sizes[i]
		}
	} else {
		for _, it := range line.items {
			it.mainSize = maxInt(0, it.baseMain)
		}
	}

	offset, between := 0.0, 0.0
	if !flexed {
		free := float64(maxInt(0, remaining))
		switch f.justify {
		case JustifyEnd:
			offset = free
		case JustifyCenter:
			offset = free / 2
		case JustifySpaceBetween:
			if n > 1 {
				between = free / float64(n-1)
			}
		case JustifySpaceAround:
			between = free / float64(n)
			offset = between / 2
		case JustifySpaceEvenly:
			between = free / float64(n+1)
			offset = between
		}
	}

	cursor := offset
	for i, it := range line.items {
		it.mainPos = int(math.Floor(cursor))
		cursor += float64(it.mainSize)
		if i < n-1 {
			cursor += float64(f.gap) + between
		}
	}

	if f.direction.isReverse() {
		for _, it := range line.items {
			it.mainPos = mainSize - it.mainPos - it.mainSize
		}
	}
}

// distributeCross sizes the lines, offsets them per alignContent, and
// places each item within its line per alignSelf/alignItems.
func (f *Flex) distributeCross(lines []*flexLine, crossSize int) {
	for _, line := range lines {
		line.crossSize = line.maxCross
	}
	if len(lines) == 1 && f.alignContent == ContentStretch && crossSize > 0 {
		lines[0].crossSize = crossSize
	}

	total := 0
	for _, line := range lines {
		total += line.crossSize
	}
	if len(lines) > 1 {
		total += (len(lines) - 1) * f.rowGap
	}
	free := float64(maxInt(0, crossSize-total))

	offset, between := 0.0, 0.0
	switch f.alignContent {
	case ContentEnd:
		offset = free
	case ContentCenter:
		offset = free / 2
	case ContentSpaceBetween:
		if len(lines) > 1 {
			between = free / float64(len(lines)-1)
		}
	case ContentSpaceAround:
		between = free / float64(len(lines))
		offset = between / 2
	}

	cursor := offset
	for i, line := range lines {
		line.crossPos = int(math.Floor(cursor))
		cursor += float64(line.crossSize)
		if i < len(lines)-1 {
			cursor += float64(f.rowGap) + between
		}

		for _, it := range line.items {
			it.crossSize = it.baseCross
			switch f.resolveAlign(it.node) {
			case AlignSelfEnd:
				it.crossPos = line.crossPos + line.crossSize - it.crossSize
			case AlignSelfCenter:
				it.crossPos = line.crossPos + (line.crossSize-it.crossSize)/2
			case AlignSelfStretch:
				it.crossSize = line.crossSize
				it.crossPos = line.crossPos
			default:
				// Start; baseline degrades to start since the engine does
				// no text measurement.
				it.crossPos = line.crossPos
			}
		}
	}
}

// resolveAlign maps an item's alignSelf, falling back to the container's
// alignItems when auto.
func (f *Flex) resolveAlign(child *Node) AlignSelf {
	if child.alignSelf != AlignSelfAuto {
		return child.alignSelf
	}
	switch f.alignItems {
	case AlignStart:
		return AlignSelfStart
	case AlignEnd:
		return AlignSelfEnd
	case AlignCenter:
		return AlignSelfCenter
	case AlignBaseline:
		return AlignSelfBaseline
	default:
		return AlignSelfStretch
	}
}

// contentExtent reports the main and cross extent the lines actually use.
// The main extent is the furthest item end across lines; the cross extent
// accumulates line sizes, each clamped to the available cross size.
func (f *Flex) contentExtent(lines []*flexLine, crossSize int) Size {
	mainExtent := 0
	crossExtent := 0
	for i, line := range lines {
		for _, it := range line.items {
			mainExtent = maxInt(mainExtent, it.mainPos+it.mainSize)
		}
		lineCross := line.crossSize
		if crossSize > 0 {
			lineCross = minInt(lineCross, crossSize)
		}
		crossExtent += lineCross
		if i < len(lines)-1 {
			crossExtent += f.rowGap
		}
	}
	if f.direction.isRow() {
		return Size{Width: mainExtent, Height: crossExtent}
	}
	return Size{Width: crossExtent, Height: mainExtent}
}
