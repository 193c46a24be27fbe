package flexgrid

import "math"

// Stateless constraint and dimension math shared by the flex algorithm and
// the calculator. Everything here is a pure function of its inputs; nodes
// are never touched.

// ResolveDimension resolves a dimension against a container size and a
// min/max pair for that axis. Auto resolves to the container size clamped to
// the bounds; a percentage resolves against the container and then clamps; a
// fixed value clamps directly. The result is never negative.
func ResolveDimension(d Dimension, containerSize, min, max int) int {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	var v int
	switch d.Kind {
	case DimFixed:
		v = d.Value
	case DimPercent:
		v = int(math.Floor(d.Percent / 100 * float64(containerSize)))
	default:
		v = containerSize
	}
	if v < 0 {
		v = 0
	}
	return clamp(v, min, max)
}

// ResolveConstraints normalizes a constraint set so that minimums are
// non-negative and maximums are never below their minimums. Out-of-order
// input is clamped rather than rejected.
func ResolveConstraints(c Constraints) Constraints {
	c.MinWidth = maxInt(0, c.MinWidth)
	c.MaxWidth = maxInt(c.MinWidth, c.MaxWidth)
	c.MinHeight = maxInt(0, c.MinHeight)
	c.MaxHeight = maxInt(c.MinHeight, c.MaxHeight)
	return c
}

// ResolveOverConstrained fits a desired size into constraints that may
// conflict. The minimum is applied before and after the maximum, so when
// min > max the minimum wins.
func ResolveOverConstrained(desired Size, c Constraints) Size {
	w := maxInt(desired.Width, c.MinWidth)
	w = minInt(w, c.MaxWidth)
	w = maxInt(w, c.MinWidth)
	h := maxInt(desired.Height, c.MinHeight)
	h = minInt(h, c.MaxHeight)
	h = maxInt(h, c.MinHeight)
	return Size{Width: w, Height: h}
}

// FlexSpec is one participant in a grow/shrink distribution: its base size
// and flex factors.
type FlexSpec struct {
	Base   int
	Grow   float64
	Shrink float64
}

// ResolveFlexSizes distributes available space across items. With positive
// remaining space and a positive grow sum, each item receives a share of the
// surplus proportional to its grow factor. With negative remaining space and
// a positive shrink sum, items are reduced proportional to shrink×base; an
// item that bottoms out at zero is frozen and its unabsorbed share is
// redistributed over the rest, so the line never exceeds the available
// space while any item can still shrink. Otherwise sizes stay at base.
// Results are floored and never negative.
func ResolveFlexSizes(items []FlexSpec, available int) []int {
	sizes := make([]int, len(items))
	sumBase := 0
	sumGrow, sumShrinkWeight := 0.0, 0.0
	for i, it := range items {
		sizes[i] = maxInt(0, it.Base)
		sumBase += it.Base
		sumGrow += it.Grow
		sumShrinkWeight += it.Shrink * float64(it.Base)
	}
	remaining := available - sumBase
	switch {
	case remaining > 0 && sumGrow > 0:
		for i, it := range items {
			extra := it.Grow / sumGrow * float64(remaining)
			sizes[i] = maxInt(0, int(math.Floor(float64(it.Base)+extra)))
		}
	case remaining < 0 && sumShrinkWeight > 0:
		shrinkItems(items, sizes, float64(-remaining))
	}
	return sizes
}

// shrinkItems removes deficit cells from sizes, weighted by shrink×base.
// Each round distributes the outstanding deficit over the items still able
// to shrink; items clamped at zero are frozen and the weights recomputed, so
// every round either retires the deficit or freezes at least one item.
func shrinkItems(items []FlexSpec, sizes []int, deficit float64) {
	shrunk := make([]float64, len(items))
	frozen := make([]bool, len(items))
	for i, it := range items {
		shrunk[i] = float64(maxInt(0, it.Base))
		frozen[i] = it.Shrink <= 0 || it.Base <= 0
	}

	const eps = 1e-9
	for deficit > eps {
		weightSum := 0.0
		for i, it := range items {
			if !frozen[i] {
				weightSum += it.Shrink * float64(it.Base)
			}
		}
		if weightSum <= 0 {
			break
		}
		next := deficit
		for i, it := range items {
			if frozen[i] {
				continue
			}
			cut := deficit * it.Shrink * float64(it.Base) / weightSum
			if cut >= shrunk[i] {
				next -= shrunk[i]
				shrunk[i] = 0
				frozen[i] = true
			} else {
				shrunk[i] -= cut
				next -= cut
			}
		}
		deficit = next
	}

	for i := range sizes {
		sizes[i] = int(math.Floor(shrunk[i]))
	}
}

// MergeConstraints combines two constraint sets into the most restrictive of
// both: the larger minimums and the smaller maximums, then normalized.
func MergeConstraints(a, b Constraints) Constraints {
	return ResolveConstraints(Constraints{
		MinWidth:  maxInt(a.MinWidth, b.MinWidth),
		MaxWidth:  minInt(a.MaxWidth, b.MaxWidth),
		MinHeight: maxInt(a.MinHeight, b.MinHeight),
		MaxHeight: minInt(a.MaxHeight, b.MaxHeight),
	})
}

// DeflateConstraints shrinks constraints by edge insets, flooring at zero.
// Unbounded maximums stay unbounded.
func DeflateConstraints(c Constraints, insets EdgeInsets) Constraints {
	h, v := insets.Horizontal(), insets.Vertical()
	out := Constraints{
		MinWidth:  maxInt(0, c.MinWidth-h),
		MinHeight: maxInt(0, c.MinHeight-v),
		MaxWidth:  c.MaxWidth,
		MaxHeight: c.MaxHeight,
	}
	if c.MaxWidth < Unbounded {
		out.MaxWidth = maxInt(0, c.MaxWidth-h)
	}
	if c.MaxHeight < Unbounded {
		out.MaxHeight = maxInt(0, c.MaxHeight-v)
	}
	return ResolveConstraints(out)
}

// deflateSize shrinks a size by edge insets, flooring at zero.
func deflateSize(s Size, insets EdgeInsets) Size {
	return Size{
		Width:  maxInt(0, s.Width-insets.Horizontal()),
		Height: maxInt(0, s.Height-insets.Vertical()),
	}
}
