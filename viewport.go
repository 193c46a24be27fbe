package flexgrid

import "math"

// ViewportEventType identifies a viewport notification.
type ViewportEventType uint8

const (
	ViewportResized ViewportEventType = iota
	ViewportContentChanged
	ViewportScrolled
)

// ViewportEvent carries the viewport's state after a change.
type ViewportEvent struct {
	Type    ViewportEventType
	Size    Size
	Content Size
	Scroll  Position
}

// Viewport tracks the visible window onto a larger content area: a size, a
// content size, and a clamped scroll offset per axis. It is independent of
// the node tree; callers feed it the content extent a layout pass produced.
type Viewport struct {
	size      Size
	content   Size
	scroll    Position
	scrollX   bool
	scrollY   bool
	listeners []func(ViewportEvent)
}

// NewViewport creates a viewport of the given size with both axes
// scrollable.
func NewViewport(size Size) *Viewport {
	return &Viewport{size: size, scrollX: true, scrollY: true}
}

// Size returns the viewport size.
func (v *Viewport) Size() Size { return v.size }

// ContentSize returns the scrollable content size.
func (v *Viewport) ContentSize() Size { return v.content }

// Scroll returns the current scroll offset.
func (v *Viewport) Scroll() Position { return v.scroll }

// SetScrollEnabled toggles scrolling per axis. Disabling an axis forces its
// offset to zero.
func (v *Viewport) SetScrollEnabled(x, y bool) *Viewport {
	v.scrollX, v.scrollY = x, y
	v.applyScroll(v.scroll, ViewportScrolled)
	return v
}

// SetSize resizes the viewport, re-clamping the offset.
func (v *Viewport) SetSize(s Size) {
	if v.size == s {
		return
	}
	v.size = s
	v.clampScroll()
	v.notify(ViewportResized)
}

// SetContentSize records the content extent, re-clamping the offset.
func (v *Viewport) SetContentSize(s Size) {
	if v.content == s {
		return
	}
	v.content = s
	v.clampScroll()
	v.notify(ViewportContentChanged)
}

// maxScroll is the furthest valid offset per axis.
func (v *Viewport) maxScroll() Position {
	return Position{
		X: maxInt(0, v.content.Width-v.size.Width),
		Y: maxInt(0, v.content.Height-v.size.Height),
	}
}

// SetScroll moves the offset to (x, y), clamped to the valid range.
func (v *Viewport) SetScroll(x, y int) {
	v.applyScroll(Position{X: x, Y: y}, ViewportScrolled)
}

// ScrollTo is SetScroll taking a position.
func (v *Viewport) ScrollTo(p Position) {
	v.applyScroll(p, ViewportScrolled)
}

// ScrollBy shifts the offset by (dx, dy), clamped.
func (v *Viewport) ScrollBy(dx, dy int) {
	v.applyScroll(Position{X: v.scroll.X + dx, Y: v.scroll.Y + dy}, ViewportScrolled)
}

func (v *Viewport) applyScroll(p Position, ev ViewportEventType) {
	max := v.maxScroll()
	next := Position{X: clamp(p.X, 0, max.X), Y: clamp(p.Y, 0, max.Y)}
	if !v.scrollX {
		next.X = 0
	}
	if !v.scrollY {
		next.Y = 0
	}
	if next == v.scroll {
		return
	}
	v.scroll = next
	v.notify(ev)
}

func (v *Viewport) clampScroll() {
	max := v.maxScroll()
	v.scroll.X = clamp(v.scroll.X, 0, max.X)
	v.scroll.Y = clamp(v.scroll.Y, 0, max.Y)
	if !v.scrollX {
		v.scroll.X = 0
	}
	if !v.scrollY {
		v.scroll.Y = 0
	}
}

// VisibleRegion returns the content-space rect currently in view.
func (v *Viewport) VisibleRegion() Rect {
	return RectAt(v.scroll, v.size)
}

// EnsureVisible scrolls the minimum distance needed to bring rect, expanded
// by padding, into view. Rects already fully visible leave the offset
// untouched. Leading edges win: if the rect is before the viewport the
// offset snaps to its leading edge, otherwise a trailing overflow aligns the
// trailing edges.
func (v *Viewport) EnsureVisible(rect Rect, padding int) {
	r := rect.Inflate(padding)
	next := v.scroll

	switch {
	case r.X < next.X:
		next.X = r.X
	case r.Right() > next.X+v.size.Width:
		next.X = r.Right() - v.size.Width
	}
	switch {
	case r.Y < next.Y:
		next.Y = r.Y
	case r.Bottom() > next.Y+v.size.Height:
		next.Y = r.Bottom() - v.size.Height
	}

	v.applyScroll(next, ViewportScrolled)
}

// PageUp scrolls up by one viewport height.
func (v *Viewport) PageUp() { v.ScrollBy(0, -v.size.Height) }

// PageDown scrolls down by one viewport height.
func (v *Viewport) PageDown() { v.ScrollBy(0, v.size.Height) }

// PageLeft scrolls left by one viewport width.
func (v *Viewport) PageLeft() { v.ScrollBy(-v.size.Width, 0) }

// PageRight scrolls right by one viewport width.
func (v *Viewport) PageRight() { v.ScrollBy(v.size.Width, 0) }

// ScrollToTop jumps to the top edge.
func (v *Viewport) ScrollToTop() { v.SetScroll(v.scroll.X, 0) }

// ScrollToBottom jumps to the bottom edge.
func (v *Viewport) ScrollToBottom() { v.SetScroll(v.scroll.X, v.maxScroll().Y) }

// ScrollToLeft jumps to the left edge.
func (v *Viewport) ScrollToLeft() { v.SetScroll(0, v.scroll.Y) }

// ScrollToRight jumps to the right edge.
func (v *Viewport) ScrollToRight() { v.SetScroll(v.maxScroll().X, v.scroll.Y) }

// VerticalIndicator sizes a scrollbar thumb for a track of trackExtent
// cells: the extent scales with the visible fraction (never below one cell)
// and the position scales with the scroll fraction.
func (v *Viewport) VerticalIndicator(trackExtent int) (extent, position int) {
	return indicator(trackExtent, v.size.Height, v.content.Height, v.scroll.Y, v.maxScroll().Y)
}

// HorizontalIndicator is VerticalIndicator for the horizontal axis.
func (v *Viewport) HorizontalIndicator(trackExtent int) (extent, position int) {
	return indicator(trackExtent, v.size.Width, v.content.Width, v.scroll.X, v.maxScroll().X)
}

func indicator(track, visible, content, scroll, maxScroll int) (extent, position int) {
	if track <= 0 {
		return 0, 0
	}
	visiblePercent := 1.0
	if content > 0 && visible < content {
		visiblePercent = float64(visible) / float64(content)
	}
	extent = maxInt(1, int(math.Floor(float64(track)*visiblePercent)))
	if extent > track {
		extent = track
	}
	if maxScroll > 0 {
		scrollPercent := float64(scroll) / float64(maxScroll)
		position = int(math.Floor(scrollPercent * float64(track-extent)))
	}
	return extent, position
}

// OnChange registers a viewport listener and returns its unsubscribe
// function.
func (v *Viewport) OnChange(fn func(ViewportEvent)) func() {
	v.listeners = append(v.listeners, fn)
	idx := len(v.listeners) - 1
	return func() {
		v.listeners[idx] = nil
	}
}

func (v *Viewport) notify(t ViewportEventType) {
	ev := ViewportEvent{Type: t, Size: v.size, Content: v.content, Scroll: v.scroll}
	for _, fn := range v.listeners {
		if fn != nil {
			fn(ev)
		}
	}
}
