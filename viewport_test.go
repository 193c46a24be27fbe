package flexgrid

import "testing"

func newScrollViewport() *Viewport {
	v := NewViewport(Size{Width: 80, Height: 24})
	v.SetContentSize(Size{Width: 120, Height: 100})
	return v
}

func TestViewportScrollClamping(t *testing.T) {
	v := newScrollViewport()

	v.SetScroll(500, 500)
	if got := v.Scroll(); got != (Position{X: 40, Y: 76}) {
		t.Errorf("scroll should clamp to content-size, got %+v", got)
	}

	v.SetScroll(-10, -10)
	if got := v.Scroll(); got != (Position{}) {
		t.Errorf("scroll should clamp at zero, got %+v", got)
	}
}

func TestViewportScrollBy(t *testing.T) {
	v := newScrollViewport()
	v.ScrollBy(5, 10)
	v.ScrollBy(5, 10)
	if got := v.Scroll(); got != (Position{X: 10, Y: 20}) {
		t.Errorf("relative scrolling should accumulate, got %+v", got)
	}
}

func TestViewportContentSmallerThanView(t *testing.T) {
	v := NewViewport(Size{Width: 80, Height: 24})
	v.SetContentSize(Size{Width: 40, Height: 10})
	v.SetScroll(5, 5)
	if got := v.Scroll(); got != (Position{}) {
		t.Errorf("nothing to scroll when content fits, got %+v", got)
	}
}

func TestViewportResizeReclamps(t *testing.T) {
	v := newScrollViewport()
	v.ScrollToBottom()
	if got := v.Scroll().Y; got != 76 {
		t.Fatalf("bottom of 100 rows in 24 should be 76, got %d", got)
	}

	v.SetSize(Size{Width: 80, Height: 50})
	if got := v.Scroll().Y; got != 50 {
		t.Errorf("growing the viewport should pull the offset back, got %d", got)
	}
}

func TestViewportDisabledAxis(t *testing.T) {
	v := newScrollViewport()
	v.SetScrollEnabled(false, true)
	v.SetScroll(10, 10)
	if got := v.Scroll(); got != (Position{X: 0, Y: 10}) {
		t.Errorf("disabled axis should pin to zero, got %+v", got)
	}
}

func TestViewportVisibleRegion(t *testing.T) {
	v := newScrollViewport()
	v.SetScroll(10, 20)
	want := Rect{X: 10, Y: 20, Width: 80, Height: 24}
	if got := v.VisibleRegion(); got != want {
		t.Errorf("visible region should follow the offset, got %+v", got)
	}
}

func TestViewportEnsureVisible(t *testing.T) {
	v := newScrollViewport()

	// Already fully visible: no movement.
	v.EnsureVisible(Rect{X: 10, Y: 10, Width: 5, Height: 5}, 0)
	if got := v.Scroll(); got != (Position{}) {
		t.Errorf("visible rect should not scroll, got %+v", got)
	}

	// Below the viewport: trailing edges align.
	v.EnsureVisible(Rect{X: 0, Y: 40, Width: 5, Height: 5}, 0)
	if got := v.Scroll().Y; got != 21 {
		t.Errorf("trailing overflow should align bottom edges, got %d", got)
	}

	// Above the viewport: leading edge wins.
	v.EnsureVisible(Rect{X: 0, Y: 5, Width: 5, Height: 5}, 0)
	if got := v.Scroll().Y; got != 5 {
		t.Errorf("leading overflow should snap to the rect top, got %d", got)
	}
}

func TestViewportEnsureVisiblePadding(t *testing.T) {
	v := newScrollViewport()
	v.EnsureVisible(Rect{X: 0, Y: 40, Width: 5, Height: 5}, 2)
	if got := v.Scroll().Y; got != 23 {
		t.Errorf("padding should widen the target rect, got %d", got)
	}
}

func TestViewportPaging(t *testing.T) {
	v := newScrollViewport()
	v.PageDown()
	if got := v.Scroll().Y; got != 24 {
		t.Errorf("page down should move one viewport height, got %d", got)
	}
	v.PageDown()
	v.PageDown()
	v.PageDown()
	if got := v.Scroll().Y; got != 76 {
		t.Errorf("paging should clamp at the bottom, got %d", got)
	}
	v.PageUp()
	if got := v.Scroll().Y; got != 52 {
		t.Errorf("page up should move back one height, got %d", got)
	}
	v.PageRight()
	if got := v.Scroll().X; got != 40 {
		t.Errorf("page right should clamp at the right edge, got %d", got)
	}
}

func TestViewportEdgeJumps(t *testing.T) {
	v := newScrollViewport()
	v.SetScroll(10, 10)

	v.ScrollToBottom()
	if got := v.Scroll(); got != (Position{X: 10, Y: 76}) {
		t.Errorf("bottom jump should keep x, got %+v", got)
	}
	v.ScrollToTop()
	if got := v.Scroll().Y; got != 0 {
		t.Errorf("top jump should zero y, got %d", got)
	}
	v.ScrollToRight()
	if got := v.Scroll().X; got != 40 {
		t.Errorf("right jump should hit max x, got %d", got)
	}
	v.ScrollToLeft()
	if got := v.Scroll().X; got != 0 {
		t.Errorf("left jump should zero x, got %d", got)
	}
}

func TestViewportIndicator(t *testing.T) {
	v := NewViewport(Size{Width: 80, Height: 24})
	v.SetContentSize(Size{Width: 80, Height: 96})

	// 24 of 96 rows visible on a 24-cell track: thumb is 6 cells.
	extent, pos := v.VerticalIndicator(24)
	if extent != 6 || pos != 0 {
		t.Errorf("expected thumb 6 at 0, got %d at %d", extent, pos)
	}

	v.ScrollToBottom()
	extent, pos = v.VerticalIndicator(24)
	if extent != 6 || pos != 18 {
		t.Errorf("bottom thumb should touch the track end, got %d at %d", extent, pos)
	}

	v.SetScroll(0, 36) // halfway through maxScroll 72
	_, pos = v.VerticalIndicator(24)
	if pos != 9 {
		t.Errorf("half scroll should center the thumb, got %d", pos)
	}
}

func TestViewportIndicatorDegenerate(t *testing.T) {
	v := NewViewport(Size{Width: 80, Height: 24})
	v.SetContentSize(Size{Width: 80, Height: 10})

	extent, pos := v.VerticalIndicator(24)
	if extent != 24 || pos != 0 {
		t.Errorf("content that fits should fill the track, got %d at %d", extent, pos)
	}

	if extent, pos := v.VerticalIndicator(0); extent != 0 || pos != 0 {
		t.Errorf("empty track should report nothing, got %d at %d", extent, pos)
	}
}

func TestViewportIndicatorNeverBelowOneCell(t *testing.T) {
	v := NewViewport(Size{Width: 80, Height: 2})
	v.SetContentSize(Size{Width: 80, Height: 1000})

	extent, _ := v.VerticalIndicator(10)
	if extent != 1 {
		t.Errorf("tiny visible fraction should still get a one-cell thumb, got %d", extent)
	}
}

func TestViewportEvents(t *testing.T) {
	v := newScrollViewport()
	var events []ViewportEventType
	unsub := v.OnChange(func(ev ViewportEvent) { events = append(events, ev.Type) })

	v.SetScroll(0, 10)
	v.SetScroll(0, 10) // no change, no event
	v.SetSize(Size{Width: 60, Height: 20})
	v.SetContentSize(Size{Width: 200, Height: 200})

	want := []ViewportEventType{ViewportScrolled, ViewportResized, ViewportContentChanged}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d should be %v, got %v", i, want[i], events[i])
		}
	}

	unsub()
	v.SetScroll(0, 0)
	if len(events) != len(want) {
		t.Error("unsubscribed listener should not fire")
	}
}
