package flexgrid

import (
	"log/slog"
	"time"
)

// EventType identifies an engine notification.
type EventType uint8

const (
	LayoutStarted EventType = iota
	LayoutCompleted
	LayoutInvalidated
	NodeChanged
	ViewportChanged
)

// String names the event type for logs.
func (t EventType) String() string {
	switch t {
	case LayoutStarted:
		return "LayoutStarted"
	case LayoutCompleted:
		return "LayoutCompleted"
	case LayoutInvalidated:
		return "LayoutInvalidated"
	case NodeChanged:
		return "NodeChanged"
	case ViewportChanged:
		return "ViewportChanged"
	default:
		return "Unknown"
	}
}

// Event is delivered to engine listeners. Size carries the computed root
// size for LayoutCompleted and the viewport size for ViewportChanged;
// Changes is the diff against the previous pass, empty when nothing moved.
type Event struct {
	Type    EventType
	Size    Size
	Changes []LayoutChange
}

// Listener receives engine events.
type Listener func(Event)

// DefaultDebounce is the coalescing window for scheduled recomputes, about
// one frame at 60Hz.
const DefaultDebounce = 16 * time.Millisecond

// Engine owns a root node and a viewport size and turns invalidations into
// layout passes. It is single-threaded: the embedding loop drives it and
// elapses time for the debounce handle. Use after Dispose panics.
type Engine struct {
	root        *Node
	viewport    Size
	calc        *Calculator
	logger      *slog.Logger
	dirty       bool
	calculating bool
	lastSize    Size
	snapshot    map[NodeID]ComputedLayout
	listeners   []Listener

	debounce     time.Duration
	pendingAt    time.Time
	pendingArmed bool
	disposed     bool
}

// NewEngine creates an engine with a fresh calculator and the default
// debounce window.
func NewEngine() *Engine {
	return &Engine{
		calc:     NewCalculator(),
		logger:   slog.Default(),
		debounce: DefaultDebounce,
		snapshot: make(map[NodeID]ComputedLayout),
	}
}

// Calculator returns the engine's calculator for tuning depth or caching.
func (e *Engine) Calculator() *Calculator {
	return e.calc
}

// SetLogger replaces the engine's logger (and the calculator's).
func (e *Engine) SetLogger(l *slog.Logger) *Engine {
	if l != nil {
		e.logger = l
		e.calc.SetLogger(l)
	}
	return e
}

// SetDebounce sets the coalescing window for ScheduleLayout.
func (e *Engine) SetDebounce(d time.Duration) *Engine {
	if d > 0 {
		e.debounce = d
	}
	return e
}

// Root returns the current root node.
func (e *Engine) Root() *Node {
	return e.root
}

// ViewportSize returns the current viewport size.
func (e *Engine) ViewportSize() Size {
	return e.viewport
}

// SetRootNode replaces the root, marks the engine dirty and emits
// NodeChanged.
func (e *Engine) SetRootNode(root *Node) {
	e.checkDisposed()
	e.root = root
	e.dirty = true
	e.emit(Event{Type: NodeChanged})
}

// SetViewportSize records a new viewport, marks the engine dirty and emits
// ViewportChanged.
func (e *Engine) SetViewportSize(s Size) {
	e.checkDisposed()
	if e.viewport == s {
		return
	}
	e.viewport = s
	e.dirty = true
	e.emit(Event{Type: ViewportChanged, Size: s})
}

// Layout computes the tree if anything is stale and returns the root size.
// When the engine is clean and the root's layout is still valid this is a
// no-op returning the cached size. A completed pass emits LayoutCompleted
// carrying the diff against the previous pass.
func (e *Engine) Layout() Size {
	e.checkDisposed()
	if e.root == nil {
		return Size{}
	}
	if !e.dirty && e.root.computed.Valid {
		return e.lastSize
	}
	if e.calculating {
		return e.lastSize
	}
	e.calculating = true
	defer func() { e.calculating = false }()

	e.emit(Event{Type: LayoutStarted, Size: e.viewport})

	prior := e.snapshot
	size := e.calc.Calculate(e.root, e.viewport)
	e.root.SetComputedLayout(Position{}, size)
	e.dirty = false
	e.lastSize = size

	e.snapshot = make(map[NodeID]ComputedLayout, len(prior))
	var changes []LayoutChange
	e.root.Walk(func(n *Node) {
		cur := n.computed
		if !cur.Valid {
			return
		}
		e.snapshot[n.ID()] = cur
		old, existed := prior[n.ID()]
		if !existed {
			return
		}
		posChanged := old.Position != cur.Position
		sizeChanged := old.Size != cur.Size
		if posChanged || sizeChanged {
			changes = append(changes, LayoutChange{
				NodeID:          n.ID(),
				Old:             old,
				New:             cur,
				PositionChanged: posChanged,
				SizeChanged:     sizeChanged,
			})
		}
	})

	e.emit(Event{Type: LayoutCompleted, Size: size, Changes: changes})
	return size
}

// Invalidate marks the engine dirty, invalidates the tree, emits
// LayoutInvalidated, and re-arms the debounce handle so bursts coalesce
// into a single recompute.
func (e *Engine) Invalidate() {
	e.checkDisposed()
	e.dirty = true
	if e.root != nil {
		e.root.Invalidate()
	}
	e.pendingArmed = false
	e.emit(Event{Type: LayoutInvalidated})
	e.ScheduleLayout()
}

// ScheduleLayout arms (or re-arms) the one-shot recompute request. The
// embedding loop elapses time and calls FlushPending; re-arming replaces any
// pending deadline.
func (e *Engine) ScheduleLayout() {
	e.checkDisposed()
	e.pendingArmed = true
	e.pendingAt = time.Now().Add(e.debounce)
}

// Pending reports the armed recompute deadline, if any.
func (e *Engine) Pending() (time.Time, bool) {
	e.checkDisposed()
	return e.pendingAt, e.pendingArmed
}

// FlushPending runs the scheduled layout if its deadline has passed,
// reporting whether a pass ran.
func (e *Engine) FlushPending(now time.Time) bool {
	e.checkDisposed()
	if !e.pendingArmed || now.Before(e.pendingAt) {
		return false
	}
	e.pendingArmed = false
	e.Layout()
	return true
}

// ForceLayout cancels any pending debounced recompute and lays out
// unconditionally.
func (e *Engine) ForceLayout() Size {
	e.checkDisposed()
	e.pendingArmed = false
	e.dirty = true
	return e.Layout()
}

// FindNodeByID searches the tree for id.
func (e *Engine) FindNodeByID(id NodeID) *Node {
	e.checkDisposed()
	if e.root == nil {
		return nil
	}
	return e.root.FindByID(id)
}

// NodeBounds returns a node's parent-relative bounds.
func (e *Engine) NodeBounds(id NodeID) (Rect, bool) {
	e.checkDisposed()
	n := e.FindNodeByID(id)
	if n == nil || !n.computed.Valid {
		return Rect{}, false
	}
	return n.Bounds(), true
}

// AbsolutePosition resolves a node's viewport-relative position by walking
// the parent chain and summing offsets. O(depth).
func (e *Engine) AbsolutePosition(n *Node) Position {
	e.checkDisposed()
	var p Position
	for ; n != nil; n = n.parent {
		p = p.Add(n.computed.Position)
	}
	return p
}

// HitTest reports whether the point, in viewport cells, falls inside the
// node's absolute bounds.
func (e *Engine) HitTest(id NodeID, p Position) bool {
	e.checkDisposed()
	n := e.FindNodeByID(id)
	if n == nil || !n.computed.Valid {
		return false
	}
	return RectAt(e.AbsolutePosition(n), n.computed.Size).Contains(p)
}

// AllAbsoluteBounds collects every valid node's viewport-relative bounds in
// a single pre-order walk.
func (e *Engine) AllAbsoluteBounds() map[NodeID]Rect {
	e.checkDisposed()
	out := make(map[NodeID]Rect)
	if e.root == nil {
		return out
	}
	var walk func(n *Node, origin Position)
	walk = func(n *Node, origin Position) {
		abs := origin.Add(n.computed.Position)
		if n.computed.Valid {
			out[n.ID()] = RectAt(abs, n.computed.Size)
		}
		for _, c := range n.children {
			walk(c, abs)
		}
	}
	walk(e.root, Position{})
	return out
}

// AddListener registers a listener and returns its unsubscribe function.
// Listener slots are nilled rather than reordered, so unsubscribing during
// delivery is safe.
func (e *Engine) AddListener(fn Listener) func() {
	e.checkDisposed()
	e.listeners = append(e.listeners, fn)
	idx := len(e.listeners) - 1
	return func() {
		// The slice may already be gone after Dispose.
		if idx < len(e.listeners) {
			e.listeners[idx] = nil
		}
	}
}

// emit delivers the event to listeners in registration order. A panicking
// listener is logged and does not stop delivery to the rest.
func (e *Engine) emit(ev Event) {
	for _, fn := range e.listeners {
		if fn == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("layout listener panicked",
						"event", ev.Type.String(), "panic", r)
				}
			}()
			fn(ev)
		}()
	}
}

// Dispose releases the engine. Any further call panics: using a disposed
// engine is a programming error, not a runtime condition.
func (e *Engine) Dispose() {
	e.root = nil
	e.listeners = nil
	e.snapshot = nil
	e.pendingArmed = false
	e.disposed = true
}

func (e *Engine) checkDisposed() {
	if e.disposed {
		panic("flexgrid: engine used after Dispose")
	}
}
