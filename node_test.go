package flexgrid

import "testing"

func TestNodeIDsAreDeterministicWithInjectedGenerator(t *testing.T) {
	gen := NewSerialIDs()
	a := NewNodeWith(gen)
	b := NewNodeWith(gen)
	if a.ID() != 1 || b.ID() != 2 {
		t.Errorf("serial ids should be 1 and 2, got %d and %d", a.ID(), b.ID())
	}
}

func TestAddChildSetsParent(t *testing.T) {
	parent := NewNode()
	child := NewNode()
	parent.AddChild(child)
	if child.Parent() != parent {
		t.Error("child parent should be set")
	}
	if !parent.Contains(child) {
		t.Error("parent should contain child")
	}
}

func TestReparentDetachesFirst(t *testing.T) {
	a := NewNode()
	b := NewNode()
	child := NewNode()
	a.AddChild(child)
	b.AddChild(child)
	if a.Contains(child) {
		t.Error("first parent should no longer contain child")
	}
	if child.Parent() != b {
		t.Error("child should belong to second parent")
	}
	if len(a.Children()) != 0 {
		t.Errorf("first parent should have no children, got %d", len(a.Children()))
	}
}

func TestInsertChildOrder(t *testing.T) {
	parent := NewNode()
	a, b, c := NewNode(), NewNode(), NewNode()
	parent.AddChild(a)
	parent.AddChild(c)
	parent.InsertChild(1, b)
	if parent.IndexOf(b) != 1 {
		t.Errorf("inserted child should be at index 1, got %d", parent.IndexOf(b))
	}
	if parent.IndexOf(c) != 2 {
		t.Errorf("displaced child should be at index 2, got %d", parent.IndexOf(c))
	}
}

func TestRemoveChildAt(t *testing.T) {
	parent := NewNode()
	a, b := NewNode(), NewNode()
	parent.AddChild(a)
	parent.AddChild(b)
	removed := parent.RemoveChildAt(0)
	if removed != a {
		t.Error("RemoveChildAt(0) should return the first child")
	}
	if a.Parent() != nil {
		t.Error("removed child should be detached")
	}
	if parent.RemoveChildAt(5) != nil {
		t.Error("out-of-range removal should return nil")
	}
}

func TestRemoveAllChildren(t *testing.T) {
	parent := NewNode()
	a, b := NewNode(), NewNode()
	parent.AddChild(a)
	parent.AddChild(b)
	parent.RemoveAllChildren()
	if len(parent.Children()) != 0 {
		t.Errorf("should have no children, got %d", len(parent.Children()))
	}
	if a.Parent() != nil || b.Parent() != nil {
		t.Error("detached children should have nil parents")
	}
}

func TestWalkOrders(t *testing.T) {
	gen := NewSerialIDs()
	root := NewNodeWith(gen)       // id 1
	left := NewNodeWith(gen)       // id 2
	right := NewNodeWith(gen)      // id 3
	grandchild := NewNodeWith(gen) // id 4
	root.AddChild(left)
	root.AddChild(right)
	left.AddChild(grandchild)

	var pre []NodeID
	root.Walk(func(n *Node) { pre = append(pre, n.ID()) })
	wantPre := []NodeID{1, 2, 4, 3}
	for i := range wantPre {
		if pre[i] != wantPre[i] {
			t.Errorf("pre-order position %d should be %d, got %d", i, wantPre[i], pre[i])
		}
	}

	var post []NodeID
	root.WalkPost(func(n *Node) { post = append(post, n.ID()) })
	wantPost := []NodeID{4, 2, 3, 1}
	for i := range wantPost {
		if post[i] != wantPost[i] {
			t.Errorf("post-order position %d should be %d, got %d", i, wantPost[i], post[i])
		}
	}
}

func TestFindByIDAndFindAll(t *testing.T) {
	gen := NewSerialIDs()
	root := NewNodeWith(gen)
	child := NewNodeWith(gen)
	root.AddChild(child)
	if root.FindByID(child.ID()) != child {
		t.Error("FindByID should locate the child")
	}
	if root.FindByID(999) != nil {
		t.Error("FindByID should return nil for unknown id")
	}
	hidden := NewNodeWith(gen).Hide()
	root.AddChild(hidden)
	found := root.FindAll(func(n *Node) bool { return !n.Visible() })
	if len(found) != 1 || found[0] != hidden {
		t.Errorf("FindAll should return the hidden node, got %d matches", len(found))
	}
}

func TestInvalidateStopsAtInvalidAncestor(t *testing.T) {
	root := NewNode()
	mid := NewNode()
	leaf := NewNode()
	root.AddChild(mid)
	mid.AddChild(leaf)
	root.SetComputedLayout(Position{}, Size{Width: 10, Height: 10})
	mid.SetComputedLayout(Position{}, Size{Width: 10, Height: 10})
	leaf.SetComputedLayout(Position{}, Size{Width: 10, Height: 10})

	leaf.Invalidate()
	if leaf.Computed().Valid || mid.Computed().Valid || root.Computed().Valid {
		t.Error("invalidation should propagate to all ancestors")
	}

	// Re-validate only the ancestors; the leaf stays invalid, so a second
	// invalidation must stop immediately and leave them untouched.
	root.SetComputedLayout(Position{}, Size{Width: 10, Height: 10})
	mid.SetComputedLayout(Position{}, Size{Width: 10, Height: 10})
	leaf.Invalidate()
	if !mid.Computed().Valid || !root.Computed().Valid {
		t.Error("second invalidate on an already-invalid node should be a no-op")
	}
}

func TestSettersBumpVersionAndInvalidate(t *testing.T) {
	n := NewNode()
	n.SetComputedLayout(Position{}, Size{Width: 5, Height: 5})
	v := n.Version()
	n.Width(10)
	if n.Version() == v {
		t.Error("setter should bump the structural version")
	}
	if n.Computed().Valid {
		t.Error("setter should invalidate the computed layout")
	}
}

func TestMutationBumpsAncestorVersions(t *testing.T) {
	root := NewNode()
	child := NewNode()
	root.AddChild(child)
	root.SetComputedLayout(Position{}, Size{Width: 10, Height: 10})
	v := root.Version()
	child.Width(5)
	if root.Version() == v {
		t.Error("child mutation should bump the parent version so stale caches are discarded")
	}
}

func TestLayoutCacheRoundTrip(t *testing.T) {
	n := NewNode()
	cons := Tight(Size{Width: 80, Height: 24})
	layout := ComputedLayout{Position: Position{X: 1, Y: 2}, Size: Size{Width: 30, Height: 10}, Valid: true}
	n.CacheLayout(cons, layout)

	got, ok := n.CachedLayout(cons)
	if !ok {
		t.Fatal("cached layout should be found")
	}
	if got.Size != layout.Size || got.Position != layout.Position {
		t.Errorf("cached layout mismatch: got %+v", got)
	}
	if _, ok := n.CachedLayout(Loose()); ok {
		t.Error("different constraints should miss")
	}
}

func TestLayoutCacheInvalidatedByVersion(t *testing.T) {
	n := NewNode()
	cons := Tight(Size{Width: 80, Height: 24})
	n.CacheLayout(cons, ComputedLayout{Size: Size{Width: 30, Height: 10}, Valid: true})
	n.Width(10) // bumps version
	if _, ok := n.CachedLayout(cons); ok {
		t.Error("cache should be discarded after a structural version change")
	}
}

func TestLayoutCacheEvictsOldest(t *testing.T) {
	n := NewNode()
	first := Tight(Size{Width: 1, Height: 1})
	n.CacheLayout(first, ComputedLayout{Valid: true})
	for i := 2; i <= nodeCacheCap+1; i++ {
		n.CacheLayout(Tight(Size{Width: i, Height: i}), ComputedLayout{Valid: true})
	}
	if _, ok := n.CachedLayout(first); ok {
		t.Error("oldest entry should have been evicted")
	}
	last := Tight(Size{Width: nodeCacheCap + 1, Height: nodeCacheCap + 1})
	if _, ok := n.CachedLayout(last); !ok {
		t.Error("newest entry should survive eviction")
	}
}

func TestBoundsVariants(t *testing.T) {
	n := NewNode().Pad(Insets(2)).WithMargin(Insets(1))
	n.SetComputedLayout(Position{X: 10, Y: 5}, Size{Width: 20, Height: 10})

	b := n.Bounds()
	if b != (Rect{X: 10, Y: 5, Width: 20, Height: 10}) {
		t.Errorf("Bounds = %+v", b)
	}
	cb := n.ContentBounds()
	if cb != (Rect{X: 12, Y: 7, Width: 16, Height: 6}) {
		t.Errorf("ContentBounds = %+v", cb)
	}
	tb := n.TotalBounds()
	if tb != (Rect{X: 9, Y: 4, Width: 22, Height: 12}) {
		t.Errorf("TotalBounds = %+v", tb)
	}
}

func TestSpacerGrows(t *testing.T) {
	s := Spacer()
	if s.FlexGrow() != 1 {
		t.Errorf("spacer should default to grow 1, got %g", s.FlexGrow())
	}
}
