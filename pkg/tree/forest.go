package tree

import (
	"maps"
	"slices"
	"strings"
)

// Forest is an immutable snapshot of the document hierarchy.
//
// The zero value is not usable; create forests with [New].
type Forest struct {
	roots []ID
	nodes map[ID]Node
	newID IDSource
}

// Option configures a new Forest.
type Option func(*config)

type config struct {
	rootLabel string
	source    IDSource
}

// WithRootLabel sets the label of the root node.
// Blank labels are ignored.
func WithRootLabel(label string) Option {
	return func(c *config) {
		if l := strings.TrimSpace(label); l != "" {
			c.rootLabel = l
		}
	}
}

// WithIDSource sets the generator used for new node IDs.
func WithIDSource(src IDSource) Option {
	return func(c *config) {
		if src != nil {
			c.source = src
		}
	}
}

// New creates a forest holding only the root node.
func New(opts ...Option) *Forest {
	c := config{rootLabel: DefaultRootLabel, source: UUIDSource}
	for _, opt := range opts {
		opt(&c)
	}
	return &Forest{
		roots: []ID{RootID},
		nodes: map[ID]Node{RootID: {ID: RootID, Label: c.rootLabel}},
		newID: c.source,
	}
}

// clone returns a shallow copy whose index and root list can be modified
// without affecting f. Node values are shared; callers must use Node.detach
// before changing a node's Children.
func (f *Forest) clone() *Forest {
	return &Forest{
		roots: slices.Clone(f.roots),
		nodes: maps.Clone(f.nodes),
		newID: f.newID,
	}
}

// =============================================================================
// Queries
// =============================================================================

// Len returns the number of nodes in the forest.
func (f *Forest) Len() int { return len(f.nodes) }

// Roots returns the IDs of the top-level nodes in order.
func (f *Forest) Roots() []ID { return slices.Clone(f.roots) }

// Has reports whether a node with the given ID exists.
func (f *Forest) Has(id ID) bool {
	_, ok := f.nodes[id]
	return ok
}

// Find returns the node with the given ID.
// The returned node's Children slice is a copy and may be modified freely.
func (f *Forest) Find(id ID) (Node, bool) {
	n, ok := f.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.detach(), true
}

// Parent returns the structural parent of id.
// It returns false for unknown IDs and top-level nodes.
func (f *Forest) Parent(id ID) (Node, bool) {
	n, ok := f.nodes[id]
	if !ok || n.ParentID == "" {
		return Node{}, false
	}
	return f.Find(n.ParentID)
}

// Children returns the children of id in order.
func (f *Forest) Children(id ID) []Node {
	n, ok := f.nodes[id]
	if !ok {
		return nil
	}
	out := make([]Node, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, f.nodes[c].detach())
	}
	return out
}

// IsAncestor reports whether ancestor lies on the path from id up to its
// top-level node. A node counts as its own ancestor.
func (f *Forest) IsAncestor(ancestor, id ID) bool {
	for cur, ok := f.nodes[id]; ok; cur, ok = f.nodes[cur.ParentID] {
		if cur.ID == ancestor {
			return true
		}
	}
	return false
}

// Depth returns the number of edges between id and its top-level node,
// or -1 if id is unknown.
func (f *Forest) Depth(id ID) int {
	n, ok := f.nodes[id]
	if !ok {
		return -1
	}
	d := 0
	for n.ParentID != "" {
		n = f.nodes[n.ParentID]
		d++
	}
	return d
}

// Path returns the labels from the top-level node down to id.
func (f *Forest) Path(id ID) []string {
	var path []string
	for n, ok := f.nodes[id]; ok; n, ok = f.nodes[n.ParentID] {
		path = append(path, n.Label)
	}
	slices.Reverse(path)
	return path
}

// Walk visits every node in pre-order (node before its children, siblings
// in order). Returning false from fn stops the walk.
func (f *Forest) Walk(fn func(n Node, depth int) bool) {
	for _, r := range f.roots {
		if !f.walk(r, 0, fn) {
			return
		}
	}
}

func (f *Forest) walk(id ID, depth int, fn func(Node, int) bool) bool {
	n, ok := f.nodes[id]
	if !ok {
		return true
	}
	if !fn(n.detach(), depth) {
		return false
	}
	for _, c := range n.Children {
		if !f.walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}

// Flatten returns every node in pre-order.
func (f *Forest) Flatten() []Node {
	out := make([]Node, 0, len(f.nodes))
	f.Walk(func(n Node, _ int) bool {
		out = append(out, n)
		return true
	})
	return out
}

// Subtree returns a detached copy of id and its descendants with their
// original IDs.
func (f *Forest) Subtree(id ID) (Subtree, bool) {
	if !f.Has(id) {
		return Subtree{}, false
	}
	var nodes []Node
	f.collect(id, &nodes)
	nodes[0].ParentID = ""
	return Subtree{Root: id, Nodes: nodes}, true
}

func (f *Forest) collect(id ID, out *[]Node) {
	n := f.nodes[id]
	*out = append(*out, n.detach())
	for _, c := range n.Children {
		f.collect(c, out)
	}
}

// =============================================================================
// Mutations
// =============================================================================

// AddChild appends a new leaf labeled label to parentID's children.
// The label is trimmed; a blank label or unknown parent is a no-op that
// returns f and an empty ID.
func (f *Forest) AddChild(parentID ID, label string) (*Forest, ID) {
	label = strings.TrimSpace(label)
	parent, ok := f.nodes[parentID]
	if !ok || label == "" {
		return f, ""
	}

	g := f.clone()
	id := g.freshID(nil)
	parent = parent.detach()
	parent.Children = append(parent.Children, id)
	g.nodes[parentID] = parent
	g.nodes[id] = Node{ID: id, Label: label, ParentID: parentID}
	return g, id
}

// RemoveSubtree removes id and all of its descendants.
// Unknown IDs are a no-op.
func (f *Forest) RemoveSubtree(id ID) *Forest {
	if !f.Has(id) {
		return f
	}
	g := f.clone()
	g.unlink(id)
	var doomed []Node
	f.collect(id, &doomed)
	for _, n := range doomed {
		delete(g.nodes, n.ID)
	}
	return g
}

// ReplaceNode substitutes the payload of the node with the given ID by n,
// keeping its position among its siblings. The structural fields of n
// (ID, ParentID, Children) are ignored; structure changes go through
// [Forest.Move], [Forest.Graft] and [Forest.RemoveSubtree].
func (f *Forest) ReplaceNode(id ID, n Node) *Forest {
	old, ok := f.nodes[id]
	if !ok {
		return f
	}
	g := f.clone()
	n.ID, n.ParentID, n.Children = old.ID, old.ParentID, old.Children
	g.nodes[id] = n
	return g
}

// Rewrite returns a forest in which every node's payload has been replaced
// by fn(node). Structural fields returned by fn are ignored.
func (f *Forest) Rewrite(fn func(Node) Node) *Forest {
	g := &Forest{
		roots: slices.Clone(f.roots),
		nodes: make(map[ID]Node, len(f.nodes)),
		newID: f.newID,
	}
	for id, old := range f.nodes {
		n := fn(old.detach())
		n.ID, n.ParentID, n.Children = old.ID, old.ParentID, old.Children
		g.nodes[id] = n
	}
	return g
}

// MarkSubtreeCut sets the Cut flag on id and all of its descendants.
func (f *Forest) MarkSubtreeCut(id ID) *Forest { return f.setCut(id, true) }

// ClearSubtreeCutFlags clears the Cut flag on id and all of its descendants.
func (f *Forest) ClearSubtreeCutFlags(id ID) *Forest { return f.setCut(id, false) }

func (f *Forest) setCut(id ID, cut bool) *Forest {
	if !f.Has(id) {
		return f
	}
	g := f.clone()
	var sub []Node
	f.collect(id, &sub)
	for _, n := range sub {
		stored := g.nodes[n.ID]
		stored.Cut = cut
		g.nodes[n.ID] = stored
	}
	return g
}

// CloneSubtree deep-copies id and its descendants, assigning a fresh ID to
// every copied node, clearing Cut and resetting Col/Row. The copy is not
// attached anywhere; pass it to [Forest.Graft].
func (f *Forest) CloneSubtree(id ID) (Subtree, bool) {
	return f.CloneSubtreeFrom(f, id)
}

// CloneSubtreeFrom is like [Forest.CloneSubtree] but copies the subtree out
// of src, which may be an older snapshot. Fresh IDs are unused in both f
// and src, so an ID deleted from f since src was taken is never reissued.
func (f *Forest) CloneSubtreeFrom(src *Forest, id ID) (Subtree, bool) {
	orig, ok := src.Subtree(id)
	if !ok {
		return Subtree{}, false
	}

	taken := make(map[ID]bool, orig.Len())
	mapping := make(map[ID]ID, orig.Len())
	for _, n := range orig.Nodes {
		fresh := f.freshID(taken, src)
		taken[fresh] = true
		mapping[n.ID] = fresh
	}

	out := Subtree{Root: mapping[orig.Root], Nodes: make([]Node, len(orig.Nodes))}
	for i, n := range orig.Nodes {
		c := Node{ID: mapping[n.ID], Label: n.Label, ParentID: mapping[n.ParentID]}
		c.Children = make([]ID, len(n.Children))
		for j, child := range n.Children {
			c.Children[j] = mapping[child]
		}
		out.Nodes[i] = c
	}
	out.Nodes[0].ParentID = ""
	return out, true
}

// Graft attaches a detached subtree as the last child of parentID.
// It is a no-op if the parent is unknown, the subtree is empty or
// malformed, or any of its IDs already exists in f.
func (f *Forest) Graft(parentID ID, s Subtree) *Forest {
	parent, ok := f.nodes[parentID]
	if !ok || len(s.Nodes) == 0 || s.Nodes[0].ID != s.Root {
		return f
	}
	for _, n := range s.Nodes {
		if f.Has(n.ID) {
			return f
		}
	}

	g := f.clone()
	for _, n := range s.Nodes {
		g.nodes[n.ID] = n.detach()
	}
	root := g.nodes[s.Root]
	root.ParentID = parentID
	g.nodes[s.Root] = root

	parent = parent.detach()
	parent.Children = append(parent.Children, s.Root)
	g.nodes[parentID] = parent
	return g
}

// Move detaches id from its current parent and appends it to parentID's
// children, keeping its ID and subtree. Moving a node under itself or one
// of its descendants, or moving a top-level node, is a no-op.
func (f *Forest) Move(id, parentID ID) *Forest {
	n, ok := f.nodes[id]
	if !ok || n.ParentID == "" || !f.Has(parentID) || f.IsAncestor(id, parentID) {
		return f
	}

	g := f.clone()
	g.unlink(id)
	parent := g.nodes[parentID].detach()
	parent.Children = append(parent.Children, id)
	g.nodes[parentID] = parent

	n = g.nodes[id]
	n.ParentID = parentID
	g.nodes[id] = n
	return g
}

// unlink removes id from its parent's child list or from the roots.
// f must be a private clone.
func (f *Forest) unlink(id ID) {
	n := f.nodes[id]
	if n.ParentID == "" {
		f.roots = slices.DeleteFunc(f.roots, func(r ID) bool { return r == id })
		return
	}
	parent, ok := f.nodes[n.ParentID]
	if !ok {
		return
	}
	parent = parent.detach()
	parent.Children = slices.DeleteFunc(parent.Children, func(c ID) bool { return c == id })
	f.nodes[parent.ID] = parent
}

// freshID draws IDs until one is unused in f, in every other forest and
// not in extra.
func (f *Forest) freshID(extra map[ID]bool, others ...*Forest) ID {
next:
	for {
		id := f.newID()
		if id == "" || extra[id] || f.Has(id) {
			continue
		}
		for _, o := range others {
			if o.Has(id) {
				continue next
			}
		}
		return id
	}
}
