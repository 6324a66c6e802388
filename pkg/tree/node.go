package tree

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
)

// ID identifies a node for the lifetime of a document.
type ID string

// RootID is the fixed identifier of the document root.
// The root can never be deleted, cut or copied.
const RootID ID = "root"

// DefaultRootLabel is the label given to the root when none is configured.
const DefaultRootLabel = "Root"

// Node is a single labeled vertex.
//
// ID, ParentID and Children are structural and owned by the [Forest];
// Label and Cut are payload. Col and Row are derived by the layout engine
// and are (0,0) until the first layout pass.
type Node struct {
	ID       ID
	Label    string
	ParentID ID   // Empty for top-level nodes
	Children []ID // Insertion order; determines row placement
	Cut      bool // Staged for a cut-move (display only)
	Col      int
	Row      int
}

// IsRoot reports whether n is the document root.
func (n Node) IsRoot() bool { return n.ID == RootID }

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool { return len(n.Children) == 0 }

// detach returns a copy of n that shares no slices with the original.
func (n Node) detach() Node {
	n.Children = slices.Clone(n.Children)
	return n
}

// IDSource produces identifiers for new nodes.
type IDSource func() ID

// UUIDSource returns a random UUID-based identifier.
func UUIDSource() ID {
	return ID(uuid.NewString())
}

// SequenceSource returns an IDSource yielding prefix1, prefix2, ...
// It is safe for concurrent use.
func SequenceSource(prefix string) IDSource {
	var n atomic.Int64
	return func() ID {
		return ID(fmt.Sprintf("%s%d", prefix, n.Add(1)))
	}
}

// Subtree is a detached, self-contained copy of a node and its descendants
// in pre-order. The first entry is the subtree root; its ParentID is empty.
type Subtree struct {
	Root  ID
	Nodes []Node
}

// Len returns the number of nodes in the subtree.
func (s Subtree) Len() int { return len(s.Nodes) }

// IDs returns the IDs of all nodes in the subtree in pre-order.
func (s Subtree) IDs() []ID {
	ids := make([]ID, len(s.Nodes))
	for i, n := range s.Nodes {
		ids[i] = n.ID
	}
	return ids
}
