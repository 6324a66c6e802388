package graph

import (
	"github.com/matzehuels/arbor/pkg/clipboard"
	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/tree"
)

// =============================================================================
// View - Laid-out Document Serialization
// =============================================================================

// View is the canonical serialization format for a laid-out document.
//
// Nodes are listed in pre-order, so their index equals their row.
type View struct {
	Revision   uint64         `json:"revision"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Nodes      []Node         `json:"nodes"`
	Connectors []Connector    `json:"connectors"`
	Clipboard  *ClipboardInfo `json:"clipboard,omitempty"`
}

// Node is a positioned document node.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	ParentID string   `json:"parent_id,omitempty"`
	Children []string `json:"children,omitempty"`
	Cut      bool     `json:"cut,omitempty"`
	Col      int      `json:"col"`
	Row      int      `json:"row"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
}

// IsRoot reports whether the node is the document root.
func (n *Node) IsRoot() bool { return n.ID == string(tree.RootID) }

// Point is a pixel coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Connector is an elbow line from a parent's anchor to a child's anchor.
type Connector struct {
	ParentID string `json:"parent_id"`
	ChildID  string `json:"child_id"`
	From     Point  `json:"from"`
	Elbow    Point  `json:"elbow"`
	To       Point  `json:"to"`
}

// ClipboardInfo describes a non-empty clipboard.
type ClipboardInfo struct {
	Mode   string `json:"mode"`
	NodeID string `json:"node_id"`
}

// Node returns the node with the given ID.
func (v *View) Node(id string) (Node, bool) {
	for _, n := range v.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// Forest → View Conversion
// =============================================================================

// FromForest converts a laid-out forest to its serialization format using
// geometry g. The forest must already carry Col/Row from layout.Recalculate.
func FromForest(f *tree.Forest, g layout.Geometry) View {
	boxes := layout.Boxes(f, g)
	conns := layout.Connectors(f, g)
	w, h := layout.Bounds(f, g)

	out := View{
		Width:      w,
		Height:     h,
		Nodes:      make([]Node, len(boxes)),
		Connectors: make([]Connector, len(conns)),
	}
	for i, b := range boxes {
		n, _ := f.Find(b.ID)
		out.Nodes[i] = nodeFromBox(b, n)
	}
	for i, c := range conns {
		out.Connectors[i] = Connector{
			ParentID: string(c.ParentID),
			ChildID:  string(c.ChildID),
			From:     Point(c.From),
			Elbow:    Point(c.Elbow),
			To:       Point(c.To),
		}
	}
	return out
}

// FromSnapshot converts an editor snapshot, including its revision and
// clipboard, to its serialization format.
func FromSnapshot(s editor.Snapshot, g layout.Geometry) View {
	v := FromForest(s.Forest, g)
	v.Revision = s.Revision
	v.Clipboard = clipboardInfo(s.Clipboard)
	return v
}

// =============================================================================
// Internal Helpers
// =============================================================================

func nodeFromBox(b layout.Box, n tree.Node) Node {
	node := Node{
		ID:       string(b.ID),
		Label:    b.Label,
		ParentID: string(n.ParentID),
		Cut:      b.Cut,
		Col:      b.Col,
		Row:      b.Row,
		X:        b.X,
		Y:        b.Y,
		Width:    b.Width,
		Height:   b.Height,
	}
	if len(n.Children) > 0 {
		node.Children = make([]string, len(n.Children))
		for i, c := range n.Children {
			node.Children[i] = string(c)
		}
	}
	return node
}

func clipboardInfo(c clipboard.Clipboard) *ClipboardInfo {
	if c.Empty() {
		return nil
	}
	return &ClipboardInfo{Mode: c.Mode().String(), NodeID: string(c.NodeID())}
}
