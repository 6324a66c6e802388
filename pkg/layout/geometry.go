package layout

import "github.com/matzehuels/arbor/pkg/tree"

// Default geometry in pixels.
const (
	DefaultColumnSpacing = 180
	DefaultRowSpacing    = 56
	DefaultBoxWidth      = 150
	DefaultBoxHeight     = 40
	DefaultMargin        = 20
)

// Geometry maps grid cells to pixel positions.
type Geometry struct {
	ColumnSpacing float64
	RowSpacing    float64
	BoxWidth      float64
	BoxHeight     float64
	Margin        float64
}

// DefaultGeometry returns the standard box grid.
func DefaultGeometry() Geometry {
	return Geometry{
		ColumnSpacing: DefaultColumnSpacing,
		RowSpacing:    DefaultRowSpacing,
		BoxWidth:      DefaultBoxWidth,
		BoxHeight:     DefaultBoxHeight,
		Margin:        DefaultMargin,
	}
}

// ConnectorInset is the horizontal offset of a parent's connector anchor
// from the parent box's left edge.
func (g Geometry) ConnectorInset() float64 { return g.ColumnSpacing / 4 }

// Point is a pixel coordinate.
type Point struct {
	X float64
	Y float64
}

// Box is a positioned node.
type Box struct {
	ID     tree.ID
	Label  string
	Col    int
	Row    int
	X, Y   float64
	Width  float64
	Height float64
	Cut    bool
	Root   bool
}

// CenterY returns the vertical midpoint of the box.
func (b Box) CenterY() float64 { return b.Y + b.Height/2 }

// Bottom returns the y coordinate of the box's bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Connector is an elbow line from a parent box down and across to a child.
type Connector struct {
	ParentID tree.ID
	ChildID  tree.ID
	From     Point // On the parent's bottom edge
	Elbow    Point
	To       Point // Midpoint of the child's left edge
}

// Place returns the box for a single laid-out node.
func (g Geometry) Place(n tree.Node) Box {
	return Box{
		ID:     n.ID,
		Label:  n.Label,
		Col:    n.Col,
		Row:    n.Row,
		X:      g.Margin + float64(n.Col)*g.ColumnSpacing,
		Y:      g.Margin + float64(n.Row)*g.RowSpacing,
		Width:  g.BoxWidth,
		Height: g.BoxHeight,
		Cut:    n.Cut,
		Root:   n.IsRoot(),
	}
}

// Boxes returns one box per node in pre-order.
func Boxes(f *tree.Forest, g Geometry) []Box {
	nodes := f.Flatten()
	out := make([]Box, len(nodes))
	for i, n := range nodes {
		out[i] = g.Place(n)
	}
	return out
}

// Connectors returns one connector per parent/child pair in pre-order of
// the child.
func Connectors(f *tree.Forest, g Geometry) []Connector {
	var out []Connector
	f.Walk(func(n tree.Node, _ int) bool {
		parent, ok := f.Parent(n.ID)
		if !ok {
			return true
		}
		pb, cb := g.Place(parent), g.Place(n)
		from := Point{X: pb.X + g.ConnectorInset(), Y: pb.Bottom()}
		to := Point{X: cb.X, Y: cb.CenterY()}
		out = append(out, Connector{
			ParentID: parent.ID,
			ChildID:  n.ID,
			From:     from,
			Elbow:    Point{X: from.X, Y: to.Y},
			To:       to,
		})
		return true
	})
	return out
}

// Bounds returns the frame size needed to draw every box with margins.
func Bounds(f *tree.Forest, g Geometry) (width, height float64) {
	maxCol, maxRow := 0, 0
	f.Walk(func(n tree.Node, _ int) bool {
		maxCol = max(maxCol, n.Col)
		maxRow = max(maxRow, n.Row)
		return true
	})
	width = 2*g.Margin + float64(maxCol)*g.ColumnSpacing + g.BoxWidth
	height = 2*g.Margin + float64(maxRow)*g.RowSpacing + g.BoxHeight
	return width, height
}
