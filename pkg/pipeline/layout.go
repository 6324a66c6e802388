package pipeline

import (
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/tree"
)

// idPrefix names the sequential IDs given to seed nodes. The same seed
// always yields the same IDs, so views hash to stable cache keys and
// --highlight can address a node across runs.
const idPrefix = "n"

// Layout builds the seed and lays it out with geometry g. It returns the
// laid-out forest, its view and the number of rows.
func Layout(s io.Seed, g layout.Geometry) (*tree.Forest, graph.View, int, error) {
	f, err := io.Build(s, tree.WithIDSource(tree.SequenceSource(idPrefix)))
	if err != nil {
		return nil, graph.View{}, 0, err
	}
	f, rows := layout.Recalculate(f)
	return f, graph.FromForest(f, g), rows, nil
}

// depth returns the deepest column in v.
func depth(v graph.View) int {
	d := 0
	for _, n := range v.Nodes {
		d = max(d, n.Col)
	}
	return d
}
