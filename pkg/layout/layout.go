package layout

import "github.com/matzehuels/arbor/pkg/tree"

type cell struct{ col, row int }

// Recalculate assigns Col and Row to every node of f and returns the new
// forest together with the next free row (equal to the node count).
func Recalculate(f *tree.Forest) (*tree.Forest, int) {
	cells := make(map[tree.ID]cell, f.Len())
	next := 0
	for _, id := range f.Roots() {
		next = place(f, id, 0, next, cells)
	}
	out := f.Rewrite(func(n tree.Node) tree.Node {
		c := cells[n.ID]
		n.Col, n.Row = c.col, c.row
		return n
	})
	return out, next
}

// place positions id at (col, row), lays out its children below it and
// returns the first row after the subtree.
func place(f *tree.Forest, id tree.ID, col, row int, cells map[tree.ID]cell) int {
	n, ok := f.Find(id)
	if !ok {
		return row
	}
	cells[id] = cell{col: col, row: row}
	next := row + 1
	for _, c := range n.Children {
		next = place(f, c, col+1, next, cells)
	}
	return next
}
