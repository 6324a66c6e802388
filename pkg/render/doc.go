// Package render draws laid-out documents.
//
// # Overview
//
// Renderers consume a [graph.View], so anything that can produce a view (the
// editor, a seed file, a saved JSON export) can be drawn the same way.
//
//   - [SVG]: boxes on the column/row grid with elbow connectors
//   - [DOT]: Graphviz source for the same tree
//   - [RenderDOT]: rasterize or vectorize DOT in-process
//
// # SVG
//
// Boxes are drawn at the positions the view carries. The root is
// highlighted, nodes staged for a cut are dimmed with a dashed border, and
// labels that do not fit are truncated with "..":
//
//	svg := render.SVG(view, render.WithHighlight(targetID))
//
// # Graphviz
//
// [DOT] emits a left-to-right digraph that preserves sibling order.
// [RenderDOT] uses [github.com/goccy/go-graphviz], which embeds Graphviz
// as WebAssembly, so no system binaries are required:
//
//	png, err := render.RenderDOT(ctx, render.DOT(view), render.FormatPNG)
//
// [graph.View]: github.com/matzehuels/arbor/pkg/graph.View
package render
