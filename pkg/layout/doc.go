// Package layout assigns grid coordinates to document nodes and derives the
// geometry used to draw them.
//
// # Grid Assignment
//
// [Recalculate] is a single depth-first, pre-order pass:
//
//   - top-level nodes sit in column 0, children one column right of their parent
//   - a shared row counter hands each visited node the next row
//
// A node's subtree therefore occupies a contiguous block of rows directly
// below it, and sibling subtrees never overlap. The pass is a pure function
// of shape and child order, so running it twice yields identical coordinates.
//
// # Geometry
//
// [Geometry] turns grid cells into pixels. [Boxes] places fixed-size boxes at
// Col*ColumnSpacing, Row*RowSpacing (plus margin) and [Connectors] derives
// one elbow line per parent/child pair:
//
//	┌────────┐
//	│ parent │
//	└─┬──────┘
//	  │   ┌───────┐
//	  └──▶│ child │
//	      └───────┘
package layout
