// Package graph provides the serialization types for laid-out documents.
//
// This package defines the canonical wire format for Arbor's document data,
// used for the HTTP API, JSON exports, render cache keys and the renderers.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [View]: Serialization type (this package)
//   - pkg/tree.Forest: Internal document representation
//   - pkg/layout.Box, pkg/layout.Connector: Internal geometry
//
// Use [FromForest] or [FromSnapshot] to build a View, and the Marshal/Write/
// Read functions to move it across process boundaries.
//
// # View Serialization
//
// A view lists every node in pre-order with its grid cell and pixel box,
// followed by one connector per parent/child pair:
//
//	{
//	  "revision": 3,
//	  "width": 370, "height": 136,
//	  "nodes": [
//	    {"id": "root", "label": "Root", "children": ["n1"], "col": 0, "row": 0,
//	     "x": 20, "y": 20, "width": 150, "height": 40},
//	    {"id": "n1", "label": "Cash", "parent_id": "root", "col": 1, "row": 1, ...}
//	  ],
//	  "connectors": [
//	    {"parent_id": "root", "child_id": "n1",
//	     "from": {"x": 65, "y": 60}, "elbow": {"x": 65, "y": 96}, "to": {"x": 200, "y": 96}}
//	  ],
//	  "clipboard": {"mode": "cut", "node_id": "n1"}
//	}
//
// Common operations:
//
//	v := graph.FromSnapshot(ctrl.Snapshot(), layout.DefaultGeometry())
//	data, _ := graph.MarshalView(v)             // View → []byte
//	graph.WriteViewFile(v, "document.json")     // View → File
//	parsed, _ := graph.ReadViewFile("doc.json") // File → View
//
// # Concurrency
//
// Views are plain values. All functions are safe for concurrent use.
package graph
