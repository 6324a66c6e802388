// Package pkg provides the core libraries for Arbor, an editor for labeled
// ordered trees.
//
// # Overview
//
// Arbor keeps one document, a rooted tree of labeled nodes, and lays it out
// on a grid where a node's column is its depth and its row is its position
// in a pre-order walk. Nodes are edited through a context menu: add a child,
// cut, copy, paste and delete. The pkg directory is organized into four
// areas:
//
//  1. Domain: [tree], [layout], [clipboard] and [editor]
//  2. Serialization: [graph] for laid-out views, [io] for seed documents
//  3. Output: [render] and [pipeline]
//  4. Infrastructure: [cache], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow through Arbor:
//
//	Seed file (JSON or TOML)
//	         ↓
//	    [io] package (validate and build a forest)
//	         ↓
//	    [editor] package (guarded edits, clipboard, relayout)
//	         ↓
//	    [graph] package (positioned view)
//	         ↓
//	    [render] package (SVG, DOT, PNG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/arbor/pkg/editor"
//	    "github.com/matzehuels/arbor/pkg/graph"
//	    "github.com/matzehuels/arbor/pkg/layout"
//	    "github.com/matzehuels/arbor/pkg/render"
//	    "github.com/matzehuels/arbor/pkg/tree"
//	)
//
//	c := editor.New(tree.New())
//	assets, _ := c.AddChild(tree.RootID, "Assets")
//	_, _ = c.AddChild(assets, "Cash")
//
//	view := graph.FromSnapshot(c.Snapshot(), layout.DefaultGeometry())
//	svg := render.SVG(view)
//
// # Main Packages
//
// [tree] - Immutable forest of labeled nodes. Every edit returns a new
// forest and leaves the receiver untouched.
//
// [layout] - Grid placement (column = depth, row = pre-order index) and the
// pixel geometry derived from it.
//
// [clipboard] - A single staged cut or copy. Copies paste from a snapshot
// taken at copy time.
//
// [editor] - The edit controller: guards, revisions, subscriptions and the
// context-menu interaction state.
//
// [pipeline] - Seed → layout → render with caching, shared by the CLI and
// the HTTP server.
//
// [cache] - Render cache backends: none, memory, file and Redis.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -run Example ./pkg/...       # Examples only
//	ARBOR_TEST_REDIS_ADDR=localhost:6379 go test ./pkg/cache
package pkg
