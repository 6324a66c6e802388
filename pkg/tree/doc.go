// Package tree provides the in-memory node hierarchy edited by Arbor.
//
// # Overview
//
// A [Forest] is an immutable snapshot of an ordered, labeled tree (in practice
// a single tree whose root has the fixed ID [RootID]). Nodes live in an index
// keyed by [ID]; parent/child relations are expressed as ID lists, so a
// mutation only copies the nodes it touches.
//
// Every operation returns a new *Forest and leaves the receiver untouched:
//
//	f := tree.New()
//	f2, a := f.AddChild(tree.RootID, "Assets")
//	f3, _ := f2.AddChild(a, "Cash")
//	// f and f2 still describe their original shapes
//
// # Failure Semantics
//
// Nothing in this package returns an error. Unknown IDs, empty labels and
// structurally impossible requests (moving a node under its own descendant)
// degrade to a no-op that returns the receiver unchanged. Callers that need
// to explain a refusal check the guard themselves; see package editor.
//
// # Identifiers
//
// New nodes get IDs from the forest's [IDSource]. The default is a random
// UUID; [SequenceSource] yields predictable IDs for tests and examples.
//
// # Concurrency
//
// A Forest is safe for concurrent reads because it is never mutated after
// construction. The ID source must be safe for concurrent use if snapshots
// sharing it are edited from several goroutines.
package tree
