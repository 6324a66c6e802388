// Package editor orchestrates edits against a single document.
//
// A [Controller] owns the current laid-out forest, the clipboard and the
// ephemeral interaction state of a presentation layer (which node was
// targeted, which dialog is open, what has been typed so far). Every edit
// either applies completely, producing a new [Snapshot] with a higher
// revision, or is refused by a guard and leaves everything unchanged.
//
// # Edits
//
//	c := editor.New(tree.New())
//	a, _ := c.AddChild(tree.RootID, "Assets")
//	_ = c.Cut(a)
//	b, _ := c.AddChild(tree.RootID, "Archive")
//	_ = c.Paste(b) // Assets now lives under Archive
//
// Refusals are coded errors from package errors:
//
//	if err := c.Delete(tree.RootID); errors.Is(err, errors.ErrCodeRootProtected) {
//	    // nothing changed
//	}
//
// # Presentation
//
// Adapters read state through [Controller.Snapshot] and re-render when a
// [Controller.Subscribe] callback fires. [Controller.Actions] reports which
// context-menu entries are enabled for a node, derived from the same guards
// the edits use.
//
// The controller is not safe for concurrent use; adapters serialize access.
package editor
