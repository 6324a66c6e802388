// Package clipboard implements the single-slot cut/copy buffer.
//
// A [Clipboard] is an immutable value in one of three states: empty,
// holding a cut, or holding a copy. Transitions return a new Clipboard and,
// where the document changes (cut flags, pasted nodes), a new forest. A
// refused transition returns the receiver and the input forest unchanged
// together with a coded error from package errors.
//
// Cut stages a node in place: the subtree is flagged Cut but only moves on
// paste, keeping its IDs. Copy remembers the forest snapshot taken at copy
// time; pasting clones the subtree as it looked then, with fresh IDs.
// A successful paste empties the clipboard.
package clipboard

import (
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Mode is the clipboard state.
type Mode int

const (
	// ModeEmpty means nothing is held.
	ModeEmpty Mode = iota
	// ModeCut means a node is staged for a move.
	ModeCut
	// ModeCopy means a node is held for duplication.
	ModeCopy
)

// String returns "cut", "copy" or "" for the empty clipboard.
func (m Mode) String() string {
	switch m {
	case ModeCut:
		return "cut"
	case ModeCopy:
		return "copy"
	default:
		return ""
	}
}

// Clipboard is the single-slot buffer. The zero value is empty.
type Clipboard struct {
	mode   Mode
	node   tree.ID
	source *tree.Forest // copy-time snapshot, ModeCopy only
}

// Mode returns the current state.
func (c Clipboard) Mode() Mode { return c.mode }

// NodeID returns the held node, or "" if empty.
func (c Clipboard) NodeID() tree.ID { return c.node }

// Empty reports whether nothing is held.
func (c Clipboard) Empty() bool { return c.mode == ModeEmpty }

// Cut stages id for a move. Any previously staged cut is unflagged.
func (c Clipboard) Cut(f *tree.Forest, id tree.ID) (Clipboard, *tree.Forest, error) {
	if err := checkSource(f, id, "cut"); err != nil {
		return c, f, err
	}
	g := c.unstage(f).MarkSubtreeCut(id)
	return Clipboard{mode: ModeCut, node: id}, g, nil
}

// Copy holds id for duplication. The original is not flagged; any
// previously staged cut is unflagged.
func (c Clipboard) Copy(f *tree.Forest, id tree.ID) (Clipboard, *tree.Forest, error) {
	if err := checkSource(f, id, "copy"); err != nil {
		return c, f, err
	}
	g := c.unstage(f)
	return Clipboard{mode: ModeCopy, node: id, source: g}, g, nil
}

// Paste appends the held node under target and empties the clipboard.
//
// In copy mode a fresh-ID clone of the copy-time subtree is attached.
// In cut mode the node itself is moved, its cut flags cleared. Pasting under
// the node's current parent moves it to the end of its siblings.
func (c Clipboard) Paste(f *tree.Forest, target tree.ID) (Clipboard, *tree.Forest, error) {
	if err := c.CanPaste(f, target); err != nil {
		return c, f, err
	}

	switch c.mode {
	case ModeCopy:
		sub, ok := f.CloneSubtreeFrom(c.source, c.node)
		if !ok {
			return c, f, errors.New(errors.ErrCodeNodeNotFound, "copied node %s no longer available", c.node)
		}
		return Clipboard{}, f.Graft(target, sub), nil
	default:
		g := f.ClearSubtreeCutFlags(c.node).Move(c.node, target)
		return Clipboard{}, g, nil
	}
}

// CanPaste reports why pasting under target would be refused, or nil.
func (c Clipboard) CanPaste(f *tree.Forest, target tree.ID) error {
	if c.Empty() {
		return errors.New(errors.ErrCodeClipboardEmpty, "clipboard is empty")
	}
	if !f.Has(target) {
		return errors.New(errors.ErrCodeNodeNotFound, "paste target %s not found", target)
	}
	if target == c.node {
		return errors.New(errors.ErrCodeSelfPaste, "cannot paste %s into itself", target)
	}
	if c.mode == ModeCut {
		if !f.Has(c.node) {
			return errors.New(errors.ErrCodeNodeNotFound, "cut node %s no longer exists", c.node)
		}
		if f.IsAncestor(c.node, target) {
			return errors.New(errors.ErrCodeCyclicPaste, "cannot move %s under its own descendant %s", c.node, target)
		}
	}
	return nil
}

// Prune drops a held cut whose node is no longer part of f.
// Copies survive because they paste from their own snapshot.
func (c Clipboard) Prune(f *tree.Forest) Clipboard {
	if c.mode == ModeCut && !f.Has(c.node) {
		return Clipboard{}
	}
	return c
}

// unstage clears the cut flags of a previously staged cut.
func (c Clipboard) unstage(f *tree.Forest) *tree.Forest {
	if c.mode != ModeCut {
		return f
	}
	return f.ClearSubtreeCutFlags(c.node)
}

func checkSource(f *tree.Forest, id tree.ID, op string) error {
	if id == tree.RootID {
		return errors.New(errors.ErrCodeRootProtected, "cannot %s the root", op)
	}
	if !f.Has(id) {
		return errors.New(errors.ErrCodeNodeNotFound, "node %s not found", id)
	}
	return nil
}
