package editor

import (
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Dialog is the modal surface currently open.
type Dialog int

const (
	DialogNone Dialog = iota
	DialogMenu
	DialogAddChild
)

func (d Dialog) String() string {
	switch d {
	case DialogMenu:
		return "menu"
	case DialogAddChild:
		return "add_child"
	default:
		return "none"
	}
}

// Interaction is the ephemeral state of a presentation layer. It never
// affects the document; closing a dialog discards it.
type Interaction struct {
	Target       tree.ID
	Dialog       Dialog
	PendingLabel string
}

// ActionSet reports which context-menu entries are enabled for a node.
type ActionSet struct {
	AddChild bool `json:"add_child"`
	Cut      bool `json:"cut"`
	Copy     bool `json:"copy"`
	Paste    bool `json:"paste"`
	Delete   bool `json:"delete"`
}

// OpenMenu targets id and opens its context menu.
func (c *Controller) OpenMenu(id tree.ID) error {
	if !c.doc.Has(id) {
		return errNotFound(id)
	}
	c.ui = Interaction{Target: id, Dialog: DialogMenu}
	return nil
}

// CloseMenu clears the interaction state.
func (c *Controller) CloseMenu() { c.ui = Interaction{} }

// BeginAddChild opens the add-child dialog for id with an empty label.
func (c *Controller) BeginAddChild(id tree.ID) error {
	if !c.doc.Has(id) {
		return errNotFound(id)
	}
	c.ui = Interaction{Target: id, Dialog: DialogAddChild}
	return nil
}

// SetPendingLabel records the label typed so far. It is ignored unless the
// add-child dialog is open.
func (c *Controller) SetPendingLabel(text string) {
	if c.ui.Dialog == DialogAddChild {
		c.ui.PendingLabel = text
	}
}

// CancelAddChild closes the add-child dialog without changing the document.
func (c *Controller) CancelAddChild() { c.ui = Interaction{} }

// ConfirmAddChild adds the pending label under the dialog's target.
func (c *Controller) ConfirmAddChild() (tree.ID, error) {
	if c.ui.Dialog != DialogAddChild {
		return "", errors.New(errors.ErrCodeInvalidInput, "add-child dialog is not open")
	}
	return c.AddChild(c.ui.Target, c.ui.PendingLabel)
}

// Actions returns the enabled edits for id. Unknown IDs enable nothing.
func (c *Controller) Actions(id tree.ID) ActionSet {
	if !c.doc.Has(id) {
		return ActionSet{}
	}
	movable := id != tree.RootID
	return ActionSet{
		AddChild: true,
		Cut:      movable,
		Copy:     movable,
		Paste:    c.clip.CanPaste(c.doc, id) == nil,
		Delete:   c.canDelete(id) == nil,
	}
}
