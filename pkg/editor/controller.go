package editor

import (
	"time"

	"github.com/matzehuels/arbor/pkg/clipboard"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Op names an edit for hooks and logs.
type Op string

const (
	OpAddChild Op = "add_child"
	OpCut      Op = "cut"
	OpCopy     Op = "copy"
	OpPaste    Op = "paste"
	OpDelete   Op = "delete"
)

// Snapshot is an immutable view of the controller state.
type Snapshot struct {
	Forest      *tree.Forest
	Clipboard   clipboard.Clipboard
	Revision    uint64
	Rows        int
	Interaction Interaction
}

// Controller applies edits to one document. Create it with [New].
type Controller struct {
	doc  *tree.Forest
	clip clipboard.Clipboard
	rev  uint64
	rows int
	ui   Interaction

	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// New returns a controller editing f, laid out. A nil forest starts from
// an empty document holding only the root.
func New(f *tree.Forest) *Controller {
	if f == nil {
		f = tree.New()
	}
	c := &Controller{}
	c.doc, c.rows = c.relayout(f)
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Forest:      c.doc,
		Clipboard:   c.clip,
		Revision:    c.rev,
		Rows:        c.rows,
		Interaction: c.ui,
	}
}

// Subscribe registers fn to be called with the new snapshot after every
// applied edit. The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// AddChild appends a child labeled label under target and returns its ID.
// The add-child dialog is closed and the pending label cleared; on an
// invalid label the dialog stays open.
func (c *Controller) AddChild(target tree.ID, label string) (tree.ID, error) {
	if err := errors.ValidateLabel(label); err != nil {
		return "", c.refuse(OpAddChild, target, err)
	}
	parent, ok := c.doc.Find(target)
	if !ok {
		return "", c.refuse(OpAddChild, target, errNotFound(target))
	}

	doc, id := c.doc.AddChild(target, label)
	// Children added inside a staged cut move with it.
	if parent.Cut {
		doc = doc.MarkSubtreeCut(id)
	}
	c.ui = Interaction{}
	c.commit(OpAddChild, target, doc, c.clip, true)
	return id, nil
}

// Cut stages id for a move. The document structure is unchanged until
// [Controller.Paste].
func (c *Controller) Cut(id tree.ID) error {
	clip, doc, err := c.clip.Cut(c.doc, id)
	if err != nil {
		return c.refuse(OpCut, id, err)
	}
	c.ui = Interaction{}
	c.commit(OpCut, id, doc, clip, false)
	return nil
}

// Copy holds id for duplication.
func (c *Controller) Copy(id tree.ID) error {
	clip, doc, err := c.clip.Copy(c.doc, id)
	if err != nil {
		return c.refuse(OpCopy, id, err)
	}
	c.ui = Interaction{}
	c.commit(OpCopy, id, doc, clip, false)
	return nil
}

// Paste appends the clipboard contents under target.
func (c *Controller) Paste(target tree.ID) error {
	clip, doc, err := c.clip.Paste(c.doc, target)
	if err != nil {
		return c.refuse(OpPaste, target, err)
	}
	c.ui = Interaction{}
	c.commit(OpPaste, target, doc, clip, true)
	return nil
}

// Delete removes the leaf id. The root and nodes with children cannot be
// deleted. Deleting a staged cut empties the clipboard.
func (c *Controller) Delete(id tree.ID) error {
	if err := c.canDelete(id); err != nil {
		return c.refuse(OpDelete, id, err)
	}
	doc := c.doc.RemoveSubtree(id)
	c.ui = Interaction{}
	c.commit(OpDelete, id, doc, c.clip.Prune(doc), true)
	return nil
}

func (c *Controller) canDelete(id tree.ID) error {
	if id == tree.RootID {
		return errors.New(errors.ErrCodeRootProtected, "cannot delete the root")
	}
	n, ok := c.doc.Find(id)
	if !ok {
		return errNotFound(id)
	}
	if !n.IsLeaf() {
		return errors.New(errors.ErrCodeHasChildren, "node %s has %d children", id, len(n.Children))
	}
	return nil
}

// commit installs a new document and clipboard, relaying out when the
// structure changed, and notifies subscribers.
func (c *Controller) commit(op Op, target tree.ID, doc *tree.Forest, clip clipboard.Clipboard, structural bool) {
	if structural {
		doc, c.rows = c.relayout(doc)
	}
	c.doc, c.clip = doc, clip
	c.rev++
	observability.Editor().OnEdit(string(op), string(target), true, nil)

	snap := c.Snapshot()
	for _, s := range c.subs {
		s.fn(snap)
	}
}

func (c *Controller) refuse(op Op, target tree.ID, err error) error {
	observability.Editor().OnEdit(string(op), string(target), false, err)
	return err
}

func (c *Controller) relayout(f *tree.Forest) (*tree.Forest, int) {
	start := time.Now()
	out, rows := layout.Recalculate(f)
	observability.Editor().OnLayout(out.Len(), rows, time.Since(start))
	return out, rows
}

func errNotFound(id tree.ID) error {
	return errors.New(errors.ErrCodeNodeNotFound, "node %s not found", id)
}
