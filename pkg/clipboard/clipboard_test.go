package clipboard

import (
	"slices"
	"testing"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// fixture builds root → a → a1, root → b.
func fixture(t *testing.T) (*tree.Forest, tree.ID, tree.ID, tree.ID) {
	t.Helper()
	f := tree.New(tree.WithIDSource(tree.SequenceSource("n")))
	f, a := f.AddChild(tree.RootID, "A")
	f, a1 := f.AddChild(a, "A1")
	f, b := f.AddChild(tree.RootID, "B")
	return f, a, a1, b
}

func childIDs(f *tree.Forest, id tree.ID) []tree.ID {
	n, _ := f.Find(id)
	return n.Children
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeEmpty, ""},
		{ModeCut, "cut"},
		{ModeCopy, "copy"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestCutPastePreservesID(t *testing.T) {
	f, a, a1, b := fixture(t)
	var c Clipboard

	c, f, err := c.Cut(f, a)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if c.Mode() != ModeCut || c.NodeID() != a {
		t.Fatalf("clipboard = %v/%s", c.Mode(), c.NodeID())
	}
	for _, id := range []tree.ID{a, a1} {
		n, _ := f.Find(id)
		if !n.Cut {
			t.Errorf("%s should be flagged cut", n.Label)
		}
	}
	// Staged, not moved.
	if !slices.Contains(childIDs(f, tree.RootID), a) {
		t.Fatal("cut must not move the node before paste")
	}

	c, f, err = c.Paste(f, b)
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if !c.Empty() {
		t.Error("clipboard should be empty after paste")
	}
	n, ok := f.Find(a)
	if !ok {
		t.Fatal("moved node lost its id")
	}
	if n.ParentID != b || n.Cut {
		t.Errorf("moved node parent=%s cut=%v", n.ParentID, n.Cut)
	}
	if child, _ := f.Find(a1); child.Cut {
		t.Error("descendant still flagged cut")
	}
	if slices.Contains(childIDs(f, tree.RootID), a) {
		t.Error("node still under its old parent")
	}
	if !slices.Equal(childIDs(f, b), []tree.ID{a}) {
		t.Errorf("new parent children = %v", childIDs(f, b))
	}
}

func TestCopyPasteProducesNewIDs(t *testing.T) {
	f, a, a1, b := fixture(t)
	var c Clipboard

	c, g, err := c.Copy(f, a)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if g != f {
		t.Error("copy must not change the document")
	}

	c, g, err = c.Paste(g, b)
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if !c.Empty() {
		t.Error("clipboard should be empty after paste")
	}

	pasted := g.Children(b)
	if len(pasted) != 1 {
		t.Fatalf("b has %d children, want 1", len(pasted))
	}
	clone, _ := g.Subtree(pasted[0].ID)
	if clone.Len() != 2 || clone.Nodes[0].Label != "A" || clone.Nodes[1].Label != "A1" {
		t.Errorf("clone shape = %+v", clone.Nodes)
	}
	for _, id := range clone.IDs() {
		if id == a || id == a1 {
			t.Errorf("clone reused original id %s", id)
		}
	}
	if orig, _ := g.Find(a); orig.ParentID != tree.RootID {
		t.Error("original must stay in place")
	}

	// Single-use buffer.
	if _, h, err := c.Paste(g, b); !errors.Is(err, errors.ErrCodeClipboardEmpty) || h != g {
		t.Errorf("second paste err = %v", err)
	}
}

func TestCopyUsesCopyTimeSnapshot(t *testing.T) {
	f, a, _, b := fixture(t)
	c, f, _ := Clipboard{}.Copy(f, a)

	// Edit the original after copying.
	f, _ = f.AddChild(a, "Late")

	_, f, err := c.Paste(f, b)
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	pasted := f.Children(b)[0]
	sub, _ := f.Subtree(pasted.ID)
	if sub.Len() != 2 {
		t.Errorf("pasted %d nodes, want the 2 present at copy time", sub.Len())
	}
}

func TestCopyOfDeletedNodeStillPastes(t *testing.T) {
	f, _, a1, b := fixture(t)
	c, f, _ := Clipboard{}.Copy(f, a1)
	f = f.RemoveSubtree(a1)
	c = c.Prune(f)

	if c.Empty() {
		t.Fatal("Prune must keep copies")
	}
	_, f, err := c.Paste(f, b)
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if got := f.Children(b); len(got) != 1 || got[0].Label != "A1" {
		t.Errorf("b children = %+v", got)
	}
}

func TestNewCutReplacesOld(t *testing.T) {
	f, a, a1, b := fixture(t)
	c, f, _ := Clipboard{}.Cut(f, a)
	c, f, _ = c.Cut(f, b)

	for _, id := range []tree.ID{a, a1} {
		if n, _ := f.Find(id); n.Cut {
			t.Errorf("%s still flagged after a new cut", n.Label)
		}
	}
	if n, _ := f.Find(b); !n.Cut {
		t.Error("b should be flagged")
	}

	c, f, _ = c.Copy(f, a1)
	if n, _ := f.Find(b); n.Cut {
		t.Error("copy should unflag the previous cut")
	}
	if c.Mode() != ModeCopy {
		t.Errorf("mode = %v, want copy", c.Mode())
	}
}

func TestGuards(t *testing.T) {
	f, a, a1, _ := fixture(t)
	cut, fc, _ := Clipboard{}.Cut(f, a)
	cpy, _, _ := Clipboard{}.Copy(f, a)

	tests := []struct {
		name string
		run  func() (Clipboard, *tree.Forest, error)
		in   Clipboard
		doc  *tree.Forest
		code errors.Code
	}{
		{"cut root", func() (Clipboard, *tree.Forest, error) { return Clipboard{}.Cut(f, tree.RootID) }, Clipboard{}, f, errors.ErrCodeRootProtected},
		{"copy root", func() (Clipboard, *tree.Forest, error) { return Clipboard{}.Copy(f, tree.RootID) }, Clipboard{}, f, errors.ErrCodeRootProtected},
		{"cut unknown", func() (Clipboard, *tree.Forest, error) { return Clipboard{}.Cut(f, "missing") }, Clipboard{}, f, errors.ErrCodeNodeNotFound},
		{"copy unknown", func() (Clipboard, *tree.Forest, error) { return Clipboard{}.Copy(f, "missing") }, Clipboard{}, f, errors.ErrCodeNodeNotFound},
		{"paste empty", func() (Clipboard, *tree.Forest, error) { return Clipboard{}.Paste(f, a) }, Clipboard{}, f, errors.ErrCodeClipboardEmpty},
		{"paste unknown target", func() (Clipboard, *tree.Forest, error) { return cpy.Paste(f, "missing") }, cpy, f, errors.ErrCodeNodeNotFound},
		{"paste copy into itself", func() (Clipboard, *tree.Forest, error) { return cpy.Paste(f, a) }, cpy, f, errors.ErrCodeSelfPaste},
		{"paste cut into itself", func() (Clipboard, *tree.Forest, error) { return cut.Paste(fc, a) }, cut, fc, errors.ErrCodeSelfPaste},
		{"paste cut into descendant", func() (Clipboard, *tree.Forest, error) { return cut.Paste(fc, a1) }, cut, fc, errors.ErrCodeCyclicPaste},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, g, err := tt.run()
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want code %s", err, tt.code)
			}
			if g != tt.doc {
				t.Error("document changed on refusal")
			}
			if c != tt.in {
				t.Error("clipboard changed on refusal")
			}
		})
	}
}

func TestCopyPasteIntoDescendant(t *testing.T) {
	f, a, a1, _ := fixture(t)
	c, f, _ := Clipboard{}.Copy(f, a)
	_, f, err := c.Paste(f, a1)
	if err != nil {
		t.Fatalf("copying a subtree under its own descendant should work: %v", err)
	}
	if got := f.Children(a1); len(got) != 1 || got[0].Label != "A" {
		t.Errorf("a1 children = %+v", got)
	}
}

func TestCutPasteSameParent(t *testing.T) {
	f, a, _, b := fixture(t)
	c, f, _ := Clipboard{}.Cut(f, a)
	_, f, err := c.Paste(f, tree.RootID)
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if got := childIDs(f, tree.RootID); !slices.Equal(got, []tree.ID{b, a}) {
		t.Errorf("root children = %v, want [b a]", got)
	}
}

func TestPruneCut(t *testing.T) {
	f, _, a1, _ := fixture(t)
	c, f, _ := Clipboard{}.Cut(f, a1)

	if got := c.Prune(f); got.Empty() {
		t.Error("Prune dropped a live cut")
	}
	if got := c.Prune(f.RemoveSubtree(a1)); !got.Empty() {
		t.Error("Prune should drop a cut whose node was removed")
	}
}
