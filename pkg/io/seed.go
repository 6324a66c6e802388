package io

import (
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// MaxSeedNodes bounds the size of an imported seed.
const MaxSeedNodes = 10000

// Seed is a nested document description.
type Seed struct {
	Label    string `json:"label" toml:"label"`
	Children []Seed `json:"children,omitempty" toml:"children,omitempty"`
}

// Len returns the number of nodes in s, counting s itself.
func (s Seed) Len() int {
	n := 1
	for _, c := range s.Children {
		n += c.Len()
	}
	return n
}

// Validate checks every label below the top level and the total size.
// The top-level label may be empty, in which case the root keeps its
// default label.
func (s Seed) Validate() error {
	if n := s.Len(); n > MaxSeedNodes {
		return errors.New(errors.ErrCodeInvalidSeed, "seed has %d nodes (max %d)", n, MaxSeedNodes)
	}
	if s.Label != "" {
		if err := errors.ValidateLabel(s.Label); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSeed, err, "root label")
		}
	}
	return validateChildren(s.Children, s.Label)
}

func validateChildren(children []Seed, path string) error {
	for i, c := range children {
		if err := errors.ValidateLabel(c.Label); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSeed, err, "%s child %d", path, i)
		}
		if err := validateChildren(c.Children, path+"/"+c.Label); err != nil {
			return err
		}
	}
	return nil
}

// Build validates s and creates a forest from it. opts are passed to
// tree.New; a non-empty seed label overrides WithRootLabel.
func Build(s Seed, opts ...tree.Option) (*tree.Forest, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Label != "" {
		opts = append(opts, tree.WithRootLabel(s.Label))
	}
	f := tree.New(opts...)
	return addSeeds(f, tree.RootID, s.Children), nil
}

func addSeeds(f *tree.Forest, parent tree.ID, children []Seed) *tree.Forest {
	for _, c := range children {
		var id tree.ID
		f, id = f.AddChild(parent, c.Label)
		f = addSeeds(f, id, c.Children)
	}
	return f
}

// ToSeed converts the tree below the root into a seed.
func ToSeed(f *tree.Forest) Seed {
	root, ok := f.Find(tree.RootID)
	if !ok {
		return Seed{}
	}
	return toSeed(f, root)
}

func toSeed(f *tree.Forest, n tree.Node) Seed {
	s := Seed{Label: n.Label}
	for _, c := range f.Children(n.ID) {
		s.Children = append(s.Children, toSeed(f, c))
	}
	return s
}
