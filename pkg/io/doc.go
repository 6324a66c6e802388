// Package io reads seed documents and writes document structure.
//
// # Overview
//
// A seed is a nested description of a starting document. Arbor is an
// in-memory editor; a seed only decides what the document looks like when
// a session starts.
//
// # Formats
//
// JSON:
//
//	{
//	  "label": "Accounts",
//	  "children": [
//	    {"label": "Assets", "children": [{"label": "Cash"}]},
//	    {"label": "Liabilities"}
//	  ]
//	}
//
// TOML:
//
//	label = "Accounts"
//
//	[[children]]
//	label = "Assets"
//
//	  [[children.children]]
//	  label = "Cash"
//
//	[[children]]
//	label = "Liabilities"
//
// The top-level object is the root: its label replaces the root label and
// its children become the root's children. Unknown keys are rejected.
//
// # Import
//
// Use [ImportSeed] to read a file (format chosen by extension) or
// [ReadJSON]/[ReadTOML] for any io.Reader, then [Build] to create a forest:
//
//	s, err := io.ImportSeed("accounts.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f, err := io.Build(s)
//
// # Export
//
// [ToSeed] converts a forest back into a seed, and [WriteJSON]/[WriteTOML]
// encode it. IDs, cut flags and layout are not part of a seed.
package io
