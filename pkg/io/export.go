package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// WriteJSON encodes s as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(s Seed, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes s as TOML and writes it to w.
// The output can be re-imported with [ReadTOML].
func WriteTOML(s Seed, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
