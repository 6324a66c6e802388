package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// View Serialization API
// =============================================================================

// MarshalView converts a view to indented JSON bytes.
func MarshalView(v View) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeViewTo(v, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalView deserializes JSON bytes to a View.
func UnmarshalView(data []byte) (View, error) {
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, err
	}
	return v, nil
}

// WriteViewFile writes a view to a JSON file.
// The file is created with 0644 permissions.
func WriteViewFile(v View, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeViewTo(v, f)
}

// WriteView writes a view as JSON to an io.Writer.
// Use MarshalView for in-memory serialization or WriteViewFile for files.
func WriteView(v View, w io.Writer) error {
	return writeViewTo(v, w)
}

// ReadViewFile reads a JSON file and returns the decoded view.
func ReadViewFile(path string) (View, error) {
	f, err := os.Open(path)
	if err != nil {
		return View{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readViewFrom(f)
}

// ReadView decodes a JSON view from an io.Reader.
func ReadView(r io.Reader) (View, error) {
	return readViewFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeViewTo(v View, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readViewFrom(r io.Reader) (View, error) {
	var v View
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return View{}, fmt.Errorf("decode: %w", err)
	}
	return v, nil
}
