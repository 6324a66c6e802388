package io

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arbor/pkg/errors"
)

// ReadJSON decodes a JSON seed from r. Unknown keys are rejected.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Seed, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var s Seed
	if err := dec.Decode(&s); err != nil {
		return Seed{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON seed")
	}
	return s, nil
}

// ReadTOML decodes a TOML seed from r. Unknown keys are rejected.
// ReadTOML does not close r.
func ReadTOML(r io.Reader) (Seed, error) {
	var s Seed
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Seed{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML seed")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Seed{}, errors.New(errors.ErrCodeInvalidFormat, "unknown keys in TOML seed: %s", strings.Join(keys, ", "))
	}
	return s, nil
}

// ImportSeed reads the seed file at path. The format is chosen by extension:
// ".json" or ".toml".
//
// The error is FILE_NOT_FOUND if path does not exist, INVALID_FORMAT for an
// unsupported extension or a decode failure, and INVALID_SEED if the seed
// fails validation.
func ImportSeed(path string) (Seed, error) {
	read, err := readerFor(path)
	if err != nil {
		return Seed{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Seed{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "seed %s", path)
		}
		return Seed{}, errors.Wrap(errors.ErrCodeInternal, err, "open seed %s", path)
	}
	defer f.Close()

	s, err := read(f)
	if err != nil {
		return Seed{}, err
	}
	if err := s.Validate(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

func readerFor(path string) (func(io.Reader) (Seed, error), error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ReadJSON, nil
	case ".toml":
		return ReadTOML, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported seed format %q (want .json or .toml)", ext)
	}
}
