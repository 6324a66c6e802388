// Package pipeline turns a seed document into rendered artifacts.
//
// The pipeline has three stages:
//
//  1. Build: construct a forest from a seed
//  2. Layout: assign grid cells and pixel geometry
//  3. Render: produce SVG, PNG, DOT, JSON or a normalized seed
//
// The CLI runs all three with [Runner.Execute]. The HTTP server already
// holds a laid-out document and calls [Runner.Render] for the last stage
// only, so both share one cache and one set of cache keys.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, seed, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatJSON},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/layout"
)

// Output formats. JSON is the laid-out view; seed and toml re-export the
// normalized seed.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatSeed = "seed"
	FormatTOML = "toml"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true, FormatPNG: true, FormatDOT: true,
	FormatJSON: true, FormatSeed: true, FormatTOML: true,
}

// cachedFormats are the formats expensive enough to cache.
var cachedFormats = map[string]bool{FormatSVG: true, FormatPNG: true}

// ValidateFormat checks a single format name. Names are case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be svg, png, dot, json, seed or toml)", format)
	}
	return nil
}

// ValidateFormats checks every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options controls layout and rendering.
type Options struct {
	Formats  []string
	Geometry layout.Geometry

	// Title is written to the SVG <title> element.
	Title string
	// Highlight outlines one node in SVG output.
	Highlight string
	// Interactive adds hover styling to SVG output.
	Interactive bool
}

// withDefaults fills zero fields.
func (o Options) withDefaults() Options {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Geometry == (layout.Geometry{}) {
		o.Geometry = layout.DefaultGeometry()
	}
	return o
}

// Result holds everything produced by [Runner.Execute].
type Result struct {
	View      graph.View
	Artifacts map[string][]byte
	// Cached reports, per format, whether the artifact came from the cache.
	Cached map[string]bool
	Stats  Stats
}

// Stats describes the document and the time spent per stage.
type Stats struct {
	Nodes      int
	Rows       int
	Depth      int
	LayoutTime time.Duration
	RenderTime time.Duration
}
