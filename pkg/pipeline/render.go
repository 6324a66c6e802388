package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/render"
)

// Render produces one artifact without consulting a cache. The seed is only
// used by the seed and toml formats.
func Render(ctx context.Context, v graph.View, s io.Seed, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.SVG(v, svgOptions(opts)...), nil
	case FormatPNG:
		return render.RenderDOT(ctx, render.DOT(v), render.FormatPNG)
	case FormatDOT:
		return []byte(render.DOT(v)), nil
	case FormatJSON:
		return graph.MarshalView(v)
	case FormatSeed:
		var buf bytes.Buffer
		if err := io.WriteJSON(s, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := io.WriteTOML(s, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func svgOptions(opts Options) []render.SVGOption {
	var out []render.SVGOption
	if opts.Title != "" {
		out = append(out, render.WithTitle(opts.Title))
	}
	if opts.Highlight != "" {
		out = append(out, render.WithHighlight(opts.Highlight))
	}
	if opts.Interactive {
		out = append(out, render.WithInteraction())
	}
	return out
}
