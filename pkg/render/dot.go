package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arbor/pkg/graph"
)

// Format is a Graphviz output format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// DOT converts v to Graphviz DOT source. Nodes are emitted in pre-order and
// ordering=out keeps siblings in document order.
func DOT(v graph.View) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"sans-serif\", fontsize=14];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range v.Nodes {
		attrs := fmt.Sprintf("label=%q", n.Label)
		switch {
		case n.IsRoot():
			attrs += `, fillcolor="#e8f0fe", color="#1a73e8", penwidth=2`
		case n.Cut:
			attrs += `, style="rounded,filled,dashed", fontcolor=gray50, color=gray50`
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, attrs)
	}

	buf.WriteString("\n")
	for _, c := range v.Connectors {
		fmt.Fprintf(&buf, "  %q -> %q;\n", c.ParentID, c.ChildID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT renders DOT source with the embedded Graphviz.
func RenderDOT(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// by its viewBox so the output scales like [SVG].
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
