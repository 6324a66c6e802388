package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/arbor/pkg/graph"
)

const (
	fontSize      = 14.0
	fontCharWidth = 0.55
	textPadding   = 8.0
	cutOpacity    = 0.4
)

const nodeInteractionCSS = `
    .node rect { transition: stroke-width 0.2s ease; }
    .node:hover rect { stroke-width: 3; }
    .node.cut { opacity: 0.4; }
    .node.cut rect { stroke-dasharray: 6 4; }`

// SVGOption configures [SVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	highlight   string
	interactive bool
	title       string
}

// WithHighlight outlines the node with the given ID, typically the node a
// context menu is open for.
func WithHighlight(id string) SVGOption { return func(r *svgRenderer) { r.highlight = id } }

// WithInteraction adds hover styling.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithTitle sets the document title element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// SVG renders v as a standalone SVG document.
func SVG(v graph.View, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		v.Width, v.Height, v.Width, v.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)
	}

	cut := make(map[string]bool, len(v.Nodes))
	for _, n := range v.Nodes {
		cut[n.ID] = n.Cut
	}
	for _, c := range v.Connectors {
		renderConnector(&buf, c, cut[c.ChildID])
	}
	for _, n := range v.Nodes {
		renderNode(&buf, n, n.ID == r.highlight)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderConnector(buf *bytes.Buffer, c graph.Connector, cut bool) {
	fmt.Fprintf(buf, `  <path class="connector" d="M %.1f %.1f L %.1f %.1f L %.1f %.1f" fill="none" stroke="#555" stroke-width="1.5"`,
		c.From.X, c.From.Y, c.Elbow.X, c.Elbow.Y, c.To.X, c.To.Y)
	if cut {
		fmt.Fprintf(buf, ` opacity="%.1f"`, cutOpacity)
	}
	buf.WriteString("/>\n")
}

func renderNode(buf *bytes.Buffer, n graph.Node, highlight bool) {
	class := "node"
	fill, stroke, width := "#fff", "#333", 1.5
	switch {
	case n.IsRoot():
		class += " root"
		fill, stroke, width = "#e8f0fe", "#1a73e8", 2
	case n.Cut:
		class += " cut"
	}
	if highlight {
		stroke, width = "#f29900", 3
	}

	fmt.Fprintf(buf, `  <g id="node-%s" class="%s"`, escapeXML(n.ID), class)
	if n.Cut {
		fmt.Fprintf(buf, ` opacity="%.1f"`, cutOpacity)
	}
	buf.WriteString(">\n")

	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="%s" stroke-width="%.1f"`,
		n.X, n.Y, n.Width, n.Height, fill, stroke, width)
	if n.Cut {
		buf.WriteString(` stroke-dasharray="6 4"`)
	}
	buf.WriteString("/>\n")

	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.0f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		n.X+n.Width/2, n.Y+n.Height/2, fontSize, escapeXML(truncateLabel(n.Label, n.Width)))
	buf.WriteString("  </g>\n")
}

// truncateLabel shortens label to what fits in a box of the given width.
func truncateLabel(label string, width float64) string {
	maxChars := max(3, int((width-2*textPadding)/(fontSize*fontCharWidth)))
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
