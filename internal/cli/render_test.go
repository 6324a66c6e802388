package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/graph"
	arborio "github.com/matzehuels/arbor/pkg/io"
)

const ledgerTOML = `label = "Ledger"

[[children]]
label = "Assets"

[[children.children]]
label = "Cash"

[[children]]
label = "Liabilities"
`

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.toml")
	if err := os.WriteFile(path, []byte(ledgerTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCLI() (*CLI, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, log.DebugLevel), &buf
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg, png,dot", []string{"svg", "png", "dot"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		format string
		single bool
		want   string
	}{
		{"derived", "", "svg", true, "docs/ledger.svg"},
		{"explicit single", "out/tree.svg", "svg", true, "out/tree.svg"},
		{"explicit base", "out/tree.svg", "png", false, "out/tree.png"},
		{"seed extension", "", "seed", false, "docs/ledger.seed.json"},
		{"unknown extension kept", "out/tree.v2", "dot", false, "out/tree.v2.dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, "docs/ledger.toml", tt.format, tt.single); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunRender(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeSeed(t)
	base := strings.TrimSuffix(input, ".toml")
	c, logs := testCLI()

	opts := renderOpts{formats: []string{"svg", "json", "dot", "seed"}}
	if err := c.runRender(context.Background(), input, opts); err != nil {
		t.Fatalf("runRender: %v\n%s", err, logs)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<title>Ledger</title>")) {
		t.Error("svg missing title")
	}

	v, err := graph.ReadViewFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Nodes) != 4 || v.Nodes[0].Label != "Ledger" || v.Nodes[2].Label != "Cash" || v.Nodes[2].Col != 2 {
		t.Errorf("view nodes = %+v", v.Nodes)
	}

	dot, _ := os.ReadFile(base + ".dot")
	if !strings.HasPrefix(string(dot), "digraph G {") {
		t.Errorf("dot = %q", dot)
	}

	seed, err := arborio.ImportSeed(base + ".seed.json")
	if err != nil {
		t.Fatal(err)
	}
	if seed.Len() != 4 || seed.Children[0].Children[0].Label != "Cash" {
		t.Errorf("seed round trip = %+v", seed)
	}
}

func TestRunRenderUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeSeed(t)
	c, logs := testCLI()
	setLogHooks(t, c)

	opts := renderOpts{formats: []string{"svg"}}
	for range 2 {
		if err := c.runRender(context.Background(), input, opts); err != nil {
			t.Fatal(err)
		}
	}
	if !strings.Contains(logs.String(), "cache hit") {
		t.Errorf("second render should hit the cache:\n%s", logs)
	}

	dir, _ := cacheDir()
	if n, _ := clearDir(dir); n != 1 {
		t.Errorf("cache entries = %d, want 1", n)
	}
}

func TestRunRenderRefusesOverwrite(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeSeed(t)
	c, _ := testCLI()

	err := c.runRender(context.Background(), input, renderOpts{formats: []string{"svg", "toml"}, noCache: true})
	if err == nil || !strings.Contains(err.Error(), "overwrite") {
		t.Errorf("err = %v, want overwrite refusal", err)
	}
}

func TestRunRenderMissingSeed(t *testing.T) {
	c, _ := testCLI()
	err := c.runRender(context.Background(), filepath.Join(t.TempDir(), "nope.json"), renderOpts{formats: []string{"svg"}, noCache: true})
	if err == nil {
		t.Error("missing seed should fail")
	}
}
