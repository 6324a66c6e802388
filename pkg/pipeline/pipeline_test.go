package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/graph"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/layout"
)

func ledger() arborio.Seed {
	return arborio.Seed{
		Label: "Ledger",
		Children: []arborio.Seed{
			{Label: "Assets", Children: []arborio.Seed{{Label: "Cash"}}},
			{Label: "Liabilities"},
		},
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		formats []string
		wantErr bool
	}{
		{[]string{"svg"}, false},
		{[]string{"svg", "png", "dot", "json", "seed", "toml"}, false},
		{[]string{"pdf"}, true},
		{[]string{"svg", "invalid"}, true},
		{[]string{"SVG"}, true},
		{[]string{}, false},
	}

	for _, tt := range tests {
		if err := ValidateFormats(tt.formats); (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
		}
	}
}

func TestLayout(t *testing.T) {
	f, v, rows, err := Layout(ledger(), layout.DefaultGeometry())
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 4 || rows != 4 {
		t.Errorf("Len() = %d, rows = %d, want 4, 4", f.Len(), rows)
	}
	if depth(v) != 2 {
		t.Errorf("depth = %d, want 2", depth(v))
	}

	if _, _, _, err := Layout(arborio.Seed{Label: " "}, layout.DefaultGeometry()); err == nil {
		t.Error("blank root label should fail")
	}
}

func TestLayoutStableIDs(t *testing.T) {
	_, first, _, err := Layout(ledger(), layout.DefaultGeometry())
	if err != nil {
		t.Fatal(err)
	}
	_, second, _, _ := Layout(ledger(), layout.DefaultGeometry())

	want := []string{"root", "n1", "n2", "n3"}
	for i, n := range first.Nodes {
		if n.ID != want[i] || second.Nodes[i].ID != n.ID {
			t.Errorf("node %d: ids %s and %s, want %s", i, n.ID, second.Nodes[i].ID, want[i])
		}
	}

	h1, _ := cache.HashJSON(first)
	h2, _ := cache.HashJSON(second)
	if h1 != h2 {
		t.Error("the same seed should hash to the same view")
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	result, err := r.Execute(context.Background(), ledger(), Options{
		Formats: []string{FormatSVG, FormatJSON, FormatDOT, FormatSeed, FormatTOML},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(result.Artifacts[FormatSVG], []byte("<title>Ledger</title>")) {
		t.Error("svg should default its title to the root label")
	}
	v, err := graph.UnmarshalView(result.Artifacts[FormatJSON])
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Nodes) != 4 || v.Nodes[2].Label != "Cash" {
		t.Errorf("view = %+v", v.Nodes)
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph G {") {
		t.Errorf("dot = %q", result.Artifacts[FormatDOT])
	}
	seed, err := arborio.ReadJSON(bytes.NewReader(result.Artifacts[FormatSeed]))
	if err != nil || seed.Len() != 4 {
		t.Errorf("seed = %+v, %v", seed, err)
	}
	seed, err = arborio.ReadTOML(bytes.NewReader(result.Artifacts[FormatTOML]))
	if err != nil || seed.Children[1].Label != "Liabilities" {
		t.Errorf("toml seed = %+v, %v", seed, err)
	}

	if result.Stats.Nodes != 4 || result.Stats.Rows != 4 || result.Stats.Depth != 2 {
		t.Errorf("stats = %+v", result.Stats)
	}
}

func TestExecuteDefaultsToSVG(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	result, err := r.Execute(context.Background(), ledger(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Artifacts) != 1 || result.Artifacts[FormatSVG] == nil {
		t.Errorf("artifacts = %v", result.Artifacts)
	}
}

func TestExecuteRejectsBadInput(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()
	if _, err := r.Execute(ctx, ledger(), Options{Formats: []string{"pdf"}}); err == nil {
		t.Error("unknown format should fail")
	}
	bad := arborio.Seed{Label: "Root", Children: []arborio.Seed{{Label: ""}}}
	if _, err := r.Execute(ctx, bad, Options{}); err == nil {
		t.Error("blank child label should fail")
	}
}

func TestExecuteCaching(t *testing.T) {
	mem := cache.NewMemoryCache(0)
	r := NewRunner(mem, nil, quietLogger())
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, ledger(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached[FormatSVG] {
		t.Error("first run should miss")
	}
	if mem.Len() != 1 {
		t.Errorf("cache entries = %d, want 1 (json is not cached)", mem.Len())
	}

	second, err := r.Execute(ctx, ledger(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached[FormatSVG] || second.Cached[FormatJSON] {
		t.Errorf("cached = %v", second.Cached)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}

	opts.Highlight = "n1"
	third, _ := r.Execute(ctx, ledger(), opts)
	if third.Cached[FormatSVG] {
		t.Error("highlight should change the cache key")
	}
}

func TestRenderOptions(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()
	_, v, _, err := Layout(ledger(), layout.DefaultGeometry())
	if err != nil {
		t.Fatal(err)
	}

	plain, err := r.Render(ctx, v, FormatSVG, Options{})
	if err != nil {
		t.Fatal(err)
	}
	interactive, _ := r.Render(ctx, v, FormatSVG, Options{Interactive: true})
	if bytes.Equal(plain, interactive) {
		t.Error("interactive svg should differ")
	}
	if _, err := Render(ctx, v, arborio.Seed{}, "pdf", Options{}); err == nil {
		t.Error("unknown format should fail")
	}
}

func ExampleRunner_Execute() {
	r := NewRunner(nil, nil, log.New(io.Discard))
	result, err := r.Execute(context.Background(), arborio.Seed{
		Label:    "Docs",
		Children: []arborio.Seed{{Label: "Intro"}, {Label: "Usage"}},
	}, Options{Formats: []string{FormatDOT}})
	if err != nil {
		panic(err)
	}
	fmt.Println(result.Stats.Nodes, result.Stats.Rows, result.Stats.Depth)
	// Output: 3 3 1
}
