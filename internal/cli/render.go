package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/config"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file (single format) or base path
	formats    []string // output formats
	configPath string   // configuration file supplying the geometry
	highlight  string   // node ID to outline in SVG output
	noCache    bool     // bypass the render cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [seed]",
		Short: "Render a seed document",
		Long: `Render a seed document (JSON or TOML) laid out on the editor grid.

Formats: svg (default), png, dot, json (laid-out view), seed (normalized
JSON seed), toml (normalized TOML seed).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png, dot, json, seed, toml (comma-separated)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "configuration file supplying the layout geometry")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "node ID to outline (svg)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. A known format
// extension on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file a format is written to.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	ext := format
	if format == pipeline.FormatSeed {
		ext = "seed.json"
	}
	return basePath(output, input) + "." + ext
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	prog := newProgress(c.Logger)
	c.Logger.Infof("Rendering %s", input)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	single := len(opts.formats) == 1
	paths := make(map[string]string, len(opts.formats))
	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, single)
		if filepath.Clean(path) == filepath.Clean(input) {
			return fmt.Errorf("%s: refusing to overwrite the input file", path)
		}
		paths[format] = path
	}

	seed, err := arborio.ImportSeed(input)
	if err != nil {
		return err
	}

	store := c.renderCache(opts.noCache)
	defer store.Close()

	runner := pipeline.NewRunner(store, renderKeyer(), c.Logger)
	result, err := runner.Execute(ctx, seed, pipeline.Options{
		Formats:   opts.formats,
		Geometry:  cfg.Geometry(),
		Highlight: opts.highlight,
	})
	if err != nil {
		return err
	}

	for _, format := range opts.formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return err
		}
		printFile(paths[format], result.Cached[format])
	}

	printStats(result.Stats.Nodes, result.Stats.Depth)
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(opts.formats)))
	return nil
}

// renderCache returns the on-disk render cache, or a null cache when
// disabled or when the cache directory is unavailable.
func (c *CLI) renderCache(disabled bool) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("Render cache disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("Render cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return cache.Instrument(fc, "render")
}
