// Package cli implements the arbor command-line interface.
//
// # Commands
//
//   - serve: expose a document over the HTTP API
//   - edit: edit a document in the terminal
//   - render: render a seed file to SVG, PNG, DOT or JSON
//   - cache: inspect and clear the render cache
//   - version, completion
//
// All commands accept --verbose (-v) for debug logging, which also logs
// every edit, layout pass and cache lookup.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/buildinfo"
	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/config"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/tree"
)

// appName is the application name used for directories, cache keys and display.
const appName = "arbor"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Arbor edits labeled trees",
		Long:         `Arbor is an editor for ordered, labeled trees. Documents are laid out on a grid with one column per depth and one row per node, and can be edited over HTTP or in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
				hooks := logHooks{logger: c.Logger}
				observability.SetEditorHooks(hooks)
				observability.SetCacheHooks(hooks)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// loadDocument builds the starting document: the seed file if one is
// configured, otherwise a document holding only the root.
func loadDocument(doc config.DocumentConfig) (*tree.Forest, error) {
	opts := []tree.Option{tree.WithRootLabel(doc.RootLabel)}
	if doc.Seed == "" {
		return tree.New(opts...), nil
	}
	seed, err := arborio.ImportSeed(doc.Seed)
	if err != nil {
		return nil, err
	}
	return arborio.Build(seed, opts...)
}

// openCache returns the render cache selected by cfg.
func openCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheMemory:
		return cache.NewMemoryCache(cfg.MaxEntries), nil
	case config.CacheFile:
		return cache.NewFileCache(cfg.Dir)
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   appName + ":",
		})
	default:
		return cache.NewNullCache(), nil
	}
}

// renderKeyer scopes cache keys by version so an upgrade never serves
// output rendered by an older build.
func renderKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/arbor/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
