package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/internal/server"
	"github.com/matzehuels/arbor/pkg/config"
	"github.com/matzehuels/arbor/pkg/editor"
)

// serveOpts holds the command-line flags for the serve command. Non-empty
// flags override the configuration file.
type serveOpts struct {
	configPath string
	addr       string
	seed       string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a document over the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (TOML)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "seed document, JSON or TOML (overrides document.seed)")

	return cmd
}

// serveConfig loads the configuration and applies flag overrides.
func serveConfig(opts serveOpts) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.seed != "" {
		cfg.Document.Seed = opts.seed
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cfg, err := serveConfig(opts)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cfg.Document)
	if err != nil {
		return err
	}
	c.Logger.Info("Loaded document", "nodes", doc.Len(), "seed", cfg.Document.Seed)

	store, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer store.Close()
	c.Logger.Debug("Render cache", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)

	srv := server.New(editor.New(doc), server.Options{
		Geometry:       cfg.Geometry(),
		Cache:          store,
		Keyer:          renderKeyer(),
		CacheTTL:       cfg.Cache.TTL,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         c.Logger,
	})
	return srv.Run(ctx, cfg.Server.Addr)
}
