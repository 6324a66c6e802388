package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/io"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no pipeline results, so multiple goroutines can share
// one Runner as long as the cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL applies to every cache write. Zero means no expiry.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs build → layout → render for s.
func (r *Runner) Execute(ctx context.Context, s io.Seed, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = s.Label
	}

	layoutStart := time.Now()
	f, v, rows, err := Layout(s, opts.Geometry)
	if err != nil {
		return nil, err
	}
	result := &Result{
		View:      v,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Cached:    make(map[string]bool, len(opts.Formats)),
		Stats: Stats{
			Nodes:      f.Len(),
			Rows:       rows,
			Depth:      depth(v),
			LayoutTime: time.Since(layoutStart),
		},
	}
	r.Logger.Debug("computed layout",
		"nodes", result.Stats.Nodes,
		"rows", rows,
		"duration", result.Stats.LayoutTime)

	normalized := io.ToSeed(f)
	renderStart := time.Now()
	for _, format := range opts.Formats {
		data, hit, err := r.RenderWithCacheInfo(ctx, v, normalized, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		result.Cached[format] = hit
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, v graph.View, format string, opts Options) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, v, io.Seed{}, format, opts)
	return data, err
}

// RenderWithCacheInfo renders one artifact, consulting the cache for the
// formats worth caching. Cache failures are logged and never fail the render.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, v graph.View, s io.Seed, format string, opts Options) ([]byte, bool, error) {
	if !cachedFormats[format] {
		data, err := Render(ctx, v, s, format, opts)
		return data, false, err
	}

	docHash, err := cache.HashJSON(v)
	if err != nil {
		return nil, false, fmt.Errorf("hash view: %w", err)
	}
	key := r.Keyer.RenderKey(docHash, cache.RenderKeyOpts{
		Format:      format,
		Title:       opts.Title,
		Highlight:   opts.Highlight,
		Interactive: opts.Interactive,
	})

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if hit {
		return data, true, nil
	}

	data, err = Render(ctx, v, s, format, opts)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	}
	return data, false, nil
}
