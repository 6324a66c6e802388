// Package server exposes one editable document over a JSON HTTP API.
//
// Every request runs against a single [editor.Controller]. The controller is
// not safe for concurrent use, so the server serializes access with a mutex
// and hands out immutable views built from snapshots.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server. Zero values select defaults.
type Options struct {
	Geometry       layout.Geometry
	Cache          cache.Cache
	Keyer          cache.Keyer
	CacheTTL       time.Duration
	AllowedOrigins []string
	Logger         *log.Logger
}

// Server serves the document held by a controller.
type Server struct {
	mu   sync.Mutex
	ctrl *editor.Controller

	geom    layout.Geometry
	runner  *pipeline.Runner
	origins []string
	logger  *log.Logger
}

// New returns a server for ctrl.
func New(ctrl *editor.Controller, opts Options) *Server {
	if ctrl == nil {
		ctrl = editor.New(nil)
	}
	s := &Server{
		ctrl:    ctrl,
		geom:    opts.Geometry,
		origins: opts.AllowedOrigins,
		logger:  opts.Logger,
	}
	if s.geom == (layout.Geometry{}) {
		s.geom = layout.DefaultGeometry()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	store := opts.Cache
	if store == nil {
		store = cache.NewNullCache()
	}
	s.runner = pipeline.NewRunner(cache.Instrument(store, "render"), opts.Keyer, s.logger)
	s.runner.TTL = opts.CacheTTL
	return s
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// view returns the current document under the lock.
func (s *Server) view() graph.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return graph.FromSnapshot(s.ctrl.Snapshot(), s.geom)
}

// edit runs fn under the lock and returns its error with the resulting view.
func (s *Server) edit(fn func(c *editor.Controller) error) (graph.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.ctrl)
	return graph.FromSnapshot(s.ctrl.Snapshot(), s.geom), err
}
