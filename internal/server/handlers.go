package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/arbor/pkg/buildinfo"
	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/tree"
)

// addChildRequest carries the raw label. Label rules belong to the
// controller, so an empty label is a refused edit rather than a bad request.
type addChildRequest struct {
	Label string `json:"label"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Revision uint64 `json:"revision"`
}

type actionsResponse struct {
	NodeID  string           `json:"node_id"`
	Actions editor.ActionSet `json:"actions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rev := s.ctrl.Snapshot().Revision
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version, Revision: rev})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.view())
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	id, err := nodeID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	s.mu.Lock()
	known := s.ctrl.Snapshot().Forest.Has(id)
	actions := s.ctrl.Actions(id)
	s.mu.Unlock()

	if !known {
		respondError(w, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id))
		return
	}
	respondJSON(w, http.StatusOK, actionsResponse{NodeID: string(id), Actions: actions})
}

func (s *Server) handleAddChild(w http.ResponseWriter, r *http.Request) {
	id, err := nodeID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req addChildRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	var child tree.ID
	v, err := s.edit(func(c *editor.Controller) error {
		var err error
		child, err = c.AddChild(id, req.Label)
		return err
	})
	respondEdit(w, v, string(child), err)
}

func (s *Server) handleCut(w http.ResponseWriter, r *http.Request) {
	s.simpleEdit(w, r, (*editor.Controller).Cut)
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	s.simpleEdit(w, r, (*editor.Controller).Copy)
}

func (s *Server) handlePaste(w http.ResponseWriter, r *http.Request) {
	s.simpleEdit(w, r, (*editor.Controller).Paste)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.simpleEdit(w, r, (*editor.Controller).Delete)
}

func (s *Server) simpleEdit(w http.ResponseWriter, r *http.Request, op func(*editor.Controller, tree.ID) error) {
	id, err := nodeID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	v, err := s.edit(func(c *editor.Controller) error { return op(c, id) })
	respondEdit(w, v, "", err)
}

func (s *Server) handleRender(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := pipeline.Options{Interactive: true}
		if format == pipeline.FormatSVG {
			opts.Highlight = r.URL.Query().Get("highlight")
		}
		data, err := s.runner.Render(r.Context(), s.view(), format, opts)
		if err != nil {
			respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format))
			return
		}
		w.Header().Set("Content-Type", contentType(format))
		_, _ = w.Write(data)
	}
}

func nodeID(r *http.Request) (tree.ID, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateNodeID(id); err != nil {
		return "", err
	}
	return tree.ID(id), nil
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "image/svg+xml"
	}
}
