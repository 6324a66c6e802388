package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
)

const maxBodyBytes = 64 << 10

type errorBody struct {
	Error errorInfo `json:"error"`
}

type errorInfo struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// editResponse is returned by every edit endpoint. A refused edit is not an
// HTTP error: Applied is false, Reason names the guard and Document is the
// unchanged document.
type editResponse struct {
	Applied  bool        `json:"applied"`
	Reason   errors.Code `json:"reason,omitempty"`
	Message  string      `json:"message,omitempty"`
	NodeID   string      `json:"node_id,omitempty"`
	Document graph.View  `json:"document"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	respondJSON(w, statusFor(code), errorBody{Error: errorInfo{Code: code, Message: errors.UserMessage(err)}})
}

func respondEdit(w http.ResponseWriter, v graph.View, nodeID string, err error) {
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, editResponse{Applied: true, NodeID: nodeID, Document: v})
	case errors.IsGuard(err):
		respondJSON(w, http.StatusOK, editResponse{
			Reason:   errors.GetCode(err),
			Message:  errors.UserMessage(err),
			Document: v,
		})
	default:
		respondError(w, err)
	}
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a size-limited JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", maxBodyBytes)
		}
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed request body")
	}
	return errors.ValidateStruct(dst)
}
