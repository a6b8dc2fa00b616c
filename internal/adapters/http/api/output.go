package api

import (
	"context"
	"net/http"

	"github.com/okian/jamstats/internal/domain/model"
)

// OutputDependencies defines the interface for reading the full output.
type OutputDependencies interface {
	Output(ctx context.Context) (model.Output, error)
}

// OutputHandler serves the complete aggregation output.
type OutputHandler struct {
	deps OutputDependencies
}

// NewOutputHandler creates a new output handler.
func NewOutputHandler(deps OutputDependencies) *OutputHandler {
	return &OutputHandler{deps: deps}
}

// HandleGetOutput handles GET /output requests.
func (h *OutputHandler) HandleGetOutput(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_output"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out, err := h.deps.Output(r.Context())
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
