package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/tailor/pkg/domain/interfaces"
	"github.com/m-mizutani/tailor/pkg/domain/types"
)

// RunsHandler serves persisted run records. Commit statuses and commit
// messages link here.
type RunsHandler struct {
	runQueryUC interfaces.RunQueryUseCase
}

// NewRunsHandler creates a new RunsHandler
func NewRunsHandler(runQueryUC interfaces.RunQueryUseCase) *RunsHandler {
	return &RunsHandler{
		runQueryUC: runQueryUC,
	}
}

// Handle returns one run record as JSON
func (h *RunsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	runID := types.RunID(chi.URLParam(r, "runID"))
	run, err := h.runQueryUC.GetRun(ctx, runID)
	if err != nil {
		if errors.Is(err, types.ErrRunNotFound) {
			writeError(w, err, http.StatusNotFound)
			return
		}
		logger.Error("Failed to load run record", "error", err, "run_id", runID)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(run); err != nil {
		logger.Error("Failed to encode run record", "error", err)
	}
}
