package api

import (
	"net/http"

	"github.com/ayusman/drishti/internal/focus"
	"github.com/ayusman/drishti/internal/store"
)

// StatsHandler serves aggregate focus statistics: persisted totals across
// past sessions plus the counters of the session in progress.
type StatsHandler struct {
	store *store.Store
	state func() focus.Snapshot
}

// NewStatsHandler creates a new StatsHandler. The state source is optional;
// without it only persisted totals are reported.
func NewStatsHandler(s *store.Store, state func() focus.Snapshot) *StatsHandler {
	return &StatsHandler{store: s, state: state}
}

type currentStatsResponse struct {
	FocusedSeconds    float64 `json:"focused_seconds"`
	DistractedSeconds float64 `json:"distracted_seconds"`
	DistractionCount  int     `json:"distraction_count"`
	FocusPercent      float64 `json:"focus_percent"`
}

type statsResponse struct {
	Sessions          int                   `json:"sessions"`
	FocusedSeconds    float64               `json:"focused_seconds"`
	DistractedSeconds float64               `json:"distracted_seconds"`
	DistractionCount  int                   `json:"distraction_count"`
	FocusPercent      float64               `json:"focus_percent"`
	Current           *currentStatsResponse `json:"current,omitempty"`
}

// ServeHTTP handles GET /api/stats.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	totals, err := h.store.Sessions().Totals()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate stats")
		return
	}

	response := statsResponse{
		Sessions:          totals.Sessions,
		FocusedSeconds:    totals.FocusedSeconds,
		DistractedSeconds: totals.DistractedSeconds,
		DistractionCount:  totals.DistractionCount,
	}
	if total := totals.FocusedSeconds + totals.DistractedSeconds; total > 0 {
		response.FocusPercent = totals.FocusedSeconds / total * 100
	}

	if h.state != nil {
		stats := h.state().Stats
		response.Current = &currentStatsResponse{
			FocusedSeconds:    stats.FocusedSeconds,
			DistractedSeconds: stats.DistractedSeconds,
			DistractionCount:  stats.DistractionCount,
			FocusPercent:      stats.FocusPercent(),
		}
	}

	writeJSON(w, http.StatusOK, response)
}
