package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/drishti/internal/attention"
	"github.com/ayusman/drishti/internal/focus"
)

// SettingsHandler handles HTTP requests for the focus configuration.
type SettingsHandler struct {
	settings func() focus.Settings
	update   func(focus.Settings) error
}

// NewSettingsHandler creates a new SettingsHandler bridged to the
// application's settings accessors.
func NewSettingsHandler(settings func() focus.Settings, update func(focus.Settings) error) *SettingsHandler {
	return &SettingsHandler{settings: settings, update: update}
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// The wire format uses whole seconds for the delay fields so clients do
// not deal in Go duration encoding.

type settingsResponse struct {
	WarningDelaySeconds    float64  `json:"warning_delay_seconds"`
	DistractedDelaySeconds float64  `json:"distracted_delay_seconds"`
	Sensitivity            float64  `json:"sensitivity"`
	Strictness             string   `json:"strictness"`
	Whitelist              []string `json:"whitelist"`
	Phase                  string   `json:"phase"`
}

type updateSettingsRequest struct {
	WarningDelaySeconds    *float64  `json:"warning_delay_seconds"`
	DistractedDelaySeconds *float64  `json:"distracted_delay_seconds"`
	Sensitivity            *float64  `json:"sensitivity"`
	Strictness             *string   `json:"strictness"`
	Whitelist              *[]string `json:"whitelist"`
	Phase                  *string   `json:"phase"`
}

func toSettingsResponse(s focus.Settings) settingsResponse {
	whitelist := s.Whitelist
	if whitelist == nil {
		whitelist = []string{}
	}
	return settingsResponse{
		WarningDelaySeconds:    s.WarningDelay.Seconds(),
		DistractedDelaySeconds: s.DistractedDelay.Seconds(),
		Sensitivity:            s.Sensitivity,
		Strictness:             string(s.Strictness),
		Whitelist:              whitelist,
		Phase:                  string(s.Phase),
	}
}

// get handles GET /api/settings.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSettingsResponse(h.settings()))
}

// put handles PUT /api/settings with a partial update: absent fields keep
// their current value.
func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s := h.settings()

	if req.WarningDelaySeconds != nil {
		if *req.WarningDelaySeconds < 0 {
			writeError(w, http.StatusBadRequest, "warning_delay_seconds must be non-negative")
			return
		}
		s.WarningDelay = time.Duration(*req.WarningDelaySeconds * float64(time.Second))
	}
	if req.DistractedDelaySeconds != nil {
		if *req.DistractedDelaySeconds < 0 {
			writeError(w, http.StatusBadRequest, "distracted_delay_seconds must be non-negative")
			return
		}
		s.DistractedDelay = time.Duration(*req.DistractedDelaySeconds * float64(time.Second))
	}
	if req.Sensitivity != nil {
		if *req.Sensitivity <= 0 {
			writeError(w, http.StatusBadRequest, "sensitivity must be positive")
			return
		}
		s.Sensitivity = *req.Sensitivity
	}
	if req.Strictness != nil {
		strictness := attention.Strictness(*req.Strictness)
		switch strictness {
		case attention.StrictnessChill, attention.StrictnessNormal, attention.StrictnessStrict:
			s.Strictness = strictness
		default:
			writeError(w, http.StatusBadRequest, "Invalid strictness")
			return
		}
	}
	if req.Whitelist != nil {
		s.Whitelist = *req.Whitelist
	}
	if req.Phase != nil {
		phase := focus.Phase(*req.Phase)
		switch phase {
		case focus.PhaseIdle, focus.PhaseWorking, focus.PhaseBreak:
			s.Phase = phase
		default:
			writeError(w, http.StatusBadRequest, "Invalid phase")
			return
		}
	}

	if err := h.update(s); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}
