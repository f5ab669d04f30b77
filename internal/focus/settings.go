// Package focus drives the attention estimator on a fixed cadence and
// converts its state into statistics and collaborator events.
package focus

import (
	"time"

	"github.com/ayusman/drishti/internal/attention"
)

// Phase is the externally-owned Pomodoro phase. The orchestrator never
// changes it; the peace gesture only emits a toggle command.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseWorking Phase = "working"
	PhaseBreak   Phase = "break"
)

// Settings is the read-only configuration handed to every tick. It is
// published by the external settings collaborator and assumed pre-validated.
type Settings struct {
	WarningDelay    time.Duration        `json:"warningDelay"`
	DistractedDelay time.Duration        `json:"distractedDelay"`
	Sensitivity     float64              `json:"sensitivity"`
	Strictness      attention.Strictness `json:"strictness"`
	Whitelist       []string             `json:"whitelist"`
	Phase           Phase                `json:"phase"`
}

// DefaultSettings returns the configuration used until the settings
// collaborator publishes one.
func DefaultSettings() Settings {
	return Settings{
		WarningDelay:    30 * time.Second,
		DistractedDelay: 90 * time.Second,
		Sensitivity:     1.0,
		Strictness:      attention.StrictnessNormal,
		Phase:           PhaseIdle,
	}
}
