// Package app wires the capture, perception, gesture, and focus components
// into the running Drishti pipeline.
package app

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ayusman/drishti/internal/attention"
	"github.com/ayusman/drishti/internal/capture"
	"github.com/ayusman/drishti/internal/focus"
	"github.com/ayusman/drishti/internal/gesture"
	"github.com/ayusman/drishti/internal/hook"
	"github.com/ayusman/drishti/internal/perception"
	"github.com/ayusman/drishti/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate while the user is present and moving.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without motion before dropping back to idle.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	HookDir      string
	CameraID     int
	MotionThresh float64
	Foreground   func() (appID, title string)
}

// App owns the perception worker and the focus orchestrator and the
// snapshot handoff between them.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	provider   perception.Provider
	recognizer *gesture.Recognizer
	orch       *focus.Orchestrator
	hooks      *hook.Manager
	hookExec   *hook.Executor

	// latest is the atomically-replaced immutable perception snapshot; the
	// worker is its only writer, the tick path its only reader.
	latest atomic.Pointer[focus.PerceptionState]

	// busy is the single-flight gate: a frame arriving while the previous
	// one is still being analyzed is dropped, not queued.
	busy atomic.Bool

	settingsMu sync.RWMutex
	settings   focus.Settings

	enabled atomic.Bool
	stopCh  chan struct{}
	mu      sync.Mutex
}

// New creates an App with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		recognizer: gesture.NewRecognizer(),
		hooks:      hook.NewManager(config.HookDir),
		hookExec:   hook.NewExecutor(5000), // 5 second hook timeout
		settings:   focus.DefaultSettings(),
	}
	a.latest.Store(&focus.PerceptionState{})
	a.enabled.Store(true)

	// Try MediaPipe first, fall back to the mock provider.
	if mp, err := perception.NewMediaPipeProvider(perception.DefaultConfig()); err == nil {
		a.provider = mp
		log.Println("Using MediaPipe perception")
	} else {
		log.Printf("MediaPipe not available (%v), using mock perception", err)
		a.provider = perception.NewMockProvider()
	}

	a.orch = focus.New(focus.Config{
		Settings:   a.Settings,
		Perception: a.perceptionState,
		Foreground: config.Foreground,
		OnEvent:    a.handleEvent,
	})

	return a
}

// SetEnabled enables or disables attention monitoring.
func (a *App) SetEnabled(enabled bool) {
	a.enabled.Store(enabled)
}

// IsEnabled returns whether monitoring is currently enabled.
func (a *App) IsEnabled() bool {
	return a.enabled.Load()
}

// Settings returns the current configuration, read by every tick.
func (a *App) Settings() focus.Settings {
	a.settingsMu.RLock()
	defer a.settingsMu.RUnlock()
	return a.settings
}

// UpdateSettings replaces the configuration and persists it.
func (a *App) UpdateSettings(s focus.Settings) error {
	a.settingsMu.Lock()
	a.settings = s
	a.settingsMu.Unlock()

	if a.config.Store != nil {
		if err := a.config.Store.Settings().Save(s); err != nil {
			return fmt.Errorf("failed to persist settings: %w", err)
		}
	}
	return nil
}

// TogglePhase flips the Pomodoro phase between working and break. Used by
// the peace-gesture command and the tray.
func (a *App) TogglePhase() {
	a.settingsMu.Lock()
	defer a.settingsMu.Unlock()

	switch a.settings.Phase {
	case focus.PhaseBreak:
		a.settings.Phase = focus.PhaseWorking
	default:
		a.settings.Phase = focus.PhaseBreak
	}
}

// SetPhase sets the Pomodoro phase directly.
func (a *App) SetPhase(p focus.Phase) {
	a.settingsMu.Lock()
	defer a.settingsMu.Unlock()
	a.settings.Phase = p
}

// LoadSettings restores persisted settings from the store.
func (a *App) LoadSettings() error {
	if a.config.Store == nil {
		return nil
	}

	s, err := a.config.Store.Settings().Load()
	if err != nil {
		return err
	}

	a.settingsMu.Lock()
	a.settings = s
	a.settingsMu.Unlock()
	return nil
}

// DiscoverHooks scans the hook directory for event hooks.
func (a *App) DiscoverHooks() error {
	return a.hooks.Discover()
}

// perceptionState returns the latest published snapshot for the tick path.
func (a *App) perceptionState() focus.PerceptionState {
	return *a.latest.Load()
}

// handleEvent dispatches orchestrator commands to collaborators.
func (a *App) handleEvent(e focus.Event) {
	if e == focus.EventBreakToggle {
		a.TogglePhase()
	}

	snap := a.orch.Snapshot()
	go a.hookExec.Dispatch(a.hooks, string(e), hook.Payload{
		Event: string(e),
		Level: snap.Level,
		Mood:  string(snap.Mood),
	})
}

// Orchestrator exposes the focus orchestrator for state readers.
func (a *App) Orchestrator() *focus.Orchestrator {
	return a.orch
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Provider returns the perception provider.
func (a *App) Provider() perception.Provider {
	return a.provider
}

// SetProvider replaces the perception provider (used by tests).
func (a *App) SetProvider(p perception.Provider) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.provider = p
}

// Start begins the perception worker and the orchestrator tick loop.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPerception(a.stopCh)
	go a.runTicks(a.stopCh)

	log.Println("Attention pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			log.Printf("Error closing perception provider: %v", err)
		}
	}

	log.Println("Attention pipeline stopped")
}

// runTicks drives the orchestrator at its fixed cadence, persisting a
// session record when the loop ends.
func (a *App) runTicks(stop <-chan struct{}) {
	ticker := time.NewTicker(focus.TickInterval)
	defer ticker.Stop()

	started := time.Now()

	for {
		select {
		case <-stop:
			a.persistSession(started)
			return
		case now := <-ticker.C:
			if !a.IsEnabled() {
				continue
			}
			a.orch.Tick(now)
		}
	}
}

// persistSession writes the accumulated stats and attention history.
func (a *App) persistSession(started time.Time) {
	if a.config.Store == nil {
		return
	}

	stats := a.orch.Stats()
	if stats.FocusedSeconds == 0 && stats.DistractedSeconds == 0 {
		return
	}

	session := &store.Session{
		StartedAt:         started,
		EndedAt:           time.Now(),
		FocusedSeconds:    stats.FocusedSeconds,
		DistractedSeconds: stats.DistractedSeconds,
		DistractionCount:  stats.DistractionCount,
	}
	if err := a.config.Store.Sessions().Create(session); err != nil {
		log.Printf("Failed to persist session: %v", err)
		return
	}

	history := a.orch.History()
	records := make([]store.HistoryRecord, len(history))
	for i, r := range history {
		records[i] = store.HistoryRecord{
			SessionID: session.ID,
			At:        r.At,
			Level:     r.Level,
			Mood:      string(r.Mood),
		}
	}
	if err := a.config.Store.Sessions().AppendHistory(session.ID, records); err != nil {
		log.Printf("Failed to persist attention history: %v", err)
	}
}

// moodLine is a small helper for the tray: current mood and level.
func (a *App) MoodLine() (attention.Mood, float64) {
	snap := a.orch.Snapshot()
	return snap.Mood, snap.Level
}
