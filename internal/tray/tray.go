// Package tray provides the system tray interface for the Drishti focus
// monitor.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/drishti/internal/attention"
	"github.com/ayusman/drishti/internal/focus"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle   func(enabled bool)
	onPhase    func()
	onSettings func()
	onQuit     func()
	enabled    bool
	mu         sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuMood   *systray.MenuItem
	menuPhase  *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when monitoring is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnPhase sets the callback function to be called when the break menu item
// is clicked.
func (t *Tray) OnPhase(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onPhase = fn
}

// OnSettings sets the callback function to be called when the settings menu
// item is clicked.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback function to be called when the quit menu item is
// clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Drishti")
	systray.SetTooltip("Drishti Focus Monitor")

	t.menuToggle = systray.AddMenuItem("● Monitoring", "Toggle attention monitoring")
	systray.AddSeparator()

	t.menuMood = systray.AddMenuItem("Mood: neutral", "Current companion mood")
	t.menuMood.Disable()
	t.menuPhase = systray.AddMenuItem("Start Break", "Toggle between working and break")
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Drishti")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-t.menuPhase.ClickedCh:
				t.handlePhase()
			case <-menuSettings.ClickedCh:
				t.handleSettings()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Monitoring")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handlePhase handles the break menu item click.
func (t *Tray) handlePhase() {
	t.mu.RLock()
	callback := t.onPhase
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleSettings handles the settings menu item click.
func (t *Tray) handleSettings() {
	t.mu.RLock()
	callback := t.onSettings
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetMood updates the mood line in the menu.
func (t *Tray) SetMood(mood attention.Mood, level float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuMood != nil {
		t.menuMood.SetTitle(fmt.Sprintf("Mood: %s (%.0f%%)", mood, level*100))
	}
}

// SetPhase updates the break menu item to reflect the current phase.
func (t *Tray) SetPhase(phase focus.Phase) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuPhase == nil {
		return
	}
	if phase == focus.PhaseBreak {
		t.menuPhase.SetTitle("End Break")
	} else {
		t.menuPhase.SetTitle("Start Break")
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
