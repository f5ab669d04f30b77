package focus

import (
	"testing"
	"time"

	"github.com/ayusman/drishti/internal/attention"
)

// harness drives an orchestrator with mutable collaborator state.
type harness struct {
	orch       *Orchestrator
	settings   Settings
	perception PerceptionState
	appID      string
	title      string
	events     []Event
}

func newHarness() *harness {
	h := &harness{
		settings: DefaultSettings(),
		appID:    "com.microsoft.VSCode",
		title:    "main.go",
	}
	h.perception = PerceptionState{
		Observed:      true,
		FaceVisible:   true,
		FacePositionX: 0.5,
	}
	h.orch = New(Config{
		Settings:   func() Settings { return h.settings },
		Perception: func() PerceptionState { return h.perception },
		Foreground: func() (string, string) { return h.appID, h.title },
		OnEvent:    func(e Event) { h.events = append(h.events, e) },
	})
	return h
}

func (h *harness) count(e Event) int {
	n := 0
	for _, got := range h.events {
		if got == e {
			n++
		}
	}
	return n
}

func TestOrchestrator_WorkingTickAccruesFocus(t *testing.T) {
	h := newHarness()
	h.settings.Phase = PhaseWorking
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		h.orch.Tick(now)
		now = now.Add(TickInterval)
	}

	snap := h.orch.Snapshot()
	if snap.Stats.FocusedSeconds != 5.0 {
		t.Errorf("expected 5.0 focused seconds over 10 ticks, got %f", snap.Stats.FocusedSeconds)
	}
	if snap.Stats.DistractedSeconds != 0 {
		t.Errorf("expected no distracted time, got %f", snap.Stats.DistractedSeconds)
	}
	if snap.Level <= 0.9 {
		t.Errorf("attentive input should keep the level high, got %f", snap.Level)
	}
	if snap.Mood != attention.MoodProud {
		t.Errorf("expected proud in a working context at high level, got %s", snap.Mood)
	}
}

func TestOrchestrator_DistractingContextForcesReaction(t *testing.T) {
	h := newHarness()
	h.settings.Phase = PhaseIdle // distraction fires even outside a session
	h.appID = "com.valvesoftware.steam"
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	h.orch.Tick(now)

	snap := h.orch.Snapshot()
	if snap.Level != 0.1 {
		t.Errorf("expected level forced to 0.1, got %f", snap.Level)
	}
	if snap.Mood != attention.MoodAngry {
		t.Errorf("expected angry on first distraction, got %s", snap.Mood)
	}
	if snap.Stats.DistractionCount != 1 {
		t.Errorf("expected distraction count 1, got %d", snap.Stats.DistractionCount)
	}
	if h.count(EventDistraction) != 1 {
		t.Errorf("expected one distraction event, got %d", h.count(EventDistraction))
	}

	// Staying in the distracting app accrues time but counts one episode.
	for i := 0; i < 9; i++ {
		now = now.Add(TickInterval)
		h.orch.Tick(now)
	}
	snap = h.orch.Snapshot()
	if snap.Stats.DistractionCount != 1 {
		t.Errorf("one continuous episode must count once, got %d", snap.Stats.DistractionCount)
	}
	if snap.Stats.DistractedSeconds != 5.0 {
		t.Errorf("expected 5.0 distracted seconds, got %f", snap.Stats.DistractedSeconds)
	}

	// Leaving and returning starts a new episode and escalates nothing yet
	// (ignore count 2 is still in the angry band).
	h.appID = "com.microsoft.VSCode"
	now = now.Add(TickInterval)
	h.orch.Tick(now)
	h.appID = "com.valvesoftware.steam"
	now = now.Add(TickInterval)
	h.orch.Tick(now)

	snap = h.orch.Snapshot()
	if snap.Stats.DistractionCount != 2 {
		t.Errorf("expected a second episode, got count %d", snap.Stats.DistractionCount)
	}
	if snap.Mood != attention.MoodAngry {
		t.Errorf("expected angry at ignore count 2, got %s", snap.Mood)
	}
}

func TestOrchestrator_BreakSoothesAndAccruesFocus(t *testing.T) {
	h := newHarness()
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	// Get angry first via a distraction.
	h.appID = "com.valvesoftware.steam"
	h.orch.Tick(now)
	if h.orch.Snapshot().Mood != attention.MoodAngry {
		t.Fatal("expected angry before break")
	}

	h.settings.Phase = PhaseBreak
	h.appID = "com.microsoft.VSCode"
	before := h.orch.Snapshot().Stats.FocusedSeconds

	now = now.Add(TickInterval)
	h.orch.Tick(now)

	snap := h.orch.Snapshot()
	if snap.Mood != attention.MoodHappy {
		t.Errorf("expected mood soothed to happy on break, got %s", snap.Mood)
	}
	if snap.Stats.FocusedSeconds != before+tickSeconds {
		t.Errorf("break must still accrue focused time, got %f", snap.Stats.FocusedSeconds)
	}
}

func TestOrchestrator_GestureTriggersForwardedOnce(t *testing.T) {
	h := newHarness()
	h.settings.Phase = PhaseWorking
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	h.perception.WaveAt = now
	h.orch.Tick(now)

	if h.count(EventGreeting) != 1 {
		t.Fatalf("expected one greeting event, got %d", h.count(EventGreeting))
	}

	// The same trigger timestamp must not be consumed twice.
	now = now.Add(TickInterval)
	h.orch.Tick(now)
	if h.count(EventGreeting) != 1 {
		t.Errorf("trigger consumed twice, got %d greeting events", h.count(EventGreeting))
	}

	// A new trigger after the cooldown is consumed again.
	h.perception.WaveAt = now.Add(6 * time.Second)
	now = now.Add(6 * time.Second)
	h.orch.Tick(now)
	if h.count(EventGreeting) != 2 {
		t.Errorf("expected second greeting event, got %d", h.count(EventGreeting))
	}
}

func TestOrchestrator_StaleTriggerExpires(t *testing.T) {
	h := newHarness()
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	// A trigger older than the presentation window is spent.
	h.perception.PeaceAt = now.Add(-5 * time.Second)
	h.orch.Tick(now)

	if h.count(EventBreakToggle) != 0 {
		t.Errorf("stale trigger must not be consumed, got %d events", h.count(EventBreakToggle))
	}
}

func TestOrchestrator_PeaceTogglesBreak(t *testing.T) {
	h := newHarness()
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	h.perception.PeaceAt = now
	h.orch.Tick(now)

	if h.count(EventBreakToggle) != 1 {
		t.Errorf("expected one break toggle command, got %d", h.count(EventBreakToggle))
	}
}

func TestOrchestrator_HeartSetsLoveMood(t *testing.T) {
	h := newHarness()
	h.settings.Phase = PhaseBreak // break path leaves the gesture mood alone
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	h.perception.HeartAt = now
	h.orch.Tick(now)

	if h.count(EventHeart) != 1 {
		t.Errorf("expected one heart event, got %d", h.count(EventHeart))
	}
	if h.orch.Snapshot().Mood != attention.MoodLove {
		t.Errorf("expected love mood after heart gesture, got %s", h.orch.Snapshot().Mood)
	}
}

func TestOrchestrator_MotivationGating(t *testing.T) {
	h := newHarness()
	h.settings.Phase = PhaseWorking
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	// Sustained high focus: above the 600s floor and the 80% ratio.
	h.orch.stats = Stats{FocusedSeconds: 700, DistractedSeconds: 10}

	h.orch.Tick(now)
	if h.count(EventMotivation) != 1 {
		t.Fatalf("expected motivation event, got %d", h.count(EventMotivation))
	}

	// The next slow check at +300s is inside the 600s cooldown.
	now = now.Add(motivationInterval)
	h.orch.Tick(now)
	if h.count(EventMotivation) != 1 {
		t.Errorf("motivation fired inside cooldown, got %d", h.count(EventMotivation))
	}

	// At +600s the cooldown has elapsed.
	now = now.Add(motivationInterval)
	h.orch.Tick(now)
	if h.count(EventMotivation) != 2 {
		t.Errorf("expected second motivation at cooldown expiry, got %d", h.count(EventMotivation))
	}
}

func TestOrchestrator_NoMotivationOnLowRatio(t *testing.T) {
	h := newHarness()
	h.settings.Phase = PhaseWorking
	h.orch.stats = Stats{FocusedSeconds: 700, DistractedSeconds: 300} // 70%

	h.orch.Tick(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC))

	if h.count(EventMotivation) != 0 {
		t.Errorf("expected no motivation below the focus ratio, got %d", h.count(EventMotivation))
	}
}

func TestOrchestrator_WarningAfterSustainedSag(t *testing.T) {
	h := newHarness()
	h.settings.Phase = PhaseWorking
	h.settings.Strictness = attention.StrictnessStrict
	h.settings.WarningDelay = 2 * time.Second
	h.perception.FaceVisible = false // user gone: attention will decay
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		h.orch.Tick(now)
		now = now.Add(TickInterval)
	}

	if h.count(EventWarning) != 1 {
		t.Errorf("expected exactly one warning for a sustained sag, got %d", h.count(EventWarning))
	}
	if h.orch.Snapshot().Level >= distractedBand {
		t.Errorf("expected level to decay below %f, got %f", distractedBand, h.orch.Snapshot().Level)
	}
}

func TestOrchestrator_IdlePinsMoodTowardNeutral(t *testing.T) {
	h := newHarness()
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	// Become angry via a distraction, then return to a neutral app while idle.
	h.appID = "com.valvesoftware.steam"
	h.orch.Tick(now)
	h.appID = "com.apple.finder"
	now = now.Add(TickInterval)
	h.orch.Tick(now)

	if got := h.orch.Snapshot().Mood; got != attention.MoodNeutral {
		t.Errorf("expected mood pinned toward neutral outside a session, got %s", got)
	}
}

func TestStats_FocusPercent(t *testing.T) {
	if got := (Stats{}).FocusPercent(); got != 0 {
		t.Errorf("empty stats percent = %f, want 0", got)
	}
	s := Stats{FocusedSeconds: 80, DistractedSeconds: 20}
	if got := s.FocusPercent(); got != 80 {
		t.Errorf("percent = %f, want 80", got)
	}
}
