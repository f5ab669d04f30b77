package focus

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/ayusman/drishti/internal/activity"
	"github.com/ayusman/drishti/internal/attention"
)

// Orchestrator timing constants.
const (
	// TickInterval is the fixed estimator cadence.
	TickInterval = 500 * time.Millisecond

	// triggerWindow is how long a gesture trigger stays consumable before a
	// slow tick must treat it as spent.
	triggerWindow = 2500 * time.Millisecond

	// Motivation side-effect gating.
	motivationInterval = 300 * time.Second
	motivationMinFocus = 600.0 // seconds
	motivationMinPct   = 80.0
	motivationCooldown = 600 * time.Second

	// Accrual bands: the range between counts toward neither bucket.
	focusedBand    = 0.6
	distractedBand = 0.3

	tickSeconds = 0.5

	// lookYawBase is the head yaw (radians) past which the user counts as
	// looking away at sensitivity 1.0.
	lookYawBase  = 0.35
	lookPitchMax = 0.45
)

// Event is a discrete command forwarded to external collaborators.
type Event string

const (
	EventGreeting    Event = "greeting"     // wave gesture
	EventBreakToggle Event = "break_toggle" // peace gesture
	EventHeart       Event = "heart"        // heart gesture
	EventMotivation  Event = "motivation"   // sustained-focus encouragement
	EventWarning     Event = "warning"      // attention sagging
	EventDistraction Event = "distraction"  // blacklisted app in foreground
)

// PerceptionState is the immutable snapshot the perception worker publishes
// for the tick path. Gesture timestamps are transient trigger flags: the
// orchestrator consumes each at most once, within the trigger window.
type PerceptionState struct {
	Observed      bool
	At            time.Time
	FaceVisible   bool
	Yaw           float64
	Pitch         float64
	FacePositionX float64

	WaveAt  time.Time
	PeaceAt time.Time
	HeartAt time.Time
}

// Stats are the accumulated focus/distraction counters.
type Stats struct {
	FocusedSeconds    float64 `json:"focusedSeconds"`
	DistractedSeconds float64 `json:"distractedSeconds"`
	DistractionCount  int     `json:"distractionCount"`
}

// FocusPercent returns focused time as a percentage of all attributed time.
func (s Stats) FocusPercent() float64 {
	total := s.FocusedSeconds + s.DistractedSeconds
	if total == 0 {
		return 0
	}
	return s.FocusedSeconds / total * 100
}

// Snapshot is the read-only state triple published to presentation, audio,
// and persistence collaborators after every tick.
type Snapshot struct {
	At         time.Time            `json:"at"`
	Level      float64              `json:"level"`
	Mood       attention.Mood       `json:"mood"`
	Bored      bool                 `json:"bored"`
	Context    activity.Class       `json:"context"`
	Phase      Phase                `json:"phase"`
	Appearance attention.Appearance `json:"appearance"`
	Stats      Stats                `json:"stats"`
}

// Config wires the orchestrator's collaborators. Settings and Foreground
// are read on every tick; OnEvent receives forwarded commands.
type Config struct {
	Settings   func() Settings
	Perception func() PerceptionState
	Foreground func() (appID, title string)
	OnEvent    func(Event)
}

// Orchestrator ticks the attention estimator at a fixed cadence, branches
// on the Pomodoro phase, forwards gesture triggers as commands, and
// accumulates focus statistics. All mutation happens on the tick goroutine;
// readers see the snapshot behind the mutex.
type Orchestrator struct {
	config    Config
	estimator *attention.Estimator

	ignoreCount    int
	wasDistracting bool
	stats          Stats

	handledWave  time.Time
	handledPeace time.Time
	handledHeart time.Time

	lastMotivationCheck time.Time
	lastMotivationAt    time.Time

	sagStart  time.Time
	sagWarned bool

	mu       sync.RWMutex
	snapshot Snapshot
}

// New creates an Orchestrator. Missing collaborators default to no-ops so
// the orchestrator is usable in isolation.
func New(config Config) *Orchestrator {
	if config.Settings == nil {
		config.Settings = func() Settings { return DefaultSettings() }
	}
	if config.Perception == nil {
		config.Perception = func() PerceptionState { return PerceptionState{} }
	}
	if config.Foreground == nil {
		config.Foreground = func() (string, string) { return "", "" }
	}
	if config.OnEvent == nil {
		config.OnEvent = func(Event) {}
	}

	return &Orchestrator{
		config:    config,
		estimator: attention.NewEstimator(),
	}
}

// Run ticks until the context is cancelled.
func (o *Orchestrator) Run(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			o.Tick(now)
		}
	}
}

// Tick runs one orchestrator step at the given time.
func (o *Orchestrator) Tick(now time.Time) {
	settings := o.config.Settings()
	state := o.config.Perception()
	appID, title := o.config.Foreground()
	class := activity.Classify(appID, title, settings.Whitelist)

	o.consumeGestures(state, now)

	switch {
	case settings.Phase == PhaseBreak:
		// Break suspends strict monitoring entirely: soothe any alarmed
		// mood and keep crediting focused time.
		if alarmed(o.estimator.Mood()) {
			o.estimator.SetMood(attention.MoodHappy)
		}
		o.stats.FocusedSeconds += tickSeconds
		o.wasDistracting = false

	case class == activity.Distracting:
		// Distraction detection overrides the Pomodoro phase: the reaction
		// fires even when no work session is active.
		if !o.wasDistracting {
			o.ignoreCount++
			o.stats.DistractionCount++
			o.config.OnEvent(EventDistraction)
		}
		o.wasDistracting = true
		o.estimator.ForceDistracted(o.ignoreCount, now)
		o.stats.DistractedSeconds += tickSeconds

	default:
		o.wasDistracting = false

		if settings.Phase == PhaseWorking {
			o.updateEstimator(state, settings, class, now)
			o.checkSag(settings, now)
		} else if alarmed(o.estimator.Mood()) || o.estimator.Bored() {
			// Camera tracking is inert outside a work session; mood drifts
			// back to neutral instead of nagging.
			o.estimator.SetMood(attention.MoodNeutral)
		}

		o.accrue()
	}

	o.maybeMotivate(now)
	o.publish(class, settings.Phase, now)
}

// updateEstimator derives the look-at-screen signal from the latest
// perception snapshot and feeds one estimator tick.
func (o *Orchestrator) updateEstimator(state PerceptionState, settings Settings, class activity.Class, now time.Time) {
	tod := attention.TimeOfDayFor(now)

	looking := lookingAtScreen(state, settings.Sensitivity)
	if state.FaceVisible && !looking && class.AllowsLookAway() {
		// Meetings and media contexts tolerate looking away.
		looking = true
	}

	o.estimator.Update(attention.TickInput{
		FaceVisible:     state.Observed && state.FaceVisible,
		LookingAtScreen: looking,
		HeadAngle:       math.Abs(state.Yaw),
		WorkingContext:  class == activity.Working,
		InWorkSession:   true,
		Strictness:      settings.Strictness,
		TimeOfDay:       tod,
		Energy:          attention.EnergyFor(tod),
	}, now)
}

// lookingAtScreen reports whether the observed head pose counts as facing
// the screen. Sensitivity narrows the acceptance cone.
func lookingAtScreen(state PerceptionState, sensitivity float64) bool {
	if !state.Observed || !state.FaceVisible {
		return false
	}
	if sensitivity < 0.1 {
		sensitivity = 0.1
	}
	if math.Abs(state.Yaw) > lookYawBase/sensitivity {
		return false
	}
	if math.Abs(state.Pitch) > lookPitchMax {
		return false
	}
	return state.FacePositionX >= 0.12 && state.FacePositionX <= 0.88
}

// consumeGestures forwards fresh, unconsumed gesture triggers as commands.
// Each trigger is acted on at most once and expires after the trigger
// window so a slow consumer cannot double-count a single gesture.
func (o *Orchestrator) consumeGestures(state PerceptionState, now time.Time) {
	if fresh(state.WaveAt, o.handledWave, now) {
		o.handledWave = state.WaveAt
		o.estimator.SetMood(attention.MoodExcited)
		o.config.OnEvent(EventGreeting)
	}
	if fresh(state.PeaceAt, o.handledPeace, now) {
		o.handledPeace = state.PeaceAt
		o.config.OnEvent(EventBreakToggle)
	}
	if fresh(state.HeartAt, o.handledHeart, now) {
		o.handledHeart = state.HeartAt
		o.estimator.SetMood(attention.MoodLove)
		o.config.OnEvent(EventHeart)
	}
}

func fresh(triggeredAt, handledAt, now time.Time) bool {
	if triggeredAt.IsZero() || !triggeredAt.After(handledAt) {
		return false
	}
	return now.Sub(triggeredAt) <= triggerWindow
}

// accrue credits the focused or distracted bucket from the current level.
// The band between counts toward neither.
func (o *Orchestrator) accrue() {
	level := o.estimator.Level()
	switch {
	case level > focusedBand:
		o.stats.FocusedSeconds += tickSeconds
	case level < distractedBand:
		o.stats.DistractedSeconds += tickSeconds
	}
}

// checkSag emits a one-shot warning when attention stays in the bored bands
// past the configured warning delay.
func (o *Orchestrator) checkSag(settings Settings, now time.Time) {
	if o.estimator.Level() >= focusedBand {
		o.sagStart = time.Time{}
		o.sagWarned = false
		return
	}
	if o.sagStart.IsZero() {
		o.sagStart = now
		return
	}
	if !o.sagWarned && now.Sub(o.sagStart) >= settings.WarningDelay {
		o.sagWarned = true
		o.config.OnEvent(EventWarning)
	}
}

// maybeMotivate runs the slow motivation check: every 300s, fire the
// side-effect if focus is high and sustained, at most once per 600s.
func (o *Orchestrator) maybeMotivate(now time.Time) {
	if !o.lastMotivationCheck.IsZero() && now.Sub(o.lastMotivationCheck) < motivationInterval {
		return
	}
	o.lastMotivationCheck = now

	if o.stats.FocusedSeconds <= motivationMinFocus {
		return
	}
	if o.stats.FocusPercent() <= motivationMinPct {
		return
	}
	if !o.lastMotivationAt.IsZero() && now.Sub(o.lastMotivationAt) < motivationCooldown {
		return
	}

	o.lastMotivationAt = now
	o.config.OnEvent(EventMotivation)
}

// publish refreshes the snapshot served to collaborators.
func (o *Orchestrator) publish(class activity.Class, phase Phase, now time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.snapshot = Snapshot{
		At:         now,
		Level:      o.estimator.Level(),
		Mood:       o.estimator.Mood(),
		Bored:      o.estimator.Bored(),
		Context:    class,
		Phase:      phase,
		Appearance: attention.AppearanceFor(o.estimator.Mood()),
		Stats:      o.stats,
	}
}

// Snapshot returns the state published by the most recent tick.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.snapshot
}

// Stats returns the accumulated counters from the most recent tick.
func (o *Orchestrator) Stats() Stats {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.snapshot.Stats
}

// History exposes the estimator's attention history for persistence.
func (o *Orchestrator) History() []attention.Record {
	return o.estimator.History()
}

// alarmed reports whether a mood should be soothed on break or when idle.
func alarmed(mood attention.Mood) bool {
	switch mood {
	case attention.MoodAngry, attention.MoodSkeptical, attention.MoodWorried,
		attention.MoodConcerned, attention.MoodSad:
		return true
	}
	return false
}
