package attention

import (
	"math"
	"time"
)

// Tuned estimator constants. Preserved as-is for behavioral compatibility;
// they have no derivation beyond empirical tuning.
const (
	targetRaise     = 0.2
	smoothingFactor = 0.15

	baseGracePeriod   = 2.0 // seconds, face visible but looking away
	noFaceGraceFactor = 1.5

	lookAwayBaseDecay  = 0.04
	lookAwayAngleDecay = 0.08
	angleDecayRange    = 0.5 // radians at which the angle term saturates
	noFaceDecay        = 0.08

	forcedDistractionLevel = 0.1

	historyCapacity = 1000
	historyTrim     = 100
	historyMinDelta = 0.1
)

// Record is one appended attention history entry.
type Record struct {
	At    time.Time `json:"at"`
	Level float64   `json:"level"`
	Mood  Mood      `json:"mood"`
}

// TickInput carries the per-tick observations and read-only configuration
// into Update.
type TickInput struct {
	FaceVisible     bool
	LookingAtScreen bool
	HeadAngle       float64 // radians, how far the head is turned
	WorkingContext  bool    // foreground activity classified as work
	InWorkSession   bool    // an active Pomodoro work session
	Strictness      Strictness
	TimeOfDay       TimeOfDay
	Energy          float64 // time-of-day energy factor
}

// Estimator holds the smoothed attention level and mood classification.
// It has no failure modes: every input is clamped by the update formulas.
// Not safe for concurrent use; the orchestrator serializes ticks.
type Estimator struct {
	level  float64
	target float64
	mood   Mood
	bored  bool

	lookAwayStart   time.Time
	lastDistraction time.Time

	history []Record
}

// NewEstimator creates an estimator starting at full attention.
func NewEstimator() *Estimator {
	return &Estimator{
		level:  1.0,
		target: 1.0,
		mood:   MoodHappy,
	}
}

// Level returns the smoothed attention level in [0,1].
func (e *Estimator) Level() float64 { return e.level }

// Mood returns the current mood classification.
func (e *Estimator) Mood() Mood { return e.mood }

// Bored reports whether the current mood carries the bored flag.
func (e *Estimator) Bored() bool { return e.bored }

// LastDistraction returns when the level last fell into the sad band,
// or the zero time if it never has.
func (e *Estimator) LastDistraction() time.Time { return e.lastDistraction }

// History returns the recorded attention history, oldest first.
func (e *Estimator) History() []Record { return e.history }

// Update runs one estimator tick. The target level is raised, held, or
// decayed from the observation, then the level approaches the target by a
// fixed fractional step, then the mood is reclassified from the new level.
func (e *Estimator) Update(in TickInput, now time.Time) {
	before := e.level

	switch {
	case in.FaceVisible && in.LookingAtScreen:
		e.lookAwayStart = time.Time{}
		e.target = clamp01(e.target + targetRaise)

	case in.FaceVisible:
		// Looking away: free within the grace window, decaying after,
		// with the penalty growing with head angle.
		grace := baseGracePeriod * in.Strictness.GraceMultiplier()
		if e.inGrace(now, grace) {
			break
		}
		angleTerm := math.Min(math.Max(in.HeadAngle, 0)/angleDecayRange, 1)
		decay := (lookAwayBaseDecay + angleTerm*lookAwayAngleDecay) * in.Energy * in.Strictness.DecayMultiplier()
		e.target = clamp01(e.target - decay)

	default:
		// No face at all: a longer grace window, then a flat decay since
		// there is no pose to scale by.
		grace := baseGracePeriod * noFaceGraceFactor * in.Strictness.GraceMultiplier()
		if e.inGrace(now, grace) {
			break
		}
		decay := noFaceDecay * in.Energy * in.Strictness.DecayMultiplier()
		e.target = clamp01(e.target - decay)
	}

	// Exponential approach toward the target, exactly once per tick.
	e.level = clamp01(e.level + (e.target-e.level)*smoothingFactor)

	e.classify(in, now)

	if math.Abs(before-e.level) > historyMinDelta {
		e.appendHistory(now)
	}
}

// inGrace starts the look-away clock if needed and reports whether the
// elapsed look-away is still within the grace window.
func (e *Estimator) inGrace(now time.Time, grace float64) bool {
	if e.lookAwayStart.IsZero() {
		e.lookAwayStart = now
	}
	return now.Sub(e.lookAwayStart).Seconds() < grace
}

// classify maps the current level to a mood using fixed bands plus the
// working/morning and night overrides.
func (e *Estimator) classify(in TickInput, now time.Time) {
	// During night hours outside a work session the companion is sleepy
	// regardless of the band, as long as attention is still meaningfully up.
	if in.TimeOfDay == Night && !in.InWorkSession && e.level > 0.5 {
		e.mood = MoodSleepy
		e.bored = false
		return
	}

	switch {
	case e.level >= 0.8:
		if in.WorkingContext || in.TimeOfDay == Morning {
			e.mood = MoodProud
		} else {
			e.mood = MoodHappy
		}
		e.bored = false
	case e.level >= 0.6:
		e.mood = MoodNeutral
		e.bored = false
	case e.level >= 0.4:
		e.mood = MoodConcerned
		e.bored = true
	case e.level >= 0.2:
		e.mood = MoodWorried
		e.bored = true
	default:
		e.mood = MoodSad
		e.bored = true
		e.lastDistraction = now
	}
}

// ForceDistracted reacts instantly to a blacklisted foreground app. It is
// the one discontinuous level change: smoothing would hide the reaction.
// The mood escalates with how often the user has been caught.
func (e *Estimator) ForceDistracted(ignoreCount int, now time.Time) {
	e.level = forcedDistractionLevel
	e.target = forcedDistractionLevel
	e.bored = false // active displeasure, not boredom
	e.lastDistraction = now

	switch {
	case ignoreCount < 6:
		e.mood = MoodAngry
	case ignoreCount <= 10:
		e.mood = MoodSkeptical
	default:
		e.mood = MoodSad
	}

	e.appendHistory(now)
}

// SetMood directly assigns the mood without touching the level. Used for
// gesture reactions and demos.
func (e *Estimator) SetMood(mood Mood) {
	e.mood = mood
}

func (e *Estimator) appendHistory(now time.Time) {
	e.history = append(e.history, Record{At: now, Level: e.level, Mood: e.mood})
	if len(e.history) > historyCapacity {
		e.history = append(e.history[:0], e.history[historyTrim:]...)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
