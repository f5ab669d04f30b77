// Package gesture converts streams of hand observations into discrete,
// debounced trigger events.
package gesture

import (
	"time"
)

// Kind identifies a recognized gesture type.
type Kind string

const (
	// KindWave is a side-to-side open-hand wave.
	KindWave Kind = "wave"
	// KindPeace is a two-finger peace sign, used as the break toggle.
	KindPeace Kind = "peace"
	// KindHeart is a two-hand heart shape.
	KindHeart Kind = "heart"
)

// Cooldown windows per gesture kind. A gesture cannot trigger again until
// its cooldown has elapsed since the previous trigger of the same kind.
const (
	WaveCooldown  = 5 * time.Second
	PeaceCooldown = 3 * time.Second
	HeartCooldown = 5 * time.Second
)

// Detection thresholds, in normalized frame coordinates. These are tuned
// values; see the detector functions for how each is applied.
const (
	wristMinConfidence = 0.7
	pointMinConfidence = 0.5

	waveWindow       = 1 * time.Second
	waveMinSamples   = 5
	waveMinDelta     = 0.06
	waveMinReversals = 3

	peaceExtendMin  = 0.06
	peaceCurlMax    = 0.03
	peaceSpreadMin  = 0.04
	peaceAlignMax   = 0.08
	heartThumbMax   = 0.15
	heartIndexMax   = 0.20
)

type wristSample struct {
	x  float64
	at time.Time
}

// Recognizer holds the per-gesture detection state: the trailing wrist
// sample buffer for wave detection and the last-trigger timestamp for each
// kind. A Recognizer is not safe for concurrent use; the perception worker
// that feeds it serializes frames.
type Recognizer struct {
	wrist     []wristSample
	lastFired map[Kind]time.Time
}

// NewRecognizer creates a Recognizer with empty detection state.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		lastFired: make(map[Kind]time.Time),
	}
}

// canFire reports whether the cooldown for the given kind has elapsed.
func (r *Recognizer) canFire(kind Kind, cooldown time.Duration, now time.Time) bool {
	last, ok := r.lastFired[kind]
	if !ok {
		return true
	}
	return now.Sub(last) >= cooldown
}

// fired records a trigger of the given kind at now.
func (r *Recognizer) fired(kind Kind, now time.Time) {
	r.lastFired[kind] = now
}

// Reset clears all detection state, including cooldowns.
func (r *Recognizer) Reset() {
	r.wrist = r.wrist[:0]
	r.lastFired = make(map[Kind]time.Time)
}
