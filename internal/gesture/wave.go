package gesture

import (
	"math"
	"time"

	"github.com/ayusman/drishti/internal/perception"
)

// DetectWave feeds one frame's hand observation into the wave detector and
// reports whether a wave trigger fired on this frame.
//
// A wave is at least waveMinReversals horizontal direction changes of the
// wrist within the trailing one-second window. Movements smaller than
// waveMinDelta are treated as jitter and ignored entirely; they count
// toward neither direction.
func (r *Recognizer) DetectWave(hand *perception.Hand, now time.Time) bool {
	if hand == nil {
		return false
	}

	wrist := hand.Points[perception.Wrist]
	if wrist.Confidence <= wristMinConfidence {
		return false
	}

	r.wrist = append(r.wrist, wristSample{x: wrist.X, at: now})
	r.evictStale(now)

	if len(r.wrist) < waveMinSamples {
		return false
	}

	if countReversals(r.wrist) < waveMinReversals {
		return false
	}

	if !r.canFire(KindWave, WaveCooldown, now) {
		return false
	}

	r.wrist = r.wrist[:0]
	r.fired(KindWave, now)
	return true
}

// evictStale drops samples older than the wave window relative to the
// newest sample.
func (r *Recognizer) evictStale(now time.Time) {
	cutoff := now.Add(-waveWindow)
	i := 0
	for i < len(r.wrist) && r.wrist[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		r.wrist = append(r.wrist[:0], r.wrist[i:]...)
	}
}

// countReversals counts horizontal direction changes across successive
// samples. The first qualifying movement counts as a change from rest.
func countReversals(samples []wristSample) int {
	reversals := 0
	lastDir := 0

	for i := 1; i < len(samples); i++ {
		dx := samples[i].x - samples[i-1].x
		if math.Abs(dx) <= waveMinDelta {
			continue
		}
		dir := 1
		if dx < 0 {
			dir = -1
		}
		if dir != lastDir {
			reversals++
			lastDir = dir
		}
	}

	return reversals
}
