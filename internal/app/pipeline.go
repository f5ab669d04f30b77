package app

import (
	"log"
	"time"

	"github.com/ayusman/drishti/internal/focus"
	"github.com/ayusman/drishti/internal/perception"
)

// runPerception is the perception worker: it reads frames at the camera
// cadence, runs landmark detection and the gesture detectors, and publishes
// an immutable snapshot for the tick path.
//
// Worker discipline:
//  1. Start in idle mode (5 FPS); motion switches to active mode (15 FPS)
//  2. A frame is dropped, not queued, while the previous one is in flight
//  3. The published snapshot is replaced atomically, never mutated
//  4. After 2s without motion, drop back to idle mode
func (a *App) runPerception(stop <-chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			// Single-flight gate: never analyze two frames concurrently.
			if !a.busy.CompareAndSwap(false, true) {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				a.busy.Store(false)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle mode")
			}

			obs, err := a.provider.Observe(frame)
			frame.Close()

			if err != nil {
				// Degraded observation, not an error: publish "nothing seen".
				obs = nil
			}

			a.publishObservation(obs, time.Now())
			a.busy.Store(false)
		}
	}
}

// publishObservation runs the gesture detectors over the observation and
// atomically replaces the snapshot the tick path reads. Trigger timestamps
// carry over from the previous snapshot until they expire there.
func (a *App) publishObservation(obs *perception.Observation, now time.Time) {
	prev := a.latest.Load()

	next := focus.PerceptionState{
		Observed: obs != nil,
		At:       now,
		WaveAt:   prev.WaveAt,
		PeaceAt:  prev.PeaceAt,
		HeartAt:  prev.HeartAt,
	}

	if obs != nil {
		next.FaceVisible = obs.FaceVisible
		next.Yaw = obs.HeadPose.Yaw
		next.Pitch = obs.HeadPose.Pitch
		next.FacePositionX = obs.FacePositionX

		// Single-hand detectors only ever consider the first reported hand;
		// the two-hand detector is skipped below two hands.
		if len(obs.Hands) > 0 {
			hand := &obs.Hands[0]
			if a.recognizer.DetectWave(hand, now) {
				next.WaveAt = now
			}
			if a.recognizer.DetectPeace(hand, now) {
				next.PeaceAt = now
			}
		}
		if a.recognizer.DetectHeart(obs.Hands, now) {
			next.HeartAt = now
		}
	}

	a.latest.Store(&next)
}
