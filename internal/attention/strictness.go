package attention

import "time"

// Strictness selects how forgiving the estimator is about look-aways.
type Strictness string

const (
	StrictnessChill  Strictness = "chill"
	StrictnessNormal Strictness = "normal"
	StrictnessStrict Strictness = "strict"
)

// GraceMultiplier scales the base grace period before decay begins.
func (s Strictness) GraceMultiplier() float64 {
	switch s {
	case StrictnessChill:
		return 2.0
	case StrictnessStrict:
		return 0.5
	default:
		return 1.0
	}
}

// DecayMultiplier scales the per-tick attention decay.
func (s Strictness) DecayMultiplier() float64 {
	switch s {
	case StrictnessChill:
		return 0.5
	case StrictnessStrict:
		return 1.5
	default:
		return 1.0
	}
}

// VolumeMultiplier scales presentation tone volume. Not used by the
// estimator itself; served to the audio collaborator alongside the mood.
func (s Strictness) VolumeMultiplier() float64 {
	switch s {
	case StrictnessChill:
		return 0.6
	default:
		return 1.0
	}
}

// TimeOfDay is a coarse banding of the local clock used by the mood
// overrides and the energy curve.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// TimeOfDayFor bands the given time: morning 6-11, afternoon 12-17,
// evening 18-21, night otherwise.
func TimeOfDayFor(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return Morning
	case h >= 12 && h < 18:
		return Afternoon
	case h >= 18 && h < 22:
		return Evening
	default:
		return Night
	}
}

// EnergyFor returns the time-of-day energy factor applied to attention
// decay. Tuned so decay bites harder late in the day.
func EnergyFor(t TimeOfDay) float64 {
	switch t {
	case Morning:
		return 0.9
	case Afternoon:
		return 1.0
	case Evening:
		return 1.1
	default:
		return 1.2
	}
}
