// Package attention estimates the user's sustained focus from per-frame
// face observations and classifies it into a discrete mood.
package attention

// Mood is the discrete classification derived from the attention level plus
// contextual overrides.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodProud     Mood = "proud"
	MoodExcited   Mood = "excited"
	MoodLove      Mood = "love"
	MoodNeutral   Mood = "neutral"
	MoodConcerned Mood = "concerned"
	MoodWorried   Mood = "worried"
	MoodSad       Mood = "sad"
	MoodAngry     Mood = "angry"
	MoodSkeptical Mood = "skeptical"
	MoodSleepy    Mood = "sleepy"
	MoodSurprised Mood = "surprised"
)

// Appearance holds the presentation attributes for a mood. These belong to
// the rendering collaborator; the core only serves them as a lookup.
type Appearance struct {
	Color      string  `json:"color"`      // hex face color
	PupilScale float64 `json:"pupilScale"` // relative pupil size
	BrowAngle  float64 `json:"browAngle"`  // degrees, positive = raised
	MouthCurve float64 `json:"mouthCurve"` // -1 frown .. 1 smile
}

var appearances = map[Mood]Appearance{
	MoodHappy:     {Color: "#FFD93D", PupilScale: 1.0, BrowAngle: 8, MouthCurve: 0.8},
	MoodProud:     {Color: "#FFB830", PupilScale: 1.05, BrowAngle: 12, MouthCurve: 1.0},
	MoodExcited:   {Color: "#FF8E3C", PupilScale: 1.25, BrowAngle: 15, MouthCurve: 1.0},
	MoodLove:      {Color: "#FF6B81", PupilScale: 1.3, BrowAngle: 10, MouthCurve: 0.9},
	MoodNeutral:   {Color: "#A8DADC", PupilScale: 1.0, BrowAngle: 0, MouthCurve: 0.1},
	MoodConcerned: {Color: "#89C2D9", PupilScale: 0.95, BrowAngle: -5, MouthCurve: -0.2},
	MoodWorried:   {Color: "#6497B1", PupilScale: 0.9, BrowAngle: -12, MouthCurve: -0.5},
	MoodSad:       {Color: "#4A6FA5", PupilScale: 0.85, BrowAngle: -18, MouthCurve: -0.8},
	MoodAngry:     {Color: "#E63946", PupilScale: 0.7, BrowAngle: -25, MouthCurve: -1.0},
	MoodSkeptical: {Color: "#B56576", PupilScale: 0.8, BrowAngle: -8, MouthCurve: -0.4},
	MoodSleepy:    {Color: "#9D8DF1", PupilScale: 0.6, BrowAngle: -3, MouthCurve: 0.0},
	MoodSurprised: {Color: "#F1FAEE", PupilScale: 1.4, BrowAngle: 20, MouthCurve: 0.3},
}

// AppearanceFor returns the presentation attributes for a mood. Unknown
// moods get the neutral appearance.
func AppearanceFor(mood Mood) Appearance {
	if a, ok := appearances[mood]; ok {
		return a
	}
	return appearances[MoodNeutral]
}
