package perception

import (
	"gocv.io/x/gocv"
)

// MockProvider is a test implementation of the Provider interface.
// It allows tests to control the observation results.
type MockProvider struct {
	obs *Observation
	err error
}

// NewMockProvider creates a new MockProvider instance.
func NewMockProvider() *MockProvider {
	return &MockProvider{obs: &Observation{}}
}

// SetObservation sets the observation that will be returned by Observe.
func (m *MockProvider) SetObservation(obs *Observation) {
	m.obs = obs
}

// SetError sets the error that will be returned by Observe.
func (m *MockProvider) SetError(err error) {
	m.err = err
}

// Observe returns the pre-configured observation or error.
func (m *MockProvider) Observe(frame *gocv.Mat) (*Observation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.obs, nil
}

// Close is a no-op for the mock provider.
func (m *MockProvider) Close() error {
	return nil
}

// uniformHand returns a hand with every landmark at the given confidence,
// laid out as a loose open palm around the wrist position.
func uniformHand(wristX, wristY, confidence float64) Hand {
	hand := Hand{Handedness: "Right", Score: confidence}
	for i := 0; i < NumLandmarks; i++ {
		hand.Points[i] = Landmark{
			X:          wristX + float64(i%5)*0.02,
			Y:          wristY - float64(i/5)*0.05,
			Confidence: confidence,
		}
	}
	hand.Points[Wrist] = Landmark{X: wristX, Y: wristY, Confidence: confidence}
	return hand
}

// WavingHand returns a hand with the wrist at the given horizontal position,
// suitable for feeding wave-detection sample sequences.
func WavingHand(wristX float64) Hand {
	return uniformHand(wristX, 0.6, 0.9)
}

// PeaceHand returns a preset Hand representing a peace sign: index and middle
// fingers extended well above their knuckles, ring and little fingers curled.
func PeaceHand() Hand {
	hand := uniformHand(0.5, 0.7, 0.9)

	hand.Points[IndexMCP] = Landmark{X: 0.47, Y: 0.60, Confidence: 0.9}
	hand.Points[IndexTip] = Landmark{X: 0.46, Y: 0.44, Confidence: 0.9}

	hand.Points[MiddleMCP] = Landmark{X: 0.53, Y: 0.60, Confidence: 0.9}
	hand.Points[MiddleTip] = Landmark{X: 0.54, Y: 0.43, Confidence: 0.9}

	// Curled: tips barely above their base joints
	hand.Points[RingMCP] = Landmark{X: 0.57, Y: 0.62, Confidence: 0.9}
	hand.Points[RingTip] = Landmark{X: 0.57, Y: 0.60, Confidence: 0.9}

	hand.Points[PinkyMCP] = Landmark{X: 0.60, Y: 0.64, Confidence: 0.9}
	hand.Points[PinkyTip] = Landmark{X: 0.60, Y: 0.63, Confidence: 0.9}

	return hand
}

// OpenPalmHand returns a hand with all four fingers extended; it should not
// register as a peace sign because ring and little fingers are not curled.
func OpenPalmHand() Hand {
	hand := PeaceHand()
	hand.Points[RingTip] = Landmark{X: 0.57, Y: 0.46, Confidence: 0.9}
	hand.Points[PinkyTip] = Landmark{X: 0.60, Y: 0.48, Confidence: 0.9}
	return hand
}

// HeartHands returns two hands forming a heart shape: thumb tips nearly
// touching below the near-touching index tips.
func HeartHands() (Hand, Hand) {
	left := uniformHand(0.35, 0.6, 0.9)
	left.Handedness = "Left"
	right := uniformHand(0.65, 0.6, 0.9)

	left.Points[ThumbTip] = Landmark{X: 0.48, Y: 0.55, Confidence: 0.9}
	left.Points[IndexTip] = Landmark{X: 0.44, Y: 0.42, Confidence: 0.9}

	right.Points[ThumbTip] = Landmark{X: 0.52, Y: 0.55, Confidence: 0.9}
	right.Points[IndexTip] = Landmark{X: 0.56, Y: 0.42, Confidence: 0.9}

	return left, right
}

// AttentiveFace returns an observation of a face looking straight at the screen.
func AttentiveFace() *Observation {
	return &Observation{
		FaceVisible:   true,
		HeadPose:      HeadPose{Yaw: 0.02, Pitch: -0.05, Roll: 0.01},
		FacePositionX: 0.5,
	}
}

// AvertedFace returns an observation of a face turned away by the given yaw.
func AvertedFace(yaw float64) *Observation {
	return &Observation{
		FaceVisible:   true,
		HeadPose:      HeadPose{Yaw: yaw, Pitch: 0.0, Roll: 0.0},
		FacePositionX: 0.5,
	}
}
