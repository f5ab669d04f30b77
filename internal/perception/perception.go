package perception

import "gocv.io/x/gocv"

// Provider defines the interface for landmark/pose observation sources.
type Provider interface {
	// Observe analyzes a video frame and returns the face/hand observation
	// for that frame. A frame with no detectable face or hands yields an
	// Observation with FaceVisible=false and an empty hand list, not an error.
	Observe(frame *gocv.Mat) (*Observation, error)

	// Close releases any resources held by the provider.
	Close() error
}

// Config holds configuration options for observation providers.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}

// HeadPose holds the detected face orientation in radians.
type HeadPose struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

// Observation is a single frame's perception result. All coordinates are
// frame-normalized to [0,1] with y increasing downward.
type Observation struct {
	FaceVisible   bool     `json:"faceVisible"`
	HeadPose      HeadPose `json:"headPose"`
	FacePositionX float64  `json:"facePositionX"`
	Hands         []Hand   `json:"hands"`
}

// Empty reports whether the observation carries no usable signal.
func (o *Observation) Empty() bool {
	return o == nil || (!o.FaceVisible && len(o.Hands) == 0)
}
