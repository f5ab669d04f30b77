package gesture

import (
	"testing"
	"time"

	"github.com/ayusman/drishti/internal/perception"
)

func TestDetectPeace_Fires(t *testing.T) {
	r := NewRecognizer()
	hand := perception.PeaceHand()
	now := time.Unix(1000, 0)

	if !r.DetectPeace(&hand, now) {
		t.Fatal("expected peace sign to trigger")
	}
}

func TestDetectPeace_Cooldown(t *testing.T) {
	r := NewRecognizer()
	hand := perception.PeaceHand()
	now := time.Unix(1000, 0)

	if !r.DetectPeace(&hand, now) {
		t.Fatal("expected first trigger")
	}

	// A continuous stream of qualifying frames fires at most once per 3s.
	for i := 0; i < 20; i++ {
		now = now.Add(100 * time.Millisecond)
		if r.DetectPeace(&hand, now) {
			t.Fatalf("unexpected trigger %v after first", now.Sub(time.Unix(1000, 0)))
		}
	}

	now = now.Add(2 * time.Second) // 4s total
	if !r.DetectPeace(&hand, now) {
		t.Error("expected trigger after cooldown elapsed")
	}
}

func TestDetectPeace_OpenPalmRejected(t *testing.T) {
	r := NewRecognizer()
	hand := perception.OpenPalmHand()

	if r.DetectPeace(&hand, time.Unix(1000, 0)) {
		t.Error("open palm must not register as a peace sign")
	}
}

func TestDetectPeace_LowConfidence(t *testing.T) {
	r := NewRecognizer()
	hand := perception.PeaceHand()
	hand.Points[perception.RingMCP].Confidence = 0.3

	if r.DetectPeace(&hand, time.Unix(1000, 0)) {
		t.Error("expected no trigger when a required landmark is low-confidence")
	}
}

func TestDetectPeace_FingersTooClose(t *testing.T) {
	r := NewRecognizer()
	hand := perception.PeaceHand()

	// Collapse the horizontal spread between the extended tips.
	hand.Points[perception.MiddleTip].X = hand.Points[perception.IndexTip].X + 0.01

	if r.DetectPeace(&hand, time.Unix(1000, 0)) {
		t.Error("expected no trigger when extended tips are not spread")
	}
}

func TestDetectHeart_Fires(t *testing.T) {
	r := NewRecognizer()
	left, right := perception.HeartHands()
	now := time.Unix(1000, 0)

	if !r.DetectHeart([]perception.Hand{left, right}, now) {
		t.Fatal("expected heart gesture to trigger")
	}
}

func TestDetectHeart_SingleHandSkipped(t *testing.T) {
	r := NewRecognizer()
	left, _ := perception.HeartHands()

	if r.DetectHeart([]perception.Hand{left}, time.Unix(1000, 0)) {
		t.Error("expected no evaluation with fewer than two hands")
	}
}

func TestDetectHeart_ThumbsAboveIndexRejected(t *testing.T) {
	r := NewRecognizer()
	left, right := perception.HeartHands()

	// Flip the shape: thumbs above the index tips.
	left.Points[perception.ThumbTip].Y = 0.30
	right.Points[perception.ThumbTip].Y = 0.30

	if r.DetectHeart([]perception.Hand{left, right}, time.Unix(1000, 0)) {
		t.Error("expected no trigger when thumbs sit above index tips")
	}
}

func TestDetectHeart_HandsTooFarApart(t *testing.T) {
	r := NewRecognizer()
	left, right := perception.HeartHands()

	right.Points[perception.ThumbTip].X = left.Points[perception.ThumbTip].X + 0.4

	if r.DetectHeart([]perception.Hand{left, right}, time.Unix(1000, 0)) {
		t.Error("expected no trigger when thumb tips are far apart")
	}
}

func TestDetectHeart_Cooldown(t *testing.T) {
	r := NewRecognizer()
	left, right := perception.HeartHands()
	hands := []perception.Hand{left, right}
	now := time.Unix(1000, 0)

	if !r.DetectHeart(hands, now) {
		t.Fatal("expected first trigger")
	}
	if r.DetectHeart(hands, now.Add(2*time.Second)) {
		t.Error("expected no trigger inside 5s cooldown")
	}
	if !r.DetectHeart(hands, now.Add(5*time.Second)) {
		t.Error("expected trigger once cooldown elapsed")
	}
}

func TestRecognizer_IndependentCooldowns(t *testing.T) {
	r := NewRecognizer()
	now := time.Unix(1000, 0)

	peace := perception.PeaceHand()
	if !r.DetectPeace(&peace, now) {
		t.Fatal("expected peace trigger")
	}

	// The peace cooldown must not suppress an immediate heart trigger.
	left, right := perception.HeartHands()
	if !r.DetectHeart([]perception.Hand{left, right}, now) {
		t.Error("expected heart trigger despite recent peace trigger")
	}
}
