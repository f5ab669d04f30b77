package gesture

import (
	"math"
	"time"

	"github.com/ayusman/drishti/internal/perception"
)

// peacePoints are the landmarks a peace-sign decision needs; every one must
// clear the point confidence threshold or the frame yields no trigger.
var peacePoints = []int{
	perception.IndexTip, perception.IndexMCP,
	perception.MiddleTip, perception.MiddleMCP,
	perception.RingTip, perception.RingMCP,
	perception.PinkyTip, perception.PinkyMCP,
}

// DetectPeace evaluates one frame's hand observation for a peace sign and
// reports whether the trigger fired.
//
// The pose requires index and middle fingertips extended at least
// peaceExtendMin above their base joints (y increases downward), ring and
// little fingertips curled to within peaceCurlMax of their base joints, and
// the two extended tips spread horizontally while staying vertically aligned.
func (r *Recognizer) DetectPeace(hand *perception.Hand, now time.Time) bool {
	if hand == nil {
		return false
	}

	for _, idx := range peacePoints {
		if hand.Points[idx].Confidence <= pointMinConfidence {
			return false
		}
	}

	indexTip := hand.Points[perception.IndexTip]
	indexMCP := hand.Points[perception.IndexMCP]
	middleTip := hand.Points[perception.MiddleTip]
	middleMCP := hand.Points[perception.MiddleMCP]
	ringTip := hand.Points[perception.RingTip]
	ringMCP := hand.Points[perception.RingMCP]
	pinkyTip := hand.Points[perception.PinkyTip]
	pinkyMCP := hand.Points[perception.PinkyMCP]

	indexExtended := indexMCP.Y-indexTip.Y >= peaceExtendMin
	middleExtended := middleMCP.Y-middleTip.Y >= peaceExtendMin
	ringCurled := ringMCP.Y-ringTip.Y < peaceCurlMax
	pinkyCurled := pinkyMCP.Y-pinkyTip.Y < peaceCurlMax

	if !indexExtended || !middleExtended || !ringCurled || !pinkyCurled {
		return false
	}

	spread := math.Abs(indexTip.X - middleTip.X)
	aligned := math.Abs(indexTip.Y - middleTip.Y)
	if spread <= peaceSpreadMin || aligned > peaceAlignMax {
		return false
	}

	if !r.canFire(KindPeace, PeaceCooldown, now) {
		return false
	}

	r.fired(KindPeace, now)
	return true
}

// DetectHeart evaluates a two-hand heart shape: the thumb tips of both hands
// nearly touching below the nearly-touching index tips. Frames with fewer
// than two hands are skipped entirely; no partial state carries over.
func (r *Recognizer) DetectHeart(hands []perception.Hand, now time.Time) bool {
	if len(hands) < 2 {
		return false
	}

	a, b := &hands[0], &hands[1]
	for _, h := range []*perception.Hand{a, b} {
		if h.Points[perception.ThumbTip].Confidence <= pointMinConfidence ||
			h.Points[perception.IndexTip].Confidence <= pointMinConfidence {
			return false
		}
	}

	thumbA := a.Points[perception.ThumbTip]
	thumbB := b.Points[perception.ThumbTip]
	indexA := a.Points[perception.IndexTip]
	indexB := b.Points[perception.IndexTip]

	if perception.Distance(thumbA, thumbB) >= heartThumbMax {
		return false
	}
	if perception.Distance(indexA, indexB) >= heartIndexMax {
		return false
	}

	// Thumbs must sit below the index tips (numerically greater y).
	avgThumbY := (thumbA.Y + thumbB.Y) / 2
	avgIndexY := (indexA.Y + indexB.Y) / 2
	if avgThumbY <= avgIndexY {
		return false
	}

	if !r.canFire(KindHeart, HeartCooldown, now) {
		return false
	}

	r.fired(KindHeart, now)
	return true
}
