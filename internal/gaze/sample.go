package gaze

import (
	"math"

	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
)

// DropCounters tracks frames rejected by the normalizer. Exposed so
// confidence scoring can discount sessions with noisy input.
type DropCounters struct {
	Malformed  int `json:"malformed"`
	Degenerate int `json:"degenerate"`
}

// Normalizer converts raw landmark frames into canonical GazeSamples and
// enforces per-session timestamp monotonicity.
type Normalizer struct {
	lastTimestamp float64
	hasLast       bool
	drops         DropCounters
}

// NewNormalizer returns a Normalizer for a single session stream.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize validates one raw frame and produces a GazeSample. Frames with
// non-finite fields are dropped as malformed; frames whose timestamp does
// not advance are dropped as degenerate. A frame with no detected eyes is
// treated as a one-frame blink, not an error.
func (n *Normalizer) Normalize(f models.RawFrame) (models.GazeSample, error) {
	if !finite(f.Timestamp) || !finite(f.LeftX) || !finite(f.LeftY) ||
		!finite(f.RightX) || !finite(f.RightY) || !finite(f.PupilDiameter) {
		n.drops.Malformed++
		return models.GazeSample{}, models.NewAnalysisError(models.ErrMalformedSample,
			"frame at t=%v contains non-finite values", f.Timestamp)
	}

	if n.hasLast && f.Timestamp <= n.lastTimestamp {
		n.drops.Degenerate++
		return models.GazeSample{}, models.NewAnalysisError(models.ErrDegenerateTimestamp,
			"timestamp %v does not advance past %v", f.Timestamp, n.lastTimestamp)
	}
	n.lastTimestamp = f.Timestamp
	n.hasLast = true

	blink := f.Blink
	if f.LeftX == 0 && f.LeftY == 0 && f.RightX == 0 && f.RightY == 0 {
		// Eyes not detected this frame; treat as a blink gap.
		blink = true
	}

	left := models.Point{X: f.LeftX, Y: f.LeftY}
	right := models.Point{X: f.RightX, Y: f.RightY}
	return models.GazeSample{
		Timestamp:     f.Timestamp,
		LeftEye:       left,
		RightEye:      right,
		AvgPos:        models.Point{X: (left.X + right.X) / 2, Y: (left.Y + right.Y) / 2},
		PupilDiameter: f.PupilDiameter,
		IsBlink:       blink,
	}, nil
}

// Dropped returns the counters for rejected frames.
func (n *Normalizer) Dropped() DropCounters {
	return n.drops
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
