package gaze

import (
	"math"

	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
)

// Segmentation states.
type segState int

const (
	seekingFixation segState = iota
	inFixation
	inSaccade
)

const (
	// MinFixationDuration is the shortest span of stable gaze that
	// counts as a fixation; shorter candidates are discarded as noise.
	MinFixationDuration = 0.2 // seconds

	// BlinkCutoff is the blink duration beyond which an open fixation
	// is closed early instead of merely pausing segmentation.
	BlinkCutoff = 0.4 // seconds

	// seekWindow is the number of recent samples whose positional
	// variance decides whether a fixation has begun.
	seekWindow = 3

	// saccadeCalmSpan is how many consecutive sub-threshold samples end
	// a saccade.
	saccadeCalmSpan = 2

	// minSaccadeDt guards against zero-delta artifacts producing
	// infinite velocities.
	minSaccadeDt = 1e-3 // seconds
)

// Segmenter classifies a session's sample stream into fixations and
// saccades using adaptive thresholds from the baseline. It assumes
// left-to-right reading progression; right-to-left and vertical scripts
// are not supported.
type Segmenter struct {
	state      segState
	window     []models.GazeSample
	fixSamples []models.GazeSample
	sacStart   models.GazeSample
	prev       *models.GazeSample
	blinkStart float64
	calm       int

	fixations []models.Fixation
	saccades  []models.Saccade
}

// NewSegmenter returns a segmenter in the seeking state.
func NewSegmenter() *Segmenter {
	return &Segmenter{blinkStart: -1}
}

// Push advances the state machine with one sample, classified against the
// given thresholds. Blink samples pause segmentation without resetting it
// unless the blink outlasts BlinkCutoff, which closes any open fixation.
func (g *Segmenter) Push(s models.GazeSample, th Thresholds) {
	if s.IsBlink {
		if g.blinkStart < 0 {
			g.blinkStart = s.Timestamp
		} else if s.Timestamp-g.blinkStart > BlinkCutoff {
			if g.state == inFixation {
				g.closeFixation()
			}
			g.reset()
		}
		return
	}
	g.blinkStart = -1

	if g.prev == nil {
		g.prev = &s
		g.window = append(g.window[:0], s)
		return
	}

	dt := s.Timestamp - g.prev.Timestamp
	if dt <= 0 {
		// Identical consecutive timestamps carry no motion information.
		return
	}
	velocity := math.Sqrt(sqDist(g.prev.AvgPos, s.AvgPos)) / dt

	switch g.state {
	case seekingFixation:
		g.window = append(g.window, s)
		if len(g.window) > seekWindow {
			g.window = g.window[1:]
		}
		if len(g.window) == seekWindow && positionVariance(g.window) < th.FixationVariance {
			g.state = inFixation
			g.fixSamples = append(g.fixSamples[:0], g.window...)
		}

	case inFixation:
		tail := g.fixSamples
		if len(tail) > seekWindow-1 {
			tail = tail[len(tail)-(seekWindow-1):]
		}
		probe := append(append([]models.GazeSample(nil), tail...), s)
		if velocity > th.SaccadeVelocity || positionVariance(probe) > th.FixationVariance {
			g.closeFixation()
			g.sacStart = *g.prev
			g.state = inSaccade
			g.calm = 0
		} else {
			g.fixSamples = append(g.fixSamples, s)
		}

	case inSaccade:
		if velocity <= th.SaccadeVelocity {
			g.calm++
		} else {
			g.calm = 0
		}
		if g.calm >= saccadeCalmSpan {
			g.closeSaccade(s)
			g.state = seekingFixation
			g.window = append(g.window[:0], s)
		}
	}

	g.prev = &s
}

// Finish closes an open fixation at the last seen sample, for end of
// stream or end of test.
func (g *Segmenter) Finish() {
	if g.state == inFixation {
		g.closeFixation()
	}
	g.reset()
}

// Flush returns the segments emitted since the last call.
func (g *Segmenter) Flush() ([]models.Fixation, []models.Saccade) {
	fx, sc := g.fixations, g.saccades
	g.fixations = nil
	g.saccades = nil
	return fx, sc
}

func (g *Segmenter) closeFixation() {
	if len(g.fixSamples) == 0 {
		return
	}
	start := g.fixSamples[0].Timestamp
	end := g.fixSamples[len(g.fixSamples)-1].Timestamp
	duration := end - start
	if duration < MinFixationDuration {
		return
	}
	g.fixations = append(g.fixations, models.Fixation{
		StartTime:        start,
		EndTime:          end,
		Duration:         duration,
		PositionVariance: positionVariance(g.fixSamples),
		MeanPosition:     meanPosition(g.fixSamples),
	})
}

func (g *Segmenter) closeSaccade(end models.GazeSample) {
	dt := end.Timestamp - g.sacStart.Timestamp
	if dt < minSaccadeDt {
		// Numerical artifact; an instantaneous jump is not a movement.
		return
	}
	amplitude := math.Sqrt(sqDist(g.sacStart.AvgPos, end.AvgPos))
	direction := end.AvgPos.X - g.sacStart.AvgPos.X
	g.saccades = append(g.saccades, models.Saccade{
		StartTime:  g.sacStart.Timestamp,
		EndTime:    end.Timestamp,
		Velocity:   amplitude / dt,
		Amplitude:  amplitude,
		Direction:  direction,
		IsBackward: direction < 0,
	})
}

func (g *Segmenter) reset() {
	g.state = seekingFixation
	g.window = g.window[:0]
	g.fixSamples = g.fixSamples[:0]
	g.prev = nil
	g.blinkStart = -1
	g.calm = 0
}

// positionVariance is the mean squared distance of the samples' gaze
// positions from their centroid.
func positionVariance(samples []models.GazeSample) float64 {
	if len(samples) < 2 {
		return 0
	}
	center := meanPosition(samples)
	var sum float64
	for _, s := range samples {
		sum += sqDist(center, s.AvgPos)
	}
	return sum / float64(len(samples))
}

func meanPosition(samples []models.GazeSample) models.Point {
	var x, y float64
	for _, s := range samples {
		x += s.AvgPos.X
		y += s.AvgPos.Y
	}
	n := float64(len(samples))
	return models.Point{X: x / n, Y: y / n}
}
