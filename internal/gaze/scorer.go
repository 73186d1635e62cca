package gaze

import (
	"math"

	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
)

// Fixed indicator weights. They sum to 1 so the aggregate probability is
// bounded in [0,100] for any indicator values in [0,1].
const (
	weightBackwardSaccades  = 0.25
	weightLongFixations     = 0.20
	weightIrregularSaccades = 0.20
	weightGazeStability     = 0.15
	weightBlinkRate         = 0.10
	weightPupilVariability  = 0.10
)

// Reference scales for indicators that normalize against population
// expectations rather than the session baseline.
const (
	refBackwardRatio  = 0.4 // backward/total saccade ratio saturating the indicator
	refLongFixation   = 0.4 // seconds above MinFixationDuration
	refSaccadeAmp     = 0.3 // normalized screen units
	refBlinksPerMin   = 30.0
	refMinPupilCV     = 0.2
	refVarianceFactor = 4.0 // multiples of the baseline fixation variance
)

// Score combines the reading metrics into the six normalized indicators
// and the weighted aggregate probability. Gaze stability and pupil
// variability are normalized against the session baseline; ticks taken as
// the baseline drifts are therefore not mutually monotonic, which is
// accepted behavior for an adaptive screen.
func Score(m models.ReadingMetrics, th Thresholds) models.IndicatorScore {
	score := models.IndicatorScore{}

	if m.SaccadeCount > 0 {
		ratio := float64(m.RegressionCount) / float64(m.SaccadeCount)
		score.BackwardSaccades = clamp01(ratio / refBackwardRatio)
	}

	if m.AvgFixationDur > 0 {
		score.LongFixations = clamp01((m.AvgFixationDur - MinFixationDuration) / refLongFixation)
	}

	score.IrregularSaccades = clamp01(m.AvgSaccadeAmp / refSaccadeAmp)

	if th.FixationVariance > 0 {
		score.GazeStability = clamp01(m.MeanFixVariance / (refVarianceFactor * th.FixationVariance))
	}

	score.BlinkRate = clamp01(m.BlinkRate / refBlinksPerMin)

	baselineCV := 0.0
	if th.PupilMean > 0 {
		baselineCV = th.PupilStd / th.PupilMean
	}
	score.PupilVariability = clamp01(m.PupilVariability / math.Max(2*baselineCV, refMinPupilCV))

	probability := 100 * (weightBackwardSaccades*score.BackwardSaccades +
		weightLongFixations*score.LongFixations +
		weightIrregularSaccades*score.IrregularSaccades +
		weightGazeStability*score.GazeStability +
		weightBlinkRate*score.BlinkRate +
		weightPupilVariability*score.PupilVariability)
	score.Probability = math.Min(math.Max(probability, 0), 100)
	score.Severity = models.SeverityFor(score.Probability)
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
