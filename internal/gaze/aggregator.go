package gaze

import (
	"gonum.org/v1/gonum/stat"

	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
	"github.com/Mahekpandey/DyslexiaDetection/internal/text"
)

// pupilWindow bounds the pupil-diameter history used for variability, a
// couple of minutes of signal at the nominal frame cadence.
const pupilWindow = 1000

// Aggregator accumulates segment history and sample-level signals for one
// reading test and derives the ReadingMetrics on each evaluation tick.
type Aggregator struct {
	layout    *text.Layout
	startTime float64
	started   bool

	fixations []models.Fixation
	saccades  []models.Saccade

	pupils      []float64
	blinkCount  int
	inBlink     bool
	maxProgress float64
	lastTime    float64
	sampleCount int
}

// NewAggregator returns an empty aggregator; Start binds it to a passage.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Start begins a reading test over the given passage layout at the given
// stream timestamp, clearing any previous history.
func (a *Aggregator) Start(layout *text.Layout, at float64) {
	*a = Aggregator{layout: layout, startTime: at, started: true}
}

// AddSample folds one normalized sample into the blink, pupil, and
// progress tracking.
func (a *Aggregator) AddSample(s models.GazeSample) {
	if !a.started {
		return
	}
	a.sampleCount++
	a.lastTime = s.Timestamp

	if s.IsBlink {
		if !a.inBlink {
			a.blinkCount++
			a.inBlink = true
		}
		return
	}
	a.inBlink = false

	a.pupils = append(a.pupils, s.PupilDiameter)
	if len(a.pupils) > pupilWindow {
		a.pupils = a.pupils[1:]
	}
	if s.AvgPos.X > a.maxProgress {
		a.maxProgress = s.AvgPos.X
	}
}

// AddSegments appends newly emitted fixations and saccades to the
// session's segment history.
func (a *Aggregator) AddSegments(fixations []models.Fixation, saccades []models.Saccade) {
	a.fixations = append(a.fixations, fixations...)
	a.saccades = append(a.saccades, saccades...)
}

// Covered reports whether gaze progress has passed the final word.
func (a *Aggregator) Covered() bool {
	return a.started && a.layout != nil &&
		a.layout.WordsBefore(a.maxProgress) >= a.layout.WordCount()
}

// Compute derives the reading metrics from the current history. Words per
// minute is adjusted by the passage's complexity factor so hard text does
// not read as artificially slow.
func (a *Aggregator) Compute() models.ReadingMetrics {
	m := models.ReadingMetrics{
		FixationCount: len(a.fixations),
		SaccadeCount:  len(a.saccades),
		SampleCount:   a.sampleCount,
	}
	if !a.started {
		return m
	}

	elapsed := a.lastTime - a.startTime
	m.ElapsedSeconds = elapsed
	minutes := elapsed / 60

	if a.layout != nil {
		m.WordsCovered = a.layout.WordsBefore(a.maxProgress)
		if minutes > 0 {
			m.WordsPerMinute = float64(m.WordsCovered) / minutes * a.layout.ComplexityFactor()
		}
	}

	if minutes > 0 {
		m.FixationRate = float64(len(a.fixations)) / minutes
		m.BlinkRate = float64(a.blinkCount) / minutes
	}

	var fixDurs, fixVars []float64
	for _, f := range a.fixations {
		fixDurs = append(fixDurs, f.Duration)
		fixVars = append(fixVars, f.PositionVariance)
	}
	if len(fixDurs) > 0 {
		m.AvgFixationDur = stat.Mean(fixDurs, nil)
		m.MeanFixVariance = stat.Mean(fixVars, nil)
		m.GazeStability = 1 / (1 + m.MeanFixVariance)
	}

	var amps []float64
	for _, s := range a.saccades {
		amps = append(amps, s.Amplitude)
		if s.IsBackward {
			m.RegressionCount++
		}
	}
	if len(amps) > 0 {
		m.AvgSaccadeAmp = stat.Mean(amps, nil)
	}
	if minutes > 0 {
		m.RegressionRate = float64(m.RegressionCount) / minutes
	}

	if len(a.pupils) >= 2 {
		mean, std := stat.MeanStdDev(a.pupils, nil)
		if mean > 0 {
			m.PupilVariability = std / mean
		}
	}

	return m
}
