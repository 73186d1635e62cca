package gaze

import (
	"go.uber.org/zap"

	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
	"github.com/Mahekpandey/DyslexiaDetection/internal/text"
)

// Analyzer wires the per-session pipeline together: normalize, segment
// against pre-update thresholds, fold into the baseline, aggregate,
// score. It owns no goroutines and does no I/O; the session layer feeds
// it one sample at a time.
type Analyzer struct {
	log      *zap.Logger
	norm     *Normalizer
	baseline *Baseline
	seg      *Segmenter
	agg      *Aggregator

	calibrationQuality float64
	calibrated         bool
	testing            bool
}

// NewAnalyzer creates an analyzer with the given baseline window cap and
// warm-up count.
func NewAnalyzer(log *zap.Logger, windowCap, warmup int) *Analyzer {
	return &Analyzer{
		log:      log,
		norm:     NewNormalizer(),
		baseline: NewBaseline(windowCap, warmup),
		seg:      NewSegmenter(),
		agg:      NewAggregator(),
	}
}

// SetCalibrationQuality records the calibration quality in [0,1], which
// scales confidence on every evaluation.
func (a *Analyzer) SetCalibrationQuality(q float64) {
	a.calibrationQuality = clamp01(q)
	a.calibrated = true
}

// StartTest binds the analyzer to a passage layout and begins scoring
// samples from the given stream timestamp.
func (a *Analyzer) StartTest(layout *text.Layout, at float64) {
	a.seg = NewSegmenter()
	a.agg.Start(layout, at)
	a.testing = true
}

// FinishTest closes any open fixation and stops scoring.
func (a *Analyzer) FinishTest() {
	if !a.testing {
		return
	}
	a.seg.Finish()
	fx, sc := a.seg.Flush()
	a.agg.AddSegments(fx, sc)
	a.testing = false
}

// Process runs one raw frame through the pipeline. The baseline is
// updated after classification so a sample never moves the thresholds
// used on itself. Returns the drop reason for rejected frames.
func (a *Analyzer) Process(f models.RawFrame) error {
	s, err := a.norm.Normalize(f)
	if err != nil {
		a.log.Debug("Dropped frame", zap.String("kind", string(models.KindOf(err))))
		return err
	}

	if a.testing {
		th := a.baseline.Thresholds()
		a.seg.Push(s, th)
		fx, sc := a.seg.Flush()
		a.agg.AddSegments(fx, sc)
		a.agg.AddSample(s)
	}

	a.baseline.Update(s)
	return nil
}

// Evaluate computes the metrics event for the current history.
func (a *Analyzer) Evaluate() models.MetricsEvent {
	m := a.agg.Compute()
	th := a.baseline.Thresholds()
	score := Score(m, th)

	return models.MetricsEvent{
		ReadingSpeed:        m.WordsPerMinute,
		Fixations:           m.FixationCount,
		Regressions:         m.RegressionCount,
		DyslexiaProbability: score.Probability,
		Indicators:          score,
		Severity:            score.Severity,
		Confidence:          a.confidence(m, th),
		Metrics:             m,
	}
}

// Covered reports whether the reader has progressed past the final word.
func (a *Analyzer) Covered() bool {
	return a.agg.Covered()
}

// Dropped returns the normalizer's rejected-frame counters.
func (a *Analyzer) Dropped() DropCounters {
	return a.norm.Dropped()
}

// BaselineSize returns the baseline window occupancy.
func (a *Analyzer) BaselineSize() int {
	return a.baseline.Size()
}

// confidence scales with accumulated sample count, discounts sessions
// with noisy input, and halves for uncalibrated sessions.
func (a *Analyzer) confidence(m models.ReadingMetrics, th Thresholds) float64 {
	conf := clamp01(float64(m.SampleCount) / 300)

	drops := a.norm.Dropped()
	total := m.SampleCount + drops.Malformed + drops.Degenerate
	if total > 0 {
		conf *= 1 - float64(drops.Malformed+drops.Degenerate)/float64(total)
	}

	if a.calibrated {
		conf *= 0.5 + 0.5*a.calibrationQuality
	} else {
		conf *= 0.5
	}
	if !th.Warm {
		conf *= 0.75
	}
	return clamp01(conf)
}
