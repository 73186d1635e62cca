package models

// Severity is the coarse screening bucket derived from the aggregate
// probability score. Boundaries are strict: <40 mild, 40-70 moderate,
// >70 severe.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// SeverityFor maps a probability in [0,100] to its severity bucket.
func SeverityFor(probability float64) Severity {
	switch {
	case probability < 40:
		return SeverityMild
	case probability <= 70:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

// ReadingMetrics is the set of derived reading-behavior measures,
// recomputed on each evaluation tick from the current segment history.
type ReadingMetrics struct {
	WordsPerMinute     float64 `json:"wordsPerMinute"`
	FixationCount      int     `json:"fixationCount"`
	FixationRate       float64 `json:"fixationRate"` // fixations per minute
	AvgFixationDur     float64 `json:"avgFixationDuration"`
	SaccadeCount       int     `json:"saccadeCount"`
	AvgSaccadeAmp      float64 `json:"avgSaccadeAmplitude"`
	RegressionCount    int     `json:"regressionCount"`
	RegressionRate     float64 `json:"regressionRate"` // regressions per minute
	BlinkRate          float64 `json:"blinkRate"`      // blinks per minute
	GazeStability      float64 `json:"gazeStability"`  // inverse mean fixation variance
	MeanFixVariance    float64 `json:"meanFixationVariance"`
	PupilVariability   float64 `json:"pupilVariability"` // coefficient of variation
	WordsCovered       int     `json:"wordsCovered"`
	ElapsedSeconds     float64 `json:"elapsedSeconds"`
	SampleCount        int     `json:"sampleCount"`
}

// IndicatorScore holds the six normalized dyslexia indicators, each in
// [0,1], and the weighted aggregate they produce.
type IndicatorScore struct {
	BackwardSaccades  float64 `json:"backwardSaccades"`
	LongFixations     float64 `json:"longFixations"`
	IrregularSaccades float64 `json:"irregularSaccades"`
	GazeStability     float64 `json:"gazeStability"`
	BlinkRate         float64 `json:"blinkRate"`
	PupilVariability  float64 `json:"pupilVariability"`

	Probability float64  `json:"probability"` // 0..100
	Severity    Severity `json:"severity"`
}

// MetricsEvent is the per-tick payload emitted to clients during a
// reading test.
type MetricsEvent struct {
	ReadingSpeed        float64        `json:"reading_speed"`
	Fixations           int            `json:"fixations"`
	Regressions         int            `json:"regressions"`
	DyslexiaProbability float64        `json:"dyslexia_probability"`
	Indicators          IndicatorScore `json:"indicators"`
	Severity            Severity       `json:"severity"`
	Confidence          float64        `json:"confidence"`
	Metrics             ReadingMetrics `json:"metrics"`
}
