package gaze

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
	"github.com/Mahekpandey/DyslexiaDetection/internal/text"
)

// TestAnalyzerEndToEndReading simulates a full left-to-right reading run
// at 10 Hz: fourteen word stops with two regressions, one short blink,
// and a pair of rejected frames at the tail.
func TestAnalyzerEndToEndReading(t *testing.T) {
	passage := "The quick brown fox jumps over the lazy dog. " +
		"The dog was not amused and walked away."
	layout := text.NewLayout(passage)

	a := NewAnalyzer(zap.NewNop(), 0, 0)
	a.SetCalibrationQuality(0.9)
	a.StartTest(layout, 0)

	// Gaze pauses at each stop for 0.7 s; the two retreats (0.4 to 0.3
	// and 0.6 to 0.5) are the injected regressions.
	stops := []float64{0.1, 0.2, 0.3, 0.4, 0.3, 0.4, 0.5, 0.6, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

	tm := 0.0
	frame := func(x float64) models.RawFrame {
		f := models.RawFrame{
			Timestamp: tm,
			LeftX:     x, LeftY: 0.5,
			RightX: x, RightY: 0.5,
			PupilDiameter: 4.0,
		}
		tm += 0.1
		return f
	}

	for si, x := range stops {
		for i := 0; i < 7; i++ {
			require.NoError(t, a.Process(frame(x)))
			if si == 11 && i == 3 {
				// Short blink in the middle of a fixation.
				for j := 0; j < 2; j++ {
					require.NoError(t, a.Process(models.RawFrame{Timestamp: tm, Blink: true}))
					tm += 0.1
				}
			}
		}
	}

	// A corrupt frame and a stale timestamp are rejected without
	// disturbing the analysis.
	err := a.Process(models.RawFrame{Timestamp: tm, LeftX: math.NaN()})
	require.Error(t, err)
	assert.Equal(t, models.ErrMalformedSample, models.KindOf(err))

	err = a.Process(models.RawFrame{Timestamp: 0.05, LeftX: 0.9, RightX: 0.9})
	require.Error(t, err)
	assert.Equal(t, models.ErrDegenerateTimestamp, models.KindOf(err))

	a.FinishTest()
	ev := a.Evaluate()

	assert.Equal(t, 2, ev.Regressions)
	assert.Equal(t, 2, ev.Metrics.RegressionCount)
	assert.Equal(t, len(stops), ev.Metrics.FixationCount)
	assert.Equal(t, len(stops)-1, ev.Metrics.SaccadeCount)

	assert.True(t, a.Covered())
	assert.Equal(t, layout.WordCount(), ev.Metrics.WordsCovered)
	assert.Positive(t, ev.ReadingSpeed)
	assert.Positive(t, ev.Metrics.BlinkRate)

	ratio := 2.0 / float64(len(stops)-1)
	assert.InDelta(t, ratio/0.4, ev.Indicators.BackwardSaccades, 1e-9)
	assert.Greater(t, ev.DyslexiaProbability, 0.0)
	assert.LessOrEqual(t, ev.DyslexiaProbability, 100.0)
	assert.Equal(t, models.SeverityFor(ev.DyslexiaProbability), ev.Severity)

	assert.Equal(t, DropCounters{Malformed: 1, Degenerate: 1}, a.Dropped())
	assert.Equal(t, 100, a.BaselineSize())
	assert.Equal(t, 100, ev.Metrics.SampleCount)

	// 100 of a nominal 300 samples, a 2-in-102 drop rate, and 0.9
	// calibration quality.
	wantConf := (100.0 / 300) * (1 - 2.0/102) * (0.5 + 0.5*0.9)
	assert.InDelta(t, wantConf, ev.Confidence, 1e-9)
}

// TestAnalyzerWarmupDefaults verifies a short stream is classified with
// the conservative defaults while the baseline is still warming up.
func TestAnalyzerWarmupDefaults(t *testing.T) {
	a := NewAnalyzer(zap.NewNop(), 0, 0)
	layout := text.NewLayout("one two three")
	a.StartTest(layout, 0)

	for i := 0; i < 5; i++ {
		require.NoError(t, a.Process(models.RawFrame{
			Timestamp: float64(i) * 0.1,
			LeftX:     0.2, LeftY: 0.5,
			RightX: 0.2, RightY: 0.5,
			PupilDiameter: 4.0,
		}))
	}
	// Below warm-up the defaults are in force; baseline size still grows.
	assert.Equal(t, 5, a.BaselineSize())

	a.FinishTest()
	ev := a.Evaluate()
	assert.Equal(t, 1, ev.Fixations)
	assert.Equal(t, 0, ev.Metrics.SaccadeCount)
}
