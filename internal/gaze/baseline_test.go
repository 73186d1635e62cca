package gaze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
)

// driftStream builds a blink-free sample stream at 10 Hz whose gaze
// drifts by step units per frame along x.
func driftStream(n int, step, pupil float64) []models.GazeSample {
	samples := make([]models.GazeSample, 0, n)
	x := 0.1
	for i := 0; i < n; i++ {
		samples = append(samples, models.GazeSample{
			Timestamp:     float64(i) * 0.1,
			AvgPos:        models.Point{X: x, Y: 0.5},
			PupilDiameter: pupil,
		})
		x += step
	}
	return samples
}

func TestBaselineReturnsDefaultsDuringWarmup(t *testing.T) {
	b := NewBaseline(0, 0)
	assert.Equal(t, DefaultThresholds(), b.Thresholds())

	for _, s := range driftStream(DefaultWarmup-1, 0.001, 4.0) {
		b.Update(s)
	}
	th := b.Thresholds()
	assert.False(t, th.Warm)
	assert.Equal(t, DefaultThresholds(), th)
}

func TestBaselineWindowEvictsOldest(t *testing.T) {
	b := NewBaseline(5, 2)
	for i := 0; i < 7; i++ {
		b.Update(models.GazeSample{Timestamp: float64(i)})
	}
	require.Equal(t, 5, b.Size())
	assert.Equal(t, 2.0, b.samples[0].Timestamp)
	assert.Equal(t, 6.0, b.samples[len(b.samples)-1].Timestamp)
}

func TestBaselineWindowCapDefault(t *testing.T) {
	b := NewBaseline(0, 0)
	stream := driftStream(DefaultWindowCap+1, 0.001, 4.0)
	for _, s := range stream {
		b.Update(s)
	}
	require.Equal(t, DefaultWindowCap, b.Size())
	// The first sample has been evicted.
	assert.Equal(t, stream[1].Timestamp, b.samples[0].Timestamp)
}

func TestComputeThresholdsQuietWindow(t *testing.T) {
	// Pure drift at 0.02 units/s keeps both percentile estimates under
	// their floors.
	th := ComputeThresholds(driftStream(50, 0.002, 4.0), 30)

	assert.True(t, th.Warm)
	assert.InDelta(t, minSaccadeVelocity, th.SaccadeVelocity, 1e-9)
	assert.InDelta(t, minFixationVariance, th.FixationVariance, 1e-9)
	assert.InDelta(t, 4.0, th.PupilMean, 1e-9)
	assert.InDelta(t, 0.0, th.PupilStd, 1e-9)
}

func TestComputeThresholdsResistSaccadeContamination(t *testing.T) {
	// One saccade-speed frame out of every seven puts saccades well
	// above P90; the threshold must stay anchored to the drift median so
	// later saccades of the same speed remain detectable.
	samples := make([]models.GazeSample, 0, 105)
	x := 0.0
	for i := 0; i < 105; i++ {
		if i%7 == 6 {
			x += 0.08 // 0.8 units/s jump
		} else {
			x += 0.002 // 0.02 units/s drift
		}
		samples = append(samples, models.GazeSample{
			Timestamp:     float64(i) * 0.1,
			AvgPos:        models.Point{X: x, Y: 0.5},
			PupilDiameter: 4.0,
		})
	}

	th := ComputeThresholds(samples, 30)
	require.True(t, th.Warm)
	assert.InDelta(t, 0.2, th.SaccadeVelocity, 1e-6) // median drift x10
	assert.Less(t, th.SaccadeVelocity, 0.8)
}

func TestComputeThresholdsClampsRunawayEstimates(t *testing.T) {
	th := ComputeThresholds(driftStream(50, 0.5, 4.0), 30)

	assert.Equal(t, maxSaccadeVelocity, th.SaccadeVelocity)
	assert.Equal(t, maxFixationVariance, th.FixationVariance)
}

func TestComputeThresholdsSkipsBlinkFrames(t *testing.T) {
	samples := driftStream(50, 0.002, 4.0)
	for i := range samples {
		samples[i].IsBlink = true
	}
	// All-blink window carries no usable signal; stay on defaults.
	th := ComputeThresholds(samples, 30)
	assert.False(t, th.Warm)
	assert.Equal(t, DefaultThresholds(), th)
}

func TestThresholdsCachedUntilNextUpdate(t *testing.T) {
	b := NewBaseline(0, 0)
	for _, s := range driftStream(50, 0.002, 4.0) {
		b.Update(s)
	}
	first := b.Thresholds()
	assert.Equal(t, first, b.Thresholds())
}
