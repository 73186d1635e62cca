package gaze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
)

func sampleAt(t, x float64) models.GazeSample {
	return models.GazeSample{
		Timestamp:     t,
		AvgPos:        models.Point{X: x, Y: 0.5},
		PupilDiameter: 4.0,
	}
}

func blinkAt(t float64) models.GazeSample {
	return models.GazeSample{Timestamp: t, IsBlink: true}
}

func TestSegmenterDetectsSingleFixation(t *testing.T) {
	g := NewSegmenter()
	th := DefaultThresholds()

	// 0.4 s of perfectly stable gaze at 10 Hz.
	for i := 0; i < 5; i++ {
		g.Push(sampleAt(float64(i)*0.1, 0.3), th)
	}
	g.Finish()

	fixations, saccades := g.Flush()
	require.Len(t, fixations, 1)
	assert.Empty(t, saccades)
	assert.InDelta(t, 0.4, fixations[0].Duration, 1e-9)
	assert.InDelta(t, 0.3, fixations[0].MeanPosition.X, 1e-9)
	assert.InDelta(t, 0.0, fixations[0].PositionVariance, 1e-12)
}

func TestSegmenterDiscardsShortFixation(t *testing.T) {
	g := NewSegmenter()
	th := DefaultThresholds()

	// Stable gaze lasting only 0.1 s.
	for i := 0; i < 3; i++ {
		g.Push(sampleAt(float64(i)*0.05, 0.3), th)
	}
	g.Finish()

	fixations, _ := g.Flush()
	assert.Empty(t, fixations)
}

func TestSegmenterClassifiesSaccadeDirection(t *testing.T) {
	g := NewSegmenter()
	th := DefaultThresholds()

	push := func(i int, x float64) {
		g.Push(sampleAt(float64(i)*0.1, x), th)
	}

	// Fixation at 0.2, forward saccade to 0.5, fixation, backward
	// saccade to 0.3, fixation.
	for i := 0; i < 4; i++ {
		push(i, 0.2)
	}
	for i := 4; i < 9; i++ {
		push(i, 0.5)
	}
	for i := 9; i < 15; i++ {
		push(i, 0.3)
	}
	g.Finish()

	fixations, saccades := g.Flush()
	require.Len(t, saccades, 2)
	require.Len(t, fixations, 3)

	forward, backward := saccades[0], saccades[1]
	assert.False(t, forward.IsBackward)
	assert.InDelta(t, 0.3, forward.Amplitude, 1e-9)
	assert.Positive(t, forward.Direction)

	assert.True(t, backward.IsBackward)
	assert.InDelta(t, 0.2, backward.Amplitude, 1e-9)
	assert.Negative(t, backward.Direction)
}

func TestSegmenterShortBlinkPausesFixation(t *testing.T) {
	g := NewSegmenter()
	th := DefaultThresholds()

	for i := 0; i < 4; i++ {
		g.Push(sampleAt(float64(i)*0.1, 0.4), th)
	}
	// 0.1 s blink, below the cutoff.
	g.Push(blinkAt(0.4), th)
	g.Push(blinkAt(0.5), th)
	for i := 6; i < 9; i++ {
		g.Push(sampleAt(float64(i)*0.1, 0.4), th)
	}
	g.Finish()

	fixations, _ := g.Flush()
	require.Len(t, fixations, 1)
	// The fixation spans the blink gap.
	assert.InDelta(t, 0.8, fixations[0].Duration, 1e-9)
}

func TestSegmenterLongBlinkClosesFixation(t *testing.T) {
	g := NewSegmenter()
	th := DefaultThresholds()

	for i := 0; i < 4; i++ {
		g.Push(sampleAt(float64(i)*0.1, 0.4), th)
	}
	// Blink outlasting the cutoff ends the fixation at its last sample.
	g.Push(blinkAt(0.4), th)
	g.Push(blinkAt(0.9), th)

	fixations, _ := g.Flush()
	require.Len(t, fixations, 1)
	assert.InDelta(t, 0.3, fixations[0].Duration, 1e-9)
}

func TestSegmenterIgnoresRepeatedTimestamps(t *testing.T) {
	g := NewSegmenter()
	th := DefaultThresholds()

	for i := 0; i < 5; i++ {
		g.Push(sampleAt(float64(i)*0.1, 0.3), th)
		// Duplicate carries no motion information.
		g.Push(sampleAt(float64(i)*0.1, 0.9), th)
	}
	g.Finish()

	fixations, saccades := g.Flush()
	require.Len(t, fixations, 1)
	assert.Empty(t, saccades)
	assert.InDelta(t, 0.4, fixations[0].Duration, 1e-9)
}

func TestSegmenterDropsInstantaneousJump(t *testing.T) {
	g := NewSegmenter()
	g.sacStart = sampleAt(1.0, 0.2)

	g.closeSaccade(sampleAt(1.0005, 0.6))

	_, saccades := g.Flush()
	assert.Empty(t, saccades)
}
