package gaze

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
)

const (
	// DefaultWindowCap bounds the baseline's rolling sample window.
	DefaultWindowCap = 1000
	// DefaultWarmup is the minimum sample count before adaptive
	// thresholds replace the conservative defaults.
	DefaultWarmup = 30
)

// Clamp ranges for adaptive thresholds. Individual jitter varies a lot
// between users and camera setups, but runaway percentiles from a noisy
// warm-up must not make saccades undetectable.
const (
	minFixationVariance = 2e-5
	maxFixationVariance = 1e-3
	minSaccadeVelocity  = 0.15
	maxSaccadeVelocity  = 1.5
)

// Thresholds are the per-session classification parameters handed to the
// segmenter and scorer. Values are in normalized screen units.
type Thresholds struct {
	FixationVariance float64 // per-frame squared displacement below which gaze is stable
	SaccadeVelocity  float64 // units/second above which movement is a saccade
	VelocityMean     float64
	VelocityStd      float64
	PupilMean        float64
	PupilStd         float64
	Warm             bool // false while returning warm-up defaults
}

// DefaultThresholds returns the conservative parameters used before the
// baseline window holds enough samples for stable percentiles.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FixationVariance: 1e-4,
		SaccadeVelocity:  0.3,
		VelocityMean:     0.05,
		VelocityStd:      0.1,
		PupilMean:        4.0, // millimetres, typical adult pupil
		PupilStd:         0.5,
		Warm:             false,
	}
}

// Baseline maintains the bounded rolling window of recent samples for one
// session and derives adaptive thresholds from it. Never shared across
// sessions and never persisted.
type Baseline struct {
	cap     int
	warmup  int
	samples []models.GazeSample

	cached Thresholds
	dirty  bool
}

// NewBaseline creates a baseline tracker with the given window cap and
// warm-up count. Non-positive arguments fall back to the defaults.
func NewBaseline(windowCap, warmup int) *Baseline {
	if windowCap <= 0 {
		windowCap = DefaultWindowCap
	}
	if warmup <= 0 {
		warmup = DefaultWarmup
	}
	return &Baseline{
		cap:     windowCap,
		warmup:  warmup,
		samples: make([]models.GazeSample, 0, windowCap),
		dirty:   true,
	}
}

// Update appends a sample to the rolling window, evicting the oldest
// entry once the window is full.
func (b *Baseline) Update(s models.GazeSample) {
	if len(b.samples) >= b.cap {
		b.samples = b.samples[1:]
	}
	b.samples = append(b.samples, s)
	b.dirty = true
}

// Size returns the current window occupancy.
func (b *Baseline) Size() int {
	return len(b.samples)
}

// Thresholds returns the classification parameters for the current window
// state, recomputing lazily after updates. Callers that classify a sample
// must fetch thresholds before feeding that sample to Update, so a sample
// never influences its own classification.
func (b *Baseline) Thresholds() Thresholds {
	if b.dirty {
		b.cached = ComputeThresholds(b.samples, b.warmup)
		b.dirty = false
	}
	return b.cached
}

// ComputeThresholds derives adaptive thresholds from a sample window. It
// is a pure function so constructed distributions can exercise it
// directly. Below the warm-up count it returns the defaults.
func ComputeThresholds(samples []models.GazeSample, warmup int) Thresholds {
	if len(samples) < warmup {
		return DefaultThresholds()
	}

	var velocities, displacements, pupils []float64
	var prev *models.GazeSample
	for i := range samples {
		s := samples[i]
		if s.IsBlink {
			// Blink frames carry no usable gaze or pupil signal.
			prev = nil
			continue
		}
		pupils = append(pupils, s.PupilDiameter)
		if prev != nil {
			dt := s.Timestamp - prev.Timestamp
			if dt > 0 {
				d2 := sqDist(prev.AvgPos, s.AvgPos)
				displacements = append(displacements, d2)
				velocities = append(velocities, math.Sqrt(d2)/dt)
			}
		}
		prev = &samples[i]
	}

	th := DefaultThresholds()
	if len(velocities) < 2 || len(displacements) < 2 {
		return th
	}

	sortedVel := append([]float64(nil), velocities...)
	sort.Float64s(sortedVel)
	sortedDisp := append([]float64(nil), displacements...)
	sort.Float64s(sortedDisp)

	// Saccade velocity sits above the bulk of normal drift. The window
	// usually already contains saccade frames, which drag P90 up toward
	// saccade speeds; taking the smaller of the two estimates keeps the
	// threshold anchored to fixation drift (the median) in that case.
	p50v := stat.Quantile(0.50, stat.Empirical, sortedVel, nil)
	p90v := stat.Quantile(0.90, stat.Empirical, sortedVel, nil)
	th.SaccadeVelocity = clamp(math.Min(p90v*1.5, p50v*10),
		minSaccadeVelocity, maxSaccadeVelocity)
	th.FixationVariance = clamp(stat.Quantile(0.50, stat.Empirical, sortedDisp, nil)*4,
		minFixationVariance, maxFixationVariance)

	th.VelocityMean, th.VelocityStd = stat.MeanStdDev(velocities, nil)
	if len(pupils) >= 2 {
		th.PupilMean, th.PupilStd = stat.MeanStdDev(pupils, nil)
	}
	th.Warm = true
	return th
}

func sqDist(a, b models.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
