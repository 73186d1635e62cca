package models

import (
	"time"

	"github.com/lib/pq"
)

// SessionResult is the persisted summary of a completed screening
// session. Only aggregates are stored; raw samples and baselines never
// leave session memory.
type SessionResult struct {
	ID        int    `gorm:"primaryKey"`
	SessionID string `gorm:"index"`
	PassageID string

	WordsPerMinute      float64
	FixationCount       int
	RegressionCount     int
	BlinkRate           float64
	GazeStability       float64
	PupilVariability    float64
	DyslexiaProbability float64
	Severity            string
	Confidence          float64

	// Mean gaze offset from each calibration target, in grid order.
	CalibrationOffsets pq.Float64Array `gorm:"type:float8[]"`
	CalibrationQuality float64

	SampleCount      int
	DroppedMalformed int
	DroppedFrames    int

	StartedAt time.Time
	CreatedAt time.Time
}
