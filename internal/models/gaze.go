package models

// Point is a gaze position in normalized screen coordinates, where both
// axes run 0..1 and x grows left to right.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RawFrame is one per-frame landmark/pupil estimate as delivered by the
// external eye tracker. Coordinates are normalized; Timestamp is seconds
// on a monotonic, per-session clock.
type RawFrame struct {
	Timestamp     float64 `json:"t"`
	LeftX         float64 `json:"lx"`
	LeftY         float64 `json:"ly"`
	RightX        float64 `json:"rx"`
	RightY        float64 `json:"ry"`
	PupilDiameter float64 `json:"pupil"`
	Blink         bool    `json:"blink"`
}

// GazeSample is the canonical per-frame sample. Immutable once created.
type GazeSample struct {
	Timestamp     float64 `json:"timestamp"`
	LeftEye       Point   `json:"leftEye"`
	RightEye      Point   `json:"rightEye"`
	AvgPos        Point   `json:"avgPos"`
	PupilDiameter float64 `json:"pupilDiameter"`
	IsBlink       bool    `json:"isBlink"`
}

// Fixation is a period of stable gaze. Duration is at least the minimum
// fixation duration by construction; shorter candidates are discarded as
// noise by the segmenter.
type Fixation struct {
	StartTime        float64 `json:"startTime"`
	EndTime          float64 `json:"endTime"`
	Duration         float64 `json:"duration"`
	PositionVariance float64 `json:"positionVariance"`
	MeanPosition     Point   `json:"meanPosition"`
}

// Saccade is a rapid movement between two fixations. Direction is the
// signed horizontal delta; IsBackward is true when the movement runs
// against left-to-right reading progression.
type Saccade struct {
	StartTime  float64 `json:"startTime"`
	EndTime    float64 `json:"endTime"`
	Velocity   float64 `json:"velocity"`
	Amplitude  float64 `json:"amplitude"`
	Direction  float64 `json:"direction"`
	IsBackward bool    `json:"isBackward"`
}
