package session

import "github.com/Mahekpandey/DyslexiaDetection/internal/models"

// EventType tags outbound session events.
type EventType string

const (
	EventMetrics EventType = "metrics"
	EventStatus  EventType = "status"
	EventError   EventType = "error"
)

// Event is the envelope pushed to stream subscribers.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// StatusEvent describes the session's lifecycle position, including the
// current calibration target while calibrating.
type StatusEvent struct {
	SessionID          string        `json:"session_id"`
	State              State         `json:"state"`
	CalibrationIndex   int           `json:"calibration_index,omitempty"`
	CalibrationTotal   int           `json:"calibration_total,omitempty"`
	CalibrationPoint   *models.Point `json:"calibration_point,omitempty"`
	CalibrationQuality float64       `json:"calibration_quality,omitempty"`
	PassageID          string        `json:"passage_id,omitempty"`
}
