package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateIdle, StateCalibrating, true},
		{StateIdle, StateReady, false},
		{StateIdle, StateReadingTest, false},

		{StateCalibrating, StateReady, true},
		{StateCalibrating, StateReadingTest, false},
		{StateCalibrating, StateCalibrating, false},

		{StateReady, StateCalibrating, true},
		{StateReady, StateReadingTest, true},
		{StateReady, StateCompleted, false},

		{StateReadingTest, StateCompleted, true},
		{StateReadingTest, StateReady, false},
		{StateReadingTest, StateCalibrating, false},

		{StateCompleted, StateCalibrating, false},
		{StateCompleted, StateReadingTest, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
