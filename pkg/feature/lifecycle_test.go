package feature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/modkit/pkg/feature"
)

func TestState_CanFire(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state feature.State
		event feature.Event
		want  bool
	}{
		{feature.StateDiscovered, feature.EventGate, true},
		{feature.StateDiscovered, feature.EventEnable, false},
		{feature.StateApplicable, feature.EventEnable, true},
		{feature.StateApplicable, feature.EventDisable, true},
		{feature.StateInapplicable, feature.EventEnable, false},
		{feature.StateInapplicable, feature.EventDestroy, true},
		{feature.StateDisabled, feature.EventEnable, true},
		{feature.StateEnabled, feature.EventEnable, false},
		{feature.StateEnabled, feature.EventDisable, true},
		{feature.StateDegraded, feature.EventEnable, true},
		{feature.StateDegraded, feature.EventDisable, true},
		{feature.StateDestroyed, feature.EventEnable, false},
		{feature.StateDestroyed, feature.EventDestroy, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state)+"/"+string(tt.event), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.state.CanFire(tt.event))
		})
	}
}

func TestTransitionError(t *testing.T) {
	t.Parallel()

	var err error = &feature.TransitionError{State: feature.StateDestroyed, Event: feature.EventEnable}
	assert.True(t, feature.IsTransitionError(err))
	assert.Contains(t, err.Error(), "destroyed")
	assert.False(t, feature.IsTransitionError(feature.ErrFeatureNotFound))
}
