package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testState string

const (
	stateNew     testState = ""
	stateBound   testState = "bound"
	stateDrifted testState = "drifted"
)

func newTestMachine(current testState) *StateMachine[testState] {
	return New(current,
		From(stateNew).To(stateBound),
		From(stateBound).To(stateBound, stateDrifted),
		From(stateDrifted).To(stateBound, stateDrifted),
	)
}

func TestStateMachine_ToState(t *testing.T) {
	tests := []struct {
		name    string
		from    testState
		to      testState
		wantErr bool
	}{
		{name: "new to bound", from: stateNew, to: stateBound},
		{name: "new to drifted", from: stateNew, to: stateDrifted, wantErr: true},
		{name: "bound to drifted", from: stateBound, to: stateDrifted},
		{name: "drifted back to bound", from: stateDrifted, to: stateBound},
		{name: "bound to new", from: stateBound, to: stateNew, wantErr: true},
		{name: "unknown state", from: testState("lost"), to: stateBound, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(tt.from)
			assert.Equal(t, tt.from, m.Current())

			err := m.ToState(tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStateMachine_NoTransitions(t *testing.T) {
	m := New(stateBound)
	assert.ErrorIs(t, m.ToState(stateDrifted), ErrInvalidTransition)
}
