package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollIntervalScalesWithDecade(t *testing.T) {
	for decade, want := range map[int]time.Duration{
		1: 3500 * time.Millisecond,
		3: 4500 * time.Millisecond,
		5: 5500 * time.Millisecond,
	} {
		got := PollInterval(State{Phase: PhaseWaitingOnLeader, Decade: decade})
		assert.Equal(t, want, got, "decade %d", decade)
	}
}

func TestPollIntervalClampedDuringActivePhases(t *testing.T) {
	for _, phase := range []Phase{PhaseVoting, PhaseWaitingOnGroup} {
		got := PollInterval(State{Phase: phase, Decade: 4})
		assert.Equal(t, activePollCeiling, got, "phase %s must stay responsive", phase)
	}
}

func TestPollIntervalLeaderChoosingGroup(t *testing.T) {
	got := PollInterval(State{Phase: PhaseChooseGroup, IsLeader: true, Decade: 5})
	assert.Equal(t, basePollInterval, got)

	// A non-leader somehow in choose-group falls back to the base curve.
	got = PollInterval(State{Phase: PhaseChooseGroup, Decade: 5})
	assert.Equal(t, basePollInterval+5*decadePollStep, got)
}
