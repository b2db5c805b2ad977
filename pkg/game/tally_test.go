package game

import "testing"

func TestTallyVotes(t *testing.T) {
	got := TallyVotes([]bool{true, true, false}, 5)
	want := Tally{Yes: 2, No: 1, Total: 3, Pending: 2, AllVoted: false}
	if got != want {
		t.Errorf("TallyVotes = %+v, want %+v", got, want)
	}
}

func TestTallyVotesInvariants(t *testing.T) {
	votes := []bool{true, false, false, true, true}
	for n := 0; n <= len(votes); n++ {
		got := TallyVotes(votes[:n], len(votes))
		if got.Yes+got.No != got.Total || got.Total != n {
			t.Errorf("n=%d: yes+no=%d, total=%d, want both %d", n, got.Yes+got.No, got.Total, n)
		}
		if got.Pending != len(votes)-n {
			t.Errorf("n=%d: pending=%d, want %d", n, got.Pending, len(votes)-n)
		}
		if got.AllVoted != (n >= len(votes)) {
			t.Errorf("n=%d: allVoted=%v", n, got.AllVoted)
		}
	}
}

func TestTallyVotesNilInput(t *testing.T) {
	got := TallyVotes(nil, 5)
	want := Tally{Pending: 5}
	if got != want {
		t.Errorf("TallyVotes(nil, 5) = %+v, want %+v", got, want)
	}
}

func TestTallyVotesMoreVotesThanPlayers(t *testing.T) {
	got := TallyVotes([]bool{true, true, true}, 2)
	if got.Pending != 0 {
		t.Errorf("pending must floor at 0, got %d", got.Pending)
	}
	if !got.AllVoted {
		t.Error("allVoted should hold when total exceeds player count")
	}
}
