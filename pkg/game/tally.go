package game

// Tally is a snapshot of the votes cast so far in the current voting
// sub-phase, measured against the number of players in the game.
type Tally struct {
	Yes      int
	No       int
	Total    int
	Pending  int
	AllVoted bool
}

// TallyVotes reduces the server's vote list into a Tally. It is total: a
// nil vote list yields the all-zero, all-pending tally rather than failing.
func TallyVotes(votes []bool, players int) Tally {
	t := Tally{}
	for _, v := range votes {
		if v {
			t.Yes++
		} else {
			t.No++
		}
	}
	t.Total = len(votes)
	t.Pending = players - t.Total
	if t.Pending < 0 {
		t.Pending = 0
	}
	t.AllVoted = t.Total >= players
	return t
}
