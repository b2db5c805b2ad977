package game

// Game-wide rule constants. A game runs at most MaxDecades decades and ends
// as soon as one faction wins WinTarget of them. The client keeps at most
// MaxRounds rounds of history.
const (
	MaxDecades = 5
	WinTarget  = 3
	MaxRounds  = 5

	MinPlayers = 5
	MaxPlayers = 10
)

// groupSizes is indexed by player count, then decade (slot 0 unused so a
// decade of 0 means "no group phase yet").
var groupSizes = map[int][6]int{
	5:  {0, 2, 3, 2, 3, 3},
	6:  {0, 2, 3, 4, 3, 4},
	7:  {0, 2, 3, 3, 4, 4},
	8:  {0, 3, 4, 4, 5, 5},
	9:  {0, 3, 4, 4, 5, 5},
	10: {0, 3, 4, 4, 5, 5},
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// RequiredGroupSize returns the mission group size for the given player
// count and decade. Out-of-range inputs are clamped rather than rejected:
// player counts can only grow while a lobby fills, so callers query this
// fresh on every reconciliation pass.
func RequiredGroupSize(players, decade int) int {
	if decade < 1 {
		return 0
	}
	return groupSizes[clamp(players, MinPlayers, MaxPlayers)][clamp(decade, 1, MaxDecades)]
}
