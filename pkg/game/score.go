package game

// Scores counts the rounds each faction has taken so far.
type Scores struct {
	Citizens int
	Enemies  int
}

// ScoresOf derives the faction scores from the round history.
func ScoresOf(rounds []Round) Scores {
	var s Scores
	for _, r := range rounds {
		switch r.Result {
		case ResultCitizens:
			s.Citizens++
		case ResultEnemies:
			s.Enemies++
		}
	}
	return s
}

// DecadeOf derives the current decade number. The server does not store it;
// it is one past the number of completed rounds, capped at MaxDecades.
func DecadeOf(rounds []Round) int {
	completed := 0
	for _, r := range rounds {
		if r.Status == StatusEnded && r.Result != ResultNone {
			completed++
		}
	}
	d := completed + 1
	if d > MaxDecades {
		d = MaxDecades
	}
	return d
}

// Finished reports whether the game is over: either faction reached the win
// target, or play ran past the final decade without a winner.
func Finished(s Scores, decade int) bool {
	if s.Citizens >= WinTarget || s.Enemies >= WinTarget {
		return true
	}
	return decade > MaxDecades
}
