package game

import "testing"

func endedRound(id string, result RoundResult) Round {
	return Round{ID: id, Leader: "Alice", Status: StatusEnded, Result: result, Phase: PhaseVote1}
}

func TestScoresAndDecadeAfterThreeRounds(t *testing.T) {
	rounds := []Round{
		endedRound("r1", ResultCitizens),
		endedRound("r2", ResultEnemies),
		endedRound("r3", ResultCitizens),
	}

	s := ScoresOf(rounds)
	if s.Citizens != 2 || s.Enemies != 1 {
		t.Errorf("scores = %+v, want citizens=2 enemies=1", s)
	}
	if d := DecadeOf(rounds); d != 4 {
		t.Errorf("decade = %d, want 4", d)
	}
	if Finished(s, DecadeOf(rounds)) {
		t.Error("game should not be finished at 2-1 in decade 4")
	}
}

func TestDecadeIgnoresUnfinishedRounds(t *testing.T) {
	rounds := []Round{
		endedRound("r1", ResultCitizens),
		endedRound("r2", ResultNone),
		{ID: "r3", Leader: "Bob", Status: StatusVoting, Result: ResultNone, Phase: PhaseVote2},
	}
	if d := DecadeOf(rounds); d != 2 {
		t.Errorf("decade = %d, want 2 (only rounds with a real result count)", d)
	}
}

func TestDecadeCaps(t *testing.T) {
	var rounds []Round
	for i := 0; i < 7; i++ {
		rounds = append(rounds, endedRound(string(rune('a'+i)), ResultCitizens))
	}
	if d := DecadeOf(rounds); d != MaxDecades {
		t.Errorf("decade = %d, want cap at %d", d, MaxDecades)
	}
}

func TestFinishedByScore(t *testing.T) {
	if !Finished(Scores{Citizens: 3}, 4) {
		t.Error("citizens at win target should finish the game")
	}
	if !Finished(Scores{Enemies: 3}, 4) {
		t.Error("enemies at win target should finish the game")
	}
	if Finished(Scores{Citizens: 2, Enemies: 2}, 5) {
		t.Error("2-2 in decade 5 is still live")
	}
}

// The decade counter itself caps at MaxDecades, but the terminal predicate
// must hold past the final decade independent of score.
func TestFinishedByDecadeExhaustion(t *testing.T) {
	if !Finished(Scores{Citizens: 2, Enemies: 2}, MaxDecades+1) {
		t.Error("running past the final decade must end the game regardless of score")
	}
}
