package game

// RoundStatus is the server-side state of a single round ("decade attempt").
type RoundStatus string

const (
	StatusWaitingOnLeader RoundStatus = "waiting-on-leader"
	StatusVoting          RoundStatus = "voting"
	StatusWaitingOnGroup  RoundStatus = "waiting-on-group"
	StatusEnded           RoundStatus = "ended"
)

// RoundResult records which faction took the round, if any.
type RoundResult string

const (
	ResultNone     RoundResult = "none"
	ResultCitizens RoundResult = "citizens"
	ResultEnemies  RoundResult = "enemies"
)

// VotePhase is the voting sub-state within a single round. It only moves
// forward (vote1 -> vote2 -> vote3) while the round stays in StatusVoting.
type VotePhase string

const (
	PhaseVote1 VotePhase = "vote1"
	PhaseVote2 VotePhase = "vote2"
	PhaseVote3 VotePhase = "vote3"
)

// ValidStatus reports whether s is a round status this client understands.
func ValidStatus(s string) bool {
	switch RoundStatus(s) {
	case StatusWaitingOnLeader, StatusVoting, StatusWaitingOnGroup, StatusEnded:
		return true
	}
	return false
}

// ValidResult reports whether r is a known round result.
func ValidResult(r string) bool {
	switch RoundResult(r) {
	case ResultNone, ResultCitizens, ResultEnemies:
		return true
	}
	return false
}

// ValidVotePhase reports whether p is a known voting sub-phase.
func ValidVotePhase(p string) bool {
	switch VotePhase(p) {
	case PhaseVote1, PhaseVote2, PhaseVote3:
		return true
	}
	return false
}

// SubPhase maps a voting sub-phase to its ordinal (1..3). Anything that is
// not vote2 or vote3 counts as the first vote.
func (p VotePhase) SubPhase() int {
	switch p {
	case PhaseVote2:
		return 2
	case PhaseVote3:
		return 3
	default:
		return 1
	}
}

// Round is the canonical client-side shape of a round record. Votes are in
// arrival order and are not indexed by player.
type Round struct {
	ID     string      `json:"id"`
	Leader string      `json:"leader"`
	Status RoundStatus `json:"status"`
	Result RoundResult `json:"result"`
	Phase  VotePhase   `json:"phase"`
	Group  []string    `json:"group"`
	Votes  []bool      `json:"votes"`
}

// GameStatus is the lobby-level state of a game.
type GameStatus string

const (
	GameLobby  GameStatus = "lobby"
	GameRounds GameStatus = "rounds"
)

// Game is the detail record for a game the player has joined. Enemies is
// only populated when the server decides the caller may see it.
type Game struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Owner        string     `json:"owner"`
	Status       GameStatus `json:"status"`
	Players      []string   `json:"players"`
	Password     bool       `json:"password"`
	CurrentRound string     `json:"currentRound"`
	Enemies      []string   `json:"enemies"`
}

// Summary is a lobby listing row as shown on the browse screen.
type Summary struct {
	ID               string
	Name             string
	Players          int
	MaxPlayers       int
	RequiresPassword bool
	Status           GameStatus
	Owner            string
}
