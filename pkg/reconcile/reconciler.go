// Package reconcile derives the client's view of a running game from
// polled server snapshots. The server is the only authority; everything
// here is reconstruction, transition detection and careful resetting of
// local-only state.
package reconcile

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/decred/slog"

	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/api"
	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/game"
	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/session"
)

// Phase is the UI-level phase of play, derived on every pass and never
// stored server-side.
type Phase string

const (
	PhaseWaitingOnLeader Phase = "waiting-on-leader"
	PhaseChooseGroup     Phase = "choose-group"
	PhaseVoting          Phase = "voting"
	PhaseWaitingOnGroup  Phase = "waiting-on-group"
	PhaseBetweenRounds   Phase = "between-rounds"
	PhaseEnded           Phase = "ended"
)

// Gateway is the slice of the API layer the reconciler needs.
type Gateway interface {
	GameDetails(ctx context.Context, gameID, player, password string) (*game.Game, error)
	ListRounds(ctx context.Context, gameID, player, password string) ([]game.Round, error)
	InvalidateCachePrefix(prefix string)
}

// State is one coherent snapshot of everything the presentation layer may
// read. YourVote and YourAction are tri-state: nil means not submitted in
// the current sub-phase.
type State struct {
	Game     *game.Game
	Players  []string
	RoomName string

	Round  *game.Round
	Rounds []game.Round

	Phase          Phase
	VotingSubPhase int
	Leader         string
	IsLeader       bool
	Role           string

	Decade            int
	Scores            game.Scores
	Tally             game.Tally
	RequiredGroupSize int

	YourVote   *bool
	YourAction *bool
	Draft      []string

	FailedVotes int
	NeedsRejoin bool
	LastErr     string
}

// InGroup reports whether the player is part of the committed mission
// group.
func (s State) InGroup(player string) bool {
	if s.Round == nil {
		return false
	}
	return slices.Contains(s.Round.Group, player)
}

// Finished reports whether the game has reached a terminal state.
func (s State) Finished() bool {
	return game.Finished(s.Scores, s.Decade) || s.Phase == PhaseEnded
}

// Reconciler owns the local reconciliation state for one game. All local
// fields are ephemeral and rebuilt on the transitions described in the
// reset rules below; the struct is safe for concurrent use.
type Reconciler struct {
	gw       Gateway
	sessions *session.Store
	log      slog.Logger

	gameID   string
	player   string
	password string

	// Only one pass may be in flight; a pass requested while one is
	// running is dropped, not queued. The next tick picks up fresh state.
	flightMu sync.Mutex
	inFlight bool

	mu           sync.Mutex
	st           State
	lastRoundID  string
	lastDecade   int
	lastSubPhase int
	lastPhase    Phase
}

// New creates a reconciler for one game. Credentials left blank are
// resolved from the session store, mirroring a player resuming a game.
func New(gw Gateway, sessions *session.Store, log slog.Logger, gameID, player, password string) *Reconciler {
	if log == nil {
		log = slog.Disabled
	}
	player = strings.TrimSpace(player)
	password = strings.TrimSpace(password)
	if sessions != nil {
		if creds, ok := sessions.Credentials(gameID); ok {
			if player == "" {
				player = creds.Player
			}
			if password == "" {
				password = creds.Password
			}
		}
		sessions.SetCredentials(gameID, session.Credentials{Player: player, Password: password})
	}
	return &Reconciler{
		gw:       gw,
		sessions: sessions,
		log:      log,
		gameID:   gameID,
		player:   player,
		password: password,
		st: State{
			Phase:          PhaseWaitingOnLeader,
			VotingSubPhase: 1,
			Decade:         1,
			Role:           game.RoleCitizen,
		},
		lastDecade:   1,
		lastSubPhase: 1,
	}
}

// Player returns the acting player's name.
func (r *Reconciler) Player() string { return r.player }

// GameID returns the game this reconciler tracks.
func (r *Reconciler) GameID() string { return r.gameID }

// Credentials returns the identity pair used for gateway calls.
func (r *Reconciler) Credentials() (player, password string) { return r.player, r.password }

// Tick runs one reconciliation pass: game details first, then the active
// round, then the round history. The fetches are not atomic; a mutation
// landing between them is expected and absorbed by the reset rules.
func (r *Reconciler) Tick(ctx context.Context) error {
	r.flightMu.Lock()
	if r.inFlight {
		r.flightMu.Unlock()
		return nil
	}
	r.inFlight = true
	r.flightMu.Unlock()
	defer func() {
		r.flightMu.Lock()
		r.inFlight = false
		r.flightMu.Unlock()
	}()

	if r.gameID == "" || r.player == "" {
		return errors.New("reconciler missing game id or player")
	}

	g, err := r.gw.GameDetails(ctx, r.gameID, r.player, r.password)
	if err != nil {
		return r.noteError(err)
	}

	rounds, err := r.gw.ListRounds(ctx, r.gameID, r.player, r.password)
	if err != nil {
		return r.noteError(err)
	}
	active := activeRound(rounds)

	// Second listing after the round detail settles the pass; the
	// conditional cache turns the repeat into a 304 when nothing moved.
	history, err := r.gw.ListRounds(ctx, r.gameID, r.player, r.password)
	if err != nil {
		return r.noteError(err)
	}

	r.mu.Lock()
	r.apply(g, active, history)
	r.mu.Unlock()
	return nil
}

// activeRound picks the round to play against: the most recent round not
// yet ended, else the single most recent ended one.
func activeRound(rounds []game.Round) *game.Round {
	for i := len(rounds) - 1; i >= 0; i-- {
		if rounds[i].Status != game.StatusEnded {
			rc := rounds[i]
			return &rc
		}
	}
	if len(rounds) == 0 {
		return nil
	}
	rc := rounds[len(rounds)-1]
	return &rc
}

// apply folds one pass worth of server state into the snapshot. Caller
// holds r.mu.
func (r *Reconciler) apply(g *game.Game, active *game.Round, history []game.Round) {
	r.st.LastErr = ""
	r.st.NeedsRejoin = false

	if g != nil {
		gc := *g
		r.st.Game = &gc
		r.st.Players = slices.Clone(g.Players)
		r.st.RoomName = g.Name
		r.st.Role = game.FactionOf(r.player, g.Enemies)
		if r.sessions != nil && g.Name != "" {
			r.sessions.SetRoomName(r.gameID, g.Name)
		}
	}

	if active == nil {
		return
	}

	r.st.Round = active
	r.st.Rounds = history
	r.st.Leader = strings.TrimSpace(active.Leader)
	r.st.IsLeader = r.st.Leader == strings.TrimSpace(r.player)

	r.st.Scores = game.ScoresOf(history)
	r.st.Decade = game.DecadeOf(history)
	r.st.RequiredGroupSize = game.RequiredGroupSize(len(r.st.Players), r.st.Decade)

	subPhase := 1
	if active.Status == game.StatusVoting {
		subPhase = active.Phase.SubPhase()
	}

	phase := r.derivePhase(active)

	// Reset rules. Local-only fields are cleared on exactly these edges,
	// by comparing against the remembered previous identity, never
	// unconditionally: clearing on every pass would erase an in-flight
	// optimistic update before the poll confirms it.
	if active.ID != r.lastRoundID {
		r.log.Debugf("round changed %q -> %q", r.lastRoundID, active.ID)
		r.st.YourVote = nil
		r.st.YourAction = nil
		r.st.Draft = nil
		r.st.Tally = game.Tally{Pending: len(r.st.Players)}
		r.st.FailedVotes = 0
		r.lastRoundID = active.ID
	}
	if r.st.Decade != r.lastDecade {
		r.log.Debugf("decade changed %d -> %d", r.lastDecade, r.st.Decade)
		r.st.YourVote = nil
		r.st.YourAction = nil
		r.st.Draft = nil
		r.st.Tally = game.Tally{Pending: len(r.st.Players)}
		r.st.FailedVotes = 0
		r.gw.InvalidateCachePrefix(api.RoundsListCachePrefix(r.gameID))
		r.lastDecade = r.st.Decade
	}
	if active.Status == game.StatusVoting && subPhase != r.lastSubPhase {
		// The new sub-phase's server-side vote count starts at zero.
		r.log.Debugf("voting sub-phase changed %d -> %d", r.lastSubPhase, subPhase)
		r.st.YourVote = nil
	}
	if phase == PhaseVoting && r.lastPhase != PhaseVoting {
		r.st.YourVote = nil
	}
	r.lastSubPhase = subPhase
	r.lastPhase = phase

	r.st.VotingSubPhase = subPhase
	r.st.Phase = phase

	// The consecutive failed votes this decade follow from the sub-phase.
	if active.Status == game.StatusVoting {
		r.st.FailedVotes = subPhase - 1
	}

	// Authoritative recompute replaces any optimistic increment.
	r.st.Tally = game.TallyVotes(active.Votes, len(r.st.Players))

	// The leader's draft survives polling until the server has a committed
	// group; adopting that group covers rejoining mid-selection. Everyone
	// else just mirrors the server.
	if r.st.IsLeader && phase == PhaseChooseGroup {
		if len(r.st.Draft) == 0 && len(active.Group) > 0 {
			r.st.Draft = slices.Clone(active.Group)
		}
	} else {
		r.st.Draft = slices.Clone(active.Group)
	}
}

// derivePhase dispatches on round status after the finished-game check.
// The terminal check wins: once either faction has the win target or the
// decade count is exhausted no further transitions are processed.
func (r *Reconciler) derivePhase(active *game.Round) Phase {
	if game.Finished(r.st.Scores, r.st.Decade) {
		return PhaseEnded
	}
	switch active.Status {
	case game.StatusWaitingOnLeader:
		if r.st.IsLeader {
			return PhaseChooseGroup
		}
		return PhaseWaitingOnLeader
	case game.StatusVoting:
		return PhaseVoting
	case game.StatusWaitingOnGroup:
		return PhaseWaitingOnGroup
	case game.StatusEnded:
		return PhaseBetweenRounds
	default:
		return PhaseWaitingOnLeader
	}
}

// noteError records a pass failure. Credential rejections invalidate the
// stored session so the player is re-prompted; transport blips are left
// for the poller to log without flapping the UI.
func (r *Reconciler) noteError(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && (reqErr.StatusCode == http.StatusUnauthorized || reqErr.StatusCode == http.StatusForbidden) {
		if r.sessions != nil {
			r.sessions.ClearCredentials(r.gameID)
		}
		r.st.NeedsRejoin = true
		r.st.LastErr = reqErr.Message
		return err
	}

	var tErr *api.TransportError
	if !errors.As(err, &tErr) {
		r.st.LastErr = err.Error()
	}
	return err
}

// Snapshot returns a copy of the current state safe to read concurrently
// with further passes.
func (r *Reconciler) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.st
	st.Players = slices.Clone(st.Players)
	st.Rounds = slices.Clone(st.Rounds)
	st.Draft = slices.Clone(st.Draft)
	if st.Game != nil {
		g := *st.Game
		st.Game = &g
	}
	if st.Round != nil {
		rd := *st.Round
		st.Round = &rd
	}
	if st.YourVote != nil {
		v := *st.YourVote
		st.YourVote = &v
	}
	if st.YourAction != nil {
		a := *st.YourAction
		st.YourAction = &a
	}
	return st
}

// RecordVote applies the optimistic local bump right after a vote
// submission. The next pass's authoritative recompute replaces these
// counters outright, so there is no double counting to untangle.
func (r *Reconciler) RecordVote(approve bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.YourVote = &approve
	r.st.Tally.Total++
	if approve {
		r.st.Tally.Yes++
	} else {
		r.st.Tally.No++
	}
	if r.st.Tally.Pending > 0 {
		r.st.Tally.Pending--
	}
	r.st.Tally.AllVoted = r.st.Tally.Total >= len(r.st.Players)
}

// RecordAction marks the player's covert action as submitted.
func (r *Reconciler) RecordAction(collaborate bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.YourAction = &collaborate
}

// ToggleDraft adds or removes a player from the leader's group draft. It
// is a no-op for non-leaders, outside choose-group, or when the draft is
// already at the required size.
func (r *Reconciler) ToggleDraft(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.st.IsLeader || r.st.Phase != PhaseChooseGroup {
		return
	}
	if i := slices.Index(r.st.Draft, name); i >= 0 {
		r.st.Draft = slices.Delete(r.st.Draft, i, i+1)
		return
	}
	if len(r.st.Draft) < r.st.RequiredGroupSize {
		r.st.Draft = append(r.st.Draft, name)
	}
}

// ClearDraft empties the leader's group draft.
func (r *Reconciler) ClearDraft() {
	r.mu.Lock()
	r.st.Draft = nil
	r.mu.Unlock()
}

// CanPropose reports whether the leader's draft is complete and may be
// submitted.
func (r *Reconciler) CanPropose() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.IsLeader && r.st.Phase == PhaseChooseGroup &&
		r.st.Round != nil && len(r.st.Draft) == r.st.RequiredGroupSize && r.st.RequiredGroupSize > 0
}

// CanVote reports whether the player may cast a vote right now.
func (r *Reconciler) CanVote() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.Phase == PhaseVoting && r.st.Round != nil &&
		len(r.st.Round.Group) > 0 && r.st.YourVote == nil
}

// CanAct reports whether the player may submit a group action right now.
func (r *Reconciler) CanAct() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.Phase == PhaseWaitingOnGroup && r.st.Round != nil &&
		slices.Contains(r.st.Round.Group, r.player) && r.st.YourAction == nil
}
