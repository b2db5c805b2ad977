package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/api"
	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/game"
	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/reconcile"
)

// Message types flowing back into Update.
type (
	gamesListedMsg struct {
		games []game.Summary
		seq   int
	}
	joinedMsg struct{ gameID string }
	createdMsg     *game.Game
	ackMsg         string
	errMsg         struct{ err error }
	refreshMsg     time.Time
	startedMsg     struct{}
)

// refreshTick re-renders the reconciler snapshot on a short cadence. The
// poller owns the real polling interval; this only repaints.
func refreshTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// listGamesCmd tags the result with the search generation that issued it,
// so a slow response cannot overwrite a newer listing.
func listGamesCmd(ctx context.Context, c *api.Client, name string, seq int) tea.Cmd {
	return func() tea.Msg {
		games, err := c.ListAllGames(ctx, name)
		if err != nil {
			return errMsg{err}
		}
		return gamesListedMsg{games: games, seq: seq}
	}
}

func createGameCmd(ctx context.Context, c *api.Client, name, owner, password string) tea.Cmd {
	return func() tea.Msg {
		g, err := c.CreateGame(ctx, name, owner, password)
		if err != nil {
			return errMsg{err}
		}
		return createdMsg(g)
	}
}

func joinGameCmd(ctx context.Context, c *api.Client, gameID, player, password string) tea.Cmd {
	return func() tea.Msg {
		if err := c.JoinGame(ctx, gameID, player, password); err != nil {
			return errMsg{err}
		}
		return joinedMsg{gameID: gameID}
	}
}

func startGameCmd(ctx context.Context, c *api.Client, gameID, player, password string) tea.Cmd {
	return func() tea.Msg {
		if err := c.StartGame(ctx, gameID, player, password); err != nil {
			return errMsg{err}
		}
		return startedMsg{}
	}
}

func proposeGroupCmd(ctx context.Context, c *api.Client, rec *reconcile.Reconciler) tea.Cmd {
	return func() tea.Msg {
		st := rec.Snapshot()
		if st.Round == nil {
			return errMsg{&api.ValidationError{Msg: "no active round"}}
		}
		player, password := rec.Credentials()
		_, err := c.ProposeGroup(ctx, rec.GameID(), st.Round.ID, st.Draft, player, password, api.MutateOpts{})
		if err != nil {
			return errMsg{err}
		}
		return ackMsg("group submitted")
	}
}

func voteCmd(ctx context.Context, c *api.Client, rec *reconcile.Reconciler, approve bool) tea.Cmd {
	return func() tea.Msg {
		st := rec.Snapshot()
		if st.Round == nil {
			return errMsg{&api.ValidationError{Msg: "no active round"}}
		}
		player, password := rec.Credentials()
		if _, err := c.VoteForGroup(ctx, rec.GameID(), st.Round.ID, approve, player, password, api.MutateOpts{}); err != nil {
			return errMsg{err}
		}
		rec.RecordVote(approve)
		if approve {
			return ackMsg("vote registered: in favor")
		}
		return ackMsg("vote registered: against")
	}
}

func actCmd(ctx context.Context, c *api.Client, rec *reconcile.Reconciler, collaborate bool) tea.Cmd {
	return func() tea.Msg {
		st := rec.Snapshot()
		if st.Round == nil {
			return errMsg{&api.ValidationError{Msg: "no active round"}}
		}
		player, password := rec.Credentials()
		if _, err := c.SubmitAction(ctx, rec.GameID(), st.Round.ID, collaborate, player, password, api.MutateOpts{}); err != nil {
			return errMsg{err}
		}
		rec.RecordAction(collaborate)
		if collaborate {
			return ackMsg("action registered: collaborate")
		}
		return ackMsg("action registered: sabotage")
	}
}
