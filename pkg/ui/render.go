package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/game"
	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/reconcile"
)

// View renders the current state of the UI
func (m Model) View() string {
	var s string

	if m.message != "" {
		s += noticeStyle.Render(m.message) + "\n\n"
	}
	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
	}

	switch m.state {
	case stateMainMenu:
		s += titleStyle.Render("contaminaDOS") + "\n\n"
		s += fmt.Sprintf("  Player: %s\n", m.player)
		s += fmt.Sprintf("  Server: %s\n\n", m.client.BaseURL())
		for i, option := range m.menuOptions {
			if i == m.selectedItem {
				s += focusedRow.Render(fmt.Sprintf("> %s", option)) + "\n"
			} else {
				s += mutedStyle.Render(fmt.Sprintf("  %s", option)) + "\n"
			}
		}
		s += helpStyle.Render("up/down: move • enter: select • ctrl+c: quit")

	case stateGameList:
		s += titleStyle.Render("Open Games") + "\n\n"
		s += fmt.Sprintf("  Search: %s_\n\n", m.searchInput)
		if len(m.games) == 0 {
			s += mutedStyle.Render("  no games found") + "\n"
		}
		for i, g := range m.games {
			style := mutedStyle
			prefix := "  "
			if i == m.selectedGame {
				style = focusedRow
				prefix = "> "
			}
			lock := ""
			if g.RequiresPassword {
				lock = " [locked]"
			}
			s += style.Render(fmt.Sprintf("%s%s (%d/%d, %s)%s", prefix, g.Name, g.Players, g.MaxPlayers, g.Status, lock)) + "\n"
		}
		s += helpStyle.Render("type to search • up/down: move • enter: join • esc: back")

	case stateCreateGame:
		s += titleStyle.Render("Create Game") + "\n\n"
		fields := []struct{ label, value string }{
			{"Name", m.nameInput},
			{"Password (optional)", m.roomPassInput},
		}
		for i, f := range fields {
			style := mutedStyle
			prefix := "  "
			if i == m.selectedFormField {
				style = focusedRow
				prefix = "> "
			}
			s += style.Render(fmt.Sprintf("%s%s: %s_", prefix, f.label, f.value)) + "\n"
		}
		s += helpStyle.Render("up/down: field • enter: create • esc: back")

	case stateJoinGame:
		s += titleStyle.Render("Join Game") + "\n\n"
		s += focusedRow.Render(fmt.Sprintf("> Game ID: %s_", m.gameIDInput)) + "\n"
		s += helpStyle.Render("enter: join • esc: back")

	case stateInGame:
		s += m.viewGame()
	}

	return s
}

func (m Model) viewGame() string {
	st := m.st
	var s string

	name := st.RoomName
	if name == "" {
		name = m.gameID
	}
	s += titleStyle.Render(name) + "\n"

	if st.NeedsRejoin {
		s += warningBanner.Render("Session rejected: rejoin the game to continue") + "\n"
	} else if st.LastErr != "" {
		s += errorStyle.Render(st.LastErr) + "\n"
	}

	s += m.viewScoreboard(st) + "\n"
	s += m.viewPhase(st) + "\n"
	s += m.viewRoster(st)
	s += m.viewHistory(st)
	s += helpStyle.Render(m.gameHelp(st))
	return s
}

func (m Model) viewScoreboard(st reconcile.State) string {
	cards := []string{
		scoreCardStyle.Render("Citizens\n" + citizensStyle.Render(fmt.Sprintf("%d", st.Scores.Citizens))),
		scoreCardStyle.Render("Psychopaths\n" + enemiesStyle.Render(fmt.Sprintf("%d", st.Scores.Enemies))),
		scoreCardStyle.Render(fmt.Sprintf("Decade\n%d / %d", st.Decade, game.MaxDecades)),
		scoreCardStyle.Render(fmt.Sprintf("Group size\n%d", st.RequiredGroupSize)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) viewPhase(st reconcile.State) string {
	var s string

	switch st.Phase {
	case reconcile.PhaseChooseGroup:
		s += noticeStyle.Render("You lead this decade. Pick your group.") + "\n"
		s += "  Draft: " + m.viewDraft(st) + "\n"
	case reconcile.PhaseWaitingOnLeader:
		leader := st.Leader
		if leader == "" {
			leader = "the leader"
		}
		s += fmt.Sprintf("  Waiting for %s to propose a group.\n", leader)
	case reconcile.PhaseVoting:
		s += noticeStyle.Render(fmt.Sprintf("Vote on the proposed group (attempt %d of 3)", st.VotingSubPhase)) + "\n"
		if st.VotingSubPhase == 3 {
			s += warningBanner.Render("Final attempt: a third rejection hands the round to the psychopaths") + "\n"
		}
		s += fmt.Sprintf("  Ballots: %d in favor, %d against, %d pending\n", st.Tally.Yes, st.Tally.No, st.Tally.Pending)
		if st.YourVote != nil {
			if *st.YourVote {
				s += mutedStyle.Render("  your vote: in favor") + "\n"
			} else {
				s += mutedStyle.Render("  your vote: against") + "\n"
			}
		}
	case reconcile.PhaseWaitingOnGroup:
		if st.InGroup(m.player) {
			s += noticeStyle.Render("You are on the mission. Collaborate or sabotage.") + "\n"
			if st.YourAction != nil {
				s += mutedStyle.Render("  action submitted") + "\n"
			}
		} else {
			s += "  The group is carrying out the mission.\n"
		}
	case reconcile.PhaseBetweenRounds:
		if st.Round != nil {
			s += fmt.Sprintf("  Round finished: %s took it.\n", st.Round.Result)
		}
	case reconcile.PhaseEnded:
		switch {
		case st.Scores.Citizens >= game.WinTarget:
			s += citizensStyle.Render("  Citizens win the game!") + "\n"
		case st.Scores.Enemies >= game.WinTarget:
			s += enemiesStyle.Render("  Psychopaths win the game!") + "\n"
		default:
			s += "  Game over.\n"
		}
	}

	if st.Round != nil && len(st.Round.Group) > 0 && st.Phase != reconcile.PhaseChooseGroup {
		s += "  Group: " + strings.Join(st.Round.Group, ", ") + "\n"
	}
	if st.FailedVotes > 0 && st.Phase == reconcile.PhaseVoting {
		s += mutedStyle.Render(fmt.Sprintf("  rejected proposals this round: %d", st.FailedVotes)) + "\n"
	}
	return s
}

func (m Model) viewDraft(st reconcile.State) string {
	if len(st.Draft) == 0 {
		return mutedStyle.Render("(empty)")
	}
	chips := make([]string, 0, len(st.Draft))
	for _, p := range st.Draft {
		chips = append(chips, chipOnStyle.Render(p))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...) +
		mutedStyle.Render(fmt.Sprintf("  %d of %d", len(st.Draft), st.RequiredGroupSize))
}

func (m Model) viewRoster(st reconcile.State) string {
	if len(st.Players) == 0 {
		return ""
	}
	var enemies []string
	if st.Game != nil {
		enemies = st.Game.Enemies
	}

	s := "\n  Players:\n"
	for i, p := range st.Players {
		label := game.RoleLabel(m.player, p, st.Leader, enemies)
		chip := chipStyle
		if st.IsLeader && st.Phase == reconcile.PhaseChooseGroup {
			for _, d := range st.Draft {
				if d == p {
					chip = chipOnStyle
				}
			}
		}
		role := mutedStyle.Render(label)
		if label == game.RoleLeader {
			role = leaderStyle.Render(label)
		} else if label == game.RolePsychopath {
			role = enemiesStyle.Render(label)
		}
		key := fmt.Sprintf("%d", (i+1)%10)
		s += fmt.Sprintf("  %s %s %s\n", mutedStyle.Render(key), chip.Render(p), role)
	}
	return s
}

func (m Model) viewHistory(st reconcile.State) string {
	if len(st.Rounds) == 0 {
		return ""
	}
	s := "\n  Rounds:\n"
	for i, r := range st.Rounds {
		result := string(r.Result)
		if r.Status != game.StatusEnded {
			result = "in progress"
		}
		s += mutedStyle.Render(fmt.Sprintf("  %d. leader %s: %s", i+1, r.Leader, result)) + "\n"
	}
	return s
}

func (m Model) gameHelp(st reconcile.State) string {
	keys := []string{}
	if st.Game != nil && st.Game.Status == game.GameLobby {
		keys = append(keys, "b: start game")
	}
	switch st.Phase {
	case reconcile.PhaseChooseGroup:
		keys = append(keys, "1-9,0: toggle player", "x: clear", "enter: propose")
	case reconcile.PhaseVoting:
		keys = append(keys, "y: approve", "n: reject")
	case reconcile.PhaseWaitingOnGroup:
		if st.InGroup(m.player) {
			keys = append(keys, "c: collaborate", "s: sabotage")
		}
	}
	keys = append(keys, "r: refresh", "esc: leave")
	return strings.Join(keys, " • ")
}
