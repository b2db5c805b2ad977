package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/decred/slog"

	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/api"
	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/game"
	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/reconcile"
	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/session"
)

type menuOption string

const (
	optionListGames  menuOption = "Browse Games"
	optionCreateGame menuOption = "Create Game"
	optionJoinGame   menuOption = "Join Game"
	optionQuit       menuOption = "Quit"
)

// screenState represents the current screen in the UI
type screenState int

const (
	stateMainMenu screenState = iota
	stateGameList
	stateCreateGame
	stateJoinGame
	stateInGame
)

// Model contains all the state for our UI
type Model struct {
	ctx      context.Context
	client   *api.Client
	sessions *session.Store
	log      slog.Logger

	player   string
	password string

	state        screenState
	err          error
	message      string
	selectedItem int
	menuOptions  []menuOption

	// Game list screen
	games        []game.Summary
	searchInput  string
	searchSeq    int
	selectedGame int

	// Create form inputs (just strings for simplicity)
	nameInput         string
	roomPassInput     string
	selectedFormField int

	// Join form
	gameIDInput string

	// In-game
	gameID     string
	rec        *reconcile.Reconciler
	cancelPoll context.CancelFunc
	st         reconcile.State
}

// NewModel creates a new UI model. If gameID is non-empty the model boots
// straight into the in-game screen, resuming the session for that room.
func NewModel(ctx context.Context, client *api.Client, sessions *session.Store, log slog.Logger, player, password, gameID string) Model {
	m := Model{
		ctx:      ctx,
		client:   client,
		sessions: sessions,
		log:      log,
		player:   player,
		password: password,
		state:    stateMainMenu,
		menuOptions: []menuOption{
			optionListGames,
			optionCreateGame,
			optionJoinGame,
			optionQuit,
		},
	}
	if gameID != "" {
		m.enterGame(gameID)
	}
	return m
}

// enterGame builds the reconciler for a room and starts its poller. Any
// previous poller is stopped first.
func (m *Model) enterGame(gameID string) {
	if m.cancelPoll != nil {
		m.cancelPoll()
	}
	m.gameID = gameID
	m.rec = reconcile.New(m.client, m.sessions, m.log, gameID, m.player, m.password)
	pollCtx, cancel := context.WithCancel(m.ctx)
	m.cancelPoll = cancel
	go reconcile.NewPoller(m.rec, m.log).Run(pollCtx)
	m.st = m.rec.Snapshot()
	m.state = stateInGame
}

// leaveGame stops the poller and returns to the main menu. Session
// credentials are kept so the room can be re-entered.
func (m *Model) leaveGame() {
	if m.cancelPoll != nil {
		m.cancelPoll()
		m.cancelPoll = nil
	}
	m.rec = nil
	m.gameID = ""
	m.state = stateMainMenu
	m.message = ""
	m.err = nil
}

func (m Model) Init() tea.Cmd {
	if m.state == stateInGame {
		return refreshTick()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateInGame {
			return m.updateInGame(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.state != stateMainMenu {
				m.state = stateMainMenu
				m.message = ""
				m.err = nil
				return m, nil
			}
			return m, tea.Quit
		case "up":
			switch m.state {
			case stateMainMenu:
				m.selectedItem = max(0, m.selectedItem-1)
			case stateGameList:
				m.selectedGame = max(0, m.selectedGame-1)
			case stateCreateGame:
				m.selectedFormField = max(0, m.selectedFormField-1)
			}
		case "down":
			switch m.state {
			case stateMainMenu:
				m.selectedItem = min(len(m.menuOptions)-1, m.selectedItem+1)
			case stateGameList:
				if len(m.games) > 0 {
					m.selectedGame = min(len(m.games)-1, m.selectedGame+1)
				}
			case stateCreateGame:
				m.selectedFormField = min(1, m.selectedFormField+1)
			}
		case "enter":
			switch m.state {
			case stateMainMenu:
				switch m.menuOptions[m.selectedItem] {
				case optionListGames:
					m.state = stateGameList
					m.searchInput = ""
					m.selectedGame = 0
					m.searchSeq++
					cmds = append(cmds, listGamesCmd(m.ctx, m.client, "", m.searchSeq))
				case optionCreateGame:
					m.state = stateCreateGame
					m.selectedFormField = 0
				case optionJoinGame:
					m.state = stateJoinGame
				case optionQuit:
					return m, tea.Quit
				}
			case stateGameList:
				if len(m.games) > 0 {
					g := m.games[m.selectedGame]
					cmds = append(cmds, joinGameCmd(m.ctx, m.client, g.ID, m.player, m.password))
				}
			case stateCreateGame:
				cmds = append(cmds, createGameCmd(m.ctx, m.client, m.nameInput, m.player, m.roomPassInput))
			case stateJoinGame:
				if m.gameIDInput != "" {
					cmds = append(cmds, joinGameCmd(m.ctx, m.client, m.gameIDInput, m.player, m.password))
				}
			}
		default:
			applyTyping(&m, msg)
			if m.state == stateGameList {
				m.searchSeq++
				cmds = append(cmds, listGamesCmd(m.ctx, m.client, m.searchInput, m.searchSeq))
			}
		}

	case gamesListedMsg:
		// Out-of-order responses from superseded searches are dropped.
		if msg.seq != m.searchSeq {
			break
		}
		m.games = msg.games
		if m.selectedGame >= len(m.games) {
			m.selectedGame = max(0, len(m.games)-1)
		}

	case createdMsg:
		g := (*game.Game)(msg)
		m.message = fmt.Sprintf("Created %q (%s)", g.Name, g.ID)
		m.enterGame(g.ID)
		cmds = append(cmds, refreshTick())

	case joinedMsg:
		m.message = "Joined game " + msg.gameID
		m.enterGame(msg.gameID)
		cmds = append(cmds, refreshTick())

	case refreshMsg:
		if m.state == stateInGame && m.rec != nil {
			m.st = m.rec.Snapshot()
			cmds = append(cmds, refreshTick())
		}

	case snapshotMsg:
		m.st = reconcile.State(msg)

	case ackMsg:
		m.message = string(msg)
		m.err = nil

	case startedMsg:
		m.message = "Game started"
		m.err = nil

	case errMsg:
		m.err = msg.err
		m.message = ""
	}

	return m, tea.Batch(cmds...)
}

// applyTyping routes printable keys into whatever text field the current
// screen exposes.
func applyTyping(dst *Model, msg tea.KeyMsg) {
	key := msg.String()
	edit := func(field *string) {
		if key == "backspace" {
			if len(*field) > 0 {
				*field = (*field)[:len(*field)-1]
			}
			return
		}
		if len(key) == 1 {
			*field += key
		}
	}

	switch dst.state {
	case stateGameList:
		edit(&dst.searchInput)
	case stateJoinGame:
		edit(&dst.gameIDInput)
	case stateCreateGame:
		if dst.selectedFormField == 0 {
			edit(&dst.nameInput)
		} else {
			edit(&dst.roomPassInput)
		}
	}
}

// updateInGame handles messages while the in-game screen is active.
func (m Model) updateInGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.String() {
	case "ctrl+c":
		m.leaveGame()
		return m, tea.Quit
	case "esc", "q":
		m.leaveGame()
		return m, nil
	case "b":
		if m.st.Game != nil && m.st.Game.Status == game.GameLobby {
			cmds = append(cmds, startGameCmd(m.ctx, m.client, m.gameID, m.player, m.password))
		}
	case "enter":
		if m.rec != nil && m.rec.CanPropose() {
			cmds = append(cmds, proposeGroupCmd(m.ctx, m.client, m.rec))
		}
	case "x":
		if m.rec != nil {
			m.rec.ClearDraft()
			m.st = m.rec.Snapshot()
		}
	case "y":
		if m.rec != nil && m.rec.CanVote() {
			cmds = append(cmds, voteCmd(m.ctx, m.client, m.rec, true))
		}
	case "n":
		if m.rec != nil && m.rec.CanVote() {
			cmds = append(cmds, voteCmd(m.ctx, m.client, m.rec, false))
		}
	case "c":
		if m.rec != nil && m.rec.CanAct() {
			cmds = append(cmds, actCmd(m.ctx, m.client, m.rec, true))
		}
	case "s":
		if m.rec != nil && m.rec.CanAct() {
			cmds = append(cmds, actCmd(m.ctx, m.client, m.rec, false))
		}
	case "r":
		if m.rec != nil {
			rec := m.rec
			ctx := m.ctx
			cmds = append(cmds, func() tea.Msg {
				_ = rec.Tick(ctx)
				return snapshotMsg(rec.Snapshot())
			})
		}
	default:
		if n, ok := rosterIndex(msg.String()); ok && m.rec != nil {
			if n < len(m.st.Players) {
				m.rec.ToggleDraft(m.st.Players[n])
				m.st = m.rec.Snapshot()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

type snapshotMsg reconcile.State

// Run starts the terminal program and blocks until the user quits.
func Run(ctx context.Context, client *api.Client, sessions *session.Store, log slog.Logger, player, password, gameID string) error {
	model := NewModel(ctx, client, sessions, log, player, password, gameID)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// rosterIndex maps the keys 1..9 and 0 onto roster positions 0..9.
func rosterIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	if key == "0" {
		return 9, true
	}
	return int(key[0] - '1'), true
}
