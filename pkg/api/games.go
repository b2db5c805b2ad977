package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/game"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 200

	minNameLen = 3
	maxNameLen = 20
)

func gamePath(gameID string) string {
	return "/api/games/" + url.PathEscape(gameID) + "/"
}

// SearchGames lists lobby games matching the filters. Browse is
// best-effort: a name outside 3..20 chars is simply not forwarded, a limit
// outside (0,200] falls back to the default, and server errors yield an
// empty list rather than surfacing.
func (c *Client) SearchGames(ctx context.Context, name, status string, page, limit int) ([]game.Summary, error) {
	q := url.Values{}
	if n := strings.TrimSpace(name); len(n) >= minNameLen && len(n) <= maxNameLen {
		q.Set("name", n)
	}
	if status != "" {
		q.Set("status", status)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 && limit <= maxPageLimit {
		q.Set("limit", strconv.Itoa(limit))
	} else {
		q.Set("limit", strconv.Itoa(defaultPageLimit))
	}

	body, err := c.do(ctx, request{method: http.MethodGet, path: "/api/games", query: q})
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			c.log.Warnf("game search failed: %v", err)
			return nil, nil
		}
		return nil, err
	}
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	var raw []struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		Status       string   `json:"status"`
		Players      []string `json:"players"`
		Password     bool     `json:"password"`
		CurrentRound string   `json:"currentRound"`
	}
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		return nil, &MalformedResponseError{Msg: "games data must be an array"}
	}

	out := make([]game.Summary, 0, len(raw))
	for _, g := range raw {
		s := game.Summary{
			ID:               g.ID,
			Name:             g.Name,
			Players:          len(g.Players),
			MaxPlayers:       game.MaxPlayers,
			RequiresPassword: g.Password,
			Status:           game.GameStatus(g.Status),
		}
		if s.Status == "" {
			s.Status = game.GameLobby
		}
		if len(g.Players) > 0 {
			s.Owner = g.Players[0]
		}
		out = append(out, s)
	}
	return out, nil
}

// ListAllGames pages through SearchGames until a short or empty page.
func (c *Client) ListAllGames(ctx context.Context, name string) ([]game.Summary, error) {
	var all []game.Summary
	for page := 0; ; page++ {
		games, err := c.SearchGames(ctx, name, "", page, defaultPageLimit)
		if err != nil {
			return nil, err
		}
		all = append(all, games...)
		if len(games) < defaultPageLimit {
			return all, nil
		}
	}
}

// CreateGame creates a new lobby owned by owner. Name, owner and a password
// (when given) must all be 3..20 characters.
func (c *Client) CreateGame(ctx context.Context, name, owner, password string) (*game.Game, error) {
	name, owner, password = strings.TrimSpace(name), strings.TrimSpace(owner), strings.TrimSpace(password)
	if name == "" {
		return nil, validationf("game name is required")
	}
	if len(name) < minNameLen || len(name) > maxNameLen {
		return nil, validationf("game name must be between %d and %d characters", minNameLen, maxNameLen)
	}
	if owner == "" {
		return nil, validationf("owner name is required")
	}
	if len(owner) < minNameLen || len(owner) > maxNameLen {
		return nil, validationf("owner name must be between %d and %d characters", minNameLen, maxNameLen)
	}
	payload := map[string]string{"name": name, "owner": owner}
	if password != "" {
		if len(password) < minNameLen || len(password) > maxNameLen {
			return nil, validationf("password must be between %d and %d characters", minNameLen, maxNameLen)
		}
		payload["password"] = password
	}

	body, err := c.do(ctx, request{method: http.MethodPost, path: "/api/games", body: payload})
	if err != nil {
		return nil, err
	}
	g, err := decodeGameDetail(body)
	if err != nil {
		return nil, err
	}
	if g.Name == "" {
		g.Name = name
	}
	if g.Owner == "" {
		g.Owner = owner
	}
	return g, nil
}

// JoinGame adds the player to a lobby.
func (c *Client) JoinGame(ctx context.Context, gameID, player, password string) error {
	gameID, player = strings.TrimSpace(gameID), strings.TrimSpace(player)
	if gameID == "" {
		return validationf("gameId is required")
	}
	if player == "" {
		return validationf("player name is required")
	}
	_, err := c.do(ctx, request{
		method:   http.MethodPut,
		path:     gamePath(gameID),
		player:   player,
		password: password,
		body:     map[string]string{"player": player},
	})
	return err
}

// StartGame asks the server to begin the rounds phase. The endpoint is a
// HEAD, so failures carry no body; the message comes from the X-Msg header
// or a fixed mapping per status.
func (c *Client) StartGame(ctx context.Context, gameID, player, password string) error {
	gameID, player = strings.TrimSpace(gameID), strings.TrimSpace(player)
	if gameID == "" {
		return validationf("gameId is required")
	}
	if player == "" {
		return validationf("player name is required")
	}
	_, err := c.do(ctx, request{
		method:   http.MethodHead,
		path:     "/api/games/" + url.PathEscape(gameID) + "/start",
		player:   player,
		password: password,
	})
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message == statusMessage(reqErr.StatusCode) {
		switch reqErr.StatusCode {
		case http.StatusPreconditionRequired:
			reqErr.Message = "at least 5 players are needed to start"
		case http.StatusConflict:
			reqErr.Message = "the game has already started"
		case http.StatusForbidden:
			reqErr.Message = "not authorized to start the game"
		}
	}
	return err
}

// GameDetails fetches the full game record for a joined player.
func (c *Client) GameDetails(ctx context.Context, gameID, player, password string) (*game.Game, error) {
	gameID, player = strings.TrimSpace(gameID), strings.TrimSpace(player)
	if gameID == "" {
		return nil, validationf("gameId is required")
	}
	if player == "" {
		return nil, validationf("player name is required")
	}
	body, err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     gamePath(gameID),
		player:   player,
		password: password,
	})
	if err != nil {
		return nil, err
	}
	return decodeGameDetail(body)
}

func decodeGameDetail(body []byte) (*game.Game, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	var g game.Game
	if err := json.Unmarshal(env.Data, &g); err != nil {
		return nil, &MalformedResponseError{Msg: "game detail failed shape validation"}
	}
	if g.ID == "" {
		return nil, &MalformedResponseError{Msg: "game detail missing id"}
	}
	if g.Owner == "" && len(g.Players) > 0 {
		g.Owner = g.Players[0]
	}
	return &g, nil
}
