package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/game"
)

// MutateOpts carries the optional concurrency tokens for mutating round
// calls. A blank IdempotencyKey is filled with a fresh uuid so retries of
// the same logical action stay safe.
type MutateOpts struct {
	IdempotencyKey string
	ETag           string
}

// Ack is the server's acknowledgement of a mutating call, passed back to
// the caller verbatim.
type Ack struct {
	Status int
	Msg    string
}

func roundsListKey(gameID, player string) string {
	return fmt.Sprintf("rounds-list:%s:%s", gameID, player)
}

func roundKey(gameID, roundID, player string) string {
	return fmt.Sprintf("round:%s:%s:%s", gameID, roundID, player)
}

// RoundsListCachePrefix keys every cached rounds listing for a game,
// regardless of the acting player.
func RoundsListCachePrefix(gameID string) string {
	return "rounds-list:" + gameID + ":"
}

func roundsPath(gameID string) string {
	return "/api/games/" + url.PathEscape(gameID) + "/rounds"
}

func roundPath(gameID, roundID string) string {
	return roundsPath(gameID) + "/" + url.PathEscape(roundID)
}

// ListRounds fetches the round history: normalized, deduplicated by id and
// capped at game.MaxRounds entries.
func (c *Client) ListRounds(ctx context.Context, gameID, player, password string) ([]game.Round, error) {
	gameID, player = strings.TrimSpace(gameID), strings.TrimSpace(player)
	if gameID == "" {
		return nil, validationf("gameId is required")
	}
	if player == "" {
		return nil, validationf("player name is required")
	}

	body, err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     roundsPath(gameID),
		player:   player,
		password: password,
		cacheKey: roundsListKey(gameID, player),
	})
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, &MalformedResponseError{Msg: "rounds data must be an array"}
	}
	return normalizeRounds(records), nil
}

// ShowRound fetches a single round detail.
func (c *Client) ShowRound(ctx context.Context, gameID, roundID, player, password string) (*game.Round, error) {
	gameID, roundID, player = strings.TrimSpace(gameID), strings.TrimSpace(roundID), strings.TrimSpace(player)
	if gameID == "" {
		return nil, validationf("gameId is required")
	}
	if roundID == "" {
		return nil, validationf("roundId is required")
	}
	if player == "" {
		return nil, validationf("player name is required")
	}

	body, err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     roundPath(gameID, roundID),
		player:   player,
		password: password,
		cacheKey: roundKey(gameID, roundID, player),
	})
	if err != nil {
		return nil, err
	}
	return decodeRoundDetail(body)
}

func decodeRoundDetail(body []byte) (*game.Round, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(env.Data, &raw); err != nil || !isRoundLike(raw) {
		return nil, &MalformedResponseError{Msg: "round detail failed shape validation"}
	}
	r := normalizeRound(raw)
	return &r, nil
}

// ProposeGroup submits the leader's mission group. The current round detail
// is fetched first and the call fails with InvalidPhaseError unless the
// round is still waiting on its leader; a best-effort optimistic lock, not
// a real one. On success the stale cache entries for the acting player are
// dropped and the freshly re-fetched detail is returned.
func (c *Client) ProposeGroup(ctx context.Context, gameID, roundID string, group []string, player, password string, opts MutateOpts) (*game.Round, error) {
	gameID, roundID, player = strings.TrimSpace(gameID), strings.TrimSpace(roundID), strings.TrimSpace(player)
	if gameID == "" {
		return nil, validationf("gameId is required")
	}
	if roundID == "" {
		return nil, validationf("roundId is required")
	}
	if player == "" {
		return nil, validationf("player name is required")
	}

	seen := make(map[string]bool, len(group))
	normalized := make([]string, 0, len(group))
	for _, name := range group {
		n := strings.TrimSpace(name)
		if n != "" && !seen[n] {
			seen[n] = true
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return nil, validationf("group cannot be empty")
	}

	current, err := c.ShowRound(ctx, gameID, roundID, player, password)
	if err != nil {
		return nil, err
	}
	if current.Status != game.StatusWaitingOnLeader {
		return nil, &InvalidPhaseError{Status: current.Status}
	}

	key := opts.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}
	_, err = c.do(ctx, request{
		method:         http.MethodPatch,
		path:           roundPath(gameID, roundID),
		player:         player,
		password:       password,
		body:           map[string][]string{"group": normalized},
		ifMatch:        opts.ETag,
		idempotencyKey: key,
	})
	if err != nil {
		return nil, err
	}

	c.cache.invalidate(roundKey(gameID, roundID, player))
	c.cache.invalidate(roundsListKey(gameID, player))

	return c.ShowRound(ctx, gameID, roundID, player, password)
}

// VoteForGroup casts the player's vote for the proposed group.
func (c *Client) VoteForGroup(ctx context.Context, gameID, roundID string, vote bool, player, password string, opts MutateOpts) (*Ack, error) {
	return c.mutateRound(ctx, gameID, roundID, http.MethodPost, map[string]bool{"vote": vote}, player, password, opts)
}

// SubmitAction submits the covert collaborate/sabotage action for a group
// member.
func (c *Client) SubmitAction(ctx context.Context, gameID, roundID string, collaborate bool, player, password string, opts MutateOpts) (*Ack, error) {
	return c.mutateRound(ctx, gameID, roundID, http.MethodPut, map[string]bool{"action": collaborate}, player, password, opts)
}

func (c *Client) mutateRound(ctx context.Context, gameID, roundID, method string, body any, player, password string, opts MutateOpts) (*Ack, error) {
	gameID, roundID, player = strings.TrimSpace(gameID), strings.TrimSpace(roundID), strings.TrimSpace(player)
	if gameID == "" {
		return nil, validationf("gameId is required")
	}
	if roundID == "" {
		return nil, validationf("roundId is required")
	}
	if player == "" {
		return nil, validationf("player name is required")
	}

	key := opts.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}
	raw, err := c.do(ctx, request{
		method:         method,
		path:           roundPath(gameID, roundID),
		player:         player,
		password:       password,
		body:           body,
		ifMatch:        opts.ETag,
		idempotencyKey: key,
	})
	if err != nil {
		return nil, err
	}

	c.cache.invalidate(roundKey(gameID, roundID, player))
	c.cache.invalidate(roundsListKey(gameID, player))

	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}
	return &Ack{Status: env.Status, Msg: env.Msg}, nil
}
