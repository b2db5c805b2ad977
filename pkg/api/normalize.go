package api

import (
	"encoding/json"
	"strings"

	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/game"
)

// isRoundLike is the validation predicate for raw round records: string id
// and leader, known status/result/phase, group and votes present as arrays.
// The server is trusted but defensively checked.
func isRoundLike(raw map[string]any) bool {
	if _, ok := raw["id"].(string); !ok {
		return false
	}
	if _, ok := raw["leader"].(string); !ok {
		return false
	}
	status, ok := raw["status"].(string)
	if !ok || !game.ValidStatus(status) {
		return false
	}
	result, ok := raw["result"].(string)
	if !ok || !game.ValidResult(result) {
		return false
	}
	phase, ok := raw["phase"].(string)
	if !ok || !game.ValidVotePhase(phase) {
		return false
	}
	if _, ok := raw["group"].([]any); !ok {
		return false
	}
	if _, ok := raw["votes"].([]any); !ok {
		return false
	}
	return true
}

// normalizeRound coerces a validated raw record into the canonical shape:
// trimmed identifiers, empty group entries removed, votes filtered down to
// booleans. Extra fields the server may send are dropped on the floor.
func normalizeRound(raw map[string]any) game.Round {
	r := game.Round{
		ID:     strings.TrimSpace(raw["id"].(string)),
		Leader: strings.TrimSpace(raw["leader"].(string)),
		Status: game.RoundStatus(raw["status"].(string)),
		Result: game.RoundResult(raw["result"].(string)),
		Phase:  game.VotePhase(raw["phase"].(string)),
		Group:  []string{},
		Votes:  []bool{},
	}
	for _, m := range raw["group"].([]any) {
		if s, ok := m.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				r.Group = append(r.Group, trimmed)
			}
		}
	}
	for _, v := range raw["votes"].([]any) {
		if b, ok := v.(bool); ok {
			r.Votes = append(r.Votes, b)
		}
	}
	return r
}

// normalizeRounds filters, normalizes, dedupes (first occurrence of each id
// wins) and caps the history at game.MaxRounds. Records that fail to decode
// or validate are dropped silently: the server occasionally returns retried
// or duplicate rows and they must not corrupt client history.
func normalizeRounds(records []json.RawMessage) []game.Round {
	seen := make(map[string]bool, len(records))
	out := make([]game.Round, 0, len(records))
	for _, rec := range records {
		var raw map[string]any
		if err := json.Unmarshal(rec, &raw); err != nil {
			continue
		}
		if !isRoundLike(raw) {
			continue
		}
		r := normalizeRound(raw)
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
		if len(out) == game.MaxRounds {
			break
		}
	}
	return out
}
