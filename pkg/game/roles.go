package game

import "slices"

// Role labels shown on the player roster.
const (
	RoleCitizen    = "citizen"
	RolePsychopath = "psychopath"
	RoleLeader     = "leader"
)

// FactionOf returns the player's true faction given the enemy list the
// server exposed to the viewer.
func FactionOf(player string, enemies []string) string {
	if slices.Contains(enemies, player) {
		return RolePsychopath
	}
	return RoleCitizen
}

// RoleLabel decides what role the viewer sees for target. The rules hide
// information on purpose: a player always sees their own true faction, the
// round leader is labeled leader to everyone else, a psychopath sees the
// other psychopaths, and every remaining combination reads citizen.
func RoleLabel(viewer, target, leader string, enemies []string) string {
	viewerIsEnemy := slices.Contains(enemies, viewer)
	if target == viewer {
		return FactionOf(viewer, enemies)
	}
	if target == leader {
		return RoleLeader
	}
	if viewerIsEnemy && slices.Contains(enemies, target) {
		return RolePsychopath
	}
	return RoleCitizen
}
