package game

import "testing"

func TestRequiredGroupSizeTable(t *testing.T) {
	cases := []struct {
		players, decade, want int
	}{
		{5, 1, 2},
		{5, 3, 2},
		{5, 5, 3},
		{6, 3, 4},
		{7, 4, 4},
		{8, 1, 3},
		{9, 5, 5},
		{10, 2, 4},
	}
	for _, c := range cases {
		if got := RequiredGroupSize(c.players, c.decade); got != c.want {
			t.Errorf("RequiredGroupSize(%d, %d) = %d, want %d", c.players, c.decade, got, c.want)
		}
	}
}

func TestRequiredGroupSizeWholeDomain(t *testing.T) {
	for players := MinPlayers; players <= MaxPlayers; players++ {
		for decade := 1; decade <= MaxDecades; decade++ {
			got := RequiredGroupSize(players, decade)
			if got < 2 || got > 5 {
				t.Errorf("RequiredGroupSize(%d, %d) = %d, outside table range", players, decade, got)
			}
		}
	}
}

func TestRequiredGroupSizeClamps(t *testing.T) {
	if got, want := RequiredGroupSize(4, 1), RequiredGroupSize(5, 1); got != want {
		t.Errorf("player count below range: got %d, want clamp to %d", got, want)
	}
	if got, want := RequiredGroupSize(50, 2), RequiredGroupSize(10, 2); got != want {
		t.Errorf("player count above range: got %d, want clamp to %d", got, want)
	}
	if got, want := RequiredGroupSize(7, 9), RequiredGroupSize(7, 5); got != want {
		t.Errorf("decade above range: got %d, want clamp to %d", got, want)
	}
}

func TestRequiredGroupSizeBeforeFirstDecade(t *testing.T) {
	if got := RequiredGroupSize(7, 0); got != 0 {
		t.Errorf("decade 0 should have no group phase, got size %d", got)
	}
	if got := RequiredGroupSize(7, -3); got != 0 {
		t.Errorf("negative decade should have no group phase, got size %d", got)
	}
}
