package session

import "testing"

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore()

	s.SetCredentials("g1", Credentials{Player: " Alice ", Password: " pw "})
	got, ok := s.Credentials("g1")
	if !ok {
		t.Fatal("expected credentials for g1")
	}
	if got.Player != "Alice" || got.Password != "pw" {
		t.Errorf("credentials not trimmed: %+v", got)
	}

	if _, ok := s.Credentials("other"); ok {
		t.Error("credentials must be scoped per game")
	}

	s.ClearCredentials("g1")
	if _, ok := s.Credentials("g1"); ok {
		t.Error("cleared credentials still present")
	}
}

func TestStoreIgnoresBlankPlayer(t *testing.T) {
	s := NewStore()
	s.SetCredentials("g1", Credentials{Player: "Alice", Password: "pw"})
	s.SetCredentials("g1", Credentials{Player: "  "})
	if got, _ := s.Credentials("g1"); got.Player != "Alice" {
		t.Errorf("blank player overwrote a working session: %+v", got)
	}
}

func TestRoomNames(t *testing.T) {
	s := NewStore()
	s.SetRoomName("g1", "midnight")
	if got := s.RoomName("g1"); got != "midnight" {
		t.Errorf("RoomName = %q", got)
	}
	if got := s.RoomName("g2"); got != "" {
		t.Errorf("unknown game RoomName = %q, want empty", got)
	}
}
