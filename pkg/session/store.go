// Package session holds the credentials a player is using for each game,
// scoped to the running process. Nothing here touches disk: losing the
// session on exit is the intended behavior.
package session

import (
	"strings"
	"sync"
)

// Credentials is the identity/secret pair a game was joined with.
type Credentials struct {
	Player   string
	Password string
}

// Store maps game ids to the credentials and room name used to join them,
// so a player navigating back into a game is not re-prompted.
type Store struct {
	mu    sync.RWMutex
	creds map[string]Credentials
	rooms map[string]string
}

func NewStore() *Store {
	return &Store{
		creds: make(map[string]Credentials),
		rooms: make(map[string]string),
	}
}

// SetCredentials remembers the credentials for a game. Blank players are
// ignored so a failed join cannot clobber a working session.
func (s *Store) SetCredentials(gameID string, c Credentials) {
	c.Player = strings.TrimSpace(c.Player)
	c.Password = strings.TrimSpace(c.Password)
	if gameID == "" || c.Player == "" {
		return
	}
	s.mu.Lock()
	s.creds[gameID] = c
	s.mu.Unlock()
}

// Credentials returns the stored credentials for a game, if any.
func (s *Store) Credentials(gameID string) (Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.creds[gameID]
	return c, ok
}

// ClearCredentials forgets a game's credentials. Called when the server
// rejects them, so the player is re-prompted instead of silently retried.
func (s *Store) ClearCredentials(gameID string) {
	s.mu.Lock()
	delete(s.creds, gameID)
	s.mu.Unlock()
}

// SetRoomName remembers the display name of a game's room.
func (s *Store) SetRoomName(gameID, name string) {
	if gameID == "" {
		return
	}
	s.mu.Lock()
	s.rooms[gameID] = name
	s.mu.Unlock()
}

// RoomName returns the remembered room name, or "" when unknown.
func (s *Store) RoomName(gameID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms[gameID]
}
