package services

import (
	"sync"
	"time"

	"wagerhub/internal/presence"
)

// LobbyEntry represents a user visible in the lobby
type LobbyEntry struct {
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	JoinedAt     time.Time `json:"joinedAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// LobbyService tracks which users are currently in the lobby on this
// instance, mirroring heartbeats into Redis so other instances see them too
type LobbyService struct {
	pool  map[string]*LobbyEntry
	mutex sync.RWMutex
}

var (
	lobbyService *LobbyService
	lobbyOnce    sync.Once
)

// GetLobbyService returns the singleton lobby service
func GetLobbyService() *LobbyService {
	lobbyOnce.Do(func() {
		lobbyService = &LobbyService{
			pool: make(map[string]*LobbyEntry),
		}
		go lobbyService.cleanupInactiveUsers()
	})
	return lobbyService
}

// Join adds a user to the lobby
func (ls *LobbyService) Join(username, displayName, avatarURL string) {
	ls.mutex.Lock()
	defer ls.mutex.Unlock()

	ls.pool[username] = &LobbyEntry{
		Username:     username,
		DisplayName:  displayName,
		AvatarURL:    avatarURL,
		JoinedAt:     time.Now(),
		LastActivity: time.Now(),
	}
	presence.Heartbeat(username)
}

// Leave removes a user from the lobby
func (ls *LobbyService) Leave(username string) {
	ls.mutex.Lock()
	defer ls.mutex.Unlock()

	delete(ls.pool, username)
	presence.Offline(username)
}

// Touch updates the last activity time and refreshes the presence heartbeat
func (ls *LobbyService) Touch(username string) {
	ls.mutex.Lock()
	defer ls.mutex.Unlock()

	if entry, exists := ls.pool[username]; exists {
		entry.LastActivity = time.Now()
		presence.Heartbeat(username)
	}
}

// Snapshot returns a copy of the current lobby pool
func (ls *LobbyService) Snapshot() []LobbyEntry {
	ls.mutex.RLock()
	defer ls.mutex.RUnlock()

	entries := make([]LobbyEntry, 0, len(ls.pool))
	for _, entry := range ls.pool {
		entries = append(entries, *entry)
	}
	return entries
}

// cleanupInactiveUsers drops lobby entries that stopped heartbeating
func (ls *LobbyService) cleanupInactiveUsers() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-2 * time.Minute)

		ls.mutex.Lock()
		for username, entry := range ls.pool {
			if entry.LastActivity.Before(cutoff) {
				delete(ls.pool, username)
				presence.Offline(username)
			}
		}
		ls.mutex.Unlock()
	}
}
