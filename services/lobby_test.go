package services

import (
	"testing"
)

func TestLobbyService(t *testing.T) {
	// Get the singleton service
	ls := GetLobbyService()

	// Test joining the lobby
	ls.Join("alice", "Alice Johnson", "")
	ls.Join("bob", "Bob Smith", "")

	pool := ls.Snapshot()
	if len(pool) != 2 {
		t.Errorf("Expected 2 users in lobby, got %d", len(pool))
	}

	// Test leaving the lobby
	ls.Leave("alice")
	pool = ls.Snapshot()
	if len(pool) != 1 {
		t.Errorf("Expected 1 user in lobby after leave, got %d", len(pool))
	}
	if pool[0].Username != "bob" {
		t.Errorf("Expected bob to remain in lobby, got %s", pool[0].Username)
	}

	// Test Touch keeps the entry alive
	ls.Touch("bob")
	pool = ls.Snapshot()
	if len(pool) != 1 {
		t.Errorf("Expected 1 user in lobby after touch, got %d", len(pool))
	}

	ls.Leave("bob")
}

func TestLobbyRejoinReplacesEntry(t *testing.T) {
	ls := GetLobbyService()

	ls.Join("carol", "Carol Davis", "")
	ls.Join("carol", "Carol D.", "")

	pool := ls.Snapshot()
	count := 0
	for _, entry := range pool {
		if entry.Username == "carol" {
			count++
			if entry.DisplayName != "Carol D." {
				t.Errorf("Expected rejoin to refresh display name, got %s", entry.DisplayName)
			}
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 entry for carol, got %d", count)
	}

	ls.Leave("carol")
}
