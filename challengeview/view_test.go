package challengeview

import (
	"testing"

	"wagerhub/models"
)

func TestBuildView(t *testing.T) {
	now := Instant(1700000000000)
	ch := &models.Challenge{
		ChallengerUsername: "alice",
		Platform:           "pc",
		Status:             models.StatusActive,
		CreatedAt:          int64(now) - 2*86400*1000,
		Deadline:           int64(now) + 90*60*1000,
		Opponents: []models.Opponent{
			{Username: "bob", ResponseStatus: models.ResponseAccepted},
		},
	}

	v := BuildView(ch, Viewer{LoginUsername: "bob"}, now)
	if v.Status != models.StatusActive {
		t.Errorf("status: got %q", v.Status)
	}
	if v.CreatedAgo != "2 days ago" {
		t.Errorf("createdAgo: got %q", v.CreatedAgo)
	}
	if v.Remaining != "1h 30m" {
		t.Errorf("remaining: got %q", v.Remaining)
	}
	if v.Outcome != "undetermined" {
		t.Errorf("outcome: got %q", v.Outcome)
	}
	if len(v.Actions) == 0 {
		t.Error("actions empty")
	}
}

func TestBuildViewMalformedTimestamps(t *testing.T) {
	now := Instant(1700000000000)
	ch := &models.Challenge{
		ChallengerUsername: "alice",
		Status:             models.StatusPending,
		CreatedAt:          "garbage",
		Deadline:           "also garbage",
	}

	v := BuildView(ch, Viewer{LoginUsername: "alice"}, now)
	if v.CreatedAgo != InvalidDateLabel {
		t.Errorf("createdAgo fallback: got %q", v.CreatedAgo)
	}
	if v.Remaining != InvalidDeadlineLabel {
		t.Errorf("remaining fallback: got %q", v.Remaining)
	}

	ch.Deadline = nil
	v = BuildView(ch, Viewer{LoginUsername: "alice"}, now)
	if v.Remaining != NoDeadlineLabel {
		t.Errorf("no deadline fallback: got %q", v.Remaining)
	}
}
