package challengeview

import (
	"testing"

	"wagerhub/models"
)

func completedChallenge(winner string) *models.Challenge {
	return &models.Challenge{
		ChallengerUsername: "ProGamer_X",
		Platform:           "xbox",
		Status:             models.StatusCompleted,
		Winner:             winner,
		Opponents: []models.Opponent{
			{Username: "real_name", ResponseStatus: models.ResponseAccepted},
		},
	}
}

func TestResolveOutcomeUndeterminedWhileUnresolved(t *testing.T) {
	viewer := Viewer{LoginUsername: "ProGamer_X"}
	statuses := []string{
		models.StatusPending, models.StatusReadyPending, models.StatusActive,
		models.StatusScorecardPending, models.StatusScorecardConflict,
		models.StatusAIVerificationPending, models.StatusAIConflict,
		models.StatusDeclined, models.StatusCancelled, models.StatusExpired,
	}
	for _, status := range statuses {
		ch := completedChallenge("ProGamer_X")
		ch.Status = status
		if got := ResolveOutcome(ch, viewer); got != OutcomeUndetermined {
			t.Errorf("status %s: got %v, want undetermined", status, got)
		}
	}

	// Completed but no winner recorded: defensive, not a crash
	ch := completedChallenge("")
	if got := ResolveOutcome(ch, viewer); got != OutcomeUndetermined {
		t.Errorf("completed without winner: got %v", got)
	}
}

func TestResolveOutcomeLoginMatch(t *testing.T) {
	// Case-insensitive login match, alias fields absent
	ch := completedChallenge("ProGamer_X")
	viewer := Viewer{LoginUsername: "progamer_x"}
	if got := ResolveOutcome(ch, viewer); got != OutcomeWon {
		t.Errorf("login match: got %v, want won", got)
	}

	// Trimmed comparison
	ch.Winner = "  progamer_x  "
	if got := ResolveOutcome(ch, viewer); got != OutcomeWon {
		t.Errorf("trimmed login match: got %v, want won", got)
	}
}

func TestResolveOutcomeAliasMatch(t *testing.T) {
	// Winner is recorded as a platform alias, not the login username
	ch := completedChallenge("shadow99")
	viewer := Viewer{
		LoginUsername:   "real_name",
		PlatformAliases: map[string]string{"xbox": "Shadow99"},
	}
	if got := ResolveOutcome(ch, viewer); got != OutcomeWon {
		t.Errorf("profile alias match: got %v, want won", got)
	}
}

func TestResolveOutcomeLegacyChallengerAlias(t *testing.T) {
	ch := completedChallenge("oldtag")
	ch.ChallengerPlatformUsernames = map[string]string{"xbox": "OldTag"}
	viewer := Viewer{LoginUsername: "progamer_x"}
	if got := ResolveOutcome(ch, viewer); got != OutcomeWon {
		t.Errorf("legacy challenger alias: got %v, want won", got)
	}
}

func TestResolveOutcomeAcceptedOpponentAlias(t *testing.T) {
	ch := completedChallenge("ghost77")
	ch.Opponents[0].AcceptedPlatformAliases = map[string]string{"xbox": "Ghost77"}
	viewer := Viewer{LoginUsername: "real_name"}
	if got := ResolveOutcome(ch, viewer); got != OutcomeWon {
		t.Errorf("opponent accepted alias: got %v, want won", got)
	}
}

func TestResolveOutcomeParticipantLoses(t *testing.T) {
	ch := completedChallenge("ProGamer_X")
	viewer := Viewer{LoginUsername: "real_name"}
	if got := ResolveOutcome(ch, viewer); got != OutcomeLost {
		t.Errorf("losing participant: got %v, want lost", got)
	}
}

func TestResolveOutcomeSpectatorIsNotALoser(t *testing.T) {
	// A non-participant viewing a decided challenge is undetermined, never lost
	ch := completedChallenge("ProGamer_X")
	viewer := Viewer{LoginUsername: "bystander"}
	if got := ResolveOutcome(ch, viewer); got != OutcomeUndetermined {
		t.Errorf("spectator: got %v, want undetermined", got)
	}
}
