package challengeview

import (
	"testing"

	"wagerhub/models"
)

func pendingChallenge() *models.Challenge {
	return &models.Challenge{
		ChallengerUsername: "alice",
		Platform:           "pc",
		Status:             models.StatusPending,
		Opponents: []models.Opponent{
			{Username: "bob", ResponseStatus: models.ResponsePending},
		},
	}
}

func TestActionsNeverEmpty(t *testing.T) {
	statuses := []string{
		models.StatusPending, models.StatusActive, models.StatusCompleted,
		models.StatusExpired, "some-future-status", "",
	}
	for _, status := range statuses {
		ch := pendingChallenge()
		ch.Status = status
		actions := PermittedActions(ch, Viewer{LoginUsername: "nobody"})
		if !actions.Has(ActionViewDetails) {
			t.Errorf("status %q: view-details missing", status)
		}
	}
	if actions := PermittedActions(nil, Viewer{}); !actions.Has(ActionViewDetails) {
		t.Error("nil challenge: view-details missing")
	}
}

func TestActionsPendingInvitedOpponent(t *testing.T) {
	ch := pendingChallenge()
	actions := PermittedActions(ch, Viewer{LoginUsername: "bob"})
	if !actions.Has(ActionAccept) || !actions.Has(ActionDecline) {
		t.Errorf("invited opponent: got %v, want accept+decline", actions.List())
	}
	if actions.Has(ActionSubmitScorecard) {
		t.Error("invited opponent offered submit-scorecard on a pending challenge")
	}
}

func TestActionsPendingChallenger(t *testing.T) {
	ch := pendingChallenge()
	actions := PermittedActions(ch, Viewer{LoginUsername: "alice"})
	if !actions.Has(ActionDelete) {
		t.Errorf("challenger: got %v, want delete", actions.List())
	}
	if actions.Has(ActionAccept) {
		t.Error("challenger offered accept on their own challenge")
	}
}

func TestActionsReadyPending(t *testing.T) {
	ch := pendingChallenge()
	ch.Status = models.StatusReadyPending
	ch.Opponents[0].ResponseStatus = models.ResponseAccepted

	actions := PermittedActions(ch, Viewer{LoginUsername: "bob"})
	if !actions.Has(ActionMarkReady) {
		t.Errorf("not yet ready: got %v, want mark-ready", actions.List())
	}

	ch.ReadyPlayers = []string{"bob"}
	actions = PermittedActions(ch, Viewer{LoginUsername: "bob"})
	if actions.Has(ActionMarkReady) {
		t.Error("already-ready player offered mark-ready again")
	}
}

func TestActionsActiveScorecard(t *testing.T) {
	ch := pendingChallenge()
	ch.Status = models.StatusActive
	ch.Opponents[0].ResponseStatus = models.ResponseAccepted

	for _, login := range []string{"alice", "bob"} {
		actions := PermittedActions(ch, Viewer{LoginUsername: login})
		if !actions.Has(ActionSubmitScorecard) {
			t.Errorf("%s: got %v, want submit-scorecard", login, actions.List())
		}
	}

	// A declined opponent cannot submit
	ch.Opponents[0].ResponseStatus = models.ResponseDeclined
	actions := PermittedActions(ch, Viewer{LoginUsername: "bob"})
	if actions.Has(ActionSubmitScorecard) {
		t.Error("declined opponent offered submit-scorecard")
	}
}

func TestActionsConflictProofUpload(t *testing.T) {
	for _, status := range []string{models.StatusScorecardConflict, models.StatusAIVerificationPending} {
		ch := pendingChallenge()
		ch.Status = status
		actions := PermittedActions(ch, Viewer{LoginUsername: "alice"})
		if !actions.Has(ActionUploadAIProof) {
			t.Errorf("%s: got %v, want upload-ai-proof", status, actions.List())
		}
		actions = PermittedActions(ch, Viewer{LoginUsername: "stranger"})
		if actions.Has(ActionUploadAIProof) {
			t.Errorf("%s: spectator offered upload-ai-proof", status)
		}
	}
}

func TestActionsCompletedWinnerClaims(t *testing.T) {
	ch := pendingChallenge()
	ch.Status = models.StatusCompleted
	ch.Winner = "ProGamer_X"
	ch.ChallengerUsername = "ProGamer_X"

	actions := PermittedActions(ch, Viewer{LoginUsername: "progamer_x"})
	if !actions.Has(ActionClaimReward) {
		t.Errorf("unclaimed winner: got %v, want claim-reward", actions.List())
	}

	ch.RewardClaimed = true
	actions = PermittedActions(ch, Viewer{LoginUsername: "progamer_x"})
	if actions.Has(ActionClaimReward) {
		t.Error("claimed winner offered claim-reward again")
	}
}

func TestActionsCompletedLoserDisputes(t *testing.T) {
	ch := pendingChallenge()
	ch.Status = models.StatusCompleted
	ch.Winner = "alice"

	actions := PermittedActions(ch, Viewer{LoginUsername: "bob"})
	if !actions.Has(ActionClaimDispute) {
		t.Errorf("loser: got %v, want claim-dispute", actions.List())
	}

	ch.Disputed = true
	actions = PermittedActions(ch, Viewer{LoginUsername: "bob"})
	if actions.Has(ActionClaimDispute) {
		t.Error("dispute already filed but claim-dispute still offered")
	}
	if len(actions) != 1 {
		t.Errorf("disputed challenge: got %v, want view-details only", actions.List())
	}
}

func TestActionsTerminalStatuses(t *testing.T) {
	for _, status := range []string{models.StatusDeclined, models.StatusCancelled, models.StatusExpired} {
		ch := pendingChallenge()
		ch.Status = status

		actions := PermittedActions(ch, Viewer{LoginUsername: "bob"})
		if len(actions) != 1 || !actions.Has(ActionViewDetails) {
			t.Errorf("%s opponent: got %v, want view-details only", status, actions.List())
		}

		actions = PermittedActions(ch, Viewer{LoginUsername: "alice"})
		if !actions.Has(ActionDelete) {
			t.Errorf("%s challenger: got %v, want delete", status, actions.List())
		}
	}
}

func TestStatusLabelUnknownPassesThrough(t *testing.T) {
	if got := StatusLabel("weird-new-status"); got != "weird-new-status" {
		t.Errorf("unknown status label: got %q", got)
	}
	if got := StatusLabel(models.StatusScorecardConflict); got != "Scorecards conflict" {
		t.Errorf("known status label: got %q", got)
	}
}
