package services

import (
	"testing"
	"time"

	"wagerhub/models"
)

func testChallenge() *models.Challenge {
	return &models.Challenge{
		ChallengerUsername: "alice",
		Platform:           "xbox",
		Stake:              25,
		Status:             models.StatusActive,
		Opponents: []models.Opponent{
			{
				Username:                "bob",
				ResponseStatus:          models.ResponseAccepted,
				AcceptedPlatformAliases: map[string]string{"xbox": "BobTag"},
			},
		},
	}
}

func submit(ch *models.Challenge, username, claimedWinner string) {
	ch.Scorecards = append(ch.Scorecards, models.Scorecard{
		Username:      username,
		ClaimedWinner: claimedWinner,
		SubmittedAt:   time.Now(),
	})
}

func TestScorecardConsensusIncomplete(t *testing.T) {
	ch := testChallenge()
	submit(ch, "alice", "alice")

	_, complete, conflict := ScorecardConsensus(ch)
	if complete {
		t.Error("one of two scorecards should not be complete")
	}
	if conflict {
		t.Error("incomplete scorecards should not conflict")
	}
}

func TestScorecardConsensusAgreement(t *testing.T) {
	ch := testChallenge()
	submit(ch, "alice", "Alice")
	submit(ch, "bob", "alice")

	winner, complete, conflict := ScorecardConsensus(ch)
	if !complete {
		t.Error("both scorecards submitted but not complete")
	}
	if conflict {
		t.Error("matching claims reported as conflict")
	}
	if winner != "Alice" {
		t.Errorf("winner token: got %q, want first claim verbatim", winner)
	}
}

func TestScorecardConsensusConflict(t *testing.T) {
	ch := testChallenge()
	submit(ch, "alice", "alice")
	submit(ch, "bob", "bob")

	_, complete, conflict := ScorecardConsensus(ch)
	if !complete {
		t.Error("both scorecards submitted but not complete")
	}
	if !conflict {
		t.Error("disagreeing claims not reported as conflict")
	}
}

func TestMatchParticipant(t *testing.T) {
	ch := testChallenge()
	ch.ChallengerPlatformUsernames = map[string]string{"xbox": "AliceTag"}

	if got := MatchParticipant(ch, "alice"); got != "alice" {
		t.Errorf("login match: got %q", got)
	}
	if got := MatchParticipant(ch, "ALICETAG"); got != "alice" {
		t.Errorf("challenger alias match: got %q", got)
	}
	if got := MatchParticipant(ch, "bobtag"); got != "bob" {
		t.Errorf("opponent alias match: got %q", got)
	}
	if got := MatchParticipant(ch, "nobody"); got != "" {
		t.Errorf("unknown token: got %q, want empty", got)
	}
	if got := MatchParticipant(ch, ""); got != "" {
		t.Errorf("empty token: got %q, want empty", got)
	}
}

func TestWinnerPayout(t *testing.T) {
	// 95% of the 2x-stake pot
	if got := WinnerPayout(100); got != 190 {
		t.Errorf("payout for stake 100: got %v, want 190", got)
	}
	if got := WinnerPayout(25); got != 47.5 {
		t.Errorf("payout for stake 25: got %v, want 47.5", got)
	}
}

func TestVerificationVerdictParsing(t *testing.T) {
	verdict := "Reasoning about the match.\n\nalice\n"
	if got := lastLine(verdict); got != "alice" {
		t.Errorf("last line: got %q", got)
	}
	if got := lastLine("```\nbob\n```"); got != "```" {
		// Fenced output is cleaned before parsing; raw fences stay verbatim
		t.Errorf("fence handling changed: got %q", got)
	}
	if got := cleanModelOutput("```json\nbob\n```"); got != "bob" {
		t.Errorf("cleanModelOutput: got %q", got)
	}
}

func TestLowercaseKeys(t *testing.T) {
	got := lowercaseKeys(map[string]string{" Xbox ": " BobTag ", "PSN": "bob_psn"})
	if got["xbox"] != "BobTag" {
		t.Errorf("xbox alias: got %q, want %q", got["xbox"], "BobTag")
	}
	if got["psn"] != "bob_psn" {
		t.Errorf("psn alias: got %q, want %q", got["psn"], "bob_psn")
	}
	if _, ok := got[" Xbox "]; ok {
		t.Error("raw key survived normalization")
	}

	if lowercaseKeys(nil) != nil {
		t.Error("nil input: want nil so callers fall back to profile aliases")
	}
	if lowercaseKeys(map[string]string{}) != nil {
		t.Error("empty input: want nil so callers fall back to profile aliases")
	}
}
