package challengeview

import (
	"strings"

	"wagerhub/models"
)

// Viewer is the identity of the user looking at a challenge. PlatformAliases
// maps lowercased platform names to the viewer's in-game alias on that
// platform, drawn from their own profile.
type Viewer struct {
	LoginUsername   string
	PlatformAliases map[string]string
}

// Outcome is the viewer-relative result of a challenge.
type Outcome int

const (
	OutcomeUndetermined Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "undetermined"
	}
}

// ResolveOutcome determines whether the viewer won, lost, or the outcome is
// undetermined. The winner field is free text recorded by verification: it
// may hold a participant's login username or their per-platform alias, so
// resolution walks several identity fields in a fixed order (first match
// wins):
//
//  1. not completed, or no winner recorded -> Undetermined
//  2. winner equals the viewer's login username -> Won
//  3. winner equals the viewer's alias for the challenge platform -> Won
//  4. viewer is the challenger and winner equals the legacy
//     challengerPlatformUsernames alias -> Won
//  5. viewer is a listed opponent and winner equals that opponent's
//     acceptedPlatformAliases alias -> Won
//  6. viewer is a recognized participant of a decided challenge and none of
//     the above matched -> Lost; a non-participant gets Undetermined
//
// All comparisons are case-insensitive and trimmed.
func ResolveOutcome(ch *models.Challenge, viewer Viewer) Outcome {
	if ch == nil || ch.Status != models.StatusCompleted {
		return OutcomeUndetermined
	}
	winnerToken := norm(ch.Winner)
	if winnerToken == "" {
		// A completed challenge should always carry a winner; treat the
		// malformed record as undecided rather than failing.
		return OutcomeUndetermined
	}

	viewerLogin := norm(viewer.LoginUsername)
	if viewerLogin != "" && winnerToken == viewerLogin {
		return OutcomeWon
	}

	platformKey := norm(ch.Platform)
	if alias, ok := viewer.PlatformAliases[platformKey]; ok && norm(alias) == winnerToken {
		return OutcomeWon
	}

	isChallenger := norm(ch.ChallengerUsername) == viewerLogin && viewerLogin != ""
	if isChallenger {
		if alias, ok := ch.ChallengerPlatformUsernames[platformKey]; ok && norm(alias) == winnerToken {
			return OutcomeWon
		}
	}

	var viewerOpponent *models.Opponent
	for i := range ch.Opponents {
		if norm(ch.Opponents[i].Username) == viewerLogin && viewerLogin != "" {
			viewerOpponent = &ch.Opponents[i]
			break
		}
	}
	if viewerOpponent != nil {
		if alias, ok := viewerOpponent.AcceptedPlatformAliases[platformKey]; ok && norm(alias) == winnerToken {
			return OutcomeWon
		}
	}

	// Only a recognized participant can lose; spectators viewing a decided
	// challenge are neither winners nor losers.
	if isChallenger || viewerOpponent != nil {
		return OutcomeLost
	}
	return OutcomeUndetermined
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
