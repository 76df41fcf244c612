package challengeview

import (
	"sort"

	"wagerhub/models"
)

// Action is something the viewer is permitted to do with a challenge.
type Action string

const (
	ActionViewDetails     Action = "view-details"
	ActionAccept          Action = "accept"
	ActionDecline         Action = "decline"
	ActionMarkReady       Action = "mark-ready"
	ActionSubmitScorecard Action = "submit-scorecard"
	ActionUploadAIProof   Action = "upload-ai-proof"
	ActionClaimReward     Action = "claim-reward"
	ActionClaimDispute    Action = "claim-dispute"
	ActionDelete          Action = "delete"
)

// ActionSet is the set of permitted actions for one viewer and challenge.
type ActionSet map[Action]bool

func (s ActionSet) Has(a Action) bool {
	return s[a]
}

// List returns the actions in a stable order for JSON responses.
func (s ActionSet) List() []Action {
	out := make([]Action, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PermittedActions derives the actions the viewer may take on a challenge in
// its current status. The derivation is pure: it triggers nothing, it only
// reports what the UI should offer. Unrecognized statuses (a newer server may
// add some) degrade to view-details only; the set is never empty.
func PermittedActions(ch *models.Challenge, viewer Viewer) ActionSet {
	actions := ActionSet{ActionViewDetails: true}
	if ch == nil {
		return actions
	}

	login := norm(viewer.LoginUsername)
	isChallenger := login != "" && norm(ch.ChallengerUsername) == login

	var viewerOpponent *models.Opponent
	for i := range ch.Opponents {
		if login != "" && norm(ch.Opponents[i].Username) == login {
			viewerOpponent = &ch.Opponents[i]
			break
		}
	}
	isParticipant := isChallenger || viewerOpponent != nil
	isAcceptedSide := isChallenger ||
		(viewerOpponent != nil && viewerOpponent.ResponseStatus == models.ResponseAccepted)

	switch ch.Status {
	case models.StatusPending:
		if viewerOpponent != nil && viewerOpponent.ResponseStatus == models.ResponsePending {
			actions[ActionAccept] = true
			actions[ActionDecline] = true
		}
		if isChallenger {
			actions[ActionDelete] = true
		}

	case models.StatusReadyPending:
		if isAcceptedSide && !ch.HasMarkedReady(viewer.LoginUsername) {
			actions[ActionMarkReady] = true
		}

	case models.StatusActive, models.StatusScorecardPending:
		if isAcceptedSide {
			actions[ActionSubmitScorecard] = true
		}

	case models.StatusScorecardConflict, models.StatusAIVerificationPending:
		if isParticipant {
			actions[ActionUploadAIProof] = true
		}

	case models.StatusCompleted:
		if ch.Disputed {
			break
		}
		switch ResolveOutcome(ch, viewer) {
		case OutcomeWon:
			if !ch.RewardClaimed {
				actions[ActionClaimReward] = true
			}
		case OutcomeLost:
			if !ch.DisputeResolved {
				actions[ActionClaimDispute] = true
			}
		}

	case models.StatusDeclined, models.StatusCancelled, models.StatusExpired:
		if isChallenger {
			actions[ActionDelete] = true
		}
	}

	return actions
}

// StatusLabel maps a lifecycle status to its display label. Unknown statuses
// are shown verbatim so a newer server cannot break the listing.
func StatusLabel(status string) string {
	switch status {
	case models.StatusPending:
		return "Awaiting response"
	case models.StatusReadyPending:
		return "Waiting for players"
	case models.StatusActive:
		return "In progress"
	case models.StatusProofSubmitted:
		return "Proof submitted"
	case models.StatusVerifying:
		return "Verifying"
	case models.StatusScorecardPending:
		return "Awaiting scorecards"
	case models.StatusScorecardConflict:
		return "Scorecards conflict"
	case models.StatusAIVerificationPending:
		return "AI verification in progress"
	case models.StatusAIConflict:
		return "AI could not decide"
	case models.StatusAIVerified:
		return "AI verified"
	case models.StatusCompleted:
		return "Completed"
	case models.StatusDeclined:
		return "Declined"
	case models.StatusCancelled:
		return "Cancelled"
	case models.StatusExpired:
		return "Expired"
	default:
		return status
	}
}
