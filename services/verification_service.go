package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"wagerhub/db"
	"wagerhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const undecidedVerdict = "UNDECIDED"

// VerifyChallenge asks the model to adjudicate a scorecard conflict from the
// submitted claims and proofs. A verdict naming a participant completes the
// challenge; anything else lands on ai-conflict for human review.
func VerifyChallenge(ctx context.Context, id primitive.ObjectID) error {
	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		return err
	}
	if ch.Status != models.StatusAIVerificationPending {
		return ErrWrongStatus
	}

	verdict, err := generateModelText(ctx, defaultGeminiModel, buildVerificationPrompt(ch))
	if err != nil {
		return fmt.Errorf("model call failed: %w", err)
	}

	winnerToken := lastLine(verdict)
	if strings.EqualFold(winnerToken, undecidedVerdict) || MatchParticipant(ch, winnerToken) == "" {
		log.Printf("AI verification undecided for challenge %s (verdict %q)", ch.ID.Hex(), winnerToken)
		ch.Status = models.StatusAIConflict
		return db.UpdateChallenge(ctx, ch.ID, bson.M{"status": ch.Status})
	}

	_, err = completeWithWinner(ctx, ch, winnerToken, models.StatusAIVerified)
	return err
}

func buildVerificationPrompt(ch *models.Challenge) string {
	var sb strings.Builder
	sb.WriteString("You are adjudicating the result of a wagered video game match.\n")
	fmt.Fprintf(&sb, "Game: %s\nPlatform: %s\n\n", ch.Game, ch.Platform)

	sb.WriteString("Participants:\n")
	fmt.Fprintf(&sb, "- %s (challenger)\n", ch.ChallengerUsername)
	for _, o := range ch.AcceptedOpponents() {
		fmt.Fprintf(&sb, "- %s\n", o.Username)
	}

	sb.WriteString("\nSubmitted scorecards:\n")
	for _, sc := range ch.Scorecards {
		fmt.Fprintf(&sb, "- %s claims the winner is %q", sc.Username, sc.ClaimedWinner)
		if sc.Score != "" {
			fmt.Fprintf(&sb, " with score %q", sc.Score)
		}
		if sc.Notes != "" {
			fmt.Fprintf(&sb, " (notes: %s)", sc.Notes)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nUploaded proof:\n")
	for _, p := range ch.Proofs {
		fmt.Fprintf(&sb, "- from %s: %s", p.Username, p.URL)
		if p.Description != "" {
			fmt.Fprintf(&sb, " (%s)", p.Description)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nThe scorecards disagree. Weigh the proof descriptions and decide who won.\n")
	sb.WriteString("Respond with ONLY the winner's name on the last line, exactly as it appears ")
	sb.WriteString(fmt.Sprintf("in the participant list, or %s if the evidence is insufficient.\n", undecidedVerdict))
	return sb.String()
}

func lastLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
