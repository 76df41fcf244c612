package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"wagerhub/db"
	"wagerhub/internal/events"
	"wagerhub/models"
	"wagerhub/structs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDisputeResolved = errors.New("dispute already resolved")

// FileDispute opens a dispute on a completed challenge. Only participants can
// file, and only once per challenge.
func FileDispute(ctx context.Context, id primitive.ObjectID, user *models.User, req structs.FileDisputeRequest) (*models.Dispute, error) {
	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ch.IsParticipant(user.Username) {
		return nil, ErrNotParticipant
	}
	if ch.Status != models.StatusCompleted {
		return nil, ErrWrongStatus
	}

	// Guarded flag flip so concurrent filings open at most one dispute
	result, err := db.ChallengesCollection.UpdateOne(ctx,
		bson.M{"_id": ch.ID, "disputed": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"disputed": true, "disputeResolved": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return nil, err
	}
	if result.ModifiedCount == 0 {
		return nil, fmt.Errorf("challenge is already under dispute")
	}
	ch.Disputed = true

	dispute := models.Dispute{
		ID:          primitive.NewObjectID(),
		ChallengeID: ch.ID,
		FiledBy:     user.Username,
		Reason:      req.Reason,
		EvidenceURL: req.EvidenceURL,
		Status:      models.DisputePending,
		CreatedAt:   time.Now(),
	}
	if _, err := db.GetCollection("disputes").InsertOne(ctx, dispute); err != nil {
		if uerr := db.UpdateChallenge(ctx, ch.ID, bson.M{"disputed": false}); uerr != nil {
			log.Printf("Error releasing dispute flag on challenge %s: %v", ch.ID.Hex(), uerr)
		}
		return nil, fmt.Errorf("failed to file dispute: %w", err)
	}

	events.Publish(events.TypeChallengeDisputed, challengePayload(ch))
	return &dispute, nil
}

// ListDisputes returns disputes, newest first, optionally filtered by status.
func ListDisputes(ctx context.Context, status string) ([]models.Dispute, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(100)
	cursor, err := db.GetCollection("disputes").Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch disputes: %w", err)
	}
	defer cursor.Close(ctx)

	var disputes []models.Dispute
	if err := cursor.All(ctx, &disputes); err != nil {
		return nil, err
	}
	return disputes, nil
}

// ResolveDispute closes a pending dispute. Upholding keeps the recorded
// outcome. Overturning swaps winner and loser and reverses any money and
// stats already applied to the original winner.
func ResolveDispute(ctx context.Context, disputeID primitive.ObjectID, admin, resolution, notes string) (*models.Dispute, error) {
	disputes := db.GetCollection("disputes")

	var dispute models.Dispute
	if err := disputes.FindOne(ctx, bson.M{"_id": disputeID}).Decode(&dispute); err != nil {
		return nil, fmt.Errorf("dispute not found: %w", err)
	}
	if dispute.Status != models.DisputePending {
		return nil, ErrDisputeResolved
	}

	ch, err := db.FindChallengeByID(ctx, dispute.ChallengeID)
	if err != nil {
		return nil, err
	}

	if resolution == models.DisputeOverturned {
		if err := overturnOutcome(ctx, ch); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	_, err = disputes.UpdateOne(ctx, bson.M{"_id": disputeID}, bson.M{"$set": bson.M{
		"status":     resolution,
		"resolvedBy": admin,
		"resolution": notes,
		"resolvedAt": now,
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dispute: %w", err)
	}

	if err := db.UpdateChallenge(ctx, ch.ID, bson.M{"disputeResolved": true}); err != nil {
		return nil, err
	}

	dispute.Status = resolution
	dispute.ResolvedBy = admin
	dispute.Resolution = notes
	dispute.ResolvedAt = &now
	return &dispute, nil
}

// overturnOutcome swaps the recorded winner and loser on a completed
// challenge and reverses whatever the original result paid out.
func overturnOutcome(ctx context.Context, ch *models.Challenge) error {
	oldWinner := MatchParticipant(ch, ch.Winner)
	if oldWinner == "" {
		return fmt.Errorf("cannot overturn: recorded winner matches no participant")
	}
	newWinner := otherSide(ch, oldWinner)
	if newWinner == "" {
		return fmt.Errorf("cannot overturn: no opposing participant found")
	}

	payout := WinnerPayout(ch.Stake)

	if ch.RewardClaimed {
		if err := Debit(ctx, oldWinner, payout, models.TxReversal, ch.ID, "dispute overturned, payout reversed"); err != nil {
			return fmt.Errorf("failed to reverse payout: %w", err)
		}
		if err := Credit(ctx, newWinner, payout, models.TxPayout, ch.ID, "dispute overturned, payout reassigned"); err != nil {
			return fmt.Errorf("failed to reassign payout: %w", err)
		}
	}

	users := db.GetCollection("users")
	if _, err := users.UpdateOne(ctx, bson.M{"username": oldWinner}, bson.M{
		"$inc": bson.M{"wins": -1, "losses": 1, "netWinnings": -(payout - ch.Stake) - ch.Stake},
	}); err != nil {
		log.Printf("Error reversing stats for %s: %v", oldWinner, err)
	}
	if _, err := users.UpdateOne(ctx, bson.M{"username": newWinner}, bson.M{
		"$inc": bson.M{"wins": 1, "losses": -1, "netWinnings": (payout - ch.Stake) + ch.Stake},
	}); err != nil {
		log.Printf("Error reversing stats for %s: %v", newWinner, err)
	}

	return db.UpdateChallenge(ctx, ch.ID, bson.M{
		"winner": newWinner,
		"loser":  oldWinner,
	})
}
