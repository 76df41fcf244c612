package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"wagerhub/challengeview"
	"wagerhub/db"
	"wagerhub/internal/events"
	"wagerhub/models"
	"wagerhub/structs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotParticipant  = fmt.Errorf("not a participant of this challenge")
	ErrWrongStatus     = fmt.Errorf("challenge is not in the right status for this action")
	ErrAlreadyResolved = fmt.Errorf("challenge already resolved")
)

// CreateChallenge escrows the challenger's stake and inserts the record
func CreateChallenge(ctx context.Context, challenger *models.User, req structs.CreateChallengeRequest, defaultDeadlineHours int) (*models.Challenge, error) {
	if !req.IsPublic && len(req.Opponents) == 0 {
		return nil, fmt.Errorf("a private challenge needs at least one opponent")
	}
	for _, name := range req.Opponents {
		if strings.EqualFold(name, challenger.Username) {
			return nil, fmt.Errorf("you cannot challenge yourself")
		}
		if _, err := db.FindUserByUsername(ctx, name); err != nil {
			return nil, fmt.Errorf("unknown opponent: %s", name)
		}
	}

	deadlineHours := req.DeadlineHours
	if deadlineHours <= 0 {
		deadlineHours = defaultDeadlineHours
	}

	now := time.Now()
	ch := &models.Challenge{
		ID:                 primitive.NewObjectID(),
		ChallengerID:       challenger.ID,
		ChallengerUsername: challenger.Username,
		Game:               req.Game,
		Platform:           strings.ToLower(req.Platform),
		Stake:              req.Stake,
		IsPublic:           req.IsPublic,
		MaxOpponents:       req.MaxOpponents,
		Status:             models.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
		Deadline:           now.Add(time.Duration(deadlineHours) * time.Hour),
	}
	if ch.IsPublic && ch.MaxOpponents == 0 {
		ch.MaxOpponents = 1
	}
	for _, name := range req.Opponents {
		ch.Opponents = append(ch.Opponents, models.Opponent{
			Username:       name,
			ResponseStatus: models.ResponsePending,
		})
	}

	if err := Debit(ctx, challenger.Username, ch.Stake, models.TxEscrow, ch.ID, "stake escrow"); err != nil {
		return nil, err
	}

	if _, err := db.ChallengesCollection.InsertOne(ctx, ch); err != nil {
		// Give the stake back; the record never existed.
		if cerr := Credit(ctx, challenger.Username, ch.Stake, models.TxRefund, ch.ID, "escrow rollback"); cerr != nil {
			log.Printf("Error rolling back escrow for %s: %v", challenger.Username, cerr)
		}
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	events.Publish(events.TypeChallengeCreated, challengePayload(ch))
	return ch, nil
}

// AcceptChallenge escrows the opponent's stake and records their acceptance.
// When every invited opponent has responded and at least one accepted, the
// challenge moves to ready-pending.
func AcceptChallenge(ctx context.Context, id primitive.ObjectID, user *models.User, req structs.AcceptChallengeRequest) (*models.Challenge, error) {
	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch.Status != models.StatusPending {
		return nil, ErrWrongStatus
	}
	opp := ch.FindOpponent(user.Username)
	if opp == nil {
		return nil, ErrNotParticipant
	}
	if opp.ResponseStatus != models.ResponsePending {
		return nil, fmt.Errorf("you already responded to this challenge")
	}

	if err := Debit(ctx, user.Username, ch.Stake, models.TxEscrow, ch.ID, "stake escrow"); err != nil {
		return nil, err
	}

	opp.ResponseStatus = models.ResponseAccepted
	opp.AcceptedTeam = req.Team
	opp.AcceptedPlatformAliases = lowercaseKeys(req.PlatformAliases)
	if opp.AcceptedPlatformAliases == nil && user.PlatformAliases != nil {
		opp.AcceptedPlatformAliases = user.PlatformAliases
	}

	set := bson.M{"opponents": ch.Opponents}
	if allResponded(ch) {
		ch.Status = models.StatusReadyPending
		set["status"] = ch.Status
	}
	if err := db.UpdateChallenge(ctx, ch.ID, set); err != nil {
		return nil, err
	}

	events.Publish(events.TypeChallengeAccepted, challengePayload(ch))
	return ch, nil
}

// DeclineChallenge records a decline. If nobody is left to play, the
// challenge is declined outright and the challenger's escrow refunded.
func DeclineChallenge(ctx context.Context, id primitive.ObjectID, user *models.User) (*models.Challenge, error) {
	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch.Status != models.StatusPending {
		return nil, ErrWrongStatus
	}
	opp := ch.FindOpponent(user.Username)
	if opp == nil {
		return nil, ErrNotParticipant
	}
	if opp.ResponseStatus != models.ResponsePending {
		return nil, fmt.Errorf("you already responded to this challenge")
	}

	opp.ResponseStatus = models.ResponseDeclined

	set := bson.M{"opponents": ch.Opponents}
	if allResponded(ch) {
		if len(ch.AcceptedOpponents()) == 0 {
			ch.Status = models.StatusDeclined
			set["status"] = ch.Status
			if err := Credit(ctx, ch.ChallengerUsername, ch.Stake, models.TxRefund, ch.ID, "challenge declined"); err != nil {
				log.Printf("Error refunding declined challenge %s: %v", ch.ID.Hex(), err)
			}
		} else {
			ch.Status = models.StatusReadyPending
			set["status"] = ch.Status
		}
	}
	if err := db.UpdateChallenge(ctx, ch.ID, set); err != nil {
		return nil, err
	}

	events.Publish(events.TypeChallengeDeclined, challengePayload(ch))
	return ch, nil
}

// JoinPublicChallenge adds the caller as an accepted opponent of a public
// challenge, escrowing their stake. The last free slot moves the challenge
// to ready-pending.
func JoinPublicChallenge(ctx context.Context, id primitive.ObjectID, user *models.User, req structs.AcceptChallengeRequest) (*models.Challenge, error) {
	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ch.IsPublic {
		return nil, fmt.Errorf("challenge is not public")
	}
	if ch.Status != models.StatusPending {
		return nil, ErrWrongStatus
	}
	if ch.IsParticipant(user.Username) {
		return nil, fmt.Errorf("you already joined this challenge")
	}
	if ch.MaxOpponents > 0 && len(ch.AcceptedOpponents()) >= ch.MaxOpponents {
		return nil, fmt.Errorf("challenge is full")
	}

	if err := Debit(ctx, user.Username, ch.Stake, models.TxEscrow, ch.ID, "stake escrow"); err != nil {
		return nil, err
	}

	aliases := lowercaseKeys(req.PlatformAliases)
	if aliases == nil {
		aliases = user.PlatformAliases
	}
	ch.Opponents = append(ch.Opponents, models.Opponent{
		Username:                user.Username,
		ResponseStatus:          models.ResponseAccepted,
		AcceptedTeam:            req.Team,
		AcceptedPlatformAliases: aliases,
	})

	set := bson.M{"opponents": ch.Opponents}
	if ch.MaxOpponents > 0 && len(ch.AcceptedOpponents()) >= ch.MaxOpponents {
		ch.Status = models.StatusReadyPending
		set["status"] = ch.Status
	}
	if err := db.UpdateChallenge(ctx, ch.ID, set); err != nil {
		return nil, err
	}

	events.Publish(events.TypeChallengeAccepted, challengePayload(ch))
	return ch, nil
}

// CancelChallenge lets the challenger withdraw an unstarted challenge,
// refunding every escrowed stake.
func CancelChallenge(ctx context.Context, id primitive.ObjectID, user *models.User) (*models.Challenge, error) {
	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch.ChallengerUsername != user.Username {
		return nil, fmt.Errorf("only the challenger can cancel")
	}
	if ch.Status != models.StatusPending && ch.Status != models.StatusReadyPending {
		return nil, ErrWrongStatus
	}

	refundEscrows(ctx, ch, "challenge cancelled")
	ch.Status = models.StatusCancelled
	if err := db.UpdateChallenge(ctx, ch.ID, bson.M{"status": ch.Status}); err != nil {
		return nil, err
	}
	return ch, nil
}

// DeleteChallenge removes the record entirely. Only the challenger can
// delete, and only pending or terminal challenges; a pending delete refunds
// escrows first, the same as a cancel.
func DeleteChallenge(ctx context.Context, id primitive.ObjectID, user *models.User) error {
	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		return err
	}
	if ch.ChallengerUsername != user.Username {
		return fmt.Errorf("only the challenger can delete")
	}

	switch ch.Status {
	case models.StatusPending:
		refundEscrows(ctx, ch, "challenge deleted")
	case models.StatusDeclined, models.StatusCancelled, models.StatusExpired:
		// escrows already refunded when the challenge reached this status
	default:
		return ErrWrongStatus
	}

	if _, err := db.ChallengesCollection.DeleteOne(ctx, bson.M{"_id": ch.ID}); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	return nil
}

// MarkReady records the caller's readiness; when the challenger and every
// accepted opponent are ready, play begins.
func MarkReady(ctx context.Context, id primitive.ObjectID, user *models.User) (*models.Challenge, error) {
	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch.Status != models.StatusReadyPending {
		return nil, ErrWrongStatus
	}
	if !isAcceptedSide(ch, user.Username) {
		return nil, ErrNotParticipant
	}
	if ch.HasMarkedReady(user.Username) {
		return ch, nil
	}

	ch.ReadyPlayers = append(ch.ReadyPlayers, user.Username)

	set := bson.M{"readyPlayers": ch.ReadyPlayers}
	if everyoneReady(ch) {
		ch.Status = models.StatusActive
		ch.StartedAt = time.Now()
		set["status"] = ch.Status
		set["startedAt"] = ch.StartedAt
		events.Publish(events.TypeChallengeActivated, challengePayload(ch))
	}
	if err := db.UpdateChallenge(ctx, ch.ID, set); err != nil {
		return nil, err
	}
	return ch, nil
}

// SubmitScorecard records the caller's claimed result. When every accepted
// participant has submitted, agreement decides the challenge and
// disagreement flags a scorecard conflict for AI verification.
func SubmitScorecard(ctx context.Context, id primitive.ObjectID, user *models.User, req structs.SubmitScorecardRequest) (*models.Challenge, error) {
	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch.Status != models.StatusActive && ch.Status != models.StatusScorecardPending {
		return nil, ErrWrongStatus
	}
	if !isAcceptedSide(ch, user.Username) {
		return nil, ErrNotParticipant
	}
	if ch.ScorecardFrom(user.Username) != nil {
		return nil, fmt.Errorf("you already submitted a scorecard")
	}

	ch.Scorecards = append(ch.Scorecards, models.Scorecard{
		Username:      user.Username,
		ClaimedWinner: req.ClaimedWinner,
		Score:         req.Score,
		Notes:         req.Notes,
		SubmittedAt:   time.Now(),
	})

	winner, complete, conflict := ScorecardConsensus(ch)
	set := bson.M{"scorecards": ch.Scorecards}
	switch {
	case !complete:
		ch.Status = models.StatusScorecardPending
		set["status"] = ch.Status
	case conflict:
		ch.Status = models.StatusScorecardConflict
		set["status"] = ch.Status
	default:
		if err := db.UpdateChallenge(ctx, ch.ID, set); err != nil {
			return nil, err
		}
		return completeWithWinner(ctx, ch, winner, models.StatusAIVerified)
	}
	if err := db.UpdateChallenge(ctx, ch.ID, set); err != nil {
		return nil, err
	}
	return ch, nil
}

// UploadProof attaches verification evidence and hands the challenge to the
// AI verifier.
func UploadProof(ctx context.Context, id primitive.ObjectID, user *models.User, req structs.UploadProofRequest) (*models.Challenge, error) {
	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch.Status != models.StatusScorecardConflict && ch.Status != models.StatusAIVerificationPending {
		return nil, ErrWrongStatus
	}
	if !ch.IsParticipant(user.Username) {
		return nil, ErrNotParticipant
	}

	ch.Proofs = append(ch.Proofs, models.Proof{
		Username:    user.Username,
		URL:         req.URL,
		Description: req.Description,
		UploadedAt:  time.Now(),
	})
	ch.Status = models.StatusAIVerificationPending

	set := bson.M{"proofs": ch.Proofs, "status": ch.Status}
	if err := db.UpdateChallenge(ctx, ch.ID, set); err != nil {
		return nil, err
	}

	// Verification talks to the model; do not hold up the response for it.
	if allSidesUploadedProof(ch) {
		go func(challengeID primitive.ObjectID) {
			vctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if err := VerifyChallenge(vctx, challengeID); err != nil {
				log.Printf("AI verification failed for %s: %v", challengeID.Hex(), err)
			}
		}(ch.ID)
	}
	return ch, nil
}

// ClaimReward pays out the pot share to the winning viewer, once
func ClaimReward(ctx context.Context, id primitive.ObjectID, user *models.User) (*models.Challenge, error) {
	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch.Status != models.StatusCompleted {
		return nil, ErrWrongStatus
	}

	viewer := challengeview.Viewer{
		LoginUsername:   user.Username,
		PlatformAliases: user.PlatformAliases,
	}
	if challengeview.ResolveOutcome(ch, viewer) != challengeview.OutcomeWon {
		return nil, fmt.Errorf("only the winner can claim the reward")
	}

	// Guarded flag flip so concurrent claims pay out at most once, same
	// discipline as the balance-guarded debit in the wallet service.
	result, err := db.ChallengesCollection.UpdateOne(ctx,
		bson.M{"_id": ch.ID, "rewardClaimed": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"rewardClaimed": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return nil, err
	}
	if result.ModifiedCount == 0 {
		return nil, fmt.Errorf("reward already claimed")
	}
	ch.RewardClaimed = true

	if err := Credit(ctx, user.Username, WinnerPayout(ch.Stake), models.TxPayout, ch.ID, "challenge payout"); err != nil {
		if uerr := db.UpdateChallenge(ctx, ch.ID, bson.M{"rewardClaimed": false}); uerr != nil {
			log.Printf("Error releasing claim on challenge %s: %v", ch.ID.Hex(), uerr)
		}
		return nil, err
	}
	return ch, nil
}

// ScorecardConsensus inspects the submitted scorecards. complete reports
// whether every accepted participant has submitted; when complete, winner is
// the agreed-upon token and conflict reports disagreement.
func ScorecardConsensus(ch *models.Challenge) (winner string, complete bool, conflict bool) {
	participants := []string{ch.ChallengerUsername}
	for _, o := range ch.AcceptedOpponents() {
		participants = append(participants, o.Username)
	}

	var claims []string
	for _, p := range participants {
		sc := ch.ScorecardFrom(p)
		if sc == nil {
			return "", false, false
		}
		claims = append(claims, sc.ClaimedWinner)
	}

	first := strings.ToLower(strings.TrimSpace(claims[0]))
	for _, claim := range claims[1:] {
		if strings.ToLower(strings.TrimSpace(claim)) != first {
			return "", true, true
		}
	}
	return claims[0], true, false
}

// MatchParticipant resolves a free-text winner token (login username or
// platform alias) to the login username of a participant, or "" when nothing
// matches.
func MatchParticipant(ch *models.Challenge, token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return ""
	}
	platform := strings.ToLower(ch.Platform)

	if strings.EqualFold(ch.ChallengerUsername, token) {
		return ch.ChallengerUsername
	}
	if alias, ok := ch.ChallengerPlatformUsernames[platform]; ok && strings.ToLower(strings.TrimSpace(alias)) == t {
		return ch.ChallengerUsername
	}
	for _, o := range ch.Opponents {
		if strings.EqualFold(o.Username, token) {
			return o.Username
		}
		if alias, ok := o.AcceptedPlatformAliases[platform]; ok && strings.ToLower(strings.TrimSpace(alias)) == t {
			return o.Username
		}
	}
	return ""
}

// completeWithWinner records the decided outcome: status passes through
// resolvedStatus (ai-verified) and lands on completed with winner and loser
// set. The pot is paid out when the winner claims it.
func completeWithWinner(ctx context.Context, ch *models.Challenge, winnerToken, resolvedStatus string) (*models.Challenge, error) {
	winnerUsername := MatchParticipant(ch, winnerToken)
	if winnerUsername == "" {
		// The agreed token does not identify a participant; a human or the
		// AI verifier has to sort it out.
		ch.Status = models.StatusAIConflict
		if err := db.UpdateChallenge(ctx, ch.ID, bson.M{"status": ch.Status}); err != nil {
			return nil, err
		}
		return ch, nil
	}

	if err := db.UpdateChallenge(ctx, ch.ID, bson.M{"status": resolvedStatus}); err != nil {
		return nil, err
	}

	ch.Status = models.StatusCompleted
	ch.Winner = winnerToken
	ch.Loser = otherSide(ch, winnerUsername)
	ch.CompletedAt = time.Now()
	set := bson.M{
		"status":      ch.Status,
		"winner":      ch.Winner,
		"loser":       ch.Loser,
		"completedAt": ch.CompletedAt,
	}
	if err := db.UpdateChallenge(ctx, ch.ID, set); err != nil {
		return nil, err
	}

	recordResult(ctx, ch, winnerUsername)
	events.Publish(events.TypeChallengeCompleted, challengePayload(ch))
	return ch, nil
}

// ExpireOverdueChallenges sweeps unresolved challenges whose deadline has
// passed, refunding every escrowed stake. Deadlines are read through the
// tolerant normalizer because legacy records carry mixed timestamp shapes.
func ExpireOverdueChallenges(ctx context.Context) error {
	unresolved := []string{
		models.StatusPending, models.StatusReadyPending, models.StatusActive,
		models.StatusScorecardPending, models.StatusScorecardConflict,
		models.StatusAIVerificationPending, models.StatusAIConflict,
	}
	cursor, err := db.ChallengesCollection.Find(ctx, bson.M{
		"status":   bson.M{"$in": unresolved},
		"deadline": bson.M{"$ne": nil},
	})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var challenges []models.Challenge
	if err := cursor.All(ctx, &challenges); err != nil {
		return err
	}

	now := challengeview.Instant(time.Now().UnixMilli())
	for i := range challenges {
		ch := &challenges[i]
		deadline, ok := challengeview.NormalizeTimestamp(ch.Deadline)
		if !ok || deadline > now {
			continue
		}
		refundEscrows(ctx, ch, "challenge expired")
		ch.Status = models.StatusExpired
		if err := db.UpdateChallenge(ctx, ch.ID, bson.M{"status": ch.Status}); err != nil {
			log.Printf("Error expiring challenge %s: %v", ch.ID.Hex(), err)
			continue
		}
		events.Publish(events.TypeChallengeExpired, challengePayload(ch))
	}
	return nil
}

func challengePayload(ch *models.Challenge) events.ChallengePayload {
	return events.ChallengePayload{
		ChallengeID: ch.ID.Hex(),
		Status:      ch.Status,
		Challenger:  ch.ChallengerUsername,
		Game:        ch.Game,
		Platform:    ch.Platform,
		Stake:       ch.Stake,
		IsPublic:    ch.IsPublic,
		Winner:      ch.Winner,
	}
}

func allResponded(ch *models.Challenge) bool {
	for _, o := range ch.Opponents {
		if o.ResponseStatus == models.ResponsePending {
			return false
		}
	}
	return len(ch.AcceptedOpponents()) > 0
}

func isAcceptedSide(ch *models.Challenge, username string) bool {
	if ch.ChallengerUsername == username {
		return true
	}
	opp := ch.FindOpponent(username)
	return opp != nil && opp.ResponseStatus == models.ResponseAccepted
}

func everyoneReady(ch *models.Challenge) bool {
	if !ch.HasMarkedReady(ch.ChallengerUsername) {
		return false
	}
	for _, o := range ch.AcceptedOpponents() {
		if !ch.HasMarkedReady(o.Username) {
			return false
		}
	}
	return true
}

func allSidesUploadedProof(ch *models.Challenge) bool {
	has := func(username string) bool {
		for _, p := range ch.Proofs {
			if p.Username == username {
				return true
			}
		}
		return false
	}
	if !has(ch.ChallengerUsername) {
		return false
	}
	for _, o := range ch.AcceptedOpponents() {
		if !has(o.Username) {
			return false
		}
	}
	return true
}

func otherSide(ch *models.Challenge, winnerUsername string) string {
	if ch.ChallengerUsername != winnerUsername {
		return ch.ChallengerUsername
	}
	accepted := ch.AcceptedOpponents()
	if len(accepted) > 0 {
		return accepted[0].Username
	}
	return ""
}

// lowercaseKeys normalizes platform names the same way the profile update
// does, so alias lookups are case and whitespace insensitive.
func lowercaseKeys(aliases map[string]string) map[string]string {
	if len(aliases) == 0 {
		return nil
	}
	out := make(map[string]string, len(aliases))
	for platform, alias := range aliases {
		out[strings.ToLower(strings.TrimSpace(platform))] = strings.TrimSpace(alias)
	}
	return out
}

func refundEscrows(ctx context.Context, ch *models.Challenge, note string) {
	if err := Credit(ctx, ch.ChallengerUsername, ch.Stake, models.TxRefund, ch.ID, note); err != nil {
		log.Printf("Error refunding %s for challenge %s: %v", ch.ChallengerUsername, ch.ID.Hex(), err)
	}
	for _, o := range ch.AcceptedOpponents() {
		if err := Credit(ctx, o.Username, ch.Stake, models.TxRefund, ch.ID, note); err != nil {
			log.Printf("Error refunding %s for challenge %s: %v", o.Username, ch.ID.Hex(), err)
		}
	}
}

// recordResult updates the win/loss tallies used by the leaderboard
func recordResult(ctx context.Context, ch *models.Challenge, winnerUsername string) {
	users := db.GetCollection("users")
	payout := WinnerPayout(ch.Stake)

	_, err := users.UpdateOne(ctx, bson.M{"username": winnerUsername}, bson.M{
		"$inc": bson.M{"wins": 1, "netWinnings": payout - ch.Stake},
	})
	if err != nil {
		log.Printf("Error recording win for %s: %v", winnerUsername, err)
	}

	loser := otherSide(ch, winnerUsername)
	if loser == "" {
		return
	}
	_, err = users.UpdateOne(ctx, bson.M{"username": loser}, bson.M{
		"$inc": bson.M{"losses": 1, "netWinnings": -ch.Stake},
	})
	if err != nil {
		log.Printf("Error recording loss for %s: %v", loser, err)
	}
}
