package controllers

import (
	"errors"
	"time"

	"wagerhub/challengeview"
	"wagerhub/db"
	"wagerhub/models"
	"wagerhub/services"
	"wagerhub/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreateChallenge(ctx *gin.Context) {
	cfg := loadConfig(ctx)
	if cfg == nil {
		return
	}

	user := requireUser(ctx)
	if user == nil {
		return
	}

	var request structs.CreateChallengeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	ch, err := services.CreateChallenge(ctx, user, request, cfg.Challenges.DefaultDeadlineHours)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientFunds) {
			ctx.JSON(402, gin.H{"error": "Insufficient funds to stake this challenge"})
			return
		}
		ctx.JSON(400, gin.H{"error": "Failed to create challenge", "message": err.Error()})
		return
	}

	respondChallenge(ctx, 201, "Challenge created", ch, user)
}

// MyChallenges lists challenges the viewer issued.
func MyChallenges(ctx *gin.Context) {
	user := requireUser(ctx)
	if user == nil {
		return
	}
	listChallenges(ctx, user, bson.M{"challengerId": user.ID})
}

// ChallengesForMe lists challenges where the viewer is an invited opponent.
func ChallengesForMe(ctx *gin.Context) {
	user := requireUser(ctx)
	if user == nil {
		return
	}
	listChallenges(ctx, user, bson.M{"opponents.username": user.Username})
}

// PublicChallenges lists open public challenges anyone can join.
func PublicChallenges(ctx *gin.Context) {
	user := requireUser(ctx)
	if user == nil {
		return
	}
	listChallenges(ctx, user, bson.M{
		"isPublic": true,
		"status":   bson.M{"$in": []string{models.StatusPending, models.StatusReadyPending}},
	})
}

func GetChallenge(ctx *gin.Context) {
	user := requireUser(ctx)
	if user == nil {
		return
	}

	id, ok := parseChallengeID(ctx)
	if !ok {
		return
	}

	ch, err := db.FindChallengeByID(ctx, id)
	if err != nil {
		ctx.JSON(404, gin.H{"error": "Challenge not found"})
		return
	}

	respondChallenge(ctx, 200, "", ch, user)
}

func AcceptChallenge(ctx *gin.Context) {
	respondToChallenge(ctx, func(c *gin.Context, id primitive.ObjectID, user *models.User) (*models.Challenge, error) {
		var request structs.AcceptChallengeRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			request = structs.AcceptChallengeRequest{}
		}
		return services.AcceptChallenge(c, id, user, request)
	})
}

func DeclineChallenge(ctx *gin.Context) {
	respondToChallenge(ctx, func(c *gin.Context, id primitive.ObjectID, user *models.User) (*models.Challenge, error) {
		return services.DeclineChallenge(c, id, user)
	})
}

func JoinChallenge(ctx *gin.Context) {
	respondToChallenge(ctx, func(c *gin.Context, id primitive.ObjectID, user *models.User) (*models.Challenge, error) {
		var request structs.AcceptChallengeRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			request = structs.AcceptChallengeRequest{}
		}
		return services.JoinPublicChallenge(c, id, user, request)
	})
}

func CancelChallenge(ctx *gin.Context) {
	respondToChallenge(ctx, func(c *gin.Context, id primitive.ObjectID, user *models.User) (*models.Challenge, error) {
		return services.CancelChallenge(c, id, user)
	})
}

func MarkReady(ctx *gin.Context) {
	respondToChallenge(ctx, func(c *gin.Context, id primitive.ObjectID, user *models.User) (*models.Challenge, error) {
		return services.MarkReady(c, id, user)
	})
}

func SubmitScorecard(ctx *gin.Context) {
	user := requireUser(ctx)
	if user == nil {
		return
	}

	id, ok := parseChallengeID(ctx)
	if !ok {
		return
	}

	var request structs.SubmitScorecardRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	ch, err := services.SubmitScorecard(ctx, id, user, request)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondChallenge(ctx, 200, "Scorecard submitted", ch, user)
}

func UploadProof(ctx *gin.Context) {
	user := requireUser(ctx)
	if user == nil {
		return
	}

	id, ok := parseChallengeID(ctx)
	if !ok {
		return
	}

	var request structs.UploadProofRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	ch, err := services.UploadProof(ctx, id, user, request)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondChallenge(ctx, 200, "Proof uploaded", ch, user)
}

func DeleteChallenge(ctx *gin.Context) {
	user := requireUser(ctx)
	if user == nil {
		return
	}

	id, ok := parseChallengeID(ctx)
	if !ok {
		return
	}

	if err := services.DeleteChallenge(ctx, id, user); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{"message": "Challenge deleted"})
}

func ClaimReward(ctx *gin.Context) {
	respondToChallenge(ctx, func(c *gin.Context, id primitive.ObjectID, user *models.User) (*models.Challenge, error) {
		return services.ClaimReward(c, id, user)
	})
}

func listChallenges(ctx *gin.Context, user *models.User, filter bson.M) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(100)
	cursor, err := db.ChallengesCollection.Find(ctx, filter, opts)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to fetch challenges"})
		return
	}
	defer cursor.Close(ctx)

	var challenges []models.Challenge
	if err := cursor.All(ctx, &challenges); err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to decode challenges"})
		return
	}

	// one clock reading for the whole listing
	now := nowInstant()
	rows := make([]gin.H, 0, len(challenges))
	for i := range challenges {
		rows = append(rows, decorate(&challenges[i], user, now))
	}

	ctx.JSON(200, gin.H{"challenges": rows})
}

func decorate(ch *models.Challenge, user *models.User, now challengeview.Instant) gin.H {
	viewer := challengeview.Viewer{
		LoginUsername:   user.Username,
		PlatformAliases: user.PlatformAliases,
	}
	view := challengeview.BuildView(ch, viewer, now)
	return gin.H{
		"challenge": ch,
		"view":      view,
	}
}

func respondToChallenge(ctx *gin.Context, op func(*gin.Context, primitive.ObjectID, *models.User) (*models.Challenge, error)) {
	user := requireUser(ctx)
	if user == nil {
		return
	}

	id, ok := parseChallengeID(ctx)
	if !ok {
		return
	}

	ch, err := op(ctx, id, user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondChallenge(ctx, 200, "OK", ch, user)
}

func respondChallenge(ctx *gin.Context, code int, message string, ch *models.Challenge, user *models.User) {
	body := decorate(ch, user, nowInstant())
	if message != "" {
		body["message"] = message
	}
	ctx.JSON(code, body)
}

func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotParticipant):
		ctx.JSON(403, gin.H{"error": "You are not part of this challenge"})
	case errors.Is(err, services.ErrWrongStatus):
		ctx.JSON(409, gin.H{"error": "Challenge is not in the right state for that"})
	case errors.Is(err, services.ErrAlreadyResolved):
		ctx.JSON(409, gin.H{"error": "Challenge is already resolved"})
	case errors.Is(err, services.ErrInsufficientFunds):
		ctx.JSON(402, gin.H{"error": "Insufficient funds"})
	default:
		ctx.JSON(500, gin.H{"error": "Operation failed", "message": err.Error()})
	}
}

func parseChallengeID(ctx *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid challenge id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func requireUser(ctx *gin.Context) *models.User {
	username := ctx.GetString("username")
	user, err := db.FindUserByUsername(ctx, username)
	if err != nil {
		ctx.JSON(404, gin.H{"error": "User not found"})
		return nil
	}
	return user
}

func nowInstant() challengeview.Instant {
	return challengeview.Instant(time.Now().UnixMilli())
}
