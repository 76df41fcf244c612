package controllers

import (
	"errors"

	"wagerhub/services"
	"wagerhub/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func FileDispute(ctx *gin.Context) {
	user := requireUser(ctx)
	if user == nil {
		return
	}

	id, ok := parseChallengeID(ctx)
	if !ok {
		return
	}

	var request structs.FileDisputeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dispute, err := services.FileDispute(ctx, id, user, request)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(201, gin.H{"message": "Dispute filed", "dispute": dispute})
}

// ListDisputes is the admin view of pending and resolved disputes.
func ListDisputes(ctx *gin.Context) {
	disputes, err := services.ListDisputes(ctx, ctx.Query("status"))
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to fetch disputes"})
		return
	}

	ctx.JSON(200, gin.H{"disputes": disputes})
}

func ResolveDispute(ctx *gin.Context) {
	admin := ctx.GetString("adminName")
	if admin == "" {
		admin = ctx.GetString("adminEmail")
	}

	disputeID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid dispute id"})
		return
	}

	var request structs.ResolveDisputeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": "Resolution must be upheld or overturned"})
		return
	}

	dispute, err := services.ResolveDispute(ctx, disputeID, admin, request.Resolution, request.Notes)
	if err != nil {
		if errors.Is(err, services.ErrDisputeResolved) {
			ctx.JSON(409, gin.H{"error": "Dispute is already resolved"})
			return
		}
		ctx.JSON(500, gin.H{"error": "Failed to resolve dispute", "message": err.Error()})
		return
	}

	ctx.JSON(200, gin.H{"message": "Dispute resolved", "dispute": dispute})
}
