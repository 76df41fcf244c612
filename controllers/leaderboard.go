package controllers

import (
	"wagerhub/db"
	"wagerhub/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const leaderboardLimit = 100

func Leaderboard(ctx *gin.Context) {
	currentUser := ctx.GetString("username")

	// wins first, net winnings break ties
	opts := options.Find().
		SetSort(bson.D{{Key: "wins", Value: -1}, {Key: "netWinnings", Value: -1}}).
		SetLimit(leaderboardLimit)
	cursor, err := db.GetCollection("users").Find(ctx, bson.M{}, opts)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to decode leaderboard"})
		return
	}

	entries := make([]gin.H, 0, len(users))
	for rank, user := range users {
		entries = append(entries, gin.H{
			"rank":        rank + 1,
			"username":    user.Username,
			"displayName": user.DisplayName,
			"wins":        user.Wins,
			"losses":      user.Losses,
			"netWinnings": user.NetWinnings,
			"currentUser": user.Username == currentUser,
		})
	}

	ctx.JSON(200, gin.H{"leaderboard": entries})
}
