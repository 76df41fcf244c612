package controllers

import (
	"strings"
	"time"

	"wagerhub/db"
	"wagerhub/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func GetProfile(ctx *gin.Context) {
	username := ctx.Param("username")
	if username == "" {
		username = ctx.GetString("username")
	}

	user, err := db.FindUserByUsername(ctx, username)
	if err != nil {
		ctx.JSON(404, gin.H{"error": "User not found"})
		return
	}

	ctx.JSON(200, gin.H{
		"username":        user.Username,
		"displayName":     user.DisplayName,
		"bio":             user.Bio,
		"avatarUrl":       user.AvatarURL,
		"platformAliases": user.PlatformAliases,
		"wins":            user.Wins,
		"losses":          user.Losses,
		"netWinnings":     user.NetWinnings,
		"createdAt":       user.CreatedAt,
	})
}

func UpdateProfile(ctx *gin.Context) {
	username := ctx.GetString("username")

	var request structs.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	update := bson.M{"lastActivity": time.Now()}
	if request.DisplayName != "" {
		update["displayName"] = request.DisplayName
	}
	if request.Bio != "" {
		update["bio"] = request.Bio
	}
	if request.AvatarURL != "" {
		update["avatarUrl"] = request.AvatarURL
	}
	if request.PlatformAliases != nil {
		aliases := make(map[string]string, len(request.PlatformAliases))
		for platform, alias := range request.PlatformAliases {
			aliases[strings.ToLower(strings.TrimSpace(platform))] = strings.TrimSpace(alias)
		}
		update["platformAliases"] = aliases
	}

	result, err := db.GetCollection("users").UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": update},
	)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to update profile"})
		return
	}
	if result.MatchedCount == 0 {
		ctx.JSON(404, gin.H{"error": "User not found"})
		return
	}

	ctx.JSON(200, gin.H{"message": "Profile updated"})
}
