package controllers

import (
	"wagerhub/internal/presence"
	"wagerhub/services"

	"github.com/gin-gonic/gin"
)

// OnlinePlayers combines the in-process lobby roster with redis presence so
// players connected through other instances still show up.
func OnlinePlayers(ctx *gin.Context) {
	entries := services.GetLobbyService().Snapshot()

	seen := make(map[string]bool, len(entries))
	players := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		seen[entry.Username] = true
		players = append(players, gin.H{
			"username":    entry.Username,
			"displayName": entry.DisplayName,
			"avatarUrl":   entry.AvatarURL,
			"joinedAt":    entry.JoinedAt,
		})
	}

	online, err := presence.Online()
	if err == nil {
		for _, username := range online {
			if !seen[username] {
				players = append(players, gin.H{"username": username})
			}
		}
	}

	ctx.JSON(200, gin.H{"players": players, "count": len(players)})
}
