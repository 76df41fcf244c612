package routes

import (
	"wagerhub/controllers"

	"github.com/gin-gonic/gin"
)

func GetProfileRouteHandler(ctx *gin.Context) {
	controllers.GetProfile(ctx)
}

func UpdateProfileRouteHandler(ctx *gin.Context) {
	controllers.UpdateProfile(ctx)
}

func LeaderboardRouteHandler(ctx *gin.Context) {
	controllers.Leaderboard(ctx)
}
