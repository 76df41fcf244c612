package routes

import (
	"wagerhub/controllers"

	"github.com/gin-gonic/gin"
)

func OnlinePlayersRouteHandler(ctx *gin.Context) {
	controllers.OnlinePlayers(ctx)
}
