package routes

import (
	"wagerhub/controllers"

	"github.com/gin-gonic/gin"
)

func ListDisputesRouteHandler(ctx *gin.Context) {
	controllers.ListDisputes(ctx)
}

func ResolveDisputeRouteHandler(ctx *gin.Context) {
	controllers.ResolveDispute(ctx)
}
