package routes

import (
	"wagerhub/controllers"

	"github.com/gin-gonic/gin"
)

func GetBalanceRouteHandler(ctx *gin.Context) {
	controllers.GetBalance(ctx)
}

func DepositRouteHandler(ctx *gin.Context) {
	controllers.Deposit(ctx)
}

func WithdrawRouteHandler(ctx *gin.Context) {
	controllers.Withdraw(ctx)
}

func TransactionsRouteHandler(ctx *gin.Context) {
	controllers.Transactions(ctx)
}
