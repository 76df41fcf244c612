package controllers

import (
	"errors"

	"wagerhub/models"
	"wagerhub/services"
	"wagerhub/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func GetBalance(ctx *gin.Context) {
	username := ctx.GetString("username")

	wallet, err := services.GetWallet(ctx, username)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to fetch wallet"})
		return
	}

	ctx.JSON(200, gin.H{"username": wallet.Username, "balance": wallet.Balance})
}

func Deposit(ctx *gin.Context) {
	username := ctx.GetString("username")

	var request structs.DepositRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": "Amount must be greater than zero"})
		return
	}

	err := services.Credit(ctx, username, request.Amount, models.TxDeposit, primitive.NilObjectID, "wallet deposit")
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to deposit"})
		return
	}

	wallet, err := services.GetWallet(ctx, username)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to fetch wallet"})
		return
	}

	ctx.JSON(200, gin.H{"message": "Deposit successful", "balance": wallet.Balance})
}

func Withdraw(ctx *gin.Context) {
	username := ctx.GetString("username")

	var request structs.WithdrawRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": "Amount must be greater than zero"})
		return
	}

	err := services.Debit(ctx, username, request.Amount, models.TxWithdrawal, primitive.NilObjectID, "wallet withdrawal")
	if err != nil {
		if errors.Is(err, services.ErrInsufficientFunds) {
			ctx.JSON(402, gin.H{"error": "Insufficient funds"})
			return
		}
		ctx.JSON(500, gin.H{"error": "Failed to withdraw"})
		return
	}

	wallet, err := services.GetWallet(ctx, username)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to fetch wallet"})
		return
	}

	ctx.JSON(200, gin.H{"message": "Withdrawal successful", "balance": wallet.Balance})
}

func Transactions(ctx *gin.Context) {
	username := ctx.GetString("username")

	history, err := services.TransactionHistory(ctx, username, 50)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	ctx.JSON(200, gin.H{"transactions": history})
}
