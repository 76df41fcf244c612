package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"wagerhub/db"
	"wagerhub/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Payout math, defined once. The pot is both stakes; the house keeps 5%.
const (
	potMultiplier = 2.0
	payoutRate    = 0.95
)

var ErrInsufficientFunds = fmt.Errorf("insufficient funds")

// WinnerPayout is the amount credited to the winner of a challenge: 95% of
// the 2x-stake pot, i.e. 1.9x their own stake.
func WinnerPayout(stake float64) float64 {
	return stake * potMultiplier * payoutRate
}

// EnsureWallet creates a zero-balance wallet for the user if none exists
func EnsureWallet(ctx context.Context, username string) error {
	wallets := db.GetCollection("wallets")
	filter := bson.M{"username": username}
	update := bson.M{
		"$setOnInsert": bson.M{
			"username":  username,
			"balance":   0.0,
			"updatedAt": time.Now(),
		},
	}
	_, err := wallets.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetWallet fetches the user's wallet
func GetWallet(ctx context.Context, username string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := db.GetCollection("wallets").FindOne(ctx, bson.M{"username": username}).Decode(&wallet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no wallet for user: %s", username)
		}
		return nil, err
	}
	return &wallet, nil
}

// Credit adds amount to the user's balance and records a ledger entry
func Credit(ctx context.Context, username string, amount float64, txType string, challengeID primitive.ObjectID, note string) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive")
	}
	wallets := db.GetCollection("wallets")
	after := options.After
	var wallet models.Wallet
	err := wallets.FindOneAndUpdate(ctx,
		bson.M{"username": username},
		bson.M{"$inc": bson.M{"balance": amount}, "$set": bson.M{"updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&wallet)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	return recordTransaction(ctx, username, txType, amount, wallet.Balance, challengeID, note)
}

// Debit subtracts amount from the user's balance, failing with
// ErrInsufficientFunds when the balance cannot cover it.
func Debit(ctx context.Context, username string, amount float64, txType string, challengeID primitive.ObjectID, note string) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive")
	}
	wallets := db.GetCollection("wallets")
	after := options.After
	var wallet models.Wallet
	// The balance guard in the filter makes check-and-debit atomic.
	err := wallets.FindOneAndUpdate(ctx,
		bson.M{"username": username, "balance": bson.M{"$gte": amount}},
		bson.M{"$inc": bson.M{"balance": -amount}, "$set": bson.M{"updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&wallet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrInsufficientFunds
		}
		return fmt.Errorf("failed to debit wallet: %w", err)
	}
	return recordTransaction(ctx, username, txType, -amount, wallet.Balance, challengeID, note)
}

// TransactionHistory returns the user's ledger entries, newest first
func TransactionHistory(ctx context.Context, username string, limit int64) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := db.GetCollection("transactions").Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txs []models.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func recordTransaction(ctx context.Context, username, txType string, amount, balanceAfter float64, challengeID primitive.ObjectID, note string) error {
	tx := models.Transaction{
		ID:           uuid.NewString(),
		Username:     username,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		ChallengeID:  challengeID,
		Note:         note,
		CreatedAt:    time.Now(),
	}
	_, err := db.GetCollection("transactions").InsertOne(ctx, tx)
	if err != nil {
		// The balance already moved; a missing ledger row is a defect worth
		// shouting about, not a reason to fail the user's operation.
		log.Printf("Error recording %s transaction for %s: %v", txType, username, err)
	}
	return nil
}
