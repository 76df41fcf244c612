package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types
const (
	TxDeposit    = "deposit"
	TxWithdrawal = "withdrawal"
	TxEscrow     = "escrow"
	TxRefund     = "refund"
	TxPayout     = "payout"
	TxReversal   = "reversal"
)

// Wallet holds a user's available balance in USD
type Wallet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username  string             `bson:"username" json:"username"`
	Balance   float64            `bson:"balance" json:"balance"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Transaction is an append-only ledger entry. Amount is signed: debits are
// negative, credits positive. BalanceAfter snapshots the wallet balance at
// write time so the ledger can be audited without replaying it.
type Transaction struct {
	ID           string             `bson:"_id" json:"id"` // uuid
	Username     string             `bson:"username" json:"username"`
	Type         string             `bson:"type" json:"type"`
	Amount       float64            `bson:"amount" json:"amount"`
	BalanceAfter float64            `bson:"balanceAfter" json:"balanceAfter"`
	ChallengeID  primitive.ObjectID `bson:"challengeId,omitempty" json:"challengeId,omitempty"`
	Note         string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
