package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dispute statuses
const (
	DisputePending    = "pending"
	DisputeUpheld     = "upheld"     // original outcome stands
	DisputeOverturned = "overturned" // winner and loser swapped, payout reversed
)

// Dispute is a results dispute filed by the losing side of a completed challenge
type Dispute struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ChallengeID primitive.ObjectID `bson:"challengeId" json:"challengeId"`
	FiledBy     string             `bson:"filedBy" json:"filedBy"`
	Reason      string             `bson:"reason" json:"reason"`
	EvidenceURL string             `bson:"evidenceUrl,omitempty" json:"evidenceUrl,omitempty"`
	Status      string             `bson:"status" json:"status"`
	ResolvedBy  string             `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	Resolution  string             `bson:"resolution,omitempty" json:"resolution,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	ResolvedAt  *time.Time         `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}
