package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Challenge lifecycle statuses. The server owns every transition; clients
// only read the last-fetched value.
const (
	StatusPending               = "pending"
	StatusReadyPending          = "ready-pending"
	StatusActive                = "active"
	StatusProofSubmitted        = "proof-submitted"
	StatusVerifying             = "verifying"
	StatusScorecardPending      = "scorecard-pending"
	StatusScorecardConflict     = "scorecard-conflict"
	StatusAIVerificationPending = "ai-verification-pending"
	StatusAIConflict            = "ai-conflict"
	StatusAIVerified            = "ai-verified"
	StatusCompleted             = "completed"
	StatusDeclined              = "declined"
	StatusCancelled             = "cancelled"
	StatusExpired               = "expired"
)

// Opponent response statuses
const (
	ResponsePending  = "pending"
	ResponseAccepted = "accepted"
	ResponseDeclined = "declined"
)

// Opponent is one invited (or joined) side of a challenge
type Opponent struct {
	Username                string            `bson:"username" json:"username"`
	ResponseStatus          string            `bson:"responseStatus" json:"responseStatus"`
	AcceptedTeam            string            `bson:"acceptedTeam,omitempty" json:"acceptedTeam,omitempty"`
	AcceptedPlatformAliases map[string]string `bson:"acceptedPlatformAliases,omitempty" json:"acceptedPlatformAliases,omitempty"`
}

// Scorecard is a self-reported result from one participant
type Scorecard struct {
	Username      string    `bson:"username" json:"username"`
	ClaimedWinner string    `bson:"claimedWinner" json:"claimedWinner"`
	Score         string    `bson:"score,omitempty" json:"score,omitempty"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	SubmittedAt   time.Time `bson:"submittedAt" json:"submittedAt"`
}

// Proof is supporting evidence uploaded for AI verification
type Proof struct {
	Username    string    `bson:"username" json:"username"`
	URL         string    `bson:"url" json:"url"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	UploadedAt  time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// Challenge defines a wagered match between a challenger and one or more
// opponents. Timestamp fields are deliberately untyped: records imported
// from the legacy store carry Firestore-style shapes, ISO strings or epoch
// numbers, while new writes store time.Time. Use challengeview.NormalizeTimestamp
// to read them.
type Challenge struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ChallengerID       primitive.ObjectID `bson:"challengerId" json:"challengerId"`
	ChallengerUsername string             `bson:"challengerUsername" json:"challengerUsername"`
	Opponents          []Opponent         `bson:"opponents" json:"opponents"`
	Game               string             `bson:"game" json:"game"`
	Platform           string             `bson:"platform" json:"platform"`
	Stake              float64            `bson:"stake" json:"stake"`
	IsPublic           bool               `bson:"isPublic" json:"isPublic"`
	MaxOpponents       int                `bson:"maxOpponents,omitempty" json:"maxOpponents,omitempty"`
	Status             string             `bson:"status" json:"status"`

	CreatedAt   interface{} `bson:"createdAt" json:"createdAt"`
	UpdatedAt   interface{} `bson:"updatedAt" json:"updatedAt"`
	StartedAt   interface{} `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt interface{} `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Deadline    interface{} `bson:"deadline,omitempty" json:"deadline,omitempty"`

	// Winner and Loser are free-text tokens: either a login username or a
	// per-platform alias of a participant. See challengeview.ResolveOutcome.
	Winner string `bson:"winner,omitempty" json:"winner,omitempty"`
	Loser  string `bson:"loser,omitempty" json:"loser,omitempty"`

	Disputed        bool `bson:"disputed,omitempty" json:"disputed,omitempty"`
	DisputeResolved bool `bson:"disputeResolved,omitempty" json:"disputeResolved,omitempty"`
	RewardClaimed   bool `bson:"rewardClaimed,omitempty" json:"rewardClaimed,omitempty"`

	ReadyPlayers []string    `bson:"readyPlayers,omitempty" json:"readyPlayers,omitempty"`
	Scorecards   []Scorecard `bson:"scorecards,omitempty" json:"scorecards,omitempty"`
	Proofs       []Proof     `bson:"proofs,omitempty" json:"proofs,omitempty"`

	// Legacy field retained for backward compatibility with records written
	// before aliases moved onto the user profile.
	ChallengerPlatformUsernames map[string]string `bson:"challengerPlatformUsernames,omitempty" json:"challengerPlatformUsernames,omitempty"`
}

// FindOpponent returns the opponent entry matching username, or nil
func (c *Challenge) FindOpponent(username string) *Opponent {
	for i := range c.Opponents {
		if c.Opponents[i].Username == username {
			return &c.Opponents[i]
		}
	}
	return nil
}

// IsParticipant reports whether username is the challenger or a listed opponent
func (c *Challenge) IsParticipant(username string) bool {
	if c.ChallengerUsername == username {
		return true
	}
	return c.FindOpponent(username) != nil
}

// AcceptedOpponents returns the opponents that have accepted the challenge
func (c *Challenge) AcceptedOpponents() []Opponent {
	var accepted []Opponent
	for _, o := range c.Opponents {
		if o.ResponseStatus == ResponseAccepted {
			accepted = append(accepted, o)
		}
	}
	return accepted
}

// HasMarkedReady reports whether username already marked themselves ready
func (c *Challenge) HasMarkedReady(username string) bool {
	for _, u := range c.ReadyPlayers {
		if u == username {
			return true
		}
	}
	return false
}

// ScorecardFrom returns the scorecard submitted by username, or nil
func (c *Challenge) ScorecardFrom(username string) *Scorecard {
	for i := range c.Scorecards {
		if c.Scorecards[i].Username == username {
			return &c.Scorecards[i]
		}
	}
	return nil
}
