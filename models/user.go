package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines a user entity
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email           string             `bson:"email" json:"email"`
	Username        string             `bson:"username" json:"username"`
	DisplayName     string             `bson:"displayName" json:"displayName"`
	Bio             string             `bson:"bio" json:"bio"`
	AvatarURL       string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	PlatformAliases map[string]string  `bson:"platformAliases,omitempty" json:"platformAliases,omitempty"` // platform (lowercased) -> in-game alias
	Wins            int                `bson:"wins" json:"wins"`
	Losses          int                `bson:"losses" json:"losses"`
	NetWinnings     float64            `bson:"netWinnings" json:"netWinnings"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	LastActivity    time.Time          `bson:"lastActivity,omitempty" json:"lastActivity,omitempty"`
}
