package utils

import (
	"context"
	"time"

	"wagerhub/db"
	"wagerhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PopulateTestUsers inserts sample users with wallets into the database
func PopulateTestUsers() {
	users := db.GetCollection("users")
	wallets := db.GetCollection("wallets")

	samples := []models.User{
		{
			ID:          primitive.NewObjectID(),
			Email:       "alice@example.com",
			Username:    "alice",
			DisplayName: "Alice Johnson",
			Bio:         "FPS grinder",
			PlatformAliases: map[string]string{
				"pc":   "aim_alice",
				"xbox": "AliceXL",
			},
			CreatedAt: time.Now(),
		},
		{
			ID:          primitive.NewObjectID(),
			Email:       "bob@example.com",
			Username:    "bob",
			DisplayName: "Bob Smith",
			Bio:         "Fighting game main",
			PlatformAliases: map[string]string{
				"xbox": "BobDowns",
			},
			CreatedAt: time.Now(),
		},
		{
			ID:          primitive.NewObjectID(),
			Email:       "carol@example.com",
			Username:    "carol",
			DisplayName: "Carol Davis",
			Bio:         "Racing leagues",
			PlatformAliases: map[string]string{
				"pc": "cdavis_gg",
			},
			CreatedAt: time.Now(),
		},
	}

	ctx := context.Background()
	for _, user := range samples {
		filter := bson.M{"username": user.Username}
		update := bson.M{"$setOnInsert": user}
		users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))

		wallets.UpdateOne(ctx, bson.M{"username": user.Username}, bson.M{
			"$setOnInsert": bson.M{
				"username":  user.Username,
				"balance":   100.0,
				"updatedAt": time.Now(),
			},
		}, options.Update().SetUpsert(true))
	}
}
