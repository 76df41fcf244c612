package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"wagerhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database
var ChallengesCollection *mongo.Collection

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "wagerhub"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "wagerhub"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "wagerhub"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	ChallengesCollection = MongoDatabase.Collection("challenges")
	return nil
}

// FindUserByUsername retrieves a user by login username
func FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := MongoDatabase.Collection("users").FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no user found: %s", username)
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail retrieves a user by email
func FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := MongoDatabase.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no user found: %s", email)
		}
		return nil, err
	}
	return &user, nil
}

// FindChallengeByID retrieves a single challenge
func FindChallengeByID(ctx context.Context, id primitive.ObjectID) (*models.Challenge, error) {
	var ch models.Challenge
	err := ChallengesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&ch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("challenge not found: %s", id.Hex())
		}
		return nil, err
	}
	return &ch, nil
}

// UpdateChallenge applies a $set update and bumps updatedAt
func UpdateChallenge(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now()
	_, err := ChallengesCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		log.Printf("Error updating challenge %s: %v", id.Hex(), err)
		return err
	}
	return nil
}
