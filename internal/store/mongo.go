package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/coinlist/backend/internal/catalog"
	"github.com/ayush/coinlist/backend/internal/models"
)

// MongoStore holds the coin listing and the submission queue in MongoDB.
type MongoStore struct {
	coins       *mongo.Collection
	submissions *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		coins:       db.Collection("coins"),
		submissions: db.Collection("submissions"),
	}
}

// Seed inserts coins when the collection is empty.
func (s *MongoStore) Seed(ctx context.Context, coins []models.Coin) error {
	n, err := s.coins.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("mongo count coins: %w", err)
	}
	if n > 0 || len(coins) == 0 {
		return nil
	}
	docs := make([]interface{}, len(coins))
	for i := range coins {
		docs[i] = coins[i]
	}
	if _, err := s.coins.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("mongo seed coins: %w", err)
	}
	return nil
}

func (s *MongoStore) ListCoins(ctx context.Context) ([]models.Coin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cur, err := s.coins.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var coins []models.Coin
	if err := cur.All(ctx, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

func (s *MongoStore) GetCoin(ctx context.Context, id int64) (*models.Coin, error) {
	var coin models.Coin
	if err := s.coins.FindOne(ctx, bson.M{"id": id}).Decode(&coin); err != nil {
		return nil, notFound(err)
	}
	return &coin, nil
}

func (s *MongoStore) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.submissions.Find(ctx, bson.M{"status": models.SubmissionPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.Submission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *MongoStore) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, catalog.ErrNotFound
	}
	var sub models.Submission
	if err := s.submissions.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub); err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

func (s *MongoStore) InsertSubmission(ctx context.Context, sub *models.Submission) (string, error) {
	sub.CreatedAt = time.Now()
	res, err := s.submissions.InsertOne(ctx, sub)
	if err != nil {
		return "", fmt.Errorf("mongo insert: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	sub.ID = oid
	return oid.Hex(), nil
}

func (s *MongoStore) SetSubmissionLogo(ctx context.Context, id, key string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return catalog.ErrNotFound
	}
	res, err := s.submissions.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"logo_key": key}})
	if err != nil {
		return fmt.Errorf("mongo update: %w", err)
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return catalog.ErrNotFound
	}
	return err
}
