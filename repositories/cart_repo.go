package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fiber-shop-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCartNotFound = errors.New("cart not found")

// CartStore persists the per-user nested items map. Consumers define the
// interface; MongoDB provides the implementation.
type CartStore interface {
	// Get returns the stored cart, or a transient empty cart when the user
	// has none yet. Absence is not an error.
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// Replace overwrites the stored items map atomically, last-writer-wins.
	Replace(ctx context.Context, userID primitive.ObjectID, items models.CartItems) error
	// Clear resets items to empty. Returns ErrCartNotFound when no cart
	// document exists for the user.
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type mongoCartStore struct {
	collection *mongo.Collection
}

func NewCartStore(client *mongo.Client, db string) CartStore {
	return &mongoCartStore{
		collection: client.Database(db).Collection("carts"),
	}
}

func (s *mongoCartStore) Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			now := time.Now()
			return &models.Cart{
				UserID:    userID,
				Items:     models.CartItems{},
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if cart.Items == nil {
		cart.Items = models.CartItems{}
	}
	return &cart, nil
}

func (s *mongoCartStore) Replace(ctx context.Context, userID primitive.ObjectID, items models.CartItems) error {
	now := time.Now()

	filter := bson.M{"userId": userID}
	update := bson.M{
		"$set":         bson.M{"items": items, "updatedAt": now},
		"$setOnInsert": bson.M{"userId": userID, "createdAt": now},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to replace cart items: %w", err)
	}
	return nil
}

func (s *mongoCartStore) Clear(ctx context.Context, userID primitive.ObjectID) error {
	filter := bson.M{"userId": userID}
	update := bson.M{
		"$set": bson.M{"items": models.CartItems{}, "updatedAt": time.Now()},
	}

	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the mongo stores. A no-op for
// non-mongo implementations, which keeps test doubles simple.
func EnsureIndexes(ctx context.Context, store CartStore) error {
	if s, ok := store.(*mongoCartStore); ok {
		return s.CreateIndexes(ctx)
	}
	return nil
}

// CreateIndexes sets up the unique per-user index. Called once at startup.
func (s *mongoCartStore) CreateIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := s.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}
