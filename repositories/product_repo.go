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

var ErrProductNotFound = errors.New("product not found")

// cartProjection limits batch reads to the fields enrichment needs.
var cartProjection = bson.M{
	"name":        1,
	"price":       1,
	"images":      1,
	"stock":       1,
	"sizes":       1,
	"isPublished": 1,
}

// ProductFinder is the read-only product lookup the cart subsystem consumes.
type ProductFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
}

// ProductRepository adds the write and listing operations the catalog needs
// on top of the lookup interface.
type ProductRepository interface {
	ProductFinder
	List(ctx context.Context, filter bson.M, page, limit int64) ([]models.Product, int64, error)
	Insert(ctx context.Context, product *models.Product) error
}

type mongoProductRepo struct {
	collection *mongo.Collection
}

func NewProductRepository(client *mongo.Client, db string) ProductRepository {
	return &mongoProductRepo{
		collection: client.Database(db).Collection("products"),
	}
}

func (r *mongoProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *mongoProductRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	opts := options.Find().SetProjection(cartProjection)
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *mongoProductRepo) List(ctx context.Context, filter bson.M, page, limit int64) ([]models.Product, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

func (r *mongoProductRepo) Insert(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}
