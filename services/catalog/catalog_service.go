package catalog

import (
	"context"
	"errors"
	"log/slog"

	"fiber-shop-api/cache"
	"fiber-shop-api/models"
	"fiber-shop-api/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = repositories.ErrProductNotFound

// Service serves storefront catalog reads and the admin write path. Detail
// reads go through redis; cache failures degrade to the database.
type Service struct {
	repo  repositories.ProductRepository
	cache cache.ProductCache
	sfg   singleflight.Group
}

func NewService(repo repositories.ProductRepository, productCache cache.ProductCache) *Service {
	return &Service{
		repo:  repo,
		cache: productCache,
	}
}

// ListPage is one page of published products.
type ListPage struct {
	Products   []models.Product `json:"products"`
	Page       int64            `json:"currentPage"`
	TotalPages int64            `json:"totalPages"`
	Total      int64            `json:"totalProducts"`
}

func (s *Service) List(ctx context.Context, page, limit int64) (*ListPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	products, total, err := s.repo.List(ctx, bson.M{"isPublished": true}, page, limit)
	if err != nil {
		return nil, err
	}

	return &ListPage{
		Products:   products,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
		Total:      total,
	}, nil
}

// Details returns a single product, cached. Concurrent misses for the same
// id collapse into one database read.
func (s *Service) Details(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	key := id.Hex()

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		product, err := s.cache.Get(ctx, key)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("product cache get failed", "productId", key, "error", err)
		}

		product, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), key, product); err != nil {
				slog.Warn("product cache set failed", "productId", key, "error", err)
			}
		}()

		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Product), nil
}

// Search matches published products by name or brand, case-insensitively.
func (s *Service) Search(ctx context.Context, query string, page, limit int64) (*ListPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	regex := bson.M{"$regex": query, "$options": "i"}
	filter := bson.M{
		"isPublished": true,
		"$or": []bson.M{
			{"name": regex},
			{"brand": regex},
		},
	}

	products, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	return &ListPage{
		Products:   products,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
		Total:      total,
	}, nil
}

// Create inserts a new product and drops any stale cache entry for it.
func (s *Service) Create(ctx context.Context, product *models.Product) error {
	if err := s.repo.Insert(ctx, product); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, product.ID.Hex()); err != nil {
		slog.Warn("product cache invalidate failed", "productId", product.ID.Hex(), "error", err)
	}
	return nil
}
