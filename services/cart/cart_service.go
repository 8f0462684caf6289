package cart

import (
	"context"
	"errors"

	"fiber-shop-api/models"
	"fiber-shop-api/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service enforces the cart business rules before anything reaches storage.
// Every mutation re-reads the product from the catalog so stock and
// publication state are always checked against live data, and either the
// whole operation applies or nothing is written.
type Service struct {
	store    repositories.CartStore
	products repositories.ProductFinder
	locks    *userLocks
}

func NewService(store repositories.CartStore, products repositories.ProductFinder) *Service {
	return &Service{
		store:    store,
		products: products,
		locks:    newUserLocks(),
	}
}

// Get returns the user's cart enriched with live product data. The stored
// items are never modified on read; stale entries are filtered from the view
// only.
func (s *Service) Get(ctx context.Context, userID primitive.ObjectID) (*models.EnrichedCart, error) {
	stored, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, stored)
}

// Add puts quantity more of (productID, size) into the cart, accumulating
// onto whatever quantity is already there.
func (s *Service) Add(ctx context.Context, userID primitive.ObjectID, productID string, size string, quantity int) (*models.EnrichedCart, error) {
	if productID == "" {
		return nil, ErrMissingProductID
	}
	if quantity <= 0 {
		return nil, ErrNonPositiveQty
	}
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	mu := s.locks.lock(userID.Hex())
	defer mu.Unlock()

	product, err := s.products.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsPublished {
		return nil, ErrProductUnpublished
	}
	if !product.HasSize(size) {
		return nil, &InvalidSizeError{Size: size, Allowed: product.Sizes}
	}

	stored, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity > product.Stock {
		return nil, &InsufficientStockError{Remaining: product.Stock}
	}

	current := stored.Items.Quantity(productID, size)
	if current+quantity > product.Stock {
		return nil, &StockExceededError{Remaining: product.Stock - current}
	}

	stored.Items.Set(productID, size, current+quantity)
	if err := s.store.Replace(ctx, userID, stored.Items); err != nil {
		return nil, err
	}

	return s.enrich(ctx, stored)
}

// Update replaces the stored quantity for (productID, size). Quantity zero
// removes the entry and is the sole removal path. Unlike Add this is not
// incremental: the new quantity is checked against live stock directly.
func (s *Service) Update(ctx context.Context, userID primitive.ObjectID, productID string, size string, quantity int) (*models.EnrichedCart, error) {
	if productID == "" {
		return nil, ErrMissingProductID
	}
	if quantity < 0 {
		return nil, ErrNegativeQty
	}
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	mu := s.locks.lock(userID.Hex())
	defer mu.Unlock()

	product, err := s.products.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if quantity > 0 {
		if !product.HasSize(size) {
			return nil, &InvalidSizeError{Size: size, Allowed: product.Sizes}
		}
		if quantity > product.Stock {
			return nil, &InsufficientStockError{Remaining: product.Stock}
		}
	}

	stored, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		stored.Items.Remove(productID, size)
	} else {
		stored.Items.Set(productID, size, quantity)
	}

	if err := s.store.Replace(ctx, userID, stored.Items); err != nil {
		return nil, err
	}

	return s.enrich(ctx, stored)
}

// Clear resets the cart to empty. Clearing an empty cart succeeds; clearing
// a user with no cart document at all reports ErrCartNotFound.
func (s *Service) Clear(ctx context.Context, userID primitive.ObjectID) error {
	mu := s.locks.lock(userID.Hex())
	defer mu.Unlock()

	return s.store.Clear(ctx, userID)
}
