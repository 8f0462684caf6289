package cart

import (
	"context"

	"fiber-shop-api/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// enrich joins the stored items map with the current catalog state. It is a
// pure read: entries whose product is missing or unpublished are dropped from
// the view but left untouched in storage, so a deleted or hidden product
// disappears for the user without a background reconciliation job.
func (s *Service) enrich(ctx context.Context, stored *models.Cart) (*models.EnrichedCart, error) {
	ids := make([]primitive.ObjectID, 0, len(stored.Items))
	for productID := range stored.Items {
		oid, err := primitive.ObjectIDFromHex(productID)
		if err != nil {
			// Malformed key in storage, leave it out of the view.
			continue
		}
		ids = append(ids, oid)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}

	enriched := models.EnrichedCartItems{}
	for productID, sizes := range stored.Items {
		product, ok := byID[productID]
		if !ok || !product.IsPublished {
			continue
		}
		for size, quantity := range sizes {
			entry := models.EnrichedCartItem{
				Quantity:  quantity,
				Name:      product.Name,
				Price:     product.Price,
				Image:     product.FirstImage(),
				Stock:     product.Stock,
				Available: product.Stock >= quantity,
				Size:      size,
			}
			if enriched[productID] == nil {
				enriched[productID] = make(map[string]models.EnrichedCartItem)
			}
			enriched[productID][size] = entry
		}
	}

	return &models.EnrichedCart{
		ID:        stored.ID,
		UserID:    stored.UserID,
		Items:     enriched,
		CreatedAt: stored.CreatedAt,
		UpdatedAt: stored.UpdatedAt,
	}, nil
}
