package cart

import (
	"context"

	"fiber-shop-api/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// platformFeeRate is charged on top of the item total.
var platformFeeRate = decimal.NewFromFloat(0.02)

// Totals is the price summary of an enriched cart. Entries filtered out by
// enrichment do not count towards the total.
type Totals struct {
	TotalPrice  float64 `json:"totalPrice"`
	PlatformFee float64 `json:"platformFee"`
	GrandTotal  float64 `json:"grandTotal"`
}

// GetTotals computes the current price summary for the user's cart using
// decimal arithmetic so fee rounding is exact.
func (s *Service) GetTotals(ctx context.Context, userID primitive.ObjectID) (*Totals, error) {
	enriched, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return computeTotals(enriched.Items), nil
}

func computeTotals(items models.EnrichedCartItems) *Totals {
	total := decimal.Zero
	for _, sizes := range items {
		for _, entry := range sizes {
			price := decimal.NewFromFloat(entry.Price)
			total = total.Add(price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
		}
	}

	fee := total.Mul(platformFeeRate).Round(2)
	grand := total.Add(fee)

	totalF, _ := total.Float64()
	feeF, _ := fee.Float64()
	grandF, _ := grand.Float64()
	return &Totals{
		TotalPrice:  totalF,
		PlatformFee: feeF,
		GrandTotal:  grandF,
	}
}
