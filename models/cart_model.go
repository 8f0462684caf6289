package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItems maps product id (hex) -> size label -> quantity. Quantities are
// always positive: a zero quantity is expressed by deleting the size entry,
// and a product with no sizes left is deleted from the outer map.
type CartItems map[string]map[string]int

// Cart is the persisted per-user cart document. One document per user.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     CartItems          `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Quantity returns the stored quantity for (productID, size), zero if absent.
func (items CartItems) Quantity(productID, size string) int {
	return items[productID][size]
}

// Set stores a positive quantity, creating the size map when needed.
func (items CartItems) Set(productID, size string, quantity int) {
	sizes, ok := items[productID]
	if !ok {
		sizes = make(map[string]int)
		items[productID] = sizes
	}
	sizes[size] = quantity
}

// Remove deletes the (productID, size) entry and drops the product entry
// entirely once its size map is empty, so storage never holds an empty map.
func (items CartItems) Remove(productID, size string) {
	sizes, ok := items[productID]
	if !ok {
		return
	}
	delete(sizes, size)
	if len(sizes) == 0 {
		delete(items, productID)
	}
}

// EnrichedCartItem is the display view of one (product, size) cart entry,
// joined with live product data at read time. Never persisted.
type EnrichedCartItem struct {
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Stock     int     `json:"stock"`
	Available bool    `json:"available"`
	Size      string  `json:"size"`
}

// EnrichedCartItems mirrors CartItems with display entries as leaves.
type EnrichedCartItems map[string]map[string]EnrichedCartItem

// EnrichedCart is the response shape of a cart read.
type EnrichedCart struct {
	ID        primitive.ObjectID `json:"id,omitempty"`
	UserID    primitive.ObjectID `json:"userId"`
	Items     EnrichedCartItems  `json:"items"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
