package cart

import (
	"errors"
	"fmt"
	"strings"
)

// Every rejection the mutation service can produce is a distinct error so the
// HTTP layer can map it to a status code and surface the message verbatim.
var (
	ErrMissingProductID   = errors.New("product id is required")
	ErrInvalidProductID   = errors.New("invalid product id")
	ErrNonPositiveQty     = errors.New("quantity must be greater than zero")
	ErrNegativeQty        = errors.New("quantity cannot be negative")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnpublished = errors.New("product is not available")
)

// InvalidSizeError lists the sizes the product actually offers.
type InvalidSizeError struct {
	Size    string
	Allowed []string
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid size %q, available sizes: %s", e.Size, strings.Join(e.Allowed, ", "))
}

// InsufficientStockError reports how much stock is actually left, counting
// what the user already holds in the cart for the same (product, size).
type InsufficientStockError struct {
	Remaining int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock, only %d left", e.Remaining)
}

// StockExceededError rejects an Add whose accumulated total would pass the
// product's stock. Remaining is stock minus what the cart already holds.
type StockExceededError struct {
	Remaining int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("cannot add that many, only %d more available", e.Remaining)
}
