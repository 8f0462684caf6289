package cartController

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fiber-shop-api/models"
	"fiber-shop-api/repositories"
	"fiber-shop-api/responses"
	cartService "fiber-shop-api/services/cart"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestTimeout = 10 * time.Second

// CartService is what the HTTP layer needs from the mutation service.
type CartService interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.EnrichedCart, error)
	Add(ctx context.Context, userID primitive.ObjectID, productID, size string, quantity int) (*models.EnrichedCart, error)
	Update(ctx context.Context, userID primitive.ObjectID, productID, size string, quantity int) (*models.EnrichedCart, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error
	GetTotals(ctx context.Context, userID primitive.ObjectID) (*cartService.Totals, error)
}

type Controller struct {
	service CartService
}

func NewController(service CartService) *Controller {
	return &Controller{service: service}
}

type cartItemRequest struct {
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Quantity *int   `json:"quantity"`
}

func (ct *Controller) GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDFromLocals(c)
	if err != nil {
		return unauthorized(c, err.Error())
	}

	enriched, err := ct.service.Get(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Success: true,
		Message: "Successfully fetched cart",
		Data:    &fiber.Map{"cart": enriched},
	})
}

func (ct *Controller) AddToCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDFromLocals(c)
	if err != nil {
		return unauthorized(c, err.Error())
	}

	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// Quantity defaults to 1 when the field is omitted.
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	enriched, err := ct.service.Add(ctx, userID, req.ItemID, req.Size, quantity)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Success: true,
		Message: "Successfully added to cart",
		Data:    &fiber.Map{"cart": enriched},
	})
}

func (ct *Controller) UpdateCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDFromLocals(c)
	if err != nil {
		return unauthorized(c, err.Error())
	}

	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	quantity := 0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	enriched, err := ct.service.Update(ctx, userID, req.ItemID, req.Size, quantity)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Success: true,
		Message: "Successfully updated cart",
		Data:    &fiber.Map{"cart": enriched},
	})
}

func (ct *Controller) ClearCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDFromLocals(c)
	if err != nil {
		return unauthorized(c, err.Error())
	}

	if err := ct.service.Clear(ctx, userID); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Success: true,
		Message: "Successfully cleared cart",
	})
}

func (ct *Controller) GetCartTotals(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDFromLocals(c)
	if err != nil {
		return unauthorized(c, err.Error())
	}

	totals, err := ct.service.GetTotals(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Success: true,
		Message: "Successfully calculated cart totals",
		Data: &fiber.Map{
			"totalPrice":  totals.TotalPrice,
			"platformFee": totals.PlatformFee,
			"grandTotal":  totals.GrandTotal,
		},
	})
}

func userIDFromLocals(c *fiber.Ctx) (primitive.ObjectID, error) {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return primitive.NilObjectID, errors.New("User ID not found in token")
	}
	oid, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return primitive.NilObjectID, errors.New("Invalid User ID format")
	}
	return oid, nil
}

// respondError maps service errors onto the response envelope. Business
// rejections carry their message verbatim; anything unexpected is logged and
// hidden behind a generic message.
func respondError(c *fiber.Ctx, err error) error {
	var invalidSize *cartService.InvalidSizeError
	var insufficient *cartService.InsufficientStockError
	var exceeded *cartService.StockExceededError

	switch {
	case errors.Is(err, cartService.ErrMissingProductID),
		errors.Is(err, cartService.ErrInvalidProductID),
		errors.Is(err, cartService.ErrNonPositiveQty),
		errors.Is(err, cartService.ErrNegativeQty),
		errors.Is(err, cartService.ErrProductUnpublished),
		errors.As(err, &invalidSize),
		errors.As(err, &insufficient),
		errors.As(err, &exceeded):
		return badRequest(c, err.Error())
	case errors.Is(err, cartService.ErrProductNotFound):
		return notFound(c, "Product not found")
	case errors.Is(err, repositories.ErrCartNotFound):
		return notFound(c, "Cart not found")
	default:
		slog.Error("cart operation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Success: false,
			Message: "Something went wrong",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
		Success: false,
		Message: message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
		Success: false,
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(responses.APIResponse{
		Success: false,
		Message: message,
	})
}
