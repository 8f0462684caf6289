package cartController

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fiber-shop-api/models"
	"fiber-shop-api/repositories"
	cartService "fiber-shop-api/services/cart"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubService struct {
	getFn    func(ctx context.Context, userID primitive.ObjectID) (*models.EnrichedCart, error)
	addFn    func(ctx context.Context, userID primitive.ObjectID, productID, size string, quantity int) (*models.EnrichedCart, error)
	updateFn func(ctx context.Context, userID primitive.ObjectID, productID, size string, quantity int) (*models.EnrichedCart, error)
	clearFn  func(ctx context.Context, userID primitive.ObjectID) error
	totalsFn func(ctx context.Context, userID primitive.ObjectID) (*cartService.Totals, error)
}

func (s *stubService) Get(ctx context.Context, userID primitive.ObjectID) (*models.EnrichedCart, error) {
	return s.getFn(ctx, userID)
}

func (s *stubService) Add(ctx context.Context, userID primitive.ObjectID, productID, size string, quantity int) (*models.EnrichedCart, error) {
	return s.addFn(ctx, userID, productID, size, quantity)
}

func (s *stubService) Update(ctx context.Context, userID primitive.ObjectID, productID, size string, quantity int) (*models.EnrichedCart, error) {
	return s.updateFn(ctx, userID, productID, size, quantity)
}

func (s *stubService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.clearFn(ctx, userID)
}

func (s *stubService) GetTotals(ctx context.Context, userID primitive.ObjectID) (*cartService.Totals, error) {
	return s.totalsFn(ctx, userID)
}

func setupApp(svc CartService, userID primitive.ObjectID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", userID.Hex())
		return c.Next()
	})

	ctrl := NewController(svc)
	app.Get("/api/cart", ctrl.GetCart)
	app.Post("/api/cart", ctrl.AddToCart)
	app.Put("/api/cart", ctrl.UpdateCart)
	app.Delete("/api/cart", ctrl.ClearCart)
	app.Get("/api/cart/total", ctrl.GetCartTotals)
	return app
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func emptyEnriched(userID primitive.ObjectID) *models.EnrichedCart {
	return &models.EnrichedCart{
		UserID: userID,
		Items:  models.EnrichedCartItems{},
	}
}

func TestGetCart_ResponseShape(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := &stubService{
		getFn: func(_ context.Context, uid primitive.ObjectID) (*models.EnrichedCart, error) {
			assert.Equal(t, userID, uid)
			return &models.EnrichedCart{
				UserID: uid,
				Items: models.EnrichedCartItems{
					"p1": {"M": {Quantity: 2, Name: "Tee", Price: 29.99, Stock: 5, Available: true, Size: "M"}},
				},
			}, nil
		},
	}

	status, env := doRequest(t, setupApp(svc, userID), http.MethodGet, "/api/cart", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	cart, ok := env.Data["cart"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, userID.Hex(), cart["userId"])
	items := cart["items"].(map[string]interface{})
	assert.Contains(t, items, "p1")
}

func TestAddToCart_DefaultsQuantityToOne(t *testing.T) {
	userID := primitive.NewObjectID()
	var gotQuantity int
	svc := &stubService{
		addFn: func(_ context.Context, uid primitive.ObjectID, productID, size string, quantity int) (*models.EnrichedCart, error) {
			gotQuantity = quantity
			return emptyEnriched(uid), nil
		},
	}

	status, env := doRequest(t, setupApp(svc, userID), http.MethodPost, "/api/cart",
		fiber.Map{"itemId": primitive.NewObjectID().Hex(), "size": "M"})

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, 1, gotQuantity)
}

func TestAddToCart_BusinessRejectionsAreBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"missing id", cartService.ErrMissingProductID, "product id is required"},
		{"unpublished", cartService.ErrProductUnpublished, "product is not available"},
		{"invalid size", &cartService.InvalidSizeError{Size: "XL", Allowed: []string{"S", "M", "L"}}, "S, M, L"},
		{"out of stock", &cartService.InsufficientStockError{Remaining: 0}, "only 0 left"},
		{"exceeds stock", &cartService.StockExceededError{Remaining: 1}, "only 1 more"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{
				addFn: func(context.Context, primitive.ObjectID, string, string, int) (*models.EnrichedCart, error) {
					return nil, tc.err
				},
			}

			status, env := doRequest(t, setupApp(svc, primitive.NewObjectID()), http.MethodPost, "/api/cart",
				fiber.Map{"itemId": "x", "size": "M", "quantity": 1})

			assert.Equal(t, http.StatusBadRequest, status)
			assert.False(t, env.Success)
			assert.Contains(t, env.Message, tc.message)
		})
	}
}

func TestAddToCart_ProductNotFound(t *testing.T) {
	svc := &stubService{
		addFn: func(context.Context, primitive.ObjectID, string, string, int) (*models.EnrichedCart, error) {
			return nil, cartService.ErrProductNotFound
		},
	}

	status, env := doRequest(t, setupApp(svc, primitive.NewObjectID()), http.MethodPost, "/api/cart",
		fiber.Map{"itemId": primitive.NewObjectID().Hex(), "size": "M", "quantity": 1})

	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Product not found", env.Message)
}

func TestUpdateCart_PassesZeroQuantity(t *testing.T) {
	var gotQuantity = -1
	svc := &stubService{
		updateFn: func(_ context.Context, uid primitive.ObjectID, productID, size string, quantity int) (*models.EnrichedCart, error) {
			gotQuantity = quantity
			return emptyEnriched(uid), nil
		},
	}

	status, env := doRequest(t, setupApp(svc, primitive.NewObjectID()), http.MethodPut, "/api/cart",
		fiber.Map{"itemId": primitive.NewObjectID().Hex(), "size": "M", "quantity": 0})

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, 0, gotQuantity)
}

func TestClearCart_NoCartRecord(t *testing.T) {
	svc := &stubService{
		clearFn: func(context.Context, primitive.ObjectID) error {
			return repositories.ErrCartNotFound
		},
	}

	status, env := doRequest(t, setupApp(svc, primitive.NewObjectID()), http.MethodDelete, "/api/cart", nil)

	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Cart not found", env.Message)
}

func TestClearCart_Success(t *testing.T) {
	svc := &stubService{
		clearFn: func(context.Context, primitive.ObjectID) error { return nil },
	}

	status, env := doRequest(t, setupApp(svc, primitive.NewObjectID()), http.MethodDelete, "/api/cart", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
}

func TestGetCartTotals(t *testing.T) {
	svc := &stubService{
		totalsFn: func(context.Context, primitive.ObjectID) (*cartService.Totals, error) {
			return &cartService.Totals{TotalPrice: 100, PlatformFee: 2, GrandTotal: 102}, nil
		},
	}

	status, env := doRequest(t, setupApp(svc, primitive.NewObjectID()), http.MethodGet, "/api/cart/total", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.EqualValues(t, 102, env.Data["grandTotal"])
}

func TestMissingUserLocal_Unauthorized(t *testing.T) {
	app := fiber.New()
	ctrl := NewController(&stubService{})
	app.Get("/api/cart", ctrl.GetCart)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
