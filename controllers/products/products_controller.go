package controllers

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"fiber-shop-api/models"
	"fiber-shop-api/responses"
	"fiber-shop-api/services/catalog"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestTimeout = 10 * time.Second

type Controller struct {
	service *catalog.Service
}

func NewController(service *catalog.Service) *Controller {
	return &Controller{service: service}
}

func (ct *Controller) GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	page := parseQueryInt(c, "page", 1)
	limit := parseQueryInt(c, "limit", 10)

	result, err := ct.service.List(ctx, page, limit)
	if err != nil {
		slog.Error("product listing failed", "error", err)
		return internalError(c, "Error fetching products")
	}

	status := "success"
	if len(result.Products) == 0 {
		status = "no more products"
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Success: true,
		Message: "Fetched products",
		Data: &fiber.Map{
			"status":        status,
			"currentPage":   result.Page,
			"totalPages":    result.TotalPages,
			"totalProducts": result.Total,
			"products":      result.Products,
		},
	})
}

func (ct *Controller) FetchProductDetails(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	objectId, err := primitive.ObjectIDFromHex(c.Query("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Success: false,
			Message: "Invalid product ID format",
		})
	}

	product, err := ct.service.Details(ctx, objectId)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
				Success: false,
				Message: "Product not found",
			})
		}
		slog.Error("product details failed", "productId", objectId.Hex(), "error", err)
		return internalError(c, "Error fetching product details")
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Success: true,
		Message: "Product fetched successfully",
		Data:    &fiber.Map{"product": product},
	})
}

func (ct *Controller) SearchProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Success: false,
			Message: "Search query is required",
		})
	}

	page := parseQueryInt(c, "page", 1)
	limit := parseQueryInt(c, "limit", 10)

	result, err := ct.service.Search(ctx, query, page, limit)
	if err != nil {
		slog.Error("product search failed", "query", query, "error", err)
		return internalError(c, "Error searching products")
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Success: true,
		Message: "Search results fetched",
		Data: &fiber.Map{
			"currentPage":   result.Page,
			"totalPages":    result.TotalPages,
			"totalProducts": result.Total,
			"products":      result.Products,
		},
	})
}

// AddProduct is the admin write path.
func (ct *Controller) AddProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Success: false,
			Message: "Error parsing product data",
		})
	}

	if product.Name == "" || product.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Success: false,
			Message: "Product name and a positive price are required",
		})
	}
	if product.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Success: false,
			Message: "Stock cannot be negative",
		})
	}

	if err := ct.service.Create(ctx, &product); err != nil {
		slog.Error("product insert failed", "error", err)
		return internalError(c, "Error inserting product")
	}

	return c.Status(fiber.StatusCreated).JSON(responses.APIResponse{
		Success: true,
		Message: "Product added successfully",
		Data:    &fiber.Map{"product": product},
	})
}

func parseQueryInt(c *fiber.Ctx, key string, fallback int64) int64 {
	v, err := strconv.ParseInt(c.Query(key, strconv.FormatInt(fallback, 10)), 10, 64)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
		Success: false,
		Message: message,
	})
}
