package routes

import (
	productsController "fiber-shop-api/controllers/products"
	"fiber-shop-api/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ProductsRoutes(app *fiber.App, controller *productsController.Controller) {
	app.Get("/api/products", controller.GetAllProducts)

	app.Get("/api/products/details", controller.FetchProductDetails)

	app.Get("/api/products/search", controller.SearchProducts)

	// Admin write path
	app.Post("/api/admin/products", middlewares.AuthMiddleware, middlewares.AdminOnly, controller.AddProduct)
}
