package routes

import (
	cartController "fiber-shop-api/controllers/cart"
	"fiber-shop-api/middlewares"

	"github.com/gofiber/fiber/v2"
)

func CartRoutes(app *fiber.App, controller *cartController.Controller) {
	app.Get("/api/cart", middlewares.AuthMiddleware, controller.GetCart)

	app.Post("/api/cart", middlewares.AuthMiddleware, controller.AddToCart)

	app.Put("/api/cart", middlewares.AuthMiddleware, controller.UpdateCart)

	app.Delete("/api/cart", middlewares.AuthMiddleware, controller.ClearCart)

	app.Get("/api/cart/total", middlewares.AuthMiddleware, controller.GetCartTotals)
}
