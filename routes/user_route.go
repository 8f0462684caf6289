package routes

import (
	userController "fiber-shop-api/controllers/user"

	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App, controller *userController.Controller) {
	app.Post("/api/signup", controller.SignUp)

	app.Post("/api/login", controller.Login)
}
