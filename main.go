package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"fiber-shop-api/cache"
	"fiber-shop-api/configs"
	cartController "fiber-shop-api/controllers/cart"
	productsController "fiber-shop-api/controllers/products"
	userController "fiber-shop-api/controllers/user"
	"fiber-shop-api/repositories"
	"fiber-shop-api/routes"
	cartService "fiber-shop-api/services/cart"
	"fiber-shop-api/services/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	configs.LoadEnv()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	mongoClient := configs.ConnectDB()
	redisClient := configs.ConnectRedis()

	dbName := configs.EnvMongoDatabase()
	cartStore := repositories.NewCartStore(mongoClient, dbName)
	productRepo := repositories.NewProductRepository(mongoClient, dbName)
	productCache := cache.NewRedisProductCache(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repositories.EnsureIndexes(ctx, cartStore); err != nil {
		log.Fatal(err)
	}
	cancel()

	carts := cartService.NewService(cartStore, productRepo)
	products := catalog.NewService(productRepo, productCache)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	routes.CartRoutes(app, cartController.NewController(carts))
	routes.ProductsRoutes(app, productsController.NewController(products))
	routes.UserRoutes(app, userController.NewController(mongoClient))

	log.Fatal(app.Listen(":" + configs.EnvPort()))
}
