package controllers

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"
	"unicode/utf8"

	"fiber-shop-api/configs"
	"fiber-shop-api/models"
	"fiber-shop-api/responses"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const requestTimeout = 10 * time.Second

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Controller struct {
	users *mongo.Collection
}

func NewController(client *mongo.Client) *Controller {
	return &Controller{
		users: configs.GetCollection(client, "users"),
	}
}

func (ct *Controller) SignUp(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	var reqBody struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return badRequest(c, "Invalid request format")
	}

	if reqBody.Name == "" {
		return badRequest(c, "Name is required")
	}
	if utf8.RuneCountInString(reqBody.Password) < 8 {
		return badRequest(c, "Passwords must be 8 letters long")
	}
	if reqBody.Password != reqBody.ConfirmPassword {
		return badRequest(c, "Passwords do not match")
	}
	if !emailRegex.MatchString(reqBody.Email) {
		return badRequest(c, "Please enter a valid email address")
	}

	var existingUser models.User
	err := ct.users.FindOne(ctx, bson.M{"email": reqBody.Email}).Decode(&existingUser)
	if err == nil {
		return badRequest(c, "User with this email already exists")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("signup lookup failed", "error", err)
		return internalError(c)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqBody.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("password hashing failed", "error", err)
		return internalError(c)
	}

	user := models.User{
		Name:     reqBody.Name,
		Email:    reqBody.Email,
		Password: string(hashedPassword),
		Type:     "user",
	}
	if _, err := ct.users.InsertOne(ctx, user); err != nil {
		slog.Error("user insert failed", "error", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(responses.APIResponse{
		Success: true,
		Message: "Account created successfully",
	})
}

func (ct *Controller) Login(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	var reqBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return badRequest(c, "Invalid request format")
	}

	var user models.User
	err := ct.users.FindOne(ctx, bson.M{"email": reqBody.Email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return badRequest(c, "Invalid email or password")
		}
		slog.Error("login lookup failed", "error", err)
		return internalError(c)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqBody.Password)); err != nil {
		return badRequest(c, "Invalid email or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.Id.Hex(),
		"type": user.Type,
		"exp":  time.Now().Add(72 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(configs.EnvJWTSecret()))
	if err != nil {
		slog.Error("token signing failed", "error", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Success: true,
		Message: "Logged in successfully",
		Data: &fiber.Map{
			"token": signed,
			"user":  user,
		},
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
		Success: false,
		Message: message,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
		Success: false,
		Message: "Something went wrong",
	})
}
