// Package server contains the HTTP handlers and wiring for the bulletin
// board API.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"github.com/s-kanako/france-keijiban/internal/config"
	"github.com/s-kanako/france-keijiban/internal/identity"
	"github.com/s-kanako/france-keijiban/internal/kv"
	"github.com/s-kanako/france-keijiban/internal/middleware"
	"github.com/s-kanako/france-keijiban/internal/models"
	"github.com/s-kanako/france-keijiban/internal/repository"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config   *config.Config
	redis    *redis.Client
	store    kv.Store
	postRepo repository.PostRepository
	identity identity.Provider
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	client, err := kv.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	store := kv.NewRedisStore(client)

	return &Server{
		config:   cfg,
		redis:    client,
		store:    store,
		postRepo: repository.NewPostRepository(store),
		identity: identity.NewProvider(store, cfg.JWTSecret),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health check
	app.Get("/health", s.HealthCheck)

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Post routes. Create accepts guest submissions, so it carries its
	// own token handling instead of AuthRequired.
	posts := app.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", middleware.RateLimit(s.redis, 5, time.Minute, "create_post"), s.CreatePost)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.AuthRequired(), s.DeletePost)

	// Categories
	app.Get("/categories", s.GetCategories)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"redis": redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It demands a
// verified, non-guest identity; the public anon key does not pass.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" || token == s.config.AnonKey {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		user, err := s.identity.VerifyToken(c.Context(), token)
		if err != nil {
			return models.RespondWithError(c, models.StatusCode(err), err)
		}

		c.Locals("user", user)
		c.Locals("userEmail", user.Email)

		return c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, or returns "".
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
