// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"daygrid/internal/cache"
	"daygrid/internal/config"
	"daygrid/internal/database"
	"daygrid/internal/middleware"
	"daygrid/internal/models"
	"daygrid/internal/repository"
	"daygrid/internal/service"
	"daygrid/internal/validation"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config   *config.Config
	db       *gorm.DB
	redis    *redis.Client
	prom     *fiberprometheus.FiberPrometheus
	validate *validator.Validate

	userRepo         repository.UserRepository
	calendarRepo     repository.CalendarRepository
	shareRepo        repository.ShareRepository
	eventRepo        repository.EventRepository
	availabilityRepo repository.AvailabilityRepository
	friendRepo       repository.FriendRepository
	holidayRepo      repository.HolidayRepository
	statsRepo        repository.StatsRepository

	access          *service.AccessService
	calendarSvc     *service.CalendarService
	eventSvc        *service.EventService
	availabilitySvc *service.AvailabilityService
	friendSvc       *service.FriendService
	statsSvc        *service.StatsService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// The read replica is optional; queries fall back to the primary.
	if cfg.DBReadHost != "" {
		if _, err := database.ConnectRead(cfg); err != nil {
			log.Printf("read replica connection failed, using primary: %v", err)
		}
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return newServer(cfg, db, redisClient), nil
}

// newServer wires repositories and services onto an existing database
// handle. Tests use it with a sqlite :memory: DB.
func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	shareRepo := repository.NewShareRepository(db)
	eventRepo := repository.NewEventRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	access := service.NewAccessService(calendarRepo, shareRepo)

	return &Server{
		config:   cfg,
		db:       db,
		redis:    redisClient,
		prom:     middleware.InitMetrics("daygrid"),
		validate: validation.New(),

		userRepo:         userRepo,
		calendarRepo:     calendarRepo,
		shareRepo:        shareRepo,
		eventRepo:        eventRepo,
		availabilityRepo: availabilityRepo,
		friendRepo:       friendRepo,
		holidayRepo:      holidayRepo,
		statsRepo:        statsRepo,

		access:          access,
		calendarSvc:     service.NewCalendarService(calendarRepo, shareRepo, userRepo, access, db),
		eventSvc:        service.NewEventService(eventRepo, access),
		availabilitySvc: service.NewAvailabilityService(availabilityRepo, access, db),
		friendSvc:       service.NewFriendService(friendRepo, userRepo),
		statsSvc:        service.NewStatsService(statsRepo),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Prometheus HTTP metrics
	s.prom.RegisterAt(app, "/api/metrics")
	app.Use(middleware.MetricsMiddleware(s.prom))

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
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health check
	api.Get("/", s.HealthCheck)

	// Runtime dashboard
	api.Get("/monitor", monitor.New(monitor.Config{
		Title: "Daygrid Metrics",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	protected.Post("/auth/refresh", s.Refresh)
	protected.Post("/auth/logout", s.Logout)

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Get("/", s.GetAllUsers)

	// Calendar routes
	calendars := protected.Group("/calendars")
	calendars.Get("/", s.GetCalendars)
	calendars.Post("/", s.CreateCalendar)
	calendars.Post("/shared", s.CreateSharedCalendar)
	// Specific /:id/:resource routes BEFORE generic /:id routes
	calendars.Get("/:id/shared-with", s.GetSharedWith)
	calendars.Post("/:id/share", s.ShareCalendar)
	calendars.Delete("/:id/share/:userId", s.UnshareCalendar)
	calendars.Get("/:id/export.ics", s.ExportCalendarICS)
	calendars.Get("/:id/events", s.GetCalendarEvents)
	calendars.Post("/:id/events", s.CreateEvent)
	calendars.Get("/:id/availability", s.GetAggregatedAvailability)
	calendars.Post("/:id/availability",
		middleware.RateLimit(s.redis, 30, time.Minute, "submit_availability"), s.SubmitAvailability)
	calendars.Get("/:id", s.GetCalendar)
	calendars.Put("/:id", s.UpdateCalendar)
	calendars.Delete("/:id", s.DeleteCalendar)

	// Event routes
	events := protected.Group("/events")
	events.Get("/", s.GetEvents)
	events.Get("/:id", s.GetEvent)
	events.Put("/:id", s.UpdateEvent)
	events.Delete("/:id", s.DeleteEvent)

	// Availability routes
	availability := protected.Group("/availability")
	availability.Delete("/:id", s.DeleteAvailability)

	// Friend routes
	friends := protected.Group("/friends")
	friends.Get("/", s.GetFriends)
	friends.Post("/:userId",
		middleware.RateLimit(s.redis, 5, 5*time.Minute, "friend_request"), s.RequestFriend)
	friends.Delete("/:id", s.RemoveFriend)

	// Holidays
	protected.Get("/holidays", s.GetHolidays)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/stats/users", s.GetUserStats)
	admin.Get("/stats/calendars", s.GetCalendarStats)
	admin.Get("/stats/events", s.GetEventStats)
	admin.Get("/analytics/dashboard", s.GetAnalyticsDashboard)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	overall := "healthy"
	status := fiber.StatusOK
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		overall = "degraded"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Daygrid",
		"version": "1.0.0",
		"status":  overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Revoked tokens: logout writes the jti to a redis blacklist.
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if s.isTokenRevoked(c.Context(), jti) {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has been revoked"))
			}
			c.Locals("tokenJTI", jti)
		}
		if exp, exists := claims["exp"].(float64); exists {
			c.Locals("tokenExp", int64(exp))
		}

		// Store user ID in context
		c.Locals("userID", uint(userID))

		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired gates a route group to users with the admin flag. It must
// run after AuthRequired.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		if !user.IsAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// Shutdown closes the server's database and redis handles.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
