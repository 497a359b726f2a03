package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/expenseops/ticketing-system/internal/api/handler"
	"github.com/expenseops/ticketing-system/internal/api/middleware"
	"github.com/expenseops/ticketing-system/internal/core/credentials"
	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/ports"
	healthhandlers "github.com/expenseops/ticketing-system/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs. Services are
// constructed by the caller and passed in explicitly; the router holds no
// globals.
type Dependencies struct {
	Signer  *credentials.TokenSigner
	Auth    ports.AuthService
	Tickets ports.TicketService
	Users   ports.UserService
	Mongo   *mongo.Database
	Redis   *redis.Client
	Logger  zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("ticketing"))

	authHandler := handler.NewAuthHandler(deps.Auth)
	ticketHandler := handler.NewTicketHandler(deps.Tickets)
	userHandler := handler.NewUserHandler(deps.Users)
	authenticate := middleware.Auth(deps.Signer)

	// --- Public routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Ticket routes (employees and managers) ---
	tickets := e.Group("/ticket", authenticate, middleware.RBAC(domain.RoleEmployee, domain.RoleManager))
	tickets.GET("", ticketHandler.List)
	tickets.GET("/:ticket_pkey", ticketHandler.Get)
	tickets.POST("", ticketHandler.Create)
	tickets.PUT("/:ticket_pkey", ticketHandler.Update)
	tickets.DELETE("/:ticket_pkey", ticketHandler.Delete)

	// --- User administration (managers only) ---
	users := e.Group("/users", authenticate, middleware.RBAC(domain.RoleManager))
	users.GET("", userHandler.List)
	users.GET("/:user_pkey", userHandler.Get)
	users.POST("", userHandler.Create)
	users.PUT("/:user_pkey", userHandler.Update)
	users.DELETE("", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics scrape endpoint ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
