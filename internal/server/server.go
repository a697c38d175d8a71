package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"

	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/upload"
)

// Deps are the process-scoped collaborators the HTTP app is built from.
type Deps struct {
	Store     *repositories.Store
	Uploads   *upload.Store
	Events    services.EventPublisher // optional
	Metrics   *metrics.Metrics
	Log       *logrus.Logger
	RateLimit middleware.RateLimitConfig
}

// New builds the Fiber app: global middleware, API routes and the root,
// health and metrics endpoints.
func New(d Deps) *fiber.App {
	authService := services.NewAuthService(d.Store.Users, d.Events, d.Log)
	productService := services.NewProductService(d.Store.Products, d.Events, d.Log)

	authHandler := handlers.NewAuthHandler(authService, d.Uploads, d.Metrics, d.Log)
	productHandler := handlers.NewProductHandler(productService, d.Metrics, d.Log)

	app := fiber.New(fiber.Config{
		AppName: "storefront",
		// Leave room for the form fields so oversized images reach the
		// handler's own size check instead of a bare 413.
		BodyLimit:             int(d.Uploads.MaxSize()) + 1<<20,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(d.Log))
	app.Use(middleware.Metrics(d.Metrics))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.CORS())
	app.Use(middleware.RateLimit(d.RateLimit))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to the server!")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := d.Store.Ping(c.UserContext()); err != nil {
			d.Log.WithError(err).Warn("health check failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
				"store":  "unreachable",
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  "connected",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))

	authHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app)

	return app
}
