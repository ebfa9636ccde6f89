package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kurir-pintar/api/config"
	_ "kurir-pintar/api/docs"
	"kurir-pintar/api/routeopt"
	"kurir-pintar/api/server"
	"kurir-pintar/api/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	st, err := store.New(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer st.Close()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := st.Migrate(context.Background()); err != nil {
			log.Fatal("Migration failed:", err)
		}
		return
	}

	optimizer, err := routeopt.NewClient(cfg.RouteAI)
	if err != nil {
		log.Fatal("Failed to configure route optimizer:", err)
	}

	srv := server.NewServer(cfg, st, optimizer)
	if err := srv.InitConnections(); err != nil {
		log.Fatal("Failed to initialize connections:", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: server.ErrorHandler,
	})

	// Middlewares
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(srv.MetricsMiddleware())

	setupRoutes(app, srv)

	// Swagger and metrics
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Order-tracking WebSocket
	app.Use("/track", srv.ValidateWSToken)
	app.Get("/track", websocket.New(srv.HandleTrackingWebSocket))

	log.Printf("Server starting on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}

func setupRoutes(app *fiber.App, srv *server.Server) {
	// Health check
	app.Get("/health", server.HealthCheck)

	// API v1, scoped to the token's user
	v1 := app.Group("/api/v1", srv.ValidateToken)

	// Customers
	customers := v1.Group("/customers")
	customers.Get("/", srv.ListCustomers)
	customers.Post("/", srv.CreateCustomer)
	customers.Put("/:id", srv.UpdateCustomer)
	customers.Delete("/:id", srv.DeleteCustomer)

	// Orders
	orders := v1.Group("/orders")
	orders.Get("/", srv.ListOrders)
	orders.Post("/", srv.CreateOrder)
	orders.Get("/:id", srv.GetOrder)
	orders.Put("/:id/status", srv.UpdateOrderStatus)
	orders.Delete("/:id", srv.DeleteOrder)
	orders.Put("/:id/destinations/:seq/delivered", srv.MarkDestinationDelivered)

	// Pricing
	pricing := v1.Group("/pricing")
	pricing.Get("/", srv.ListPricingTiers)
	pricing.Post("/", srv.CreatePricingTier)
	pricing.Delete("/:id", srv.DeletePricingTier)
	pricing.Post("/quote", srv.QuotePrice)

	// Dashboard
	v1.Get("/dashboard/stats", srv.DashboardStats)

	// Route optimization
	v1.Post("/routes/optimize", srv.OptimizeRoute)
}
