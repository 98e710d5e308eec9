package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"

	"github.com/saiindkan/sweets-n-snacks-production/internal/cart"
	"github.com/saiindkan/sweets-n-snacks-production/internal/config"
	"github.com/saiindkan/sweets-n-snacks-production/internal/gateway"
	"github.com/saiindkan/sweets-n-snacks-production/internal/handlers"
	"github.com/saiindkan/sweets-n-snacks-production/internal/messaging"
	"github.com/saiindkan/sweets-n-snacks-production/internal/pricing"
	"github.com/saiindkan/sweets-n-snacks-production/internal/repository"
	"github.com/saiindkan/sweets-n-snacks-production/internal/service"
)

func main() {
	log.Println("🚀 Storefront API starting...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Database connection
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}
	defer db.Close()

	// RabbitMQ connection
	rabbitConfig := messaging.NewRabbitMQConfig()
	rabbitClient := messaging.NewRabbitMQClient(rabbitConfig)

	if err := rabbitClient.Connect(); err != nil {
		log.Fatalf("RabbitMQ connection error: %v", err)
	}
	defer rabbitClient.Close()

	// Dependencies
	publisher := messaging.NewPublisher(rabbitClient)
	consumer := messaging.NewConsumer(rabbitClient, "storefront-notifications", "storefront-api")

	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	productRepo := repository.NewProductRepository(db)
	eventLedger := repository.NewEventLedger(db)

	stripeGateway := gateway.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)

	mailer := service.NewSMTPMailer(cfg.SMTP)
	notificationService := service.NewNotificationService(mailer, cfg.SiteName, cfg.SiteURL)
	orderService := service.NewOrderService(orderRepo, paymentRepo, eventLedger, publisher)
	checkoutService := service.NewCheckoutService(orderRepo, stripeGateway, pricing.PolicyByName(cfg.Pricing.Policy))
	notificationWorker := service.NewNotificationWorker(orderRepo, notificationService)

	cartSessions := cart.NewSessionStore()

	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	webhookHandler := handlers.NewWebhookHandler(stripeGateway, orderService)
	emailHandler := handlers.NewEmailHandler(notificationService)
	cartHandler := handlers.NewCartHandler(cartSessions)
	catalogHandler := handlers.NewCatalogHandler(productRepo)

	// Fiber app setup
	app := setupFiberApp()
	setupRoutes(app, checkoutHandler, orderHandler, webhookHandler, emailHandler, cartHandler, catalogHandler)

	// Notification worker consumes order lifecycle events
	if err := consumer.ConsumeEvents(notificationWorker.RoutingKeys(), notificationWorker.HandleOrderEvent); err != nil {
		log.Fatalf("Notification consumer start error: %v", err)
	}

	// Pending-order sweeper
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	if cfg.Sweeper.Enabled {
		sweeper := service.NewSweeper(orderRepo, stripeGateway, orderService, cfg.Sweeper)
		go sweeper.Run(sweepCtx)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("🛑 Storefront API closing...")
		stopSweeper()
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("🌍 Storefront API listening: http://localhost:%s", cfg.Port)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server start error: %v", err)
	}
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	log.Printf("✅ Database connected: %s", cfg.Database.Name)
	return db, nil
}

func setupFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Storefront API v1.0",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} - ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID,X-Cart-ID,Stripe-Signature",
	}))

	return app
}

func setupRoutes(
	app *fiber.App,
	checkoutHandler *handlers.CheckoutHandler,
	orderHandler *handlers.OrderHandler,
	webhookHandler *handlers.WebhookHandler,
	emailHandler *handlers.EmailHandler,
	cartHandler *handlers.CartHandler,
	catalogHandler *handlers.CatalogHandler,
) {
	// Integration endpoints keep the paths the storefront client and the
	// payment processor are already configured with.
	app.Post("/create-payment-intent", checkoutHandler.CreatePaymentIntent)
	app.Post("/update-order-status", orderHandler.UpdateOrderStatus)
	app.Post("/webhook", webhookHandler.HandleWebhook)
	app.Post("/send-email", emailHandler.SendEmail)

	// API v1 routes
	api := app.Group("/api/v1")

	api.Get("/health", orderHandler.HealthCheck)

	orders := api.Group("/orders")
	orders.Get("/", orderHandler.GetOrdersByEmail) // GET /api/v1/orders?email=
	orders.Get("/:id", orderHandler.GetOrderByID)  // GET /api/v1/orders/:id

	cartGroup := api.Group("/cart")
	cartGroup.Get("/", cartHandler.GetCart)
	cartGroup.Delete("/", cartHandler.ClearCart)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:product_id", cartHandler.SetQuantity)
	cartGroup.Delete("/items/:product_id", cartHandler.RemoveItem)

	api.Post("/notifications/welcome", emailHandler.SendWelcome)

	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/:id", catalogHandler.GetProductByID)
	api.Get("/categories", catalogHandler.ListCategories)

	// Route not found
	app.Use("*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Error: %v", err)

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
