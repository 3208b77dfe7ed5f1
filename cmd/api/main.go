package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go-gestion-ws/internal/alert"
	"go-gestion-ws/internal/auth"
	"go-gestion-ws/internal/handler"
	"go-gestion-ws/internal/middleware"
	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/service"
	"go-gestion-ws/internal/state"
	"go-gestion-ws/internal/store"
	"go-gestion-ws/internal/ws"
	"go-gestion-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	ctx := context.Background()

	// 2. Snapshot store: Redis when configured, local JSON files otherwise
	snapshots := newSnapshotStore()

	// 3. Identity directory: Postgres when configured, demo table otherwise
	directory := newDirectory()

	// 4. WebSocket Hub (confirmations and alerts reach the UI through it)
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Domain state, hydrated from the snapshots
	appState, err := state.New(ctx, snapshots)
	if err != nil {
		log.Fatal("Failed to hydrate state: ", err)
	}

	// Stock alerts observe the product collection
	evaluator := alert.NewEvaluator(wsHub)
	appState.OnProductsChanged(evaluator.Evaluate)
	evaluator.Evaluate(appState.Products())

	// 6. Session provider, restoring any prior session
	provider := auth.NewProvider(directory, snapshots, wsHub)
	provider.Restore(ctx)

	// 7. Dependency Injection (Wiring Layers)
	settingsService := service.NewSettingsService(appState, snapshots, wsHub)
	invService := service.NewInventoryService(appState, wsHub)
	clientService := service.NewClientService(appState, wsHub)
	invoiceService := service.NewInvoiceService(appState, settingsService, wsHub)
	reportService := service.NewReportService(appState)

	authHandler := handler.NewAuthHandler(provider)
	invHandler := handler.NewInventoryHandler(invService)
	clientHandler := handler.NewClientHandler(clientService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	reportHandler := handler.NewReportHandler(reportService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	// 8. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Gestión PyME v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 9. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/session", authHandler.Session)
	authGroup.Post("/logout", middleware.RequireAuth(directory), authHandler.Logout)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication; role sets mirror the page
	// gating of the UI (no role set = any authenticated role).
	protected := api.Group("", middleware.RequireAuth(directory))

	// Dashboard / report routes
	protected.Get("/dashboard/stats", reportHandler.GetDashboardStats)
	reports := protected.Group("/reports", middleware.RequireRoles(wsHub, model.RoleAdmin, model.RoleSupervisor))
	reports.Get("/sales", reportHandler.GetMonthlySales)
	reports.Get("/categories", reportHandler.GetCategoryDistribution)
	reports.Get("/clients", reportHandler.GetTopClients)

	// Product routes
	protected.Get("/products", invHandler.GetProducts)
	protected.Post("/products", invHandler.CreateProduct)
	protected.Put("/products/:id", invHandler.UpdateProduct)
	protected.Delete("/products/:id", invHandler.DeleteProduct)

	// Client routes
	protected.Get("/clients", clientHandler.GetClients)
	protected.Post("/clients", clientHandler.CreateClient)
	protected.Put("/clients/:id", clientHandler.UpdateClient)
	protected.Delete("/clients/:id", clientHandler.DeleteClient)

	// Invoice routes
	protected.Get("/invoices", invoiceHandler.GetInvoices)
	protected.Get("/invoices/:id", invoiceHandler.GetInvoice)
	protected.Get("/invoices/:id/pdf", invoiceHandler.ExportPDF)
	protected.Post("/invoices", invoiceHandler.CreateInvoice)
	protected.Put("/invoices/:id", invoiceHandler.UpdateInvoice)
	protected.Delete("/invoices/:id", invoiceHandler.DeleteInvoice)

	// Settings routes (admin only)
	settings := protected.Group("/settings", middleware.RequireRoles(wsHub, model.RoleAdmin))
	settings.Get("", settingsHandler.GetSettings)
	settings.Put("", settingsHandler.UpdateSettings)
	settings.Post("/reset-database", settingsHandler.ResetDatabase)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 10. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// newSnapshotStore picks the persistence variant: Redis when REDIS_ADDR is
// set, a local JSON data directory otherwise.
func newSnapshotStore() store.Store {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		rs, err := store.NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), db)
		if err != nil {
			log.Fatal("Failed to connect to Redis: ", err)
		}
		log.Println("Snapshot store: redis @", addr)
		return rs
	}

	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "data"
	}
	fs, err := store.NewFileStore(dir)
	if err != nil {
		log.Fatal("Failed to open data dir: ", err)
	}
	log.Println("Snapshot store: files @", dir)
	return fs
}

// newDirectory picks the identity variant: a Postgres user directory when a
// database is configured, the fixed demo table otherwise.
func newDirectory() auth.Directory {
	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		return auth.NewLocalDirectory()
	}

	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.User{}, &model.UserRole{}); err != nil {
		log.Printf("Warning: automigrate failed: %v", err)
	}
	auth.SeedDemoUsers(db)
	return auth.NewRemoteDirectory(db)
}
