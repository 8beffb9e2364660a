package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nppdeals/inventory-platform/docs"
	"github.com/nppdeals/inventory-platform/internal/api/handlers"
	"github.com/nppdeals/inventory-platform/internal/api/middleware"
	"github.com/nppdeals/inventory-platform/internal/cache"
	"github.com/nppdeals/inventory-platform/internal/catalog"
	"github.com/nppdeals/inventory-platform/internal/config"
	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/health"
	"github.com/nppdeals/inventory-platform/internal/metrics"
	"github.com/nppdeals/inventory-platform/internal/models"
	repository "github.com/nppdeals/inventory-platform/internal/repositories"
	service "github.com/nppdeals/inventory-platform/internal/services"
	"github.com/nppdeals/inventory-platform/internal/telemetry"
	"github.com/nppdeals/inventory-platform/pkg/sendgrid"
	httpSwagger "github.com/swaggo/http-swagger"
)

const version = "1.0.0"

// @title						NPP Inventory Platform API
// @version					1.0
// @description				Product inventory, bulk edits with undo, exports and the public catalog.
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and the JWT.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel, version)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if err := repos.Migrate(ctx); err != nil {
		slog.Error("❌ Error applying schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	jwtKey := []byte(cfg.Security.JWTKey)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName,
		sendgrid.WithBaseURL(cfg.SendGrid.BaseURL),
	)

	productService := service.NewProductService(repos.Product, productCache, cfg.Cache.DefaultTTL)
	importService := service.NewImportService(productService, repos.Product, cfg.Export.ExportLocation())
	bulkService := service.NewBulkService(productService, importService, cfg.Bulk, metrics.BulkObserver{})
	userService := service.NewUserService(repos.User, repository.NewRateLimitRepo(redisClient, cfg.RateConfig), jwtKey,
		time.Duration(cfg.Security.JWTExpiryHours)*time.Hour)
	preferencesService := service.NewPreferencesService(repository.NewPreferencesRepo(redisClient), cfg.Export.Timezone)
	catalogService := service.NewCatalogService(productService, catalog.NewEngine())
	exportService := service.NewExportService(productService, preferencesService)
	notificationService := service.NewNotificationService(repos.Notification, productService, emailService, cfg.SendGrid.DraftRecipients)

	seedAdmin(ctx, cfg, userService)

	productHandler := handlers.NewProductHandler(productService, catalogService)
	bulkHandler := handlers.NewBulkHandler(bulkService)
	exportHandler := handlers.NewExportHandler(exportService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	userHandler := handlers.NewUserHandler(userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	preferencesHandler := handlers.NewPreferencesHandler(preferencesService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, version)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", version))

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/refresh", userHandler.Refresh())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))

	routerMux.HandleFunc("GET /api/v1/products", authMiddleware.Authenticate(productHandler.ListProducts()))
	routerMux.HandleFunc("GET /api/v1/products/all", authMiddleware.Authenticate(productHandler.ListAllProducts()))
	routerMux.HandleFunc("GET /api/v1/products/search", authMiddleware.Authenticate(productHandler.SearchProducts()))
	routerMux.HandleFunc("GET /api/v1/products/view", authMiddleware.Authenticate(productHandler.ProductView()))
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.GetProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.ReplaceProduct()))
	routerMux.HandleFunc("PATCH /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.PatchProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.DeleteProduct()))
	routerMux.HandleFunc("POST /api/v1/products/{id}/out-of-stock", authMiddleware.Authenticate(productHandler.MarkOutOfStock()))

	routerMux.HandleFunc("POST /api/v1/products/bulk/edit", authMiddleware.Authenticate(bulkHandler.BulkEdit()))
	routerMux.HandleFunc("POST /api/v1/products/bulk/stock", authMiddleware.Authenticate(bulkHandler.BulkStock()))
	routerMux.HandleFunc("POST /api/v1/products/bulk/undo", authMiddleware.Authenticate(bulkHandler.Undo()))
	routerMux.HandleFunc("GET /api/v1/products/bulk/undo", authMiddleware.Authenticate(bulkHandler.History()))
	routerMux.HandleFunc("POST /api/v1/products/upload", authMiddleware.Authenticate(bulkHandler.Upload()))
	routerMux.HandleFunc("POST /api/v1/products/export", authMiddleware.Authenticate(exportHandler.ExportProducts()))

	routerMux.HandleFunc("POST /api/v1/products/{id}/send-email", authMiddleware.Authenticate(notificationHandler.SendProductEmail()))
	routerMux.HandleFunc("POST /api/v1/products/send-group-email", authMiddleware.Authenticate(notificationHandler.SendGroupEmail()))
	routerMux.HandleFunc("GET /api/v1/notifications", authMiddleware.Authenticate(notificationHandler.ListNotifications()))

	routerMux.HandleFunc("GET /api/v1/catalog", catalogHandler.PublicCatalog())
	routerMux.HandleFunc("GET /api/v1/catalog/filters", catalogHandler.FilterOptions())
	routerMux.HandleFunc("POST /api/v1/catalog/quote", catalogHandler.Quote())
	routerMux.HandleFunc("GET /api/v1/vendors/performance", authMiddleware.Authenticate(catalogHandler.VendorPerformance()))

	routerMux.HandleFunc("GET /api/v1/preferences", authMiddleware.Authenticate(preferencesHandler.GetPreferences()))
	routerMux.HandleFunc("PUT /api/v1/preferences", authMiddleware.Authenticate(preferencesHandler.SavePreferences()))

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining; metrics sits next to the mux so it sees the matched pattern.
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = telemetry.Handler(handler, "inventory-platform")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}

// seedAdmin creates the configured admin account on first start.
func seedAdmin(ctx context.Context, cfg *config.Config, users service.UserService) {
	if cfg.Security.AdminUsername == "" || cfg.Security.AdminPassword == "" {
		return
	}

	_, err := users.Register(ctx, &models.RegisterRequest{
		Username: cfg.Security.AdminUsername,
		Email:    cfg.Security.AdminEmail,
		Password: cfg.Security.AdminPassword,
	})

	var appErr *appErrors.AppError
	switch {
	case err == nil:
		slog.Info("Admin account created", slog.String("username", cfg.Security.AdminUsername))
	case errors.As(err, &appErr) && appErr.Code == appErrors.ErrCodeDuplicateEntry:
		slog.Debug("Admin account already exists", slog.String("username", cfg.Security.AdminUsername))
	default:
		slog.Error("⚠️ Failed to create admin account", slog.String("error", err.Error()))
	}
}
