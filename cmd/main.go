package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/ashimkarki/inventory-service/internal/events"
	"github.com/ashimkarki/inventory-service/internal/handlers"
	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/middlewares"
	"github.com/ashimkarki/inventory-service/internal/repositories"
	"github.com/ashimkarki/inventory-service/internal/services"
	"github.com/ashimkarki/inventory-service/internal/sessions"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title inventory-service API
// @version 1.0.0
// @description Session-authenticated product inventory service
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session_id
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel, secureCookies,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisAddr, redisDB, redisPassword, sessionTTLHours,
		kafkaBroker, kafkaTopic,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel, secureCookies,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisAddr, redisDB, redisPassword, sessionTTLHours,
		kafkaBroker, kafkaTopic,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, session store, and event stream configuration.
// An empty REDIS_ADDR selects the in-memory session store; an empty
// KAFKA_BROKER disables event publishing.
func parseConfig(path string) (
	appHost, appPort, logLevel string, secureCookies bool,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisAddr string, redisDB int, redisPassword string, sessionTTLHours int,
	kafkaBroker, kafkaTopic string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	secureCookies = getEnv("APP_SECURE_COOKIES", "false") == "true"

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "inventory")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Session store config
	redisAddr = getEnv("REDIS_ADDR", "")
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if sessionTTLHours, err = strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24")); err != nil {
		return
	}

	// Event stream config
	kafkaBroker = getEnv("KAFKA_BROKER", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "inventory.stock-events")

	return
}

// run initializes the logger, database, session store, event publisher,
// and HTTP server. It sets up routes, applies middleware, and handles
// graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string, secureCookies bool,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisAddr string, redisDB int, redisPassword string, sessionTTLHours int,
	kafkaBroker, kafkaTopic string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", pgHost, pgPort, pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}

	// Session store: Redis when configured, in-memory otherwise
	var store sessions.Store
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		store = sessions.NewRedisStore(rdb, time.Duration(sessionTTLHours)*time.Hour)
		logger.Log.Infof("Sessions stored in Redis at %s", redisAddr)
	} else {
		store = sessions.NewMemoryStore()
		logger.Log.Info("Sessions stored in memory")
	}
	sessionManager := sessions.NewManager(store, secureCookies)

	// Stock event publisher: disabled without a broker
	var kafkaWriter events.KafkaWriter
	if kafkaBroker != "" {
		kafkaWriter = &kafka.Writer{
			Addr:                   kafka.TCP(kafkaBroker),
			Topic:                  kafkaTopic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		}
		logger.Log.Infof("Publishing stock events to %s topic %s", kafkaBroker, kafkaTopic)
	}
	publisher := events.NewPublisher(kafkaWriter)
	defer publisher.Close()

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	productReadRepo := repositories.NewProductReadRepository(db)
	productWriteRepo := repositories.NewProductWriteRepository(db)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo)
	inventoryService := services.NewInventoryService(productReadRepo, productWriteRepo, publisher)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService, sessionManager)
	loginHandler := handlers.NewLoginHandler(authService, sessionManager)
	logoutHandler := handlers.NewLogoutHandler(sessionManager)
	csrfHandler := handlers.NewCSRFTokenHandler(sessionManager)
	flashHandler := handlers.NewFlashHandler(sessionManager)
	availabilityHandler := handlers.NewAvailabilityHandler(authService)
	profileHandler := handlers.NewProfileHandler(authService)
	updateEmailHandler := handlers.NewUpdateEmailHandler(authService, sessionManager)
	changePasswordHandler := handlers.NewChangePasswordHandler(authService, sessionManager)
	createProductHandler := handlers.NewCreateProductHandler(inventoryService, sessionManager)
	updateProductHandler := handlers.NewUpdateProductHandler(inventoryService, sessionManager)
	deleteProductHandler := handlers.NewDeleteProductHandler(inventoryService, sessionManager)
	getProductHandler := handlers.NewGetProductHandler(inventoryService)
	listProductsHandler := handlers.NewListProductsHandler(inventoryService)
	searchProductsHandler := handlers.NewSearchProductsHandler(inventoryService)
	suggestNamesHandler := handlers.NewSuggestNamesHandler(inventoryService)
	productStatsHandler := handlers.NewProductStatsHandler(inventoryService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewares.WithSession(sessionManager))

		// Public routes
		r.Post("/register", registerHandler)
		r.Post("/login", loginHandler)
		r.Post("/logout", logoutHandler)
		r.Get("/csrf", csrfHandler)
		r.Get("/flash", flashHandler)
		r.Get("/availability", availabilityHandler)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireAuth)

			r.Get("/profile", profileHandler)
			r.Get("/products", listProductsHandler)
			r.Get("/products/search", searchProductsHandler)
			r.Get("/products/suggest", suggestNamesHandler)
			r.Get("/products/stats", productStatsHandler)
			r.Get("/products/{id}", getProductHandler)

			// Mutations additionally require the CSRF header
			r.Group(func(r chi.Router) {
				r.Use(middlewares.RequireCSRF(sessionManager))

				r.Put("/profile/email", updateEmailHandler)
				r.Put("/profile/password", changePasswordHandler)
				r.Post("/products", createProductHandler)
				r.Put("/products/{id}", updateProductHandler)
				r.Delete("/products/{id}", deleteProductHandler)
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
