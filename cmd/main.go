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
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"

	_ "github.com/sbilibin2017/bookly/docs"
	"github.com/sbilibin2017/bookly/internal/handlers"
	"github.com/sbilibin2017/bookly/internal/jwt"
	"github.com/sbilibin2017/bookly/internal/logger"
	"github.com/sbilibin2017/bookly/internal/middlewares"
	"github.com/sbilibin2017/bookly/internal/repositories"
	"github.com/sbilibin2017/bookly/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title bookly API
// @version 1.0.0
// @description Book catalog with JWT authentication
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		databaseURL, pgMaxOpenConns, pgMaxIdleConns,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtAlgorithm, jwtAccessExp, jwtRefreshExp,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		databaseURL, pgMaxOpenConns, pgMaxIdleConns,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtAlgorithm, jwtAccessExp, jwtRefreshExp,
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

// parseConfig loads environment variables from a file and returns
// the application, database, Kafka, logging and JWT configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	databaseURL string, pgMaxOpenConns, pgMaxIdleConns int,
	kafkaBrokers []string, kafkaTopic string,
	jwtSecretKey, jwtAlgorithm string, jwtAccessExpSecond, jwtRefreshExpSecond int,
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

	// PostgreSQL config
	pgHost := getEnv("POSTGRES_HOST", "localhost")
	pgPort := getEnv("POSTGRES_PORT", "5432")
	pgUser := getEnv("POSTGRES_USER", "user")
	pgPassword := getEnv("POSTGRES_PASSWORD", "password")
	pgDB := getEnv("POSTGRES_DB", "bookly")
	if _, err = strconv.Atoi(pgPort); err != nil {
		return
	}
	databaseURL = getEnv("DATABASE_URL",
		fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, pgHost, pgPort, pgDB))
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Kafka config; no brokers disables book events
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			kafkaBrokers = append(kafkaBrokers, b)
		}
	}
	kafkaTopic = getEnv("KAFKA_TOPIC", "book-events")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	jwtAlgorithm = getEnv("JWT_ALGORITHM", jwt.DefaultAlgorithm)
	if jwtAccessExpSecond, err = strconv.Atoi(getEnv("JWT_ACCESS_EXP_SECOND", "3600")); err != nil {
		return
	}
	if jwtRefreshExpSecond, err = strconv.Atoi(getEnv("JWT_REFRESH_EXP_SECOND", "172800")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Kafka writer and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	databaseURL string, pgMaxOpenConns, pgMaxIdleConns int,
	kafkaBrokers []string, kafkaTopic string,
	jwtSecretKey, jwtAlgorithm string, jwtAccessExpSecond, jwtRefreshExpSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	db, err := sqlx.ConnectContext(ctx, "pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// Kafka writer for book events
	var kafkaWriter services.KafkaWriter
	if len(kafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(kafkaBrokers...),
			Topic:                  kafkaTopic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			MaxAttempts:            3,
			WriteTimeout:           5 * time.Second,
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infow("Publishing book events to Kafka", "brokers", kafkaBrokers, "topic", kafkaTopic)
	}

	// Initialize JWT codec
	codec, err := jwt.New(
		jwt.WithSecretKey(jwtSecretKey),
		jwt.WithAlgorithm(jwtAlgorithm),
		jwt.WithAccessExpiration(time.Duration(jwtAccessExpSecond)*time.Second),
		jwt.WithRefreshExpiration(time.Duration(jwtRefreshExpSecond)*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to configure JWT: %w", err)
	}

	authService, bookService := newServices(db, codec, kafkaWriter)

	r := newRouter(db, codec, authService, bookService,
		fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort))

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

// newServices builds the repositories on top of the request transaction and the services using them.
func newServices(db *sqlx.DB, codec *jwt.JWT, kafkaWriter services.KafkaWriter) (*services.AuthService, *services.BookService) {
	userReadRepo := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	bookReadRepo := repositories.NewBookReadRepository(db, middlewares.GetTxFromContext)
	bookWriteRepo := repositories.NewBookWriteRepository(db, middlewares.GetTxFromContext)

	return services.NewAuthService(userReadRepo, userWriteRepo, codec),
		services.NewBookService(bookReadRepo, bookWriteRepo, kafkaWriter)
}

// newRouter mounts every endpoint under /api/v1. The auth guard runs before
// the transaction middleware so rejected requests never open a transaction.
func newRouter(
	db *sqlx.DB,
	codec *jwt.JWT,
	authService *services.AuthService,
	bookService *services.BookService,
	swaggerURL string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(middlewares.TxMiddleware(db))
			r.Post("/signup", handlers.NewSignupHandler(authService))
			r.Post("/login", handlers.NewLoginHandler(authService))
		})

		r.With(middlewares.RefreshTokenMiddleware(codec)).
			Get("/refresh_token", handlers.NewRefreshTokenHandler(authService))

		// Protected routes with access token middleware
		r.Route("/books", func(r chi.Router) {
			r.Use(middlewares.AccessTokenMiddleware(codec))
			r.Use(middlewares.TxMiddleware(db))
			r.Get("/", handlers.NewListBooksHandler(bookService))
			r.Post("/", handlers.NewCreateBookHandler(bookService))
			r.Get("/{"+handlers.BookUIDParam+"}", handlers.NewGetBookHandler(bookService))
			r.Patch("/{"+handlers.BookUIDParam+"}", handlers.NewUpdateBookHandler(bookService))
			r.Delete("/{"+handlers.BookUIDParam+"}", handlers.NewDeleteBookHandler(bookService))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))

	return r
}
