package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assistant/internal/config"
	"assistant/internal/domain"
	"assistant/internal/handler"
	"assistant/internal/middleware"
	"assistant/internal/repository"
	"assistant/internal/repository/postgres"
	"assistant/internal/repository/static"
	"assistant/internal/service"
	"assistant/internal/weather"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const referenceLoadTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, cfgErr := config.Load()

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Assistant Bot")

	if cfgErr != nil {
		logger.Fatal("Failed to load config", zap.Error(cfgErr))
	}

	logger.Info("Configuration loaded successfully",
		zap.Bool("database", cfg.UseDatabase()),
		zap.Duration("weather_cache_ttl", cfg.Weather.CacheTTL),
		zap.Duration("session_ttl", cfg.SessionTTL),
	)

	// Reference data: compiled-in tables or the database
	var source repository.ReferenceSource = static.NewSource()
	if cfg.UseDatabase() {
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		source = postgres.NewSource(db)
	}

	cities, products, err := loadReferenceData(source)
	if err != nil {
		logger.Fatal("Failed to load reference data", zap.Error(err))
	}

	logger.Info("Reference data loaded",
		zap.Int("cities", len(cities)),
		zap.Int("products", len(products)),
	)

	// Initialize services
	var fetcher weather.Fetcher = weather.NewClient(cfg.Weather.URL, cfg.Weather.APIKey, cfg.Weather.Timeout)
	if cfg.Weather.CacheTTL > 0 {
		fetcher = weather.NewCachedFetcher(fetcher, cfg.Weather.CacheSize, cfg.Weather.CacheTTL)
	}

	weatherService := service.NewWeatherService(cities, fetcher, logger)
	productService := service.NewProductService(products)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Chat() != nil {
				fields = append(fields, zap.Int64("chat_id", c.Chat().ID))
			}
			logger.Error("Update failed", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	// Long polling doesn't work while a webhook is set
	if err := bot.RemoveWebhook(true); err != nil {
		logger.Warn("Failed to remove webhook", zap.Error(err))
	}

	if err := bot.SetCommands(handler.Commands()); err != nil {
		logger.Warn("Failed to register bot commands", zap.Error(err))
	}

	bot.Use(middleware.Recover(logger), middleware.Logging(logger))

	// Initialize handler
	h := handler.NewHandler(bot, weatherService, productService, cfg.SessionTTL, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()

	logger.Info("Bot stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg != nil && cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadReferenceData reads the city table and the catalog once
func loadReferenceData(source repository.ReferenceSource) ([]domain.City, []domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), referenceLoadTimeout)
	defer cancel()

	cities, err := source.ListCities(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cities: %w", err)
	}
	if len(cities) == 0 {
		return nil, nil, errors.New("city table is empty")
	}

	products, err := source.ListProducts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load products: %w", err)
	}

	return cities, products, nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Reference data is read once at startup
		db.SetMaxOpenConns(2)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations creates and seeds the reference tables
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
