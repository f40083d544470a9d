package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/logging"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/server"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logging ---
	logger, err := logging.Setup(logging.Options{Mode: cfg.LogMode, Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// --- Product store ---
	productRepo, closeStore, err := openStore(cfg)
	if err != nil {
		zap.S().Fatalf("Failed to open product store: %v", err)
	}
	defer closeStore()

	if cfg.DBSeed {
		seedProducts(productRepo)
	}

	// --- Product events (optional) ---
	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			zap.S().Warnf("Product events disabled: %v", err)
		} else {
			defer mqClient.Close()
			publisher = services.NewQueuePublisher(mqClient)
			if cfg.RabbitMQConsume {
				err := mqClient.Consume(func(msg amqp.Delivery) error {
					return services.LogProductEvent(msg.Body)
				})
				if err != nil {
					zap.S().Warnf("Failed to start product event consumer: %v", err)
				}
			}
		}
	}

	app := server.New(productRepo, server.Options{Publisher: publisher, AccessLog: true})

	// --- Start HTTP Server ---
	zap.S().Infof("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			zap.S().Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	zap.S().Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		zap.S().Errorf("Error during Fiber shutdown: %v", err)
	}
	zap.S().Info("Server gracefully stopped")
}

// openStore returns the repository selected by DB_DRIVER and a func releasing it.
func openStore(cfg *config.Config) (repositories.ProductRepository, func(), error) {
	if cfg.DBDriver == config.DriverMemory {
		return repositories.NewInMemoryProductRepository(), func() {}, nil
	}

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
	}
	zap.S().Infof("Database connection successful, type: %s", cfg.DBDriver)

	closeFn := func() {
		if err := database.Close(db); err != nil {
			zap.S().Errorf("Error closing database: %v", err)
		}
	}
	return repositories.NewGORMProductRepository(db), closeFn, nil
}

// seedProducts populates an empty product store with some initial data.
func seedProducts(repo repositories.ProductRepository) {
	ctx := context.Background()
	existing, err := repo.GetAll(ctx)
	if err != nil {
		zap.S().Errorf("Error checking product store before seeding: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	products := []models.Product{
		{Name: "Laptop", Description: "High performance laptop", Category: "Electronics", Subcategory: "Computers", SellerName: "Tech Store Inc.", Price: decimal.RequireFromString("1200.00"), Quantity: 10},
		{Name: "Keyboard", Description: "Mechanical keyboard", Category: "Electronics", Subcategory: "Accessories", SellerName: "Tech Store Inc.", Price: decimal.RequireFromString("75.00"), Quantity: 25},
		{Name: "Mouse", Description: "Ergonomic wireless mouse", Category: "Electronics", Subcategory: "Accessories", SellerName: "Desk Co", Price: decimal.RequireFromString("25.00"), Quantity: 0},
	}

	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			zap.S().Errorf("Error seeding product %s: %v", products[i].Name, err)
		} else {
			zap.S().Infof("Seeded product: %s (ID: %d)", products[i].Name, products[i].ID)
		}
	}
}
