package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/webstore/checkout-orchestrator/internal/api"
	"github.com/webstore/checkout-orchestrator/internal/config"
	"github.com/webstore/checkout-orchestrator/internal/events"
	"github.com/webstore/checkout-orchestrator/internal/gateway"
	"github.com/webstore/checkout-orchestrator/internal/indexer"
	"github.com/webstore/checkout-orchestrator/internal/mailer"
	"github.com/webstore/checkout-orchestrator/internal/repository"
	"github.com/webstore/checkout-orchestrator/internal/service"
	"github.com/webstore/checkout-orchestrator/internal/session"
	"github.com/webstore/checkout-orchestrator/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize telemetry
	if err := telemetry.Init("checkout-orchestrator", cfg.OTLPEndpoint); err != nil {
		panic(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	}
	defer telemetry.Shutdown(context.Background())

	telemetry.Logger.Info("Starting Checkout Orchestrator")

	// Connect to PostgreSQL
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		telemetry.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize order repository
	repo := repository.NewOrderRepository(db)
	if err := repo.InitDB(); err != nil {
		telemetry.Logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

	sessions := session.NewStore(redisClient, 24*time.Hour)
	orderIndexer := indexer.NewOrderIndexer(redisClient, repo)

	// Rebuild the order index at boot; a failure is non-fatal.
	if err := orderIndexer.ReindexOrders(context.Background()); err != nil {
		telemetry.Logger.Error("Startup order reindex failed", zap.Error(err))
	}

	// Kafka order event publisher
	publisher := events.NewPublisher(cfg.KafkaBrokers)
	defer publisher.Close()

	payway := gateway.NewPayWayClient(cfg.PayWay)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)

	orchestrator := service.NewOrchestrator(
		repo, payway, sessions, orderIndexer, smtpMailer, publisher,
		payway.Name(), cfg.CartTitle,
	)

	// Setup Gin router
	r := api.NewRouter(orchestrator, repo, sessions)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		telemetry.Logger.Info("Checkout Orchestrator starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			telemetry.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	telemetry.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		telemetry.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	telemetry.Logger.Info("Server exited")
}
