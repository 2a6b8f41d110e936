package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"couriertrack/internal/account"
	"couriertrack/internal/auth"
	"couriertrack/internal/config"
	"couriertrack/internal/courier"
	"couriertrack/internal/courier/ports"
	"couriertrack/internal/infrastructure/kafka"
	"couriertrack/internal/infrastructure/logger"
	"couriertrack/internal/infrastructure/mysql"
	"couriertrack/internal/report"
	"couriertrack/internal/server"
)

type statusPublisher interface {
	ports.EventPublisher
	Close() error
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := mysql.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			zapLogger.Fatal("ensuring schema", zap.Error(err))
		}
		zapLogger.Info("schema ensured")
	}

	publisher := newPublisher(cfg.Kafka, zapLogger)
	defer func() {
		if err := publisher.Close(); err != nil {
			zapLogger.Warn("closing status publisher", zap.Error(err))
		}
	}()

	router := server.NewRouter(server.Controllers{
		Couriers:  courier.NewModule(db, cfg, publisher, zapLogger),
		Directory: account.NewModule(db, zapLogger),
		Reports:   report.NewModule(db, zapLogger),
		Login:     auth.NewLoginController(auth.NewStaticCredentialProvider(cfg.Auth, zapLogger), zapLogger),
	}, db, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
		return
	}

	zapLogger.Info("server stopped gracefully")
}

func newPublisher(cfg config.KafkaConfig, logger *zap.Logger) statusPublisher {
	if len(cfg.Brokers) == 0 {
		logger.Info("no kafka brokers configured, status events disabled")
		return kafka.NopPublisher{}
	}
	logger.Info("publishing status events", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.StatusTopic))
	return kafka.NewStatusPublisher(cfg.Brokers, cfg.StatusTopic, logger)
}
