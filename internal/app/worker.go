package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"go-timeoff/internal/allowance"
	"go-timeoff/internal/company"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/leave"
	"go-timeoff/internal/leavetype"
	"go-timeoff/internal/messaging/kafka"
	"go-timeoff/internal/messaging/kafka/producer"
	"go-timeoff/internal/schedule"
	"go-timeoff/internal/shared/connection"
)

// RunWorker drives the two background loops: relaying outbox events to
// Kafka and the yearly allowance carry-over.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(connection.PostgresConfig{
		Host:     os.Getenv("DB_HOST"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Port:     os.Getenv("DB_PORT"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}, 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	companyRepo := company.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	allowanceRepo := allowance.NewRepository(gormDB)

	resolver := schedule.NewResolver(scheduleRepo)
	engine := allowance.NewEngine(allowanceRepo, leaveTypeRepo, leaveRepo, companyRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runCarryOver(ctx, companyRepo, employeeRepo, resolver, engine, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runCarryOver checks once a day whether unused allowance from last year
// still needs to be carried into the current one. The engine skips
// employees that already have a carry-over row, so repeated runs through
// January are harmless.
func runCarryOver(
	ctx context.Context,
	companyRepo company.Repository,
	employeeRepo employee.Repository,
	resolver schedule.Resolver,
	engine *allowance.Engine,
	logger *zap.Logger,
) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		if time.Now().UTC().Month() == time.January {
			carryOverAllCompanies(ctx, companyRepo, employeeRepo, resolver, engine, logger)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func carryOverAllCompanies(
	ctx context.Context,
	companyRepo company.Repository,
	employeeRepo employee.Repository,
	resolver schedule.Resolver,
	engine *allowance.Engine,
	logger *zap.Logger,
) {
	fromYear := time.Now().UTC().Year() - 1

	companies, err := companyRepo.FindAll(ctx)
	if err != nil {
		logger.Error("carry-over company listing failed", zap.Error(err))
		return
	}

	for i := range companies {
		comp := &companies[i]

		employees, err := employeeRepo.FindActiveByCompany(ctx, comp.ID.String())
		if err != nil {
			logger.Error("carry-over employee listing failed",
				zap.String("company_id", comp.ID.String()),
				zap.Error(err),
			)
			continue
		}

		cache := schedule.NewCache(resolver)
		if err := engine.CarryOver(ctx, cache, comp, employees, fromYear); err != nil {
			logger.Error("carry-over failed",
				zap.String("company_id", comp.ID.String()),
				zap.Int("from_year", fromYear),
				zap.Error(err),
			)
			continue
		}

		logger.Info("carry-over completed",
			zap.String("company_id", comp.ID.String()),
			zap.Int("from_year", fromYear),
			zap.Int("employees", len(employees)),
		)
	}
}
