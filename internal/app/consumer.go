package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-presensi/internal/payroll"
	"go-presensi/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer starts the payroll-side Kafka consumers: one seeding default
// salaries from employee_created, one folding attendance_day_closed into
// monthly summaries.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
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

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	salaryRepo := payroll.NewSalaryRepository(gormDB)
	summaryRepo := payroll.NewSummaryRepository(gormDB)
	payslipRepo := payroll.NewPayslipRepository(gormDB)
	payrollService := payroll.NewService(sqlDB, salaryRepo, summaryRepo, payslipRepo, redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	salaryConsumer := payroll.NewEmployeeCreatedConsumer(kafkaBroker, "presensi-payroll-salary", payrollService)
	defer salaryConsumer.Close()
	salaryConsumer.Start(ctx)

	summaryConsumer := payroll.NewDayClosedConsumer(kafkaBroker, "presensi-payroll-summary", payrollService)
	defer summaryConsumer.Close()
	summaryConsumer.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
