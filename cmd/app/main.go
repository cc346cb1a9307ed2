package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck //flush on exit

	configs := getConfigs(logger)

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	producer := kafka.NewProducer(configs.KafkaHost, configs.KafkaOrderChangedTopic)
	defer producer.Close() //nolint:errcheck //flush on exit

	app := cmd.NewCompositionRoot(configs, gormDB, producer, logger)

	jobManager := jobs.NewJobManager(app.CreateGetOverdueOrdersQueryHandler(), logger)
	if err = jobManager.StartAll(); err != nil {
		logger.Fatal("Failed to start background jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs, logger)
}

func getConfigs(logger *zap.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("No .env file found, relying on environment variables")
	}

	return cmd.Config{
		HTTPPort:               os.Getenv("HTTP_PORT"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 os.Getenv("DB_PORT"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: os.Getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
	}
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config, logger *zap.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("Request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Error(v.Error),
			)
			return nil
		},
	}))

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateAddMessageCommandHandler(),
		app.CreateRequestRevisionCommandHandler(),
		app.CreateFulfillRevisionCommandHandler(),
		app.CreateAddDeliverableCommandHandler(),
		app.CreateOpenDisputeCommandHandler(),
		app.CreateResolveDisputeCommandHandler(),
		app.CreateLeaveReviewCommandHandler(),
		app.CreateRecordPaymentCommandHandler(),
		app.CreateRefundPaymentCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetOrderMessagesQueryHandler(),
	)
	server.RegisterRoutes(e, httpadapter.NewTokenService(configs.JWTSecret))

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil {
			logger.Info("Web server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down web server", zap.Error(err))
	}
}
