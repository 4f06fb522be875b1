package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"pizzaUnlimitedApi/internal/config"
	analyticsrepo "pizzaUnlimitedApi/internal/modules/analytics/repository"
	analyticshttp "pizzaUnlimitedApi/internal/modules/analytics/transport"
	analyticsuc "pizzaUnlimitedApi/internal/modules/analytics/usecase"
	cartrepo "pizzaUnlimitedApi/internal/modules/cart/repository"
	carthttp "pizzaUnlimitedApi/internal/modules/cart/transport"
	cartuc "pizzaUnlimitedApi/internal/modules/cart/usecase"
	menurepo "pizzaUnlimitedApi/internal/modules/menu/repository"
	menuhttp "pizzaUnlimitedApi/internal/modules/menu/transport"
	menuuc "pizzaUnlimitedApi/internal/modules/menu/usecase"
	ordersrepo "pizzaUnlimitedApi/internal/modules/orders/repository"
	ordershttp "pizzaUnlimitedApi/internal/modules/orders/transport"
	ordersuc "pizzaUnlimitedApi/internal/modules/orders/usecase"
	"pizzaUnlimitedApi/internal/modules/realtime/infrastructure"
	realtimews "pizzaUnlimitedApi/internal/modules/realtime/transport"
	reservationsrepo "pizzaUnlimitedApi/internal/modules/reservations/repository"
	reservationshttp "pizzaUnlimitedApi/internal/modules/reservations/transport"
	reservationsuc "pizzaUnlimitedApi/internal/modules/reservations/usecase"
	reviewsrepo "pizzaUnlimitedApi/internal/modules/reviews/repository"
	reviewshttp "pizzaUnlimitedApi/internal/modules/reviews/transport"
	reviewsuc "pizzaUnlimitedApi/internal/modules/reviews/usecase"
	"pizzaUnlimitedApi/internal/platform/broker"
	"pizzaUnlimitedApi/internal/platform/database"
	"pizzaUnlimitedApi/internal/platform/events"
	"pizzaUnlimitedApi/internal/shared/auth"
	"pizzaUnlimitedApi/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		slog.Error("mongo connect error", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			slog.Warn("mongo disconnect error", slog.Any("error", err))
		}
	}()
	slog.Info("mongo connected", slog.String("database", cfg.Mongo.Database))
	if err := database.EnsureIndexes(ctx, db); err != nil {
		slog.Error("index setup error", slog.Any("error", err))
		os.Exit(1)
	}

	// Event sinks: the dashboard hub always, Kafka only when brokers are set.
	hub := infrastructure.NewHub()
	sinks := []events.Publisher{hub}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		sinks = append(sinks, producer)
		slog.Info("kafka producer enabled", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.Topic))
	}
	publisher := events.NewFanout(sinks...)

	validator := auth.NewJWTValidatorWithPublicKey(cfg.Security.CustomerJWTSecret, cfg.Security.CustomerJWTPublicKey)
	admins := auth.NewAdminTokens(cfg.Security.AdminEmail, cfg.Security.AdminPassword, cfg.Security.AdminJWTSecret)

	menuHandler := menuhttp.NewHTTPHandler(menuuc.New(menurepo.NewMongo(db)))
	ordersHandler := ordershttp.NewHTTPHandler(ordersuc.New(ordersrepo.NewMongo(db), publisher, ordersuc.InvoiceConfig{
		UPIAddress: cfg.Invoice.UPIAddress,
		PayeeName:  cfg.Invoice.PayeeName,
	}))
	reservationsHandler := reservationshttp.NewHTTPHandler(reservationsuc.New(reservationsrepo.NewMongo(db), publisher))
	reviewsHandler := reviewshttp.NewHTTPHandler(reviewsuc.New(reviewsrepo.NewMongo(db)))
	cartHandler := carthttp.NewHTTPHandler(cartuc.New(cartrepo.NewMongo(db)))
	analyticsHandler := analyticshttp.NewHTTPHandler(analyticsuc.New(analyticsrepo.NewMongo(db)))

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())

	api := e.Group("/api")
	menuHandler.RegisterPublic(api)
	reviewsHandler.RegisterPublic(api)

	customer := api.Group("", auth.RequireCustomer(validator))
	ordersHandler.RegisterCustomer(customer)
	reservationsHandler.RegisterCustomer(customer)
	reviewsHandler.RegisterCustomer(customer)
	cartHandler.RegisterCustomer(customer)

	adminGroup := e.Group("/api/admin")
	adminGroup.POST("/login", auth.LoginHandler(admins))
	adminOnly := adminGroup.Group("", auth.RequireAdmin(admins))
	menuHandler.RegisterAdmin(adminOnly)
	ordersHandler.RegisterAdmin(adminOnly)
	reservationsHandler.RegisterAdmin(adminOnly)
	reviewsHandler.RegisterAdmin(adminOnly)
	analyticsHandler.RegisterAdmin(adminOnly)

	realtimews.NewWSHandler(hub, admins).Register(e)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	e.Close()
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
