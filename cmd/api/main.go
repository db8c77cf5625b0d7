package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	storecfg "github.com/solarspark/store/internal/config"
	"github.com/solarspark/store/internal/httpserver"
	"github.com/solarspark/store/internal/models"
	"github.com/solarspark/store/internal/mykafka"
	"github.com/solarspark/store/internal/repo"
	"github.com/solarspark/store/internal/service"
	pkgdb "github.com/solarspark/store/pkg/db"
	"github.com/solarspark/store/pkg/logging"
	loggingmw "github.com/solarspark/store/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := storecfg.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	r := &repo.GormRepo{DB: db}

	var producer *mykafka.Producer
	var publisher service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers, cfg.AnalyticsTopic)
		publisher = producer
	}

	orderSvc := &service.OrderService{
		Repo: r,
		Pricing: service.Pricing{
			TaxRate:      cfg.TaxRate,
			ShippingCost: cfg.ShippingCost,
		},
	}
	inventorySvc := &service.InventoryService{Repo: r}
	discountSvc := &service.DiscountService{Repo: r}
	catalogSvc := &service.CatalogService{Repo: r}
	authSvc := &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}
	analyticsSvc := &service.AnalyticsService{Repo: r, Publisher: publisher}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:      &httpserver.AuthHTTP{Svc: authSvc},
		ProductHandler:   &httpserver.ProductHTTP{Svc: catalogSvc},
		OrderHandler:     &httpserver.OrderHTTP{Svc: orderSvc},
		InventoryHandler: &httpserver.InventoryHTTP{Svc: inventorySvc},
		DiscountHandler:  &httpserver.DiscountHTTP{Svc: discountSvc},
		AnalyticsHandler: &httpserver.AnalyticsHTTP{Svc: analyticsSvc},
		JWTSecret:        cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if producer != nil {
		_ = producer.Close()
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("%s stopped", cfg.ServiceName)
}
