package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ovasilenko/shop_api/internal/config"
	"github.com/ovasilenko/shop_api/internal/db"
	"github.com/ovasilenko/shop_api/internal/es"
	"github.com/ovasilenko/shop_api/internal/events"
	"github.com/ovasilenko/shop_api/internal/httpserver"
	"github.com/ovasilenko/shop_api/internal/logging"
	"github.com/ovasilenko/shop_api/internal/mail"
	authmw "github.com/ovasilenko/shop_api/internal/middleware/auth"
	loggingmw "github.com/ovasilenko/shop_api/internal/middleware/logging"
	"github.com/ovasilenko/shop_api/internal/repo"
	"github.com/ovasilenko/shop_api/internal/search"
	"github.com/ovasilenko/shop_api/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("database migrate error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	}
	index := &search.Index{ES: esClient, Name: "product"}

	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}

	rp := &repo.GormRepo{DB: database}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	deps := httpserver.Deps{
		Account: &httpserver.AccountHTTP{Svc: &service.AccountService{Repo: rp, JWTSecret: cfg.JWTSecret, Producer: producer}},
		Admin:   &httpserver.AdminHTTP{Svc: &service.AccountService{Repo: rp, JWTSecret: cfg.JWTSecret, Producer: producer}},
		Product: &httpserver.ProductHTTP{Svc: &service.CatalogService{Repo: rp, Producer: producer, Search: index}},
		Image:   &httpserver.ImageHTTP{Svc: &service.ImageService{Repo: rp}},
		Mail:    &httpserver.MailHTTP{Svc: &service.MailService{Mailer: mailer, To: cfg.MailTo}},
		Auth:    authmw.New(cfg.JWTSecret),
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
