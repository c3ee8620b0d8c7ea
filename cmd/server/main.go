package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/arslanca/portfolio/internal/cleanup"
	"github.com/arslanca/portfolio/internal/config"
	"github.com/arslanca/portfolio/internal/events"
	"github.com/arslanca/portfolio/internal/httpserver"
	"github.com/arslanca/portfolio/internal/logging"
	"github.com/arslanca/portfolio/internal/mail"
	appmw "github.com/arslanca/portfolio/internal/middleware"
	"github.com/arslanca/portfolio/internal/ratelimit"
	"github.com/arslanca/portfolio/internal/repo"
	"github.com/arslanca/portfolio/internal/search"
	"github.com/arslanca/portfolio/internal/service"
	"github.com/arslanca/portfolio/internal/stats"
	"github.com/arslanca/portfolio/internal/tokens"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	rp := repo.New(db)
	codec := &tokens.Codec{
		AccessSecret:  []byte(cfg.JWT_SECRET),
		RefreshSecret: []byte(cfg.REFRESH_SECRET),
	}
	limiter := ratelimit.New()

	if cfg.ADMIN_CREATE {
		ctx := logging.IntoContext(context.Background(), logger)
		if err := service.EnsureAdmin(ctx, rp, cfg.ADMIN_USERNAME, cfg.ADMIN_PASSWORD); err != nil {
			log.Fatal(err)
		}
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{cfg.KAFKA_ADDRESS}, events.Topic)
	} else {
		logger.Warn("kafka disabled, auth events will not be published")
	}

	var blogIndex *search.BlogIndex
	if cfg.ES_URL != "" {
		esClient, err := search.NewClient(cfg.ES_URL, cfg.ES_USER, cfg.ES_PASSWORD)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
		blogIndex = search.NewBlogIndex(esClient, "blog_posts")
	} else {
		logger.Warn("elasticsearch disabled, blog search unavailable")
	}

	var mailer *mail.Mailer
	if cfg.MAIL_HOST != "" {
		mailer = mail.New(cfg.MAIL_HOST, cfg.MAIL_PORT, cfg.MAIL_USERNAME, cfg.MAIL_PASSWORD)
	} else {
		logger.Warn("mail disabled, contact form unavailable")
	}

	deps := &httpserver.Deps{
		Gate:             &appmw.Gate{Repo: rp, Codec: codec},
		AuthHandler:      &httpserver.AuthHandler{Svc: &service.AuthService{Repo: rp, Codec: codec, Limiter: limiter, Events: producer}},
		BlogHandler:      &httpserver.BlogHandler{Svc: &service.BlogService{Repo: rp, Index: blogIndex}},
		ProjectHandler:   &httpserver.ProjectHandler{Svc: &service.ProjectService{Repo: rp}},
		TechStackHandler: &httpserver.TechStackHandler{Svc: &service.TechStackService{Repo: rp}},
		ContactHandler:   &httpserver.ContactHandler{Svc: &service.ContactService{Mailer: mailer, Limiter: limiter}},
		StatsHandler:     &httpserver.StatsHandler{Client: stats.NewClient(cfg.WAKA_KEY, cfg.GITHUB_USERNAME, cfg.GITHUB_TOKEN)},
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), appmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	sweeper := &cleanup.Sweeper{Repo: rp, Log: logger}
	cronRunner, err := sweeper.Start()
	if err != nil {
		log.Fatalf("cleanup scheduler failed: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.PORT,
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
	logger.Info("server started", "port", cfg.PORT)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	cronCtx := cronRunner.Stop()
	<-cronCtx.Done()

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
