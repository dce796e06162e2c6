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

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/middleware"
	"whitepaper-portal-api/routes"
	"whitepaper-portal-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := config.InitLogging()
	if err != nil {
		log.Fatalf("Failed to initialise logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger := config.Logger
	defer func() { _ = logger.Sync() }()

	if err := config.InitDB(); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Notifications are best-effort: mail when SMTP is configured, events when NATS is.
	var notifiers services.MultiNotifier
	var mailNotifier *services.MailNotifier
	if config.MailConfigured() {
		mailNotifier = services.NewMailNotifier(config.SendMail, config.Cfg.SiteBaseURL)
		notifiers = append(notifiers, mailNotifier)
	}
	nc, err := config.ConnectNATS()
	if err != nil {
		logger.Warn("Event bus unavailable, continuing without events", zap.Error(err))
	}
	if nc != nil {
		defer nc.Drain()
		notifiers = append(notifiers, services.NewEventNotifier(nc, config.Cfg.NATSSubject))
	}
	if len(notifiers) > 0 {
		services.SetDefaultNotifier(notifiers)
	}

	if config.Cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.Metrics())

	routes.SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + config.Cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting",
			zap.String("port", config.Cfg.ServerPort),
			zap.String("environment", config.Cfg.Environment),
			zap.Strings("allowed_origins", config.Cfg.AllowedOrigins),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	if mailNotifier != nil {
		mailNotifier.Wait()
	}
}
