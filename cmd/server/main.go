package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/wrenfeed/social-api/internal/config"
	"github.com/wrenfeed/social-api/internal/events"
	"github.com/wrenfeed/social-api/internal/handler"
	"github.com/wrenfeed/social-api/internal/middleware"
	redisclient "github.com/wrenfeed/social-api/internal/redis"
	"github.com/wrenfeed/social-api/internal/repository"
	"github.com/wrenfeed/social-api/internal/service"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Database connection
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// Redis connection (event streaming)
	redis, err := redisclient.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	publisher := events.NewPublisher(redis.Client)

	accountRepo := repository.NewAccountRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	accountSvc := service.NewAccountService(accountRepo, publisher, log)
	messageSvc := service.NewMessageService(messageRepo, accountRepo, publisher, log)

	accountHandler := handler.NewAccountHandler(accountSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)

	// Setup router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/register", accountHandler.Register)
	router.POST("/login", accountHandler.Login)
	router.POST("/messages", messageHandler.CreateMessage)
	router.GET("/messages", messageHandler.GetAllMessages)
	router.GET("/messages/:message_id", messageHandler.GetMessageByID)
	router.DELETE("/messages/:message_id", messageHandler.DeleteMessage)
	router.PATCH("/messages/:message_id", messageHandler.UpdateMessageText)
	router.GET("/accounts/:account_id/messages", messageHandler.GetMessagesByAccount)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Failed to shut down cleanly: %v", err)
		}
	}()

	log.WithField("addr", cfg.HTTPAddr).Info("server starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
