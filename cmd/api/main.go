package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"telechat/config"
	"telechat/internal/codes"
	"telechat/internal/domain/chat"
	"telechat/internal/domain/message"
	"telechat/internal/domain/user"
	"telechat/internal/handler"
	"telechat/internal/middleware"
	"telechat/internal/notify"
	"telechat/internal/proxy"
	"telechat/internal/redis"
	"telechat/internal/repository"
	"telechat/internal/services"
	"telechat/internal/storage"
	"telechat/pkg/database"
	"telechat/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == "release" {
		logMode = logger.ProductionMode
		gin.SetMode(gin.ReleaseMode)
	}
	l := logger.New(logMode)
	logger.SetGlobalLogger(l)

	// Connect to Database
	database.Connect(cfg)

	// Run Raw Migrations (Extensions)
	if err := database.ApplyRawMigrations("migrations"); err != nil {
		log.Fatalf("Failed to apply raw migrations: %v", err)
	}

	// Run GORM AutoMigrate for Tables
	if err := database.DB.AutoMigrate(
		&user.User{},
		&chat.Chat{},
		&chat.ChatMember{},
		&message.Message{},
	); err != nil {
		log.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	codeTTL := time.Duration(cfg.CodeTTLMin) * time.Minute
	var codeStore codes.Store
	if cfg.RedisHost != "" {
		redis.Initialize(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		codeStore = codes.NewRedisStore(redis.GetClient(), codeTTL)
	} else {
		l.Warnf("REDIS_HOST not set, verification codes are process-local and lost on restart")
		codeStore = codes.NewMemoryStore(codeTTL)
	}

	var sender notify.CodeSender
	if cfg.SMTPHost != "" {
		sender = notify.NewEmailSender(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		})
	}

	userRepo := repository.NewUserRepository(database.DB)
	chatRepo := repository.NewChatRepository(database.DB)
	msgRepo := repository.NewMessageRepository(database.DB)
	access := proxy.NewAccessControl(chatRepo)

	authService := services.NewAuthService(userRepo, codeStore, sender, cfg)
	chatService := services.NewChatService(database.DB, chatRepo, userRepo, msgRepo)
	messageService := services.NewMessageService(msgRepo, userRepo, access)
	userService := services.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(chatService, messageService)
	userHandler := handler.NewUserHandler(userService)

	var uploadHandler *handler.UploadHandler
	if cfg.S3Bucket != "" {
		storageClient, err := storage.NewClient(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
			PresignTTL: 15 * time.Minute,
		})
		if err != nil {
			log.Fatalf("Failed to create S3 client: %v", err)
		}
		uploadHandler = handler.NewUploadHandler(services.NewUploadService(storageClient))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(l))
	r.Use(middleware.CORSMiddleware())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/auth", authHandler.Handle)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware(authService))
	authorized.GET("/chats", chatHandler.HandleGet)
	authorized.POST("/chats", chatHandler.HandlePost)
	authorized.GET("/users", userHandler.List)
	authorized.PUT("/users/me/avatar", userHandler.SetAvatar)
	if uploadHandler != nil {
		authorized.POST("/uploads/avatar", uploadHandler.PresignAvatar)
	}

	log.Printf("Starting server on port %s", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
