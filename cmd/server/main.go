package main

import (
	"StreamHub/internal/config"
	"StreamHub/internal/data"
	"StreamHub/internal/database"
	"StreamHub/internal/event"
	"StreamHub/internal/handler"
	"StreamHub/internal/repository"
	"StreamHub/internal/router"
	"StreamHub/internal/service"
	"StreamHub/internal/storage"
	"StreamHub/pkg/logger"
	"StreamHub/pkg/rabbitmq"
	"StreamHub/pkg/redis"
	"context"
	"log"

	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	// 初始化logger
	if err := logger.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, cfg.GinMode == gin.DebugMode)
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.WithField("driver", cfg.DBDriver).Info("数据库连接成功")
	if err := database.AutoMigrate(db); err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	// Redis是可选的，没有配置时视频详情不走缓存
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = redis.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Log.Fatalf("无法连接到Redis: %v", err)
		}
		defer redisClient.Close()
		logger.Log.Info("Redis连接成功")
	}

	// RabbitMQ也是可选的，没有配置时不发布上传事件
	var publisher event.Publisher = event.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
		}
		defer rabbitMQConn.Close() // 确保程序退出时关闭连接
		publisher, err = event.NewAMQPPublisher(rabbitMQConn)
		if err != nil {
			logger.Log.Fatalf("RabbitMQ队列声明失败: %v", err)
		}
		logger.Log.Info("RabbitMQ连接成功")
	}

	signer, err := storage.NewSigner(context.Background(), cfg.Storage)
	if err != nil {
		logger.Log.Fatalf("存储签名器初始化失败: %v", err)
	}
	logger.Log.WithField("provider", cfg.Storage.Provider).Info("存储签名器初始化成功")

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)

	uow := data.NewUnitOfWork(db, videoRepo, commentRepo, likeRepo)

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, tokens)
	videoService := service.NewVideoService(videoRepo, uow, signer, publisher, cfg.Storage.UploadTTL)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo)
	channelService := service.NewChannelService(userRepo, videoRepo, subRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo)
	adminService := service.NewAdminService(userRepo, videoRepo, commentRepo, likeRepo, uow)

	if cfg.AdminPassword != "" {
		if err := authService.EnsureAdmin(cfg.AdminPassword); err != nil {
			logger.Log.Fatalf("初始化admin账号失败: %v", err)
		}
	}

	r := router.SetupRouter(router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Video:    handler.NewVideoHandler(videoService),
		Comment:  handler.NewCommentHandler(commentService),
		Like:     handler.NewLikeHandler(likeService),
		Channel:  handler.NewChannelHandler(channelService),
		Playlist: handler.NewPlaylistHandler(playlistService),
		Admin:    handler.NewAdminHandler(adminService),
	}, authService, cfg.CORSOrigins)

	logger.Log.Printf("服务器将在: %s端口启动", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}
