package main

import (
	"StreamHub/internal/config"
	"StreamHub/internal/data"
	"StreamHub/internal/database"
	"StreamHub/internal/event"
	"StreamHub/internal/repository"
	"StreamHub/internal/service"
	"StreamHub/pkg/logger"
	"StreamHub/pkg/rabbitmq"
	"StreamHub/pkg/redis"
	"log"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/go-redis/redis/v8"
	"github.com/streadway/amqp"
)

// 消费者进程：接收转码流水线回报的视频状态，写回数据库并清掉缓存
func main() {
	cfg, err := config.LoadWorker()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	if err := logger.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	if cfg.RabbitMQURL == "" {
		logger.Log.Fatal("消费者需要配置RABBITMQ_URL")
	}

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, false)
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到数据库: %v", err)
	}

	// 状态变化后要删除视频详情缓存，所以这里也连Redis
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = redis.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Log.Fatalf("消费者无法连接到Redis: %v", err)
		}
		defer redisClient.Close()
	}

	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()
	if err := event.DeclareQueues(rabbitMQConn); err != nil {
		logger.Log.Fatalf("队列声明失败: %v", err)
	}

	videoRepo := repository.NewVideoRepository(db, redisClient)
	uow := data.NewUnitOfWork(db, videoRepo, repository.NewCommentRepository(db), repository.NewLikeRepository(db))
	// 消费者不签发上传地址，也不发布事件
	videoService := service.NewVideoService(videoRepo, uow, nil, nil, 0)

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go consumeVideoStatus(rabbitMQConn, videoService)

	logger.Log.Info(" [*] 等待视频状态消息中. 按 CTRL+C 退出")
	<-done
	logger.Log.Info("消费者退出")
}

// 状态消息消费者：1、通过mq的TCP连接创建channel 2、注册消费者，手动确认 3、逐条处理，根据结果ack或nack
func consumeVideoStatus(conn *amqp.Connection, videoService service.VideoService) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	// 一次只取一条，处理完再取下一条
	if err := ch.Qos(1, 0, false); err != nil {
		logger.Log.Fatalf("设置Qos失败: %v", err)
	}

	msgs, err := ch.Consume(
		event.QueueVideoStatus, // queue
		"",                     // consumer
		false,                  // auto-ack: 手动确认
		false,                  // exclusive
		false,                  // no-local
		false,                  // no-wait
		nil,                    // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册状态消费者: %v", err)
	}

	// msgs不是切片，而是通道channel，如果通道为空不会结束循环，而会“阻塞”
	for d := range msgs {
		logCtx := logger.Log.WithField("redelivered", d.Redelivered)

		msg, outcome, err := event.HandleVideoStatus(d.Body, func(m event.VideoStatusMessage) error {
			return videoService.ApplyStatus(m.VideoID, m.Status, m.StreamingURL)
		})
		logCtx = logCtx.WithField("video_id", msg.VideoID).WithField("status", msg.Status)

		switch outcome {
		case event.OutcomeAck:
			if err != nil {
				logCtx.WithError(err).Warn("视频不存在，消息已确认并丢弃")
			} else {
				logCtx.Info("视频状态已更新")
			}
			_ = d.Ack(false)
		case event.OutcomeDrop:
			// 对于无法解析的“坏消息”，通知mq处理失败，并直接删除
			logCtx.WithError(err).WithField("body", string(d.Body)).Error("无效的状态消息")
			_ = d.Nack(false, false)
		default:
			logCtx.WithError(err).Error("处理消息失败，将进行重试")
			_ = d.Nack(false, true)
		}
	}
	logger.Log.Warn("状态消息通道已关闭")
}
