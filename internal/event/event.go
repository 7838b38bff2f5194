// Package event 负责和外部视频处理流水线之间的消息。
// 上传请求发出去，状态更新收回来，请求本身从不等待消息结果。
package event

import (
	"encoding/json"

	"github.com/streadway/amqp"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	QueueVideoUpload = "streamhub.video_upload.queue" // 发给流水线：有新的原始文件要上传
	QueueVideoStatus = "streamhub.video_status.queue" // 流水线回报：视频状态变化
)

// VideoUploadMessage 在签发上传URL之后发布
type VideoUploadMessage struct {
	VideoID   string `json:"video_id"`
	ObjectKey string `json:"object_key"`
	Uploader  string `json:"uploader"`
	Title     string `json:"title"`
}

// VideoStatusMessage 由流水线发布，cmd/consumer消费
type VideoStatusMessage struct {
	VideoID      string  `json:"video_id"`
	Status       string  `json:"status"`
	StreamingURL *string `json:"streaming_url,omitempty"`
}

// Publisher 发布视频相关的事件
type Publisher interface {
	PublishVideoUpload(msg VideoUploadMessage) error
}

// NopPublisher 在没有配置RabbitMQ时使用，什么也不做
type NopPublisher struct{}

func (NopPublisher) PublishVideoUpload(VideoUploadMessage) error { return nil }

type amqpPublisher struct {
	conn *amqp.Connection
}

// NewAMQPPublisher 声明需要的队列（幂等），之后每条消息单独开一个channel
func NewAMQPPublisher(conn *amqp.Connection) (Publisher, error) {
	if err := DeclareQueues(conn); err != nil {
		return nil, err
	}
	return &amqpPublisher{conn: conn}, nil
}

// DeclareQueues 创建上传和状态两个持久化队列，已存在时不会重复创建
func DeclareQueues(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	// 临时的Channel用完就关
	defer ch.Close()
	for _, name := range []string{QueueVideoUpload, QueueVideoStatus} {
		_, err = ch.QueueDeclare(
			name,
			true,  // durable: 服务器重启后队列还在
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *amqpPublisher) PublishVideoUpload(msg VideoUploadMessage) error {
	return p.publish(QueueVideoUpload, msg)
}

// 为每一个消息建立一个单独的channel，消息之间互不影响
func (p *amqpPublisher) publish(queue string, msg interface{}) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return ch.Publish(
		"",    // exchange默认交换机
		queue, // routing key就是队列名
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // 确保消息持久化
		})
}
