package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/logger"
)

// MessageQueue 消息队列接口
type MessageQueue interface {
	PublishJSON(ctx context.Context, exchangeName, routingKey string, data interface{}, persistent bool) error
	EnsureExchange(exchangeName, exchangeType string, durable bool) error
	EnsureQueue(queueName string, durable bool) error
	BindQueue(queueName, exchangeName, routingKey string) error
	Close() error
}

var _ MessageQueue = (*RabbitMQ)(nil)

// RabbitMQ 消息队列客户端
type RabbitMQ struct {
	conn         *amqp.Connection
	publishCh    *amqp.Channel
	publishMutex sync.Mutex
	cfg          *config.RabbitMQConfig
}

// NewRabbitMQ 创建RabbitMQ客户端
func NewRabbitMQ(cfg *config.RabbitMQConfig) (*RabbitMQ, error) {
	if cfg == nil {
		return nil, fmt.Errorf("RabbitMQ配置不能为空")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("RabbitMQ URL配置不能为空")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("无法连接到RabbitMQ服务器 (%s): %w", cfg.URL, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建RabbitMQ发布通道失败: %w", err)
	}

	return &RabbitMQ{
		conn:      conn,
		publishCh: ch,
		cfg:       cfg,
	}, nil
}

// PublishJSON 将数据序列化为JSON后发布
func (mq *RabbitMQ) PublishJSON(ctx context.Context, exchangeName, routingKey string, data interface{}, persistent bool) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %w", err)
	}

	deliveryMode := amqp.Transient
	if persistent {
		deliveryMode = amqp.Persistent
	}

	mq.publishMutex.Lock()
	defer mq.publishMutex.Unlock()

	err = mq.publishCh.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: deliveryMode,
	})
	if err != nil {
		return fmt.Errorf("发布消息到%s失败: %w", exchangeName, err)
	}
	return nil
}

// EnsureExchange 确保交换机存在
func (mq *RabbitMQ) EnsureExchange(exchangeName, exchangeType string, durable bool) error {
	if err := mq.publishCh.ExchangeDeclare(exchangeName, exchangeType, durable, false, false, false, nil); err != nil {
		return fmt.Errorf("声明交换机%s失败: %w", exchangeName, err)
	}
	return nil
}

// EnsureQueue 确保队列存在
func (mq *RabbitMQ) EnsureQueue(queueName string, durable bool) error {
	if _, err := mq.publishCh.QueueDeclare(queueName, durable, false, false, false, nil); err != nil {
		return fmt.Errorf("声明队列%s失败: %w", queueName, err)
	}
	return nil
}

// BindQueue 绑定队列到交换机
func (mq *RabbitMQ) BindQueue(queueName, exchangeName, routingKey string) error {
	if err := mq.publishCh.QueueBind(queueName, routingKey, exchangeName, false, nil); err != nil {
		return fmt.Errorf("绑定队列%s失败: %w", queueName, err)
	}
	return nil
}

// StartConsumer 启动消费者工作协程
// handler返回true时ack，返回false时nack且不重新入队（避免毒消息循环）
func (mq *RabbitMQ) StartConsumer(ctx context.Context, queueName string, workers int, handler func(data []byte) bool) error {
	ch, err := mq.conn.Channel()
	if err != nil {
		return fmt.Errorf("创建消费通道失败: %w", err)
	}

	prefetch := mq.cfg.PrefetchCount
	if prefetch <= 0 {
		prefetch = workers
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("设置QoS失败: %w", err)
	}

	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("订阅队列%s失败: %w", queueName, err)
	}

	for i := 0; i < workers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						return
					}
					if handler(d.Body) {
						if err := d.Ack(false); err != nil {
							logger.Error().Err(err).Int("worker", workerID).Msg("ack消息失败")
						}
					} else {
						if err := d.Nack(false, false); err != nil {
							logger.Error().Err(err).Int("worker", workerID).Msg("nack消息失败")
						}
					}
				}
			}
		}(i)
	}

	logger.Info().Str("queue", queueName).Int("workers", workers).Msg("消费者已启动")
	return nil
}

// Close 关闭连接
func (mq *RabbitMQ) Close() error {
	if mq.publishCh != nil {
		mq.publishCh.Close()
	}
	if mq.conn != nil {
		return mq.conn.Close()
	}
	return nil
}
