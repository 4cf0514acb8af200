package rabbitmq_consumer

import (
	"context"
	"fmt"
	"sync"

	"github.com/dendisuhubdy/mybalivillas/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одно сообщение. Ошибка -> Nack без requeue.
type MessageHandler func(ctx context.Context, delivery amqp.Delivery) error

// ConsumerConfig конфигурация потребителя
type ConsumerConfig struct {
	// Пустое имя - сервер сгенерирует эксклюзивную очередь (подписка на fanout).
	QueueName       string
	DurableQueue    bool
	ExclusiveQueue  bool
	AutoDeleteQueue bool

	ExchangeName      string
	ExchangeType      string
	DurableExchange   bool
	RoutingKeyForBind string

	PrefetchCount int
	ConsumerTag   string

	Logger rabbitmq_common.Logger
}

// Consumer объявляет очередь, привязывает её к обменнику и раздает сообщения обработчику.
type Consumer struct {
	config          ConsumerConfig
	connection      *amqp.Connection
	channel         *amqp.Channel
	actualQueueName string
	handler         MessageHandler
	wg              sync.WaitGroup

	Logger rabbitmq_common.Logger
}

func NewConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*Consumer, error) {
	if handler == nil {
		return nil, fmt.Errorf("consumer: message handler is required")
	}
	if cfg.ExchangeName != "" && cfg.ExchangeType == "" {
		return nil, fmt.Errorf("consumer: exchange type is required when exchange name is set")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("consumer: failed to get channel from manager: %w", err)
	}

	c := &Consumer{config: cfg, connection: conn, channel: ch, handler: handler, Logger: logger}
	if err := c.setup(); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("consumer: setup failed: %w", err)
	}
	return c, nil
}

func (c *Consumer) setup() error {
	if c.config.PrefetchCount > 0 {
		if err := c.channel.Qos(c.config.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	if c.config.ExchangeName != "" {
		c.Logger.Debug("Declaring exchange", "name", c.config.ExchangeName, "type", c.config.ExchangeType)
		err := c.channel.ExchangeDeclare(c.config.ExchangeName, c.config.ExchangeType, c.config.DurableExchange, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("failed to declare exchange '%s': %w", c.config.ExchangeName, err)
		}
	}

	q, err := c.channel.QueueDeclare(
		c.config.QueueName,
		c.config.DurableQueue,
		c.config.AutoDeleteQueue,
		c.config.ExclusiveQueue,
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue '%s': %w", c.config.QueueName, err)
	}
	c.actualQueueName = q.Name

	if c.config.ExchangeName != "" {
		c.Logger.Debug("Binding queue to exchange", "queue_name", q.Name, "exchange_name", c.config.ExchangeName)
		if err := c.channel.QueueBind(q.Name, c.config.RoutingKeyForBind, c.config.ExchangeName, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue '%s' to exchange '%s': %w", q.Name, c.config.ExchangeName, err)
		}
	}
	return nil
}

// StartConsuming читает сообщения до отмены ctx или закрытия канала доставки.
func (c *Consumer) StartConsuming(ctx context.Context) error {
	if c.channel == nil || c.connection == nil || c.connection.IsClosed() {
		return fmt.Errorf("consumer: not connected")
	}

	msgs, err := c.channel.Consume(c.actualQueueName, c.config.ConsumerTag, false, c.config.ExclusiveQueue, false, false, nil)
	if err != nil {
		return fmt.Errorf("consumer: failed to register a consumer on queue '%s': %w", c.actualQueueName, err)
	}
	c.Logger.Info("[*] Waiting for messages on queue", "queue_name", c.actualQueueName)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.Logger.Info("Context cancelled for consumer. Exiting consumption loop.", "queue_name", c.actualQueueName)
				return
			case d, ok := <-msgs:
				if !ok {
					c.Logger.Info("Deliveries channel closed by RabbitMQ. Exiting loop.", "queue_name", c.actualQueueName)
					return
				}
				c.wg.Add(1)
				go func(delivery amqp.Delivery) {
					defer c.wg.Done()
					if err := c.handler(ctx, delivery); err != nil {
						c.Logger.Error(err, "Handler error for message", "delivery_tag", delivery.DeliveryTag)
						_ = delivery.Nack(false, false)
						return
					}
					_ = delivery.Ack(false)
				}(d)
			}
		}
	}()
	return nil
}

// Close дожидается обработчиков и закрывает канал.
func (c *Consumer) Close() error {
	c.wg.Wait()
	if c.channel == nil {
		return nil
	}
	err := c.channel.Close()
	c.channel = nil
	if err != nil {
		c.Logger.Error(err, "Error closing channel")
		return err
	}
	c.Logger.Info("Consumer closed")
	return nil
}
