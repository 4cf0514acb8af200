package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dendisuhubdy/mybalivillas/pkg/rabbitmq/rabbitmq_common"
	"github.com/dendisuhubdy/mybalivillas/pkg/rabbitmq/rabbitmq_consumer"
	"github.com/dendisuhubdy/mybalivillas/pkg/rabbitmq/rabbitmq_producer"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitBroadcaster рассылает события сессий через fanout-обменник: каждый экземпляр
// сервиса слушает собственную эксклюзивную очередь и передает события в Deliver.
type RabbitBroadcaster struct {
	publisher *rabbitmq_producer.Publisher
	consumer  *rabbitmq_consumer.Consumer
}

func NewRabbitBroadcaster(
	connManager *rabbitmq_common.ConnectionManager,
	exchange string,
	deliver func(Event),
	logger rabbitmq_common.Logger,
) (*RabbitBroadcaster, error) {
	publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Exchange: exchange,
		Kind:     "fanout",
		Durable:  true,
		Declare:  true,
		Logger:   logger,
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("session broadcaster: %w", err)
	}

	handler := func(_ context.Context, d amqp.Delivery) error {
		var ev Event
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			return fmt.Errorf("failed to decode session event: %w", err)
		}
		deliver(ev)
		return nil
	}

	consumer, err := rabbitmq_consumer.NewConsumer(rabbitmq_consumer.ConsumerConfig{
		ExclusiveQueue:  true,
		AutoDeleteQueue: true,
		ExchangeName:    exchange,
		ExchangeType:    "fanout",
		DurableExchange: true,
		Logger:          logger,
	}, handler, connManager)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("session broadcaster: %w", err)
	}

	return &RabbitBroadcaster{publisher: publisher, consumer: consumer}, nil
}

func (b *RabbitBroadcaster) Start(ctx context.Context) error {
	return b.consumer.StartConsuming(ctx)
}

func (b *RabbitBroadcaster) Publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode session event: %w", err)
	}
	return b.publisher.PublishJSON(ctx, "", ev.Type, body)
}

func (b *RabbitBroadcaster) Close() error {
	pubErr := b.publisher.Close()
	if err := b.consumer.Close(); err != nil {
		return err
	}
	return pubErr
}
