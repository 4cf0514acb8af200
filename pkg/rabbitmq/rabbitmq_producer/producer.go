package rabbitmq_producer

import (
	"context"
	"fmt"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/rabbitmq/rabbitmq_common"
	"github.com/google/uuid"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig описывает обменник, в который пишет производитель.
type PublisherConfig struct {
	Exchange string
	Kind     string // fanout, direct, topic
	Durable  bool

	// Declare=false: обменник уже существует.
	Declare bool

	Logger rabbitmq_common.Logger
}

type Publisher struct {
	exchange string
	conn     *amqp.Connection
	ch       *amqp.Channel
	log      rabbitmq_common.Logger
}

func NewPublisher(cfg PublisherConfig, connManager *rabbitmq_common.ConnectionManager) (*Publisher, error) {
	if cfg.Declare && (cfg.Exchange == "" || cfg.Kind == "") {
		return nil, fmt.Errorf("producer: exchange name and kind are required to declare an exchange")
	}
	log := cfg.Logger
	if log == nil {
		log = rabbitmq_common.NewNoopLogger()
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("producer: %w", err)
	}
	if cfg.Declare {
		if err := ch.ExchangeDeclare(cfg.Exchange, cfg.Kind, cfg.Durable, !cfg.Durable, false, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("producer: failed to declare exchange %q: %w", cfg.Exchange, err)
		}
	}

	log.Debug("Publisher ready", "exchange", cfg.Exchange, "kind", cfg.Kind)
	return &Publisher{exchange: cfg.Exchange, conn: conn, ch: ch, log: log}, nil
}

// PublishJSON отправляет уже закодированное тело с типом сообщения и свежим MessageId.
func (p *Publisher) PublishJSON(ctx context.Context, routingKey, msgType string, body []byte) error {
	return p.Publish(ctx, routingKey, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Type:        msgType,
		Body:        body,
	})
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if p.ch == nil || p.conn == nil || p.conn.IsClosed() {
		return fmt.Errorf("producer: channel is closed")
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("producer: publish to %q failed: %w", p.exchange, err)
	}
	return nil
}

// Close закрывает только канал: соединением владеет ConnectionManager.
func (p *Publisher) Close() error {
	if p.ch == nil {
		return nil
	}
	ch := p.ch
	p.ch = nil
	if err := ch.Close(); err != nil {
		p.log.Error(err, "Failed to close publisher channel")
		return err
	}
	return nil
}
