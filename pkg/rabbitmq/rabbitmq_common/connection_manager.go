package rabbitmq_common

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	minRedialDelay = time.Second
	maxRedialDelay = 30 * time.Second
)

// ConnectionManager владеет единственным соединением с брокером. Разрыв ловится
// через NotifyClose, после чего соединение переустанавливается с растущей паузой.
type ConnectionManager struct {
	url  string
	dial func(url string) (*amqp.Connection, error)

	mu   sync.RWMutex
	conn *amqp.Connection

	closing chan struct{}
	once    sync.Once
	log     Logger
}

func NewConnectionManager(cfg Config, log Logger) (*ConnectionManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = NewNoopLogger()
	}
	m := &ConnectionManager{
		url:     cfg.URL,
		dial:    amqp.Dial,
		closing: make(chan struct{}),
		log:     log,
	}

	conn, err := m.dial(m.url)
	if err != nil {
		log.Error(err, "Initial RabbitMQ dial failed")
		return nil, fmt.Errorf("rabbitmq: initial dial failed: %w", err)
	}
	m.conn = conn
	go m.watch(conn)
	return m, nil
}

// watch ждет закрытия соединения и переподключается, пока менеджер не закрыт.
func (m *ConnectionManager) watch(conn *amqp.Connection) {
	for {
		closed := conn.NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-m.closing:
			return
		case amqpErr, ok := <-closed:
			if !ok && amqpErr == nil {
				// штатное закрытие через Close
				select {
				case <-m.closing:
					return
				default:
				}
			}
			m.log.Warn("RabbitMQ connection lost, redialing", "reason", fmt.Sprint(amqpErr))
		}

		next, ok := m.redial()
		if !ok {
			return
		}
		conn = next
	}
}

func (m *ConnectionManager) redial() (*amqp.Connection, bool) {
	delay := minRedialDelay
	for {
		select {
		case <-m.closing:
			return nil, false
		case <-time.After(delay):
		}

		conn, err := m.dial(m.url)
		if err == nil {
			m.mu.Lock()
			m.conn = conn
			m.mu.Unlock()
			m.log.Info("RabbitMQ connection restored")
			return conn, true
		}
		m.log.Error(err, "RabbitMQ redial failed", "retry_in", delay.String())
		if delay *= 2; delay > maxRedialDelay {
			delay = maxRedialDelay
		}
	}
}

// GetChannel открывает новый канал поверх текущего соединения.
func (m *ConnectionManager) GetChannel() (*amqp.Connection, *amqp.Channel, error) {
	m.mu.RLock()
	conn := m.conn
	m.mu.RUnlock()

	if conn == nil || conn.IsClosed() {
		return nil, nil, fmt.Errorf("rabbitmq: connection is not available")
	}
	ch, err := conn.Channel()
	if err != nil {
		return conn, nil, fmt.Errorf("rabbitmq: failed to open channel: %w", err)
	}
	return conn, ch, nil
}

func (m *ConnectionManager) Close() error {
	m.once.Do(func() { close(m.closing) })

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil || m.conn.IsClosed() {
		return nil
	}
	if err := m.conn.Close(); err != nil {
		m.log.Error(err, "Failed to close RabbitMQ connection")
		return err
	}
	m.log.Debug("RabbitMQ connection closed")
	return nil
}
