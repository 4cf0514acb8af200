package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/logger"
)

type ManagerConfig struct {
	Backend Backend
	Keys    Keys
	TTL     time.Duration
	// Broadcaster необязателен: без него события доставляются только в этом процессе.
	Broadcaster Broadcaster
	Logger      logger.LoggerPort
}

// Manager - реализация Store поверх Backend и Hub.
type Manager struct {
	backend     Backend
	keys        Keys
	ttl         time.Duration
	hub         *Hub
	broadcaster Broadcaster
	logger      logger.LoggerPort
	now         func() time.Time
}

func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("session: backend is required")
	}
	if cfg.Keys.Token == "" || cfg.Keys.User == "" {
		return nil, fmt.Errorf("session: token and user keys are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoopLogger()
	}
	return &Manager{
		backend:     cfg.Backend,
		keys:        cfg.Keys,
		ttl:         cfg.TTL,
		hub:         NewHub(cfg.Logger),
		broadcaster: cfg.Broadcaster,
		logger:      cfg.Logger.WithFields(logger.Fields{"component": "SessionManager"}),
		now:         time.Now,
	}, nil
}

// SetBroadcaster подключает межпроцессную рассылку после создания менеджера
// (потребителю брокера нужен уже созданный менеджер для Deliver).
func (m *Manager) SetBroadcaster(b Broadcaster) {
	m.broadcaster = b
}

func (m *Manager) Get(ctx context.Context, sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, ErrNoSession
	}
	values, err := m.backend.Load(ctx, sessionID)
	if err != nil {
		return Session{}, fmt.Errorf("session: load: %w", err)
	}
	token := values[m.keys.Token]
	if token == "" {
		return Session{}, ErrNoSession
	}
	s := Session{Token: token}
	if user := values[m.keys.User]; user != "" {
		s.User = json.RawMessage(user)
	}
	return s, nil
}

func (m *Manager) Set(ctx context.Context, sessionID string, s Session, reason string) error {
	if sessionID == "" || s.Token == "" {
		return ErrNoSession
	}
	values := map[string]string{m.keys.Token: s.Token}
	if len(s.User) > 0 {
		values[m.keys.User] = string(s.User)
	}
	if err := m.backend.Save(ctx, sessionID, values, m.ttl); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	m.publish(ctx, sessionID, reason)
	return nil
}

// Invalidate удаляет оба значения сессии и оповещает подписчиков.
func (m *Manager) Invalidate(ctx context.Context, sessionID string, reason string) error {
	if sessionID == "" {
		return nil
	}
	if err := m.backend.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	m.publish(ctx, sessionID, reason)
	return nil
}

func (m *Manager) Subscribe(sessionID string) (<-chan Event, func()) {
	ch := m.hub.AddClient(sessionID)
	return ch, func() { m.hub.RemoveClient(sessionID, ch) }
}

// Deliver передает событие, пришедшее от брокера, локальным подписчикам.
func (m *Manager) Deliver(ev Event) {
	m.hub.Notify(ev)
}

func (m *Manager) publish(ctx context.Context, sessionID, reason string) {
	ev := Event{SessionID: sessionID, Type: EventAuthChange, Reason: reason, At: m.now().UTC()}

	if m.broadcaster != nil {
		err := m.broadcaster.Publish(ctx, ev)
		if err == nil {
			return
		}
		m.logger.Error("Failed to broadcast session event, delivering locally", err, logger.Fields{"reason": reason})
	}
	m.hub.Notify(ev)
}

func (m *Manager) Close() {
	m.hub.Close()
}

// FormatSSE кодирует событие в кадр text/event-stream.
func FormatSSE(ev Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", ev.Type, data)), nil
}
