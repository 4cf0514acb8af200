package session

import (
	"sync"

	"github.com/dendisuhubdy/mybalivillas/pkg/logger"
)

const (
	hubBuffer    = 100
	clientBuffer = 16
)

// Hub раздает события подписчикам одной сессии (одна сессия - несколько вкладок).
type Hub struct {
	clients map[string][]chan Event
	mu      sync.RWMutex

	events chan Event
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once

	logger logger.LoggerPort
}

func NewHub(baseLogger logger.LoggerPort) *Hub {
	if baseLogger == nil {
		baseLogger = logger.NewNoopLogger()
	}
	h := &Hub{
		clients: make(map[string][]chan Event),
		events:  make(chan Event, hubBuffer),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		logger:  baseLogger.WithFields(logger.Fields{"component": "SessionHub"}),
	}
	go h.dispatcher()
	return h
}

func (h *Hub) dispatcher() {
	defer close(h.done)
	for {
		select {
		case <-h.stop:
			return
		case ev := <-h.events:
			h.dispatch(ev)
		}
	}
}

func (h *Hub) dispatch(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	channels := h.clients[ev.SessionID]
	if len(channels) == 0 {
		h.logger.Debug("No subscribers for session, event dropped.", logger.Fields{"reason": ev.Reason})
		return
	}
	for _, ch := range channels {
		// переполненный подписчик не должен блокировать остальных
		select {
		case ch <- ev:
		default:
			h.logger.Warn("Subscriber channel is full, skipping.", logger.Fields{"reason": ev.Reason})
		}
	}
}

// Notify ставит событие в очередь диспетчера.
func (h *Hub) Notify(ev Event) {
	select {
	case h.events <- ev:
	case <-h.stop:
	}
}

func (h *Hub) AddClient(sessionID string) chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, clientBuffer)
	h.clients[sessionID] = append(h.clients[sessionID], ch)
	h.logger.Debug("Subscriber connected", logger.Fields{"connections": len(h.clients[sessionID])})
	return ch
}

func (h *Hub) RemoveClient(sessionID string, ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channels := h.clients[sessionID]
	kept := channels[:0]
	for _, c := range channels {
		if c != ch {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		delete(h.clients, sessionID)
	} else {
		h.clients[sessionID] = kept
	}
	close(ch)
}

// Close останавливает диспетчер.
func (h *Hub) Close() {
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
