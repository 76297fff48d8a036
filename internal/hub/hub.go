package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chatline/internal/event"
)

type inboundEvent struct {
	envelope event.Envelope
	client   Connection
}

// Hub owns the realtime layer: the set of open connections, the presence
// registry and the router. Connection registration and removal are
// serialized through the run loop, so presence mutations never interleave
// their read-modify-write sequences even under connect/disconnect bursts.
type Hub struct {
	registry *Registry
	router   *Router

	clients   map[string]Connection // keyed by connection ID
	clientsMu sync.RWMutex

	register   chan Connection
	unregister chan Connection
	inbound    chan inboundEvent

	allowedOrigins []string
	logger         *zap.Logger
	wg             sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
}

func NewHub(allowedOrigins []string, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	registry := NewRegistry()

	h := &Hub{
		registry:       registry,
		router:         NewRouter(registry, logger),
		clients:        make(map[string]Connection),
		register:       make(chan Connection, 1024),
		unregister:     make(chan Connection, 1024),
		inbound:        make(chan inboundEvent, 4096), // buffer for burst handling
		allowedOrigins: allowedOrigins,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
	}

	go h.run()

	for i := 0; i < workerPoolSize; i++ {
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			for {
				select {
				case <-h.ctx.Done():
					return
				case in := <-h.inbound:
					h.handleEvent(in.envelope, in.client)
				}
			}
		}()
	}

	return h
}

// Registry exposes the presence registry for read-only consumers
// (monitoring).
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Router exposes the message router.
func (h *Hub) Router() *Router {
	return h.router
}

func (h *Hub) run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		}
	}
}

func (h *Hub) handleEvent(ev event.Envelope, c Connection) {
	switch ev.Event {
	case event.EventAddUser:
		var payload event.AddUser
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			h.logger.Warn("failed to unmarshal addUser", zap.Error(err))
			return
		}
		if payload.UserID == "" {
			return
		}
		// First registration wins; a repeat addUser for a present user
		// changes nothing and triggers no broadcast.
		if h.registry.Register(payload.UserID, c) {
			h.logger.Info("user online",
				zap.String("user_id", payload.UserID),
				zap.String("connection_id", c.ConnectionID()),
			)
			h.broadcastPresence()
		}
	case event.EventSendMessage:
		var payload event.SendMessage
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			h.logger.Warn("failed to unmarshal sendMessage", zap.Error(err))
			return
		}
		h.router.Route(payload)
	default:
		h.logger.Warn("unknown event type", zap.String("event", ev.Event))
	}
}

// broadcastPresence emits the getUsers snapshot to every open connection
// after a registry mutation.
func (h *Hub) broadcastPresence() {
	ev, err := event.NewEnvelope(event.EventGetUsers, h.registry.Snapshot())
	if err != nil {
		h.logger.Error("failed to encode presence broadcast", zap.Error(err))
		return
	}

	h.clientsMu.RLock()
	clients := make([]Connection, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	// deliver without holding the lock
	for _, c := range clients {
		if !c.Deliver(ev) {
			h.logger.Debug("presence broadcast dropped", zap.String("connection_id", c.ConnectionID()))
		}
	}
}

func (h *Hub) addClient(c Connection) {
	h.clientsMu.Lock()
	h.clients[c.ConnectionID()] = c
	h.clientsMu.Unlock()
}

func (h *Hub) removeClient(c Connection) {
	h.clientsMu.Lock()
	delete(h.clients, c.ConnectionID())
	h.clientsMu.Unlock()

	// A disconnect removes exactly one presence entry and triggers one
	// broadcast.
	if h.registry.Unregister(c.ConnectionID()) {
		h.broadcastPresence()
	}
	c.Close()
	h.logger.Info("client removed", zap.String("connection_id", c.ConnectionID()))
}

// ConnectionCount returns the number of open connections.
func (h *Hub) ConnectionCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Stop closes every connection and drains the workers. The inbound
// channel is never closed; workers and read pumps exit via the cancelled
// context, so a reader mid-handoff cannot hit a closed channel.
func (h *Hub) Stop() {
	h.cancel()

	h.clientsMu.RLock()
	for _, c := range h.clients {
		c.Close()
	}
	h.clientsMu.RUnlock()

	h.wg.Wait()
}

var websocketUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// ServeWS upgrades an HTTP request and attaches the connection to the
// hub. Presence arrives later via the addUser event.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocketUpgrader
	upgrader.CheckOrigin = h.checkOrigin

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	RegisterClient(conn, h)
}
