package server

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"scythe/internal/engine"
	"scythe/internal/metrics"
	"scythe/internal/protocol"
	"scythe/internal/table"
)

// DefaultIdleTimeout is how long a table without clients stays open.
const DefaultIdleTimeout = 2 * time.Minute

// Hub manages WebSocket connections for one table. Every message is handled
// on the Run goroutine, one at a time.
type Hub struct {
	mu          sync.Mutex
	table       *table.Table
	generator   *engine.Generator
	metrics     metrics.Recorder
	logger      *zap.Logger
	idleTimeout time.Duration
	onClose     func()
	clients     map[*Client]bool
	register    chan *Client
	unregister  chan *Client
	incoming    chan IncomingMessage
	quit        chan struct{}
	done        chan struct{}
	stopOnce    sync.Once
}

// NewHub creates a hub for tbl. It closes itself once it has had no client
// for idle; a non-positive idle means DefaultIdleTimeout.
func NewHub(tbl *table.Table, generator *engine.Generator, rec metrics.Recorder, logger *zap.Logger, idle time.Duration) *Hub {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Hub{
		table:       tbl,
		generator:   generator,
		metrics:     rec,
		logger:      logger.With(zap.String("table", tbl.ID)),
		idleTimeout: idle,
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		incoming:    make(chan IncomingMessage, 256),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// OnClose sets fn to run on the Run goroutine after the hub has stopped,
// whether through Stop or the idle timeout. Call it before Run.
func (h *Hub) OnClose(fn func()) {
	h.onClose = fn
}

func (h *Hub) Run() {
	defer close(h.done)
	defer func() {
		if h.onClose != nil {
			h.onClose()
		}
	}()

	idle := time.NewTimer(h.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case client := <-h.register:
			idle.Stop()
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("client connected", zap.String("client", client.ID))
			h.sendTableUpdate()
			if setup := h.table.LastSetup(); setup != nil {
				client.SendEnvelope(protocol.MustEnvelope(protocol.MsgSetup, protocol.SetupMsg{
					TableID: h.table.ID,
					Setup:   setup,
				}))
			}

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			if ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			if ok {
				h.table.Leave(client.ID)
				h.sendTableUpdate()
				if h.registered() == 0 {
					idle.Reset(h.idleTimeout)
				}
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-idle.C:
			if h.registered() > 0 {
				continue
			}
			h.logger.Info("table idle, closing")
			h.stopOnce.Do(func() { close(h.quit) })
			return

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop ends Run and waits for it to return. It is safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
	<-h.done
}

// Register attaches a client. It reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// Deliver queues a message for the hub. It reports false once the hub has
// stopped.
func (h *Hub) Deliver(msg IncomingMessage) bool {
	select {
	case h.incoming <- msg:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) registered() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	// A client's last messages can still be queued after it unregistered
	// and its send channel was closed.
	h.mu.Lock()
	_, ok := h.clients[msg.Client]
	h.mu.Unlock()
	if !ok {
		h.logger.Debug("dropping message from departed client", zap.String("type", msg.Envelope.Type))
		return
	}

	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgGenerate:
		h.handleGenerate(msg)
	default:
		h.sendError(msg.Client, "unknown message type "+msg.Envelope.Type)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	if err := h.table.Join(msg.Client.ID, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendTableUpdate()
}

func (h *Hub) handleGenerate(msg IncomingMessage) {
	var req protocol.GenerateMsg
	if err := msg.Envelope.Decode(&req); err != nil {
		h.sendError(msg.Client, "invalid generate message")
		return
	}
	member, ok := h.table.Member(msg.Client.ID)
	if !ok {
		h.sendError(msg.Client, table.ErrNotSeated.Error())
		return
	}

	setup, err := h.generator.Generate(req.Options)
	if err != nil {
		h.recordFailure(err)
		h.sendError(msg.Client, err.Error())
		return
	}
	if err := h.table.Record(member.ID, setup); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.metrics.SetupGenerated(req.Options.PlayerCount)
	h.logger.Info("setup generated",
		zap.String("by", member.Name),
		zap.Int("players", req.Options.PlayerCount))

	h.broadcastAll(protocol.MustEnvelope(protocol.MsgSetup, protocol.SetupMsg{
		TableID:     h.table.ID,
		GeneratedBy: member.Name,
		Setup:       setup,
	}))
}

func (h *Hub) recordFailure(err error) {
	if errors.Is(err, engine.ErrConfiguration) {
		h.metrics.SetupFailed(metrics.FailureConfiguration)
		return
	}
	h.metrics.SetupFailed(metrics.FailureInternal)
	h.logger.Error("generate failed", zap.Error(err))
}

func (h *Hub) sendTableUpdate() {
	members := h.table.Members()
	tms := make([]protocol.TableMember, len(members))
	for i, m := range members {
		tms[i] = protocol.TableMember{ID: m.ID, Name: m.Name, Host: m.Host}
	}
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgTableUpdate, protocol.TableUpdate{
		TableID: h.table.ID,
		Members: tms,
	}))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.SendEnvelope(env)
	}
}

func (h *Hub) sendError(client *Client, message string) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message}))
}
