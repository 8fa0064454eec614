package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Vadim-maker-source/vexnum/pkg/logger"
)

// Client represents a WebSocket connection client
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// FrameHandler receives decoded client frames and disconnect signals.
// Wired after construction to avoid a cycle with the viewer package.
type FrameHandler interface {
	HandleFrame(client *Client, frame Frame)
	HandleDisconnect(userID string)
}

// Manager manages all active WebSocket connections. Register,
// unregister and outbound events flow through bounded channels consumed
// by a single loop, so client-map mutations and deliveries are
// serialized.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	outbound   chan targetedMessage
	handler    FrameHandler
	mutex      sync.RWMutex
}

type targetedMessage struct {
	userID  string
	payload []byte
}

const outboundQueueSize = 256

// NewManager creates a new WebSocket connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		outbound:   make(chan targetedMessage, outboundQueueSize),
	}
}

func (m *Manager) SetFrameHandler(handler FrameHandler) {
	m.handler = handler
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()
				if m.handler != nil {
					m.handler.HandleDisconnect(client.UserID)
				}
				logger.Info("Client unregistered: %s", client.UserID)

			case msg := <-m.outbound:
				m.mutex.RLock()
				client, ok := m.clients[msg.userID]
				m.mutex.RUnlock()
				if !ok {
					continue
				}
				select {
				case client.Send <- msg.payload:
				default:
					close(client.Send)
					m.mutex.Lock()
					delete(m.clients, client.UserID)
					m.mutex.Unlock()
				}

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser queues a message for a specific user. Messages to users
// without an open connection are dropped.
func (m *Manager) SendToUser(userID string, message []byte) {
	select {
	case m.outbound <- targetedMessage{userID: userID, payload: message}:
	default:
		logger.Warn("Outbound queue full, dropping message for user %s", userID)
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("websocket read error: %v", err)
			}
			break
		}

		m.HandleClientMessage(c, message)
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		err := c.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			logger.Error("websocket write error: %v", err)
			return
		}
	}
}
