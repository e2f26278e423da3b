// Package websocket 向展示层推送登记册变更：每次提交后广播新记录与重算的统计。
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"courrier/backend/internal/domain"
)

// MessageType 定义 WebSocket 消息类型
type MessageType string

const (
	MessageTypeMailCreated MessageType = "mail.created" // 新信件入册
	MessageTypeStats       MessageType = "stats"        // 统计已重算
	MessageTypePing        MessageType = "ping"
	MessageTypePong        MessageType = "pong"
)

// Message 定义 WebSocket 消息结构
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// upgraderFactory 创建带有 Origin 验证的 WebSocket 升级器
func upgraderFactory(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			for _, origin := range allowedOrigins {
				if origin == "*" {
					return true
				}
			}

			requestOrigin := r.Header.Get("Origin")
			if requestOrigin == "" {
				// 没有 Origin 视为同源请求
				return true
			}

			for _, origin := range allowedOrigins {
				if requestOrigin == origin {
					return true
				}
			}
			return false
		},
	}
}

// Client 代表一个已连接的展示层客户端
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
	log  *zap.Logger
}

// Hub 管理所有 WebSocket 连接并负责广播
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
	log        *zap.Logger
}

// NewHub 创建 WebSocket Hub
func NewHub(allowedOrigins []string, log *zap.Logger) *Hub {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		upgrader:   upgraderFactory(allowedOrigins),
		log:        log,
	}
}

// Run 运行 Hub 主循环，直到 ctx 结束。
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
			h.log.Debug("websocket client connected", zap.String("client_id", client.id))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.mu.Unlock()
			h.log.Debug("websocket client disconnected", zap.String("client_id", client.id))

		case payload := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// 发送缓冲已满的客户端直接放弃本条消息
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastMailCreated 广播新入册的信件及重算后的统计。
func (h *Hub) BroadcastMailCreated(record *domain.MailRecord, stats domain.MailStats) {
	h.send(MessageTypeMailCreated, record)
	h.send(MessageTypeStats, stats)
}

// send 编码并投递一条广播消息。
func (h *Hub) send(msgType MessageType, data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		h.log.Error("failed to marshal websocket payload", zap.Error(err))
		return
	}

	payload, err := json.Marshal(Message{
		Type:      msgType,
		Data:      raw,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		h.log.Error("failed to marshal websocket message", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.log.Warn("websocket broadcast channel full, dropping message",
			zap.String("type", string(msgType)),
		)
	}
}

// HandleConnection 处理 WebSocket 升级请求（gin 处理器）。
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 64),
		hub:  h,
		log:  h.log,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// closeAll 关闭全部客户端连接。
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		close(client.send)
		_ = client.conn.Close()
		delete(h.clients, id)
	}
}

// readPump 读取客户端消息，仅响应 ping。
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		if msg.Type == MessageTypePing {
			pong, _ := json.Marshal(Message{
				Type:      MessageTypePong,
				Timestamp: time.Now().UTC(),
			})
			select {
			case c.send <- pong:
			default:
			}
		}
	}
}

// writePump 向客户端写消息并维持心跳。
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
