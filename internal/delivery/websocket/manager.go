package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
	sendBufferSize = 16
)

// MessageTypeState - тип сообщения с моделью отображения.
const MessageTypeState = "state"

// SnapshotFunc возвращает текущую модель, которую получает только что подключенный клиент.
type SnapshotFunc func() interface{}

// StateHub рассылает изменения состояния всем подключенным вкладкам.
type StateHub struct {
	clients    map[uuid.UUID]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	stop       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
	snapshot   SnapshotFunc
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

// Client представляет WebSocket-клиента
type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
	Hub  *StateHub
	Send chan []byte
}

// Message представляет сообщение для отправки через WebSocket
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// NewStateHub создает хаб. allowedOrigins пустой - разрешены все источники.
func NewStateHub(snapshot SnapshotFunc, allowedOrigins []string, logger *zap.Logger) *StateHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &StateHub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, sendBufferSize),
		stop:       make(chan struct{}),
		snapshot:   snapshot,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(origins) == 0 || origin == "" || origins[origin]
			},
		},
		logger: logger.Named("StateHub"),
	}
}

// Start запускает хаб в отдельной горутине
func (h *StateHub) Start() {
	go h.run()
}

// Stop останавливает хаб и закрывает все соединения
func (h *StateHub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// ClientCount возвращает число подключенных клиентов
func (h *StateHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *StateHub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			// Снимок берется уже после регистрации и в той же горутине, что и рассылка:
			// любое более позднее изменение придет клиенту следующим сообщением
			h.sendSnapshot(client)
			h.logger.Debug("Client connected", zap.String("client_id", client.ID.String()))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				close(client.Send)
				delete(h.clients, client.ID)
				h.logger.Debug("Client disconnected", zap.String("client_id", client.ID.String()))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.logger.Error("Failed to marshal websocket message", zap.Error(err))
				continue
			}
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.Send <- data:
				default:
					// Медленный клиент: отключаем, он получит свежий снимок при переподключении
					close(client.Send)
					delete(h.clients, id)
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// sendSnapshot кладет текущее состояние первым сообщением в очередь клиента
func (h *StateHub) sendSnapshot(client *Client) {
	if h.snapshot == nil {
		return
	}
	data, err := json.Marshal(Message{Type: MessageTypeState, Payload: h.snapshot()})
	if err != nil {
		h.logger.Error("Failed to marshal state snapshot", zap.Error(err))
		return
	}
	// Очередь нового клиента пуста, отправка не блокируется
	client.Send <- data
}

// Broadcast отправляет сообщение всем подключенным клиентам
func (h *StateHub) Broadcast(messageType string, payload interface{}) {
	select {
	case h.broadcast <- Message{Type: messageType, Payload: payload}:
	case <-h.stop:
	}
}

// Handler обрабатывает новые WebSocket-соединения
func (h *StateHub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("Failed to upgrade websocket connection", zap.Error(err))
			return
		}

		client := &Client{
			ID:   uuid.New(),
			Conn: conn,
			Hub:  h,
			Send: make(chan []byte, sendBufferSize),
		}

		select {
		case h.register <- client:
		case <-h.stop:
			conn.Close()
			return
		}

		go client.readPump()
		go client.writePump()
	})
}

// readPump читает входящие сообщения только ради pong и закрытия соединения
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.stop:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Debug("Websocket read error", zap.String("client_id", c.ID.String()), zap.Error(err))
			}
			return
		}
	}
}

// writePump отправляет сообщения клиенту
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Одно сообщение на кадр: клиент разбирает каждый кадр как JSON
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
