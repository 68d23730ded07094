package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"retail_pos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type orderEvent struct {
	Event string       `json:"event"` // order_created, order_status_changed
	Order models.Order `json:"order"`
}

// OrderStream pushes order events to connected back-office screens.
// It implements services.OrderNotifier.
type OrderStream struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewOrderStream() *OrderStream {
	return &OrderStream{clients: make(map[*websocket.Conn]bool)}
}

func (s *OrderStream) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			break
		}
	}
}

func (s *OrderStream) broadcast(event orderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(s.clients, client)
		}
	}
}

func (s *OrderStream) OrderCreated(order models.Order) {
	s.broadcast(orderEvent{Event: "order_created", Order: order})
}

func (s *OrderStream) OrderStatusChanged(order models.Order) {
	s.broadcast(orderEvent{Event: "order_status_changed", Order: order})
}
