package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

// CaseFeed pushes case lifecycle events to connected dashboards so the
// authority view updates without polling.
type CaseFeed struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

func NewCaseFeed() *CaseFeed {
	return &CaseFeed{
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleCasesWebSocket upgrades the connection and keeps it registered
// until the peer goes away
func (f *CaseFeed) HandleCasesWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorf("websocket upgrade error: %v", err)
		return
	}

	f.mutex.Lock()
	f.clients[conn] = true
	f.mutex.Unlock()
	zap.S().Debug("client connected to /ws/cases")

	conn.SetCloseHandler(func(code int, text string) error {
		f.mutex.Lock()
		delete(f.clients, conn)
		f.mutex.Unlock()
		zap.S().Debug("client disconnected from /ws/cases")
		return nil
	})

	// Keep connection alive
	for {
		if _, _, err := conn.NextReader(); err != nil {
			f.mutex.Lock()
			delete(f.clients, conn)
			f.mutex.Unlock()
			conn.Close()
			break
		}
	}
}

// Broadcast sends the event to every connected client, dropping any
// connection that fails to write
func (f *CaseFeed) Broadcast(eventType string, data interface{}) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	for conn := range f.clients {
		err := conn.WriteJSON(map[string]interface{}{
			"event": eventType,
			"data":  data,
		})
		if err != nil {
			zap.S().Errorf("error broadcasting %s event: %v", eventType, err)
			delete(f.clients, conn)
			conn.Close()
		}
	}
}
