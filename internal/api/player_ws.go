package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/frabrice/insightium/internal/models"
	"github.com/frabrice/insightium/internal/playersync"
)

// inboundFrame is a message from the front end: either a user intent
// ("play") or a relayed postMessage event from the embedded player
// ("player_event", tagged with the event's origin and the item the
// surface is showing).
type inboundFrame struct {
	Type    string          `json:"type"`
	ItemID  string          `json:"itemId,omitempty"`
	Origin  string          `json:"origin,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// outboundFrame is a message to the front end: a command to forward into
// the player iframe, an instruction to load a new item, or a state
// snapshot after each transition.
type outboundFrame struct {
	Type    string              `json:"type"`
	Item    *models.MediaItem   `json:"item,omitempty"`
	Command *playersync.Command `json:"command,omitempty"`
	Status  *playersync.Status  `json:"status,omitempty"`
	Message string              `json:"message,omitempty"`
}

// socketPort forwards controller output over the session's WebSocket.
// gorilla connections do not allow concurrent writers, so every write
// shares one mutex; the poll goroutine and the read loop both send.
type socketPort struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (p *socketPort) Load(item models.MediaItem) {
	p.write(outboundFrame{Type: "load", Item: &item})
}

func (p *socketPort) Send(cmd playersync.Command) {
	p.write(outboundFrame{Type: "command", Command: &cmd})
}

func (p *socketPort) write(frame outboundFrame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Fire-and-forget, like the postMessage channel it bridges: a write
	// error just means the session is going away.
	if err := p.conn.WriteJSON(frame); err != nil {
		log.Printf("Player session write failed: %v", err)
	}
}

// PlayerSocketHandler owns one player sync controller per connection.
func (app *App) PlayerSocketHandler(w http.ResponseWriter, r *http.Request) {
	allowed := make(map[string]bool, len(app.AllowedOrigins))
	for _, origin := range app.AllowedOrigins {
		allowed[origin] = true
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin]
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Player session upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	port := &socketPort{conn: conn}

	opts := []playersync.Option{}
	if app.ProgressRepo != nil {
		opts = append(opts, playersync.WithProgressFunc(func(itemID string, position, duration float64) {
			if err := app.ProgressRepo.Upsert(sessionID, itemID, position, duration); err != nil {
				log.Printf("Player session %s: recording progress failed: %v", sessionID, err)
			}
		}))
	}

	controller := playersync.NewController(port, app.ItemRepo, app.PlayerOrigin, opts...)
	defer controller.Close()

	log.Printf("Player session %s connected", sessionID)

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			log.Printf("Player session %s disconnected: %v", sessionID, err)
			return
		}

		switch frame.Type {
		case "play":
			if err := controller.RequestPlay(frame.ItemID); err != nil {
				port.write(outboundFrame{Type: "error", Message: err.Error()})
				continue
			}
		case "player_event":
			controller.HandleMessage(frame.Origin, frame.ItemID, frame.Payload)
		default:
			continue
		}

		status := controller.Status()
		port.write(outboundFrame{Type: "status", Status: &status})
	}
}
