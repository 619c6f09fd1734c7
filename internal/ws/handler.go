package ws

import (
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mcoot/quickdrawgame-go/internal/core"
	"github.com/mcoot/quickdrawgame-go/internal/model"
)

// ClientMessage is the envelope for every client -> server message
type ClientMessage struct {
	Type    model.EventType `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler upgrades connections, mints a connection id, and runs the
// pumps. When the read side ends for any reason, the disconnect is
// funnelled into the core for cleanup.
func Handler(hub *Hub, c *core.Core, logger *slog.Logger) http.HandlerFunc {
	logger = logger.With(slog.String("component", "ws"))

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Clients are game builds, not browsers; origin is not checked
		CheckOrigin: func(*http.Request) bool { return true },
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", slog.Any("error", err))
			return
		}

		id := model.PlayerID(uuid.NewString())
		client := newClient(id, conn)
		hub.add(client)

		go client.writePump()
		client.readPump(func(id model.PlayerID, data []byte) {
			dispatch(c, id, data, logger)
		})

		hub.remove(client)
		c.Disconnect(id)
	}
}

// dispatch decodes one inbound envelope and routes it to the core.
// Malformed messages and unknown types are logged and dropped; the
// protocol never errors a connection for them.
func dispatch(c *core.Core, id model.PlayerID, data []byte, logger *slog.Logger) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.Warn("ws bad message",
			slog.String("player_id", string(id)),
			slog.Any("error", err))
		return
	}

	switch msg.Type {
	case model.EventRegister:
		var p model.RegisterPayload
		if !decode(msg.Payload, &p, id, msg.Type, logger) {
			return
		}
		c.Register(id, p)

	case model.EventQuickPlay:
		var p model.QuickPlayPayload
		if !decode(msg.Payload, &p, id, msg.Type, logger) {
			return
		}
		c.QuickPlay(id, p)

	case model.EventCreateRoom:
		var p model.CreateRoomPayload
		if !decode(msg.Payload, &p, id, msg.Type, logger) {
			return
		}
		c.CreateRoom(id, p)

	case model.EventJoinRoom:
		var p model.JoinRoomPayload
		if !decode(msg.Payload, &p, id, msg.Type, logger) {
			return
		}
		c.JoinRoom(id, p)

	case model.EventListRooms:
		c.ListRooms(id)

	case model.EventGetLeaderboard:
		c.GetLeaderboard(id)

	case model.EventStartGame:
		c.StartGame(id)

	case model.EventGameAction:
		var p model.GameActionPayload
		if !decode(msg.Payload, &p, id, msg.Type, logger) {
			return
		}
		c.GameAction(id, p)

	case model.EventGameOver:
		var p model.GameOverPayload
		if !decode(msg.Payload, &p, id, msg.Type, logger) {
			return
		}
		c.GameOver(id, p)

	default:
		logger.Warn("ws unknown message type",
			slog.String("player_id", string(id)),
			slog.String("type", string(msg.Type)))
	}
}

func decode(raw json.RawMessage, into any, id model.PlayerID, t model.EventType, logger *slog.Logger) bool {
	if len(raw) == 0 {
		// A missing payload decodes as the zero value
		return true
	}
	if err := json.Unmarshal(raw, into); err != nil {
		logger.Warn("ws bad payload",
			slog.String("player_id", string(id)),
			slog.String("type", string(t)),
			slog.Any("error", err))
		return false
	}
	return true
}
