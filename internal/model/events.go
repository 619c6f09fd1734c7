package model

import "time"

// EventType identifies the type of a wire event
type EventType string

// Client -> server events
const (
	EventRegister       EventType = "register"
	EventQuickPlay      EventType = "quick_play"
	EventCreateRoom     EventType = "create_room"
	EventJoinRoom       EventType = "join_room"
	EventListRooms      EventType = "list_rooms"
	EventGetLeaderboard EventType = "get_leaderboard"
	EventStartGame      EventType = "start_game"
	EventGameAction     EventType = "game_action"
	EventGameOver       EventType = "game_over"
)

// Server -> client events
const (
	EventRegistered         EventType = "registered"
	EventServerStats        EventType = "server_stats"
	EventQueued             EventType = "queued"
	EventQueueStatus        EventType = "queue_status"
	EventMatched            EventType = "matched"
	EventRoomCreated        EventType = "room_created"
	EventRoomListUpdated    EventType = "room_list_updated"
	EventPlayersReady       EventType = "players_ready"
	EventRoomsList          EventType = "rooms_list"
	EventLeaderboardUpdate  EventType = "leaderboard_update"
	EventGameStarted        EventType = "game_started"
	EventUpdateGame         EventType = "update_game"
	EventGameEnded          EventType = "game_ended"
	EventPlayerDisconnected EventType = "player_disconnected"
	EventRoomTimeout        EventType = "room_timeout"
	EventError              EventType = "error"
)

// Event is the envelope for every server -> client message
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// NewEvent wraps a payload in an envelope
func NewEvent(t EventType, payload any) Event {
	return Event{Type: t, Payload: payload}
}

// PlayerInfo is the wire form of a player inside event payloads
type PlayerInfo struct {
	ID      PlayerID `json:"player_id"`
	Name    string   `json:"name"`
	Loadout Loadout  `json:"loadout"`
	Wins    int      `json:"wins"`
	Losses  int      `json:"losses"`
}

// PlayerInfoFrom converts a Player to its wire form
func PlayerInfoFrom(p *Player) PlayerInfo {
	return PlayerInfo{
		ID:      p.ID,
		Name:    p.DisplayName,
		Loadout: p.Loadout,
		Wins:    p.Wins,
		Losses:  p.Losses,
	}
}

// Inbound payloads

// RegisterPayload is the payload of a register request
type RegisterPayload struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Weapon    string `json:"weapon"`
}

// QuickPlayPayload is the payload of a quick_play request
type QuickPlayPayload struct {
	Character     string `json:"character"`
	Weapon        string `json:"weapon"`
	SpawnDistance int    `json:"spawn_distance"`
}

// CreateRoomPayload is the payload of a create_room request
type CreateRoomPayload struct {
	Character     string `json:"character"`
	Weapon        string `json:"weapon"`
	SpawnDistance int    `json:"spawn_distance"`
}

// JoinRoomPayload is the payload of a join_room request
type JoinRoomPayload struct {
	RoomID    RoomID `json:"room_id"`
	Character string `json:"character"`
	Weapon    string `json:"weapon"`
}

// GameActionPayload is the payload of a game_action request.
// Data is relayed verbatim; the server does not interpret it.
type GameActionPayload struct {
	Action string `json:"action"`
	Data   any    `json:"data,omitempty"`
}

// GameOverPayload is the payload of a game_over request
type GameOverPayload struct {
	WinnerID PlayerID `json:"winner_id"`
}

// Outbound payloads

// RegisteredPayload confirms a successful registration
type RegisteredPayload struct {
	PlayerID       PlayerID `json:"player_id"`
	PlayerCount    int      `json:"player_count"`
	MaxPlayers     int      `json:"max_players"`
	AvailableSlots int      `json:"available_slots"`
}

// ServerStatsPayload is broadcast globally when the population changes
type ServerStatsPayload struct {
	PlayerCount    int `json:"player_count"`
	MaxPlayers     int `json:"max_players"`
	AvailableSlots int `json:"available_slots"`
}

// QueuedPayload confirms a quick_play enqueue with the 1-based position
type QueuedPayload struct {
	Position int `json:"position"`
}

// QueueStatusPayload reports the current queue length to everyone
type QueueStatusPayload struct {
	QueueLength int `json:"queue_length"`
}

// MatchedPayload notifies both players of an automatic match
type MatchedPayload struct {
	RoomID        RoomID     `json:"room_id"`
	Player1       PlayerInfo `json:"player1"`
	Player2       PlayerInfo `json:"player2"`
	SpawnDistance int        `json:"spawn_distance"`
}

// RoomCreatedPayload confirms a hosted room creation
type RoomCreatedPayload struct {
	RoomID RoomID      `json:"room_id"`
	Room   RoomSummary `json:"room"`
}

// RoomListPayload carries the public room listing
type RoomListPayload struct {
	Rooms []RoomSummary `json:"rooms"`
}

// PlayersReadyPayload notifies both occupants that the room is full
type PlayersReadyPayload struct {
	RoomID        RoomID     `json:"room_id"`
	Player1       PlayerInfo `json:"player1"`
	Player2       PlayerInfo `json:"player2"`
	SpawnDistance int        `json:"spawn_distance"`
}

// LeaderboardUpdatePayload carries the top ranking.
// OwnStats is only set on direct get_leaderboard responses.
type LeaderboardUpdatePayload struct {
	Top      []LeaderboardEntry `json:"top"`
	OwnStats *LeaderboardEntry  `json:"own_stats,omitempty"`
}

// GameStartedPayload announces the duel start with a sync timestamp
type GameStartedPayload struct {
	RoomID        RoomID     `json:"room_id"`
	Player1       PlayerInfo `json:"player1"`
	Player2       PlayerInfo `json:"player2"`
	SpawnDistance int        `json:"spawn_distance"`
	Timestamp     time.Time  `json:"timestamp"`
}

// UpdateGamePayload relays a gameplay action to the whole room
type UpdateGamePayload struct {
	PlayerID PlayerID `json:"player_id"`
	Action   string   `json:"action"`
	Data     any      `json:"data,omitempty"`
}

// GameEndedPayload reports the settled outcome to the room
type GameEndedPayload struct {
	WinnerID     PlayerID   `json:"winner_id"`
	Player1Stats PlayerInfo `json:"player1_stats"`
	Player2Stats PlayerInfo `json:"player2_stats"`
}

// PlayerDisconnectedPayload tells remaining occupants their opponent left
type PlayerDisconnectedPayload struct {
	PlayerID PlayerID `json:"player_id"`
	Message  string   `json:"message"`
}

// RoomTimeoutPayload tells occupants their room was reclaimed
type RoomTimeoutPayload struct {
	RoomID  RoomID `json:"room_id"`
	Message string `json:"message"`
}

// ErrorPayload reports a failure to the originating connection only
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
