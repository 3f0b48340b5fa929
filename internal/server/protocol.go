package server

import "encoding/json"

// Message types carried in envelopes. Everything that is not a lobby
// message is treated as a game action.
const (
	MsgJoin        = "join"
	MsgReady       = "ready"
	MsgAddBot      = "add_bot"
	MsgStartGame   = "start_game"
	MsgAction      = "action"
	MsgError       = "error"
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"
	MsgGameOver    = "game_over"
)

// Envelope is the wire format for every WebSocket message, both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope wraps a payload.
func NewEnvelope(typ string, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: typ, Payload: data}, nil
}

// JoinMsg is the first message a client sends after connecting.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

// ReadyMsg toggles the sender's lobby ready flag.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// AddBotMsg seats a bot in the lobby.
type AddBotMsg struct {
	Name string `json:"name"`
}

// ErrorMsg reports a rejected message back to its sender.
type ErrorMsg struct {
	Message string `json:"message"`
}

// LobbyMember mirrors room membership for clients.
type LobbyMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	IsBot bool   `json:"is_bot"`
}

// LobbyUpdate is broadcast whenever room membership changes.
type LobbyUpdate struct {
	RoomID  string        `json:"room_id"`
	Name    string        `json:"name"`
	OwnerID string        `json:"owner_id"`
	Members []LobbyMember `json:"members"`
	Started bool          `json:"started"`
}

// GameOverMsg is broadcast once when a game ends.
type GameOverMsg struct {
	Winner string `json:"winner"`
}
