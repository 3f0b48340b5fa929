package server

import (
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/MaxLezano/bang-online-sub000/internal/game"
	"github.com/MaxLezano/bang-online-sub000/internal/repository"
	"github.com/MaxLezano/bang-online-sub000/internal/room"
)

// Hub owns one room's connections and drives its game. All message
// handling runs on the single Run goroutine, so the engine sees a strict
// sequence of actions per game.
type Hub struct {
	roomID  string
	room    *room.Room
	engine  *game.BangEngine
	rooms   *room.Manager
	matches *repository.MatchRepository // nil when persistence is off
	logger  *zap.Logger

	replayDir string
	turnCount int
	announced bool
	onClose   func() // invoked when the drained hub retires itself

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan incomingMessage
	quit       chan struct{}
}

func newHub(r *room.Room, engine *game.BangEngine, rooms *room.Manager, matches *repository.MatchRepository, replayDir string, logger *zap.Logger) *Hub {
	return &Hub{
		roomID:     r.ID,
		room:       r,
		engine:     engine,
		rooms:      rooms,
		matches:    matches,
		replayDir:  replayDir,
		logger:     logger.With(zap.String("room_id", r.ID)),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan incomingMessage, 256),
		quit:       make(chan struct{}),
	}
}

// Run processes registrations and messages until Stop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.broadcastLobby()
			if h.room.Started() {
				h.sendState(client)
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			// Once the result is announced the hub retires with its
			// last connection.
			if h.announced && len(h.clients) == 0 {
				if h.onClose != nil {
					h.onClose()
				}
				return
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			return
		}
	}
}

// Stop terminates the Run loop.
func (h *Hub) Stop() {
	close(h.quit)
}

func (h *Hub) handleMessage(msg incomingMessage) {
	switch msg.envelope.Type {
	case MsgJoin:
		h.handleJoin(msg)
	case MsgReady:
		h.handleReady(msg)
	case MsgAddBot:
		h.handleAddBot(msg)
	case MsgStartGame:
		h.handleStartGame(msg)
	case MsgAction:
		h.handleAction(msg)
	default:
		h.sendError(msg.client, "unknown message type "+msg.envelope.Type)
	}
}

func (h *Hub) handleJoin(msg incomingMessage) {
	var join JoinMsg
	if err := json.Unmarshal(msg.envelope.Payload, &join); err != nil {
		h.sendError(msg.client, "invalid join message")
		return
	}
	msg.client.PlayerID = join.PlayerID

	// Reconnects into a running game just bind the connection.
	if h.room.Started() {
		h.sendState(msg.client)
		return
	}
	if err := h.room.Join(join.PlayerID, join.Name, join.Password); err != nil {
		h.sendError(msg.client, err.Error())
		return
	}
	h.broadcastLobby()
}

func (h *Hub) handleReady(msg incomingMessage) {
	var ready ReadyMsg
	if err := json.Unmarshal(msg.envelope.Payload, &ready); err != nil {
		h.sendError(msg.client, "invalid ready message")
		return
	}
	if err := h.room.SetReady(msg.client.PlayerID, ready.Ready); err != nil {
		h.sendError(msg.client, err.Error())
		return
	}
	h.broadcastLobby()
}

func (h *Hub) handleAddBot(msg incomingMessage) {
	var addBot AddBotMsg
	if err := json.Unmarshal(msg.envelope.Payload, &addBot); err != nil {
		h.sendError(msg.client, "invalid add_bot message")
		return
	}
	if err := h.room.AddBot(msg.client.PlayerID, addBot.Name); err != nil {
		h.sendError(msg.client, err.Error())
		return
	}
	h.broadcastLobby()
}

func (h *Hub) handleStartGame(msg incomingMessage) {
	members, err := h.room.Start(msg.client.PlayerID)
	if err != nil {
		h.sendError(msg.client, err.Error())
		return
	}

	seats := make([]game.Seat, len(members))
	for i, m := range members {
		seats[i] = game.Seat{ID: m.ID, Name: m.Name, IsBot: m.IsBot}
	}
	if err := h.engine.CreateGame(h.roomID, seats, time.Now().UnixNano()); err != nil {
		h.sendError(msg.client, err.Error())
		return
	}
	if _, err := h.engine.ProcessAction(h.roomID, game.Action{Type: game.ActionInitGame}); err != nil {
		h.sendError(msg.client, err.Error())
		return
	}

	h.logger.Info("game started", zap.Int("players", len(seats)))
	h.broadcastLobby()
	h.broadcastState()
}

func (h *Hub) handleAction(msg incomingMessage) {
	var action game.Action
	if err := json.Unmarshal(msg.envelope.Payload, &action); err != nil {
		h.sendError(msg.client, "invalid action payload")
		return
	}
	// The socket identity is authoritative; clients cannot act for others.
	action.PlayerID = msg.client.PlayerID

	st, err := h.engine.ProcessAction(h.roomID, action)
	if err != nil {
		h.sendError(msg.client, err.Error())
		return
	}
	if action.Type == game.ActionStartTurn {
		h.turnCount++
	}

	h.broadcastState()
	if st.GameOver {
		h.finishGame(st)
	}
}

// finishGame announces the result, persists it and stores the replay.
func (h *Hub) finishGame(st *game.GameState) {
	if h.announced {
		return
	}
	h.announced = true

	if env, err := NewEnvelope(MsgGameOver, GameOverMsg{Winner: st.Winner}); err == nil {
		h.broadcastAll(env)
	}
	h.logger.Info("game finished",
		zap.String("winner", st.Winner),
		zap.Int("turns", h.turnCount),
	)

	if h.replayDir != "" {
		if replay, err := h.engine.GameReplay(h.roomID); err == nil {
			path := filepath.Join(h.replayDir, h.roomID+".replay")
			if err := replay.SaveToFile(path); err != nil {
				h.logger.Warn("replay save failed", zap.Error(err))
			}
		}
	}

	if h.matches != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result := repository.MatchResult{
			GameID:     st.GameID,
			Winner:     st.Winner,
			Players:    len(st.Players),
			Turns:      h.turnCount,
			FinishedAt: time.Now(),
		}
		players := make([]repository.PlayerResult, len(st.Players))
		for i, p := range st.Players {
			players[i] = repository.PlayerResult{
				GameID:    st.GameID,
				PlayerID:  p.ID,
				Role:      string(p.Role),
				Character: p.Character,
				Won:       wonWith(p.Role, st.Winner),
				Survived:  !p.IsDead,
			}
		}
		if err := h.matches.SaveResult(ctx, result, players); err != nil {
			h.logger.Warn("match result persist failed", zap.Error(err))
		}
	}

	// Evict the finished game and its room so neither map grows with
	// every match played.
	h.engine.RemoveGame(h.roomID)
	h.rooms.Remove(h.roomID)
}

// wonWith maps a role to whether the announced winner covers it.
func wonWith(role game.Role, winner string) bool {
	switch winner {
	case game.WinnerSheriff:
		return role == game.RoleSheriff || role == game.RoleDeputy
	case game.WinnerOutlaws:
		return role == game.RoleOutlaw
	case game.WinnerRenegade:
		return role == game.RoleRenegade
	}
	return false
}

// broadcastState sends each connected player their own projection.
func (h *Hub) broadcastState() {
	for client := range h.clients {
		h.sendState(client)
	}
}

func (h *Hub) sendState(client *Client) {
	view, err := h.engine.ViewFor(h.roomID, client.PlayerID)
	if err != nil {
		return
	}
	if env, err := NewEnvelope(MsgGameState, view); err == nil {
		client.sendEnvelope(env)
	}
}

func (h *Hub) broadcastLobby() {
	members := h.room.Members()
	lobbyMembers := make([]LobbyMember, len(members))
	for i, m := range members {
		lobbyMembers[i] = LobbyMember{ID: m.ID, Name: m.Name, Ready: m.Ready, IsBot: m.IsBot}
	}
	env, err := NewEnvelope(MsgLobbyUpdate, LobbyUpdate{
		RoomID:  h.roomID,
		Name:    h.room.Name,
		OwnerID: h.room.OwnerID,
		Members: lobbyMembers,
		Started: h.room.Started(),
	})
	if err != nil {
		return
	}
	h.broadcastAll(env)
}

func (h *Hub) broadcastAll(env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("marshal broadcast", zap.Error(err))
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn("send buffer full", zap.String("player_id", client.PlayerID))
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	if env, err := NewEnvelope(MsgError, ErrorMsg{Message: message}); err == nil {
		client.sendEnvelope(env)
	}
}
