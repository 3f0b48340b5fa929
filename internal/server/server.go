// Package server exposes the game engine over HTTP and WebSockets. Each
// room gets a hub goroutine that serializes every lobby and game message.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MaxLezano/bang-online-sub000/internal/config"
	"github.com/MaxLezano/bang-online-sub000/internal/game"
	"github.com/MaxLezano/bang-online-sub000/internal/repository"
	"github.com/MaxLezano/bang-online-sub000/internal/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Game clients are first-party; origin policy is enforced upstream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server is the HTTP/WebSocket front end.
type Server struct {
	cfg     config.ServerConfig
	engine  *game.BangEngine
	rooms   *room.Manager
	matches *repository.MatchRepository
	logger  *zap.Logger

	replayDir string

	mu   sync.Mutex
	hubs map[string]*Hub

	httpServer *http.Server
}

// New assembles the server. matches may be nil when persistence is off.
func New(cfg config.ServerConfig, gameCfg config.GameConfig, engine *game.BangEngine, rooms *room.Manager, matches *repository.MatchRepository, logger *zap.Logger) *Server {
	return &Server{
		cfg:       cfg,
		engine:    engine,
		rooms:     rooms,
		matches:   matches,
		replayDir: gameCfg.ReplayDir,
		logger:    logger,
		hubs:      make(map[string]*Hub),
	}
}

// Start blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/rooms", s.handleRooms)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.httpServer = &http.Server{Addr: s.cfg.Address, Handler: mux}
	s.logger.Info("server listening", zap.String("address", s.cfg.Address))

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the HTTP listener and every hub.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, hub := range s.hubs {
		hub.Stop()
	}
	s.hubs = make(map[string]*Hub)
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

type createRoomRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	RoomName string `json:"room_name"`
	Password string `json:"password,omitempty"`
}

type roomInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Members   int    `json:"members"`
	Started   bool   `json:"started"`
	Protected bool   `json:"protected"`
}

// handleRooms lists open rooms (GET) or creates one (POST).
func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rooms := s.rooms.List()
		infos := make([]roomInfo, 0, len(rooms))
		for _, rm := range rooms {
			infos = append(infos, roomInfo{
				ID:        rm.ID,
				Name:      rm.Name,
				Members:   len(rm.Members()),
				Started:   rm.Started(),
				Protected: rm.HasPassword(),
			})
		}
		writeJSON(w, http.StatusOK, infos)

	case http.MethodPost:
		var req createRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.PlayerID == "" || req.Name == "" {
			http.Error(w, "player_id and name are required", http.StatusBadRequest)
			return
		}
		rm, err := s.rooms.Create(req.PlayerID, req.Name, req.RoomName, req.Password)
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		s.startHub(rm)
		writeJSON(w, http.StatusCreated, roomInfo{ID: rm.ID, Name: rm.Name, Members: 1, Protected: rm.HasPassword()})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleWS upgrades a connection and binds it to its room's hub.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		http.Error(w, "room query parameter required", http.StatusBadRequest)
		return
	}
	hub := s.hub(roomID)
	if hub == nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(hub, conn, s.logger)
	hub.register <- client
	go client.writePump()
	go client.readPump()
}

func (s *Server) startHub(rm *room.Room) {
	hub := newHub(rm, s.engine, s.rooms, s.matches, s.replayDir, s.logger)
	hub.onClose = func() {
		s.mu.Lock()
		delete(s.hubs, rm.ID)
		s.mu.Unlock()
	}
	s.mu.Lock()
	s.hubs[rm.ID] = hub
	s.mu.Unlock()
	go hub.Run()
}

func (s *Server) hub(roomID string) *Hub {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hubs[roomID]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
