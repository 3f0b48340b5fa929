package room

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrTooManyRooms = errors.New("room limit reached")
)

// Manager tracks every open room.
type Manager struct {
	logger   *zap.Logger
	maxRooms int

	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewManager creates an empty room manager.
func NewManager(maxRooms int, logger *zap.Logger) *Manager {
	return &Manager{
		logger:   logger,
		maxRooms: maxRooms,
		rooms:    make(map[string]*Room),
	}
}

// Create opens a new room owned by the given player. A non-empty password
// is bcrypt-hashed before storage; the plaintext is never kept.
func (m *Manager) Create(ownerID, ownerName, roomName, password string) (*Room, error) {
	var hash []byte
	if password != "" {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}

	room := &Room{
		ID:           uuid.NewString(),
		Name:         roomName,
		OwnerID:      ownerID,
		passwordHash: hash,
		createdAt:    time.Now(),
	}
	room.members = append(room.members, &Member{ID: ownerID, Name: ownerName})

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.maxRooms > 0 && len(m.rooms) >= m.maxRooms {
		return nil, ErrTooManyRooms
	}
	m.rooms[room.ID] = room

	m.logger.Info("room created",
		zap.String("room_id", room.ID),
		zap.String("owner_id", ownerID),
		zap.Bool("password", room.HasPassword()),
	)
	return room, nil
}

// Get returns the room with the given id.
func (m *Manager) Get(roomID string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Remove drops a room, typically after its game finishes.
func (m *Manager) Remove(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, roomID)
}

// List returns all open rooms.
func (m *Manager) List() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}
