// Package room manages pre-game lobbies: players gather in a room, mark
// themselves ready and the owner starts the match. Rooms map one-to-one to
// engine games once started.
package room

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	minSeats = 2
	maxSeats = 7
)

var (
	ErrRoomFull      = errors.New("room is full")
	ErrWrongPassword = errors.New("wrong room password")
	ErrAlreadyJoined = errors.New("player already in the room")
	ErrNotInRoom     = errors.New("player not in the room")
	ErrNotOwner      = errors.New("only the room owner may do that")
	ErrAlreadyActive = errors.New("game already started")
	ErrNotReady      = errors.New("not all players are ready")
)

// Member is one player in a room.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	IsBot bool   `json:"is_bot"`
}

// Room is a joinable lobby. A non-empty password hash gates joining.
type Room struct {
	mu           sync.Mutex
	ID           string
	Name         string
	OwnerID      string
	passwordHash []byte
	members      []*Member
	started      bool
	createdAt    time.Time
}

// Join adds a player after checking capacity and password.
func (r *Room) Join(playerID, name, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyActive
	}
	if len(r.passwordHash) > 0 {
		if bcrypt.CompareHashAndPassword(r.passwordHash, []byte(password)) != nil {
			return ErrWrongPassword
		}
	}
	if len(r.members) >= maxSeats {
		return ErrRoomFull
	}
	for _, m := range r.members {
		if m.ID == playerID {
			return ErrAlreadyJoined
		}
	}
	r.members = append(r.members, &Member{ID: playerID, Name: name})
	return nil
}

// AddBot seats a bot. Bots are always ready.
func (r *Room) AddBot(requesterID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requesterID != r.OwnerID {
		return ErrNotOwner
	}
	if r.started {
		return ErrAlreadyActive
	}
	if len(r.members) >= maxSeats {
		return ErrRoomFull
	}
	id := fmt.Sprintf("bot-%s-%d", r.ID[:8], len(r.members))
	r.members = append(r.members, &Member{ID: id, Name: name, Ready: true, IsBot: true})
	return nil
}

// Leave removes a player. Ownership passes to the next human member.
func (r *Room) Leave(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.members {
		if m.ID == playerID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			if playerID == r.OwnerID {
				for _, next := range r.members {
					if !next.IsBot {
						r.OwnerID = next.ID
						break
					}
				}
			}
			return nil
		}
	}
	return ErrNotInRoom
}

// SetReady flips a player's ready flag.
func (r *Room) SetReady(playerID string, ready bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m.ID == playerID {
			m.Ready = ready
			return nil
		}
	}
	return ErrNotInRoom
}

// Start marks the room active once the owner asks and everyone is ready.
// Returns the member list in seat order.
func (r *Room) Start(requesterID string) ([]Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requesterID != r.OwnerID {
		return nil, ErrNotOwner
	}
	if r.started {
		return nil, ErrAlreadyActive
	}
	if len(r.members) < minSeats {
		return nil, fmt.Errorf("%w: need at least %d players", ErrNotReady, minSeats)
	}
	for _, m := range r.members {
		if !m.Ready {
			return nil, fmt.Errorf("%w: %s", ErrNotReady, m.Name)
		}
	}

	r.started = true
	seats := make([]Member, len(r.members))
	for i, m := range r.members {
		seats[i] = *m
	}
	return seats, nil
}

// Members returns a snapshot of the current member list.
func (r *Room) Members() []Member {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := make([]Member, len(r.members))
	for i, m := range r.members {
		members[i] = *m
	}
	return members
}

// Started reports whether the game has begun.
func (r *Room) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// HasPassword reports whether joining requires a password.
func (r *Room) HasPassword() bool {
	return len(r.passwordHash) > 0
}
