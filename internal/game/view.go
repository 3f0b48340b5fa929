package game

import (
	"github.com/MaxLezano/bang-online-sub000/internal/game/cards"
	"github.com/MaxLezano/bang-online-sub000/internal/game/rules"
)

const viewLogTail = 20

// SeatView is what one player sees of another seat. Roles stay hidden
// except the sheriff's, the viewer's own, and those of the dead.
type SeatView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Role         Role         `json:"role,omitempty"`
	Character    string       `json:"character,omitempty"`
	HP           int          `json:"hp"`
	MaxHP        int          `json:"max_hp"`
	HandCount    int          `json:"hand_count"`
	Table        []cards.Card `json:"table"`
	Position     int          `json:"position"`
	IsDead       bool         `json:"is_dead"`
	IsBot        bool         `json:"is_bot"`
	WeaponRange  int          `json:"weapon_range"`
	DistanceMod  int          `json:"distance_mod"`
	ViewDistance int          `json:"view_distance"`
}

// PlayerView is the game state as rendered for one participant.
type PlayerView struct {
	GameID            string         `json:"game_id"`
	SelfID            string         `json:"self_id"`
	Phase             string         `json:"phase"`
	TurnPlayerID      string         `json:"turn_player_id"`
	Players           []SeatView     `json:"players"`
	Hand              []cards.Card   `json:"hand"`
	CharacterChoices  []string       `json:"character_choices,omitempty"`
	SelectedCardID    string         `json:"selected_card_id,omitempty"`
	DeckCount         int            `json:"deck_count"`
	DiscardCount      int            `json:"discard_count"`
	DiscardTop        *cards.Card    `json:"discard_top,omitempty"`
	Pending           *PendingAction `json:"pending,omitempty"`
	QueueRemaining    int            `json:"queue_remaining"`
	NextTargetID      string         `json:"next_target_id,omitempty"`
	GeneralStoreCards []cards.Card   `json:"general_store_cards,omitempty"`
	StorePickerID     string         `json:"store_picker_id,omitempty"`
	KitCarlsonCards   []cards.Card   `json:"kit_carlson_cards,omitempty"`
	Logs              []string       `json:"logs,omitempty"`
	GameOver          bool           `json:"game_over"`
	Winner            string         `json:"winner,omitempty"`
}

// ViewFor projects the state for one player. The presentation layer must
// treat the result as read-only.
func (s *GameState) ViewFor(playerID string) *PlayerView {
	view := &PlayerView{
		GameID:            s.GameID,
		SelfID:            playerID,
		Phase:             s.Phase.String(),
		TurnPlayerID:      s.CurrentPlayer().ID,
		DeckCount:         len(s.Deck),
		DiscardCount:      len(s.DiscardPile),
		QueueRemaining:    s.ResponseQueue.Remaining(),
		GeneralStoreCards: append([]cards.Card(nil), s.GeneralStoreCards...),
		StorePickerID:     s.StorePickerID,
		GameOver:          s.GameOver,
		Winner:            s.Winner,
	}
	if len(s.DiscardPile) > 0 {
		top := s.DiscardPile[len(s.DiscardPile)-1]
		view.DiscardTop = &top
	}
	if s.Pending != nil {
		pending := *s.Pending
		view.Pending = &pending
	}
	if next, ok := s.ResponseQueue.Peek(); ok {
		view.NextTargetID = next
	}
	if tail := len(s.Logs) - viewLogTail; tail > 0 {
		view.Logs = append([]string(nil), s.Logs[tail:]...)
	} else {
		view.Logs = append([]string(nil), s.Logs...)
	}

	for _, p := range s.Players {
		seat := SeatView{
			ID:           p.ID,
			Name:         p.Name,
			Character:    p.Character,
			HP:           p.HP,
			MaxHP:        p.MaxHP,
			HandCount:    len(p.Hand),
			Table:        append([]cards.Card(nil), p.Table...),
			Position:     p.Position,
			IsDead:       p.IsDead,
			IsBot:        p.IsBot,
			WeaponRange:  s.WeaponRange(p),
			DistanceMod:  s.DistanceMod(p),
			ViewDistance: s.ViewDistance(p),
		}
		if p.Role == RoleSheriff || p.IsDead || p.ID == playerID || s.GameOver {
			seat.Role = p.Role
		}
		view.Players = append(view.Players, seat)

		if p.ID == playerID {
			view.Hand = append([]cards.Card(nil), p.Hand...)
			view.CharacterChoices = append([]string(nil), p.CharacterChoices...)
			view.SelectedCardID = s.SelectedCardID
		}
	}

	// The reveal pool is private to the player resolving it.
	if s.Phase == rules.PhaseKitCarlsonDiscard && s.CurrentPlayer().ID == playerID {
		view.KitCarlsonCards = append([]cards.Card(nil), s.KitCarlsonCards...)
	}

	return view
}

// ViewFor returns the per-player projection of a game's current state.
func (e *BangEngine) ViewFor(gameID, playerID string) (*PlayerView, error) {
	session, err := e.session(gameID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state.ViewFor(playerID), nil
}
