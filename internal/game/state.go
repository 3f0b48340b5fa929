package game

import (
	"fmt"

	"github.com/MaxLezano/bang-online-sub000/internal/game/cards"
	"github.com/MaxLezano/bang-online-sub000/internal/game/characters"
	"github.com/MaxLezano/bang-online-sub000/internal/game/rules"
)

// Role is the hidden faction assignment of a player.
type Role string

const (
	RoleSheriff  Role = "sheriff"
	RoleDeputy   Role = "deputy"
	RoleOutlaw   Role = "outlaw"
	RoleRenegade Role = "renegade"
)

// Winner values reported once the game ends.
const (
	WinnerSheriff  = "sheriff"
	WinnerOutlaws  = "outlaws"
	WinnerRenegade = "renegade"
)

// AttackKind classifies a pending attack awaiting a response.
type AttackKind string

const (
	AttackBang    AttackKind = "bang"
	AttackGatling AttackKind = "gatling"
	AttackIndians AttackKind = "indians"
	AttackDuel    AttackKind = "duel"
)

// Player holds one seat's state. Seats are fixed: elimination flips IsDead
// but never removes the player, preserving the distance topology.
type Player struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Role             Role         `json:"role"`
	Character        string       `json:"character"`
	CharacterChoices []string     `json:"character_choices,omitempty"`
	HP               int          `json:"hp"`
	MaxHP            int          `json:"max_hp"`
	Hand             []cards.Card `json:"hand"`
	Table            []cards.Card `json:"table"`
	Position         int          `json:"position"`
	IsDead           bool         `json:"is_dead"`
	IsBot            bool         `json:"is_bot"`
}

// HandCard returns the hand card with the given id.
func (p *Player) HandCard(cardID string) (cards.Card, bool) {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return cards.Card{}, false
}

// RemoveFromHand removes and returns the hand card with the given id.
func (p *Player) RemoveFromHand(cardID string) (cards.Card, bool) {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return cards.Card{}, false
}

// RemoveFromTable removes and returns the table card with the given id.
func (p *Player) RemoveFromTable(cardID string) (cards.Card, bool) {
	for i, c := range p.Table {
		if c.ID == cardID {
			p.Table = append(p.Table[:i], p.Table[i+1:]...)
			return c, true
		}
	}
	return cards.Card{}, false
}

// TableCardByEffect returns the first table card with the given effect.
func (p *Player) TableCardByEffect(effect cards.EffectType) (cards.Card, bool) {
	for _, c := range p.Table {
		if c.Effect == effect {
			return c, true
		}
	}
	return cards.Card{}, false
}

// HasTableEffect reports whether a card with the given effect is in play.
func (p *Player) HasTableEffect(effect cards.EffectType) bool {
	_, ok := p.TableCardByEffect(effect)
	return ok
}

// Weapon returns the equipped weapon, if any.
func (p *Player) Weapon() (cards.Card, bool) {
	for _, c := range p.Table {
		if c.IsWeapon() {
			return c, true
		}
	}
	return cards.Card{}, false
}

// PendingAction describes the attack currently awaiting a response.
// Present exactly while the game is in the responding phase.
type PendingAction struct {
	Kind         AttackKind `json:"kind"`
	SourceID     string     `json:"source_id"`
	TargetID     string     `json:"target_id"`
	ResponderID  string     `json:"responder_id"`
	CardID       string     `json:"card_id"`
	CardName     string     `json:"card_name"`
	BarrelUsed   bool       `json:"barrel_used"`
	MissedNeeded int        `json:"missed_needed"`
	MissedPlayed int        `json:"missed_played"`
}

// GameState is the aggregate root: one immutable snapshot of a game.
// The engine mutates a clone and swaps it in atomically per accepted action.
type GameState struct {
	GameID            string         `json:"game_id"`
	Players           []*Player      `json:"players"`
	Deck              []cards.Card   `json:"deck"`
	DiscardPile       []cards.Card   `json:"discard_pile"`
	TurnIndex         int            `json:"turn_index"`
	Phase             rules.Phase    `json:"phase"`
	SelectedCardID    string         `json:"selected_card_id,omitempty"`
	Pending           *PendingAction `json:"pending,omitempty"`
	ResponseQueue     *rules.TargetQueue `json:"response_queue,omitempty"`
	GeneralStoreCards []cards.Card   `json:"general_store_cards,omitempty"`
	StorePickerID     string         `json:"store_picker_id,omitempty"`
	KitCarlsonCards   []cards.Card   `json:"kit_carlson_cards,omitempty"`
	SidDiscards       int            `json:"sid_discards"`
	HasPlayedBang     bool           `json:"has_played_bang"`
	TurnPlayedCards   []string       `json:"turn_played_cards,omitempty"`
	Logs              []string       `json:"logs,omitempty"`
	GameOver          bool           `json:"game_over"`
	Winner            string         `json:"winner,omitempty"`
}

// Clone returns a deep copy of the state. Pile and hand contents are card
// values, so copying the slices is enough.
func (s *GameState) Clone() *GameState {
	next := *s
	next.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp := *p
		cp.Hand = append([]cards.Card(nil), p.Hand...)
		cp.Table = append([]cards.Card(nil), p.Table...)
		cp.CharacterChoices = append([]string(nil), p.CharacterChoices...)
		next.Players[i] = &cp
	}
	next.Deck = append([]cards.Card(nil), s.Deck...)
	next.DiscardPile = append([]cards.Card(nil), s.DiscardPile...)
	next.GeneralStoreCards = append([]cards.Card(nil), s.GeneralStoreCards...)
	next.KitCarlsonCards = append([]cards.Card(nil), s.KitCarlsonCards...)
	next.TurnPlayedCards = append([]string(nil), s.TurnPlayedCards...)
	next.Logs = append([]string(nil), s.Logs...)
	if s.Pending != nil {
		pending := *s.Pending
		next.Pending = &pending
	}
	next.ResponseQueue = s.ResponseQueue.Clone()
	return &next
}

// FindPlayer returns the player with the given id.
func (s *GameState) FindPlayer(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the seat whose turn it is.
func (s *GameState) CurrentPlayer() *Player {
	return s.Players[s.TurnIndex]
}

// LivingCount returns the number of players still in the game.
func (s *GameState) LivingCount() int {
	count := 0
	for _, p := range s.Players {
		if !p.IsDead {
			count++
		}
	}
	return count
}

// NextLivingSeat returns the first living seat after from, in seat order.
// The search is bounded by the player count so a fully dead table cannot
// loop forever.
func (s *GameState) NextLivingSeat(from int) int {
	n := len(s.Players)
	for step := 1; step <= n; step++ {
		seat := (from + step) % n
		if !s.Players[seat].IsDead {
			return seat
		}
	}
	return from
}

// CountCards returns the total card count across deck, discard, hands and
// tables. It must equal cards.DeckSize at all times.
func (s *GameState) CountCards() int {
	total := len(s.Deck) + len(s.DiscardPile) + len(s.GeneralStoreCards) + len(s.KitCarlsonCards)
	for _, p := range s.Players {
		total += len(p.Hand) + len(p.Table)
	}
	return total
}

func (s *GameState) log(format string, args ...interface{}) {
	s.Logs = append(s.Logs, fmt.Sprintf(format, args...))
}

// charOf resolves a player's capability entry. Players without an assigned
// character get the zero entry, which means no modifiers.
func charOf(p *Player) characters.Character {
	c, _ := characters.Get(p.Character)
	return c
}
