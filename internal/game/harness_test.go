package game

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/MaxLezano/bang-online-sub000/internal/game/cards"
	"github.com/MaxLezano/bang-online-sub000/internal/game/characters"
	"github.com/MaxLezano/bang-online-sub000/internal/game/rules"
)

// seatSpec describes one seat of a hand-built test state.
type seatSpec struct {
	id        string
	role      Role
	character string
	hp        int
	hand      []cards.Card
	table     []cards.Card
}

// buildState assembles a mid-game state directly, bypassing the setup
// protocol, so tests can pin characters, hands and hit points exactly.
func buildState(specs ...seatSpec) *GameState {
	st := &GameState{
		GameID: "test-game",
		Phase:  rules.PhasePlay,
	}
	for i, spec := range specs {
		char, _ := characters.Get(spec.character)
		maxHP := char.MaxHP
		if maxHP == 0 {
			maxHP = 4
		}
		if spec.role == RoleSheriff {
			maxHP += sheriffHPBonus
		}
		hp := spec.hp
		if hp == 0 {
			hp = maxHP
		}
		st.Players = append(st.Players, &Player{
			ID:        spec.id,
			Name:      spec.id,
			Role:      spec.role,
			Character: spec.character,
			HP:        hp,
			MaxHP:     maxHP,
			Hand:      append([]cards.Card(nil), spec.hand...),
			Table:     append([]cards.Card(nil), spec.table...),
			Position:  i,
		})
	}
	return st
}

// installGame registers a hand-built state with a fresh engine.
func installGame(t *testing.T, st *GameState, seed int64) *BangEngine {
	t.Helper()
	e := NewBangEngine(zaptest.NewLogger(t))
	e.games[st.GameID] = &gameSession{
		state:  st,
		rng:    rules.NewRand(seed),
		replay: NewReplay(st.GameID),
	}
	return e
}

func mkCard(id string, effect cards.EffectType) cards.Card {
	return cards.Card{
		ID:     id,
		Name:   id,
		Type:   cards.TypeAction,
		Suit:   cards.SuitClubs,
		Rank:   7,
		Effect: effect,
	}
}

func mkBang(id string) cards.Card   { return mkCard(id, cards.EffectBang) }
func mkMissed(id string) cards.Card { return mkCard(id, cards.EffectMissed) }

func mkBeer(id string) cards.Card {
	c := mkCard(id, cards.EffectHeal)
	c.Magnitude = 1
	return c
}

func mkWeapon(id string, rng int, unlimited bool) cards.Card {
	return cards.Card{
		ID:        id,
		Name:      id,
		Type:      cards.TypeEquipment,
		SubType:   cards.SubWeapon,
		Suit:      cards.SuitClubs,
		Rank:      10,
		Effect:    cards.EffectEquip,
		Range:     rng,
		Unlimited: unlimited,
	}
}

func mkEquipment(id string, effect cards.EffectType, magnitude int) cards.Card {
	return cards.Card{
		ID:        id,
		Name:      id,
		Type:      cards.TypeEquipment,
		Suit:      cards.SuitClubs,
		Rank:      9,
		Effect:    effect,
		Magnitude: magnitude,
	}
}

func mkSuited(id string, effect cards.EffectType, suit cards.Suit, rank int) cards.Card {
	c := mkCard(id, effect)
	c.Suit = suit
	c.Rank = rank
	return c
}

// process submits an action and fails the test on rejection.
func process(t *testing.T, e *BangEngine, gameID string, action Action) *GameState {
	t.Helper()
	st, err := e.ProcessAction(gameID, action)
	if err != nil {
		t.Fatalf("action %s by %s rejected: %v", action.Type, action.PlayerID, err)
	}
	return st
}
