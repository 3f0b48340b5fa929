package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaxLezano/bang-online-sub000/internal/game/cards"
	"github.com/MaxLezano/bang-online-sub000/internal/game/rules"
)

func deckOf(n int) []cards.Card {
	deck := make([]cards.Card, n)
	for i := range deck {
		deck[i] = mkSuited("deck-"+string(rune('a'+i)), cards.EffectBang, cards.SuitDiamonds, 2+i%13)
	}
	return deck
}

func TestStartTurnDrawsTwo(t *testing.T) {
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Rose Doolan"},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	st.Phase = rules.PhaseDraw
	st.Deck = deckOf(4)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	assert.Len(t, st.FindPlayer("ann").Hand, 2)
	assert.Equal(t, rules.PhasePlay, st.Phase)
}

func TestEndTurnDiscardDown(t *testing.T) {
	st := buildState(
		seatSpec{
			id: "ann", role: RoleSheriff, character: "Rose Doolan", hp: 1,
			hand: []cards.Card{mkBang("b1"), mkBang("b2"), mkBang("b3")},
		},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionEndTurn, PlayerID: "ann"})
	require.Equal(t, rules.PhaseDiscard, st.Phase, "hand of 3 exceeds 1 life")

	st = process(t, e, "test-game", Action{Type: ActionDiscardCard, PlayerID: "ann", CardID: "b1"})
	require.Equal(t, rules.PhaseDiscard, st.Phase)
	st = process(t, e, "test-game", Action{Type: ActionDiscardCard, PlayerID: "ann", CardID: "b2"})

	assert.Equal(t, rules.PhaseDraw, st.Phase)
	assert.Equal(t, "bob", st.CurrentPlayer().ID)
}

func TestEndTurnWithinLimitPassesDirectly(t *testing.T) {
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Rose Doolan", hand: []cards.Card{mkBang("b1")}},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionEndTurn, PlayerID: "ann"})
	assert.Equal(t, rules.PhaseDraw, st.Phase)
	assert.Equal(t, "bob", st.CurrentPlayer().ID)
}

func TestDynamiteExplodes(t *testing.T) {
	dynamite := cards.Card{
		ID: "dyn-1", Name: "Dynamite", Type: cards.TypeStatus,
		Suit: cards.SuitClubs, Rank: 3, Effect: cards.EffectDynamite, Magnitude: 3,
	}
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Rose Doolan", table: []cards.Card{dynamite}},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	st.Phase = rules.PhaseDraw
	// Spades 2-9 on top: the dynamite goes off.
	st.Deck = append([]cards.Card{mkSuited("flip-1", cards.EffectBang, cards.SuitSpades, 5)}, deckOf(4)...)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	ann := st.FindPlayer("ann")
	assert.Equal(t, ann.MaxHP-3, ann.HP)
	assert.Empty(t, ann.Table)
	assert.Equal(t, rules.PhasePlay, st.Phase, "survivor continues the turn")
}

func TestDynamitePassesOn(t *testing.T) {
	dynamite := cards.Card{
		ID: "dyn-1", Name: "Dynamite", Type: cards.TypeStatus,
		Suit: cards.SuitClubs, Rank: 3, Effect: cards.EffectDynamite, Magnitude: 3,
	}
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Rose Doolan", table: []cards.Card{dynamite}},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	st.Phase = rules.PhaseDraw
	st.Deck = append([]cards.Card{mkSuited("flip-1", cards.EffectBang, cards.SuitHearts, 5)}, deckOf(4)...)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	assert.Empty(t, st.FindPlayer("ann").Table)
	assert.True(t, st.FindPlayer("bob").HasTableEffect(cards.EffectDynamite))
	assert.Equal(t, st.FindPlayer("ann").MaxHP, st.FindPlayer("ann").HP)
}

func TestJailSkipsTurnUnlessHearts(t *testing.T) {
	jail := cards.Card{
		ID: "jail-1", Name: "Jail", Type: cards.TypeStatus,
		Suit: cards.SuitSpades, Rank: 10, Effect: cards.EffectJail,
	}
	st := buildState(
		seatSpec{id: "ann", role: RoleDeputy, character: "Rose Doolan", table: []cards.Card{jail}},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	st.Phase = rules.PhaseDraw
	st.Deck = append([]cards.Card{mkSuited("flip-1", cards.EffectBang, cards.SuitClubs, 5)}, deckOf(4)...)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	assert.Empty(t, st.FindPlayer("ann").Hand, "no draw while jailed")
	assert.Empty(t, st.FindPlayer("ann").Table, "jail is discarded either way")
	assert.Equal(t, "bob", st.CurrentPlayer().ID)
	assert.Equal(t, rules.PhaseDraw, st.Phase)
}

func TestLuckyDukeFlipsTwoOnDrawCheck(t *testing.T) {
	jail := cards.Card{
		ID: "jail-1", Name: "Jail", Type: cards.TypeStatus,
		Suit: cards.SuitSpades, Rank: 10, Effect: cards.EffectJail,
	}
	st := buildState(
		seatSpec{id: "ann", role: RoleDeputy, character: "Lucky Duke", table: []cards.Card{jail}},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	st.Phase = rules.PhaseDraw
	// First flip fails, second is hearts; either counting means escape.
	st.Deck = append([]cards.Card{
		mkSuited("flip-1", cards.EffectBang, cards.SuitClubs, 5),
		mkSuited("flip-2", cards.EffectBang, cards.SuitHearts, 5),
	}, deckOf(4)...)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	assert.Equal(t, "ann", st.CurrentPlayer().ID, "hearts on the second flip breaks out")
	assert.Len(t, st.FindPlayer("ann").Hand, 2)
}

func TestLuckyDukeDynamiteTakesSaferFlip(t *testing.T) {
	dynamite := cards.Card{
		ID: "dyn-1", Name: "Dynamite", Type: cards.TypeStatus,
		Suit: cards.SuitClubs, Rank: 3, Effect: cards.EffectDynamite, Magnitude: 3,
	}
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Lucky Duke", table: []cards.Card{dynamite}},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	st.Phase = rules.PhaseDraw
	// First flip would explode, second is safe; two flips let the
	// holder pick the safe one.
	st.Deck = append([]cards.Card{
		mkSuited("flip-1", cards.EffectBang, cards.SuitSpades, 5),
		mkSuited("flip-2", cards.EffectBang, cards.SuitHearts, 5),
	}, deckOf(4)...)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	ann := st.FindPlayer("ann")
	assert.Equal(t, ann.MaxHP, ann.HP, "the safe flip defuses the blast")
	assert.True(t, st.FindPlayer("bob").HasTableEffect(cards.EffectDynamite))
}

func TestLuckyDukeDynamiteExplodesWhenBothFlipsQualify(t *testing.T) {
	dynamite := cards.Card{
		ID: "dyn-1", Name: "Dynamite", Type: cards.TypeStatus,
		Suit: cards.SuitClubs, Rank: 3, Effect: cards.EffectDynamite, Magnitude: 3,
	}
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Lucky Duke", table: []cards.Card{dynamite}},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	st.Phase = rules.PhaseDraw
	st.Deck = append([]cards.Card{
		mkSuited("flip-1", cards.EffectBang, cards.SuitSpades, 5),
		mkSuited("flip-2", cards.EffectBang, cards.SuitSpades, 8),
	}, deckOf(4)...)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	ann := st.FindPlayer("ann")
	assert.Equal(t, ann.MaxHP-3, ann.HP)
	assert.Empty(t, ann.Table)
}

func TestPedroRamirezDrawsFromDiscard(t *testing.T) {
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Pedro Ramirez"},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	st.Phase = rules.PhaseDraw
	st.Deck = deckOf(4)
	st.DiscardPile = []cards.Card{mkBang("buried"), mkMissed("top")}
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	ann := st.FindPlayer("ann")
	require.Len(t, ann.Hand, 2)
	_, hasTop := ann.HandCard("top")
	assert.True(t, hasTop, "the top of the discard pile comes first")
	assert.Len(t, st.DiscardPile, 1)
}

func TestJesseJonesDrawsFromPlayer(t *testing.T) {
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Jesse Jones"},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy", hand: []cards.Card{mkBang("bb-1")}},
	)
	st.Phase = rules.PhaseDraw
	st.Deck = deckOf(4)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	require.Equal(t, rules.PhaseJesseJonesDraw, st.Phase)

	st = process(t, e, "test-game", Action{
		Type: ActionJesseChooseDraw, PlayerID: "ann",
		Source: DrawSourcePlayer, TargetID: "bob",
	})
	assert.Len(t, st.FindPlayer("ann").Hand, 2)
	assert.Empty(t, st.FindPlayer("bob").Hand)
	assert.Equal(t, rules.PhasePlay, st.Phase)
}

func TestKitCarlsonKeepsTwoOfThree(t *testing.T) {
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Kit Carlson"},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	st.Phase = rules.PhaseDraw
	st.Deck = deckOf(5)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	require.Equal(t, rules.PhaseKitCarlsonDiscard, st.Phase)
	require.Len(t, st.KitCarlsonCards, 3)

	returned := st.KitCarlsonCards[1].ID
	st = process(t, e, "test-game", Action{Type: ActionDraftCard, PlayerID: "ann", CardID: returned})
	assert.Len(t, st.FindPlayer("ann").Hand, 2)
	assert.Empty(t, st.KitCarlsonCards)
	assert.Equal(t, returned, st.Deck[0].ID, "the returned card goes back on top")
	assert.Equal(t, rules.PhasePlay, st.Phase)
}

func TestKitCarlsonShortDeckSkipsReturn(t *testing.T) {
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Kit Carlson"},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	st.Phase = rules.PhaseDraw
	st.Deck = deckOf(1)
	e := installGame(t, st, 1)

	// One revealed card means nothing to give back; the turn must not
	// wedge in the return sub-phase.
	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	assert.Equal(t, rules.PhasePlay, st.Phase)
	assert.Len(t, st.FindPlayer("ann").Hand, 1)
	assert.Empty(t, st.KitCarlsonCards)
}

func TestBlackJackRedSecondDrawGrantsThird(t *testing.T) {
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Black Jack"},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	st.Phase = rules.PhaseDraw
	st.Deck = []cards.Card{
		mkSuited("d1", cards.EffectBang, cards.SuitClubs, 4),
		mkSuited("d2", cards.EffectBang, cards.SuitHearts, 4),
		mkSuited("d3", cards.EffectBang, cards.SuitClubs, 4),
		mkSuited("d4", cards.EffectBang, cards.SuitClubs, 4),
	}
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionStartTurn, PlayerID: "ann"})
	assert.Len(t, st.FindPlayer("ann").Hand, 3, "red second card grants a third draw")
}

func TestSidKetchumDiscardHeal(t *testing.T) {
	st := buildState(
		seatSpec{
			id: "ann", role: RoleSheriff, character: "Sid Ketchum", hp: 2,
			hand: []cards.Card{mkBang("b1"), mkBang("b2"), mkBang("b3")},
		},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
	)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionUseAbility, PlayerID: "ann"})
	require.Equal(t, rules.PhaseSidDiscard, st.Phase)

	st = process(t, e, "test-game", Action{Type: ActionDiscardCard, PlayerID: "ann", CardID: "b1"})
	require.Equal(t, 2, st.FindPlayer("ann").HP, "no heal until both discards")
	st = process(t, e, "test-game", Action{Type: ActionDiscardCard, PlayerID: "ann", CardID: "b2"})

	assert.Equal(t, 3, st.FindPlayer("ann").HP)
	assert.Equal(t, rules.PhasePlay, st.Phase)
}

func TestGeneralStoreDraft(t *testing.T) {
	store := mkCard("store-1", cards.EffectStore)
	st := buildState(
		seatSpec{id: "ann", role: RoleSheriff, character: "Rose Doolan", hand: []cards.Card{store}},
		seatSpec{id: "bob", role: RoleOutlaw, character: "Bart Cassidy"},
		seatSpec{id: "cyd", role: RoleRenegade, character: "Suzy Lafayette", hand: []cards.Card{mkBang("filler")}},
	)
	st.Deck = deckOf(5)
	e := installGame(t, st, 1)

	st = process(t, e, "test-game", Action{Type: ActionPlayCard, PlayerID: "ann", CardID: "store-1"})
	require.Equal(t, rules.PhaseGeneralStore, st.Phase)
	require.Len(t, st.GeneralStoreCards, 3)
	require.Equal(t, "ann", st.StorePickerID)

	// Picks run in seat order; out-of-turn picks are rejected.
	_, err := e.ProcessAction("test-game", Action{Type: ActionDraftCard, PlayerID: "bob", CardID: st.GeneralStoreCards[0].ID})
	assert.ErrorIs(t, err, rules.ErrNotYourTurn)

	st = process(t, e, "test-game", Action{Type: ActionDraftCard, PlayerID: "ann", CardID: st.GeneralStoreCards[0].ID})
	require.Equal(t, "bob", st.StorePickerID)
	st = process(t, e, "test-game", Action{Type: ActionDraftCard, PlayerID: "bob", CardID: st.GeneralStoreCards[0].ID})
	require.Equal(t, "cyd", st.StorePickerID)
	st = process(t, e, "test-game", Action{Type: ActionDraftCard, PlayerID: "cyd", CardID: st.GeneralStoreCards[0].ID})

	assert.Empty(t, st.GeneralStoreCards)
	assert.Empty(t, st.StorePickerID)
	assert.Equal(t, rules.PhasePlay, st.Phase)
}
