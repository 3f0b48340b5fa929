package game

import (
	"github.com/MaxLezano/bang-online-sub000/internal/game/cards"
	"github.com/MaxLezano/bang-online-sub000/internal/game/rules"
)

// drawFromDeck pops the top card of the draw pile. An empty pile triggers
// the reshuffle of the discard pile; excludeID keeps the card of the attack
// currently resolving out of the new deck. This is the sole mechanism
// preventing game stall.
func (s *GameState) drawFromDeck(rng rules.Rand, excludeID string) (cards.Card, bool) {
	if len(s.Deck) == 0 {
		s.reshuffleDiscard(rng, excludeID)
	}
	if len(s.Deck) == 0 {
		return cards.Card{}, false
	}
	card := s.Deck[0]
	s.Deck = s.Deck[1:]
	return card, true
}

// reshuffleDiscard rebuilds the draw pile from the discard pile.
func (s *GameState) reshuffleDiscard(rng rules.Rand, excludeID string) {
	if len(s.DiscardPile) == 0 {
		return
	}
	var pool, keep []cards.Card
	for _, c := range s.DiscardPile {
		if c.ID == excludeID {
			keep = append(keep, c)
		} else {
			pool = append(pool, c)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	s.Deck = pool
	s.DiscardPile = keep
	s.log("discard pile reshuffled into a fresh deck (%d cards)", len(pool))
}

// drawToHand moves up to n cards from the deck into a player's hand and
// returns how many were actually drawn.
func (s *GameState) drawToHand(rng rules.Rand, p *Player, n int, excludeID string) int {
	drawn := 0
	for i := 0; i < n; i++ {
		card, ok := s.drawFromDeck(rng, excludeID)
		if !ok {
			break
		}
		p.Hand = append(p.Hand, card)
		drawn++
	}
	return drawn
}

// drawCheck performs a "Draw!": each flipped card goes straight onto the
// discard pile and is tested against cond. A character with the double-check
// passive flips two cards. Returns how many flips satisfied cond and how
// many cards were flipped; the caller combines the counts in whichever
// direction favors the flip owner.
func (s *GameState) drawCheck(rng rules.Rand, p *Player, excludeID string, cond func(cards.Card) bool) (hits, flips int) {
	first, ok := s.drawFromDeck(rng, excludeID)
	if !ok {
		return 0, 0
	}
	s.DiscardPile = append(s.DiscardPile, first)
	s.log("%s draws! %s (%s %d)", p.Name, first.Name, first.Suit, first.Rank)
	flips = 1
	if cond(first) {
		hits++
	}

	if charOf(p).DoubleDrawCheck {
		if second, ok2 := s.drawFromDeck(rng, excludeID); ok2 {
			s.DiscardPile = append(s.DiscardPile, second)
			s.log("%s draws a second card: %s (%s %d)", p.Name, second.Name, second.Suit, second.Rank)
			flips++
			if cond(second) {
				hits++
			}
		}
	}
	return hits, flips
}

// discard pushes a card onto the discard pile.
func (s *GameState) discard(card cards.Card) {
	s.DiscardPile = append(s.DiscardPile, card)
}

// checkEmptyHandDraw feeds the draw-on-empty-hand passive. Called whenever
// a card leaves a living player's hand.
func (s *GameState) checkEmptyHandDraw(rng rules.Rand, p *Player) {
	if p.IsDead || len(p.Hand) != 0 {
		return
	}
	if !charOf(p).DrawsWhenHandEmpty {
		return
	}
	if s.drawToHand(rng, p, 1, "") > 0 {
		s.log("%s draws a card after emptying their hand", p.Name)
	}
}
