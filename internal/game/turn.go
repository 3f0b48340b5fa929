package game

import (
	"fmt"

	"github.com/MaxLezano/bang-online-sub000/internal/game/cards"
	"github.com/MaxLezano/bang-online-sub000/internal/game/characters"
	"github.com/MaxLezano/bang-online-sub000/internal/game/rules"
)

// applyStartTurn resolves the start-of-turn sequence for the current seat:
// Dynamite first, then Jail, then the character's draw variant. The per-turn
// bang flag and played-card log reset here.
func (e *BangEngine) applyStartTurn(st *GameState, rng rules.Rand, action Action) error {
	if st.Phase != rules.PhaseDraw {
		return rules.ErrWrongPhase
	}
	player := st.CurrentPlayer()
	if player.ID != action.PlayerID {
		return rules.ErrNotYourTurn
	}

	st.HasPlayedBang = false
	st.TurnPlayedCards = nil
	st.SelectedCardID = ""

	if dynamite, ok := player.TableCardByEffect(cards.EffectDynamite); ok {
		player.RemoveFromTable(dynamite.ID)
		hits, flips := st.drawCheck(rng, player, "", func(c cards.Card) bool {
			return c.Suit == cards.SuitSpades && c.Rank >= 2 && c.Rank <= 9
		})
		// Here the condition is the bad outcome, so a double flip only
		// explodes when every flipped card qualifies.
		if flips > 0 && hits == flips {
			st.discard(dynamite)
			st.log("the dynamite explodes in %s's face", player.Name)
			st.applyDamage(rng, player.ID, "", dynamite.Magnitude)
			if st.GameOver {
				return nil
			}
			if player.IsDead {
				// The turn passes without a draw.
				st.advanceTurn()
				return nil
			}
		} else {
			next := st.Players[st.NextLivingSeat(player.Position)]
			next.Table = append(next.Table, dynamite)
			st.log("the dynamite passes to %s", next.Name)
		}
	}

	if jail, ok := player.TableCardByEffect(cards.EffectJail); ok {
		player.RemoveFromTable(jail.ID)
		st.discard(jail)
		hits, _ := st.drawCheck(rng, player, "", func(c cards.Card) bool {
			return c.Suit == cards.SuitHearts
		})
		if hits == 0 {
			st.log("%s stays behind bars and skips the turn", player.Name)
			st.advanceTurn()
			return nil
		}
		st.log("%s breaks out of jail", player.Name)
	}

	switch charOf(player).DrawMode {
	case characters.DrawFromDiscard:
		if len(st.DiscardPile) > 0 {
			top := st.DiscardPile[len(st.DiscardPile)-1]
			st.DiscardPile = st.DiscardPile[:len(st.DiscardPile)-1]
			player.Hand = append(player.Hand, top)
			st.log("%s digs %s out of the discard pile", player.Name, top.Name)
			st.drawToHand(rng, player, 1, "")
		} else {
			st.drawToHand(rng, player, 2, "")
		}
	case characters.DrawChooseSource:
		st.Phase = rules.PhaseJesseJonesDraw
		return nil
	case characters.DrawRevealThree:
		for i := 0; i < 3; i++ {
			card, ok := st.drawFromDeck(rng, "")
			if !ok {
				break
			}
			st.KitCarlsonCards = append(st.KitCarlsonCards, card)
		}
		if len(st.KitCarlsonCards) == 3 {
			st.Phase = rules.PhaseKitCarlsonDiscard
			return nil
		}
		// A short deck reveals fewer than three cards; with nothing to
		// give back they all go straight to hand.
		player.Hand = append(player.Hand, st.KitCarlsonCards...)
		st.KitCarlsonCards = nil
	case characters.DrawShowSecond:
		st.drawToHand(rng, player, 1, "")
		if second, ok := st.drawFromDeck(rng, ""); ok {
			player.Hand = append(player.Hand, second)
			st.log("%s reveals the second draw: %s (%s %d)", player.Name, second.Name, second.Suit, second.Rank)
			if second.IsRed() {
				st.drawToHand(rng, player, 1, "")
			}
		}
	default:
		st.drawToHand(rng, player, 2, "")
	}

	st.Phase = rules.PhasePlay
	return nil
}

// applyJesseChooseDraw resolves the deck-or-player draw choice sub-phase.
func (e *BangEngine) applyJesseChooseDraw(st *GameState, rng rules.Rand, action Action) error {
	if st.Phase != rules.PhaseJesseJonesDraw {
		return rules.ErrWrongPhase
	}
	player := st.CurrentPlayer()
	if player.ID != action.PlayerID {
		return rules.ErrNotYourTurn
	}

	switch action.Source {
	case DrawSourcePlayer:
		target := st.FindPlayer(action.TargetID)
		if target == nil || target.IsDead || target.ID == player.ID {
			return rules.ErrInvalidTarget
		}
		if len(target.Hand) == 0 {
			return fmt.Errorf("%w: %s has no cards to take", rules.ErrInvalidTarget, target.Name)
		}
		idx := rng.Intn(len(target.Hand))
		taken := target.Hand[idx]
		target.Hand = append(target.Hand[:idx], target.Hand[idx+1:]...)
		player.Hand = append(player.Hand, taken)
		st.log("%s draws the first card from %s's hand", player.Name, target.Name)
		st.checkEmptyHandDraw(rng, target)
		st.drawToHand(rng, player, 1, "")
	case DrawSourceDeck:
		st.drawToHand(rng, player, 2, "")
	default:
		return fmt.Errorf("%w: unknown draw source %q", rules.ErrInvalidAction, action.Source)
	}

	st.Phase = rules.PhasePlay
	return nil
}

// applyDraftCard resolves picks from the transient per-effect pools: the
// keep-2/return-1 reveal and the general store.
func (e *BangEngine) applyDraftCard(st *GameState, action Action) error {
	switch st.Phase {
	case rules.PhaseKitCarlsonDiscard:
		player := st.CurrentPlayer()
		if player.ID != action.PlayerID {
			return rules.ErrNotYourTurn
		}
		returned := -1
		for i, c := range st.KitCarlsonCards {
			if c.ID == action.CardID {
				returned = i
				break
			}
		}
		if returned == -1 {
			return rules.ErrCardNotFound
		}
		// The chosen card goes back on top of the deck; the rest are kept.
		st.Deck = append([]cards.Card{st.KitCarlsonCards[returned]}, st.Deck...)
		for i, c := range st.KitCarlsonCards {
			if i != returned {
				player.Hand = append(player.Hand, c)
			}
		}
		st.KitCarlsonCards = nil
		st.log("%s keeps two of the revealed cards", player.Name)
		st.Phase = rules.PhasePlay
		return nil

	case rules.PhaseGeneralStore:
		if st.StorePickerID != action.PlayerID {
			return rules.ErrNotYourTurn
		}
		picker := st.FindPlayer(action.PlayerID)
		if picker == nil || picker.IsDead {
			return rules.ErrPlayerNotFound
		}
		picked := -1
		for i, c := range st.GeneralStoreCards {
			if c.ID == action.CardID {
				picked = i
				break
			}
		}
		if picked == -1 {
			return rules.ErrCardNotFound
		}
		card := st.GeneralStoreCards[picked]
		st.GeneralStoreCards = append(st.GeneralStoreCards[:picked], st.GeneralStoreCards[picked+1:]...)
		picker.Hand = append(picker.Hand, card)
		st.log("%s takes %s from the general store", picker.Name, card.Name)

		if len(st.GeneralStoreCards) == 0 {
			st.StorePickerID = ""
			st.Phase = rules.PhasePlay
			st.log("the general store closes")
			return nil
		}
		st.StorePickerID = st.Players[st.NextLivingSeat(picker.Position)].ID
		return nil

	default:
		return rules.ErrWrongPhase
	}
}

// applyDiscardCard serves both the end-of-turn discard-down phase and the
// two-card discard of the heal ability.
func (e *BangEngine) applyDiscardCard(st *GameState, rng rules.Rand, action Action) error {
	player := st.CurrentPlayer()
	if player.ID != action.PlayerID {
		return rules.ErrNotYourTurn
	}

	switch st.Phase {
	case rules.PhaseDiscard:
		card, ok := player.RemoveFromHand(action.CardID)
		if !ok {
			return rules.ErrCardNotFound
		}
		st.discard(card)
		st.log("%s discards %s", player.Name, card.Name)
		st.checkEmptyHandDraw(rng, player)
		if len(player.Hand) <= player.HP {
			st.advanceTurn()
		}
		return nil

	case rules.PhaseSidDiscard:
		card, ok := player.RemoveFromHand(action.CardID)
		if !ok {
			return rules.ErrCardNotFound
		}
		st.discard(card)
		st.SidDiscards++
		if st.SidDiscards >= 2 {
			st.SidDiscards = 0
			player.HP++
			if player.HP > player.MaxHP {
				player.HP = player.MaxHP
			}
			st.log("%s trades two cards for a life point", player.Name)
			st.Phase = rules.PhasePlay
		}
		st.checkEmptyHandDraw(rng, player)
		return nil

	default:
		return rules.ErrWrongPhase
	}
}

// applyUseAbility triggers the active discard-to-heal ability.
func (e *BangEngine) applyUseAbility(st *GameState, action Action) error {
	if st.Phase != rules.PhasePlay {
		return rules.ErrWrongPhase
	}
	player := st.CurrentPlayer()
	if player.ID != action.PlayerID {
		return rules.ErrNotYourTurn
	}
	if !charOf(player).DiscardHeal {
		return fmt.Errorf("%w: %s has no active ability", rules.ErrInvalidAction, player.Character)
	}
	if player.HP >= player.MaxHP {
		return fmt.Errorf("%w: already at full life", rules.ErrInvalidAction)
	}
	if len(player.Hand) < 2 {
		return fmt.Errorf("%w: need two cards to discard", rules.ErrInvalidAction)
	}
	st.SidDiscards = 0
	st.Phase = rules.PhaseSidDiscard
	return nil
}

// applyEndTurn closes the play phase. If the hand exceeds current HP the
// discard-down phase runs first; otherwise the next living seat is up.
func (e *BangEngine) applyEndTurn(st *GameState, action Action) error {
	if st.Phase != rules.PhasePlay {
		return rules.ErrWrongPhase
	}
	player := st.CurrentPlayer()
	if player.ID != action.PlayerID {
		return rules.ErrNotYourTurn
	}

	st.evaluateWin()
	if st.GameOver {
		return nil
	}

	if len(player.Hand) > player.HP {
		st.Phase = rules.PhaseDiscard
		st.log("%s must discard down to %d cards", player.Name, player.HP)
		return nil
	}
	st.advanceTurn()
	return nil
}

// advanceTurn hands the turn to the next living seat.
func (s *GameState) advanceTurn() {
	if s.GameOver {
		return
	}
	s.TurnIndex = s.NextLivingSeat(s.TurnIndex)
	s.Phase = rules.PhaseDraw
	s.SelectedCardID = ""
	s.SidDiscards = 0
	s.log("it is %s's turn", s.CurrentPlayer().Name)
}

// returnToPlay restores the play phase once a pending attack and any queued
// targets are exhausted. If the acting player died mid-resolution the turn
// passes instead.
func (s *GameState) returnToPlay() {
	if s.GameOver {
		return
	}
	s.Pending = nil
	s.ResponseQueue = nil
	if s.CurrentPlayer().IsDead {
		s.advanceTurn()
		return
	}
	s.Phase = rules.PhasePlay
}
