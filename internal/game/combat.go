package game

import (
	"fmt"

	"github.com/MaxLezano/bang-online-sub000/internal/game/cards"
	"github.com/MaxLezano/bang-online-sub000/internal/game/rules"
)

// applyRespond resolves one defender decision against the pending attack.
func (e *BangEngine) applyRespond(st *GameState, rng rules.Rand, action Action) error {
	if st.Phase != rules.PhaseResponding || st.Pending == nil {
		return rules.ErrWrongPhase
	}
	if action.PlayerID != st.Pending.ResponderID {
		return rules.ErrNotResponder
	}
	responder := st.FindPlayer(action.PlayerID)
	if responder == nil || responder.IsDead {
		return rules.ErrPlayerNotFound
	}

	switch action.ResponseType {
	case ResponseCard:
		return e.respondWithCard(st, rng, responder, action.CardID)
	case ResponseBarrel:
		return e.respondWithBarrel(st, rng, responder)
	case ResponseTakeHit:
		return e.respondTakeHit(st, rng, responder)
	default:
		return fmt.Errorf("%w: unknown response type %q", rules.ErrInvalidAction, action.ResponseType)
	}
}

// defenseEffect returns the card effect that answers an attack kind:
// a missed against bang-class attacks, a bang against indians and duels.
func defenseEffect(kind AttackKind) cards.EffectType {
	if kind == AttackIndians || kind == AttackDuel {
		return cards.EffectBang
	}
	return cards.EffectMissed
}

// respondWithCard plays a qualifying defense card. The bang/missed-swap
// passive lets the defender substitute either card for the other.
func (e *BangEngine) respondWithCard(st *GameState, rng rules.Rand, responder *Player, cardID string) error {
	pending := st.Pending
	card, ok := responder.HandCard(cardID)
	if !ok {
		return rules.ErrCardNotFound
	}

	need := defenseEffect(pending.Kind)
	qualifies := card.Effect == need
	if !qualifies && charOf(responder).BangMissedSwap {
		qualifies = (need == cards.EffectMissed && card.Effect == cards.EffectBang) ||
			(need == cards.EffectBang && card.Effect == cards.EffectMissed)
	}
	if !qualifies {
		return fmt.Errorf("%w: %s does not answer %s", rules.ErrInvalidAction, card.Name, pending.CardName)
	}

	responder.RemoveFromHand(card.ID)
	st.discard(card)
	st.checkEmptyHandDraw(rng, responder)

	if pending.Kind == AttackDuel {
		// The duel escalates: the other party must now answer bang for bang.
		if pending.ResponderID == pending.TargetID {
			pending.ResponderID = pending.SourceID
		} else {
			pending.ResponderID = pending.TargetID
		}
		st.log("%s answers the duel with %s; %s must reply",
			responder.Name, card.Name, st.FindPlayer(pending.ResponderID).Name)
		return nil
	}

	pending.MissedPlayed++
	if pending.MissedPlayed < pending.MissedNeeded {
		st.log("%s plays %s, but needs another to dodge", responder.Name, card.Name)
		return nil
	}
	st.log("%s dodges %s", responder.Name, pending.CardName)
	st.resolveNextTarget()
	return nil
}

// respondWithBarrel runs the item Draw! check: hearts succeeds. Usable at
// most once per pending action and never against indians or a duel. A
// built-in barrel passive counts as a barrel source without the equipment.
func (e *BangEngine) respondWithBarrel(st *GameState, rng rules.Rand, responder *Player) error {
	pending := st.Pending
	if pending.Kind == AttackIndians || pending.Kind == AttackDuel {
		return fmt.Errorf("%w: barrel offers no cover against %s", rules.ErrInvalidAction, pending.CardName)
	}
	if pending.BarrelUsed {
		return rules.ErrBarrelUsed
	}
	if !responder.HasTableEffect(cards.EffectBarrel) && !charOf(responder).BuiltInBarrel {
		return fmt.Errorf("%w: no barrel to hide behind", rules.ErrInvalidAction)
	}

	pending.BarrelUsed = true
	hits, _ := st.drawCheck(rng, responder, pending.CardID, func(c cards.Card) bool {
		return c.Suit == cards.SuitHearts
	})
	if hits == 0 {
		st.log("%s's barrel fails", responder.Name)
		return nil
	}

	// A successful barrel counts as one missed.
	pending.MissedPlayed++
	if pending.MissedPlayed < pending.MissedNeeded {
		st.log("%s ducks behind the barrel, but still needs a missed", responder.Name)
		return nil
	}
	st.log("%s ducks behind the barrel", responder.Name)
	st.resolveNextTarget()
	return nil
}

// respondTakeHit accepts the damage and moves resolution along.
func (e *BangEngine) respondTakeHit(st *GameState, rng rules.Rand, responder *Player) error {
	pending := st.Pending
	st.applyDamage(rng, responder.ID, pending.SourceID, 1)
	if st.GameOver {
		return nil
	}
	st.resolveNextTarget()
	return nil
}

// resolveNextTarget promotes the next living queued target to the active
// pending action, or returns to the play phase when the queue is exhausted.
func (s *GameState) resolveNextTarget() {
	if s.GameOver {
		return
	}
	pending := s.Pending
	if s.ResponseQueue != nil {
		for {
			id, ok := s.ResponseQueue.Next()
			if !ok {
				break
			}
			next := s.FindPlayer(id)
			if next == nil || next.IsDead {
				continue
			}
			s.Pending = &PendingAction{
				Kind:         pending.Kind,
				SourceID:     pending.SourceID,
				TargetID:     id,
				ResponderID:  id,
				CardID:       pending.CardID,
				CardName:     pending.CardName,
				MissedNeeded: 1,
			}
			return
		}
	}
	s.returnToPlay()
}
