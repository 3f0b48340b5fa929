package game

import (
	"github.com/google/uuid"

	"github.com/MaxLezano/bang-online-sub000/internal/game/cards"
	"github.com/MaxLezano/bang-online-sub000/internal/game/rules"
)

// applyDamage decrements a target's HP and resolves on-hit passives, the
// automatic beer rescue and, if the target still sits at zero, elimination.
// Damage to an already-dead player is a no-op.
func (s *GameState) applyDamage(rng rules.Rand, targetID, sourceID string, amount int) {
	target := s.FindPlayer(targetID)
	if target == nil || target.IsDead || amount <= 0 {
		return
	}
	source := s.FindPlayer(sourceID)

	target.HP -= amount
	s.log("%s takes %d damage (%d life left)", target.Name, amount, maxInt(target.HP, 0))

	char := charOf(target)
	if char.DrawsOnHit {
		if s.drawToHand(rng, target, 1, "") > 0 {
			s.log("%s draws a card from the pain", target.Name)
		}
	}
	if char.StealsOnHit && source != nil && source.ID != target.ID && len(source.Hand) > 0 {
		idx := rng.Intn(len(source.Hand))
		stolen := source.Hand[idx]
		source.Hand = append(source.Hand[:idx], source.Hand[idx+1:]...)
		target.Hand = append(target.Hand, stolen)
		s.log("%s snatches a card from %s's hand", target.Name, source.Name)
		s.checkEmptyHandDraw(rng, source)
	}

	if target.HP > 0 {
		return
	}

	// Automatic beer rescue: only while more than two players remain.
	if s.LivingCount() > 2 {
		if beer, ok := s.findBeer(target); ok {
			target.RemoveFromHand(beer.ID)
			s.discard(beer)
			target.HP = 1
			s.log("%s downs a beer and stays at 1 life", target.Name)
			s.checkEmptyHandDraw(rng, target)
			return
		}
	}

	s.eliminate(rng, target, source)
}

func (s *GameState) findBeer(p *Player) (cards.Card, bool) {
	for _, c := range p.Hand {
		if c.Effect == cards.EffectHeal {
			return c, true
		}
	}
	return cards.Card{}, false
}

// eliminate finalizes a death: HP clamps to 0, the seat is flagged dead
// exactly once, cards are looted or discarded atomically, kill bonuses and
// penalties apply, and the win condition is re-checked.
func (s *GameState) eliminate(rng rules.Rand, target *Player, source *Player) {
	target.HP = 0
	target.IsDead = true
	s.log("%s (%s) is eliminated", target.Name, target.Role)

	loot := make([]cards.Card, 0, len(target.Hand)+len(target.Table))
	loot = append(loot, target.Hand...)
	loot = append(loot, target.Table...)
	target.Hand = nil
	target.Table = nil

	if vulture := s.findHarvester(target.ID); vulture != nil {
		// Harvested cards get fresh identities so no stale reference to
		// the dead player's cards survives anywhere.
		for _, c := range loot {
			c.ID = uuid.NewString()
			vulture.Hand = append(vulture.Hand, c)
		}
		if len(loot) > 0 {
			s.log("%s claims %d cards from the fallen", vulture.Name, len(loot))
		}
	} else {
		s.DiscardPile = append(s.DiscardPile, loot...)
	}

	if source != nil && source.ID != target.ID && !source.IsDead {
		if target.Role == RoleOutlaw {
			drawn := s.drawToHand(rng, source, outlawBounty, "")
			s.log("%s collects the outlaw bounty (%d cards)", source.Name, drawn)
		}
		if source.Role == RoleSheriff && target.Role == RoleDeputy {
			forfeited := len(source.Hand) + len(source.Table)
			s.DiscardPile = append(s.DiscardPile, source.Hand...)
			s.DiscardPile = append(s.DiscardPile, source.Table...)
			source.Hand = nil
			source.Table = nil
			s.log("%s shot their own deputy and forfeits %d cards", source.Name, forfeited)
		}
	}

	// A dead seat can no longer be a queued target.
	if s.ResponseQueue != nil {
		s.ResponseQueue.Remove(target.ID)
	}

	s.evaluateWin()
}

// findHarvester returns a living player with the harvest passive, excluding
// the dying player themselves.
func (s *GameState) findHarvester(excludeID string) *Player {
	for _, p := range s.Players {
		if p.IsDead || p.ID == excludeID {
			continue
		}
		if charOf(p).HarvestsEliminated {
			return p
		}
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
