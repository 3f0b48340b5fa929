package game

import "github.com/MaxLezano/bang-online-sub000/internal/game/cards"

// Distance returns the effective distance from source to target: the
// minimum hop count around the living-player ring (dead seats are passed
// through without counting), adjusted by the target's distance modifiers
// minus the source's view distance, floored at 1. Distance to self is 0.
func (s *GameState) Distance(source, target *Player) int {
	if source.ID == target.ID {
		return 0
	}

	// Indices of the two seats within the living-only ring.
	living := 0
	srcIdx, tgtIdx := -1, -1
	for _, p := range s.Players {
		if p.IsDead && p.ID != source.ID && p.ID != target.ID {
			continue
		}
		if p.ID == source.ID {
			srcIdx = living
		}
		if p.ID == target.ID {
			tgtIdx = living
		}
		living++
	}
	if srcIdx == -1 || tgtIdx == -1 {
		return 0
	}

	hops := srcIdx - tgtIdx
	if hops < 0 {
		hops = -hops
	}
	if wrap := living - hops; wrap < hops {
		hops = wrap
	}

	distance := hops + s.DistanceMod(target) - s.ViewDistance(source)
	if distance < 1 {
		distance = 1
	}
	return distance
}

// WeaponRange is the source's effective attack range: the equipped weapon's
// range, or 1 with bare hands. Always recomputed from table contents so it
// can never go stale after equipment changes.
func (s *GameState) WeaponRange(p *Player) int {
	if weapon, ok := p.Weapon(); ok {
		return weapon.Range
	}
	return 1
}

// DistanceMod is how much farther away the player appears to others,
// derived from character passives and equipped cards.
func (s *GameState) DistanceMod(p *Player) int {
	mod := charOf(p).DistanceMod
	for _, c := range p.Table {
		if c.Effect == cards.EffectMustang || c.Effect == cards.EffectHideout {
			mod += c.Magnitude
		}
	}
	return mod
}

// ViewDistance is how much closer the player sees everyone else.
func (s *GameState) ViewDistance(p *Player) int {
	view := charOf(p).ViewDistance
	for _, c := range p.Table {
		if c.Effect == cards.EffectScope {
			view += c.Magnitude
		}
	}
	return view
}
