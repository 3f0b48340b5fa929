package game

import (
	"fmt"

	"github.com/MaxLezano/bang-online-sub000/internal/game/cards"
	"github.com/MaxLezano/bang-online-sub000/internal/game/rules"
)

const maxTableEquipment = 2

// applyPlayCard validates and resolves one card played from the acting
// player's hand. The handler mutates a clone, so the card is pulled from the
// hand up front; a later rejection discards the whole clone.
func (e *BangEngine) applyPlayCard(st *GameState, rng rules.Rand, action Action) error {
	if st.Phase != rules.PhasePlay {
		return rules.ErrWrongPhase
	}
	player := st.CurrentPlayer()
	if player.ID != action.PlayerID {
		return rules.ErrNotYourTurn
	}
	card, ok := player.RemoveFromHand(action.CardID)
	if !ok {
		return rules.ErrCardNotFound
	}

	var err error
	switch card.Effect {
	case cards.EffectBang:
		err = e.playBang(st, player, card, action.TargetID)
	case cards.EffectMissed:
		// Only the bang/missed-swap passive makes a missed playable
		// proactively, and it still counts against the bang limit.
		if !charOf(player).BangMissedSwap {
			err = fmt.Errorf("%w: nothing to dodge", rules.ErrInvalidAction)
		} else {
			err = e.playBang(st, player, card, action.TargetID)
		}
	case cards.EffectHeal:
		err = e.playBeer(st, player, card)
	case cards.EffectSaloon:
		err = e.playSaloon(st, player, card)
	case cards.EffectDraw:
		st.discard(card)
		st.drawToHand(rng, player, card.Magnitude, "")
		st.log("%s plays %s and draws %d cards", player.Name, card.Name, card.Magnitude)
	case cards.EffectSteal:
		err = e.playSteal(st, rng, player, card, action)
	case cards.EffectDiscard:
		err = e.playCatBalou(st, rng, player, card, action)
	case cards.EffectDuel:
		err = e.playDuel(st, player, card, action.TargetID)
	case cards.EffectIndians, cards.EffectDamageAll:
		err = e.playAreaAttack(st, player, card)
	case cards.EffectStore:
		err = e.playGeneralStore(st, rng, player, card)
	case cards.EffectJail:
		err = e.playJail(st, player, card, action.TargetID)
	case cards.EffectDynamite:
		err = e.playDynamite(st, player, card)
	default:
		err = e.playEquipment(st, player, card, action.ReplacedCardID)
	}
	if err != nil {
		return err
	}

	st.TurnPlayedCards = append(st.TurnPlayedCards, card.Name)
	st.SelectedCardID = ""
	st.checkEmptyHandDraw(rng, player)
	return nil
}

// playBang opens the response window for a targeted attack.
func (e *BangEngine) playBang(st *GameState, player *Player, card cards.Card, targetID string) error {
	target := st.FindPlayer(targetID)
	if target == nil || target.IsDead || target.ID == player.ID {
		return rules.ErrInvalidTarget
	}

	if st.HasPlayedBang && !charOf(player).UnlimitedBangs {
		weapon, hasWeapon := player.Weapon()
		if !hasWeapon || !weapon.Unlimited {
			return rules.ErrBangLimit
		}
	}

	distance := st.Distance(player, target)
	weaponRange := st.WeaponRange(player)
	if distance > weaponRange {
		return &rules.OutOfRangeError{Distance: distance, Range: weaponRange}
	}

	st.discard(card)
	missedNeeded := 1
	if charOf(player).DoubleMissedRequired {
		missedNeeded = 2
	}
	st.Pending = &PendingAction{
		Kind:         AttackBang,
		SourceID:     player.ID,
		TargetID:     target.ID,
		ResponderID:  target.ID,
		CardID:       card.ID,
		CardName:     card.Name,
		MissedNeeded: missedNeeded,
	}
	st.HasPlayedBang = true
	st.Phase = rules.PhaseResponding
	st.log("%s fires at %s", player.Name, target.Name)
	return nil
}

// playBeer heals one life. Beer is dead weight in a two-player endgame.
func (e *BangEngine) playBeer(st *GameState, player *Player, card cards.Card) error {
	if st.LivingCount() <= 2 {
		return fmt.Errorf("%w: beer has no effect with two players left", rules.ErrInvalidAction)
	}
	if player.HP >= player.MaxHP {
		return fmt.Errorf("%w: already at full life", rules.ErrInvalidAction)
	}
	st.discard(card)
	player.HP += card.Magnitude
	if player.HP > player.MaxHP {
		player.HP = player.MaxHP
	}
	st.log("%s drinks a beer (%d life)", player.Name, player.HP)
	return nil
}

func (e *BangEngine) playSaloon(st *GameState, player *Player, card cards.Card) error {
	st.discard(card)
	for _, p := range st.Players {
		if p.IsDead || p.HP >= p.MaxHP {
			continue
		}
		p.HP++
	}
	st.log("%s buys a round for the whole saloon", player.Name)
	return nil
}

// playSteal takes a card from a player at effective distance 1: a chosen
// table card when replacedCardID names one, otherwise a random hand card,
// falling back to the first table card against an empty hand.
func (e *BangEngine) playSteal(st *GameState, rng rules.Rand, player *Player, card cards.Card, action Action) error {
	target := st.FindPlayer(action.TargetID)
	if target == nil || target.IsDead || target.ID == player.ID {
		return rules.ErrInvalidTarget
	}
	if distance := st.Distance(player, target); distance > 1 {
		return &rules.OutOfRangeError{Distance: distance, Range: 1}
	}
	taken, err := takeCardFrom(st, rng, target, action.ReplacedCardID)
	if err != nil {
		return err
	}
	st.discard(card)
	player.Hand = append(player.Hand, taken)
	st.log("%s panics %s out of a card", player.Name, target.Name)
	st.checkEmptyHandDraw(rng, target)
	return nil
}

// playCatBalou forces any player to discard a card, at any distance.
func (e *BangEngine) playCatBalou(st *GameState, rng rules.Rand, player *Player, card cards.Card, action Action) error {
	target := st.FindPlayer(action.TargetID)
	if target == nil || target.IsDead || target.ID == player.ID {
		return rules.ErrInvalidTarget
	}
	taken, err := takeCardFrom(st, rng, target, action.ReplacedCardID)
	if err != nil {
		return err
	}
	st.discard(card)
	st.discard(taken)
	st.log("%s makes %s discard %s", player.Name, target.Name, taken.Name)
	st.checkEmptyHandDraw(rng, target)
	return nil
}

// takeCardFrom removes one card from the target: an explicitly named table
// card, a random hand card, or the first table card when the hand is empty.
func takeCardFrom(st *GameState, rng rules.Rand, target *Player, tableCardID string) (cards.Card, error) {
	if tableCardID != "" {
		if card, ok := target.RemoveFromTable(tableCardID); ok {
			return card, nil
		}
		return cards.Card{}, rules.ErrCardNotFound
	}
	if len(target.Hand) > 0 {
		idx := rng.Intn(len(target.Hand))
		card := target.Hand[idx]
		target.Hand = append(target.Hand[:idx], target.Hand[idx+1:]...)
		return card, nil
	}
	if len(target.Table) > 0 {
		card := target.Table[0]
		target.Table = target.Table[1:]
		return card, nil
	}
	return cards.Card{}, fmt.Errorf("%w: %s has no cards", rules.ErrInvalidTarget, target.Name)
}

// playDuel opens the alternating two-party sub-protocol; the target
// responds first.
func (e *BangEngine) playDuel(st *GameState, player *Player, card cards.Card, targetID string) error {
	target := st.FindPlayer(targetID)
	if target == nil || target.IsDead || target.ID == player.ID {
		return rules.ErrInvalidTarget
	}
	st.discard(card)
	st.Pending = &PendingAction{
		Kind:        AttackDuel,
		SourceID:    player.ID,
		TargetID:    target.ID,
		ResponderID: target.ID,
		CardID:      card.ID,
		CardName:    card.Name,
	}
	st.Phase = rules.PhaseResponding
	st.log("%s challenges %s to a duel", player.Name, target.Name)
	return nil
}

// playAreaAttack enqueues every other living player in seat order starting
// after the attacker; only the head of the queue is the active pending
// target.
func (e *BangEngine) playAreaAttack(st *GameState, player *Player, card cards.Card) error {
	kind := AttackGatling
	if card.Effect == cards.EffectIndians {
		kind = AttackIndians
	}

	var targets []string
	n := len(st.Players)
	for step := 1; step < n; step++ {
		p := st.Players[(player.Position+step)%n]
		if !p.IsDead {
			targets = append(targets, p.ID)
		}
	}
	st.discard(card)
	st.log("%s plays %s", player.Name, card.Name)
	if len(targets) == 0 {
		return nil
	}

	st.ResponseQueue = rules.NewTargetQueue(targets)
	first, _ := st.ResponseQueue.Next()
	st.Pending = &PendingAction{
		Kind:         kind,
		SourceID:     player.ID,
		TargetID:     first,
		ResponderID:  first,
		CardID:       card.ID,
		CardName:     card.Name,
		MissedNeeded: 1,
	}
	st.Phase = rules.PhaseResponding
	return nil
}

// playGeneralStore reveals one card per living player into the draft pool.
// The acting player picks first; picks proceed in seat order. If the deck
// cannot supply a full pool the store simply closes once it empties.
func (e *BangEngine) playGeneralStore(st *GameState, rng rules.Rand, player *Player, card cards.Card) error {
	st.discard(card)
	for i := 0; i < st.LivingCount(); i++ {
		revealed, ok := st.drawFromDeck(rng, "")
		if !ok {
			break
		}
		st.GeneralStoreCards = append(st.GeneralStoreCards, revealed)
	}
	if len(st.GeneralStoreCards) == 0 {
		return nil
	}
	st.StorePickerID = player.ID
	st.Phase = rules.PhaseGeneralStore
	st.log("%s opens the general store (%d cards)", player.Name, len(st.GeneralStoreCards))
	return nil
}

// playJail puts a player behind bars. The sheriff cannot be jailed.
func (e *BangEngine) playJail(st *GameState, player *Player, card cards.Card, targetID string) error {
	target := st.FindPlayer(targetID)
	if target == nil || target.IsDead || target.ID == player.ID {
		return rules.ErrInvalidTarget
	}
	if target.Role == RoleSheriff {
		return fmt.Errorf("%w: the sheriff cannot be jailed", rules.ErrInvalidTarget)
	}
	if target.HasTableEffect(cards.EffectJail) {
		return fmt.Errorf("%w: %s is already in jail", rules.ErrInvalidTarget, target.Name)
	}
	target.Table = append(target.Table, card)
	st.log("%s throws %s in jail", player.Name, target.Name)
	return nil
}

func (e *BangEngine) playDynamite(st *GameState, player *Player, card cards.Card) error {
	if player.HasTableEffect(cards.EffectDynamite) {
		return fmt.Errorf("%w: dynamite is already ticking here", rules.ErrInvalidTarget)
	}
	player.Table = append(player.Table, card)
	st.log("%s lights the dynamite", player.Name)
	return nil
}

// playEquipment puts a weapon or table equipment into play. One weapon
// slot; at most two non-weapon equipment cards; one copy per effect type.
// replacedCardID lets the player swap out an existing equipment card.
func (e *BangEngine) playEquipment(st *GameState, player *Player, card cards.Card, replacedCardID string) error {
	if card.IsWeapon() {
		if old, ok := player.Weapon(); ok {
			player.RemoveFromTable(old.ID)
			st.discard(old)
			st.log("%s trades %s for %s", player.Name, old.Name, card.Name)
		} else {
			st.log("%s equips %s", player.Name, card.Name)
		}
		player.Table = append(player.Table, card)
		return nil
	}
	if !card.IsEquipment() {
		return fmt.Errorf("%w: %s cannot be played", rules.ErrInvalidAction, card.Name)
	}
	if player.HasTableEffect(card.Effect) {
		return fmt.Errorf("%w: %s is already in play", rules.ErrInvalidTarget, card.Name)
	}

	equipped := 0
	for _, c := range player.Table {
		if c.IsEquipment() {
			equipped++
		}
	}
	if equipped >= maxTableEquipment {
		old, ok := player.RemoveFromTable(replacedCardID)
		if !ok || !old.IsEquipment() {
			if ok {
				player.Table = append(player.Table, old) // not an equipment slot, put it back
			}
			return fmt.Errorf("%w: no free equipment slot", rules.ErrInvalidAction)
		}
		st.discard(old)
		st.log("%s replaces %s with %s", player.Name, old.Name, card.Name)
	} else {
		st.log("%s puts %s in play", player.Name, card.Name)
	}
	player.Table = append(player.Table, card)
	return nil
}
