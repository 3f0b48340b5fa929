package cards

import (
	"fmt"

	"github.com/MaxLezano/bang-online-sub000/internal/game/rules"
)

// DeckSize is the fixed total card count. Card conservation across deck,
// discard, hands and tables is checked against this number.
const DeckSize = 54

// template describes one card name and how many copies enter the deck.
type template struct {
	name      string
	count     int
	typ       Type
	subType   SubType
	effect    EffectType
	magnitude int
	wpnRange  int
	unlimited bool
}

var catalog = []template{
	{name: "Bang!", count: 12, typ: TypeAction, subType: SubAttack, effect: EffectBang},
	{name: "Missed!", count: 7, typ: TypeAction, subType: SubDefense, effect: EffectMissed},
	{name: "Beer", count: 5, typ: TypeAction, subType: SubUtility, effect: EffectHeal, magnitude: 1},
	{name: "Saloon", count: 1, typ: TypeAction, subType: SubUtility, effect: EffectSaloon, magnitude: 1},
	{name: "Stagecoach", count: 2, typ: TypeAction, subType: SubUtility, effect: EffectDraw, magnitude: 2},
	{name: "Wells Fargo", count: 1, typ: TypeAction, subType: SubUtility, effect: EffectDraw, magnitude: 3},
	{name: "Panic!", count: 3, typ: TypeAction, subType: SubUtility, effect: EffectSteal},
	{name: "Cat Balou", count: 3, typ: TypeAction, subType: SubUtility, effect: EffectDiscard},
	{name: "Gatling", count: 1, typ: TypeAction, subType: SubAttack, effect: EffectDamageAll},
	{name: "Indians!", count: 2, typ: TypeAction, subType: SubAttack, effect: EffectIndians},
	{name: "Duel", count: 2, typ: TypeAction, subType: SubAttack, effect: EffectDuel},
	{name: "General Store", count: 2, typ: TypeAction, subType: SubUtility, effect: EffectStore},
	{name: "Jail", count: 2, typ: TypeStatus, effect: EffectJail},
	{name: "Dynamite", count: 1, typ: TypeStatus, effect: EffectDynamite, magnitude: 3},
	{name: "Barrel", count: 2, typ: TypeEquipment, effect: EffectBarrel},
	{name: "Scope", count: 1, typ: TypeEquipment, effect: EffectScope, magnitude: 1},
	{name: "Mustang", count: 2, typ: TypeEquipment, effect: EffectMustang, magnitude: 1},
	{name: "Hideout", count: 1, typ: TypeEquipment, effect: EffectHideout, magnitude: 1},
	{name: "Volcanic", count: 1, typ: TypeEquipment, subType: SubWeapon, effect: EffectEquip, wpnRange: 1, unlimited: true},
	{name: "Schofield", count: 1, typ: TypeEquipment, subType: SubWeapon, effect: EffectEquip, wpnRange: 2},
	{name: "Remington", count: 1, typ: TypeEquipment, subType: SubWeapon, effect: EffectEquip, wpnRange: 3},
	{name: "Winchester", count: 1, typ: TypeEquipment, subType: SubWeapon, effect: EffectEquip, wpnRange: 5},
}

var suitCycle = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// BuildDeck expands the catalog into a full shuffled draw pile. Suits and
// ranks are assigned round-robin over the expansion order, so the deck
// composition is deterministic apart from the shuffle itself.
func BuildDeck(rng rules.Rand) []Card {
	deck := make([]Card, 0, DeckSize)
	i := 0
	for _, tpl := range catalog {
		for n := 0; n < tpl.count; n++ {
			deck = append(deck, Card{
				ID:        fmt.Sprintf("%s-%d", slug(tpl.name), n+1),
				Name:      tpl.name,
				NameKey:   "card." + slug(tpl.name),
				Type:      tpl.typ,
				SubType:   tpl.subType,
				Suit:      suitCycle[i%len(suitCycle)],
				Rank:      2 + i%13,
				Effect:    tpl.effect,
				Magnitude: tpl.magnitude,
				Range:     tpl.wpnRange,
				Unlimited: tpl.unlimited,
			})
			i++
		}
	}
	rng.Shuffle(len(deck), func(a, b int) {
		deck[a], deck[b] = deck[b], deck[a]
	})
	return deck
}

func slug(name string) string {
	key := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			key = append(key, r+'a'-'A')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			key = append(key, r)
		case r == ' ':
			key = append(key, '_')
		}
	}
	return string(key)
}
