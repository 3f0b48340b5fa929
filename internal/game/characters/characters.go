// Package characters defines the capability table for character passives.
// The engine looks abilities up here instead of branching on display names,
// so new characters are additive.
package characters

import "sort"

// DrawMode selects the start-of-turn draw variant for a character.
type DrawMode int

const (
	// DrawStandard draws two cards from the deck.
	DrawStandard DrawMode = iota
	// DrawFromDiscard takes the top of the discard pile plus one deck card.
	DrawFromDiscard
	// DrawChooseSource defers to an explicit deck-or-player choice.
	DrawChooseSource
	// DrawRevealThree reveals three cards into a keep-2/return-1 pool.
	DrawRevealThree
	// DrawShowSecond reveals the second card; a red suit grants a third.
	DrawShowSecond
)

// Character is the declarative set of modifiers a character layers over the
// base rules. Zero values mean "no modifier".
type Character struct {
	Name  string
	MaxHP int

	// Distance passives.
	DistanceMod  int // added when others measure distance to this player
	ViewDistance int // subtracted when this player measures distance

	// Combat passives.
	UnlimitedBangs       bool // no per-turn bang limit
	BangMissedSwap       bool // may play bang as missed and missed as bang
	DoubleMissedRequired bool // defenders need two missed cards against this attacker
	BuiltInBarrel        bool // barrel Draw! check without the equipment
	DoubleDrawCheck      bool // flips two cards on any Draw! check, best counts

	// Damage hooks.
	DrawsOnHit  bool // draws one card each time damage is taken
	StealsOnHit bool // steals a random card from the attacker on hit

	// Other passives.
	HarvestsEliminated bool // claims eliminated players' cards
	DrawsWhenHandEmpty bool // draws a card whenever the hand empties

	// Active ability (discard two cards to regain one life).
	DiscardHeal bool

	DrawMode DrawMode
}

var table = map[string]Character{
	"Bart Cassidy":    {MaxHP: 4, DrawsOnHit: true},
	"Black Jack":      {MaxHP: 4, DrawMode: DrawShowSecond},
	"Calamity Janet":  {MaxHP: 4, BangMissedSwap: true},
	"El Gringo":       {MaxHP: 3, StealsOnHit: true},
	"Jesse Jones":     {MaxHP: 4, DrawMode: DrawChooseSource},
	"Jourdonnais":     {MaxHP: 4, BuiltInBarrel: true},
	"Kit Carlson":     {MaxHP: 4, DrawMode: DrawRevealThree},
	"Lucky Duke":      {MaxHP: 4, DoubleDrawCheck: true},
	"Paul Regret":     {MaxHP: 3, DistanceMod: 1},
	"Pedro Ramirez":   {MaxHP: 4, DrawMode: DrawFromDiscard},
	"Rose Doolan":     {MaxHP: 4, ViewDistance: 1},
	"Sid Ketchum":     {MaxHP: 4, DiscardHeal: true},
	"Slab the Killer": {MaxHP: 4, DoubleMissedRequired: true},
	"Suzy Lafayette":  {MaxHP: 4, DrawsWhenHandEmpty: true},
	"Vulture Sam":     {MaxHP: 4, HarvestsEliminated: true},
	"Willy the Kid":   {MaxHP: 4, UnlimitedBangs: true},
}

// Get returns the capability entry for a character name.
func Get(name string) (Character, bool) {
	c, ok := table[name]
	if !ok {
		return Character{}, false
	}
	c.Name = name
	return c, true
}

// Names returns all character names in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
