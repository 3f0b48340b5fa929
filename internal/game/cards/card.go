package cards

// Suit of a card, used by Draw! checks.
type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

// Type is the broad card category.
type Type string

const (
	TypeAction    Type = "action"
	TypeEquipment Type = "equipment"
	TypeStatus    Type = "status"
)

// SubType refines the card category.
type SubType string

const (
	SubAttack  SubType = "attack"
	SubDefense SubType = "defense"
	SubUtility SubType = "utility"
	SubWeapon  SubType = "weapon"
)

// EffectType is the closed enumeration of rule effects.
type EffectType string

const (
	EffectBang      EffectType = "bang"
	EffectMissed    EffectType = "missed"
	EffectHeal      EffectType = "heal"
	EffectDraw      EffectType = "draw"
	EffectDiscard   EffectType = "discard"
	EffectSteal     EffectType = "steal"
	EffectDamageAll EffectType = "damage_all"
	EffectDuel      EffectType = "duel"
	EffectIndians   EffectType = "indians"
	EffectSaloon    EffectType = "saloon"
	EffectStore     EffectType = "store"
	EffectJail      EffectType = "jail"
	EffectDynamite  EffectType = "dynamite"
	EffectScope     EffectType = "scope"
	EffectMustang   EffectType = "mustang"
	EffectBarrel    EffectType = "barrel"
	EffectHideout   EffectType = "hideout"
	EffectEquip     EffectType = "equip"
)

// Rank values 11-14 correspond to J, Q, K, A.
const (
	RankJack  = 11
	RankQueen = 12
	RankKing  = 13
	RankAce   = 14
)

// Card is an immutable template instance. Once in a pile cards are values;
// equality is by ID.
type Card struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	NameKey   string     `json:"name_key"`
	Type      Type       `json:"type"`
	SubType   SubType    `json:"sub_type,omitempty"`
	Suit      Suit       `json:"suit"`
	Rank      int        `json:"rank"`
	Effect    EffectType `json:"effect"`
	Magnitude int        `json:"magnitude,omitempty"`
	Range     int        `json:"range,omitempty"`
	Unlimited bool       `json:"unlimited,omitempty"` // weapon lifts the per-turn bang limit
}

// IsWeapon reports whether the card occupies the weapon slot.
func (c Card) IsWeapon() bool {
	return c.SubType == SubWeapon
}

// IsStatus reports whether the card is a status (Jail, Dynamite).
func (c Card) IsStatus() bool {
	return c.Type == TypeStatus
}

// IsEquipment reports whether the card is a non-weapon table equipment.
func (c Card) IsEquipment() bool {
	return c.Type == TypeEquipment && !c.IsWeapon()
}

// IsRed reports a hearts or diamonds suit.
func (c Card) IsRed() bool {
	return c.Suit == SuitHearts || c.Suit == SuitDiamonds
}
