package game

// ActionType identifies the discrete player actions the engine accepts.
type ActionType string

const (
	ActionInitGame        ActionType = "INIT_GAME"
	ActionChooseCharacter ActionType = "CHOOSE_CHARACTER"
	ActionStartTurn       ActionType = "START_TURN"
	ActionSelectCard      ActionType = "SELECT_CARD"
	ActionJesseChooseDraw ActionType = "JESSE_CHOOSE_DRAW"
	ActionPlayCard        ActionType = "PLAY_CARD"
	ActionDiscardCard     ActionType = "DISCARD_CARD"
	ActionDraftCard       ActionType = "DRAFT_CARD"
	ActionEndTurn         ActionType = "END_TURN"
	ActionUseAbility      ActionType = "USE_ABILITY"
	ActionRespond         ActionType = "RESPOND"
)

// ResponseType is a defender's choice against a pending attack.
type ResponseType string

const (
	ResponseCard    ResponseType = "card"
	ResponseBarrel  ResponseType = "barrel"
	ResponseTakeHit ResponseType = "take_hit"
)

// DrawSource selects where a deck-or-player draw choice takes its card from.
type DrawSource string

const (
	DrawSourceDeck   DrawSource = "deck"
	DrawSourcePlayer DrawSource = "player"
)

// Action is one submitted player action. Human UIs, bot drivers and remote
// peers all submit the same shape; the engine does not distinguish them.
type Action struct {
	Type           ActionType   `json:"type"`
	PlayerID       string       `json:"player_id,omitempty"`
	CardID         string       `json:"card_id,omitempty"`
	TargetID       string       `json:"target_id,omitempty"`
	ReplacedCardID string       `json:"replaced_card_id,omitempty"`
	CharacterName  string       `json:"character_name,omitempty"`
	Source         DrawSource   `json:"source,omitempty"`
	ResponseType   ResponseType `json:"response_type,omitempty"`
}
