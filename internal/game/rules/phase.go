package rules

import "fmt"

// Phase represents the per-turn lifecycle states of a game.
type Phase int

const (
	PhaseSelectCharacter Phase = iota
	PhaseDraw
	PhasePlay
	PhaseDiscard
	PhaseResponding
	PhaseGeneralStore
	PhaseSidDiscard
	PhaseKitCarlsonDiscard
	PhaseJesseJonesDraw
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseSelectCharacter:   "select_character",
	PhaseDraw:              "draw",
	PhasePlay:              "play",
	PhaseDiscard:           "discard",
	PhaseResponding:        "responding",
	PhaseGeneralStore:      "general_store",
	PhaseSidDiscard:        "sid_discard",
	PhaseKitCarlsonDiscard: "kit_carlson_discard",
	PhaseJesseJonesDraw:    "jesse_jones_draw",
	PhaseGameOver:          "game_over",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase_%d", int(p))
}
