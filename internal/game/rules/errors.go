package rules

import (
	"errors"
	"fmt"
)

// Sentinel errors for rejected actions. The engine never mutates state when
// one of these is returned; callers can match with errors.Is.
var (
	ErrGameOver       = errors.New("game has ended")
	ErrWrongPhase     = errors.New("wrong phase for this action")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrPlayerNotFound = errors.New("player not found")
	ErrCardNotFound   = errors.New("card not found")
	ErrInvalidTarget  = errors.New("invalid target")
	ErrInvalidAction  = errors.New("invalid action")
	ErrBangLimit      = errors.New("already played a bang this turn")
	ErrNotResponder   = errors.New("response is not yours to make")
	ErrBarrelUsed     = errors.New("barrel already used against this attack")
)

// OutOfRangeError reports a target beyond the attacker's effective weapon
// range. Carries structured fields so the presentation layer does not have
// to parse log strings.
type OutOfRangeError struct {
	Distance int
	Range    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("target out of range: distance %d exceeds range %d", e.Distance, e.Range)
}
