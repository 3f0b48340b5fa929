package game

import "github.com/MaxLezano/bang-online-sub000/internal/game/rules"

// evaluateWin inspects role survival and ends the game when a win condition
// holds. Re-checked after every elimination and at end of turn; once the
// game is over no further state-mutating actions are accepted.
func (s *GameState) evaluateWin() {
	if s.GameOver {
		return
	}

	var sheriffAlive bool
	var outlaws, deputies, renegades int
	for _, p := range s.Players {
		if p.IsDead {
			continue
		}
		switch p.Role {
		case RoleSheriff:
			sheriffAlive = true
		case RoleDeputy:
			deputies++
		case RoleOutlaw:
			outlaws++
		case RoleRenegade:
			renegades++
		}
	}

	switch {
	case !sheriffAlive && outlaws == 0 && deputies == 0 && renegades == 1:
		s.finish(WinnerRenegade, "the renegade stands alone")
	case !sheriffAlive:
		s.finish(WinnerOutlaws, "the sheriff is dead")
	case outlaws == 0 && renegades == 0:
		s.finish(WinnerSheriff, "all outlaws and renegades eliminated")
	}
}

func (s *GameState) finish(winner, reason string) {
	s.GameOver = true
	s.Winner = winner
	s.Phase = rules.PhaseGameOver
	s.Pending = nil
	s.ResponseQueue = nil
	s.log("game over: %s win (%s)", winner, reason)
}
