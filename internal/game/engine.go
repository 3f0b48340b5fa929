package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/MaxLezano/bang-online-sub000/internal/game/cards"
	"github.com/MaxLezano/bang-online-sub000/internal/game/characters"
	"github.com/MaxLezano/bang-online-sub000/internal/game/rules"
	"go.uber.org/zap"
)

const (
	minPlayers = 2
	maxPlayers = 7

	characterChoices = 2
	sheriffHPBonus   = 1
	outlawBounty     = 3
)

// Seat describes one participant at game creation.
type Seat struct {
	ID    string
	Name  string
	IsBot bool
}

// gameSession pairs a game's current state with its private randomness
// source and replay recorder.
type gameSession struct {
	mu     sync.Mutex
	state  *GameState
	rng    rules.Rand
	replay *Replay
}

// BangEngine validates and applies player actions for any number of games.
// Each accepted action produces a fresh immutable state snapshot; rejected
// actions leave the prior snapshot untouched (beyond the rejection log line).
type BangEngine struct {
	logger *zap.Logger
	mu     sync.RWMutex
	games  map[string]*gameSession
}

// NewBangEngine creates a new engine instance.
func NewBangEngine(logger *zap.Logger) *BangEngine {
	return &BangEngine{
		logger: logger,
		games:  make(map[string]*gameSession),
	}
}

// CreateGame registers a new game with the given seats. Seat order defines
// turn order and the distance topology. The seed feeds the game's private
// randomness source so games are replayable.
func (e *BangEngine) CreateGame(gameID string, seats []Seat, seed int64) error {
	if len(seats) < minPlayers || len(seats) > maxPlayers {
		return fmt.Errorf("game needs %d-%d players, got %d", minPlayers, maxPlayers, len(seats))
	}
	seen := make(map[string]bool, len(seats))
	players := make([]*Player, len(seats))
	for i, seat := range seats {
		if seat.ID == "" || seen[seat.ID] {
			return fmt.Errorf("invalid or duplicate seat id %q", seat.ID)
		}
		seen[seat.ID] = true
		players[i] = &Player{
			ID:       seat.ID,
			Name:     seat.Name,
			Position: i,
			IsBot:    seat.IsBot,
		}
	}

	session := &gameSession{
		state: &GameState{
			GameID:  gameID,
			Players: players,
			Phase:   rules.PhaseSelectCharacter,
		},
		rng:    rules.NewRand(seed),
		replay: NewReplay(gameID),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.games[gameID]; exists {
		return fmt.Errorf("game %s already exists", gameID)
	}
	e.games[gameID] = session

	e.logger.Info("game created",
		zap.String("game_id", gameID),
		zap.Int("players", len(seats)),
	)
	return nil
}

func (e *BangEngine) session(gameID string) (*gameSession, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	session, ok := e.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game %s not found", gameID)
	}
	return session, nil
}

// ProcessAction applies one action to a game and returns the resulting
// snapshot. The transition is atomic: the action either fully applies to a
// clone that becomes the new current state, or the prior state is returned
// unchanged together with the rejection reason.
func (e *BangEngine) ProcessAction(gameID string, action Action) (*GameState, error) {
	session, err := e.session(gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	state := session.state
	if state.GameOver {
		return state, rules.ErrGameOver
	}

	next := state.Clone()
	if err := e.apply(next, session.rng, action); err != nil {
		if loggable(err) {
			state.log("rejected %s by %s: %v", action.Type, action.PlayerID, err)
		}
		e.logger.Debug("action rejected",
			zap.String("game_id", gameID),
			zap.String("action", string(action.Type)),
			zap.String("player_id", action.PlayerID),
			zap.Error(err),
		)
		return state, err
	}

	session.state = next
	session.replay.RecordState(next)
	e.logger.Debug("action applied",
		zap.String("game_id", gameID),
		zap.String("action", string(action.Type)),
		zap.String("player_id", action.PlayerID),
		zap.String("phase", next.Phase.String()),
	)
	return next, nil
}

// loggable reports whether a rejection deserves a human-readable log entry
// on the game state. Phase/turn mismatches are silently ignored; target and
// range problems are surfaced.
func loggable(err error) bool {
	switch {
	case errors.Is(err, rules.ErrWrongPhase),
		errors.Is(err, rules.ErrNotYourTurn),
		errors.Is(err, rules.ErrNotResponder),
		errors.Is(err, rules.ErrGameOver):
		return false
	}
	return true
}

// apply routes one action to its handler. Handlers mutate the clone freely;
// any returned error discards the clone.
func (e *BangEngine) apply(st *GameState, rng rules.Rand, action Action) error {
	switch action.Type {
	case ActionInitGame:
		return e.applyInitGame(st, rng)
	case ActionChooseCharacter:
		return e.applyChooseCharacter(st, rng, action)
	case ActionStartTurn:
		return e.applyStartTurn(st, rng, action)
	case ActionSelectCard:
		return e.applySelectCard(st, action)
	case ActionJesseChooseDraw:
		return e.applyJesseChooseDraw(st, rng, action)
	case ActionPlayCard:
		return e.applyPlayCard(st, rng, action)
	case ActionDiscardCard:
		return e.applyDiscardCard(st, rng, action)
	case ActionDraftCard:
		return e.applyDraftCard(st, action)
	case ActionEndTurn:
		return e.applyEndTurn(st, action)
	case ActionUseAbility:
		return e.applyUseAbility(st, action)
	case ActionRespond:
		return e.applyRespond(st, rng, action)
	default:
		return fmt.Errorf("%w: unknown action type %s", rules.ErrInvalidAction, action.Type)
	}
}

// Snapshot returns a deep copy of the game's current state.
func (e *BangEngine) Snapshot(gameID string) (*GameState, error) {
	session, err := e.session(gameID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state.Clone(), nil
}

// GameReplay returns the replay recorder for a game.
func (e *BangEngine) GameReplay(gameID string) (*Replay, error) {
	session, err := e.session(gameID)
	if err != nil {
		return nil, err
	}
	return session.replay, nil
}

// RemoveGame drops a finished game from the engine.
func (e *BangEngine) RemoveGame(gameID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.games, gameID)
}

// applyInitGame assigns roles, builds the shuffled deck and deals each seat
// its two-character draft. Valid exactly once per game.
func (e *BangEngine) applyInitGame(st *GameState, rng rules.Rand) error {
	if st.Phase != rules.PhaseSelectCharacter || len(st.Deck) > 0 {
		return fmt.Errorf("%w: game already initialized", rules.ErrInvalidAction)
	}

	roles := rolesFor(len(st.Players))
	rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	for i, p := range st.Players {
		p.Role = roles[i]
		if p.Role == RoleSheriff {
			st.TurnIndex = i
		}
	}

	st.Deck = cards.BuildDeck(rng)

	names := characters.Names()
	rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
	for i, p := range st.Players {
		p.CharacterChoices = names[i*characterChoices : (i+1)*characterChoices]
	}

	st.log("game initialized with %d players; the sheriff is %s",
		len(st.Players), st.CurrentPlayer().Name)
	return nil
}

// rolesFor returns the role distribution for a player count.
func rolesFor(n int) []Role {
	roles := []Role{RoleSheriff, RoleOutlaw}
	extras := []Role{RoleRenegade, RoleOutlaw, RoleDeputy, RoleOutlaw, RoleDeputy}
	for i := 0; i < n-minPlayers; i++ {
		roles = append(roles, extras[i])
	}
	return roles
}

// applyChooseCharacter resolves one seat's character draft. When every seat
// has chosen, opening hands are dealt and the sheriff's turn begins. Bots
// auto-pick their first option once all humans have chosen, so the pre-phase
// cannot deadlock on an idle bot.
func (e *BangEngine) applyChooseCharacter(st *GameState, rng rules.Rand, action Action) error {
	if st.Phase != rules.PhaseSelectCharacter {
		return rules.ErrWrongPhase
	}
	player := st.FindPlayer(action.PlayerID)
	if player == nil {
		return rules.ErrPlayerNotFound
	}
	if len(player.CharacterChoices) == 0 {
		return fmt.Errorf("%w: character already chosen", rules.ErrInvalidAction)
	}
	if !containsString(player.CharacterChoices, action.CharacterName) {
		return fmt.Errorf("%w: %s is not among the offered characters", rules.ErrInvalidTarget, action.CharacterName)
	}

	assignCharacter(st, player, action.CharacterName)

	if humansChosen(st) {
		for _, p := range st.Players {
			if p.IsBot && len(p.CharacterChoices) > 0 {
				assignCharacter(st, p, p.CharacterChoices[0])
			}
		}
	}

	for _, p := range st.Players {
		if len(p.CharacterChoices) > 0 {
			return nil // still waiting on other seats
		}
	}

	// All chosen: deal opening hands equal to each player's HP.
	for _, p := range st.Players {
		st.drawToHand(rng, p, p.HP, "")
	}
	st.Phase = rules.PhaseDraw
	for i, p := range st.Players {
		if p.Role == RoleSheriff {
			st.TurnIndex = i
		}
	}
	st.log("all characters chosen; hands dealt, %s opens the game", st.CurrentPlayer().Name)
	return nil
}

func assignCharacter(st *GameState, p *Player, name string) {
	char, _ := characters.Get(name)
	p.Character = name
	p.MaxHP = char.MaxHP
	if p.Role == RoleSheriff {
		p.MaxHP += sheriffHPBonus
	}
	p.HP = p.MaxHP
	p.CharacterChoices = nil
	st.log("%s plays as %s (%d life)", p.Name, name, p.MaxHP)
}

func humansChosen(st *GameState) bool {
	for _, p := range st.Players {
		if !p.IsBot && len(p.CharacterChoices) > 0 {
			return false
		}
	}
	return true
}

// applySelectCard records UI intent only; it carries no rule meaning.
func (e *BangEngine) applySelectCard(st *GameState, action Action) error {
	if st.Phase != rules.PhasePlay {
		return rules.ErrWrongPhase
	}
	if st.CurrentPlayer().ID != action.PlayerID {
		return rules.ErrNotYourTurn
	}
	st.SelectedCardID = action.CardID
	return nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
