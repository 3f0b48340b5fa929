package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchResult is one finished game's outcome.
type MatchResult struct {
	GameID     string
	Winner     string
	Players    int
	Turns      int
	FinishedAt time.Time
}

// PlayerResult is one seat's outcome within a match.
type PlayerResult struct {
	GameID    string
	PlayerID  string
	Role      string
	Character string
	Won       bool
	Survived  bool
}

// MatchRepository writes match outcomes.
type MatchRepository struct {
	db *pgxpool.Pool
}

// NewMatchRepository creates a repository over the given pool.
func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

// SaveResult records a finished match and its per-player rows in one
// transaction.
func (r *MatchRepository) SaveResult(ctx context.Context, result MatchResult, players []PlayerResult) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO matches (game_id, winner, players, turns, finished_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (game_id) DO NOTHING`,
		result.GameID, result.Winner, result.Players, result.Turns, result.FinishedAt,
	)
	if err != nil {
		return err
	}

	for _, p := range players {
		_, err = tx.Exec(ctx,
			`INSERT INTO match_players (game_id, player_id, role, character, won, survived)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (game_id, player_id) DO NOTHING`,
			p.GameID, p.PlayerID, p.Role, p.Character, p.Won, p.Survived,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// RecentMatches returns the most recent finished matches.
func (r *MatchRepository) RecentMatches(ctx context.Context, limit int) ([]MatchResult, error) {
	rows, err := r.db.Query(ctx,
		`SELECT game_id, winner, players, turns, finished_at
		 FROM matches ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var m MatchResult
		if err := rows.Scan(&m.GameID, &m.Winner, &m.Players, &m.Turns, &m.FinishedAt); err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, rows.Err()
}
