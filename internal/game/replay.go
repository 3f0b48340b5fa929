package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"sync"
)

// Replay records the sequence of state snapshots a game produced, one per
// accepted action, for playback and post-game analysis.
type Replay struct {
	GameID       string
	States       []*GameState
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates an empty replay for a game.
func NewReplay(gameID string) *Replay {
	return &Replay{GameID: gameID}
}

// RecordState appends a snapshot. Snapshots are never mutated after being
// swapped in, so storing the pointer is safe.
func (r *Replay) RecordState(state *GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.States = append(r.States, state)
}

// Size returns the number of recorded snapshots.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.States)
}

// Start rewinds the replay cursor to the beginning.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CurrentIndex = 0
}

// Next returns the snapshot at the cursor and advances it, or nil at the end.
func (r *Replay) Next() *GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CurrentIndex >= len(r.States) {
		return nil
	}
	state := r.States[r.CurrentIndex]
	r.CurrentIndex++
	return state
}

// Previous steps the cursor back and returns that snapshot, or nil at the
// beginning.
func (r *Replay) Previous() *GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CurrentIndex == 0 {
		return nil
	}
	r.CurrentIndex--
	return r.States[r.CurrentIndex]
}

// SaveToFile writes the replay as gzip-compressed gob.
func (r *Replay) SaveToFile(path string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create replay file: %w", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	enc := gob.NewEncoder(zw)
	if err := enc.Encode(r.GameID); err != nil {
		zw.Close()
		return fmt.Errorf("encode replay header: %w", err)
	}
	if err := enc.Encode(r.States); err != nil {
		zw.Close()
		return fmt.Errorf("encode replay states: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush replay file: %w", err)
	}
	return f.Sync()
}

// LoadReplayFromFile reads a replay previously written by SaveToFile.
func LoadReplayFromFile(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read replay file: %w", err)
	}
	defer zr.Close()

	replay := &Replay{}
	dec := gob.NewDecoder(zr)
	if err := dec.Decode(&replay.GameID); err != nil {
		return nil, fmt.Errorf("decode replay header: %w", err)
	}
	if err := dec.Decode(&replay.States); err != nil {
		return nil, fmt.Errorf("decode replay states: %w", err)
	}
	return replay, nil
}
