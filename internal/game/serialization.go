package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/MaxLezano/bang-online-sub000/internal/game/cards"
)

// Checksum computes a deterministic SHA-256 digest of a state snapshot.
// Relay peers compare digests after each action to detect divergent game
// states before they compound.
func (s *GameState) Checksum() string {
	hash := sha256.Sum256([]byte(s.canonical()))
	return hex.EncodeToString(hash[:])
}

// canonical builds a stable textual representation of the snapshot. Slices
// are already deterministic (seat order, pile order), so nothing needs
// sorting; maps are avoided entirely.
func (s *GameState) canonical() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%s|%s|%d|%t|%s|%t\n",
		s.GameID, s.Phase, s.TurnIndex, s.HasPlayedBang, s.Winner, s.GameOver)

	for _, p := range s.Players {
		fmt.Fprintf(&buf, "PLAYER:%s|%s|%s|%d|%d|%d|%t\n",
			p.ID, p.Role, p.Character, p.HP, p.MaxHP, p.Position, p.IsDead)
		writeCardLine(&buf, "HAND", p.Hand)
		writeCardLine(&buf, "TABLE", p.Table)
	}

	writeCardLine(&buf, "DECK", s.Deck)
	writeCardLine(&buf, "DISCARD", s.DiscardPile)
	writeCardLine(&buf, "STORE", s.GeneralStoreCards)
	writeCardLine(&buf, "REVEAL", s.KitCarlsonCards)

	if s.Pending != nil {
		fmt.Fprintf(&buf, "PENDING:%s|%s|%s|%s|%t|%d|%d\n",
			s.Pending.Kind, s.Pending.SourceID, s.Pending.TargetID,
			s.Pending.ResponderID, s.Pending.BarrelUsed,
			s.Pending.MissedNeeded, s.Pending.MissedPlayed)
	}
	if s.ResponseQueue != nil {
		fmt.Fprintf(&buf, "QUEUE:%d", s.ResponseQueue.Head)
		for _, id := range s.ResponseQueue.Targets {
			fmt.Fprintf(&buf, "|%s", id)
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}

func writeCardLine(buf *bytes.Buffer, label string, pile []cards.Card) {
	buf.WriteString(label)
	buf.WriteByte(':')
	for _, c := range pile {
		buf.WriteString(c.ID)
		buf.WriteByte(',')
	}
	buf.WriteByte('\n')
}

// AuditConservation verifies the card conservation invariant: the total
// card count across every pile, hand and table equals the fixed deck size.
// Elimination-loot re-identification changes card identities but never the
// count.
func (s *GameState) AuditConservation() error {
	if total := s.CountCards(); total != cards.DeckSize {
		return fmt.Errorf("card conservation violated: counted %d, want %d", total, cards.DeckSize)
	}
	return nil
}
