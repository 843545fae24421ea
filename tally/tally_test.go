// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/retroboard/models"
	"github.com/danielhkuo/retroboard/store"
)

func newFixture(t *testing.T, votingOpen bool, maxVotes int) (*Engine, *store.MemoryStore, string, string) {
	t.Helper()

	st := store.NewMemoryStore()
	ctx := context.Background()

	boardID := "board-1"
	err := st.CreateBoard(ctx, models.Board{
		ID: boardID, OwnerParticipantID: "owner",
		CardsOpen: true, VotingOpen: votingOpen, MaxVotes: maxVotes,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("Failed to seed board: %v", err)
	}
	if err := st.CreateRank(ctx, models.Rank{ID: "rank-1", BoardID: boardID, Name: "Went well"}); err != nil {
		t.Fatalf("Failed to seed rank: %v", err)
	}
	cardID := "card-1"
	err = st.CreateCard(ctx, models.Card{
		ID: cardID, RankID: "rank-1", ParticipantID: "author",
		Name: "A card", CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("Failed to seed card: %v", err)
	}

	return NewEngine(st), st, boardID, cardID
}

func TestCastStopsAtLimit(t *testing.T) {
	engine, _, boardID, cardID := newFixture(t, true, 2)
	ctx := context.Background()

	// Three casts against a limit of two: the third is a silent no-op
	counts := []int{1, 2, 2}
	for i, want := range counts {
		vote, err := engine.Cast(ctx, boardID, cardID, "alice")
		if err != nil {
			t.Fatalf("Cast %d failed: %v", i+1, err)
		}
		if vote.Count != want {
			t.Errorf("After cast %d expected count %d, got %d", i+1, want, vote.Count)
		}
	}
}

func TestCastCreatesSingleRecord(t *testing.T) {
	engine, st, boardID, cardID := newFixture(t, true, 5)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := engine.Cast(ctx, boardID, cardID, "alice"); err != nil {
			t.Fatalf("Cast failed: %v", err)
		}
	}

	votes, err := st.ListVotes(ctx, cardID)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("Expected one vote record, got %d", len(votes))
	}
	if votes[0].Count != 3 {
		t.Errorf("Expected count 3, got %d", votes[0].Count)
	}
}

func TestCastIsPerParticipant(t *testing.T) {
	engine, st, boardID, cardID := newFixture(t, true, 2)
	ctx := context.Background()

	if _, err := engine.Cast(ctx, boardID, cardID, "alice"); err != nil {
		t.Fatalf("Cast failed: %v", err)
	}
	if _, err := engine.Cast(ctx, boardID, cardID, "bob"); err != nil {
		t.Fatalf("Cast failed: %v", err)
	}

	votes, err := st.ListVotes(ctx, cardID)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 2 {
		t.Fatalf("Expected two vote records, got %d", len(votes))
	}
	for _, v := range votes {
		if v.Count != 1 {
			t.Errorf("Expected count 1 for %s, got %d", v.ParticipantID, v.Count)
		}
	}
}

// TestOverLimitCountPreserved covers a board whose max_votes was lowered after
// votes were cast: the existing count must survive untouched, and further
// casts must not push it higher.
func TestOverLimitCountPreserved(t *testing.T) {
	engine, st, boardID, cardID := newFixture(t, true, 5)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := engine.Cast(ctx, boardID, cardID, "alice"); err != nil {
			t.Fatalf("Cast failed: %v", err)
		}
	}

	// Owner lowers the limit below the existing count
	two := 2
	if _, err := st.UpdateBoard(ctx, boardID, models.BoardPatch{MaxVotes: &two}); err != nil {
		t.Fatalf("UpdateBoard failed: %v", err)
	}

	vote, err := engine.Cast(ctx, boardID, cardID, "alice")
	if err != nil {
		t.Fatalf("Cast failed: %v", err)
	}
	if vote.Count != 4 {
		t.Errorf("Expected over-limit count 4 preserved, got %d", vote.Count)
	}

	// Removing steps down normally from the preserved count
	vote, err = engine.Remove(ctx, boardID, cardID, "alice")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if vote.Count != 3 {
		t.Errorf("Expected count 3 after removal, got %d", vote.Count)
	}
}

func TestRemoveClampsAtZero(t *testing.T) {
	engine, _, boardID, cardID := newFixture(t, true, 3)
	ctx := context.Background()

	if _, err := engine.Cast(ctx, boardID, cardID, "alice"); err != nil {
		t.Fatalf("Cast failed: %v", err)
	}

	// Two removals against a count of one: the second stays at zero
	for i, want := range []int{0, 0} {
		vote, err := engine.Remove(ctx, boardID, cardID, "alice")
		if err != nil {
			t.Fatalf("Remove %d failed: %v", i+1, err)
		}
		if vote.Count != want {
			t.Errorf("After removal %d expected count %d, got %d", i+1, want, vote.Count)
		}
	}
}

func TestRemoveWithoutRecord(t *testing.T) {
	engine, _, boardID, cardID := newFixture(t, true, 3)

	_, err := engine.Remove(context.Background(), boardID, cardID, "alice")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected store.ErrNotFound for absent vote record, got %v", err)
	}
}

func TestVotingClosed(t *testing.T) {
	engine, st, boardID, cardID := newFixture(t, false, 3)
	ctx := context.Background()

	if _, err := engine.Cast(ctx, boardID, cardID, "alice"); !errors.Is(err, ErrVotingClosed) {
		t.Errorf("Expected ErrVotingClosed on cast, got %v", err)
	}
	if _, err := engine.Remove(ctx, boardID, cardID, "alice"); !errors.Is(err, ErrVotingClosed) {
		t.Errorf("Expected ErrVotingClosed on removal, got %v", err)
	}

	// No record may be created by a refused cast
	votes, err := st.ListVotes(ctx, cardID)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 0 {
		t.Errorf("Expected no vote records after refused cast, got %d", len(votes))
	}
}

func TestCastUnknownBoard(t *testing.T) {
	engine, _, _, cardID := newFixture(t, true, 3)

	_, err := engine.Cast(context.Background(), "nope", cardID, "alice")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected store.ErrNotFound for unknown board, got %v", err)
	}
}

// TestConcurrentFirstCasts races first votes from one participant on a board
// with max_votes=1: whatever the interleaving, exactly one record must exist
// and its count must be exactly one.
func TestConcurrentFirstCasts(t *testing.T) {
	engine, st, boardID, cardID := newFixture(t, true, 1)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.Cast(ctx, boardID, cardID, "alice"); err != nil {
				t.Errorf("Concurrent cast failed: %v", err)
			}
		}()
	}
	wg.Wait()

	votes, err := st.ListVotes(ctx, cardID)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("Expected exactly one vote record, got %d", len(votes))
	}
	if votes[0].Count != 1 {
		t.Errorf("Expected count 1, got %d", votes[0].Count)
	}
}

// TestConcurrentCastsBounded hammers one card from several participants and
// checks the invariant that no count ever exceeds max_votes or drops below
// zero, regardless of scheduling.
func TestConcurrentCastsBounded(t *testing.T) {
	const maxVotes = 3
	engine, st, boardID, cardID := newFixture(t, true, maxVotes)
	ctx := context.Background()

	participants := []string{"alice", "bob", "carol"}

	var wg sync.WaitGroup
	for _, p := range participants {
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(p string, i int) {
				defer wg.Done()
				if i%5 == 0 {
					// Interleave removals; an absent record is fine here
					if _, err := engine.Remove(ctx, boardID, cardID, p); err != nil && !errors.Is(err, store.ErrNotFound) {
						t.Errorf("Concurrent remove failed: %v", err)
					}
					return
				}
				if _, err := engine.Cast(ctx, boardID, cardID, p); err != nil {
					t.Errorf("Concurrent cast failed: %v", err)
				}
			}(p, i)
		}
	}
	wg.Wait()

	votes, err := st.ListVotes(ctx, cardID)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != len(participants) {
		t.Fatalf("Expected %d vote records, got %d", len(participants), len(votes))
	}
	for _, v := range votes {
		if v.Count < 0 || v.Count > maxVotes {
			t.Errorf("Count %d for %s escaped bounds [0, %d]", v.Count, v.ParticipantID, maxVotes)
		}
	}
}
