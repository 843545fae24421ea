// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gates

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielhkuo/retroboard/models"
	"github.com/danielhkuo/retroboard/store"
)

// seed builds a store with two boards, a rank and card under the first, and
// a rank under the second, so containment failures can be exercised.
func seed(t *testing.T) (st *store.MemoryStore, owner string, boardID, rankID, cardID, otherBoardID, otherRankID string) {
	t.Helper()

	st = store.NewMemoryStore()
	ctx := context.Background()
	owner = "owner-participant"

	boardID = "board-1"
	if err := st.CreateBoard(ctx, models.Board{
		ID: boardID, OwnerParticipantID: owner,
		CardsOpen: true, VotingOpen: true, MaxVotes: 3,
		CreatedAt: time.Now().Unix(),
	}); err != nil {
		t.Fatalf("Failed to seed board: %v", err)
	}

	otherBoardID = "board-2"
	if err := st.CreateBoard(ctx, models.Board{
		ID: otherBoardID, OwnerParticipantID: "someone-else",
		CardsOpen: false, VotingOpen: false, MaxVotes: 1,
		CreatedAt: time.Now().Unix(),
	}); err != nil {
		t.Fatalf("Failed to seed board: %v", err)
	}

	rankID = "rank-1"
	if err := st.CreateRank(ctx, models.Rank{ID: rankID, BoardID: boardID, Name: "Went well"}); err != nil {
		t.Fatalf("Failed to seed rank: %v", err)
	}
	otherRankID = "rank-2"
	if err := st.CreateRank(ctx, models.Rank{ID: otherRankID, BoardID: otherBoardID, Name: "Elsewhere"}); err != nil {
		t.Fatalf("Failed to seed rank: %v", err)
	}

	cardID = "card-1"
	if err := st.CreateCard(ctx, models.Card{
		ID: cardID, RankID: rankID, ParticipantID: owner,
		Name: "A card", CreatedAt: time.Now().Unix(),
	}); err != nil {
		t.Fatalf("Failed to seed card: %v", err)
	}

	return st, owner, boardID, rankID, cardID, otherBoardID, otherRankID
}

func TestContainmentGates(t *testing.T) {
	st, owner, boardID, rankID, cardID, otherBoardID, otherRankID := seed(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		gate       Gate
		gateName   string
		req        Request
		wantReason Reason
		pass       bool
	}{
		{
			name: "rank in its board passes",
			gate: RankInBoard,
			req:  Request{ParticipantID: owner, BoardID: boardID, RankID: rankID},
			pass: true,
		},
		{
			name:       "rank under another board is denied, not missing",
			gate:       RankInBoard,
			gateName:   "rank_in_board",
			req:        Request{ParticipantID: owner, BoardID: otherBoardID, RankID: rankID},
			wantReason: ReasonDenied,
		},
		{
			name:       "absent rank is not found",
			gate:       RankInBoard,
			gateName:   "rank_in_board",
			req:        Request{ParticipantID: owner, BoardID: boardID, RankID: "nope"},
			wantReason: ReasonNotFound,
		},
		{
			name: "card in its rank passes",
			gate: CardInRank,
			req:  Request{ParticipantID: owner, RankID: rankID, CardID: cardID},
			pass: true,
		},
		{
			name:       "card under another rank is denied",
			gate:       CardInRank,
			gateName:   "card_in_rank",
			req:        Request{ParticipantID: owner, RankID: otherRankID, CardID: cardID},
			wantReason: ReasonDenied,
		},
		{
			name:       "absent card is not found",
			gate:       CardInRank,
			gateName:   "card_in_rank",
			req:        Request{ParticipantID: owner, RankID: rankID, CardID: "nope"},
			wantReason: ReasonNotFound,
		},
		{
			name: "board exists passes",
			gate: BoardExists,
			req:  Request{ParticipantID: owner, BoardID: boardID},
			pass: true,
		},
		{
			name:       "absent board is not found",
			gate:       BoardExists,
			gateName:   "board_exists",
			req:        Request{ParticipantID: owner, BoardID: "nope"},
			wantReason: ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gerr := tt.gate(ctx, st, tt.req)
			if tt.pass {
				if gerr != nil {
					t.Fatalf("Expected gate to pass, got %v", gerr)
				}
				return
			}
			if gerr == nil {
				t.Fatal("Expected gate to fail")
			}
			if gerr.Reason != tt.wantReason {
				t.Errorf("Expected reason %s, got %s", tt.wantReason, gerr.Reason)
			}
			if gerr.Gate != tt.gateName {
				t.Errorf("Expected gate name %q, got %q", tt.gateName, gerr.Gate)
			}
		})
	}
}

func TestOwnershipGates(t *testing.T) {
	st, owner, boardID, _, cardID, _, _ := seed(t)
	ctx := context.Background()

	if gerr := CardOwner(ctx, st, Request{ParticipantID: owner, CardID: cardID}); gerr != nil {
		t.Errorf("Expected card owner to pass, got %v", gerr)
	}
	gerr := CardOwner(ctx, st, Request{ParticipantID: "intruder", CardID: cardID})
	if gerr == nil || gerr.Reason != ReasonDenied {
		t.Errorf("Expected denied for non-author, got %v", gerr)
	}

	if gerr := BoardOwner(ctx, st, Request{ParticipantID: owner, BoardID: boardID}); gerr != nil {
		t.Errorf("Expected board owner to pass, got %v", gerr)
	}
	gerr = BoardOwner(ctx, st, Request{ParticipantID: "intruder", BoardID: boardID})
	if gerr == nil || gerr.Reason != ReasonDenied {
		t.Errorf("Expected denied for non-owner, got %v", gerr)
	}
	gerr = BoardOwner(ctx, st, Request{ParticipantID: owner, BoardID: "nope"})
	if gerr == nil || gerr.Reason != ReasonNotFound {
		t.Errorf("Expected not found for absent board, got %v", gerr)
	}
}

func TestStateGates(t *testing.T) {
	st, owner, boardID, _, _, otherBoardID, _ := seed(t)
	ctx := context.Background()

	// board-1 has both phases open, board-2 both closed
	if gerr := CardsOpen(ctx, st, Request{ParticipantID: owner, BoardID: boardID}); gerr != nil {
		t.Errorf("Expected cards open to pass, got %v", gerr)
	}
	if gerr := VotingOpen(ctx, st, Request{ParticipantID: owner, BoardID: boardID}); gerr != nil {
		t.Errorf("Expected voting open to pass, got %v", gerr)
	}

	gerr := CardsOpen(ctx, st, Request{ParticipantID: owner, BoardID: otherBoardID})
	if gerr == nil || gerr.Reason != ReasonClosed {
		t.Errorf("Expected closed for cards_open=false, got %v", gerr)
	}
	gerr = VotingOpen(ctx, st, Request{ParticipantID: owner, BoardID: otherBoardID})
	if gerr == nil || gerr.Reason != ReasonClosed {
		t.Errorf("Expected closed for voting_open=false, got %v", gerr)
	}

	// A phase denial maps to 403 like ownership, but keeps its own reason
	if gerr.Status() != http.StatusForbidden {
		t.Errorf("Expected 403 for closed phase, got %d", gerr.Status())
	}
	if gerr.Reason == ReasonDenied {
		t.Error("Phase denial must not be classified as an ownership denial")
	}
}

// TestChainOrdering verifies that a request failing several gates reports the
// first failure in declared order, and that later gates never run.
func TestChainOrdering(t *testing.T) {
	st, _, _, rankID, cardID, otherBoardID, _ := seed(t)
	ctx := context.Background()

	// rank-1 is not in board-2 AND the caller owns neither; the containment
	// gate is declared first, so its error must win.
	req := Request{ParticipantID: "intruder", BoardID: otherBoardID, RankID: rankID, CardID: cardID}
	chain := Chain(RankInBoard, CardInRank, CardOwner)

	gerr := chain(ctx, st, req)
	if gerr == nil {
		t.Fatal("Expected chain to fail")
	}
	if gerr.Gate != "rank_in_board" {
		t.Errorf("Expected first gate in order to fail, got %q", gerr.Gate)
	}

	// Reversed declaration reports the ownership failure instead
	gerr = Chain(CardOwner, RankInBoard)(ctx, st, req)
	if gerr == nil || gerr.Gate != "card_owner" {
		t.Errorf("Expected card_owner failure for reversed chain, got %v", gerr)
	}
}

func TestChainShortCircuits(t *testing.T) {
	st, owner, boardID, rankID, cardID, _, _ := seed(t)
	ctx := context.Background()

	called := false
	probe := func(ctx context.Context, st store.Store, req Request) *Error {
		called = true
		return nil
	}

	req := Request{ParticipantID: owner, BoardID: boardID, RankID: "nope", CardID: cardID}
	gerr := Chain(RankInBoard, probe)(ctx, st, req)
	if gerr == nil {
		t.Fatal("Expected chain to fail")
	}
	if called {
		t.Error("Gate after a failure must not run")
	}

	// All gates pass: probe runs, chain passes
	req.RankID = rankID
	if gerr := Chain(RankInBoard, probe)(ctx, st, req); gerr != nil {
		t.Fatalf("Expected chain to pass, got %v", gerr)
	}
	if !called {
		t.Error("Expected probe gate to run after passing gate")
	}
}

func TestErrorWrapsStoreError(t *testing.T) {
	st, owner, boardID, _, _, _, _ := seed(t)

	gerr := RankInBoard(context.Background(), st, Request{ParticipantID: owner, BoardID: boardID, RankID: "nope"})
	if gerr == nil {
		t.Fatal("Expected gate to fail")
	}
	if !errors.Is(gerr, store.ErrNotFound) {
		t.Error("Expected gate error to wrap store.ErrNotFound")
	}
	if gerr.Status() != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", gerr.Status())
	}
}
