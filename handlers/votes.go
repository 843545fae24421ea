// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/retroboard/cliparse"
	"github.com/danielhkuo/retroboard/gates"
	"github.com/danielhkuo/retroboard/middleware"
	"github.com/danielhkuo/retroboard/store"
	"github.com/danielhkuo/retroboard/tally"
)

// Gate chains for the vote endpoints. The voting_open phase check lives in
// the tally engine, not here: it guards the tally transition itself, and the
// engine refuses to mutate before checking it.
var (
	castVoteGates   = gates.Chain(gates.BoardExists, gates.RankInBoard, gates.CardInRank)
	removeVoteGates = gates.Chain(gates.RankInBoard, gates.CardInRank)
	listVotesGates  = gates.Chain(gates.RankInBoard, gates.CardInRank)
)

type VoteHandler struct {
	st     store.Store
	engine *tally.Engine
	cfg    cliparse.Config
}

func NewVoteHandler(st store.Store, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{st: st, engine: tally.NewEngine(st), cfg: cfg}
}

// Cast handles POST /boards/{board_id}/ranks/{rank_id}/cards/{card_id}/vote
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	greq := gateRequest(r)
	if gerr := castVoteGates(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	vote, err := h.engine.Cast(r.Context(), greq.BoardID, greq.CardID, greq.ParticipantID)
	if errors.Is(err, tally.ErrVotingClosed) {
		slog.Info("vote rejected", "reason", "voting_closed", "board_id", greq.BoardID)
		middleware.ErrorResponse(w, http.StatusForbidden, "Voting is closed for this board")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Board not found")
		return
	}
	if err != nil {
		slog.Error("failed to cast vote", "error", err, "card_id", greq.CardID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	slog.Info("vote cast", "card_id", greq.CardID, "participant_id", greq.ParticipantID, "count", vote.Count)
	middleware.JSONResponse(w, http.StatusOK, vote)
}

// Remove handles DELETE /boards/{board_id}/ranks/{rank_id}/cards/{card_id}/vote
func (h *VoteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	greq := gateRequest(r)
	if gerr := removeVoteGates(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	vote, err := h.engine.Remove(r.Context(), greq.BoardID, greq.CardID, greq.ParticipantID)
	if errors.Is(err, tally.ErrVotingClosed) {
		slog.Info("vote removal rejected", "reason", "voting_closed", "board_id", greq.BoardID)
		middleware.ErrorResponse(w, http.StatusForbidden, "Voting is closed for this board")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No vote to remove")
		return
	}
	if err != nil {
		slog.Error("failed to remove vote", "error", err, "card_id", greq.CardID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove vote")
		return
	}

	slog.Info("vote removed", "card_id", greq.CardID, "participant_id", greq.ParticipantID, "count", vote.Count)
	middleware.JSONResponse(w, http.StatusOK, vote)
}

// List handles GET /boards/{board_id}/ranks/{rank_id}/cards/{card_id}/votes
func (h *VoteHandler) List(w http.ResponseWriter, r *http.Request) {
	greq := gateRequest(r)
	if gerr := listVotesGates(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	votes, err := h.engine.List(r.Context(), greq.CardID)
	if err != nil {
		writeStoreError(w, err, "Card not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}
