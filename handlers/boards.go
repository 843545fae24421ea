// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/retroboard/cliparse"
	"github.com/danielhkuo/retroboard/gates"
	"github.com/danielhkuo/retroboard/middleware"
	"github.com/danielhkuo/retroboard/models"
	"github.com/danielhkuo/retroboard/store"
)

// DefaultMaxVotes is the per-participant, per-card vote ceiling applied when
// a board is created without one.
const DefaultMaxVotes = 5

// Gate chains for owner-restricted board operations. Identity runs in
// middleware before any of these.
var boardOwnerGates = gates.Chain(gates.BoardOwner)

type BoardHandler struct {
	st  store.Store
	cfg cliparse.Config
}

func NewBoardHandler(st store.Store, cfg cliparse.Config) *BoardHandler {
	return &BoardHandler{st: st, cfg: cfg}
}

func toBoardResponse(board models.Board, participantID string) models.BoardResponse {
	return models.BoardResponse{
		ID:         board.ID,
		Name:       board.Name,
		Owner:      board.OwnerParticipantID == participantID,
		CardsOpen:  board.CardsOpen,
		VotingOpen: board.VotingOpen,
		MaxVotes:   board.MaxVotes,
		CreatedAt:  board.CreatedAt,
	}
}

// Create handles POST /boards
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.ParticipantID(r)

	var req models.CreateBoardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	board := models.Board{
		ID:                 uuid.NewString(),
		OwnerParticipantID: participantID,
		Name:               req.Name,
		CardsOpen:          true,
		VotingOpen:         true,
		MaxVotes:           DefaultMaxVotes,
		CreatedAt:          time.Now().Unix(),
	}
	if req.CardsOpen != nil {
		board.CardsOpen = *req.CardsOpen
	}
	if req.VotingOpen != nil {
		board.VotingOpen = *req.VotingOpen
	}
	if req.MaxVotes != nil {
		if *req.MaxVotes < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "max_votes must be non-negative")
			return
		}
		board.MaxVotes = *req.MaxVotes
	}

	if err := h.st.CreateBoard(r.Context(), board); err != nil {
		slog.Error("failed to create board", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create board")
		return
	}

	slog.Info("board created", "board_id", board.ID, "owner", participantID)
	middleware.JSONResponse(w, http.StatusCreated, toBoardResponse(board, participantID))
}

// Get handles GET /boards/{board_id}
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.ParticipantID(r)
	boardID := r.PathValue("board_id")

	board, err := h.st.FindBoard(r.Context(), boardID)
	if err != nil {
		writeStoreError(w, err, "Board not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toBoardResponse(board, participantID))
}

// Update handles PATCH /boards/{board_id}. Only the board owner may change
// the name, the phase flags, or the vote limit.
func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.ParticipantID(r)
	boardID := r.PathValue("board_id")

	greq := gates.Request{ParticipantID: participantID, BoardID: boardID}
	if gerr := boardOwnerGates(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	var req models.UpdateBoardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.MaxVotes != nil && *req.MaxVotes < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "max_votes must be non-negative")
		return
	}

	board, err := h.st.UpdateBoard(r.Context(), boardID, models.BoardPatch{
		Name:       req.Name,
		CardsOpen:  req.CardsOpen,
		VotingOpen: req.VotingOpen,
		MaxVotes:   req.MaxVotes,
	})
	if err != nil {
		writeStoreError(w, err, "Board not found")
		return
	}

	slog.Info("board updated", "board_id", boardID)
	middleware.JSONResponse(w, http.StatusOK, toBoardResponse(board, participantID))
}

// Delete handles DELETE /boards/{board_id}
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.ParticipantID(r)
	boardID := r.PathValue("board_id")

	greq := gates.Request{ParticipantID: participantID, BoardID: boardID}
	if gerr := boardOwnerGates(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	if err := h.st.DeleteBoard(r.Context(), boardID); err != nil {
		writeStoreError(w, err, "Board not found")
		return
	}

	slog.Info("board deleted", "board_id", boardID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Board deleted"})
}

// CreateRank handles POST /boards/{board_id}/ranks
func (h *BoardHandler) CreateRank(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.ParticipantID(r)
	boardID := r.PathValue("board_id")

	greq := gates.Request{ParticipantID: participantID, BoardID: boardID}
	if gerr := boardOwnerGates(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	var req models.CreateRankRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	rank := models.Rank{
		ID:      uuid.NewString(),
		BoardID: boardID,
		Name:    req.Name,
	}
	if err := h.st.CreateRank(r.Context(), rank); err != nil {
		slog.Error("failed to create rank", "error", err, "board_id", boardID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create rank")
		return
	}

	slog.Info("rank created", "rank_id", rank.ID, "board_id", boardID)
	middleware.JSONResponse(w, http.StatusCreated, rank)
}

// ListRanks handles GET /boards/{board_id}/ranks
func (h *BoardHandler) ListRanks(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.ParticipantID(r)
	boardID := r.PathValue("board_id")

	greq := gates.Request{ParticipantID: participantID, BoardID: boardID}
	if gerr := gates.BoardExists(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	ranks, err := h.st.ListRanks(r.Context(), boardID)
	if err != nil {
		writeStoreError(w, err, "Board not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ranks)
}
