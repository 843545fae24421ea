// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
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

// Per-endpoint gate chains. Identity runs in middleware before all of them;
// containment precedes ownership, ownership precedes phase.
var (
	createCardGates = gates.Chain(gates.RankInBoard, gates.CardsOpen)
	rankCardsGates  = gates.Chain(gates.RankInBoard)
	getCardGates    = gates.Chain(gates.RankInBoard, gates.CardInRank)
	updateCardGates = gates.Chain(gates.RankInBoard, gates.CardInRank, gates.CardOwner)
)

type CardHandler struct {
	st  store.Store
	cfg cliparse.Config

	// deleteGates depends on the configured delete policy, so it is built
	// once at construction rather than declared with the static chains.
	deleteGates gates.Gate
}

func NewCardHandler(st store.Store, cfg cliparse.Config) *CardHandler {
	h := &CardHandler{st: st, cfg: cfg}

	containment := []gates.Gate{gates.RankInBoard, gates.CardInRank}
	switch cfg.DeletePolicy {
	case models.DeletePolicyAuthor:
		h.deleteGates = gates.Chain(append(containment, gates.CardOwner)...)
	case models.DeletePolicyOwner:
		h.deleteGates = gates.Chain(append(containment, gates.BoardOwner)...)
	default:
		h.deleteGates = gates.Chain(containment...)
	}
	return h
}

func toCardResponse(card models.Card, participantID string) models.CardResponse {
	return models.CardResponse{
		ID:          card.ID,
		RankID:      card.RankID,
		Name:        card.Name,
		Description: card.Description,
		Author:      card.Author,
		Owner:       card.ParticipantID == participantID,
		CreatedAt:   card.CreatedAt,
	}
}

func toCardResponses(cards []models.Card, participantID string) []models.CardResponse {
	responses := make([]models.CardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, toCardResponse(card, participantID))
	}
	return responses
}

// gateRequest builds the gate input from the request path and the resolved
// participant.
func gateRequest(r *http.Request) gates.Request {
	return gates.Request{
		ParticipantID: middleware.ParticipantID(r),
		BoardID:       r.PathValue("board_id"),
		RankID:        r.PathValue("rank_id"),
		CardID:        r.PathValue("card_id"),
	}
}

// Create handles POST /boards/{board_id}/ranks/{rank_id}/cards
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	greq := gateRequest(r)
	if gerr := createCardGates(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	var req models.PostCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	card := models.Card{
		ID:            uuid.NewString(),
		RankID:        greq.RankID,
		ParticipantID: greq.ParticipantID,
		Name:          req.Name,
		Description:   req.Description,
		Author:        req.Author,
		CreatedAt:     time.Now().Unix(),
	}

	if err := h.st.CreateCard(r.Context(), card); err != nil {
		slog.Error("failed to create card", "error", err, "rank_id", greq.RankID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create card")
		return
	}

	slog.Info("card created", "card_id", card.ID, "rank_id", greq.RankID)
	middleware.JSONResponse(w, http.StatusCreated, toCardResponse(card, greq.ParticipantID))
}

// ListBoard handles GET /boards/{board_id}/cards
func (h *CardHandler) ListBoard(w http.ResponseWriter, r *http.Request) {
	greq := gateRequest(r)

	cards, err := h.st.ListBoardCards(r.Context(), greq.BoardID)
	if err != nil {
		writeStoreError(w, err, "Board not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toCardResponses(cards, greq.ParticipantID))
}

// ListRank handles GET /boards/{board_id}/ranks/{rank_id}/cards
func (h *CardHandler) ListRank(w http.ResponseWriter, r *http.Request) {
	greq := gateRequest(r)
	if gerr := rankCardsGates(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	cards, err := h.st.ListRankCards(r.Context(), greq.RankID)
	if err != nil {
		writeStoreError(w, err, "Rank not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toCardResponses(cards, greq.ParticipantID))
}

// Get handles GET /boards/{board_id}/ranks/{rank_id}/cards/{card_id}
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	greq := gateRequest(r)
	if gerr := getCardGates(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	card, err := h.st.FindCard(r.Context(), greq.CardID)
	if err != nil {
		writeStoreError(w, err, "Card not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toCardResponse(card, greq.ParticipantID))
}

// Update handles PATCH /boards/{board_id}/ranks/{rank_id}/cards/{card_id}.
// Only the card's author may update it. A rank_id in the body re-parents the
// card; the target rank must exist and belong to the path's board, which a
// path-only gate cannot check.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	greq := gateRequest(r)
	if gerr := updateCardGates(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	var req models.UpdateCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name != nil && *req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	if req.RankID != nil && *req.RankID != greq.RankID {
		newRank, err := h.st.FindRank(r.Context(), *req.RankID)
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Rank not found")
			return
		}
		if err != nil {
			slog.Error("failed to look up rank", "error", err, "rank_id", *req.RankID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if newRank.BoardID != greq.BoardID {
			slog.Info("re-parent across boards rejected",
				"card_id", greq.CardID, "board_id", greq.BoardID, "new_rank_id", *req.RankID)
			middleware.ErrorResponse(w, http.StatusForbidden, "Cannot move a card to another board")
			return
		}
	}

	card, err := h.st.UpdateCard(r.Context(), greq.CardID, models.CardPatch{
		Name:        req.Name,
		Description: req.Description,
		RankID:      req.RankID,
	})
	if err != nil {
		writeStoreError(w, err, "Card not found")
		return
	}

	slog.Info("card updated", "card_id", greq.CardID)
	middleware.JSONResponse(w, http.StatusOK, toCardResponse(card, greq.ParticipantID))
}

// Delete handles DELETE /boards/{board_id}/ranks/{rank_id}/cards/{card_id}.
// Who may delete is the configured delete policy; the default matches the
// observed behavior of letting any participant that passes containment
// delete any card (facilitator moderation).
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	greq := gateRequest(r)
	if gerr := h.deleteGates(r.Context(), h.st, greq); gerr != nil {
		writeGateError(w, gerr)
		return
	}

	if err := h.st.DeleteCard(r.Context(), greq.CardID); err != nil {
		writeStoreError(w, err, "Card not found")
		return
	}

	slog.Info("card deleted", "card_id", greq.CardID, "by", greq.ParticipantID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Card deleted"})
}
