// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/retroboard/cliparse"
	"github.com/danielhkuo/retroboard/handlers"
	"github.com/danielhkuo/retroboard/middleware"
	"github.com/danielhkuo/retroboard/store"
)

func NewRouter(st store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	boardHandler := handlers.NewBoardHandler(st, cfg)
	cardHandler := handlers.NewCardHandler(st, cfg)
	voteHandler := handlers.NewVoteHandler(st, cfg)

	// Every endpoint below resolves the participant first; the remaining
	// gates are declared per endpoint in the handlers.
	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithParticipant(cfg.ParticipantSecret, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Board provisioning and phase management
	route("POST /boards", boardHandler.Create)
	route("GET /boards/{board_id}", boardHandler.Get)
	route("PATCH /boards/{board_id}", boardHandler.Update)
	route("DELETE /boards/{board_id}", boardHandler.Delete)
	route("POST /boards/{board_id}/ranks", boardHandler.CreateRank)
	route("GET /boards/{board_id}/ranks", boardHandler.ListRanks)

	// Cards
	route("POST /boards/{board_id}/ranks/{rank_id}/cards", cardHandler.Create)
	route("GET /boards/{board_id}/cards", cardHandler.ListBoard)
	route("GET /boards/{board_id}/ranks/{rank_id}/cards", cardHandler.ListRank)
	route("GET /boards/{board_id}/ranks/{rank_id}/cards/{card_id}", cardHandler.Get)
	route("PATCH /boards/{board_id}/ranks/{rank_id}/cards/{card_id}", cardHandler.Update)
	route("DELETE /boards/{board_id}/ranks/{rank_id}/cards/{card_id}", cardHandler.Delete)

	// Votes
	route("POST /boards/{board_id}/ranks/{rank_id}/cards/{card_id}/vote", voteHandler.Cast)
	route("DELETE /boards/{board_id}/ranks/{rank_id}/cards/{card_id}/vote", voteHandler.Remove)
	route("GET /boards/{board_id}/ranks/{rank_id}/cards/{card_id}/votes", voteHandler.List)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("retroboard API v1"))
	})

	return mux
}
