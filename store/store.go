// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/retroboard/models"
)

// Closed error taxonomy for the persistence port. Callers never inspect
// store-specific error detail beyond these three.
var (
	// ErrNotFound means the entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable means the store failed transiently.
	ErrUnavailable = errors.New("store unavailable")
)

// Store is the persistence port consumed by the gates, the tally engine,
// and the handlers. Implementations must be safe for concurrent use, and
// GetOrCreateVote must be atomic: two concurrent first-votes for the same
// (card, participant) pair must never produce two records.
type Store interface {
	CreateBoard(ctx context.Context, board models.Board) error
	FindBoard(ctx context.Context, boardID string) (models.Board, error)
	UpdateBoard(ctx context.Context, boardID string, patch models.BoardPatch) (models.Board, error)
	DeleteBoard(ctx context.Context, boardID string) error

	CreateRank(ctx context.Context, rank models.Rank) error
	FindRank(ctx context.Context, rankID string) (models.Rank, error)
	ListRanks(ctx context.Context, boardID string) ([]models.Rank, error)

	CreateCard(ctx context.Context, card models.Card) error
	FindCard(ctx context.Context, cardID string) (models.Card, error)
	UpdateCard(ctx context.Context, cardID string, patch models.CardPatch) (models.Card, error)
	DeleteCard(ctx context.Context, cardID string) error
	ListBoardCards(ctx context.Context, boardID string) ([]models.Card, error)
	ListRankCards(ctx context.Context, rankID string) ([]models.Card, error)

	GetOrCreateVote(ctx context.Context, cardID, participantID string) (models.Vote, error)
	FindVote(ctx context.Context, cardID, participantID string) (models.Vote, error)
	UpdateVote(ctx context.Context, cardID, participantID string, count int) (models.Vote, error)
	ListVotes(ctx context.Context, cardID string) ([]models.Vote, error)

	Close() error
}
