// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"

	"github.com/danielhkuo/retroboard/models"
)

// SQLStore implements Store on top of a relational database. Queries are
// written with ? placeholders and rebound per driver, so the same code runs
// on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).
type SQLStore struct {
	db *sqlx.DB
}

// OpenSQL connects to the database named by databaseType ("postgres" or
// "sqlite") and verifies the connection.
func OpenSQL(databaseType, databaseURL string) (*SQLStore, error) {
	driver, err := driverName(databaseType)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", databaseType, err)
	}

	return &SQLStore{db: db}, nil
}

func driverName(databaseType string) (string, error) {
	switch databaseType {
	case "postgres":
		return "postgres", nil
	case "sqlite":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database type %q", databaseType)
	}
}

// DB exposes the underlying connection for schema creation.
func (s *SQLStore) DB() *sql.DB {
	return s.db.DB
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// mapErr folds driver errors into the port's closed taxonomy. This is the
// only place store-specific error detail is inspected.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == 19 {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Boards

func (s *SQLStore) CreateBoard(ctx context.Context, board models.Board) error {
	q := s.db.Rebind(`
		INSERT INTO board (id, owner_participant_id, name, cards_open, voting_open, max_votes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, q,
		board.ID, board.OwnerParticipantID, board.Name,
		board.CardsOpen, board.VotingOpen, board.MaxVotes, board.CreatedAt)
	return mapErr(err)
}

func (s *SQLStore) FindBoard(ctx context.Context, boardID string) (models.Board, error) {
	var board models.Board
	q := s.db.Rebind(`SELECT * FROM board WHERE id = ?`)
	if err := s.db.GetContext(ctx, &board, q, boardID); err != nil {
		return models.Board{}, mapErr(err)
	}
	return board, nil
}

func (s *SQLStore) UpdateBoard(ctx context.Context, boardID string, patch models.BoardPatch) (models.Board, error) {
	var sets []string
	var args []interface{}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.CardsOpen != nil {
		sets = append(sets, "cards_open = ?")
		args = append(args, *patch.CardsOpen)
	}
	if patch.VotingOpen != nil {
		sets = append(sets, "voting_open = ?")
		args = append(args, *patch.VotingOpen)
	}
	if patch.MaxVotes != nil {
		sets = append(sets, "max_votes = ?")
		args = append(args, *patch.MaxVotes)
	}

	if len(sets) > 0 {
		args = append(args, boardID)
		q := s.db.Rebind(`UPDATE board SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
		res, err := s.db.ExecContext(ctx, q, args...)
		if err != nil {
			return models.Board{}, mapErr(err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return models.Board{}, ErrNotFound
		}
	}

	return s.FindBoard(ctx, boardID)
}

func (s *SQLStore) DeleteBoard(ctx context.Context, boardID string) error {
	q := s.db.Rebind(`DELETE FROM board WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, q, boardID)
	if err != nil {
		return mapErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ranks

func (s *SQLStore) CreateRank(ctx context.Context, rank models.Rank) error {
	q := s.db.Rebind(`INSERT INTO rank (id, board_id, name) VALUES (?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, q, rank.ID, rank.BoardID, rank.Name)
	return mapErr(err)
}

func (s *SQLStore) FindRank(ctx context.Context, rankID string) (models.Rank, error) {
	var rank models.Rank
	q := s.db.Rebind(`SELECT * FROM rank WHERE id = ?`)
	if err := s.db.GetContext(ctx, &rank, q, rankID); err != nil {
		return models.Rank{}, mapErr(err)
	}
	return rank, nil
}

func (s *SQLStore) ListRanks(ctx context.Context, boardID string) ([]models.Rank, error) {
	ranks := []models.Rank{}
	q := s.db.Rebind(`SELECT * FROM rank WHERE board_id = ? ORDER BY id`)
	if err := s.db.SelectContext(ctx, &ranks, q, boardID); err != nil {
		return nil, mapErr(err)
	}
	return ranks, nil
}

// Cards

func (s *SQLStore) CreateCard(ctx context.Context, card models.Card) error {
	q := s.db.Rebind(`
		INSERT INTO card (id, rank_id, participant_id, name, description, author, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, q,
		card.ID, card.RankID, card.ParticipantID,
		card.Name, card.Description, card.Author, card.CreatedAt)
	return mapErr(err)
}

func (s *SQLStore) FindCard(ctx context.Context, cardID string) (models.Card, error) {
	var card models.Card
	q := s.db.Rebind(`SELECT * FROM card WHERE id = ?`)
	if err := s.db.GetContext(ctx, &card, q, cardID); err != nil {
		return models.Card{}, mapErr(err)
	}
	return card, nil
}

func (s *SQLStore) UpdateCard(ctx context.Context, cardID string, patch models.CardPatch) (models.Card, error) {
	var sets []string
	var args []interface{}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.RankID != nil {
		sets = append(sets, "rank_id = ?")
		args = append(args, *patch.RankID)
	}

	if len(sets) > 0 {
		args = append(args, cardID)
		q := s.db.Rebind(`UPDATE card SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
		res, err := s.db.ExecContext(ctx, q, args...)
		if err != nil {
			return models.Card{}, mapErr(err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return models.Card{}, ErrNotFound
		}
	}

	return s.FindCard(ctx, cardID)
}

func (s *SQLStore) DeleteCard(ctx context.Context, cardID string) error {
	q := s.db.Rebind(`DELETE FROM card WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, q, cardID)
	if err != nil {
		return mapErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) ListBoardCards(ctx context.Context, boardID string) ([]models.Card, error) {
	cards := []models.Card{}
	q := s.db.Rebind(`
		SELECT c.* FROM card c
		JOIN rank r ON c.rank_id = r.id
		WHERE r.board_id = ?
		ORDER BY c.created_at, c.id
	`)
	if err := s.db.SelectContext(ctx, &cards, q, boardID); err != nil {
		return nil, mapErr(err)
	}
	return cards, nil
}

func (s *SQLStore) ListRankCards(ctx context.Context, rankID string) ([]models.Card, error) {
	cards := []models.Card{}
	q := s.db.Rebind(`SELECT * FROM card WHERE rank_id = ? ORDER BY created_at, id`)
	if err := s.db.SelectContext(ctx, &cards, q, rankID); err != nil {
		return nil, mapErr(err)
	}
	return cards, nil
}

// Votes

// GetOrCreateVote inserts a zero-count record unless one already exists, then
// reads it back. The composite primary key on (card_id, participant_id) makes
// the insert race-safe: concurrent first-votes collapse onto one row.
func (s *SQLStore) GetOrCreateVote(ctx context.Context, cardID, participantID string) (models.Vote, error) {
	q := s.db.Rebind(`
		INSERT INTO vote (card_id, participant_id, count)
		VALUES (?, ?, 0)
		ON CONFLICT (card_id, participant_id) DO NOTHING
	`)
	if _, err := s.db.ExecContext(ctx, q, cardID, participantID); err != nil {
		return models.Vote{}, mapErr(err)
	}
	return s.FindVote(ctx, cardID, participantID)
}

func (s *SQLStore) FindVote(ctx context.Context, cardID, participantID string) (models.Vote, error) {
	var vote models.Vote
	q := s.db.Rebind(`SELECT * FROM vote WHERE card_id = ? AND participant_id = ?`)
	if err := s.db.GetContext(ctx, &vote, q, cardID, participantID); err != nil {
		return models.Vote{}, mapErr(err)
	}
	return vote, nil
}

func (s *SQLStore) UpdateVote(ctx context.Context, cardID, participantID string, count int) (models.Vote, error) {
	q := s.db.Rebind(`UPDATE vote SET count = ? WHERE card_id = ? AND participant_id = ?`)
	res, err := s.db.ExecContext(ctx, q, count, cardID, participantID)
	if err != nil {
		return models.Vote{}, mapErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Vote{}, ErrNotFound
	}
	return s.FindVote(ctx, cardID, participantID)
}

func (s *SQLStore) ListVotes(ctx context.Context, cardID string) ([]models.Vote, error) {
	votes := []models.Vote{}
	q := s.db.Rebind(`SELECT * FROM vote WHERE card_id = ? ORDER BY participant_id`)
	if err := s.db.SelectContext(ctx, &votes, q, cardID); err != nil {
		return nil, mapErr(err)
	}
	return votes, nil
}
