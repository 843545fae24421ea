// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is restricted to the dialect both PostgreSQL and SQLite accept;
// timestamps are stored as unix seconds for the same reason.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Boards
CREATE TABLE IF NOT EXISTS board (
    id TEXT PRIMARY KEY,
    owner_participant_id TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    cards_open BOOLEAN NOT NULL DEFAULT TRUE,
    voting_open BOOLEAN NOT NULL DEFAULT TRUE,
    max_votes INTEGER NOT NULL DEFAULT 5 CHECK (max_votes >= 0),
    created_at BIGINT NOT NULL
);

-- Ranks
CREATE TABLE IF NOT EXISTS rank (
    id TEXT PRIMARY KEY,
    board_id TEXT NOT NULL REFERENCES board(id) ON DELETE CASCADE,
    name TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_rank_board_id ON rank(board_id);

-- Cards
CREATE TABLE IF NOT EXISTS card (
    id TEXT PRIMARY KEY,
    rank_id TEXT NOT NULL REFERENCES rank(id) ON DELETE CASCADE,
    participant_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_card_rank_id ON card(rank_id);
CREATE INDEX IF NOT EXISTS idx_card_participant_id ON card(participant_id);

-- Votes
-- The composite primary key is what makes get-or-create race-safe:
-- concurrent first-votes for the same pair collapse onto one row.
CREATE TABLE IF NOT EXISTS vote (
    card_id TEXT NOT NULL REFERENCES card(id) ON DELETE CASCADE,
    participant_id TEXT NOT NULL,
    count INTEGER NOT NULL DEFAULT 0 CHECK (count >= 0),
    PRIMARY KEY (card_id, participant_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_card_id ON vote(card_id);
`
