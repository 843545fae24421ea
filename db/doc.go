// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - board: Board metadata, phase flags, and vote limit
  - rank: Columns grouping cards within a board
  - card: Contributed items, one author each
  - vote: Per-(card, participant) bounded tally

# Relationships

	board 1──* rank
	rank  1──* card
	card  1──* vote

All foreign keys use ON DELETE CASCADE.

# Constraints

  - board.max_votes >= 0
  - vote.count >= 0
  - vote primary key on (card_id, participant_id) - one record per pair,
    and the uniqueness constraint the race-safe get-or-create relies on

# Portability

The DDL sticks to syntax PostgreSQL and SQLite both accept, and created_at
columns are unix-second BIGINTs rather than engine-specific timestamps.
*/
package db
