// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the persistence port and its implementations.

# Port

Store is the narrow interface the gates, tally engine, and handlers consume.
Every call fails with one of three sentinel errors:

  - ErrNotFound: entity absent
  - ErrConflict: uniqueness violation
  - ErrUnavailable: transient store failure

Driver-specific error detail is mapped onto this taxonomy once, inside the
store; callers only ever errors.Is against the sentinels.

# SQL Backend

SQLStore runs on PostgreSQL (lib/pq) or SQLite (modernc.org/sqlite):

	st, err := store.OpenSQL("sqlite", "file:retroboard.db?_pragma=foreign_keys(1)")

Queries use ? placeholders and sqlx.Rebind, so the same statements serve both
drivers. GetOrCreateVote relies on the composite primary key on
vote(card_id, participant_id): INSERT ... ON CONFLICT DO NOTHING followed by
a read, which is race-safe under concurrent first-votes.

# Memory Backend

MemoryStore keeps everything in maps behind a single mutex:

	st := store.NewMemoryStore()

It mirrors the SQL schema's cascade semantics and backs the hermetic test
suite as well as DATABASE_TYPE=memory for local development.
*/
package store
