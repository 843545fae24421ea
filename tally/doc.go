// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally implements the vote state machine.

# State Machine

Each (card, participant) pair has at most one vote record, moving between
Absent and Present(count):

	Cast:   Absent -> Present(0), then count = min(max_votes, count+1)
	Remove: requires Present, then count = max(0, count-1)

Both clamps are intentional saturation, not errors. A count at or above the
board's max_votes is left untouched by Cast: if max_votes was lowered after
votes were cast, the existing counts stand.

# Preconditions

Cast and Remove require the board's voting_open flag; ErrVotingClosed is
returned before any tally mutation. Remove on an Absent record returns
store.ErrNotFound.

# Concurrency

Get-or-create must be atomic at the store (composite-key upsert or a lock).
If the store still reports ErrConflict from a lost create race, the engine
re-reads once and proceeds; two concurrent first-votes end as one record at
count 1.
*/
package tally
