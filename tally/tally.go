// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"errors"

	"github.com/danielhkuo/retroboard/models"
	"github.com/danielhkuo/retroboard/store"
)

// ErrVotingClosed means the board's voting phase is closed. It is a phase
// denial, not an authorization failure, and is checked before any tally
// mutation.
var ErrVotingClosed = errors.New("voting is closed for this board")

// Engine drives the per-(card, participant) vote state machine. All durable
// state lives in the store; the engine itself is stateless and safe for
// concurrent use.
type Engine struct {
	st store.Store
}

func NewEngine(st store.Store) *Engine {
	return &Engine{st: st}
}

// Cast records one vote by participantID on cardID, bounded by the board's
// max_votes. The record is created at zero on first vote, then incremented
// with a ceiling clamp. A count already at or above the limit is returned
// unchanged: votes cast while the limit was higher are preserved, never
// silently truncated.
func (e *Engine) Cast(ctx context.Context, boardID, cardID, participantID string) (models.Vote, error) {
	board, err := e.st.FindBoard(ctx, boardID)
	if err != nil {
		return models.Vote{}, err
	}
	if !board.VotingOpen {
		return models.Vote{}, ErrVotingClosed
	}

	vote, err := e.st.GetOrCreateVote(ctx, cardID, participantID)
	if errors.Is(err, store.ErrConflict) {
		// Lost a create race: the record exists now, read it and carry on.
		vote, err = e.st.FindVote(ctx, cardID, participantID)
	}
	if err != nil {
		return models.Vote{}, err
	}

	if vote.Count >= board.MaxVotes {
		return vote, nil
	}

	return e.st.UpdateVote(ctx, cardID, participantID, min(board.MaxVotes, vote.Count+1))
}

// Remove takes one vote back, clamped at zero. A participant with no vote
// record for the card gets store.ErrNotFound; removal never creates records.
func (e *Engine) Remove(ctx context.Context, boardID, cardID, participantID string) (models.Vote, error) {
	board, err := e.st.FindBoard(ctx, boardID)
	if err != nil {
		return models.Vote{}, err
	}
	if !board.VotingOpen {
		return models.Vote{}, ErrVotingClosed
	}

	vote, err := e.st.FindVote(ctx, cardID, participantID)
	if err != nil {
		return models.Vote{}, err
	}

	return e.st.UpdateVote(ctx, cardID, participantID, max(0, vote.Count-1))
}

// List returns every vote record for a card.
func (e *Engine) List(ctx context.Context, cardID string) ([]models.Vote, error) {
	return e.st.ListVotes(ctx, cardID)
}
