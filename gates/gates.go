// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gates

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielhkuo/retroboard/store"
)

// Reason classifies why a gate failed. Denied and Closed both surface as
// 403 on the wire but stay distinguishable for logging: Denied is an
// authorization failure, Closed is a board phase disallowing the action.
type Reason int

const (
	ReasonNotFound Reason = iota // entity absent
	ReasonDenied                 // containment or ownership check failed
	ReasonClosed                 // board phase flag disallows the action
	ReasonInternal               // persistence failure
)

func (r Reason) String() string {
	switch r {
	case ReasonNotFound:
		return "not_found"
	case ReasonDenied:
		return "denied"
	case ReasonClosed:
		return "closed"
	default:
		return "internal"
	}
}

// Error is a gate failure. Gate names the predicate that failed so log lines
// can tell an ownership denial from a phase denial even when the wire status
// is the same.
type Error struct {
	Gate   string
	Reason Reason
	Err    error // underlying store error, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gate %s: %s: %v", e.Gate, e.Reason, e.Err)
	}
	return fmt.Sprintf("gate %s: %s", e.Gate, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the failure onto the wire status code.
func (e *Error) Status() int {
	switch e.Reason {
	case ReasonNotFound:
		return http.StatusNotFound
	case ReasonDenied, ReasonClosed:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Request carries the identifiers a gate may inspect, taken from the request
// path and the resolved participant. Gates never read the request body;
// body-dependent rules (card re-parenting) stay in the handlers.
type Request struct {
	ParticipantID string
	BoardID       string
	RankID        string
	CardID        string
}

// Gate is a single authorization predicate. Gates have no side effects; they
// read through the persistence port and either pass (nil) or fail with a
// typed Error.
type Gate func(ctx context.Context, st store.Store, req Request) *Error

// Chain composes gates into one, evaluated left to right with the first
// failure short-circuiting the rest. Order is part of the contract:
// containment before ownership, ownership before phase.
func Chain(gs ...Gate) Gate {
	return func(ctx context.Context, st store.Store, req Request) *Error {
		for _, g := range gs {
			if gerr := g(ctx, st, req); gerr != nil {
				return gerr
			}
		}
		return nil
	}
}

// lookupErr maps a store read failure for a gate: absent entities are
// NotFound, anything else is Internal.
func lookupErr(gate string, err error) *Error {
	if errors.Is(err, store.ErrNotFound) {
		return &Error{Gate: gate, Reason: ReasonNotFound, Err: err}
	}
	return &Error{Gate: gate, Reason: ReasonInternal, Err: err}
}

// BoardExists passes iff the board named in the path exists.
func BoardExists(ctx context.Context, st store.Store, req Request) *Error {
	if _, err := st.FindBoard(ctx, req.BoardID); err != nil {
		return lookupErr("board_exists", err)
	}
	return nil
}

// RankInBoard passes iff the rank exists and belongs to the path's board.
// A rank that exists under a different board is Denied, not NotFound.
func RankInBoard(ctx context.Context, st store.Store, req Request) *Error {
	rank, err := st.FindRank(ctx, req.RankID)
	if err != nil {
		return lookupErr("rank_in_board", err)
	}
	if rank.BoardID != req.BoardID {
		return &Error{Gate: "rank_in_board", Reason: ReasonDenied}
	}
	return nil
}

// CardInRank passes iff the card exists and belongs to the path's rank.
func CardInRank(ctx context.Context, st store.Store, req Request) *Error {
	card, err := st.FindCard(ctx, req.CardID)
	if err != nil {
		return lookupErr("card_in_rank", err)
	}
	if card.RankID != req.RankID {
		return &Error{Gate: "card_in_rank", Reason: ReasonDenied}
	}
	return nil
}

// CardOwner passes iff the resolved participant authored the card.
func CardOwner(ctx context.Context, st store.Store, req Request) *Error {
	card, err := st.FindCard(ctx, req.CardID)
	if err != nil {
		return lookupErr("card_owner", err)
	}
	if card.ParticipantID != req.ParticipantID {
		return &Error{Gate: "card_owner", Reason: ReasonDenied}
	}
	return nil
}

// BoardOwner passes iff the resolved participant owns the board.
func BoardOwner(ctx context.Context, st store.Store, req Request) *Error {
	board, err := st.FindBoard(ctx, req.BoardID)
	if err != nil {
		return lookupErr("board_owner", err)
	}
	if board.OwnerParticipantID != req.ParticipantID {
		return &Error{Gate: "board_owner", Reason: ReasonDenied}
	}
	return nil
}

// CardsOpen passes iff the board currently accepts card creation.
func CardsOpen(ctx context.Context, st store.Store, req Request) *Error {
	board, err := st.FindBoard(ctx, req.BoardID)
	if err != nil {
		return lookupErr("cards_open", err)
	}
	if !board.CardsOpen {
		return &Error{Gate: "cards_open", Reason: ReasonClosed}
	}
	return nil
}

// VotingOpen passes iff the board currently accepts votes.
func VotingOpen(ctx context.Context, st store.Store, req Request) *Error {
	board, err := st.FindBoard(ctx, req.BoardID)
	if err != nil {
		return lookupErr("voting_open", err)
	}
	if !board.VotingOpen {
		return &Error{Gate: "voting_open", Reason: ReasonClosed}
	}
	return nil
}
