// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package gates implements the per-request authorization predicates and their
composer.

# Gates

A Gate is a pure predicate over the request path and the resolved
participant, reading through the persistence port:

  - BoardExists: the path's board exists
  - RankInBoard: the path's rank belongs to the path's board
  - CardInRank: the path's card belongs to the path's rank
  - CardOwner: the participant authored the card
  - BoardOwner: the participant owns the board
  - CardsOpen / VotingOpen: the board's phase allows the action

Gates have no side effects and never read the request body.

# Composition

Each endpoint declares an ordered chain, evaluated left to right with the
first failure short-circuiting:

	chain := gates.Chain(gates.RankInBoard, gates.CardInRank, gates.CardOwner)
	if gerr := chain(ctx, st, req); gerr != nil { ... }

Ordering is part of the contract: containment gates run before ownership
gates, and ownership before phase, so a non-owner is denied outright rather
than learning a gated board's phase.

# Failure Mapping

A gate fails with a typed Error carrying the gate name and a Reason:

  - ReasonNotFound (404): the entity is absent
  - ReasonDenied (403): the relationship or ownership check is false -
    an entity that exists under a different parent is Denied, by uniform
    policy, not NotFound
  - ReasonClosed (403): the board phase disallows the action
  - ReasonInternal (500): the store failed

Denied and Closed share a wire status but remain distinguishable in logs
via the gate name and reason.
*/
package gates
