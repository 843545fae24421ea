// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the retroboard API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - BoardHandler: board and rank provisioning, phase flags, vote limit
  - CardHandler: card CRUD under /boards/{b}/ranks/{r}/cards
  - VoteHandler: bounded vote cast/remove/list on cards

Handlers are created via constructor functions that accept a store.Store and
Config:

	cardHandler := handlers.NewCardHandler(st, cfg)

# Gate Chains

Every mutating or sensitive-read endpoint declares an ordered gate chain that
runs before its handler body. Identity is resolved by middleware; the chains
here cover containment, ownership, and phase:

	create card   RankInBoard, CardsOpen
	get card      RankInBoard, CardInRank
	update card   RankInBoard, CardInRank, CardOwner
	delete card   RankInBoard, CardInRank [+ policy gate]
	cast vote     BoardExists, RankInBoard, CardInRank (VotingOpen in tally)
	remove vote   RankInBoard, CardInRank (VotingOpen in tally)
	list votes    RankInBoard, CardInRank

The first failing gate determines the response; later gates never run.

# Re-parenting

A card PATCH whose body carries a rank_id different from the path's rank is
re-validated in the handler: the target rank must exist (404 otherwise) and
belong to the same board (403 otherwise). This rule depends on the request
body, which path-only gates cannot see.

# Delete Policy

Who may delete a card is configuration, not a hardcoded rule: "any"
(default), "author" appends the CardOwner gate, "owner" appends BoardOwner.
*/
package handlers
