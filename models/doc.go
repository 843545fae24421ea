// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateBoardRequest: name, max_votes, cards_open, voting_open
  - UpdateBoardRequest: partial board update (owner only)
  - CreateRankRequest: name
  - PostCardRequest: name, description, author
  - UpdateCardRequest: partial card update, may re-parent via rank_id

# Response Types

Types for JSON responses:

  - BoardResponse: board with requester-relative owner flag
  - CardResponse: card with requester-relative owner flag
  - MessageResponse: message
  - ErrorResponse: error, message

# Domain Types

Internal data structures, shared with the store layer via db tags:

  - Board: owns ranks, the phase flags, and the vote limit
  - Rank: a column grouping cards within one board
  - Card: a contributed item, authored by one participant
  - Vote: per-(card, participant) bounded tally
  - CardPatch / BoardPatch: nil-means-unchanged update sets

# Constants

Card delete policy values (see cliparse):

	DeletePolicyAny    = "any"
	DeletePolicyAuthor = "author"
	DeletePolicyOwner  = "owner"
*/
package models
