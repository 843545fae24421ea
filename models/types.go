package models

// Card delete policy constants
const (
	DeletePolicyAny    = "any"    // any participant passing containment may delete
	DeletePolicyAuthor = "author" // only the card's author may delete
	DeletePolicyOwner  = "owner"  // only the board owner may delete
)

// Request types

type CreateBoardRequest struct {
	Name       string `json:"name"`
	MaxVotes   *int   `json:"max_votes,omitempty"`
	CardsOpen  *bool  `json:"cards_open,omitempty"`
	VotingOpen *bool  `json:"voting_open,omitempty"`
}

type UpdateBoardRequest struct {
	Name       *string `json:"name,omitempty"`
	MaxVotes   *int    `json:"max_votes,omitempty"`
	CardsOpen  *bool   `json:"cards_open,omitempty"`
	VotingOpen *bool   `json:"voting_open,omitempty"`
}

type CreateRankRequest struct {
	Name string `json:"name"`
}

type PostCardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author,omitempty"`
}

// UpdateCardRequest patches a card. A rank_id different from the path's rank
// re-parents the card; the new rank must belong to the same board.
type UpdateCardRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	RankID      *string `json:"rank_id,omitempty"`
}

// Response types

type BoardResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Owner      bool   `json:"owner"`
	CardsOpen  bool   `json:"cards_open"`
	VotingOpen bool   `json:"voting_open"`
	MaxVotes   int    `json:"max_votes"`
	CreatedAt  int64  `json:"created_at"`
}

type CardResponse struct {
	ID          string `json:"id"`
	RankID      string `json:"rank_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author,omitempty"`
	Owner       bool   `json:"owner"`
	CreatedAt   int64  `json:"created_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Board struct {
	ID                 string `json:"id" db:"id"`
	OwnerParticipantID string `json:"-" db:"owner_participant_id"` // Never expose in JSON
	Name               string `json:"name" db:"name"`
	CardsOpen          bool   `json:"cards_open" db:"cards_open"`
	VotingOpen         bool   `json:"voting_open" db:"voting_open"`
	MaxVotes           int    `json:"max_votes" db:"max_votes"`
	CreatedAt          int64  `json:"created_at" db:"created_at"`
}

type Rank struct {
	ID      string `json:"id" db:"id"`
	BoardID string `json:"board_id" db:"board_id"`
	Name    string `json:"name" db:"name"`
}

type Card struct {
	ID            string `json:"id" db:"id"`
	RankID        string `json:"rank_id" db:"rank_id"`
	ParticipantID string `json:"-" db:"participant_id"` // Never expose in JSON
	Name          string `json:"name" db:"name"`
	Description   string `json:"description" db:"description"`
	Author        string `json:"author,omitempty" db:"author"`
	CreatedAt     int64  `json:"created_at" db:"created_at"`
}

// CardPatch holds the fields a card update may change. Nil fields are left as-is.
type CardPatch struct {
	Name        *string
	Description *string
	RankID      *string
}

// BoardPatch holds the fields a board update may change. Nil fields are left as-is.
type BoardPatch struct {
	Name       *string
	CardsOpen  *bool
	VotingOpen *bool
	MaxVotes   *int
}

// Vote is the per-(card, participant) tally record. At most one record exists
// per pair. Count stays within [0, board.MaxVotes]; when MaxVotes is lowered
// after votes were cast, existing higher counts are preserved, never clamped.
type Vote struct {
	CardID        string `json:"card_id" db:"card_id"`
	ParticipantID string `json:"participant_id" db:"participant_id"`
	Count         int    `json:"count" db:"count"`
}
