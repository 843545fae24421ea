// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/danielhkuo/retroboard/models"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs the test suite
// and DATABASE_TYPE=memory. The single mutex makes every operation atomic,
// including GetOrCreateVote.
type MemoryStore struct {
	mu     sync.Mutex
	boards map[string]models.Board
	ranks  map[string]models.Rank
	cards  map[string]models.Card
	votes  map[voteKey]models.Vote
}

type voteKey struct {
	cardID        string
	participantID string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		boards: make(map[string]models.Board),
		ranks:  make(map[string]models.Rank),
		cards:  make(map[string]models.Card),
		votes:  make(map[voteKey]models.Vote),
	}
}

func (s *MemoryStore) Close() error {
	return nil
}

// Boards

func (s *MemoryStore) CreateBoard(_ context.Context, board models.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[board.ID]; ok {
		return ErrConflict
	}
	s.boards[board.ID] = board
	return nil
}

func (s *MemoryStore) FindBoard(_ context.Context, boardID string) (models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards[boardID]
	if !ok {
		return models.Board{}, ErrNotFound
	}
	return board, nil
}

func (s *MemoryStore) UpdateBoard(_ context.Context, boardID string, patch models.BoardPatch) (models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards[boardID]
	if !ok {
		return models.Board{}, ErrNotFound
	}
	if patch.Name != nil {
		board.Name = *patch.Name
	}
	if patch.CardsOpen != nil {
		board.CardsOpen = *patch.CardsOpen
	}
	if patch.VotingOpen != nil {
		board.VotingOpen = *patch.VotingOpen
	}
	if patch.MaxVotes != nil {
		board.MaxVotes = *patch.MaxVotes
	}
	s.boards[boardID] = board
	return board, nil
}

func (s *MemoryStore) DeleteBoard(_ context.Context, boardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[boardID]; !ok {
		return ErrNotFound
	}
	delete(s.boards, boardID)

	// Cascade like the SQL schema's ON DELETE CASCADE
	for rankID, rank := range s.ranks {
		if rank.BoardID == boardID {
			delete(s.ranks, rankID)
			s.deleteRankCardsLocked(rankID)
		}
	}
	return nil
}

// Ranks

func (s *MemoryStore) CreateRank(_ context.Context, rank models.Rank) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ranks[rank.ID]; ok {
		return ErrConflict
	}
	s.ranks[rank.ID] = rank
	return nil
}

func (s *MemoryStore) FindRank(_ context.Context, rankID string) (models.Rank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rank, ok := s.ranks[rankID]
	if !ok {
		return models.Rank{}, ErrNotFound
	}
	return rank, nil
}

func (s *MemoryStore) ListRanks(_ context.Context, boardID string) ([]models.Rank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranks := []models.Rank{}
	for _, rank := range s.ranks {
		if rank.BoardID == boardID {
			ranks = append(ranks, rank)
		}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].ID < ranks[j].ID })
	return ranks, nil
}

// Cards

func (s *MemoryStore) CreateCard(_ context.Context, card models.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[card.ID]; ok {
		return ErrConflict
	}
	s.cards[card.ID] = card
	return nil
}

func (s *MemoryStore) FindCard(_ context.Context, cardID string) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[cardID]
	if !ok {
		return models.Card{}, ErrNotFound
	}
	return card, nil
}

func (s *MemoryStore) UpdateCard(_ context.Context, cardID string, patch models.CardPatch) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[cardID]
	if !ok {
		return models.Card{}, ErrNotFound
	}
	if patch.Name != nil {
		card.Name = *patch.Name
	}
	if patch.Description != nil {
		card.Description = *patch.Description
	}
	if patch.RankID != nil {
		card.RankID = *patch.RankID
	}
	s.cards[cardID] = card
	return card, nil
}

func (s *MemoryStore) DeleteCard(_ context.Context, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[cardID]; !ok {
		return ErrNotFound
	}
	delete(s.cards, cardID)
	for key := range s.votes {
		if key.cardID == cardID {
			delete(s.votes, key)
		}
	}
	return nil
}

func (s *MemoryStore) ListBoardCards(_ context.Context, boardID string) ([]models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := []models.Card{}
	for _, card := range s.cards {
		rank, ok := s.ranks[card.RankID]
		if ok && rank.BoardID == boardID {
			cards = append(cards, card)
		}
	}
	sortCards(cards)
	return cards, nil
}

func (s *MemoryStore) ListRankCards(_ context.Context, rankID string) ([]models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := []models.Card{}
	for _, card := range s.cards {
		if card.RankID == rankID {
			cards = append(cards, card)
		}
	}
	sortCards(cards)
	return cards, nil
}

// Votes

func (s *MemoryStore) GetOrCreateVote(_ context.Context, cardID, participantID string) (models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey{cardID, participantID}
	if vote, ok := s.votes[key]; ok {
		return vote, nil
	}
	vote := models.Vote{CardID: cardID, ParticipantID: participantID, Count: 0}
	s.votes[key] = vote
	return vote, nil
}

func (s *MemoryStore) FindVote(_ context.Context, cardID, participantID string) (models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vote, ok := s.votes[voteKey{cardID, participantID}]
	if !ok {
		return models.Vote{}, ErrNotFound
	}
	return vote, nil
}

func (s *MemoryStore) UpdateVote(_ context.Context, cardID, participantID string, count int) (models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey{cardID, participantID}
	vote, ok := s.votes[key]
	if !ok {
		return models.Vote{}, ErrNotFound
	}
	vote.Count = count
	s.votes[key] = vote
	return vote, nil
}

func (s *MemoryStore) ListVotes(_ context.Context, cardID string) ([]models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes := []models.Vote{}
	for key, vote := range s.votes {
		if key.cardID == cardID {
			votes = append(votes, vote)
		}
	}
	sort.Slice(votes, func(i, j int) bool { return votes[i].ParticipantID < votes[j].ParticipantID })
	return votes, nil
}

// deleteRankCardsLocked removes a rank's cards and their votes. Caller holds mu.
func (s *MemoryStore) deleteRankCardsLocked(rankID string) {
	for cardID, card := range s.cards {
		if card.RankID != rankID {
			continue
		}
		delete(s.cards, cardID)
		for key := range s.votes {
			if key.cardID == cardID {
				delete(s.votes, key)
			}
		}
	}
}

func sortCards(cards []models.Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].CreatedAt != cards[j].CreatedAt {
			return cards[i].CreatedAt < cards[j].CreatedAt
		}
		return cards[i].ID < cards[j].ID
	})
}
