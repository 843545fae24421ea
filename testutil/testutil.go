// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/retroboard/auth"
	"github.com/danielhkuo/retroboard/cliparse"
	"github.com/danielhkuo/retroboard/models"
	"github.com/danielhkuo/retroboard/store"
)

// NewStore returns a fresh in-memory store so tests run hermetically.
func NewStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	return store.NewMemoryStore()
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              8000,
		DatabaseType:      "memory",
		ParticipantSecret: "test-participant-secret",
		DeletePolicy:      models.DeletePolicyAny,
	}
}

// NewParticipant mints a participant ID and its signed token for requests.
func NewParticipant(t *testing.T, cfg cliparse.Config) (participantID, token string) {
	t.Helper()
	participantID = auth.NewParticipantID()
	return participantID, auth.SignParticipant(participantID, cfg.ParticipantSecret)
}

// CreateTestBoard seeds a board and returns its ID.
func CreateTestBoard(t *testing.T, st store.Store, ownerID string, cardsOpen, votingOpen bool, maxVotes int) string {
	t.Helper()

	boardID := uuid.NewString()
	err := st.CreateBoard(context.Background(), models.Board{
		ID:                 boardID,
		OwnerParticipantID: ownerID,
		Name:               "Test Board",
		CardsOpen:          cardsOpen,
		VotingOpen:         votingOpen,
		MaxVotes:           maxVotes,
		CreatedAt:          time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}

	return boardID
}

// CreateTestRank seeds a rank under a board and returns its ID.
func CreateTestRank(t *testing.T, st store.Store, boardID, name string) string {
	t.Helper()

	rankID := uuid.NewString()
	err := st.CreateRank(context.Background(), models.Rank{
		ID:      rankID,
		BoardID: boardID,
		Name:    name,
	})
	if err != nil {
		t.Fatalf("Failed to create test rank: %v", err)
	}

	return rankID
}

// CreateTestCard seeds a card under a rank and returns its ID.
func CreateTestCard(t *testing.T, st store.Store, rankID, participantID, name string) string {
	t.Helper()

	cardID := uuid.NewString()
	err := st.CreateCard(context.Background(), models.Card{
		ID:            cardID,
		RankID:        rankID,
		ParticipantID: participantID,
		Name:          name,
		Description:   "A test card",
		CreatedAt:     time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("Failed to create test card: %v", err)
	}

	return cardID
}

// CreateTestVote seeds a vote record at the given count.
func CreateTestVote(t *testing.T, st store.Store, cardID, participantID string, count int) {
	t.Helper()

	ctx := context.Background()
	if _, err := st.GetOrCreateVote(ctx, cardID, participantID); err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
	if _, err := st.UpdateVote(ctx, cardID, participantID, count); err != nil {
		t.Fatalf("Failed to set test vote count: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
