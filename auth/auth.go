// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid participant token")

// NewParticipantID mints an opaque participant identifier.
func NewParticipantID() string {
	return uuid.NewString()
}

// SignParticipant produces a self-contained participant token "id.sig" where
// sig is HMAC-SHA256 over the id. The token is verifiable without any stored
// state, so identity survives server restarts.
func SignParticipant(participantID, secret string) string {
	return participantID + "." + signature(participantID, secret)
}

// VerifyParticipant checks a token's signature and returns the participant ID.
func VerifyParticipant(token, secret string) (string, error) {
	idx := strings.LastIndex(token, ".")
	if idx <= 0 || idx == len(token)-1 {
		return "", ErrInvalidToken
	}

	participantID := token[:idx]
	sig := token[idx+1:]
	expected := signature(participantID, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidToken
	}
	return participantID, nil
}

func signature(participantID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(participantID))
	sum := h.Sum(nil)
	// URL-safe base64 and trimmed padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}
