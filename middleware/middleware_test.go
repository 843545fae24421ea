// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/retroboard/auth"
)

const testSecret = "test-participant-secret"

func participantEcho() (http.HandlerFunc, *string) {
	var seen string
	return func(w http.ResponseWriter, r *http.Request) {
		seen = ParticipantID(r)
		w.WriteHeader(http.StatusOK)
	}, &seen
}

func TestWithParticipantMintsIdentity(t *testing.T) {
	next, seen := participantEcho()
	handler := WithParticipant(testSecret, next)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if *seen == "" {
		t.Fatal("Expected a participant ID in the request context")
	}

	// The minted token round-trips to the same participant
	token := w.Header().Get(ParticipantHeader)
	if token == "" {
		t.Fatal("Expected a token on the response header")
	}
	id, err := auth.VerifyParticipant(token, testSecret)
	if err != nil {
		t.Fatalf("Minted token failed verification: %v", err)
	}
	if id != *seen {
		t.Errorf("Token resolves to %q, context held %q", id, *seen)
	}
}

func TestWithParticipantAcceptsValidToken(t *testing.T) {
	next, seen := participantEcho()
	handler := WithParticipant(testSecret, next)

	participantID := auth.NewParticipantID()
	token := auth.SignParticipant(participantID, testSecret)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(ParticipantHeader, token)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if *seen != participantID {
		t.Errorf("Expected participant %q, got %q", participantID, *seen)
	}
	// No fresh token is minted for an authenticated request
	if w.Header().Get(ParticipantHeader) != "" {
		t.Error("Expected no token on the response for a valid request")
	}
}

func TestWithParticipantRejectsForgery(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered id", "other-participant." + "deadbeef"},
		{"wrong secret", auth.SignParticipant(auth.NewParticipantID(), "other-secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := WithParticipant(testSecret, func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set(ParticipantHeader, tt.token)
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != http.StatusForbidden {
				t.Errorf("Expected 403, got %d", w.Code)
			}
			if called {
				t.Error("Handler must not run for a rejected token")
			}
		})
	}
}

func TestParticipantIDWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if id := ParticipantID(req); id != "" {
		t.Errorf("Expected empty participant ID, got %q", id)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Preflight must not reach the wrapped handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/boards", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Expected origin echoed back, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Expose-Headers"); got != ParticipantHeader {
		t.Errorf("Expected participant header exposed, got %q", got)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.168.1.10:54321",
			expected:   "192.168.1.10",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5"},
			expected:   "203.0.113.5",
		},
		{
			name:       "x-forwarded-for chain",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"},
			expected:   "203.0.113.5",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			expected:   "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
