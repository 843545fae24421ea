// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Participant Resolution

WithParticipant is the identity gate. It reads the X-Participant-Token
header, verifies the HMAC signature, and stores the participant ID in the
request context:

	mux.HandleFunc("POST /boards", middleware.WithLogging(
		middleware.WithParticipant(secret, boardHandler.Create)))

A request without a token gets a freshly minted participant, with the signed
token returned in the same header. A token that fails verification is a 403;
no downstream gate or handler runs.

Handlers read the resolved identity with:

	participantID := middleware.ParticipantID(r)

# Logging

WithLogging logs request start/completion with method, path, client IP, and
duration using log/slog.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Board not found")
	err := middleware.ParseJSONBody(r, &req)

# CORS

CORS allows cross-origin requests, handles OPTIONS preflight, and exposes
the participant token header to browsers.
*/
package middleware
