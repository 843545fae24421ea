// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides participant identity tokens.

# Participant Tokens

A participant token is "id.sig" where sig is HMAC-SHA256 over the id:

	id := auth.NewParticipantID()
	token := auth.SignParticipant(id, secret)
	id, err := auth.VerifyParticipant(token, secret)

The signature is URL-safe base64 encoded without padding. Because the token
is self-contained, no participant table is needed: a verified token IS the
identity, and it survives server restarts as long as the secret is stable.

# ID Generation

Participant IDs are v4 UUIDs. Board, rank, and card IDs are minted the same
way by the handlers.
*/
package auth
