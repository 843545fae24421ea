// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the retroboard API server.

Retroboard is the backend of a collaborative retrospective board:
participants create cards under ranks (columns) within a board and cast
bounded votes on cards. Every mutating request passes an ordered chain of
authorization gates before touching persisted state.

# Starting the Server

The server reads environment variables (optionally from .env) or CLI flags:

	PARTICIPANT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8000 -t sqlite -participant-secret "..."

# Configuration

Required settings:

  - PARTICIPANT_SECRET (-participant-secret): Secret for participant token HMAC

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): sqlite (default), postgres, or memory
  - DATABASE_URL (-d): Connection string (required for postgres)
  - CARD_DELETE_POLICY (-delete-policy): any (default), author, or owner

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers and per-endpoint gate chains
  - gates: authorization predicates (containment, ownership, phase)
  - tally: the bounded vote state machine
  - store: persistence port with SQL and in-memory backends
  - router: Route definitions using Go 1.22+ routing
  - middleware: participant resolution, CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Participant token generation and validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
