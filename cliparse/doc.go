/*
Package cliparse parses configuration from CLI flags and environment
variables.

Flags take precedence; env variables fill the gaps:

  - PORT (-p): server port (default 8000)
  - DATABASE_TYPE (-t): sqlite (default), postgres, or memory
  - DATABASE_URL (-d): connection string; defaults to a local file for
    sqlite, required for postgres, unused for memory
  - CARD_DELETE_POLICY (-delete-policy): any (default), author, or owner
  - PARTICIPANT_SECRET (-participant-secret): required; signs participant
    tokens
*/
package cliparse
