// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/retroboard/gates"
	"github.com/danielhkuo/retroboard/middleware"
	"github.com/danielhkuo/retroboard/store"
)

// writeGateError logs a gate failure with its gate name and reason, keeping
// ownership denials distinguishable from phase denials even though both are
// 403 on the wire, then writes the mapped status.
func writeGateError(w http.ResponseWriter, gerr *gates.Error) {
	if gerr.Reason == gates.ReasonInternal {
		slog.Error("gate failed", "gate", gerr.Gate, "reason", gerr.Reason.String(), "error", gerr.Err)
	} else {
		slog.Info("gate failed", "gate", gerr.Gate, "reason", gerr.Reason.String())
	}

	switch gerr.Status() {
	case http.StatusNotFound:
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case http.StatusForbidden:
		middleware.ErrorResponse(w, http.StatusForbidden, "Forbidden")
	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// writeStoreError maps a persistence port error onto the wire: absent
// entities are 404, everything else a 500.
func writeStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, notFoundMsg)
		return
	}
	slog.Error("store operation failed", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}
