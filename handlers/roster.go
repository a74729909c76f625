// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/sponsor-eval/auth"
	"github.com/danielhkuo/sponsor-eval/cliparse"
	"github.com/danielhkuo/sponsor-eval/middleware"
	"github.com/danielhkuo/sponsor-eval/models"
	"github.com/danielhkuo/sponsor-eval/roster"
)

type RosterHandler struct {
	loader *roster.Loader
	cfg    cliparse.Config
}

func NewRosterHandler(loader *roster.Loader, cfg cliparse.Config) *RosterHandler {
	return &RosterHandler{loader: loader, cfg: cfg}
}

// Reload handles POST /roster/reload
func (h *RosterHandler) Reload(w http.ResponseWriter, r *http.Request) {
	err := auth.ValidateAdminKey(r.Header.Get(middleware.HeaderAdminKey), h.cfg.AdminKey)
	if errors.Is(err, auth.ErrAdminDisabled) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Roster reload is disabled")
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	dir, err := h.loader.Load(r.Context())
	if err != nil {
		slog.Error("roster reload failed", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Project data not found. Please try again later.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReloadRosterResponse{
		Sponsors: dir.Len(),
		LoadedAt: dir.LoadedAt(),
	})
}
