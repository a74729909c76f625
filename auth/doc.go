// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session identifiers and key checks.

# Session IDs

Each client gets a random UUID when it opens a session:

	id := auth.GenerateSessionID()
	err := auth.ValidateSessionID(r.Header.Get("X-Session-ID"))

# Cache Keys

Progress is stored under a namespace derived from the session ID with
HMAC-SHA256, so a leaked database does not reveal live session IDs:

	ns := auth.CacheKey(sessionID, cfg.SessionSalt)

Returns the first 16 bytes (32 hex chars) of the MAC.

# Admin Key

Roster reloads require the configured admin key:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

An empty configured key returns ErrAdminDisabled.
*/
package auth
