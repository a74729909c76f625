// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session persists a sponsor's progress as one cached record.

# Record

The record stored under StorageKey (optionally namespaced per client) is:

	{
	  "name": "Pat Sponsor",
	  "email": "pat@corp.com",
	  "completedProjects": {"Alpha": true},
	  "stagedRatings": { ...draft.Store layout... }
	}

# Adapter

	a := session.NewAdapter(cache, clientKey)
	if err := a.Save(ctx, identity, completed, drafts); err != nil {
		slog.Warn("could not save progress", "error", err) // callers log and continue
	}
	rec, ok := a.Load(ctx) // false on missing, unreadable, or identity-less records

Load never returns an error: anything it cannot read is treated as a first run.

# Caches

Cache is a byte-oriented key/value store. MemoryCache is in-process; the db
package provides a SQL-backed implementation.
*/
package session
