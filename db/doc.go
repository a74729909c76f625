// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the database used for cached session progress.

# Connecting

Open selects the driver by type and pings the server:

	conn, err := db.Open(db.TypeSQLite, "file:progress.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite (modernc.org/sqlite) is limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - session_cache: one progress record per cache key (JSON payload)

# Session Cache

SessionCache implements session.Cache on top of session_cache. Writes are
upserts keyed by cache_key:

	cache := db.NewSessionCache(conn)
	adapter := session.NewAdapter(cache, clientKey)
*/
package db
