// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the sponsor evaluation API server.

Project sponsors identify themselves by name and email, pick one of their
assigned projects, rate each student and the team on a five-criterion 1..7
rubric, and submit. Drafts survive restarts through the session cache.

# Starting the Server

	DATABASE_URL=file:eval.db ROSTER_URL=https://... SUBMIT_URL=https://... \
	SESSION_SALT=... go run .

Or with flags:

	go run . -p 3318 -d file:eval.db -roster-url https://... -submit-url https://... -session-salt ...

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - DATABASE_URL (-d): session cache DSN, sqlite file or postgres URL
  - ROSTER_URL (-roster-url): roster endpoint, unless ROSTER_SOURCE=sheets
  - SUBMIT_URL (-submit-url): collection endpoint
  - SESSION_SALT (-session-salt): cache key salt

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres
  - ROSTER_SOURCE, SHEETS_*: read the roster from a Google Sheet
  - ADMIN_KEY (-admin-key): enables POST /roster/reload
  - LOG_LEVEL (-log-level)

# Architecture

  - rubric: the fixed criteria and scale
  - roster: roster fetch and normalization into the sponsor directory
  - draft: per-project staged ratings and the merge rule
  - session: cache record format and persistence adapter
  - submission: payload construction and the collection client
  - evaluation: per-client session orchestration
  - handlers, router, middleware: HTTP surface
  - auth: session IDs, cache keys, admin key
  - db: sqlite/postgres session cache
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
