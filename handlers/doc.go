// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the sponsor evaluation API.

# Handler Types

  - EvaluationHandler: session lifecycle, project selection, drafts, submission
  - RosterHandler: admin roster reload

	evalHandler := handlers.NewEvaluationHandler(manager, cfg)
	rosterHandler := handlers.NewRosterHandler(loader, cfg)

# Session Flow

Clients obtain a session ID and send it in X-Session-ID on every call:

	POST /sessions                          → CreateSession (returns session_id)
	POST /session/identity                  → SubmitIdentity (returns projects)
	POST /session/projects/{project}/select → SelectProject (students, rubric, draft)
	PUT  /session/draft                     → CommitDraft (merge observed inputs)
	POST /session/submit                    → Submit (empty body submits the stored draft)
	POST /session/start-over                → StartOver

# Errors

Evaluation errors map to statuses:

  - 400 invalid input, no project loaded, no students
  - 401 missing or invalid session ID
  - 404 unknown sponsor or project
  - 409 project already completed, submission in flight
  - 502 collection endpoint failed
  - 503 roster unavailable

# Admin

POST /roster/reload requires X-Admin-Key. Without a configured admin key it
returns 403.
*/
package handlers
