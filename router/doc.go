// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the sponsor evaluation API.

# Route Registration

	mux := router.NewRouter(manager, loader, cfg)

# Endpoints

Health and static data:

	GET /health
	GET /rubric

Sessions (X-Session-ID header):

	POST /sessions                          - Issue a session ID
	GET  /session                           - Stage, identity, completion
	POST /session/identity                  - Submit name and email
	POST /session/back                      - Return to identity entry
	POST /session/start-over                - Clear all progress

Projects:

	GET  /session/projects                  - Sponsor's projects, incomplete first
	POST /session/projects/{project}/select - Load students and draft
	PUT  /session/draft                     - Commit observed inputs
	POST /session/submit                    - Submit the current project

Admin (X-Admin-Key header):

	POST /roster/reload                     - Re-fetch the roster
*/
package router
