// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package evaluation orchestrates one sponsor's evaluation session.

# Session

A Session owns all mutable state for one client: identity, staged drafts,
completed projects, the currently selected project, the stage, and the
submit gate. Every change is mirrored to the session cache.

	identity → projects → (select → commit ... → submit)* → thankyou

Operations:

  - Restore: resume from the cache
  - SubmitIdentity: validate name/email, look up the sponsor, list projects
  - Projects: incomplete projects first, completed last
  - SelectProject: hydrate students and stored draft
  - Commit: merge an observed snapshot into the draft
  - Submit: build and post the payload; on success mark complete and drop the draft
  - BackToIdentity, StartOver

# Submit Gate

Only one submission per session may be in flight. A concurrent Submit fails
with ErrSubmissionInFlight; the gate reopens when the post returns,
whatever the outcome. A StartOver during the post wins: the submission's
success side effects are dropped.

# Manager

Manager maps session IDs to Sessions. Create registers an issued ID; Get
returns a known session, or restores one from the cache. IDs with neither
are refused, so arbitrary IDs never allocate:

	m := evaluation.NewManager(loader, client, cache, namespace)
	m.Create(auth.GenerateSessionID())
	s, ok := m.Get(ctx, sessionID)
*/
package evaluation
