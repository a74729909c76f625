// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Criterion: rubric entry (title, description)
  - Identity: sponsor name and lowercase email
  - CompletionSet: projects already submitted
  - SponsorEntry: projects and ordered unique students for one sponsor email
  - Comments: public (shared with student) and private (instructor only) text
  - Response: one student or team row of a submission
  - SubmissionPayload: body POSTed to the collection endpoint

# Request Types

  - IdentityRequest: name, email

# Response Types

  - CreateSessionResponse: session_id
  - RubricResponse: criteria and score scale
  - ProjectsResponse: project summaries, incomplete first
  - SessionStateResponse: stage, identity, completion, current project
  - SubmitResponse: outcome of a successful submission
  - ReloadRosterResponse: sponsor count after a roster reload
  - ErrorResponse: error, message

# Constants

Stages:

	StageIdentity = "identity"
	StageProjects = "projects"
	StageThankYou = "thankyou"

Team labels:

	TeamLabel    = "Evaluating group as a whole" // submission payload
	TeamRowLabel = "Team Overall"                // rating matrix
*/
package models
