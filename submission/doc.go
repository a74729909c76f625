// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submission builds evaluation payloads and posts them to the
collection endpoint.

# Building

Build reads the observed snapshot, not the stored draft, so the payload is
exactly what the sponsor sees at submit time:

	payload, err := submission.Build(identity, "Alpha", students, snap, time.Now())

Every student gets a response in roster order. A team response (student
"Evaluating group as a whole", isTeam true) is added only when a team score
is selected or a team comment is non-empty. A payload with no responses is
rejected with ErrNothingToSubmit.

# Posting

	client := submission.NewClient(cfg.SubmitURL, nil)
	err := client.Post(ctx, payload)

Post makes one attempt. Any 2xx is success; other statuses return a
*StatusError carrying the status code and response body.
*/
package submission
