// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package draft holds staged ratings and comments per project.

# Model

A ProjectDraft keeps, for one project:

  - Students: student index → Ratings (one optional 1..7 score per criterion)
  - Team: Ratings for the team as a whole
  - StudentComments: student name → public/private comments
  - GroupComments: public/private comments about the team

# Snapshots

The rendering layer reports what is currently on screen as a Snapshot: the
selected scores (absent when no radio is checked) and the text of every
comment field. Core code never inspects presentation state directly.

# Merge Rule

Store.Commit folds a Snapshot into the stored draft:

  - a selected score overwrites the stored one
  - an unselected score keeps the stored value (or stays null)
  - comments always take the observed text, empty when blank

A stored score therefore never regresses to null because an input was
briefly missing during a re-render.

# Persistence Format

ProjectDraft marshals to the cache layout:

	{
	  "0":    {"0": 5, "1": null, ...},
	  "team": {"0": null, ...},
	  "_studentComments": {"Jane Doe": {"public": "", "private": ""}},
	  "_groupComments":   {"public": "", "private": ""}
	}

Store is not safe for concurrent use; its owner serializes access.
*/
package draft
