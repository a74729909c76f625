// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster turns loosely-shaped roster rows into a sponsor directory.

# Rows

A Row is an ordered list of key/value cells. Keys are arbitrary column names
("Project", "Student Name", "SponsorEmail", ...); values are strings.

# Normalization

Normalize maps each sponsor email to its projects and, per project, the
ordered unique student names:

	sponsors := roster.Normalize(rows)
	entry := sponsors["a@x.com"]
	students := entry.Projects["Alpha"] // ["Jane Doe"]

Columns are resolved against ordered alias lists (see ProjectKeys,
StudentKeys, SponsorKeys). Aliases are tried in declared order and the first
non-empty value wins; within one alias, cells are scanned in row order.

When no sponsor column has a value, every cell is scanned for email-shaped
substrings. Rows missing a project, student, or valid email are skipped.

Student names are deduplicated by exact spelling only: "Jane Doe" and
"jane doe" are two students.

# Sources

  - HTTPSource: GET a JSON array of objects (decoded with gjson in key order)
  - SheetSource: read a Google Sheets range whose first row is the header
  - StaticSource: fixed rows

# Loader

Loader fetches through a Source, normalizes, and publishes an immutable
Directory:

	loader := roster.NewLoader(roster.NewHTTPSource(url, http.DefaultClient))
	dir, err := loader.Directory(ctx) // fetches only when nothing is loaded yet
*/
package roster
