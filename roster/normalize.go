// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"regexp"
	"slices"
	"strings"

	"github.com/danielhkuo/sponsor-eval/models"
)

// Column aliases, matched against trimmed lowercase keys in this order
var (
	ProjectKeys = []string{"project", "project name", "project_title", "group_name", "projectname"}
	StudentKeys = []string{"student", "student name", "students", "name", "student_name"}
	SponsorKeys = []string{"sponsoremail", "sponsor email", "sponsor", "email", "login_id", "sponsor_email"}
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	tokenSplit   = regexp.MustCompile(`[,;/|]+`)
	tokenEdges   = regexp.MustCompile("^[\\s\"'`([{]+|[\\s\"'`)\\]}.,:;]+$")
	whitespace   = regexp.MustCompile(`\s+`)
)

// Normalize builds the sponsor lookup from raw roster rows.
// Malformed rows are skipped; it never fails.
func Normalize(rows []Row) map[string]models.SponsorEntry {
	entries := make(map[string]*models.SponsorEntry)

	for _, row := range rows {
		project := pick(row, ProjectKeys)
		student := pick(row, StudentKeys)
		sponsorCell := pick(row, SponsorKeys)

		if sponsorCell == "" {
			sponsorCell = strings.Join(scanEmails(row), ", ")
		}
		if project == "" || student == "" || sponsorCell == "" {
			continue
		}

		for _, email := range ExtractEmails(sponsorCell) {
			entry, ok := entries[email]
			if !ok {
				entry = &models.SponsorEntry{Projects: make(map[string][]string)}
				entries[email] = entry
			}
			students, ok := entry.Projects[project]
			if !ok {
				entry.Order = append(entry.Order, project)
			}
			if !slices.Contains(students, student) {
				students = append(students, student)
			}
			entry.Projects[project] = students
		}
	}

	out := make(map[string]models.SponsorEntry, len(entries))
	for email, entry := range entries {
		out[email] = *entry
	}
	return out
}

// ExtractEmails splits a sponsor cell on , ; / | and returns the unique,
// lowercased, syntactically valid emails it contains, in order of appearance.
func ExtractEmails(cell string) []string {
	var found []string
	for _, tok := range tokenSplit.Split(cell, -1) {
		cleaned := cleanToken(tok)
		if cleaned == "" {
			continue
		}
		matches := emailPattern.FindAllString(cleaned, -1)
		if len(matches) == 0 {
			matches = emailPattern.FindAllString(tok, -1)
		}
		if len(matches) == 0 {
			matches = emailPattern.FindAllString(whitespace.ReplaceAllString(tok, ""), -1)
		}
		for _, m := range matches {
			found = append(found, strings.ToLower(strings.TrimSpace(m)))
		}
	}

	var unique []string
	for _, e := range found {
		if !wellFormed(e) || slices.Contains(unique, e) {
			continue
		}
		unique = append(unique, e)
	}
	return unique
}

// pick returns the first non-empty value for the aliases, tried in order.
func pick(row Row, aliases []string) string {
	for _, alias := range aliases {
		for _, c := range row {
			if strings.ToLower(strings.TrimSpace(c.Key)) != alias {
				continue
			}
			if v := cleanValue(c.Value); v != "" {
				return v
			}
		}
	}
	return ""
}

// scanEmails collects email-shaped substrings from every cell of the row
func scanEmails(row Row) []string {
	var found []string
	for _, c := range row {
		found = append(found, emailPattern.FindAllString(c.Value, -1)...)
	}
	return found
}

func cleanValue(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
}

func cleanToken(tok string) string {
	if tok == "" {
		return ""
	}
	tok = tokenEdges.ReplaceAllString(tok, "")
	return cleanValue(tok)
}

// wellFormed requires exactly one @ and a dot in the domain part
func wellFormed(email string) bool {
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return false
	}
	if strings.Contains(domain, "@") {
		return false
	}
	return strings.Contains(domain, ".")
}
