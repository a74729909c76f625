// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package rubric holds the fixed evaluation rubric and score scale.
//
// Criteria are addressed by their 0-based position everywhere inside the
// service. Titles only appear in outbound submission payloads.
package rubric

import "github.com/danielhkuo/sponsor-eval/models"

// Size is the number of criteria in the rubric.
const Size = 5

// Score bounds (inclusive)
const (
	MinScore = 1
	MaxScore = 7
)

// Scale anchor labels shown at either end of the 1..7 row
const (
	LowAnchor  = "Far Below Expectations (Fail)"
	HighAnchor = "Exceeds Expectations (A+)"
)

var criteria = [Size]models.Criterion{
	{
		Title:       "Student has contributed an appropriate amount of development effort towards this project",
		Description: "Development effort should be balanced between all team members; student should commit to a fair amount of development effort on each sprint.",
	},
	{
		Title:       "Meetings",
		Description: "Students are expected to be proactive. Contributions and participation in meetings help ensure the student is aware of project goals.",
	},
	{
		Title:       "Understanding",
		Description: "Students are expected to understand important details of the project and be able to explain it from different stakeholder perspectives.",
	},
	{
		Title:       "Quality",
		Description: "Students should complete assigned work to a high quality: correct, documented, and self-explanatory where appropriate.",
	},
	{
		Title:       "Communication",
		Description: "Students are expected to be in regular communication and maintain professionalism when interacting with the sponsor.",
	},
}

// Criteria returns a copy of the rubric in display order.
func Criteria() []models.Criterion {
	out := make([]models.Criterion, Size)
	copy(out, criteria[:])
	return out
}

// Title returns the title of criterion i, or "" when i is out of range.
func Title(i int) string {
	if i < 0 || i >= Size {
		return ""
	}
	return criteria[i].Title
}

// Titles returns the ordered criterion titles used in submission payloads.
func Titles() []string {
	out := make([]string, Size)
	for i, c := range criteria {
		out[i] = c.Title
	}
	return out
}

// ValidScore reports whether v is on the 1..7 scale.
func ValidScore(v int) bool {
	return v >= MinScore && v <= MaxScore
}

// ValidIndex reports whether i addresses a criterion.
func ValidIndex(i int) bool {
	return i >= 0 && i < Size
}
