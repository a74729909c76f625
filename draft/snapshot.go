package draft

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/sponsor-eval/models"
	"github.com/danielhkuo/sponsor-eval/rubric"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is the observed input state of the rendered project at one moment.
// A missing score means no selection is checked for that cell.
type Snapshot struct {
	// student index -> criterion index -> score
	Ratings         map[int]map[int]int     `json:"ratings"`
	TeamRatings     map[int]int             `json:"team_ratings"`
	StudentComments map[int]models.Comments `json:"student_comments"`
	GroupComments   models.Comments         `json:"group_comments"`
}

// Validate checks indices and scores against a project with studentCount students.
func (s Snapshot) Validate(studentCount int) error {
	for si, row := range s.Ratings {
		if si < 0 || si >= studentCount {
			return fmt.Errorf("%w: student index %d out of range", ErrInvalidSnapshot, si)
		}
		if err := validateRow(row); err != nil {
			return fmt.Errorf("%w: student %d: %v", ErrInvalidSnapshot, si, err)
		}
	}
	if err := validateRow(s.TeamRatings); err != nil {
		return fmt.Errorf("%w: team: %v", ErrInvalidSnapshot, err)
	}
	for si := range s.StudentComments {
		if si < 0 || si >= studentCount {
			return fmt.Errorf("%w: comment for student index %d out of range", ErrInvalidSnapshot, si)
		}
	}
	return nil
}

func validateRow(row map[int]int) error {
	for ci, v := range row {
		if !rubric.ValidIndex(ci) {
			return fmt.Errorf("criterion index %d out of range", ci)
		}
		if !rubric.ValidScore(v) {
			return fmt.Errorf("score %d for criterion %d not in %d..%d", v, ci, rubric.MinScore, rubric.MaxScore)
		}
	}
	return nil
}

// Rating returns the selected score for a student cell, or nil
func (s Snapshot) Rating(student, criterion int) *int {
	v, ok := s.Ratings[student][criterion]
	if !ok {
		return nil
	}
	return Score(v)
}

// TeamRating returns the selected team score for a criterion, or nil
func (s Snapshot) TeamRating(criterion int) *int {
	v, ok := s.TeamRatings[criterion]
	if !ok {
		return nil
	}
	return Score(v)
}

// StudentComment returns the observed comments for a student (empty when absent)
func (s Snapshot) StudentComment(student int) models.Comments {
	return s.StudentComments[student]
}

// HasTeamData reports whether any team score is selected or any team comment is non-empty.
func (s Snapshot) HasTeamData() bool {
	return len(s.TeamRatings) > 0 || !s.GroupComments.Empty()
}
