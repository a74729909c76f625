package submission

import (
	"errors"
	"time"

	"github.com/danielhkuo/sponsor-eval/draft"
	"github.com/danielhkuo/sponsor-eval/models"
	"github.com/danielhkuo/sponsor-eval/rubric"
)

var ErrNothingToSubmit = errors.New("nothing to submit")

// TimestampFormat is ISO-8601 UTC with milliseconds
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Build assembles the payload for one project from observed input state.
func Build(id models.Identity, project string, students []string, snap draft.Snapshot, at time.Time) (models.SubmissionPayload, error) {
	if err := snap.Validate(len(students)); err != nil {
		return models.SubmissionPayload{}, err
	}

	responses := make([]models.Response, 0, len(students)+1)
	for si, student := range students {
		comments := snap.StudentComment(si)
		responses = append(responses, models.Response{
			Student:           student,
			Ratings:           ratings(func(ci int) *int { return snap.Rating(si, ci) }),
			CommentShared:     comments.Public,
			CommentInstructor: comments.Private,
			IsTeam:            false,
		})
	}

	if snap.HasTeamData() {
		responses = append(responses, models.Response{
			Student:           models.TeamLabel,
			Ratings:           ratings(snap.TeamRating),
			CommentShared:     snap.GroupComments.Public,
			CommentInstructor: snap.GroupComments.Private,
			IsTeam:            true,
		})
	}

	if len(responses) == 0 {
		return models.SubmissionPayload{}, ErrNothingToSubmit
	}

	return models.SubmissionPayload{
		SponsorName:  id.Name,
		SponsorEmail: id.Email,
		Project:      project,
		Rubric:       rubric.Titles(),
		Responses:    responses,
		Timestamp:    at.UTC().Format(TimestampFormat),
	}, nil
}

// ratings maps every criterion title to its score (nil when unselected)
func ratings(score func(ci int) *int) map[string]*int {
	out := make(map[string]*int, rubric.Size)
	for ci := 0; ci < rubric.Size; ci++ {
		out[rubric.Title(ci)] = score(ci)
	}
	return out
}

// AllComplete reports whether every project of the sponsor is in completed.
func AllComplete(entry models.SponsorEntry, completed models.CompletionSet) bool {
	for project := range entry.Projects {
		if !completed.Has(project) {
			return false
		}
	}
	return true
}
