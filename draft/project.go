package draft

import (
	"encoding/json"
	"strconv"

	"github.com/danielhkuo/sponsor-eval/models"
)

// Reserved keys of the persisted project layout
const (
	teamKey            = "team"
	studentCommentsKey = "_studentComments"
	groupCommentsKey   = "_groupComments"
)

// ProjectDraft is the staged evaluation of one project
type ProjectDraft struct {
	Students        map[int]Ratings
	Team            Ratings
	StudentComments map[string]models.Comments
	GroupComments   models.Comments
}

// NewProjectDraft returns an empty draft
func NewProjectDraft() ProjectDraft {
	return ProjectDraft{
		Students:        make(map[int]Ratings),
		StudentComments: make(map[string]models.Comments),
	}
}

// Snapshot renders the stored draft as observed state for students in roster order.
func (p ProjectDraft) Snapshot(students []string) Snapshot {
	snap := Snapshot{
		Ratings:         make(map[int]map[int]int),
		TeamRatings:     make(map[int]int),
		StudentComments: make(map[int]models.Comments),
		GroupComments:   p.GroupComments,
	}

	for si, name := range students {
		for ci, v := range p.Students[si] {
			if v == nil {
				continue
			}
			if snap.Ratings[si] == nil {
				snap.Ratings[si] = make(map[int]int)
			}
			snap.Ratings[si][ci] = *v
		}
		if c, ok := p.StudentComments[name]; ok {
			snap.StudentComments[si] = c
		}
	}
	for ci, v := range p.Team {
		if v != nil {
			snap.TeamRatings[ci] = *v
		}
	}

	return snap
}

func (p ProjectDraft) clone() ProjectDraft {
	out := NewProjectDraft()
	for i, r := range p.Students {
		out.Students[i] = r.clone()
	}
	out.Team = p.Team.clone()
	for name, c := range p.StudentComments {
		out.StudentComments[name] = c
	}
	out.GroupComments = p.GroupComments
	return out
}

func (p ProjectDraft) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Students)+3)
	for i, r := range p.Students {
		m[strconv.Itoa(i)] = r
	}
	m[teamKey] = p.Team

	comments := p.StudentComments
	if comments == nil {
		comments = map[string]models.Comments{}
	}
	m[studentCommentsKey] = comments
	m[groupCommentsKey] = p.GroupComments

	return json.Marshal(m)
}

// UnmarshalJSON reads the persisted layout. Unknown keys are ignored.
func (p *ProjectDraft) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := NewProjectDraft()
	for k, v := range raw {
		switch k {
		case teamKey:
			if err := json.Unmarshal(v, &out.Team); err != nil {
				return err
			}
		case studentCommentsKey:
			var comments map[string]models.Comments
			if err := json.Unmarshal(v, &comments); err != nil {
				return err
			}
			for name, c := range comments {
				out.StudentComments[name] = c
			}
		case groupCommentsKey:
			if err := json.Unmarshal(v, &out.GroupComments); err != nil {
				return err
			}
		default:
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 {
				continue
			}
			var r Ratings
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			out.Students[i] = r
		}
	}

	*p = out
	return nil
}
