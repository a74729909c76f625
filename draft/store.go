// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draft

import (
	"encoding/json"
	"sort"

	"github.com/danielhkuo/sponsor-eval/rubric"
)

// Store keeps one ProjectDraft per project name
type Store struct {
	projects map[string]ProjectDraft
}

func NewStore() *Store {
	return &Store{projects: make(map[string]ProjectDraft)}
}

// Project returns a copy of the stored draft, or an empty draft if none exists.
func (s *Store) Project(name string) ProjectDraft {
	p, ok := s.projects[name]
	if !ok {
		return NewProjectDraft()
	}
	return p.clone()
}

// Has reports whether a draft exists for the project
func (s *Store) Has(name string) bool {
	_, ok := s.projects[name]
	return ok
}

// Commit merges an observed snapshot into the project's draft and returns
// the merged result. students is the project roster in display order.
// Nothing is stored when the snapshot is invalid.
func (s *Store) Commit(name string, students []string, snap Snapshot) (ProjectDraft, error) {
	if err := snap.Validate(len(students)); err != nil {
		return ProjectDraft{}, err
	}

	if s.projects == nil {
		s.projects = make(map[string]ProjectDraft)
	}
	p := s.Project(name)

	for si := range students {
		r := p.Students[si]
		for ci := 0; ci < rubric.Size; ci++ {
			if v := snap.Rating(si, ci); v != nil {
				r[ci] = v
			}
		}
		p.Students[si] = r
	}

	for ci := 0; ci < rubric.Size; ci++ {
		if v := snap.TeamRating(ci); v != nil {
			p.Team[ci] = v
		}
	}

	for si, student := range students {
		p.StudentComments[student] = snap.StudentComment(si)
	}
	p.GroupComments = snap.GroupComments

	s.projects[name] = p
	return p.clone(), nil
}

// Reset removes a project's draft entirely
func (s *Store) Reset(name string) {
	delete(s.projects, name)
}

// ResetAll removes every draft
func (s *Store) ResetAll() {
	s.projects = make(map[string]ProjectDraft)
}

// Projects returns the names of projects with a draft, sorted
func (s *Store) Projects() []string {
	names := make([]string, 0, len(s.projects))
	for name := range s.projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) Len() int {
	return len(s.projects)
}

func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.projects)
}

func (s *Store) UnmarshalJSON(data []byte) error {
	projects := make(map[string]ProjectDraft)
	if err := json.Unmarshal(data, &projects); err != nil {
		return err
	}
	s.projects = projects
	return nil
}
